package models

// Reference is the flat name-keyed shape shared by types, statuses,
// departments and properties.
type Reference struct {
	ID   int    `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
}

// TypeProperty is a property in the context of one asset type, carrying the
// canonical dynamic-field key derived from the property name.
type TypeProperty struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Key  string `json:"key"`
}

type Employee struct {
	ID             int     `json:"id" db:"id"`
	Name           string  `json:"name" db:"name"`
	DepartmentID   int     `json:"department_id" db:"department_id"`
	DepartmentName *string `json:"department_name,omitempty" db:"department_name"`
}

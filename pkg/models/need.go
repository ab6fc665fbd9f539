package models

import "time"

// Need is a procurement request for equipment not yet in the inventory.
// Status is free text; the UI offers a fixed set but the contract does not
// constrain it.
type Need struct {
	ID           int     `json:"id"`
	Date         string  `json:"date"`
	DepartmentID int     `json:"department_id"`
	AssetTypeID  int     `json:"asset_type_id"`
	Quantity     int     `json:"quantity"`
	ReasonDate   string  `json:"reason_date"`
	Status       string  `json:"status"`
	Note         *string `json:"note"`
}

type FlatNeedRecord struct {
	ID           int       `db:"id"`
	CreatedAt    time.Time `db:"created_at"`
	DepartmentID int       `db:"department_id"`
	AssetTypeID  int       `db:"asset_type_id"`
	Quantity     int       `db:"quantity"`
	ReasonDate   time.Time `db:"reason_date"`
	Status       string    `db:"status"`
	Note         *string   `db:"note"`
}

func (fn *FlatNeedRecord) TransformToNeed() Need {
	return Need{
		ID:           fn.ID,
		Date:         fn.CreatedAt.Format(time.RFC3339),
		DepartmentID: fn.DepartmentID,
		AssetTypeID:  fn.AssetTypeID,
		Quantity:     fn.Quantity,
		ReasonDate:   fn.ReasonDate.Format("2006-01-02"),
		Status:       fn.Status,
		Note:         fn.Note,
	}
}

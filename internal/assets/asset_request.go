package assets

import (
	"fmt"
	"strings"
	"time"
)

// AssetRequest is the create/update payload. department_id is accepted but
// never trusted: the department is always derived from the responsible
// employee on save.
type AssetRequest struct {
	SerialNumber      *string `json:"serial_number"`
	InventoryNumber   string  `json:"inventory_number"`
	Brand             *string `json:"brand"`
	Model             *string `json:"model"`
	TypeID            int     `json:"type_id"`
	DepartmentID      *int    `json:"department_id"`
	Room              *string `json:"room"`
	PurchaseDate      string  `json:"purchase_date"`
	ResponsiblePerson int     `json:"responsible_person"`
	ActualUser        *int    `json:"actual_user"`
	Comments          *string `json:"comments"`
	StatusID          int     `json:"status_id"`

	Diagonal  *string `json:"diagonal"`
	CPU       *string `json:"CPU"`
	RAM       *string `json:"RAM"`
	Drive     *string `json:"Drive"`
	OS        *string `json:"OS"`
	IPAddress *string `json:"IP_address"`
	Number    *string `json:"number"`
}

// ValidationError lists the required fields a payload failed to provide.
type ValidationError struct {
	Missing []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("missing required fields: %s", strings.Join(e.Missing, ", "))
}

// Validate checks the required field set {inventory_number, type_id,
// status_id, responsible_person, purchase_date}.
func (r *AssetRequest) Validate() error {
	var missing []string

	if strings.TrimSpace(r.InventoryNumber) == "" {
		missing = append(missing, "inventory_number")
	}
	if r.TypeID == 0 {
		missing = append(missing, "type_id")
	}
	if r.StatusID == 0 {
		missing = append(missing, "status_id")
	}
	if r.ResponsiblePerson == 0 {
		missing = append(missing, "responsible_person")
	}
	if strings.TrimSpace(r.PurchaseDate) == "" {
		missing = append(missing, "purchase_date")
	} else if _, err := time.Parse("2006-01-02", r.PurchaseDate); err != nil {
		missing = append(missing, "purchase_date")
	}

	if len(missing) > 0 {
		return &ValidationError{Missing: missing}
	}

	return nil
}

// purchaseDate must be called after Validate.
func (r *AssetRequest) purchaseDate() time.Time {
	t, _ := time.Parse("2006-01-02", r.PurchaseDate)
	return t
}

package models

import (
	"strings"
	"time"
)

const UntypedAssetName = "Без типа"

// Asset is the wire representation of one piece of equipment. Dynamic
// attribute keys (CPU, RAM, ...) keep their historical JSON spelling.
type Asset struct {
	ID                int     `json:"id"`
	SerialNumber      *string `json:"serial_number"`
	InventoryNumber   string  `json:"inventory_number"`
	Brand             *string `json:"brand"`
	Model             *string `json:"model"`
	TypeID            int     `json:"type_id"`
	DepartmentID      int     `json:"department_id"`
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

	CategoryName string `json:"category_name"`
	FullName     string `json:"full_name"`
}

type FlatAssetRecord struct {
	ID                int       `db:"id"`
	SerialNumber      *string   `db:"serial_number"`
	InventoryNumber   string    `db:"inventory_number"`
	Brand             *string   `db:"brand"`
	Model             *string   `db:"model"`
	TypeID            int       `db:"type_id"`
	DepartmentID      int       `db:"department_id"`
	Room              *string   `db:"room"`
	PurchaseDate      time.Time `db:"purchase_date"`
	ResponsiblePerson int       `db:"responsible_person"`
	ActualUser        *int      `db:"actual_user"`
	Comments          *string   `db:"comments"`
	StatusID          int       `db:"status_id"`
	Diagonal          *string   `db:"diagonal"`
	CPU               *string   `db:"cpu"`
	RAM               *string   `db:"ram"`
	Drive             *string   `db:"drive"`
	OS                *string   `db:"os"`
	IPAddress         *string   `db:"ip_address"`
	Number            *string   `db:"number"`
	TypeName          *string   `db:"type_name"`
}

func (fa *FlatAssetRecord) TransformToAsset() Asset {
	typeName := UntypedAssetName
	categoryName := ""
	if fa.TypeName != nil {
		typeName = *fa.TypeName
		categoryName = *fa.TypeName
	}

	return Asset{
		ID:                fa.ID,
		SerialNumber:      fa.SerialNumber,
		InventoryNumber:   fa.InventoryNumber,
		Brand:             fa.Brand,
		Model:             fa.Model,
		TypeID:            fa.TypeID,
		DepartmentID:      fa.DepartmentID,
		Room:              fa.Room,
		PurchaseDate:      fa.PurchaseDate.Format("2006-01-02"),
		ResponsiblePerson: fa.ResponsiblePerson,
		ActualUser:        fa.ActualUser,
		Comments:          fa.Comments,
		StatusID:          fa.StatusID,
		Diagonal:          fa.Diagonal,
		CPU:               fa.CPU,
		RAM:               fa.RAM,
		Drive:             fa.Drive,
		OS:                fa.OS,
		IPAddress:         fa.IPAddress,
		Number:            fa.Number,
		CategoryName:      categoryName,
		FullName:          AssetFullName(typeName, fa.Brand, fa.Model),
	}
}

// AssetFullName builds the display name used in logs, QR labels and exports.
func AssetFullName(typeName string, brand, model *string) string {
	parts := []string{typeName}
	if brand != nil && strings.TrimSpace(*brand) != "" {
		parts = append(parts, strings.TrimSpace(*brand))
	}
	if model != nil && strings.TrimSpace(*model) != "" {
		parts = append(parts, strings.TrimSpace(*model))
	}
	return strings.Join(parts, " ")
}

package models

import "time"

const (
	ActionCreated = "created"
	ActionUpdated = "updated"
	ActionDeleted = "deleted"
)

const (
	MoveTypeRoom       = "room"
	MoveTypeDepartment = "department"
)

// ChangedAtLayout is the historical wire format of the change log timestamp.
const ChangedAtLayout = "02.01.2006 15:04:05"

// Change is one immutable audit record of an asset mutation.
type Change struct {
	ID              int    `json:"id"`
	AssetID         *int   `json:"asset_id"`
	InventoryNumber string `json:"inventory_number"`
	AssetName       string `json:"asset_name"`
	Action          string `json:"action"`
	Field           string `json:"field"`
	OldValue        string `json:"old_value"`
	NewValue        string `json:"new_value"`
	ChangedAt       string `json:"changed_at"`
}

type FlatChangeRecord struct {
	ID              int       `db:"id"`
	AssetID         *int      `db:"asset_id"`
	InventoryNumber string    `db:"inventory_number"`
	AssetName       string    `db:"asset_name"`
	Action          string    `db:"action"`
	Field           string    `db:"field"`
	OldValue        string    `db:"old_value"`
	NewValue        string    `db:"new_value"`
	ChangedAt       time.Time `db:"changed_at"`
}

func (fc *FlatChangeRecord) TransformToChange() Change {
	return Change{
		ID:              fc.ID,
		AssetID:         fc.AssetID,
		InventoryNumber: fc.InventoryNumber,
		AssetName:       fc.AssetName,
		Action:          fc.Action,
		Field:           fc.Field,
		OldValue:        fc.OldValue,
		NewValue:        fc.NewValue,
		ChangedAt:       fc.ChangedAt.Format(ChangedAtLayout),
	}
}

// Move is one immutable record of a room or department reassignment.
type Move struct {
	ID              int    `json:"id"`
	AssetID         *int   `json:"asset_id"`
	Date            string `json:"date"`
	InventoryNumber string `json:"inventory_number"`
	AssetName       string `json:"asset_name"`
	FromRoom        string `json:"from_room"`
	ToRoom          string `json:"to_room"`
	MoveType        string `json:"move_type"`
}

type FlatMoveRecord struct {
	ID              int       `db:"id"`
	AssetID         *int      `db:"asset_id"`
	InventoryNumber string    `db:"inventory_number"`
	AssetName       string    `db:"asset_name"`
	FromValue       string    `db:"from_value"`
	ToValue         string    `db:"to_value"`
	MoveType        string    `db:"move_type"`
	MovedAt         time.Time `db:"moved_at"`
}

func (fm *FlatMoveRecord) TransformToMove() Move {
	return Move{
		ID:              fm.ID,
		AssetID:         fm.AssetID,
		Date:            fm.MovedAt.Format(time.RFC3339),
		InventoryNumber: fm.InventoryNumber,
		AssetName:       fm.AssetName,
		FromRoom:        fm.FromValue,
		ToRoom:          fm.ToValue,
		MoveType:        fm.MoveType,
	}
}

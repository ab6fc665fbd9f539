package changes

import (
	"fmt"

	"github.com/l4greenl/it-inventory/pkg/models"

	"github.com/doug-martin/goqu/v9"
)

// Entry is one change-log row to append.
type Entry struct {
	AssetID         *int
	InventoryNumber string
	AssetName       string
	Action          string
	Field           string
	OldValue        string
	NewValue        string
}

// MoveEntry is one move-log row to append.
type MoveEntry struct {
	AssetID         *int
	InventoryNumber string
	AssetName       string
	FromValue       string
	ToValue         string
	MoveType        string
}

// Recorder appends immutable audit rows. It always runs inside the
// transaction of the mutation it documents, so an asset write and its log
// rows commit or roll back together.
type Recorder struct{}

func NewRecorder() *Recorder {
	return &Recorder{}
}

func (rec *Recorder) Record(tx *goqu.TxDatabase, e Entry) error {
	query := tx.Insert("changes").
		Rows(goqu.Record{
			"asset_id":         e.AssetID,
			"inventory_number": e.InventoryNumber,
			"asset_name":       e.AssetName,
			"action":           e.Action,
			"field":            e.Field,
			"old_value":        e.OldValue,
			"new_value":        e.NewValue,
		})

	if _, err := query.Executor().Exec(); err != nil {
		return fmt.Errorf("failed to insert change record: %w", err)
	}

	return nil
}

func (rec *Recorder) RecordMove(tx *goqu.TxDatabase, m MoveEntry) error {
	query := tx.Insert("moves").
		Rows(goqu.Record{
			"asset_id":         m.AssetID,
			"inventory_number": m.InventoryNumber,
			"asset_name":       m.AssetName,
			"from_value":       m.FromValue,
			"to_value":         m.ToValue,
			"move_type":        m.MoveType,
		})

	if _, err := query.Executor().Exec(); err != nil {
		return fmt.Errorf("failed to insert move record: %w", err)
	}

	return nil
}

// Created builds the conventional creation entry.
func Created(assetID int, inventoryNumber, assetName string) Entry {
	return Entry{
		AssetID:         &assetID,
		InventoryNumber: inventoryNumber,
		AssetName:       assetName,
		Action:          models.ActionCreated,
		Field:           models.ActionCreated,
		OldValue:        "",
		NewValue:        "Актив создан",
	}
}

// Deleted builds the conventional deletion entry.
func Deleted(assetID int, inventoryNumber, assetName string) Entry {
	return Entry{
		AssetID:         &assetID,
		InventoryNumber: inventoryNumber,
		AssetName:       assetName,
		Action:          models.ActionDeleted,
		Field:           models.ActionDeleted,
		OldValue:        "Актив удален",
		NewValue:        "",
	}
}

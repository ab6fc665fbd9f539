package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAssetFullName(t *testing.T) {
	brand := "HP"
	model := "ProBook 450"
	blank := "   "

	tests := []struct {
		name     string
		typeName string
		brand    *string
		model    *string
		want     string
	}{
		{"type brand model", "Ноутбук", &brand, &model, "Ноутбук HP ProBook 450"},
		{"type only", "Монитор", nil, nil, "Монитор"},
		{"blank brand skipped", "Монитор", &blank, &model, "Монитор ProBook 450"},
		{"untyped fallback", UntypedAssetName, &brand, nil, "Без типа HP"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AssetFullName(tt.typeName, tt.brand, tt.model))
		})
	}
}

func TestTransformToAssetFallsBackToUntypedName(t *testing.T) {
	record := FlatAssetRecord{
		ID:              3,
		InventoryNumber: "INV-003",
		PurchaseDate:    time.Date(2023, 11, 2, 0, 0, 0, 0, time.UTC),
	}

	asset := record.TransformToAsset()
	assert.Equal(t, "Без типа", asset.FullName)
	assert.Equal(t, "", asset.CategoryName)
	assert.Equal(t, "2023-11-02", asset.PurchaseDate)
}

func TestTransformToAssetUsesTypeName(t *testing.T) {
	typeName := "Принтер"
	record := FlatAssetRecord{
		ID:              4,
		InventoryNumber: "INV-004",
		PurchaseDate:    time.Date(2023, 11, 2, 0, 0, 0, 0, time.UTC),
		TypeName:        &typeName,
	}

	asset := record.TransformToAsset()
	assert.Equal(t, "Принтер", asset.CategoryName)
	assert.Equal(t, "Принтер", asset.FullName)
}

package metadata

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPropertyFieldKeyCanonical(t *testing.T) {
	tests := []struct {
		name     string
		expected string
	}{
		{"Процессор", "CPU"},
		{"Оперативная память", "RAM"},
		{"Оперативная память (ГБ)", "RAM"},
		{"Диск (HDD/SSD)", "Drive"},
		{"Операционная система", "OS"},
		{"ОС", "OS"},
		{"Диагональ", "diagonal"},
		{"IP-адрес", "IP_address"},
		{"Внутренний номер", "number"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, PropertyFieldKey(tt.name))
	}
}

func TestPropertyFieldKeyFallbackSlug(t *testing.T) {
	assert.Equal(t, "цвет_корпуса", PropertyFieldKey("Цвет корпуса"))
	assert.Equal(t, "mac_address", PropertyFieldKey("MAC  Address"))
	assert.Equal(t, "vram", PropertyFieldKey("VRAM"))
}

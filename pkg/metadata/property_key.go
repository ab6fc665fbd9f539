package metadata

import "strings"

// canonicalKeys maps property names to the dynamic asset field keys used on
// the wire. Names outside the table fall back to a lowercased slug.
var canonicalKeys = map[string]string{
	"Диагональ":              "diagonal",
	"Диагональ (дюймы)":      "diagonal",
	"Операционная система":   "OS",
	"ОС":                     "OS",
	"Процессор":              "CPU",
	"Оперативная память":     "RAM",
	"Оперативная память (ГБ)": "RAM",
	"Диск":                   "Drive",
	"Диск (HDD/SSD)":         "Drive",
	"IP-адрес":               "IP_address",
	"Внутренний номер":       "number",
}

// PropertyFieldKey resolves a property name to its dynamic-field key.
func PropertyFieldKey(propertyName string) string {
	if key, ok := canonicalKeys[propertyName]; ok {
		return key
	}
	return slugify(propertyName)
}

func slugify(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), "_")
}

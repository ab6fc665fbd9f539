package export

import (
	"fmt"
	"io"
	"strings"
)

// The spreadsheet import path expects a semicolon-separated file where
// every value is quoted, including the header. encoding/csv only quotes
// fields that need it, so the writer is built by hand.

const csvSeparator = ";"

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// WriteCSV streams the table as semicolon-separated CSV with a UTF-8 BOM
// and every field double-quoted.
func WriteCSV(w io.Writer, table *Table) error {
	if _, err := w.Write(utf8BOM); err != nil {
		return fmt.Errorf("failed to write CSV: %w", err)
	}

	if err := writeCSVRow(w, table.Headers); err != nil {
		return err
	}
	for _, row := range table.Rows {
		if err := writeCSVRow(w, row); err != nil {
			return err
		}
	}

	return nil
}

func writeCSVRow(w io.Writer, fields []string) error {
	quoted := make([]string, len(fields))
	for i, field := range fields {
		quoted[i] = `"` + strings.ReplaceAll(field, `"`, `""`) + `"`
	}

	if _, err := io.WriteString(w, strings.Join(quoted, csvSeparator)+"\r\n"); err != nil {
		return fmt.Errorf("failed to write CSV: %w", err)
	}
	return nil
}

package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

const xlsxSheetName = "Активы"

// WriteXLSX renders the table as a single-sheet workbook.
func WriteXLSX(w io.Writer, table *Table) error {
	file := excelize.NewFile()
	defer file.Close()

	index, err := file.NewSheet(xlsxSheetName)
	if err != nil {
		return fmt.Errorf("failed to build workbook: %w", err)
	}
	file.SetActiveSheet(index)
	if err := file.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("failed to build workbook: %w", err)
	}

	if err := writeXLSXRow(file, 1, table.Headers); err != nil {
		return err
	}
	for i, row := range table.Rows {
		if err := writeXLSXRow(file, i+2, row); err != nil {
			return err
		}
	}

	if err := file.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func writeXLSXRow(file *excelize.File, rowNumber int, fields []string) error {
	cell, err := excelize.CoordinatesToCellName(1, rowNumber)
	if err != nil {
		return fmt.Errorf("failed to build workbook: %w", err)
	}

	values := make([]interface{}, len(fields))
	for i, field := range fields {
		values[i] = field
	}

	if err := file.SetSheetRow(xlsxSheetName, cell, &values); err != nil {
		return fmt.Errorf("failed to build workbook: %w", err)
	}
	return nil
}

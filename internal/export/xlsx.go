package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

const sheetName = "Plan de mejora"

// Column widths tuned for the long free-text fields.
var colWidths = map[string]float64{
	"A": 8, "B": 28, "C": 22, "D": 20, "E": 24, "F": 18,
	"G": 40, "H": 40, "I": 32, "J": 14, "K": 14, "L": 14,
	"M": 16, "N": 40, "O": 26,
}

// WriteXLSX renders the dataset as a spreadsheet at path.
func WriteXLSX(d *Dataset, path string) error {
	f := excelize.NewFile()
	defer f.Close()
	f.SetSheetName("Sheet1", sheetName)

	for i, h := range Headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return fmt.Errorf("naming header cell: %w", err)
		}
		if err := f.SetCellValue(sheetName, cell, h); err != nil {
			return fmt.Errorf("writing header %q: %w", h, err)
		}
	}
	for col, width := range colWidths {
		if err := f.SetColWidth(sheetName, col, col, width); err != nil {
			return fmt.Errorf("sizing column %s: %w", col, err)
		}
	}

	for rowIdx, r := range d.Rows {
		for colIdx, v := range r {
			cell, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			if err != nil {
				return fmt.Errorf("naming cell: %w", err)
			}
			if err := f.SetCellValue(sheetName, cell, v); err != nil {
				return fmt.Errorf("writing row %d: %w", rowIdx+1, err)
			}
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("saving %s: %w", path, err)
	}
	return nil
}

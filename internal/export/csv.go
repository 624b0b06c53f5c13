package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
)

// WriteCSV renders the dataset as CSV at path. A UTF-8 BOM is prepended
// so spreadsheet tools detect the accented vocabulary correctly.
func WriteCSV(d *Dataset, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	if err := writeCSVTo(d, f); err != nil {
		return err
	}
	return f.Close()
}

func writeCSVTo(d *Dataset, w io.Writer) error {
	if _, err := w.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
		return fmt.Errorf("writing BOM: %w", err)
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(Headers); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for i, r := range d.Rows {
		if err := cw.Write(r); err != nil {
			return fmt.Errorf("writing row %d: %w", i+1, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

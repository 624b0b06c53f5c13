package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ReadFile parses a prefill file, dispatching on extension.
func ReadFile(path string) ([]PrefillRow, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return readCSVFile(path)
	case ".xlsx":
		return readXLSX(path)
	}
	return nil, fmt.Errorf("unsupported prefill format %q (expected .csv or .xlsx)", filepath.Ext(path))
}

func readCSVFile(path string) ([]PrefillRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()
	return ReadCSV(f)
}

// ReadCSV parses CSV prefill content. The first row must be a header.
func ReadCSV(r io.Reader) ([]PrefillRow, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("prefill file is empty")
	}
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}
	// Strip a UTF-8 BOM left by spreadsheet exports.
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\uFEFF")
	}

	cols := mapHeaders(header)
	if err := requireColumns(cols); err != nil {
		return nil, err
	}

	var rows []PrefillRow
	line := 1
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading row %d: %w", line+1, err)
		}
		line++
		if row, ok := buildRow(rec, cols, line); ok {
			rows = append(rows, row)
		}
	}
	return rows, nil
}

func readXLSX(path string) ([]PrefillRow, error) {
	x, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer x.Close()

	sheets := x.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%s has no sheets", path)
	}
	raw, err := x.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("reading sheet %q: %w", sheets[0], err)
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("prefill file is empty")
	}

	cols := mapHeaders(raw[0])
	if err := requireColumns(cols); err != nil {
		return nil, err
	}

	var rows []PrefillRow
	for i, rec := range raw[1:] {
		if row, ok := buildRow(rec, cols, i+2); ok {
			rows = append(rows, row)
		}
	}
	return rows, nil
}

func requireColumns(cols map[string]int) error {
	var missing []string
	for _, field := range []string{"entity", "indicator"} {
		if _, ok := cols[field]; !ok {
			missing = append(missing, field)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("prefill header is missing columns: %s", strings.Join(missing, ", "))
	}
	return nil
}

func buildRow(rec []string, cols map[string]int, line int) (PrefillRow, bool) {
	entityIdx, entityOK := cols["entity"]
	indicatorIdx, indicatorOK := cols["indicator"]
	actionIdx, actionOK := cols["action"]

	row := PrefillRow{
		Entity:    cell(rec, entityIdx, entityOK),
		Indicator: cell(rec, indicatorIdx, indicatorOK),
		Action:    cell(rec, actionIdx, actionOK),
		Line:      line,
	}
	if row.Entity == "" && row.Indicator == "" && row.Action == "" {
		return PrefillRow{}, false
	}
	return row, true
}

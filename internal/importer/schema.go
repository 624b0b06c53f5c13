// Package importer reads tabular prefill files (CSV or XLSX) produced by
// the quality office: one row per entity with the indicator and the
// recommended action to seed a new plan from.
package importer

import "strings"

// PrefillRow is one parsed input row.
type PrefillRow struct {
	Entity    string
	Indicator string
	Action    string

	// Line is the 1-based row number in the source file, for error
	// reporting.
	Line int
}

// Recognized header names, after normalization. The quality office
// exports drift between Spanish and English headings.
var headerAliases = map[string]string{
	"entidad":                   "entity",
	"nombreentidad":             "entity",
	"entity":                    "entity",
	"indicador":                 "indicator",
	"indicator":                 "indicator",
	"accion":                    "action",
	"accionrecomendada":         "action",
	"observacioninformecalidad": "action",
	"action":                    "action",
}

// normalizeHeader lowers a heading and strips everything but letters and
// digits, so "Nombre Entidad", "nombre_entidad" and "NOMBRE-ENTIDAD" all
// collapse to the same key.
func normalizeHeader(h string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(h)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == 'á':
			b.WriteRune('a')
		case r == 'é':
			b.WriteRune('e')
		case r == 'í':
			b.WriteRune('i')
		case r == 'ó':
			b.WriteRune('o')
		case r == 'ú':
			b.WriteRune('u')
		case r == 'ñ':
			b.WriteRune('n')
		}
	}
	return b.String()
}

// mapHeaders resolves a header row into column positions for the three
// recognized fields. Unknown columns are ignored.
func mapHeaders(row []string) map[string]int {
	cols := make(map[string]int)
	for i, h := range row {
		if field, ok := headerAliases[normalizeHeader(h)]; ok {
			if _, taken := cols[field]; !taken {
				cols[field] = i
			}
		}
	}
	return cols
}

func cell(row []string, idx int, ok bool) string {
	if !ok || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

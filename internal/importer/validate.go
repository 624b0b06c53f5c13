package importer

import "fmt"

// Validate checks the parsed rows before any of them seed a plan.
// Returns a slice of all validation errors found.
func Validate(rows []PrefillRow) []error {
	var errs []error
	if len(rows) == 0 {
		return []error{fmt.Errorf("prefill file has no data rows")}
	}

	seen := make(map[string]int)
	for _, r := range rows {
		if r.Entity == "" {
			errs = append(errs, fmt.Errorf("row %d: entity is required", r.Line))
		}
		if r.Indicator == "" {
			errs = append(errs, fmt.Errorf("row %d: indicator is required", r.Line))
		}
		key := r.Entity + "\x00" + r.Indicator
		if first, dup := seen[key]; dup {
			errs = append(errs, fmt.Errorf("row %d: duplicate of row %d (%s / %s)", r.Line, first, r.Entity, r.Indicator))
			continue
		}
		seen[key] = r.Line
	}
	return errs
}

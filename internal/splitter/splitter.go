// Package splitter detects multiple improvement actions packed into the
// single proposed-action text field and seeds one sibling plan per extra
// action.
package splitter

import "strings"

// Split breaks a proposed-action text into semantically distinct actions:
// segments separated by newlines, semicolons, commas, or periods, with
// whitespace trimmed and empty segments dropped.
func Split(text string) []string {
	segments := strings.FieldsFunc(text, func(r rune) bool {
		switch r {
		case '\n', '\r', ';', ',', '.':
			return true
		}
		return false
	})
	out := segments[:0]
	for _, s := range segments {
		if v := strings.TrimSpace(s); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// ShouldAdvise reports whether the operator should be told the field
// looks like it holds several actions. Advisory only, never blocking,
// and only meaningful while the plan is still editable as a draft.
func ShouldAdvise(text string, isDraft bool) bool {
	return isDraft && len(Split(text)) >= 2
}

// SiblingSeeds returns the first segment (which the current plan keeps)
// and the remaining segments, each of which seeds a new sibling plan.
func SiblingSeeds(text string) (keep string, siblings []string) {
	segments := Split(text)
	if len(segments) == 0 {
		return "", nil
	}
	return segments[0], segments[1:]
}

package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/nedo8680/plan-accion-cli/internal/domain"
)

var (
	// ErrFieldReadOnly indicates the permission resolver rejected an
	// edit for the current role and state.
	ErrFieldReadOnly = errors.New("field is read-only")

	// ErrMissingEntityName indicates persistence was attempted before
	// the entity name was filled in.
	ErrMissingEntityName = errors.New("entity name is required before saving")

	// ErrSaveInFlight indicates a second write was attempted on the same
	// record while an earlier one is still outstanding. Writes are
	// serialized per identity to avoid lost updates.
	ErrSaveInFlight = errors.New("a save for this record is already in progress")

	// ErrNoActivePlan indicates an operation that needs a selected plan
	// ran without one.
	ErrNoActivePlan = errors.New("no active plan selected")
)

// ValidationError lists the required plan fields that are still blank.
// It is raised before any network call.
type ValidationError struct {
	Missing []domain.Field
}

func (e *ValidationError) Error() string {
	labels := make([]string, 0, len(e.Missing))
	for _, f := range e.Missing {
		labels = append(labels, f.Label())
	}
	return fmt.Sprintf("todos los campos son requeridos: %s", strings.Join(labels, ", "))
}

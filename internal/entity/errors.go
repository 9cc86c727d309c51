package entity

import "errors"

// Error taxonomy for the save pipeline and its collaborators. Validation and
// sequence errors are fail-fast; per-item upload and send failures are
// reported by the owning component and never carry a domain sentinel.
var (
	ErrValidation        = errors.New("validation error")
	ErrNotFound          = errors.New("not found")
	ErrSequenceConflict  = errors.New("issue number conflict")
	ErrAlreadyDispatched = errors.New("newsletter already dispatched")
)

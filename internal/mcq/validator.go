package mcq

import (
	"fmt"

	"github.com/edubot/edubot/internal/locale"
)

// Validator checks a parsed record before it is shown to a learner.
// Implementations should be stateless and safe for concurrent use.
type Validator interface {
	// Name returns a short identifier used in errors and logs.
	Name() string

	// Validate returns nil if the record passes.
	Validate(r *Record, lang locale.Language) *ValidationError
}

// ValidationError describes why a record failed validation.
type ValidationError struct {
	Validator string // Name of the validator that failed
	Message   string // Human-readable description of the failure
	Retryable bool   // Whether regeneration is likely to fix this
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validator %q: %s", e.Validator, e.Message)
}

package contract

import "errors"

// Sentinel errors shared across the agent packages. Callers wrap them with
// fmt.Errorf("%w: ...") and branch with errors.Is.
var (
	// ErrModelInvoke covers chat-model calls and graph runs that fail
	// before producing a usable reply.
	ErrModelInvoke = errors.New("model invoke failed")

	// ErrSchemaViolation marks model output that parses but breaks the
	// template invariants (unknown customer, empty fields).
	ErrSchemaViolation = errors.New("model response violates schema")

	// ErrPromptMissing is returned when an analyzer is constructed
	// without its system prompt.
	ErrPromptMissing = errors.New("required prompt is missing")

	// ErrValidation covers malformed inputs and broken internal state.
	ErrValidation = errors.New("validation failed")
)

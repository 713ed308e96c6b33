package wizard

import "errors"

// ErrCancelled is returned when the operator declines the final
// confirmation. Cancellation is not a failure: the CLI exits zero.
var ErrCancelled = errors.New("deployment cancelled by operator")

// Validation errors for the interactive wizard.
var (
	errProjectRequired     = errors.New("project is required")
	errInstanceNameInvalid = errors.New("instance name must be 1-63 lowercase alphanumeric characters or hyphens, starting and ending with alphanumeric")
)

package dynamo

import "errors"

// Domain errors shared by the sampler and renderers.
var (
	// ErrInvalidRange indicates a window or sweep with max <= min.
	// Range setters reject such input silently; the value is used for logging.
	ErrInvalidRange = errors.New("dynamo: invalid range (max <= min)")

	// ErrResourceUnavailable indicates a drawing surface could not be acquired.
	ErrResourceUnavailable = errors.New("dynamo: rendering surface unavailable")

	// ErrUseAfterDestroy indicates a call on a destroyed rendering handle.
	ErrUseAfterDestroy = errors.New("dynamo: handle used after destroy")

	// ErrUnknownParam indicates a parameter name a rule does not expose.
	ErrUnknownParam = errors.New("dynamo: unknown parameter")

	// ErrUnknownModel indicates a model name with no registered rule.
	ErrUnknownModel = errors.New("dynamo: unknown model")
)

// ParamError wraps ErrUnknownParam with the offending rule and name.
type ParamError struct {
	Rule string
	Name string
}

func (e *ParamError) Error() string {
	return "dynamo: " + e.Rule + " has no parameter " + e.Name
}

func (e *ParamError) Unwrap() error {
	return ErrUnknownParam
}

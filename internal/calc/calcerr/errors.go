package calcerr

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinel errors for broad classification.
var (
	ErrMissingOption = errors.New("missing option")
	ErrInvalidInput  = errors.New("invalid input")
	ErrNoConvergence = errors.New("no convergence")
)

// Kind is a coarse-grained categorization for calculation errors.
type Kind string

const (
	KindMissingOption Kind = "missing_option"
	KindInvalidInput  Kind = "invalid_input"
	KindConvergence   Kind = "convergence"
)

// Error wraps an underlying error with the failing operation, a kind and
// the variable or option key involved.
type Error struct {
	Op   string
	Kind Kind
	Key  string
	Err  error
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	base := fmt.Sprintf("%s: %s", e.Op, e.Kind)
	if e.Key != "" {
		base += fmt.Sprintf(" (key=%s)", e.Key)
	}
	if e.Err != nil {
		base += fmt.Sprintf(": %v", e.Err)
	}
	return base
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Invalid builds an invalid-input error for key.
func Invalid(op, key, format string, args ...any) error {
	return &Error{
		Op:   op,
		Kind: KindInvalidInput,
		Key:  key,
		Err:  fmt.Errorf("%w: "+format, append([]any{ErrInvalidInput}, args...)...),
	}
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind Kind) bool {
	var ce *Error
	if errors.As(err, &ce) {
		return ce.Kind == kind
	}
	return false
}

// HTTPStatus maps a calculation error to a response status.
func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrInvalidInput), errors.Is(err, ErrMissingOption):
		return http.StatusUnprocessableEntity
	case errors.Is(err, ErrNoConvergence):
		return http.StatusOK
	default:
		return http.StatusInternalServerError
	}
}

package volatility

import (
	"errors"
	"fmt"
)

// ErrRuleNotFound indicates a rule id outside the shipped catalog.
var ErrRuleNotFound = errors.New("volatility: rule not found")

// ValidationError reports a user-supplied field that failed a check.
// These are shown to the user verbatim; anything else is logged and
// surfaced generically.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

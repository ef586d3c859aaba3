package dispatch

import (
	"fmt"
	"strings"
)

// ValidationError rejects a malformed dispatch payload before any side
// effect. Handlers map it to a 400 response.
type ValidationError struct {
	Missing []string
	Reason  string
}

func (e *ValidationError) Error() string {
	if len(e.Missing) > 0 {
		return fmt.Sprintf("Missing required fields: %s", strings.Join(e.Missing, ", "))
	}
	return e.Reason
}

// IsValidationError reports whether err (or its cause chain) is a payload
// validation failure.
func IsValidationError(err error) bool {
	for err != nil {
		if _, ok := err.(*ValidationError); ok {
			return true
		}
		unwrapper, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		err = unwrapper.Unwrap()
	}
	return false
}

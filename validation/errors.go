package validation

import "fmt"

// Error is the result of rejecting a single user-supplied value.
// Message is suitable for showing to the user as-is.
type Error struct {
	Field   string
	Value   string
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("invalid %s %q: %s", e.Field, e.Value, e.Message)
}

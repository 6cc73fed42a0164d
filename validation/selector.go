package validation

import "strings"

// ValidateSelector rejects empty (or whitespace-only) CSS selectors.
// Syntax is left to the browser, which reports it when the selector is queried.
func ValidateSelector(selector string) error {
	if strings.TrimSpace(selector) == "" {
		return &Error{Field: "selector", Value: selector, Message: "Input cannot be empty"}
	}
	return nil
}

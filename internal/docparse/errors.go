package docparse

import "fmt"

// ExtractError represents a failure to extract text from an uploaded
// document.
type ExtractError struct {
	Message string
	Cause   error
}

func (e *ExtractError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("document extraction failed: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("document extraction failed: %s", e.Message)
}

func (e *ExtractError) Unwrap() error {
	return e.Cause
}

package airtable

import "fmt"

// PersistenceError represents a failed write to the external store.
// It is logged and swallowed by the pipeline; the user's artifact has
// already been satisfied by that point in the flow.
type PersistenceError struct {
	StatusCode int
	Message    string
	Cause      error
}

func (e *PersistenceError) Error() string {
	switch {
	case e.Cause != nil:
		return fmt.Sprintf("persistence failed: %s: %v", e.Message, e.Cause)
	case e.StatusCode != 0:
		return fmt.Sprintf("persistence failed (status %d): %s", e.StatusCode, e.Message)
	default:
		return fmt.Sprintf("persistence failed: %s", e.Message)
	}
}

func (e *PersistenceError) Unwrap() error {
	return e.Cause
}

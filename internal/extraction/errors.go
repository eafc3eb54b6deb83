package extraction

import "fmt"

// APICallError represents a failure to reach the text-generation
// service or a failure reported by it.
type APICallError struct {
	Message string
	Cause   error
}

func (e *APICallError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("API call failed: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("API call failed: %s", e.Message)
}

func (e *APICallError) Unwrap() error {
	return e.Cause
}

// SchemaError represents a service payload that does not conform to
// the expected schema. It names the first structural mismatch and is
// fatal to the current generation attempt; no partial data is
// substituted.
type SchemaError struct {
	Field   string
	Message string
	Cause   error
}

func (e *SchemaError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("schema extraction failed at %s: %s", e.Field, e.Message)
	}
	if e.Cause != nil {
		return fmt.Sprintf("schema extraction failed: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("schema extraction failed: %s", e.Message)
}

func (e *SchemaError) Unwrap() error {
	return e.Cause
}

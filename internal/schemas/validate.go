// Package schemas provides JSON Schema validation for the payloads
// returned by the text-generation service.
package schemas

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed resume_record.json
var resumeRecordSchema string

// ValidationError represents a schema validation failure with field
// paths. Errors holds every mismatch; First() names the one reported
// to callers that fail fast.
type ValidationError struct {
	Errors []FieldError
}

// FieldError represents a single validation error at a specific field.
type FieldError struct {
	Field   string
	Message string
}

func (ve *ValidationError) Error() string {
	var sb strings.Builder
	sb.WriteString("validation failed:\n")
	for i, err := range ve.Errors {
		sb.WriteString(fmt.Sprintf("  %d. %s: %s\n", i+1, err.Field, err.Message))
	}
	return sb.String()
}

// First returns the first field error, the one surfaced to callers.
func (ve *ValidationError) First() FieldError {
	if len(ve.Errors) == 0 {
		return FieldError{Field: "(root)", Message: "unknown validation failure"}
	}
	return ve.Errors[0]
}

// SchemaLoadError represents errors loading or parsing the schema or
// the document itself (e.g. the payload is not JSON at all).
type SchemaLoadError struct {
	Message string
	Cause   error
}

func (e *SchemaLoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("schema validation: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("schema validation: %s", e.Message)
}

func (e *SchemaLoadError) Unwrap() error {
	return e.Cause
}

// ValidateResumeRecord validates a JSON payload against the embedded
// resume record schema. Returns nil when the payload conforms, a
// *ValidationError naming each mismatch otherwise.
func ValidateResumeRecord(jsonContent string) error {
	return validateAgainst(resumeRecordSchema, jsonContent)
}

func validateAgainst(schemaContent, jsonContent string) error {
	schemaLoader := gojsonschema.NewStringLoader(schemaContent)
	documentLoader := gojsonschema.NewStringLoader(jsonContent)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return &SchemaLoadError{Message: "failed to load schema or document", Cause: err}
	}

	if result.Valid() {
		return nil
	}

	validationErr := &ValidationError{
		Errors: make([]FieldError, 0, len(result.Errors())),
	}
	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		validationErr.Errors = append(validationErr.Errors, FieldError{
			Field:   field,
			Message: desc.Description(),
		})
	}

	return validationErr
}

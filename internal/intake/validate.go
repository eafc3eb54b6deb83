// Package intake validates raw candidate-supplied form fields before
// anything downstream runs.
package intake

import (
	"github.com/mikhail/resume-builder/internal/types"
)

// RequiredFields is the set of intake fields that must be present,
// non-empty strings. Kept as plain configuration data so the contract
// is visible in one place.
var RequiredFields = []string{"name", "email"}

// Validate checks the raw field mapping against the intake contract
// and builds an IntakeRecord. Checks run in three groups, each over
// every required field: presence, then non-emptiness, then string
// type. The first violation encountered is returned (fail-fast).
// All non-required fields default to the empty string when absent.
func Validate(fields map[string]any) (*types.IntakeRecord, error) {
	for _, field := range RequiredFields {
		if _, ok := fields[field]; !ok {
			return nil, &ValidationError{Field: field, Message: field + " is required"}
		}
	}

	for _, field := range RequiredFields {
		if value, ok := fields[field].(string); ok && value == "" {
			return nil, &ValidationError{
				Field:   field,
				Message: field + " cannot be empty. Please enter a value for " + field,
			}
		}
	}

	for _, field := range RequiredFields {
		if _, ok := fields[field].(string); !ok {
			return nil, &ValidationError{Field: field, Message: field + " must be a string"}
		}
	}

	return &types.IntakeRecord{
		Name:                 stringField(fields, "name"),
		Email:                stringField(fields, "email"),
		PhoneNumber:          stringField(fields, "phone_number"),
		LinkedinProfile:      stringField(fields, "linkedin_profile"),
		GithubProfile:        stringField(fields, "github_profile"),
		Experience:           stringField(fields, "experience"),
		Projects:             stringField(fields, "projects"),
		Education:            stringField(fields, "education"),
		Skills:               stringField(fields, "skills"),
		Coursework:           stringField(fields, "coursework"),
		Certifications:       stringField(fields, "certifications"),
		Involvement:          stringField(fields, "involvement"),
		Summary:              stringField(fields, "summary"),
		TargetJobTitle:       stringField(fields, "target_job_title"),
		TargetJobDescription: stringField(fields, "target_job_description"),
	}, nil
}

// stringField returns the value for key when it is a string, otherwise "".
func stringField(fields map[string]any, key string) string {
	if value, ok := fields[key].(string); ok {
		return value
	}
	return ""
}

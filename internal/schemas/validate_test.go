package schemas

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const conformingRecord = `{
	"name": "Jane Doe",
	"contact_info": {"email": "jane@x.com"},
	"experience": [{"job_title": "Engineer", "company": "Acme"}],
	"projects": [],
	"education": [],
	"certificates": [],
	"involvement": [],
	"skills": {"all_skills": ["Go"]}
}`

func TestValidateResumeRecord_Valid(t *testing.T) {
	assert.NoError(t, ValidateResumeRecord(conformingRecord))
}

func TestValidateResumeRecord_MissingName(t *testing.T) {
	err := ValidateResumeRecord(`{"experience": []}`)
	require.Error(t, err)

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.NotEmpty(t, vErr.Errors)
	assert.Contains(t, vErr.First().Message, "name")
}

func TestValidateResumeRecord_OmittedSectionsConform(t *testing.T) {
	// Only name is required; absent sections are filled in by
	// normalization downstream.
	assert.NoError(t, ValidateResumeRecord(`{"name": "Jane Doe"}`))
}

func TestValidateResumeRecord_WrongEntryShape(t *testing.T) {
	payload := `{
		"name": "Jane Doe",
		"contact_info": {},
		"experience": [{"job_title": "Engineer"}],
		"projects": [],
		"education": [],
		"certificates": [],
		"involvement": [],
		"skills": {}
	}`

	err := ValidateResumeRecord(payload)
	require.Error(t, err)

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Contains(t, vErr.Error(), "company")
}

func TestValidateResumeRecord_NotJSON(t *testing.T) {
	err := ValidateResumeRecord("not json at all")
	require.Error(t, err)

	var loadErr *SchemaLoadError
	assert.ErrorAs(t, err, &loadErr)
}

func TestValidationError_First(t *testing.T) {
	empty := &ValidationError{}
	assert.Equal(t, "(root)", empty.First().Field)

	withErrors := &ValidationError{Errors: []FieldError{
		{Field: "name", Message: "name is required"},
		{Field: "skills", Message: "Invalid type"},
	}}
	assert.Equal(t, "name", withErrors.First().Field)
}

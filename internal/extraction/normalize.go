// Package extraction turns loosely structured intake fields or raw
// document text into the canonical resume record via a single round
// trip to the text-generation service.
package extraction

import (
	"context"
	"encoding/json"

	"github.com/mikhail/resume-builder/internal/llm"
	"github.com/mikhail/resume-builder/internal/prompts"
	"github.com/mikhail/resume-builder/internal/schemas"
	"github.com/mikhail/resume-builder/internal/types"
)

// Normalizer converts untrusted input into schema-valid records. The
// pipeline depends on this interface so tests can substitute a
// deterministic stub for the live service.
type Normalizer interface {
	// GenerateResume produces the canonical resume record from validated intake fields.
	GenerateResume(ctx context.Context, intake *types.IntakeRecord) (*types.ResumeRecord, error)
	// ReadDocument parses text extracted from an uploaded resume into intake fields.
	ReadDocument(ctx context.Context, text string) (*types.IntakeRecord, error)
}

// LLMNormalizer implements Normalizer on top of the llm.Client
// abstraction. It holds no state between calls.
type LLMNormalizer struct {
	client llm.Client
}

// NewLLMNormalizer wraps an LLM client.
func NewLLMNormalizer(client llm.Client) *LLMNormalizer {
	return &LLMNormalizer{client: client}
}

// GenerateResume builds the resume-writer prompt from every intake
// field, performs one JSON generation round trip, validates the
// payload against the resume record schema, and unmarshals it. A
// malformed payload fails with a SchemaError naming the first
// structural mismatch; there is no retry and no partial fill.
func (n *LLMNormalizer) GenerateResume(ctx context.Context, intake *types.IntakeRecord) (*types.ResumeRecord, error) {
	prompt := buildGenerationPrompt(intake)

	payload, err := n.client.GenerateJSON(ctx, prompt, llm.TierStandard)
	if err != nil {
		return nil, &APICallError{Message: "resume generation request failed", Cause: err}
	}

	return ParseResumeRecord(payload)
}

// ReadDocument parses raw resume text into intake fields using the
// resume-reader extraction schema. Fields the service omits come back
// as empty strings.
func (n *LLMNormalizer) ReadDocument(ctx context.Context, text string) (*types.IntakeRecord, error) {
	prompt := llm.BuildExtractionPrompt(llm.ResumeIntakeSchema(), text)

	payload, err := n.client.GenerateJSON(ctx, prompt, llm.TierLite)
	if err != nil {
		return nil, &APICallError{Message: "resume read request failed", Cause: err}
	}

	var intake types.IntakeRecord
	if err := json.Unmarshal([]byte(llm.CleanJSONBlock(payload)), &intake); err != nil {
		return nil, &SchemaError{Message: "payload is not a valid intake object", Cause: err}
	}

	return &intake, nil
}

// ParseResumeRecord validates a JSON payload against the resume
// record schema and unmarshals it into a normalized ResumeRecord.
// Exposed so callers holding a raw payload (tests, replays) share the
// exact failure semantics of the normalizer.
func ParseResumeRecord(payload string) (*types.ResumeRecord, error) {
	payload = llm.CleanJSONBlock(payload)

	if err := schemas.ValidateResumeRecord(payload); err != nil {
		if ve, ok := err.(*schemas.ValidationError); ok {
			first := ve.First()
			return nil, &SchemaError{Field: first.Field, Message: first.Message, Cause: ve}
		}
		return nil, &SchemaError{Message: "payload is not valid JSON", Cause: err}
	}

	var record types.ResumeRecord
	if err := json.Unmarshal([]byte(payload), &record); err != nil {
		return nil, &SchemaError{Message: "failed to decode resume record", Cause: err}
	}

	return record.Normalize(), nil
}

// buildGenerationPrompt fills the resume-writer template with every
// intake field.
func buildGenerationPrompt(intake *types.IntakeRecord) string {
	template := prompts.MustGet("extraction.json", "generate-resume")
	return prompts.Format(template, map[string]string{
		"Name":                 intake.Name,
		"Email":                intake.Email,
		"PhoneNumber":          intake.PhoneNumber,
		"LinkedinProfile":      intake.LinkedinProfile,
		"GithubProfile":        intake.GithubProfile,
		"Experience":           intake.Experience,
		"Projects":             intake.Projects,
		"Education":            intake.Education,
		"Skills":               intake.Skills,
		"Coursework":           intake.Coursework,
		"Certifications":       intake.Certifications,
		"Involvement":          intake.Involvement,
		"Summary":              intake.Summary,
		"TargetJobTitle":       intake.TargetJobTitle,
		"TargetJobDescription": intake.TargetJobDescription,
	})
}

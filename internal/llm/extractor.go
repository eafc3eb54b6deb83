// Package llm - extractor.go provides generic structured extraction
// prompt construction.
package llm

import (
	"fmt"
	"strings"
)

// ExtractionSchema defines the shape of an LLM-based extraction: a
// task description plus the exact output fields the service may fill.
type ExtractionSchema struct {
	Name        string        // Schema name (e.g., "ResumeIntake")
	Description string        // Preamble describing the extraction task
	Fields      []SchemaField // Expected output fields
}

// SchemaField defines a single field in the extraction output.
type SchemaField struct {
	Name        string // JSON field name
	Type        string // Type hint: "string", "[]string"
	Description string // Description for the LLM
	Required    bool   // Whether this field is required
}

// BuildExtractionPrompt constructs the extraction prompt from a schema
// and the input text. The service is instructed to return only the
// schema's fields and never to invent dates, quantities, or
// proficiency levels that the text does not state.
func BuildExtractionPrompt(schema ExtractionSchema, inputText string) string {
	var sb strings.Builder

	sb.WriteString(schema.Description)
	sb.WriteString("\n\n")

	sb.WriteString("Return ONLY valid JSON matching this exact structure:\n{\n")
	for i, field := range schema.Fields {
		typeHint := field.Type
		if typeHint == "" {
			typeHint = "string"
		}
		requiredHint := ""
		if field.Required {
			requiredHint = " (required)"
		}
		sb.WriteString(fmt.Sprintf("  \"%s\": %s%s", field.Name, typeHint, requiredHint))
		if field.Description != "" {
			sb.WriteString(fmt.Sprintf(" // %s", field.Description))
		}
		if i < len(schema.Fields)-1 {
			sb.WriteString(",")
		}
		sb.WriteString("\n")
	}
	sb.WriteString("}\n\n")

	sb.WriteString("IMPORTANT:\n")
	sb.WriteString("- Only return fields that exist in the structure above.\n")
	sb.WriteString("- Do not infer dates, quantities, or proficiency levels that the text does not state.\n")
	sb.WriteString("- Any field without relevant information must be an empty string.\n")
	sb.WriteString("- Return ONLY the JSON object, no markdown, no explanation, no code blocks.\n\n")

	sb.WriteString("Input text:\n\"\"\"\n")
	sb.WriteString(inputText)
	sb.WriteString("\n\"\"\"\n")

	return sb.String()
}

// ResumeIntakeSchema returns the extraction schema used to read an
// uploaded resume's text into intake fields.
func ResumeIntakeSchema() ExtractionSchema {
	return ExtractionSchema{
		Name: "ResumeIntake",
		Description: `You are a professional resume reader. Analyze the resume content and extract the candidate's information.
Special instructions:
- When presented with a link, return the URL, not markdown format.
- When given a list of items, return each item on a separate line.
- When given experience, respond as a string where each experience is separated by a new line and each experience includes accomplishments.
- When given education, list out the degree and the school. Do not make up dates.
- When given skills, list out the skills and the proficiency. Do not make up numbers.`,
		Fields: []SchemaField{
			{Name: "name", Type: "\"string\"", Description: "Candidate's full name", Required: true},
			{Name: "email", Type: "\"string\"", Description: "Email address", Required: true},
			{Name: "phone_number", Type: "\"string\"", Description: "Phone number"},
			{Name: "linkedin_profile", Type: "\"string\"", Description: "LinkedIn URL"},
			{Name: "github_profile", Type: "\"string\"", Description: "GitHub URL"},
			{Name: "experience", Type: "\"string\"", Description: "One experience per line with accomplishments"},
			{Name: "projects", Type: "\"string\"", Description: "One project per line"},
			{Name: "education", Type: "\"string\"", Description: "Degree and school, one per line"},
			{Name: "skills", Type: "\"string\"", Description: "Comma-separated skills"},
			{Name: "coursework", Type: "\"string\"", Description: "Relevant coursework, one per line"},
			{Name: "certifications", Type: "\"string\"", Description: "Certifications, one per line"},
			{Name: "involvement", Type: "\"string\"", Description: "Extracurricular involvement, one per line"},
			{Name: "summary", Type: "\"string\"", Description: "Professional summary if present"},
		},
	}
}

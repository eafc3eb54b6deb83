// Package types provides type definitions for structured data used throughout the resume-builder system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// IntakeRecord represents the raw, loosely validated candidate-supplied
// fields collected from the intake form or extracted from an uploaded
// resume. All fields are free text; only name and email are required.
type IntakeRecord struct {
	Name                 string `json:"name"`
	Email                string `json:"email"`
	PhoneNumber          string `json:"phone_number"`
	LinkedinProfile      string `json:"linkedin_profile"`
	GithubProfile        string `json:"github_profile"`
	Experience           string `json:"experience"`
	Projects             string `json:"projects"`
	Education            string `json:"education"`
	Skills               string `json:"skills"`
	Coursework           string `json:"coursework"`
	Certifications       string `json:"certifications"`
	Involvement          string `json:"involvement"`
	Summary              string `json:"summary"`
	TargetJobTitle       string `json:"target_job_title"`
	TargetJobDescription string `json:"target_job_description"`
}

// IntakeField is a single named intake value.
type IntakeField struct {
	Key   string
	Value string
}

// Fields returns the intake record as an ordered list of (key, value)
// pairs. The order matches the struct declaration and is relied on by
// prompt construction so that generated prompts are stable.
func (r *IntakeRecord) Fields() []IntakeField {
	return []IntakeField{
		{"name", r.Name},
		{"email", r.Email},
		{"phone_number", r.PhoneNumber},
		{"linkedin_profile", r.LinkedinProfile},
		{"github_profile", r.GithubProfile},
		{"experience", r.Experience},
		{"projects", r.Projects},
		{"education", r.Education},
		{"skills", r.Skills},
		{"coursework", r.Coursework},
		{"certifications", r.Certifications},
		{"involvement", r.Involvement},
		{"summary", r.Summary},
		{"target_job_title", r.TargetJobTitle},
		{"target_job_description", r.TargetJobDescription},
	}
}

//nolint:revive // types is a standard Go package name pattern
package types

import "strings"

// ResumeRecord is the canonical, schema-conformant representation of a
// candidate's resume produced by the extraction normalizer. Every list
// field is always present (possibly empty), never nil, after Normalize.
type ResumeRecord struct {
	Name                 string             `json:"name"`
	ContactInfo          ContactInfo        `json:"contact_info"`
	Summary              string             `json:"summary"`
	Experience           []ExperienceEntry  `json:"experience"`
	Projects             []ProjectEntry     `json:"projects"`
	Education            []EducationEntry   `json:"education"`
	Certificates         []CertificateEntry `json:"certificates"`
	Involvement          []InvolvementEntry `json:"involvement"`
	Skills               SkillSet           `json:"skills"`
	TargetJobTitle       string             `json:"target_job_title"`
	TargetJobDescription string             `json:"target_job_description"`
}

// ContactInfo holds the candidate's contact details.
type ContactInfo struct {
	Location        string `json:"location"`
	PhoneNumber     string `json:"phone_number"`
	Email           string `json:"email"`
	LinkedinProfile string `json:"linkedin_profile"`
	GithubProfile   string `json:"github_profile"`
}

// ExperienceEntry represents one job. An empty EndDate means the role
// is current and renders as "Present".
type ExperienceEntry struct {
	JobTitle    string   `json:"job_title"`
	Company     string   `json:"company"`
	Location    string   `json:"location"`
	StartDate   string   `json:"start_date"`
	EndDate     string   `json:"end_date,omitempty"`
	Description []string `json:"description"`
}

// ProjectEntry represents one project. GithubLink is optional; when it
// is empty the renderer omits the link line entirely.
type ProjectEntry struct {
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	GithubLink   string   `json:"github_link,omitempty"`
	Technologies []string `json:"technologies"`
}

// EducationEntry represents one degree.
type EducationEntry struct {
	Degree         string `json:"degree"`
	School         string `json:"school"`
	Location       string `json:"location"`
	GraduationDate string `json:"graduation_date"`
}

// CertificateEntry represents one certification.
type CertificateEntry struct {
	Name string `json:"name"`
	Date string `json:"date"`
}

// InvolvementEntry represents one extracurricular or volunteer role.
type InvolvementEntry struct {
	Role         string `json:"role"`
	Organization string `json:"organization"`
	Description  string `json:"description"`
}

// SkillSet holds the candidate's skills as a flat list.
type SkillSet struct {
	AllSkills []string `json:"all_skills"`
}

// Normalize replaces nil slices with empty ones so that downstream
// consumers (flattening, rendering, JSON round trips) never see null
// list fields. It mutates the record in place and returns it.
func (r *ResumeRecord) Normalize() *ResumeRecord {
	if r.Experience == nil {
		r.Experience = []ExperienceEntry{}
	}
	for i := range r.Experience {
		if r.Experience[i].Description == nil {
			r.Experience[i].Description = []string{}
		}
	}
	if r.Projects == nil {
		r.Projects = []ProjectEntry{}
	}
	for i := range r.Projects {
		if r.Projects[i].Technologies == nil {
			r.Projects[i].Technologies = []string{}
		}
	}
	if r.Education == nil {
		r.Education = []EducationEntry{}
	}
	if r.Certificates == nil {
		r.Certificates = []CertificateEntry{}
	}
	if r.Involvement == nil {
		r.Involvement = []InvolvementEntry{}
	}
	if r.Skills.AllSkills == nil {
		r.Skills.AllSkills = []string{}
	}
	return r
}

// FlatRecord is the deterministic flat projection of a ResumeRecord
// used for external persistence. Keys preserves the canonical field
// order so that iteration is stable across calls.
type FlatRecord struct {
	Keys   []string
	Fields map[string]string
}

// Flatten projects the record into a FlatRecord using fixed join
// rules: list sections become one line per entry, skills become a
// comma-separated string, contact info expands into separate keys, and
// summary is included only when non-empty. Calling Flatten twice on
// equal records yields identical results.
func (r *ResumeRecord) Flatten() *FlatRecord {
	flat := &FlatRecord{Fields: make(map[string]string)}

	add := func(key, value string) {
		flat.Keys = append(flat.Keys, key)
		flat.Fields[key] = value
	}

	add("name", r.Name)
	add("email", r.ContactInfo.Email)
	add("phone_number", r.ContactInfo.PhoneNumber)
	add("linkedin_profile", r.ContactInfo.LinkedinProfile)
	add("github_profile", r.ContactInfo.GithubProfile)

	if r.Summary != "" {
		add("summary", r.Summary)
	}

	experience := make([]string, 0, len(r.Experience))
	for _, job := range r.Experience {
		experience = append(experience, job.JobTitle+" - "+job.Company)
	}
	add("experience", strings.Join(experience, "\n"))

	projects := make([]string, 0, len(r.Projects))
	for _, project := range r.Projects {
		projects = append(projects, project.Title+" - "+project.Description)
	}
	add("projects", strings.Join(projects, "\n"))

	education := make([]string, 0, len(r.Education))
	for _, edu := range r.Education {
		education = append(education, edu.Degree+" - "+edu.School)
	}
	add("education", strings.Join(education, "\n"))

	certificates := make([]string, 0, len(r.Certificates))
	for _, cert := range r.Certificates {
		certificates = append(certificates, cert.Name+" - "+cert.Date)
	}
	add("certificates", strings.Join(certificates, "\n"))

	involvement := make([]string, 0, len(r.Involvement))
	for _, inv := range r.Involvement {
		involvement = append(involvement, inv.Role+" - "+inv.Organization)
	}
	add("involvement", strings.Join(involvement, "\n"))

	add("skills", strings.Join(r.Skills.AllSkills, ", "))
	add("target_job_title", r.TargetJobTitle)
	add("target_job_description", r.TargetJobDescription)

	return flat
}

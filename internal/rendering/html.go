// Package rendering lays the canonical resume record out into a
// paginated PDF document.
package rendering

import (
	_ "embed"
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/mikhail/resume-builder/internal/types"
)

//go:embed resume.html.tmpl
var resumeTemplate string

// Section order is a hard contract: header+contact, summary,
// experience, projects, education, certificates, involvement, skills.
// The template encodes it; tests assert against it.

var layoutTmpl = template.Must(
	template.New("resume").Funcs(template.FuncMap{
		"join": strings.Join,
	}).Parse(resumeTemplate),
)

// BuildHTML produces the fixed-order HTML layout for a resume record.
// Section headings print even when their lists are empty. A record
// without a name cannot be laid out and fails with a RenderError.
func BuildHTML(record *types.ResumeRecord) (string, error) {
	if record == nil {
		return "", &RenderError{Message: "record is nil"}
	}
	if strings.TrimSpace(record.Name) == "" {
		return "", &RenderError{Message: "record is missing required field: name"}
	}

	var sb strings.Builder
	if err := layoutTmpl.Execute(&sb, record); err != nil {
		return "", &TemplateError{Message: "failed to execute layout template", Cause: err}
	}

	return sb.String(), nil
}

// FileName returns the artifact filename for a candidate name and
// generation date: "{name}_Resume_{YYYY-MM-DD}.pdf".
func FileName(name string, generatedAt time.Time) string {
	return fmt.Sprintf("%s_Resume_%s.pdf", name, generatedAt.Format("2006-01-02"))
}

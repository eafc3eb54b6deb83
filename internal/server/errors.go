package server

import (
	"net/http"

	"github.com/mikhail/resume-builder/internal/docparse"
	"github.com/mikhail/resume-builder/internal/extraction"
	"github.com/mikhail/resume-builder/internal/intake"
	"github.com/mikhail/resume-builder/internal/rendering"
)

// HTTPStatus maps pipeline error types to response status codes.
// Intake violations are the user's to fix; extraction failures are
// the upstream service's; render failures are ours.
func HTTPStatus(err error) int {
	switch err.(type) {
	case *intake.ValidationError:
		return http.StatusBadRequest
	case *docparse.ExtractError:
		return http.StatusBadRequest
	case *extraction.APICallError, *extraction.SchemaError:
		return http.StatusBadGateway
	case *rendering.RenderError, *rendering.TemplateError:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

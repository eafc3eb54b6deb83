package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/mikhail/resume-builder/internal/docparse"
	"github.com/mikhail/resume-builder/internal/intake"
	"github.com/mikhail/resume-builder/internal/session"
	"github.com/mikhail/resume-builder/internal/types"
)

// maxUploadBytes caps uploaded resume documents.
const maxUploadBytes = 10 << 20

// validate is shared across requests; validator instances cache
// struct metadata and are safe for concurrent use.
var validate = validator.New()

// SessionResponse is returned when a session is created.
type SessionResponse struct {
	SessionID string `json:"session_id"`
	Prefill   any    `json:"prefill,omitempty"`
}

// GenerateResponse is returned by a successful generation run.
type GenerateResponse struct {
	SessionID string `json:"session_id"`
	Record    any    `json:"record"`
	FileName  string `json:"file_name"`
}

// FeedbackRequest is the user feedback payload.
type FeedbackRequest struct {
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Comment string `json:"comment,omitempty"`
}

// handleCreateSession opens a new builder session. In dev mode the
// sample intake is attached as prefill.
func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	sess := s.sessions.Create()

	resp := SessionResponse{SessionID: sess.ID.String()}
	if s.devMode {
		sample := intake.SampleRecord()
		sess.SetPrefill(sample)
		resp.Prefill = sample
	}

	s.jsonResponse(w, http.StatusCreated, resp)
}

// handleGenerate validates the submitted intake fields and runs the
// pipeline. Fields absent from the request fall back to the session's
// prefill. Validation failures are handled here, at the boundary
// closest to the user, and never propagate further.
func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}

	var fields map[string]any
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	if prefill := sess.Prefill(); prefill != nil {
		fields = mergePrefill(fields, prefill.Fields())
	}

	record, err := intake.Validate(fields)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	result, err := s.pipeline.Run(r.Context(), sess, record)
	if err != nil {
		s.logger.Error().Err(err).Stringer("session_id", sess.ID).Msg("pipeline run failed")
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, GenerateResponse{
		SessionID: sess.ID.String(),
		Record:    result.Record,
		FileName:  result.Artifact.FileName,
	})
}

// handleGetRecord returns the cached canonical record.
func (s *Server) handleGetRecord(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}

	record := sess.Record()
	if record == nil {
		s.errorResponse(w, http.StatusNotFound, "No resume generated for this session")
		return
	}

	s.jsonResponse(w, http.StatusOK, record)
}

// handleGetArtifact downloads the rendered PDF. The artifact is
// served from the session cache; rendering happens during generate.
func (s *Server) handleGetArtifact(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}

	if sess.Record() == nil {
		s.errorResponse(w, http.StatusNotFound, "No resume generated for this session")
		return
	}

	artifact, err := sess.GetOrRender(r.Context(), s.pipeline.Renderer)
	if err != nil {
		s.logger.Error().Err(err).Stringer("session_id", sess.ID).Msg("render failed")
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", artifact.FileName))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(artifact.PDF)
}

// handleReset clears the cached record and artifact but keeps any
// prefill from an uploaded document.
func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}

	sess.Reset()
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "reset"})
}

// handleUpload accepts a resume PDF, extracts its text, and reads it
// into prefill intake fields through the extraction service.
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	file, _, err := r.FormFile("resume")
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Missing resume file: "+err.Error())
		return
	}
	defer func() { _ = file.Close() }()

	text, err := docparse.ExtractText(file)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	prefill, err := s.pipeline.Normalizer.ReadDocument(r.Context(), text)
	if err != nil {
		s.logger.Error().Err(err).Stringer("session_id", sess.ID).Msg("document read failed")
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	sess.SetPrefill(prefill)
	s.jsonResponse(w, http.StatusOK, SessionResponse{
		SessionID: sess.ID.String(),
		Prefill:   prefill,
	})
}

// handleFeedback appends a feedback record to the external store.
func (s *Server) handleFeedback(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}

	var req FeedbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := validate.Struct(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid feedback: "+err.Error())
		return
	}

	if s.feedback == nil {
		s.errorResponse(w, http.StatusServiceUnavailable, "Feedback store is not configured")
		return
	}

	err := s.feedback.CreateRecord(r.Context(), s.feedbackTableID, map[string]any{
		"Rating":   req.Rating,
		"Feedback": req.Comment,
		"Date":     time.Now().Format("2006-01-02"),
	})
	if err != nil {
		s.logger.Error().Err(err).Stringer("session_id", sess.ID).Msg("feedback write failed")
		s.errorResponse(w, http.StatusBadGateway, "Failed to record feedback")
		return
	}

	s.jsonResponse(w, http.StatusCreated, map[string]string{"status": "recorded"})
}

// handleHealth is a liveness probe.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// session resolves the {id} path segment to a live session, writing
// the error response itself when it cannot.
func (s *Server) session(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid session ID format")
		return nil, false
	}

	sess := s.sessions.Get(id)
	if sess == nil {
		s.errorResponse(w, http.StatusNotFound, "Session not found")
		return nil, false
	}

	return sess, true
}

// mergePrefill fills intake keys absent from the request with prefill
// values. Submitted values always win.
func mergePrefill(fields map[string]any, prefill []types.IntakeField) map[string]any {
	if fields == nil {
		fields = make(map[string]any, len(prefill))
	}
	for _, f := range prefill {
		if _, ok := fields[f.Key]; !ok && f.Value != "" {
			fields[f.Key] = f.Value
		}
	}
	return fields
}

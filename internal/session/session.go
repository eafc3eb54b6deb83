// Package session holds the per-user generation cache: the intake,
// the canonical record, and the rendered artifact for one builder
// session. It replaces ambient globals with an explicit context
// object passed into each pipeline call.
package session

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"github.com/mikhail/resume-builder/internal/extraction"
	"github.com/mikhail/resume-builder/internal/rendering"
	"github.com/mikhail/resume-builder/internal/types"
)

// Session memoizes the expensive pipeline stages so the extraction
// service and the renderer each run at most once per distinct input.
type Session struct {
	ID uuid.UUID

	mu        sync.Mutex
	intakeKey string
	intake    *types.IntakeRecord
	prefill   *types.IntakeRecord
	record    *types.ResumeRecord
	artifact  *rendering.Artifact

	flight singleflight.Group
}

// New creates an empty session.
func New() *Session {
	return &Session{ID: uuid.New()}
}

// GetOrGenerate returns the cached canonical record when the intake
// is unchanged, otherwise performs exactly one extraction call for
// this intake and caches the result. A new record invalidates any
// cached artifact.
func (s *Session) GetOrGenerate(ctx context.Context, intake *types.IntakeRecord, normalizer extraction.Normalizer) (*types.ResumeRecord, error) {
	key := intakeKey(intake)

	s.mu.Lock()
	if s.record != nil && s.intakeKey == key {
		record := s.record
		s.mu.Unlock()
		return record, nil
	}
	s.mu.Unlock()

	result, err, _ := s.flight.Do("generate:"+key, func() (any, error) {
		record, err := normalizer.GenerateResume(ctx, intake)
		if err != nil {
			return nil, err
		}

		s.mu.Lock()
		s.intake = intake
		s.intakeKey = key
		s.record = record
		s.artifact = nil
		s.mu.Unlock()

		return record, nil
	})
	if err != nil {
		return nil, err
	}

	return result.(*types.ResumeRecord), nil
}

// GetOrRender returns the cached artifact for the session's current
// record, rendering at most once per record.
func (s *Session) GetOrRender(ctx context.Context, pdf rendering.PDFRenderer) (*rendering.Artifact, error) {
	s.mu.Lock()
	record := s.record
	key := s.intakeKey
	if artifact := s.artifact; artifact != nil {
		s.mu.Unlock()
		return artifact, nil
	}
	s.mu.Unlock()

	if record == nil {
		return nil, &rendering.RenderError{Message: "no resume record generated for session"}
	}

	result, err, _ := s.flight.Do("render:"+key, func() (any, error) {
		artifact, err := rendering.Render(ctx, pdf, record)
		if err != nil {
			return nil, err
		}

		s.mu.Lock()
		s.artifact = artifact
		s.mu.Unlock()

		return artifact, nil
	})
	if err != nil {
		return nil, err
	}

	return result.(*rendering.Artifact), nil
}

// Record returns the cached canonical record, or nil.
func (s *Session) Record() *types.ResumeRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.record
}

// Intake returns the intake the cached record was generated from, or nil.
func (s *Session) Intake() *types.IntakeRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.intake
}

// SetPrefill stores intake fields derived from an uploaded document.
// Prefill survives Reset so the user can regenerate without
// re-uploading.
func (s *Session) SetPrefill(prefill *types.IntakeRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prefill = prefill
}

// Prefill returns the document-derived intake fields, or nil.
func (s *Session) Prefill() *types.IntakeRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.prefill
}

// Reset clears the cached record and artifact but preserves prefill
// data.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.intake = nil
	s.intakeKey = ""
	s.record = nil
	s.artifact = nil
	s.flight = singleflight.Group{}
}

// intakeKey derives a stable cache key from the intake contents.
func intakeKey(intake *types.IntakeRecord) string {
	encoded, err := json.Marshal(intake)
	if err != nil {
		return ""
	}
	sum := sha256.Sum256(encoded)
	return hex.EncodeToString(sum[:])
}

// Package pipeline orchestrates the generation flow: validated intake
// in, canonical record persisted, rendered artifact out.
package pipeline

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/mikhail/resume-builder/internal/airtable"
	"github.com/mikhail/resume-builder/internal/db"
	"github.com/mikhail/resume-builder/internal/extraction"
	"github.com/mikhail/resume-builder/internal/rendering"
	"github.com/mikhail/resume-builder/internal/session"
	"github.com/mikhail/resume-builder/internal/types"
)

// Pipeline wires the collaborators for one deployment. Store and DB
// are optional; when nil the corresponding writes are skipped.
type Pipeline struct {
	Normalizer    extraction.Normalizer
	Renderer      rendering.PDFRenderer
	Store         *airtable.Client
	ResumeTableID string
	DB            *db.DB
	Logger        zerolog.Logger
}

// Result holds the outcome of a run.
type Result struct {
	Record   *types.ResumeRecord
	Artifact *rendering.Artifact
}

// Run executes the pipeline for one session. Extraction and render
// errors propagate and stop the run; persistence failures are logged
// and swallowed because the artifact is the user's primary goal.
// Repeat runs with the same intake are served from the session cache
// and do not re-invoke the extraction service, the store, or the
// renderer.
func (p *Pipeline) Run(ctx context.Context, sess *session.Session, intake *types.IntakeRecord) (*Result, error) {
	cached := sess.Record()

	record, err := sess.GetOrGenerate(ctx, intake, p.Normalizer)
	if err != nil {
		return nil, err
	}

	// Persist only freshly generated records; the store is append-only.
	if record != cached {
		p.persist(ctx, sess, record)
	}

	artifact, err := sess.GetOrRender(ctx, p.Renderer)
	if err != nil {
		return nil, err
	}

	if p.DB != nil && record != cached {
		if err := p.DB.SaveArtifactMeta(ctx, sess.ID, artifact.FileName, len(artifact.PDF)); err != nil {
			p.Logger.Warn().Err(err).Stringer("session_id", sess.ID).Msg("failed to record artifact metadata")
		}
	}

	return &Result{Record: record, Artifact: artifact}, nil
}

// persist writes the flattened record to the external store and the
// audit database. Both are best-effort.
func (p *Pipeline) persist(ctx context.Context, sess *session.Session, record *types.ResumeRecord) {
	if p.Store != nil {
		flat := record.Flatten()
		fields := make(map[string]any, len(flat.Keys))
		for _, key := range flat.Keys {
			fields[key] = flat.Fields[key]
		}

		if err := p.Store.CreateRecord(ctx, p.ResumeTableID, fields); err != nil {
			p.Logger.Warn().Err(err).Stringer("session_id", sess.ID).Msg("failed to persist resume record")
		}
	}

	if p.DB != nil {
		if err := p.DB.SaveResumeRecord(ctx, sess.ID, record); err != nil {
			p.Logger.Warn().Err(err).Stringer("session_id", sess.ID).Msg("failed to save resume record to database")
		}
	}
}

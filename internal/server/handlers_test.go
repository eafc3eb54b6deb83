package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mikhail/resume-builder/internal/airtable"
	"github.com/mikhail/resume-builder/internal/pipeline"
	"github.com/mikhail/resume-builder/internal/types"
)

type stubNormalizer struct {
	generateCalls int
	readCalls     int
	prefill       *types.IntakeRecord
}

func (s *stubNormalizer) GenerateResume(_ context.Context, intake *types.IntakeRecord) (*types.ResumeRecord, error) {
	s.generateCalls++
	return (&types.ResumeRecord{
		Name:        intake.Name,
		ContactInfo: types.ContactInfo{Email: intake.Email},
	}).Normalize(), nil
}

func (s *stubNormalizer) ReadDocument(_ context.Context, _ string) (*types.IntakeRecord, error) {
	s.readCalls++
	return s.prefill, nil
}

type stubRenderer struct{ calls int }

func (s *stubRenderer) RenderHTMLToPDF(_ context.Context, html string) ([]byte, error) {
	s.calls++
	return []byte(html), nil
}

type testEnv struct {
	server     *Server
	normalizer *stubNormalizer
	renderer   *stubRenderer
}

func newTestEnv(t *testing.T, mutate func(*Config)) *testEnv {
	t.Helper()

	normalizer := &stubNormalizer{}
	renderer := &stubRenderer{}
	cfg := Config{
		Pipeline: &pipeline.Pipeline{
			Normalizer: normalizer,
			Renderer:   renderer,
			Logger:     zerolog.Nop(),
		},
		Logger: zerolog.Nop(),
	}
	if mutate != nil {
		mutate(&cfg)
	}

	return &testEnv{server: New(cfg), normalizer: normalizer, renderer: renderer}
}

func (e *testEnv) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(encoded)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	rec := httptest.NewRecorder()
	e.server.Handler().ServeHTTP(rec, req)
	return rec
}

func (e *testEnv) createSession(t *testing.T) string {
	t.Helper()

	rec := e.do(t, http.MethodPost, "/sessions", nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp SessionResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp.SessionID
}

func validIntakeBody() map[string]any {
	return map[string]any{"name": "Jane Doe", "email": "jane@x.com"}
}

func TestHealth(t *testing.T) {
	env := newTestEnv(t, nil)
	rec := env.do(t, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestCreateSession(t *testing.T) {
	env := newTestEnv(t, nil)
	id := env.createSession(t)
	assert.NotEmpty(t, id)
}

func TestCreateSession_DevModeAttachesSamplePrefill(t *testing.T) {
	env := newTestEnv(t, func(cfg *Config) { cfg.DevMode = true })

	rec := env.do(t, http.MethodPost, "/sessions", nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp SessionResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.NotNil(t, resp.Prefill)
}

func TestGenerate(t *testing.T) {
	env := newTestEnv(t, nil)
	id := env.createSession(t)

	rec := env.do(t, http.MethodPost, "/sessions/"+id+"/generate", validIntakeBody())
	require.Equal(t, http.StatusOK, rec.Code)

	var resp GenerateResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, id, resp.SessionID)
	assert.Contains(t, resp.FileName, "Jane Doe_Resume_")
	assert.Equal(t, 1, env.normalizer.generateCalls)
}

func TestGenerate_ValidationFailureHaltsPipeline(t *testing.T) {
	env := newTestEnv(t, nil)
	id := env.createSession(t)

	rec := env.do(t, http.MethodPost, "/sessions/"+id+"/generate", map[string]any{"name": "Jane Doe"})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "email is required")
	assert.Equal(t, 0, env.normalizer.generateCalls)
}

func TestGenerate_EmptyFieldMessage(t *testing.T) {
	env := newTestEnv(t, nil)
	id := env.createSession(t)

	rec := env.do(t, http.MethodPost, "/sessions/"+id+"/generate", map[string]any{"name": "", "email": "jane@x.com"})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "name cannot be empty")
	assert.Equal(t, 0, env.normalizer.generateCalls)
}

func TestGenerate_RepeatDoesNotReinvoke(t *testing.T) {
	env := newTestEnv(t, nil)
	id := env.createSession(t)

	for i := 0; i < 2; i++ {
		rec := env.do(t, http.MethodPost, "/sessions/"+id+"/generate", validIntakeBody())
		require.Equal(t, http.StatusOK, rec.Code)
	}

	assert.Equal(t, 1, env.normalizer.generateCalls)
	assert.Equal(t, 1, env.renderer.calls)
}

func TestGenerate_UnknownSession(t *testing.T) {
	env := newTestEnv(t, nil)

	rec := env.do(t, http.MethodPost, "/sessions/00000000-0000-0000-0000-000000000000/generate", validIntakeBody())
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGenerate_MalformedSessionID(t *testing.T) {
	env := newTestEnv(t, nil)

	rec := env.do(t, http.MethodPost, "/sessions/not-a-uuid/generate", validIntakeBody())
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetRecord(t *testing.T) {
	env := newTestEnv(t, nil)
	id := env.createSession(t)

	rec := env.do(t, http.MethodGet, "/sessions/"+id+"/record", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	require.Equal(t, http.StatusOK, env.do(t, http.MethodPost, "/sessions/"+id+"/generate", validIntakeBody()).Code)

	rec = env.do(t, http.MethodGet, "/sessions/"+id+"/record", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var record types.ResumeRecord
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&record))
	assert.Equal(t, "Jane Doe", record.Name)
}

func TestGetArtifact(t *testing.T) {
	env := newTestEnv(t, nil)
	id := env.createSession(t)

	require.Equal(t, http.StatusOK, env.do(t, http.MethodPost, "/sessions/"+id+"/generate", validIntakeBody()).Code)

	rec := env.do(t, http.MethodGet, "/sessions/"+id+"/artifact", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	disposition := rec.Header().Get("Content-Disposition")
	assert.True(t, strings.HasPrefix(disposition, "attachment;"), disposition)
	assert.Contains(t, disposition, "Jane Doe_Resume_")
	assert.NotEmpty(t, rec.Body.Bytes())
}

func TestGetArtifact_BeforeGenerate(t *testing.T) {
	env := newTestEnv(t, nil)
	id := env.createSession(t)

	rec := env.do(t, http.MethodGet, "/sessions/"+id+"/artifact", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestReset(t *testing.T) {
	env := newTestEnv(t, nil)
	id := env.createSession(t)

	require.Equal(t, http.StatusOK, env.do(t, http.MethodPost, "/sessions/"+id+"/generate", validIntakeBody()).Code)
	require.Equal(t, http.StatusOK, env.do(t, http.MethodPost, "/sessions/"+id+"/reset", nil).Code)

	rec := env.do(t, http.MethodGet, "/sessions/"+id+"/record", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGenerate_PrefillFillsMissingFields(t *testing.T) {
	env := newTestEnv(t, func(cfg *Config) { cfg.DevMode = true })
	id := env.createSession(t)

	// Dev mode prefill supplies name and email; an empty submission
	// must still validate.
	rec := env.do(t, http.MethodPost, "/sessions/"+id+"/generate", map[string]any{})
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestGenerate_SubmittedFieldsWinOverPrefill(t *testing.T) {
	env := newTestEnv(t, func(cfg *Config) { cfg.DevMode = true })
	id := env.createSession(t)

	rec := env.do(t, http.MethodPost, "/sessions/"+id+"/generate", validIntakeBody())
	require.Equal(t, http.StatusOK, rec.Code)

	var resp GenerateResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Contains(t, resp.FileName, "Jane Doe_Resume_")
}

func TestFeedback(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"id": "rec123"}`))
	}))
	defer srv.Close()

	store, err := airtable.NewClient("key123", "base123", airtable.WithBaseURL(srv.URL))
	require.NoError(t, err)

	env := newTestEnv(t, func(cfg *Config) {
		cfg.FeedbackStore = store
		cfg.FeedbackTableID = "tblFeedback"
	})
	id := env.createSession(t)

	rec := env.do(t, http.MethodPost, "/sessions/"+id+"/feedback", map[string]any{"rating": 5, "comment": "great"})
	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestFeedback_InvalidRating(t *testing.T) {
	env := newTestEnv(t, nil)
	id := env.createSession(t)

	tests := []struct {
		name   string
		rating int
	}{
		{name: "zero", rating: 0},
		{name: "too high", rating: 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := env.do(t, http.MethodPost, "/sessions/"+id+"/feedback", map[string]any{"rating": tt.rating})
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestFeedback_StoreUnconfigured(t *testing.T) {
	env := newTestEnv(t, nil)
	id := env.createSession(t)

	rec := env.do(t, http.MethodPost, "/sessions/"+id+"/feedback", map[string]any{"rating": 4})
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestUpload_MissingFile(t *testing.T) {
	env := newTestEnv(t, nil)
	id := env.createSession(t)

	req := httptest.NewRequest(http.MethodPost, "/sessions/"+id+"/upload", strings.NewReader(""))
	req.Header.Set("Content-Type", "multipart/form-data; boundary=xxx")
	rec := httptest.NewRecorder()
	env.server.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, 0, env.normalizer.readCalls)
}

package session

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mikhail/resume-builder/internal/rendering"
	"github.com/mikhail/resume-builder/internal/types"
)

// countingNormalizer counts extraction calls so tests can assert the
// at-most-once contract.
type countingNormalizer struct {
	generateCalls int
	readCalls     int
	err           error
}

func (c *countingNormalizer) GenerateResume(_ context.Context, intake *types.IntakeRecord) (*types.ResumeRecord, error) {
	c.generateCalls++
	if c.err != nil {
		return nil, c.err
	}
	return (&types.ResumeRecord{
		Name:        intake.Name,
		ContactInfo: types.ContactInfo{Email: intake.Email},
	}).Normalize(), nil
}

func (c *countingNormalizer) ReadDocument(_ context.Context, _ string) (*types.IntakeRecord, error) {
	c.readCalls++
	return &types.IntakeRecord{}, nil
}

type countingRenderer struct {
	calls int
	err   error
}

func (c *countingRenderer) RenderHTMLToPDF(_ context.Context, html string) ([]byte, error) {
	c.calls++
	if c.err != nil {
		return nil, c.err
	}
	return []byte(html), nil
}

func intakeFor(name string) *types.IntakeRecord {
	return &types.IntakeRecord{Name: name, Email: "jane@x.com"}
}

func TestGetOrGenerate_CachesSameIntake(t *testing.T) {
	sess := New()
	normalizer := &countingNormalizer{}
	ctx := context.Background()

	first, err := sess.GetOrGenerate(ctx, intakeFor("Jane Doe"), normalizer)
	require.NoError(t, err)

	second, err := sess.GetOrGenerate(ctx, intakeFor("Jane Doe"), normalizer)
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, 1, normalizer.generateCalls)
}

func TestGetOrGenerate_ChangedIntakeRegenerates(t *testing.T) {
	sess := New()
	normalizer := &countingNormalizer{}
	ctx := context.Background()

	_, err := sess.GetOrGenerate(ctx, intakeFor("Jane Doe"), normalizer)
	require.NoError(t, err)

	record, err := sess.GetOrGenerate(ctx, intakeFor("John Doe"), normalizer)
	require.NoError(t, err)

	assert.Equal(t, "John Doe", record.Name)
	assert.Equal(t, 2, normalizer.generateCalls)
}

func TestGetOrGenerate_ErrorIsNotCached(t *testing.T) {
	sess := New()
	normalizer := &countingNormalizer{err: errors.New("service down")}
	ctx := context.Background()

	_, err := sess.GetOrGenerate(ctx, intakeFor("Jane Doe"), normalizer)
	require.Error(t, err)
	assert.Nil(t, sess.Record())

	normalizer.err = nil
	record, err := sess.GetOrGenerate(ctx, intakeFor("Jane Doe"), normalizer)
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", record.Name)
}

func TestGetOrGenerate_InvalidatesArtifact(t *testing.T) {
	sess := New()
	normalizer := &countingNormalizer{}
	renderer := &countingRenderer{}
	ctx := context.Background()

	_, err := sess.GetOrGenerate(ctx, intakeFor("Jane Doe"), normalizer)
	require.NoError(t, err)
	_, err = sess.GetOrRender(ctx, renderer)
	require.NoError(t, err)

	_, err = sess.GetOrGenerate(ctx, intakeFor("John Doe"), normalizer)
	require.NoError(t, err)
	_, err = sess.GetOrRender(ctx, renderer)
	require.NoError(t, err)

	assert.Equal(t, 2, renderer.calls)
}

func TestGetOrRender_CachesArtifact(t *testing.T) {
	sess := New()
	normalizer := &countingNormalizer{}
	renderer := &countingRenderer{}
	ctx := context.Background()

	_, err := sess.GetOrGenerate(ctx, intakeFor("Jane Doe"), normalizer)
	require.NoError(t, err)

	first, err := sess.GetOrRender(ctx, renderer)
	require.NoError(t, err)

	second, err := sess.GetOrRender(ctx, renderer)
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, 1, renderer.calls)
}

func TestGetOrRender_WithoutRecord(t *testing.T) {
	sess := New()
	artifact, err := sess.GetOrRender(context.Background(), &countingRenderer{})

	require.Error(t, err)
	assert.Nil(t, artifact)

	var renderErr *rendering.RenderError
	assert.ErrorAs(t, err, &renderErr)
}

func TestReset_PreservesPrefill(t *testing.T) {
	sess := New()
	normalizer := &countingNormalizer{}
	ctx := context.Background()

	prefill := intakeFor("Jane Doe")
	sess.SetPrefill(prefill)

	_, err := sess.GetOrGenerate(ctx, intakeFor("Jane Doe"), normalizer)
	require.NoError(t, err)

	sess.Reset()

	assert.Nil(t, sess.Record())
	assert.Nil(t, sess.Intake())
	assert.Same(t, prefill, sess.Prefill())
}

func TestReset_NextGenerateRunsAgain(t *testing.T) {
	sess := New()
	normalizer := &countingNormalizer{}
	ctx := context.Background()

	_, err := sess.GetOrGenerate(ctx, intakeFor("Jane Doe"), normalizer)
	require.NoError(t, err)

	sess.Reset()

	_, err = sess.GetOrGenerate(ctx, intakeFor("Jane Doe"), normalizer)
	require.NoError(t, err)
	assert.Equal(t, 2, normalizer.generateCalls)
}

func TestConcurrentGenerateAndRender(t *testing.T) {
	sess := New()
	normalizer := &countingNormalizer{}
	renderer := &countingRenderer{}
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := sess.GetOrGenerate(ctx, intakeFor("Jane Doe"), normalizer); err != nil {
				t.Error(err)
				return
			}
			if _, err := sess.GetOrRender(ctx, renderer); err != nil {
				t.Error(err)
			}
		}()
	}
	wg.Wait()

	require.NotNil(t, sess.Record())
	assert.Equal(t, "Jane Doe", sess.Record().Name)

	artifact, err := sess.GetOrRender(ctx, renderer)
	require.NoError(t, err)
	assert.NotEmpty(t, artifact.PDF)
}

func TestStore(t *testing.T) {
	store := NewStore()

	sess := store.Create()
	require.NotNil(t, sess)

	got := store.Get(sess.ID)
	require.NotNil(t, got)
	assert.Same(t, sess, got)

	store.Delete(sess.ID)
	assert.Nil(t, store.Get(sess.ID))
}

package workflow

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLocal struct {
	contractorID string
	lastScore    *int
	cleared      int
	err          error
}

func (f *fakeLocal) ContractorID(_ context.Context) (string, error) {
	return f.contractorID, f.err
}

func (f *fakeLocal) SetLastScore(_ context.Context, score int) error {
	f.lastScore = &score
	return nil
}

func (f *fakeLocal) Clear(_ context.Context) error {
	f.cleared++
	f.contractorID = ""
	f.lastScore = nil
	return nil
}

type fakeBackend struct {
	mu          sync.Mutex
	catalog     []Module
	catalogErr  error
	catalogHits int
	completed   []Completion
	completeErr error
	submitted   []int
	submitErr   error
	progress    []ProgressRecord
	progressHit int

	// block, when set, parks CompleteModule until it is closed.
	block   chan struct{}
	entered chan struct{}
}

func (f *fakeBackend) LoadCatalog(_ context.Context) ([]Module, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.catalogHits++
	return f.catalog, f.catalogErr
}

func (f *fakeBackend) CompleteModule(_ context.Context, _ string, c Completion) error {
	if f.block != nil {
		f.entered <- struct{}{}
		<-f.block
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.completeErr != nil {
		return f.completeErr
	}
	f.completed = append(f.completed, c)
	return nil
}

func (f *fakeBackend) Progress(_ context.Context, _ string) ([]ProgressRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.progressHit++
	return f.progress, nil
}

func (f *fakeBackend) SubmitTraining(_ context.Context, _ string, score int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.submitErr != nil {
		return f.submitErr
	}
	f.submitted = append(f.submitted, score)
	return nil
}

func startSession(t *testing.T, backend *fakeBackend) (*Session, *fakeLocal) {
	t.Helper()
	local := &fakeLocal{contractorID: "contractor-1"}
	s, err := Start(context.Background(), local, backend)
	require.NoError(t, err)
	return s, local
}

func passModule0(t *testing.T, s *Session) Outcome {
	t.Helper()
	for _, v := range []string{"welcome", "evacuation"} {
		require.NoError(t, s.MarkVideoWatched(0, v))
	}
	require.NoError(t, s.MarkBookSigned(0, "site-rules"))
	for q, opt := range []int{1, 0, 0, 3} {
		require.NoError(t, s.SetAnswer(0, q, opt))
	}
	out, err := s.SubmitQuiz(context.Background(), 0)
	require.NoError(t, err)
	require.True(t, out.Passed)
	return out
}

func TestStart_MissingContractorSkipsCatalog(t *testing.T) {
	backend := &fakeBackend{catalog: testCatalog()}
	_, err := Start(context.Background(), &fakeLocal{}, backend)
	assert.ErrorIs(t, err, ErrMissingContractorContext)
	assert.Zero(t, backend.catalogHits)

	_, err = Start(context.Background(), &fakeLocal{err: errors.New("disk gone")}, backend)
	assert.ErrorIs(t, err, ErrMissingContractorContext)
	assert.Zero(t, backend.catalogHits)
}

func TestStart_CatalogFailureBlocksFlow(t *testing.T) {
	backend := &fakeBackend{catalogErr: errors.New("connection refused")}
	s, err := Start(context.Background(), &fakeLocal{contractorID: "c"}, backend)
	assert.Nil(t, s)
	assert.ErrorIs(t, err, ErrCatalogUnavailable)
	assert.Equal(t, 1, backend.catalogHits)
	assert.Empty(t, backend.completed)
	assert.Zero(t, backend.progressHit)
	assert.Empty(t, backend.submitted)
}

func TestSession_PassReportsCompletion(t *testing.T) {
	backend := &fakeBackend{catalog: testCatalog()}
	s, local := startSession(t, backend)

	out := passModule0(t, s)
	assert.Equal(t, 75, out.Score)
	require.Len(t, backend.completed, 1)
	assert.Equal(t, uint(10), backend.completed[0].TrainingID)
	assert.Equal(t, "Site induction", backend.completed[0].Title)
	assert.Equal(t, 75, *backend.completed[0].Score)
	require.NotNil(t, local.lastScore)
	assert.Equal(t, 75, *local.lastScore)
}

func TestSession_FailedAttemptReportsNothing(t *testing.T) {
	backend := &fakeBackend{catalog: testCatalog()}
	s, local := startSession(t, backend)

	require.NoError(t, s.SetAnswer(0, 0, 0))
	_, err := s.SubmitQuiz(context.Background(), 0)
	assert.ErrorIs(t, err, ErrValidationFailure)

	for _, v := range []string{"welcome", "evacuation"} {
		require.NoError(t, s.MarkVideoWatched(0, v))
	}
	require.NoError(t, s.MarkBookSigned(0, "site-rules"))
	out, err := s.SubmitQuiz(context.Background(), 0)
	require.NoError(t, err)
	assert.False(t, out.Passed)
	assert.Empty(t, backend.completed)
	assert.Equal(t, 0, *local.lastScore)
}

func TestSession_ResubmitDoesNotDuplicate(t *testing.T) {
	backend := &fakeBackend{catalog: testCatalog()}
	s, _ := startSession(t, backend)
	passModule0(t, s)

	_, err := s.SubmitQuiz(context.Background(), 0)
	assert.ErrorIs(t, err, ErrAlreadyPassed)
	assert.Len(t, backend.completed, 1)
}

func TestSession_ConcurrentSubmitIsRejected(t *testing.T) {
	backend := &fakeBackend{
		catalog: testCatalog(),
		block:   make(chan struct{}),
		entered: make(chan struct{}, 1),
	}
	s, _ := startSession(t, backend)
	for _, v := range []string{"welcome", "evacuation"} {
		require.NoError(t, s.MarkVideoWatched(0, v))
	}
	require.NoError(t, s.MarkBookSigned(0, "site-rules"))
	for q, opt := range []int{1, 0, 2, 3} {
		require.NoError(t, s.SetAnswer(0, q, opt))
	}

	done := make(chan error, 1)
	go func() {
		_, err := s.SubmitQuiz(context.Background(), 0)
		done <- err
	}()
	<-backend.entered

	assert.ErrorIs(t, s.CanSubmit(0), ErrRequestPending)
	_, err := s.SubmitQuiz(context.Background(), 0)
	assert.ErrorIs(t, err, ErrRequestPending)
	_, err = s.Finish(context.Background())
	assert.ErrorIs(t, err, ErrRequestPending)

	close(backend.block)
	require.NoError(t, <-done)
	assert.Len(t, backend.completed, 1)
}

func TestSession_ReportFailureCanBeRetried(t *testing.T) {
	backend := &fakeBackend{catalog: testCatalog(), completeErr: errors.New("502")}
	s, _ := startSession(t, backend)
	for _, v := range []string{"welcome", "evacuation"} {
		require.NoError(t, s.MarkVideoWatched(0, v))
	}
	require.NoError(t, s.MarkBookSigned(0, "site-rules"))
	for q, opt := range []int{1, 0, 2, 3} {
		require.NoError(t, s.SetAnswer(0, q, opt))
	}

	out, err := s.SubmitQuiz(context.Background(), 0)
	assert.ErrorIs(t, err, ErrSubmissionFailed)
	assert.True(t, out.Passed)
	s.View(func(w *Workflow) { assert.Equal(t, StatePassed, w.State(0)) })
	assert.NoError(t, s.CanSubmit(0))

	backend.completeErr = nil
	out, err = s.SubmitQuiz(context.Background(), 0)
	require.NoError(t, err)
	assert.Equal(t, 100, out.Score)
	assert.Equal(t, 1, out.Attempt)
	assert.Len(t, backend.completed, 1)
	assert.ErrorIs(t, s.CanSubmit(0), ErrAlreadyPassed)
}

func TestSession_LastModuleFinalizes(t *testing.T) {
	backend := &fakeBackend{catalog: testCatalog()}
	s, local := startSession(t, backend)
	passModule0(t, s)

	require.NoError(t, s.SetAnswer(1, 0, 0))
	_, err := s.SubmitQuiz(context.Background(), 1)
	require.NoError(t, err)
	assert.Empty(t, backend.submitted)

	require.NoError(t, s.MarkBookSigned(2, "nda"))
	out, err := s.SubmitQuiz(context.Background(), 2)
	require.NoError(t, err)
	assert.True(t, out.Finished)

	require.Equal(t, []int{92}, backend.submitted)
	assert.Len(t, backend.completed, 3)
	assert.Equal(t, 1, local.cleared)
	assert.Empty(t, local.contractorID)

	_, err = s.Finish(context.Background())
	assert.ErrorIs(t, err, ErrSessionClosed)
}

func TestSession_ExplicitFinishUsesAttemptedScores(t *testing.T) {
	backend := &fakeBackend{catalog: testCatalog(), submitErr: errors.New("timeout")}
	s, local := startSession(t, backend)
	passModule0(t, s)

	_, err := s.Finish(context.Background())
	assert.ErrorIs(t, err, ErrSubmissionFailed)
	assert.Zero(t, local.cleared)
	assert.Equal(t, "contractor-1", local.contractorID)

	backend.submitErr = nil
	redirect, err := s.Finish(context.Background())
	require.NoError(t, err)
	assert.Equal(t, RedirectComplete, redirect)
	assert.Equal(t, []int{75}, backend.submitted)
	assert.Equal(t, 1, local.cleared)
}

func TestSession_RedoClearsLocalState(t *testing.T) {
	backend := &fakeBackend{catalog: testCatalog()}
	s, local := startSession(t, backend)
	passModule0(t, s)

	redirect, err := s.Redo(context.Background())
	require.NoError(t, err)
	assert.Equal(t, RedirectCheckIn, redirect)
	assert.Empty(t, local.contractorID)
	assert.Nil(t, local.lastScore)
	assert.Empty(t, backend.submitted)
	assert.ErrorIs(t, s.MarkVideoWatched(1, "x"), ErrSessionClosed)
}

func TestSession_ResumeRestoresRecordedModules(t *testing.T) {
	score := 80
	backend := &fakeBackend{
		catalog: testCatalog(),
		progress: []ProgressRecord{
			{TrainingID: 10, Title: "Site induction", Score: &score},
			{TrainingID: 13, Title: "Acknowledgement"},
		},
	}
	s, _ := startSession(t, backend)

	restored, err := s.Resume(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, restored, "module 13 is behind an unpassed module")
	s.View(func(w *Workflow) {
		assert.Equal(t, StatePassed, w.State(0))
		assert.Equal(t, StateUnlockable, w.State(1))
		assert.Equal(t, StateLocked, w.State(2))
		assert.Equal(t, 80, w.AggregateScore())
	})
	assert.ErrorIs(t, s.CanSubmit(0), ErrAlreadyPassed)
}

func TestSession_MutationsRejectedWhileSubmitting(t *testing.T) {
	backend := &fakeBackend{
		catalog: testCatalog(),
		block:   make(chan struct{}),
		entered: make(chan struct{}, 1),
	}
	s, _ := startSession(t, backend)
	for _, v := range []string{"welcome", "evacuation"} {
		require.NoError(t, s.MarkVideoWatched(0, v))
	}
	require.NoError(t, s.MarkBookSigned(0, "site-rules"))
	for q, opt := range []int{1, 0, 2, 3} {
		require.NoError(t, s.SetAnswer(0, q, opt))
	}

	done := make(chan error, 1)
	go func() {
		_, err := s.SubmitQuiz(context.Background(), 0)
		done <- err
	}()
	<-backend.entered

	assert.ErrorIs(t, s.SetAnswer(0, 0, 0), ErrRequestPending)
	assert.ErrorIs(t, s.MarkVideoWatched(0, "welcome"), ErrRequestPending)
	assert.ErrorIs(t, s.MarkBookSigned(0, "site-rules"), ErrRequestPending)
	assert.ErrorIs(t, s.Begin(1), ErrRequestPending)

	close(backend.block)
	require.NoError(t, <-done)
	require.Len(t, backend.completed, 1)
	assert.Equal(t, 100, *backend.completed[0].Score)
	s.View(func(w *Workflow) { assert.Equal(t, StateUnlockable, w.State(1)) })
	require.NoError(t, s.Begin(1))
}

func TestSession_FinalizeFailureNeedsFinish(t *testing.T) {
	backend := &fakeBackend{catalog: testCatalog(), submitErr: errors.New("503")}
	s, local := startSession(t, backend)
	passModule0(t, s)
	require.NoError(t, s.SetAnswer(1, 0, 0))
	_, err := s.SubmitQuiz(context.Background(), 1)
	require.NoError(t, err)
	require.NoError(t, s.MarkBookSigned(2, "nda"))

	out, err := s.SubmitQuiz(context.Background(), 2)
	assert.ErrorIs(t, err, ErrFinalizeFailed)
	assert.ErrorIs(t, err, ErrSubmissionFailed)
	assert.True(t, out.Passed)
	assert.True(t, out.Finished)
	assert.Len(t, backend.completed, 3)
	assert.Zero(t, local.cleared)

	_, err = s.SubmitQuiz(context.Background(), 2)
	assert.ErrorIs(t, err, ErrAlreadyPassed)

	backend.submitErr = nil
	redirect, err := s.Finish(context.Background())
	require.NoError(t, err)
	assert.Equal(t, RedirectComplete, redirect)
	assert.Equal(t, []int{92}, backend.submitted)
	assert.Len(t, backend.completed, 3)
	assert.Equal(t, 1, local.cleared)
}

func TestSession_ReportFailureIsNotFinalizeFailure(t *testing.T) {
	backend := &fakeBackend{catalog: testCatalog(), completeErr: errors.New("502")}
	s, _ := startSession(t, backend)
	for _, v := range []string{"welcome", "evacuation"} {
		require.NoError(t, s.MarkVideoWatched(0, v))
	}
	require.NoError(t, s.MarkBookSigned(0, "site-rules"))
	for q, opt := range []int{1, 0, 2, 3} {
		require.NoError(t, s.SetAnswer(0, q, opt))
	}

	_, err := s.SubmitQuiz(context.Background(), 0)
	assert.ErrorIs(t, err, ErrSubmissionFailed)
	assert.NotErrorIs(t, err, ErrFinalizeFailed)
}

func TestSession_ResumeWithoutScoreIsNotCounted(t *testing.T) {
	backend := &fakeBackend{
		catalog:  testCatalog(),
		progress: []ProgressRecord{{TrainingID: 10, Title: "Site induction"}},
	}
	s, _ := startSession(t, backend)

	restored, err := s.Resume(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, restored)

	require.NoError(t, s.SetAnswer(1, 0, 0))
	_, err = s.SubmitQuiz(context.Background(), 1)
	require.NoError(t, err)
	_, err = s.Finish(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []int{100}, backend.submitted)
}

package workflow

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"
)

// Completion is the record reported to the backend when a module is passed.
type Completion struct {
	TrainingID uint
	Title      string
	Score      *int
}

// ProgressRecord is a module completion the backend already holds.
type ProgressRecord struct {
	TrainingID  uint
	Title       string
	Score       *int
	CompletedAt time.Time
}

// Backend is the remote training service the session talks to.
type Backend interface {
	LoadCatalog(ctx context.Context) ([]Module, error)
	CompleteModule(ctx context.Context, contractorID string, c Completion) error
	Progress(ctx context.Context, contractorID string) ([]ProgressRecord, error)
	SubmitTraining(ctx context.Context, contractorID string, score int) error
}

// LocalState is the kiosk-local persistent storage of the training flow.
// ContractorID returns "" when no contractor has checked in.
type LocalState interface {
	ContractorID(ctx context.Context) (string, error)
	SetLastScore(ctx context.Context, score int) error
	Clear(ctx context.Context) error
}

// Redirect names the view the kiosk should move to.
type Redirect string

const (
	RedirectCheckIn  Redirect = "/checkin"
	RedirectComplete Redirect = "/training/complete"
)

// Session drives a Workflow against the backend. Only one backend request
// may be outstanding at a time; overlapping submissions get
// ErrRequestPending instead of producing duplicate records.
type Session struct {
	mu       sync.Mutex
	pending  bool
	closed   bool
	reported map[int]bool

	flow    *Workflow
	backend Backend
	local   LocalState
}

// Start opens a training session. The contractor id is checked before the
// catalog is fetched, and no progress call is made if the catalog fails.
func Start(ctx context.Context, local LocalState, backend Backend) (*Session, error) {
	contractorID, err := local.ContractorID(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMissingContractorContext, err)
	}
	if contractorID == "" {
		return nil, ErrMissingContractorContext
	}

	catalog, err := backend.LoadCatalog(ctx)
	if err != nil {
		if errors.Is(err, ErrCatalogUnavailable) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrCatalogUnavailable, err)
	}

	flow, err := New(catalog, contractorID)
	if err != nil {
		return nil, err
	}

	return &Session{
		flow:     flow,
		backend:  backend,
		local:    local,
		reported: make(map[int]bool),
	}, nil
}

// View runs fn with the workflow under the session lock. fn must not keep
// the pointer.
func (s *Session) View(fn func(w *Workflow)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.flow)
}

// Begin starts viewing module i.
func (s *Session) Begin(i int) error {
	return s.mutate(func(w *Workflow) error { return w.Begin(i) })
}

// MarkVideoWatched records a finished video of module i.
func (s *Session) MarkVideoWatched(i int, name string) error {
	return s.mutate(func(w *Workflow) error { return w.MarkVideoWatched(i, name) })
}

// MarkBookSigned records a signed book of module i.
func (s *Session) MarkBookSigned(i int, name string) error {
	return s.mutate(func(w *Workflow) error { return w.MarkBookSigned(i, name) })
}

// SetAnswer selects an option for a quiz question of module i.
func (s *Session) SetAnswer(i, q, option int) error {
	return s.mutate(func(w *Workflow) error { return w.SetAnswer(i, q, option) })
}

// CanSubmit returns nil when the quiz of module i may be submitted now.
func (s *Session) CanSubmit(i int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrSessionClosed
	}
	if s.pending {
		return ErrRequestPending
	}
	if s.flow.State(i) == StatePassed && !s.reported[i] {
		return nil
	}
	return s.flow.CanSubmitQuiz(i)
}

// SubmitQuiz scores module i and, on a pass, reports the completion. When
// the report fails the module stays passed and calling SubmitQuiz again
// retries the report. Passing the last module finalizes the session; if
// that fails the error is ErrFinalizeFailed and Finish must be called.
func (s *Session) SubmitQuiz(ctx context.Context, i int) (Outcome, error) {
	s.mu.Lock()
	if err := s.acquire(); err != nil {
		s.mu.Unlock()
		return Outcome{}, err
	}

	var (
		out Outcome
		err error
	)
	if s.flow.State(i) == StatePassed && !s.reported[i] {
		out, err = s.retryOutcome(i)
	} else {
		out, err = s.flow.SubmitQuiz(i)
	}
	if err != nil {
		s.pending = false
		s.mu.Unlock()
		return Outcome{}, err
	}
	contractorID := s.flow.ContractorID()
	s.mu.Unlock()
	defer s.release()

	if err := s.local.SetLastScore(ctx, out.Score); err != nil {
		log.Printf("[TRAINING] failed to persist last score for %s: %v", contractorID, err)
	}
	if !out.Passed {
		return out, nil
	}

	score := out.Score
	completion := Completion{TrainingID: out.TrainingID, Title: out.Title, Score: &score}
	if err := s.backend.CompleteModule(ctx, contractorID, completion); err != nil {
		return out, fmt.Errorf("%w: module %q: %v", ErrSubmissionFailed, out.Title, err)
	}

	s.mu.Lock()
	s.reported[i] = true
	finished := s.flow.AllPassed() && s.allReported()
	s.mu.Unlock()

	// A module whose report failed earlier still has to be retried first.
	out.Finished = finished
	if finished {
		if _, err := s.finish(ctx); err != nil {
			return out, err
		}
	}
	return out, nil
}

// Finish reports the aggregate score of all attempted modules and clears
// local contractor state. It may be called before every module is passed.
func (s *Session) Finish(ctx context.Context) (Redirect, error) {
	s.mu.Lock()
	if err := s.acquire(); err != nil {
		s.mu.Unlock()
		return "", err
	}
	s.mu.Unlock()
	defer s.release()

	return s.finish(ctx)
}

// Redo abandons the flow: local state is cleared and the kiosk goes back to
// check-in. Completions already reported stay recorded.
func (s *Session) Redo(ctx context.Context) (Redirect, error) {
	s.mu.Lock()
	if err := s.acquire(); err != nil {
		s.mu.Unlock()
		return "", err
	}
	s.mu.Unlock()
	defer s.release()

	if err := s.local.Clear(ctx); err != nil {
		return "", fmt.Errorf("clear local training state: %w", err)
	}
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
	return RedirectCheckIn, nil
}

// Resume marks modules the backend already records as completed as passed,
// in catalog order, stopping at the first module without a record.
func (s *Session) Resume(ctx context.Context) (int, error) {
	s.mu.Lock()
	if err := s.acquire(); err != nil {
		s.mu.Unlock()
		return 0, err
	}
	contractorID := s.flow.ContractorID()
	s.mu.Unlock()
	defer s.release()

	records, err := s.backend.Progress(ctx, contractorID)
	if err != nil {
		return 0, fmt.Errorf("load training progress: %w", err)
	}
	done := make(map[uint]ProgressRecord, len(records))
	for _, r := range records {
		done[r.TrainingID] = r
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	restored := 0
	for i := 0; i < s.flow.Len(); i++ {
		m := s.flow.modules[i]
		rec, ok := done[m.ID]
		if !ok {
			break
		}
		if err := s.flow.RestorePassed(i, rec.Score); err != nil {
			return restored, err
		}
		s.reported[i] = true
		restored++
	}
	return restored, nil
}

func (s *Session) finish(ctx context.Context) (Redirect, error) {
	s.mu.Lock()
	contractorID := s.flow.ContractorID()
	aggregate := s.flow.AggregateScore()
	s.mu.Unlock()

	if err := s.backend.SubmitTraining(ctx, contractorID, aggregate); err != nil {
		return "", fmt.Errorf("%w: %v", ErrFinalizeFailed, err)
	}
	if err := s.local.Clear(ctx); err != nil {
		log.Printf("[TRAINING] failed to clear local state for %s: %v", contractorID, err)
	}

	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
	return RedirectComplete, nil
}

// acquire claims the in-flight slot. Callers hold s.mu.
func (s *Session) acquire() error {
	if s.closed {
		return ErrSessionClosed
	}
	if s.pending {
		return ErrRequestPending
	}
	s.pending = true
	return nil
}

func (s *Session) release() {
	s.mu.Lock()
	s.pending = false
	s.mu.Unlock()
}

func (s *Session) mutate(fn func(w *Workflow) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrSessionClosed
	}
	if s.pending {
		return ErrRequestPending
	}
	return fn(s.flow)
}

func (s *Session) allReported() bool {
	for i := 0; i < s.flow.Len(); i++ {
		if !s.reported[i] {
			return false
		}
	}
	return true
}

// retryOutcome rebuilds the outcome of a passed module whose completion
// report has not reached the backend yet.
func (s *Session) retryOutcome(i int) (Outcome, error) {
	m := s.flow.modules[i]
	st := s.flow.states[i]
	out := Outcome{
		ModuleIndex: i,
		TrainingID:  m.ID,
		Title:       m.Title,
		Required:    m.RequiredScorePercent,
		Passed:      true,
		Attempt:     st.Attempts,
		NextModule:  -1,
	}
	if st.LastScorePercent != nil {
		out.Score = *st.LastScorePercent
	}
	if i+1 < s.flow.Len() {
		out.NextModule = i + 1
	}
	return out, nil
}

package workflow

import "fmt"

// ModuleState is the gating state of a module.
type ModuleState int

const (
	StateLocked     ModuleState = iota // previous module not passed yet
	StateUnlockable                    // reachable, not started
	StateInProgress                    // content being viewed
	StatePassed                        // quiz score met the threshold
	StateFailed                        // last attempt below threshold, retry allowed
)

func (s ModuleState) String() string {
	switch s {
	case StateLocked:
		return "locked"
	case StateUnlockable:
		return "unlockable"
	case StateInProgress:
		return "in progress"
	case StatePassed:
		return "passed"
	case StateFailed:
		return "failed"
	default:
		return fmt.Sprintf("ModuleState(%d)", int(s))
	}
}

// Outcome is the result of one quiz submission.
type Outcome struct {
	ModuleIndex int
	TrainingID  uint
	Title       string
	Score       int
	Required    int
	Passed      bool
	Attempt     int

	// NextModule is the module unlocked by this pass, or -1.
	NextModule int

	// Finished is set when this pass completed the last module.
	Finished bool
}

// Reachable reports whether module i may be opened: it is the first module,
// or the module before it has been passed.
func (w *Workflow) Reachable(i int) bool {
	if w.check(i) != nil {
		return false
	}
	return i == 0 || w.states[i-1].Passed
}

// Begin moves module i from Unlockable to InProgress. Beginning a module
// that is already in progress, failed or passed is a no-op.
func (w *Workflow) Begin(i int) error {
	if err := w.check(i); err != nil {
		return err
	}
	st := w.states[i]
	switch st.State {
	case StateLocked:
		return fmt.Errorf("%w: module %d", ErrModuleLocked, i)
	case StateUnlockable:
		st.State = StateInProgress
		w.current = i
	}
	return nil
}

// CanSubmitQuiz returns nil when the quiz of module i may be submitted.
func (w *Workflow) CanSubmitQuiz(i int) error {
	if err := w.check(i); err != nil {
		return err
	}
	switch w.states[i].State {
	case StateLocked:
		return fmt.Errorf("%w: module %d", ErrModuleLocked, i)
	case StatePassed:
		return ErrAlreadyPassed
	}
	if !w.AllMediaComplete(i) {
		return ErrValidationFailure
	}
	return nil
}

// SubmitQuiz scores the selected answers of module i. A pass unlocks the next
// module; a fail leaves the answers in place for another attempt.
func (w *Workflow) SubmitQuiz(i int) (Outcome, error) {
	if err := w.CanSubmitQuiz(i); err != nil {
		return Outcome{}, err
	}
	if err := w.Begin(i); err != nil {
		return Outcome{}, err
	}

	m, st := w.modules[i], w.states[i]
	score := Score(m, st.SelectedAnswers)
	st.Attempts++
	st.LastScorePercent = &score

	out := Outcome{
		ModuleIndex: i,
		TrainingID:  m.ID,
		Title:       m.Title,
		Score:       score,
		Required:    m.RequiredScorePercent,
		Attempt:     st.Attempts,
		NextModule:  -1,
	}

	if !Passes(m, score) {
		st.State = StateFailed
		return out, nil
	}

	w.pass(i)
	out.Passed = true
	if i+1 < len(w.modules) {
		out.NextModule = i + 1
	}
	out.Finished = w.AllPassed()
	return out, nil
}

// RestorePassed marks module i as passed with score, as recorded by the
// backend in an earlier session. Only reachable modules can be restored. A
// nil score leaves the module out of the aggregate.
func (w *Workflow) RestorePassed(i int, score *int) error {
	if err := w.check(i); err != nil {
		return err
	}
	if !w.Reachable(i) {
		return fmt.Errorf("%w: module %d", ErrModuleLocked, i)
	}
	st := w.states[i]
	if st.Passed {
		return nil
	}
	if score != nil {
		v := *score
		st.LastScorePercent = &v
	}
	w.pass(i)
	return nil
}

func (w *Workflow) pass(i int) {
	w.states[i].State = StatePassed
	w.states[i].Passed = true
	if i+1 < len(w.states) {
		if w.states[i+1].State == StateLocked {
			w.states[i+1].State = StateUnlockable
		}
		w.current = i + 1
	}
}

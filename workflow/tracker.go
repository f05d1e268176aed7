package workflow

import "fmt"

// CompletionState is the per-module progress of one contractor.
type CompletionState struct {
	State            ModuleState
	VideosWatched    map[string]bool
	BooksSigned      map[string]bool
	SelectedAnswers  map[int]int
	LastScorePercent *int
	Passed           bool
	Attempts         int
}

func newCompletionState() *CompletionState {
	return &CompletionState{
		State:           StateLocked,
		VideosWatched:   make(map[string]bool),
		BooksSigned:     make(map[string]bool),
		SelectedAnswers: make(map[int]int),
	}
}

func (c *CompletionState) clone() CompletionState {
	out := *c
	out.VideosWatched = make(map[string]bool, len(c.VideosWatched))
	for k, v := range c.VideosWatched {
		out.VideosWatched[k] = v
	}
	out.BooksSigned = make(map[string]bool, len(c.BooksSigned))
	for k, v := range c.BooksSigned {
		out.BooksSigned[k] = v
	}
	out.SelectedAnswers = make(map[int]int, len(c.SelectedAnswers))
	for k, v := range c.SelectedAnswers {
		out.SelectedAnswers[k] = v
	}
	if c.LastScorePercent != nil {
		score := *c.LastScorePercent
		out.LastScorePercent = &score
	}
	return out
}

// MarkVideoWatched records that a video was played to the end. Marking the
// same video twice is a no-op.
func (w *Workflow) MarkVideoWatched(i int, name string) error {
	st, err := w.interact(i)
	if err != nil {
		return err
	}
	if !hasMedia(w.modules[i].Videos, name) {
		return fmt.Errorf("%w: video %q", ErrUnknownMedia, name)
	}
	st.VideosWatched[MediaKey(name)] = true
	return nil
}

// MarkBookSigned records that a book was acknowledged. Idempotent.
func (w *Workflow) MarkBookSigned(i int, name string) error {
	st, err := w.interact(i)
	if err != nil {
		return err
	}
	if !hasMedia(w.modules[i].Books, name) {
		return fmt.Errorf("%w: book %q", ErrUnknownMedia, name)
	}
	st.BooksSigned[MediaKey(name)] = true
	return nil
}

// SetAnswer selects option for question q of module i, replacing any
// earlier choice.
func (w *Workflow) SetAnswer(i, q, option int) error {
	st, err := w.interact(i)
	if err != nil {
		return err
	}
	questions := w.modules[i].Questions
	if q < 0 || q >= len(questions) {
		return fmt.Errorf("%w: question %d", ErrInvalidAnswer, q)
	}
	if option < 0 || option >= len(questions[q].Options) {
		return fmt.Errorf("%w: option %d for question %d", ErrInvalidAnswer, option, q)
	}
	st.SelectedAnswers[q] = option
	return nil
}

// AllMediaComplete reports whether every video of module i was watched and
// every book signed.
func (w *Workflow) AllMediaComplete(i int) bool {
	if w.check(i) != nil {
		return false
	}
	m, st := w.modules[i], w.states[i]
	for _, v := range m.Videos {
		if !st.VideosWatched[MediaKey(v.Name)] {
			return false
		}
	}
	for _, b := range m.Books {
		if !st.BooksSigned[MediaKey(b.Name)] {
			return false
		}
	}
	return true
}

// interact returns the state of module i for mutation, beginning the module
// if it was only Unlockable.
func (w *Workflow) interact(i int) (*CompletionState, error) {
	if err := w.Begin(i); err != nil {
		return nil, err
	}
	st := w.states[i]
	if st.State == StatePassed {
		return nil, ErrAlreadyPassed
	}
	return st, nil
}

func hasMedia(media []Media, name string) bool {
	key := MediaKey(name)
	for _, m := range media {
		if MediaKey(m.Name) == key {
			return true
		}
	}
	return false
}

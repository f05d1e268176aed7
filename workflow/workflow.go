package workflow

import "strings"

// Workflow is the training gating state machine for one contractor. It owns
// no I/O: the catalog and contractor id are passed in, and every transition
// is a plain method call. It is not safe for concurrent use; Session adds the
// locking needed around backend calls.
type Workflow struct {
	contractorID string
	modules      []Module
	states       []*CompletionState
	current      int
}

// New builds a workflow over the active modules of catalog. Module 0 starts
// Unlockable, every other module Locked.
func New(catalog []Module, contractorID string) (*Workflow, error) {
	contractorID = strings.TrimSpace(contractorID)
	if contractorID == "" {
		return nil, ErrMissingContractorContext
	}

	modules := ActiveModules(catalog)
	w := &Workflow{
		contractorID: contractorID,
		modules:      modules,
		states:       make([]*CompletionState, len(modules)),
	}
	for i := range modules {
		w.states[i] = newCompletionState()
	}
	if len(modules) > 0 {
		w.states[0].State = StateUnlockable
	}
	return w, nil
}

// ContractorID returns the contractor this workflow belongs to.
func (w *Workflow) ContractorID() string { return w.contractorID }

// Len returns the number of modules in the flow.
func (w *Workflow) Len() int { return len(w.modules) }

// Current is the index of the module the contractor should work on next.
func (w *Workflow) Current() int { return w.current }

// Module returns the module at index i.
func (w *Workflow) Module(i int) (Module, error) {
	if err := w.check(i); err != nil {
		return Module{}, err
	}
	return w.modules[i], nil
}

// Completion returns a copy of the completion state of module i.
func (w *Workflow) Completion(i int) (CompletionState, error) {
	if err := w.check(i); err != nil {
		return CompletionState{}, err
	}
	return w.states[i].clone(), nil
}

// State returns the gating state of module i. Out of range indexes are Locked.
func (w *Workflow) State(i int) ModuleState {
	if w.check(i) != nil {
		return StateLocked
	}
	return w.states[i].State
}

// AllPassed reports whether every module has been passed. An empty catalog
// counts as passed.
func (w *Workflow) AllPassed() bool {
	for _, st := range w.states {
		if !st.Passed {
			return false
		}
	}
	return true
}

// AttemptedScores lists the last score of every module that was attempted,
// in catalog order.
func (w *Workflow) AttemptedScores() []int {
	scores := make([]int, 0, len(w.states))
	for _, st := range w.states {
		if st.LastScorePercent != nil {
			scores = append(scores, *st.LastScorePercent)
		}
	}
	return scores
}

// AggregateScore is the finalize score: the mean of attempted module scores.
func (w *Workflow) AggregateScore() int {
	return Aggregate(w.AttemptedScores())
}

func (w *Workflow) check(i int) error {
	if i < 0 || i >= len(w.modules) {
		return ErrModuleOutOfRange
	}
	return nil
}

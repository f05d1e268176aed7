package kiosk

import (
	"context"
	"errors"
	"fmt"

	tea "charm.land/bubbletea/v2"

	"vms/workflow"
)

const quizLocked = "Quiz locked: watch every video and sign every book first."

type screen int

const (
	screenModules screen = iota
	screenModule
	screenQuiz
	screenDone
)

// submitDoneMsg carries the result of a quiz submission.
type submitDoneMsg struct {
	out workflow.Outcome
	err error
}

// closeDoneMsg carries the result of Finish or Redo.
type closeDoneMsg struct {
	redirect workflow.Redirect
	notice   string
	err      error
}

// Model is the kiosk training UI. Training progress lives in the session;
// the model only tracks what is on screen.
type Model struct {
	ctx     context.Context
	session *workflow.Session

	screen   screen
	cursor   int
	module   int
	item     int
	question int
	choice   choiceList

	busy     bool
	result   string
	notice   string
	errText  string
	redirect workflow.Redirect
}

// NewModel returns a model showing the module list of session.
func NewModel(ctx context.Context, session *workflow.Session) *Model {
	m := &Model{ctx: ctx, session: session}
	session.View(func(w *workflow.Workflow) {
		if w.Current() < w.Len() {
			m.cursor = w.Current()
		}
	})
	return m
}

// Redirect is the view the kiosk should move to once the program exits, or
// "" when the user quit.
func (m *Model) Redirect() workflow.Redirect { return m.redirect }

func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case submitDoneMsg:
		return m.handleSubmitted(msg)

	case closeDoneMsg:
		return m.handleClosed(msg)

	case tea.KeyPressMsg:
		key := msg.String()
		if key == "ctrl+c" {
			return m, tea.Quit
		}
		if m.busy {
			return m, nil
		}
		m.notice, m.errText = "", ""

		switch m.screen {
		case screenModules:
			return m.updateModules(key)
		case screenModule:
			return m.updateModule(key)
		case screenQuiz:
			return m.updateQuiz(key)
		}
	}
	return m, nil
}

func (m *Model) updateModules(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < m.moduleCount()-1 {
			m.cursor++
		}
	case "enter":
		if m.moduleCount() == 0 {
			return m, nil
		}
		if err := m.session.Begin(m.cursor); err != nil {
			m.fail(err)
			return m, nil
		}
		m.module, m.item = m.cursor, 0
		m.result = ""
		m.screen = screenModule
	case "f":
		return m, m.close(m.session.Finish, "Training submitted. Thank you!")
	case "r":
		return m, m.close(m.session.Redo, "Training reset. Please check in again.")
	case "q", "esc":
		return m, tea.Quit
	}
	return m, nil
}

func (m *Model) updateModule(key string) (tea.Model, tea.Cmd) {
	mod, _ := m.snapshot(m.module)
	items := len(mod.Videos) + len(mod.Books)

	switch key {
	case "up", "k":
		if m.item > 0 {
			m.item--
		}
	case "down", "j":
		if m.item < items-1 {
			m.item++
		}
	case "enter", "space", " ":
		if items == 0 {
			return m, nil
		}
		var err error
		if m.item < len(mod.Videos) {
			err = m.session.MarkVideoWatched(m.module, mod.Videos[m.item].Name)
		} else {
			err = m.session.MarkBookSigned(m.module, mod.Books[m.item-len(mod.Videos)].Name)
		}
		if err != nil {
			m.fail(err)
			return m, nil
		}
		if m.session.CanSubmit(m.module) == nil {
			m.notice = "Quiz unlocked. Press t to take it."
		}
	case "t":
		return m.startQuiz(mod)
	case "esc", "b":
		m.cursor = m.module
		m.screen = screenModules
	case "q":
		return m, tea.Quit
	}
	return m, nil
}

func (m *Model) updateQuiz(key string) (tea.Model, tea.Cmd) {
	mod, _ := m.snapshot(m.module)

	switch key {
	case "esc":
		m.screen = screenModule
		return m, nil
	case "left", "p":
		if m.question > 0 {
			m.loadQuestion(m.question - 1)
		}
		return m, nil
	}

	if !m.choice.update(key) {
		return m, nil
	}
	if err := m.session.SetAnswer(m.module, m.question, m.choice.selected); err != nil {
		m.fail(err)
		return m, nil
	}
	if m.question+1 < len(mod.Questions) {
		m.loadQuestion(m.question + 1)
		return m, nil
	}
	return m, m.submit()
}

// startQuiz opens the quiz of the current module when the session allows a
// submission. Modules without questions, and passes still waiting to be
// recorded, are submitted straight away.
func (m *Model) startQuiz(mod workflow.Module) (tea.Model, tea.Cmd) {
	err := m.session.CanSubmit(m.module)
	switch {
	case errors.Is(err, workflow.ErrValidationFailure):
		m.notice = quizLocked
		return m, nil
	case err != nil:
		m.fail(err)
		return m, nil
	}

	var state workflow.ModuleState
	m.session.View(func(w *workflow.Workflow) { state = w.State(m.module) })
	if state == workflow.StatePassed || len(mod.Questions) == 0 {
		return m, m.submit()
	}
	m.loadQuestion(0)
	m.screen = screenQuiz
	return m, nil
}

func (m *Model) loadQuestion(q int) {
	mod, c := m.snapshot(m.module)
	if q < 0 || q >= len(mod.Questions) {
		return
	}
	current, answered := c.SelectedAnswers[q]
	m.question = q
	m.choice = newChoiceList(mod.Questions[q], current, answered)
}

func (m *Model) submit() tea.Cmd {
	m.busy = true
	ctx, session, module := m.ctx, m.session, m.module
	return func() tea.Msg {
		out, err := session.SubmitQuiz(ctx, module)
		return submitDoneMsg{out: out, err: err}
	}
}

func (m *Model) close(fn func(context.Context) (workflow.Redirect, error), notice string) tea.Cmd {
	m.busy = true
	ctx := m.ctx
	return func() tea.Msg {
		redirect, err := fn(ctx)
		return closeDoneMsg{redirect: redirect, notice: notice, err: err}
	}
}

func (m *Model) handleSubmitted(msg submitDoneMsg) (tea.Model, tea.Cmd) {
	m.busy = false
	out, err := msg.out, msg.err

	if errors.Is(err, workflow.ErrValidationFailure) {
		m.screen = screenModule
		m.notice = quizLocked
		return m, nil
	}
	if out.Title != "" {
		verdict := "FAILED"
		if out.Passed {
			verdict = "PASSED"
		}
		m.result = fmt.Sprintf("%s: %d%% (required %d%%) %s", out.Title, out.Score, out.Required, verdict)
	}

	switch {
	case errors.Is(err, workflow.ErrFinalizeFailed):
		m.cursor = m.module
		m.screen = screenModules
		m.errText = describe(err)
		m.notice = "All modules passed, but the training could not be submitted. Press f to try again."
	case err != nil && out.Passed:
		m.screen = screenModule
		m.errText = describe(err)
		m.notice = "Your pass could not be recorded yet. Press t to submit again."
	case err != nil:
		m.screen = screenModule
		m.fail(err)
	case out.Finished:
		m.redirect = workflow.RedirectComplete
		m.screen = screenDone
		m.notice = "All modules passed. Training complete!"
		return m, tea.Quit
	case out.Passed && out.NextModule >= 0:
		m.cursor = out.NextModule
		m.screen = screenModules
		m.notice = fmt.Sprintf("Module %d is now unlocked.", out.NextModule+1)
	case out.Passed:
		m.screen = screenModules
		m.notice = "Some passes are not recorded yet. Open them and press t to retry."
	default:
		m.loadQuestion(0)
		m.screen = screenQuiz
		m.notice = "Review your answers and submit again."
	}
	return m, nil
}

func (m *Model) handleClosed(msg closeDoneMsg) (tea.Model, tea.Cmd) {
	m.busy = false
	if msg.err != nil {
		m.fail(msg.err)
		return m, nil
	}
	m.redirect = msg.redirect
	m.screen = screenDone
	m.notice = msg.notice
	return m, tea.Quit
}

func (m *Model) fail(err error) {
	m.errText = describe(err)
}

func (m *Model) moduleCount() int {
	n := 0
	m.session.View(func(w *workflow.Workflow) { n = w.Len() })
	return n
}

// snapshot copies module i and its progress out of the session.
func (m *Model) snapshot(i int) (workflow.Module, workflow.CompletionState) {
	var (
		mod workflow.Module
		c   workflow.CompletionState
	)
	m.session.View(func(w *workflow.Workflow) {
		mod, _ = w.Module(i)
		c, _ = w.Completion(i)
	})
	return mod, c
}

func describe(err error) string {
	switch {
	case errors.Is(err, workflow.ErrModuleLocked):
		return "that module is locked until the previous one is passed"
	case errors.Is(err, workflow.ErrRequestPending):
		return "please wait, a submission is in progress"
	case errors.Is(err, workflow.ErrAlreadyPassed):
		return "this module is already passed"
	default:
		return err.Error()
	}
}

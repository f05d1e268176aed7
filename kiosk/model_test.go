package kiosk

import (
	"context"
	"errors"
	"testing"

	tea "charm.land/bubbletea/v2"

	"vms/workflow"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func keyPress(key string) tea.KeyPressMsg {
	switch key {
	case "enter":
		return tea.KeyPressMsg{Code: tea.KeyEnter}
	case "esc":
		return tea.KeyPressMsg{Code: tea.KeyEscape}
	case "up":
		return tea.KeyPressMsg{Code: tea.KeyUp}
	case "down":
		return tea.KeyPressMsg{Code: tea.KeyDown}
	}
	r := []rune(key)[0]
	return tea.KeyPressMsg{Code: r, Text: key}
}

// press feeds keys to m, running returned commands until they settle. It
// reports whether the program was asked to quit.
func press(t *testing.T, m *Model, keys ...string) bool {
	t.Helper()
	for _, k := range keys {
		var msg tea.Msg = keyPress(k)
		for msg != nil {
			_, cmd := m.Update(msg)
			if cmd == nil {
				break
			}
			msg = cmd()
			if _, ok := msg.(tea.QuitMsg); ok {
				return true
			}
		}
	}
	return false
}

func newTestModel(t *testing.T, backend *memBackend) (*Model, *Store) {
	t.Helper()
	store := checkedInStore(t)
	session, err := workflow.Start(context.Background(), store, backend)
	require.NoError(t, err)
	return NewModel(context.Background(), session), store
}

func TestModel_CompleteFlow(t *testing.T) {
	backend := &memBackend{catalog: kioskCatalog()}
	m, store := newTestModel(t, backend)

	press(t, m, "down", "enter")
	assert.Equal(t, screenModules, m.screen)
	assert.Contains(t, m.errText, "locked until the previous one is passed")

	press(t, m, "up", "enter")
	require.Equal(t, screenModule, m.screen)
	assert.Contains(t, m.render(), quizLocked)

	press(t, m, "t")
	assert.Equal(t, screenModule, m.screen)
	assert.Equal(t, quizLocked, m.notice)

	press(t, m, "enter", "down", "enter")
	assert.Contains(t, m.notice, "Quiz unlocked")
	assert.Contains(t, m.render(), "[x] video fire safety")
	assert.NotContains(t, m.render(), quizLocked)

	press(t, m, "t")
	require.Equal(t, screenQuiz, m.screen)
	assert.Contains(t, m.render(), "Exit?")

	press(t, m, "1")
	assert.Equal(t, "Site induction: 0% (required 100%) FAILED", m.result)
	assert.Equal(t, screenQuiz, m.screen)
	assert.Empty(t, backend.completed)

	press(t, m, "2")
	assert.Equal(t, "Site induction: 100% (required 100%) PASSED", m.result)
	assert.Equal(t, "Module 2 is now unlocked.", m.notice)
	assert.Equal(t, screenModules, m.screen)
	assert.Equal(t, 1, m.cursor)
	require.Len(t, backend.completed, 1)

	quit := press(t, m, "enter", "enter", "t")
	assert.True(t, quit)
	assert.Equal(t, screenDone, m.screen)
	assert.Equal(t, workflow.RedirectComplete, m.Redirect())
	assert.Contains(t, m.notice, "Training complete!")
	assert.Len(t, backend.completed, 2)
	assert.Equal(t, []int{100}, backend.submitted)

	id, err := store.ContractorID(context.Background())
	require.NoError(t, err)
	assert.Empty(t, id, "local state is cleared after finalize")
}

func TestModel_FinalizeFailureRecoversWithFinish(t *testing.T) {
	backend := &memBackend{catalog: kioskCatalog()[1:], submitErr: errors.New("503")}
	m, store := newTestModel(t, backend)

	quit := press(t, m, "enter", "enter", "t")
	assert.False(t, quit)
	assert.Equal(t, "Sign-off: 100% (required 0%) PASSED", m.result)
	assert.Contains(t, m.notice, "Press f")
	assert.Contains(t, m.errText, "503")
	assert.Equal(t, screenModules, m.screen)
	assert.Len(t, backend.completed, 1)
	assert.Empty(t, m.Redirect())

	backend.submitErr = nil
	quit = press(t, m, "f")
	assert.True(t, quit)
	assert.Equal(t, workflow.RedirectComplete, m.Redirect())
	assert.Equal(t, []int{100}, backend.submitted)
	assert.Len(t, backend.completed, 1)

	id, err := store.ContractorID(context.Background())
	require.NoError(t, err)
	assert.Empty(t, id)
}

func TestModel_ReportFailureRetriesWithQuizKey(t *testing.T) {
	backend := &memBackend{catalog: kioskCatalog()[1:], completeErr: errors.New("502")}
	m, _ := newTestModel(t, backend)

	press(t, m, "enter", "enter", "t")
	assert.Equal(t, screenModule, m.screen)
	assert.Contains(t, m.notice, "Press t to submit again")
	assert.Contains(t, m.render(), "not recorded yet")
	assert.Empty(t, backend.completed)

	backend.completeErr = nil
	quit := press(t, m, "t")
	assert.True(t, quit)
	assert.Len(t, backend.completed, 1)
	assert.Equal(t, workflow.RedirectComplete, m.Redirect())
}

func TestModel_AnswersAreKeptBetweenQuestions(t *testing.T) {
	catalog := kioskCatalog()[:1]
	catalog[0].Questions = append(catalog[0].Questions,
		workflow.Question{Question: "Helmet?", Options: []string{"yes", "no", "maybe"}, CorrectOptionIndex: 0})
	backend := &memBackend{catalog: catalog}
	m, _ := newTestModel(t, backend)

	press(t, m, "enter", "enter", "down", "enter", "t", "down", "enter")
	require.Equal(t, screenQuiz, m.screen)
	assert.Equal(t, 1, m.question)
	assert.Contains(t, m.render(), "Helmet?")

	press(t, m, "p")
	assert.Equal(t, 0, m.question)
	assert.Equal(t, 1, m.choice.selected)
	assert.True(t, m.choice.answered)

	press(t, m, "esc")
	assert.Equal(t, screenModule, m.screen)
	assert.Empty(t, backend.completed)
}

func TestModel_RedoAndQuit(t *testing.T) {
	backend := &memBackend{catalog: kioskCatalog()}
	m, _ := newTestModel(t, backend)
	assert.True(t, press(t, m, "q"))
	assert.Empty(t, m.Redirect())

	m, store := newTestModel(t, backend)
	assert.True(t, press(t, m, "r"))
	assert.Equal(t, workflow.RedirectCheckIn, m.Redirect())
	id, _ := store.ContractorID(context.Background())
	assert.Empty(t, id)
	assert.Empty(t, backend.submitted)
}

func TestModel_IgnoresKeysWhileBusy(t *testing.T) {
	backend := &memBackend{catalog: kioskCatalog()}
	m, _ := newTestModel(t, backend)
	m.busy = true

	_, cmd := m.Update(keyPress("enter"))
	assert.Nil(t, cmd)
	assert.Equal(t, screenModules, m.screen)
	assert.Contains(t, m.render(), "Submitting...")

	_, cmd = m.Update(tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestDescribe(t *testing.T) {
	assert.Equal(t, "boom", describe(errors.New("boom")))
	assert.Contains(t, describe(workflow.ErrRequestPending), "wait")
	assert.Contains(t, describe(workflow.ErrAlreadyPassed), "already passed")
}

func TestChoiceList(t *testing.T) {
	c := newChoiceList(workflow.Question{Question: "Q", Options: []string{"a", "b", "c"}}, 2, true)
	assert.Equal(t, 2, c.selected)

	assert.False(t, c.update("down"))
	assert.Equal(t, 2, c.selected)
	assert.False(t, c.update("up"))
	assert.Equal(t, 1, c.selected)
	assert.False(t, c.update("9"))
	assert.True(t, c.update("1"))
	assert.Equal(t, 0, c.selected)
	assert.True(t, c.update("enter"))
	assert.Contains(t, c.view(), "1) a")
}

package kiosk

import (
	"errors"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"vms/workflow"
)

func (m *Model) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true
	v.SetContent(m.render())
	return v
}

func (m *Model) render() string {
	var body string
	switch m.screen {
	case screenModules:
		body = m.renderModules()
	case screenModule:
		body = m.renderModule()
	case screenQuiz:
		body = m.renderQuiz()
	}

	parts := []string{titleStyle.Render("Contractor training"), ""}
	if body != "" {
		parts = append(parts, body)
	}
	if m.result != "" {
		style := failedStyle
		if strings.HasSuffix(m.result, "PASSED") {
			style = passedStyle
		}
		parts = append(parts, style.Render(m.result))
	}
	if m.busy {
		parts = append(parts, noticeStyle.Render("Submitting..."))
	}
	if m.notice != "" {
		parts = append(parts, noticeStyle.Render(m.notice))
	}
	if m.errText != "" {
		parts = append(parts, failedStyle.Render("Error: "+m.errText))
	}
	if hints := m.hints(); hints != "" {
		parts = append(parts, "", hintStyle.Render(hints))
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m *Model) renderModules() string {
	var b strings.Builder
	m.session.View(func(w *workflow.Workflow) {
		if w.Len() == 0 {
			b.WriteString(textStyle.Render("No training modules are assigned. Press f to complete."))
			return
		}
		for i := 0; i < w.Len(); i++ {
			mod, _ := w.Module(i)
			c, _ := w.Completion(i)
			state := w.State(i)

			line := fmt.Sprintf("%d. %-30s %s", i+1, mod.Title, state)
			if c.LastScorePercent != nil {
				line += fmt.Sprintf(" (%d%%)", *c.LastScorePercent)
			}

			prefix := "  "
			if i == m.cursor {
				prefix = "▸ "
			}
			switch {
			case i == m.cursor:
				b.WriteString(selectedStyle.Render(prefix + line))
			case state == workflow.StatePassed:
				b.WriteString(passedStyle.Render(prefix + line))
			case state == workflow.StateLocked:
				b.WriteString(dimStyle.Render(prefix + line))
			default:
				b.WriteString(textStyle.Render(prefix + line))
			}
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "\nOverall score: %d%%", w.AggregateScore())
	})
	return b.String()
}

func (m *Model) renderModule() string {
	mod, c := m.snapshot(m.module)

	var b strings.Builder
	b.WriteString(titleStyle.Render(mod.Title))
	b.WriteString("\n")
	if mod.Description != "" {
		b.WriteString(dimStyle.Render(mod.Description))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	item := 0
	row := func(kind string, md workflow.Media, done bool) {
		check := "[ ]"
		if done {
			check = "[x]"
		}
		line := fmt.Sprintf("%s %-5s %s  %s", check, kind, md.Name, md.URL)
		if item == m.item {
			b.WriteString(selectedStyle.Render("▸ " + line))
		} else {
			b.WriteString(textStyle.Render("  " + line))
		}
		b.WriteString("\n")
		item++
	}
	for _, v := range mod.Videos {
		row("video", v, c.VideosWatched[workflow.MediaKey(v.Name)])
	}
	for _, bk := range mod.Books {
		row("book", bk, c.BooksSigned[workflow.MediaKey(bk.Name)])
	}
	b.WriteString("\n")

	err := m.session.CanSubmit(m.module)
	switch {
	case errors.Is(err, workflow.ErrValidationFailure):
		b.WriteString(lockedBanner.Render(quizLocked))
	case errors.Is(err, workflow.ErrAlreadyPassed):
		b.WriteString(passedStyle.Render("Module passed."))
	case err != nil:
		b.WriteString(dimStyle.Render(describe(err)))
	case c.Passed:
		b.WriteString(noticeStyle.Render("Passed, not recorded yet. Press t to submit again."))
	case len(mod.Questions) == 0:
		b.WriteString(textStyle.Render("No quiz for this module. Press t to complete it."))
	default:
		b.WriteString(textStyle.Render(fmt.Sprintf("Quiz ready: %d question(s). Press t to start.", len(mod.Questions))))
	}
	return cardStyle.Render(b.String())
}

func (m *Model) renderQuiz() string {
	mod, _ := m.snapshot(m.module)
	header := dimStyle.Render(fmt.Sprintf("%s · question %d of %d", mod.Title, m.question+1, len(mod.Questions)))
	return cardStyle.Render(header + "\n\n" + m.choice.view())
}

func (m *Model) hints() string {
	switch m.screen {
	case screenModules:
		return "↑↓ move · enter open · f finish · r redo · q quit"
	case screenModule:
		return "↑↓ move · enter watch/sign · t quiz · esc back"
	case screenQuiz:
		return "↑↓ move · enter or 1-9 answer · p previous · esc back"
	}
	return ""
}

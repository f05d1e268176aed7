// Package kiosk is the contractor-facing side of the training flow: a local
// state store and a terminal UI over workflow.Session.
package kiosk

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"

	tea "charm.land/bubbletea/v2"

	"vms/workflow"
)

// Run drives one training session in a terminal UI reading keys from in.
// It returns the view the kiosk should move to next, or "" when the user
// quit.
func Run(ctx context.Context, local workflow.LocalState, backend workflow.Backend, in io.Reader, out io.Writer) (workflow.Redirect, error) {
	session, err := workflow.Start(ctx, local, backend)
	if errors.Is(err, workflow.ErrMissingContractorContext) {
		fmt.Fprintln(out, "No contractor is checked in. Please check in at reception.")
		return workflow.RedirectCheckIn, nil
	}
	if err != nil {
		fmt.Fprintf(out, "Training is unavailable right now: %v\n", err)
		return "", err
	}

	restored, err := session.Resume(ctx)
	if err != nil {
		log.Printf("[KIOSK] could not load previous progress: %v", err)
	}
	m := NewModel(ctx, session)
	if restored > 0 {
		m.notice = fmt.Sprintf("Welcome back, %d module(s) already completed.", restored)
	}

	p := tea.NewProgram(m, tea.WithInput(in), tea.WithOutput(out))
	final, err := p.Run()
	if err != nil {
		return "", fmt.Errorf("run kiosk: %w", err)
	}

	fm, ok := final.(*Model)
	if !ok {
		return "", nil
	}
	if fm.notice != "" {
		fmt.Fprintln(out, fm.notice)
	}
	return fm.Redirect(), nil
}

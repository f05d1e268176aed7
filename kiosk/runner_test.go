package kiosk

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"vms/workflow"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memBackend struct {
	catalog     []workflow.Module
	catalogErr  error
	completeErr error
	submitErr   error
	completed   []workflow.Completion
	submitted   []int
}

func (b *memBackend) LoadCatalog(context.Context) ([]workflow.Module, error) {
	return b.catalog, b.catalogErr
}

func (b *memBackend) CompleteModule(_ context.Context, _ string, c workflow.Completion) error {
	if b.completeErr != nil {
		return b.completeErr
	}
	b.completed = append(b.completed, c)
	return nil
}

func (b *memBackend) Progress(context.Context, string) ([]workflow.ProgressRecord, error) {
	return nil, nil
}

func (b *memBackend) SubmitTraining(_ context.Context, _ string, score int) error {
	if b.submitErr != nil {
		return b.submitErr
	}
	b.submitted = append(b.submitted, score)
	return nil
}

func kioskCatalog() []workflow.Module {
	return []workflow.Module{
		{
			ID:     1,
			Title:  "Site induction",
			Videos: []workflow.Media{{Name: "fire safety", URL: "https://cdn/fire.mp4"}},
			Books:  []workflow.Media{{Name: "rules", URL: "https://cdn/rules.pdf"}},
			Questions: []workflow.Question{
				{Question: "Exit?", Options: []string{"left", "right"}, CorrectOptionIndex: 1},
			},
			RequiredScorePercent: 100,
			IsActive:             true,
		},
		{
			ID:                   2,
			Title:                "Sign-off",
			Books:                []workflow.Media{{Name: "nda", URL: "https://cdn/nda.pdf"}},
			RequiredScorePercent: 0,
			IsActive:             true,
		},
	}
}

func checkedInStore(t *testing.T) *Store {
	t.Helper()
	s := openTestStore(t)
	require.NoError(t, s.SaveCheckIn(context.Background(), "c-1", "tok"))
	return s
}

func TestRun_NoContractorRedirectsToCheckIn(t *testing.T) {
	backend := &memBackend{catalog: kioskCatalog()}
	var out bytes.Buffer

	redirect, err := Run(context.Background(), openTestStore(t), backend, strings.NewReader(""), &out)
	require.NoError(t, err)
	assert.Equal(t, workflow.RedirectCheckIn, redirect)
	assert.Contains(t, out.String(), "check in")
}

func TestRun_CatalogFailure(t *testing.T) {
	backend := &memBackend{catalogErr: workflow.ErrCatalogUnavailable}
	var out bytes.Buffer

	redirect, err := Run(context.Background(), checkedInStore(t), backend, strings.NewReader("status\n"), &out)
	assert.ErrorIs(t, err, workflow.ErrCatalogUnavailable)
	assert.Empty(t, redirect)
	assert.Contains(t, out.String(), "unavailable")
}

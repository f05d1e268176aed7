package kiosk

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := OpenStore(filepath.Join(t.TempDir(), "kiosk.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStore_CheckInLifecycle(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	id, err := s.ContractorID(ctx)
	require.NoError(t, err)
	assert.Empty(t, id)

	require.NoError(t, s.SaveCheckIn(ctx, "c-1", "tok-1"))
	require.NoError(t, s.SetLastScore(ctx, 70))
	require.NoError(t, s.SetLastScore(ctx, 85))

	id, _ = s.ContractorID(ctx)
	assert.Equal(t, "c-1", id)
	token, _ := s.Token(ctx)
	assert.Equal(t, "tok-1", token)
	score, ok, err := s.LastScore(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 85, score)

	// A new check-in replaces the contractor and forgets the old score.
	require.NoError(t, s.SaveCheckIn(ctx, "c-2", "tok-2"))
	id, _ = s.ContractorID(ctx)
	assert.Equal(t, "c-2", id)
	_, ok, _ = s.LastScore(ctx)
	assert.False(t, ok)

	require.NoError(t, s.Clear(ctx))
	id, _ = s.ContractorID(ctx)
	assert.Empty(t, id)
	token, _ = s.Token(ctx)
	assert.Empty(t, token)
}

func TestStore_SurvivesReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "kiosk.db")

	s, err := OpenStore(path)
	require.NoError(t, err)
	require.NoError(t, s.SaveCheckIn(ctx, "c-1", "tok"))
	require.NoError(t, s.Close())

	s, err = OpenStore(path)
	require.NoError(t, err)
	defer s.Close()
	id, err := s.ContractorID(ctx)
	require.NoError(t, err)
	assert.Equal(t, "c-1", id)
}

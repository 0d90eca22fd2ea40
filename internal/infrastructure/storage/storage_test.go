package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"svw.info/lightsout/internal/domain"
	"svw.info/lightsout/internal/ports"
)

func sampleEntries() []domain.LeaderboardEntry {
	return []domain.LeaderboardEntry{
		{ID: "a", Name: "ada", Score: 320, Level: 5, Moves: 41, CreatedAt: 10},
		{ID: "b", Name: "bob", Score: 150, Level: 2, Moves: 9, CreatedAt: 20},
	}
}

func exerciseStore(t *testing.T, st ports.LeaderboardStore) {
	t.Helper()
	ctx := context.Background()

	got, err := st.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, got)

	require.NoError(t, st.Save(ctx, sampleEntries()))
	got, err = st.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, sampleEntries(), got)

	// Save replaces, never appends
	one := sampleEntries()[:1]
	require.NoError(t, st.Save(ctx, one))
	got, err = st.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, one, got)
}

func TestMemoryStore(t *testing.T) {
	exerciseStore(t, NewMemory())
}

func TestFSStore(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "data")
	exerciseStore(t, NewFS(dir))

	_, err := os.Stat(filepath.Join(dir, leaderboardFile))
	require.NoError(t, err)
}

func TestFSStoreReadsBareArray(t *testing.T) {
	dir := t.TempDir()
	legacy := `[{"id":"x","name":"old","score":7,"level":1,"moves":3,"createdAt":1}]`
	require.NoError(t, os.WriteFile(filepath.Join(dir, leaderboardFile), []byte(legacy), 0o644))

	got, err := NewFS(dir).Load(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "old", got[0].Name)
}

func TestSQLiteStore(t *testing.T) {
	db, err := NewSQLite(":memory:")
	require.NoError(t, err)
	defer db.Close()
	exerciseStore(t, db)
}

func TestSQLiteAssignsMissingIDs(t *testing.T) {
	db, err := NewSQLite(":memory:")
	require.NoError(t, err)
	defer db.Close()

	ctx := context.Background()
	require.NoError(t, db.Save(ctx, []domain.LeaderboardEntry{{Name: "anon", Score: 1, CreatedAt: 1}}))
	got, err := db.Load(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.NotEmpty(t, got[0].ID)
}

func TestSQLiteFileReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lightsout.db")
	db, err := NewSQLite(path)
	require.NoError(t, err)
	require.NoError(t, db.Save(context.Background(), sampleEntries()))
	require.NoError(t, db.Close())

	db, err = NewSQLite(path)
	require.NoError(t, err)
	defer db.Close()
	got, err := db.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, sampleEntries(), got)
}

package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"svw.info/lightsout/internal/domain"
	"svw.info/lightsout/internal/generator"
	"svw.info/lightsout/internal/hint"
	"svw.info/lightsout/internal/infrastructure/storage"
	"svw.info/lightsout/internal/leaderboard"
	"svw.info/lightsout/internal/solver"
	"svw.info/lightsout/internal/validator"
)

func newTestService(levels domain.Levels) *Service {
	s := solver.NewGF2Solver()
	return NewService(s, generator.New(s, generator.DefaultAttempts), validator.New(), hint.NewPresses(s),
		storage.NewMemory(), levels, leaderboard.New(10), nil)
}

func TestEngineOperations(t *testing.T) {
	u := newTestService(domain.DefaultLevels())

	g, err := u.GenerateGrid(5, 4, 6)
	require.NoError(t, err)
	assert.Len(t, validator.LitCells(g), 6)

	again, err := u.GenerateGrid(5, 4, 6)
	require.NoError(t, err)
	assert.Equal(t, g, again, "same seed, same grid")

	next, err := u.Toggle(domain.NewGrid(3), 4, 3)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 3, 4, 5, 7}, validator.LitCells(next))
	assert.False(t, u.IsSolved(next))

	score, err := u.CalculateScore(5, 3)
	require.NoError(t, err)
	assert.Equal(t, 100, score)
}

func TestToggleChecksCellIDs(t *testing.T) {
	u := newTestService(domain.DefaultLevels())

	g := domain.NewGrid(3)
	g[2].ID, g[6].ID = 6, 2
	_, err := u.Toggle(g, 4, 3)
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)

	_, err = u.Toggle(domain.NewGrid(3), 9, 3)
	assert.ErrorIs(t, err, domain.ErrIndexOutOfRange, "index is checked first")
}

func TestSessionPlaythroughWithHints(t *testing.T) {
	ctx := context.Background()
	u := newTestService(domain.DefaultLevels()[:2])

	v := u.CreateSession()
	assert.Equal(t, domain.Intro, v.Phase)

	v, err := u.Start(ctx, v.ID)
	require.NoError(t, err)
	require.Equal(t, domain.Playing, v.Phase)
	id := v.ID

	for level := 0; level < 2; level++ {
		for i := 0; ; i++ {
			require.Less(t, i, 100, "hints did not solve level %d", level)
			h, ok, err := u.Hint(ctx, id)
			require.NoError(t, err)
			require.True(t, ok)
			var solved bool
			v, solved, err = u.Press(ctx, id, h.Index)
			require.NoError(t, err)
			if solved {
				break
			}
		}
		require.Equal(t, domain.Solved, v.Phase)
		assert.Positive(t, v.LevelScore)

		v, err = u.Advance(ctx, id)
		require.NoError(t, err)
		if v.Phase == domain.NameEntry {
			v, _, err = u.SubmitName(ctx, id, "bot")
			require.NoError(t, err)
		}
		require.Equal(t, domain.Transition, v.Phase)
		v, err = u.Advance(ctx, id)
		require.NoError(t, err)
	}
	assert.Equal(t, domain.Intro, v.Phase)

	entries, err := u.LeaderboardEntries(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.GreaterOrEqual(t, entries[0].Score, entries[1].Score)
	assert.Equal(t, "bot", entries[0].Name)
}

func TestUnknownSession(t *testing.T) {
	ctx := context.Background()
	u := newTestService(domain.DefaultLevels())
	_, err := u.Start(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	_, _, err = u.Press(ctx, "missing", 0)
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	assert.ErrorIs(t, u.DeleteSession("missing"), domain.ErrSessionNotFound)
}

func TestHintOutsidePlaying(t *testing.T) {
	u := newTestService(domain.DefaultLevels())
	v := u.CreateSession()
	_, _, err := u.Hint(context.Background(), v.ID)
	assert.ErrorIs(t, err, domain.ErrNotPlaying)
}

func TestNotConfigured(t *testing.T) {
	u := NewService(nil, nil, nil, nil, nil, domain.DefaultLevels(), leaderboard.New(10), nil)
	_, _, err := u.Solve(context.Background(), domain.NewGrid(3), 3)
	assert.ErrorIs(t, err, errNotConfigured)
	_, err = u.LeaderboardEntries(context.Background())
	assert.ErrorIs(t, err, errNotConfigured)
	_, _, err = u.Hint(context.Background(), "x")
	assert.ErrorIs(t, err, errNotConfigured)
}

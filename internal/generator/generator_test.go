package generator

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"svw.info/lightsout/internal/domain"
	"svw.info/lightsout/internal/solver"
	"svw.info/lightsout/internal/validator"
)

func TestGenerateAllDefaultLevels(t *testing.T) {
	s := solver.NewGF2Solver()
	g := New(s, DefaultAttempts)

	for _, lvl := range domain.DefaultLevels() {
		t.Run(lvl.Name, func(t *testing.T) {
			ctx, cancel := context.WithTimeout(context.Background(), time.Second)
			defer cancel()

			p, st, err := g.Generate(ctx, 12345, lvl)
			require.NoError(t, err)
			require.NoError(t, validator.CheckGrid(p.Grid, lvl.GridSize))
			assert.Len(t, validator.LitCells(p.Grid), lvl.InitialActiveLights)
			assert.GreaterOrEqual(t, st.Attempts, 1)
			assert.Equal(t, lvl, p.Level)

			if p.Solvable {
				ok, _, err := s.Solvable(ctx, p.Grid, lvl.GridSize)
				require.NoError(t, err)
				assert.True(t, ok)
			}
		})
	}
}

func TestGenerateRetriesUntilSolvable(t *testing.T) {
	// 5x5 has quiet patterns, so most random grids are unsolvable
	g := New(solver.NewGF2Solver(), DefaultAttempts)
	lvl := domain.LevelConfig{Name: "t", GridSize: 5, InitialActiveLights: 8}
	for seed := int64(1); seed <= 20; seed++ {
		p, _, err := g.Generate(context.Background(), seed, lvl)
		require.NoError(t, err)
		assert.True(t, p.Solvable, "seed %d", seed)
	}
}

func TestGenerateWithoutSolverDrawsOnce(t *testing.T) {
	g := New(nil, DefaultAttempts)
	lvl := domain.LevelConfig{GridSize: 4, InitialActiveLights: 5}
	p, st, err := g.Generate(context.Background(), 7, lvl)
	require.NoError(t, err)
	assert.Equal(t, 1, st.Attempts)
	assert.False(t, p.Solvable)

	again, _, err := g.Generate(context.Background(), 7, lvl)
	require.NoError(t, err)
	assert.Equal(t, p.Grid, again.Grid)
}

func TestGeneratePropagatesInvalidLevel(t *testing.T) {
	g := New(nil, 1)
	_, _, err := g.Generate(context.Background(), 1, domain.LevelConfig{GridSize: 3, InitialActiveLights: 10})
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)
}

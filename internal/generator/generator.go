package generator

import (
	"context"
	"math/rand"
	"time"

	"svw.info/lightsout/internal/domain"
	"svw.info/lightsout/internal/ports"
)

// DefaultAttempts bounds the redraws spent looking for a solvable grid.
const DefaultAttempts = 256

// Generator draws level grids from a seed. With a Solver configured it
// redraws until the grid can be cleared or Attempts runs out.
type Generator struct {
	Solver   ports.Solver
	Attempts int
}

// New wires a generator that uses s for solvability checks. s may be nil.
func New(s ports.Solver, attempts int) *Generator {
	if attempts < 1 {
		attempts = DefaultAttempts
	}
	return &Generator{Solver: s, Attempts: attempts}
}

// Generate creates the starting grid for level from seed.
func (g *Generator) Generate(ctx context.Context, seed int64, level domain.LevelConfig) (*domain.Puzzle, ports.Stats, error) {
	start := time.Now()
	rng := rand.New(rand.NewSource(seed))
	st := ports.Stats{}

	attempts := g.Attempts
	if attempts < 1 || g.Solver == nil {
		attempts = 1
	}

	var (
		grid     domain.Grid
		solvable bool
	)
	for st.Attempts < attempts {
		if err := ctx.Err(); err != nil {
			return nil, st, err
		}
		next, err := GenerateGrid(rng, level.GridSize, level.InitialActiveLights)
		if err != nil {
			return nil, st, err
		}
		st.Attempts++
		grid = next
		if g.Solver == nil {
			break
		}
		ok, sst, err := g.Solver.Solvable(ctx, grid, level.GridSize)
		st.Nodes += sst.Nodes
		if err != nil {
			return nil, st, err
		}
		if ok {
			solvable = true
			break
		}
	}
	st.Duration = time.Since(start)

	return &domain.Puzzle{
		Seed:      seed,
		Level:     level,
		Grid:      grid,
		Solvable:  solvable,
		CreatedAt: time.Now().UnixNano(),
	}, st, nil
}

package ports

import (
	"context"
	"time"

	"svw.info/lightsout/internal/domain"
)

// Stats captures performance characteristics of an operation.
type Stats struct {
	Nodes    int
	Attempts int
	Duration time.Duration
}

// Generator creates starting grids for a level.
type Generator interface {
	Generate(ctx context.Context, seed int64, level domain.LevelConfig) (*domain.Puzzle, Stats, error)
}

// Solver finds a pressing set that clears a grid.
type Solver interface {
	Solve(ctx context.Context, g domain.Grid, size int) ([]int, Stats, error)
	Solvable(ctx context.Context, g domain.Grid, size int) (bool, Stats, error)
}

// Validator checks grid invariants and reports lit cells.
type Validator interface {
	Validate(ctx context.Context, g domain.Grid, size int) (solved bool, lit []int, err error)
}

// Hinter suggests the next press.
type Hinter interface {
	Hint(ctx context.Context, g domain.Grid, size int) (domain.Hint, bool, error)
}

// LeaderboardStore persists leaderboard entries. The store owns the format.
type LeaderboardStore interface {
	Load(ctx context.Context) ([]domain.LeaderboardEntry, error)
	Save(ctx context.Context, entries []domain.LeaderboardEntry) error
}

package generator

import (
	"fmt"

	"svw.info/lightsout/internal/domain"
)

// Source yields uniform ints in [0, n). *rand.Rand satisfies it.
type Source interface {
	Intn(n int) int
}

// GenerateGrid returns a size x size grid with exactly initialActive lit
// cells. Positions are drawn from src into a set until it holds
// initialActive distinct ids.
func GenerateGrid(src Source, size, initialActive int) (domain.Grid, error) {
	if err := domain.CheckSize(size); err != nil {
		return nil, err
	}
	cells := size * size
	if initialActive < 0 || initialActive > cells {
		return nil, fmt.Errorf("%d active lights on %d cells: %w", initialActive, cells, domain.ErrInvalidArgument)
	}
	if src == nil {
		return nil, fmt.Errorf("nil random source: %w", domain.ErrInvalidArgument)
	}
	active := make(map[int]struct{}, initialActive)
	for len(active) < initialActive {
		active[src.Intn(cells)] = struct{}{}
	}
	g := domain.NewGrid(size)
	for id := range active {
		g[id].IsActive = true
	}
	return g, nil
}

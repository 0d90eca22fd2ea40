package validator

import (
	"context"
	"fmt"

	"svw.info/lightsout/internal/domain"
)

// IsSolved reports whether no cell is lit. An empty grid is solved.
// Stops at the first lit cell.
func IsSolved(g domain.Grid) bool {
	for _, c := range g {
		if c.IsActive {
			return false
		}
	}
	return true
}

// LitCells returns the ids of active cells in ascending order.
func LitCells(g domain.Grid) []int {
	out := make([]int, 0, len(g))
	for _, c := range g {
		if c.IsActive {
			out = append(out, c.ID)
		}
	}
	return out
}

// CheckGrid enforces len(g) == size*size and ids 0..len-1 in order.
func CheckGrid(g domain.Grid, size int) error {
	if err := domain.CheckSize(size); err != nil {
		return err
	}
	if len(g) != size*size {
		return fmt.Errorf("grid has %d cells, want %d: %w", len(g), size*size, domain.ErrInvalidArgument)
	}
	for i, c := range g {
		if c.ID != i {
			return fmt.Errorf("cell %d carries id %d: %w", i, c.ID, domain.ErrInvalidArgument)
		}
	}
	return nil
}

type FastValidator struct{}

func New() *FastValidator { return &FastValidator{} }

func (v *FastValidator) Validate(ctx context.Context, g domain.Grid, size int) (bool, []int, error) {
	if err := CheckGrid(g, size); err != nil {
		return false, nil, err
	}
	lit := LitCells(g)
	return len(lit) == 0, lit, nil
}

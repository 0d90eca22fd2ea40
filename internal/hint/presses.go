package hint

import (
	"context"
	"fmt"

	"svw.info/lightsout/internal/domain"
	"svw.info/lightsout/internal/ports"
)

// Presses suggests the first cell of the solver's shortest pressing set.
type Presses struct {
	Solver ports.Solver
}

func NewPresses(s ports.Solver) *Presses { return &Presses{Solver: s} }

// Hint returns found=false when the grid is already dark.
func (h *Presses) Hint(ctx context.Context, g domain.Grid, size int) (domain.Hint, bool, error) {
	presses, _, err := h.Solver.Solve(ctx, g, size)
	if err != nil {
		return domain.Hint{}, false, err
	}
	if len(presses) == 0 {
		return domain.Hint{}, false, nil
	}
	i := presses[0]
	r, c := domain.Coord(i, size)
	msg := fmt.Sprintf("Press row %d, column %d", r+1, c+1)
	if len(presses) > 1 {
		msg += fmt.Sprintf(" (%d presses to go)", len(presses))
	}
	return domain.Hint{
		Index:     i,
		Row:       r,
		Col:       c,
		Remaining: len(presses),
		Message:   msg,
	}, true, nil
}

package validator

import (
	"context"
	"errors"
	"testing"

	"svw.info/lightsout/internal/domain"
)

func TestIsSolved(t *testing.T) {
	cases := []struct {
		name string
		grid domain.Grid
		want bool
	}{
		{"empty", domain.Grid{}, true},
		{"nil", nil, true},
		{"dark 3x3", domain.NewGrid(3), true},
		{"one lit", func() domain.Grid { g := domain.NewGrid(3); g[7].IsActive = true; return g }(), false},
		{"all lit", func() domain.Grid {
			g := domain.NewGrid(2)
			for i := range g {
				g[i].IsActive = true
			}
			return g
		}(), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := IsSolved(tc.grid); got != tc.want {
				t.Fatalf("IsSolved = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	ctx := context.Background()
	v := New()

	g := domain.NewGrid(3)
	g[2].IsActive = true
	g[6].IsActive = true
	solved, lit, err := v.Validate(ctx, g, 3)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if solved {
		t.Fatalf("grid with lit cells reported solved")
	}
	if len(lit) != 2 || lit[0] != 2 || lit[1] != 6 {
		t.Fatalf("lit = %v, want [2 6]", lit)
	}

	solved, lit, err = v.Validate(ctx, domain.NewGrid(4), 4)
	if err != nil || !solved || len(lit) != 0 {
		t.Fatalf("dark grid: solved=%v lit=%v err=%v", solved, lit, err)
	}
}

func TestCheckGridRejectsBrokenInvariants(t *testing.T) {
	short := domain.NewGrid(3)[:8]
	if err := CheckGrid(short, 3); !errors.Is(err, domain.ErrInvalidArgument) {
		t.Fatalf("short grid: err = %v", err)
	}
	swapped := domain.NewGrid(3)
	swapped[1].ID, swapped[2].ID = 2, 1
	if err := CheckGrid(swapped, 3); !errors.Is(err, domain.ErrInvalidArgument) {
		t.Fatalf("reordered ids: err = %v", err)
	}
	if err := CheckGrid(domain.NewGrid(3), 0); !errors.Is(err, domain.ErrInvalidArgument) {
		t.Fatalf("zero size: err = %v", err)
	}
	if err := CheckGrid(domain.NewGrid(5), 5); err != nil {
		t.Fatalf("valid grid rejected: %v", err)
	}
}

func TestCheckGridRejectsOversizedGrid(t *testing.T) {
	// 1<<32 squared wraps to zero cells
	if err := CheckGrid(domain.Grid{}, 1<<32); !errors.Is(err, domain.ErrInvalidArgument) {
		t.Fatalf("CheckGrid = %v, want ErrInvalidArgument", err)
	}
	if err := CheckGrid(domain.NewGrid(domain.MaxGridSize+1), domain.MaxGridSize+1); !errors.Is(err, domain.ErrInvalidArgument) {
		t.Fatalf("CheckGrid = %v, want ErrInvalidArgument", err)
	}
}

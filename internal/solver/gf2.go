package solver

import (
	"context"
	"errors"
	"time"

	"svw.info/lightsout/internal/domain"
	"svw.info/lightsout/internal/engine"
	"svw.info/lightsout/internal/ports"
	"svw.info/lightsout/internal/validator"
)

// GF2Solver solves Lights Out as a linear system over GF(2).
// Row i of the system is the press pattern of cell i; the right-hand side
// is the lit state of cell i.
type GF2Solver struct {
	// MaxFree caps the number of free variables enumerated when picking the
	// shortest pressing set. Above it free variables are left unpressed.
	MaxFree int
}

func NewGF2Solver() *GF2Solver { return &GF2Solver{MaxFree: 12} }

type equation struct {
	bits []uint64
	rhs  uint8
}

func (e *equation) has(col int) bool {
	return e.bits[col>>6]>>(uint(col)&63)&1 == 1
}

func (e *equation) set(col int) {
	e.bits[col>>6] |= 1 << (uint(col) & 63)
}

func (e *equation) xor(o *equation) {
	for k := range e.bits {
		e.bits[k] ^= o.bits[k]
	}
	e.rhs ^= o.rhs
}

func (e *equation) empty() bool {
	for _, w := range e.bits {
		if w != 0 {
			return false
		}
	}
	return true
}

// reduced is a system in reduced row echelon form.
type reduced struct {
	eqs   []equation
	pivot []int // pivot column of eqs[i]
	free  []int
	n     int
	nodes int
}

func build(g domain.Grid, size int) []equation {
	n := size * size
	words := (n + 63) / 64
	eqs := make([]equation, n)
	for i := 0; i < n; i++ {
		eqs[i].bits = make([]uint64, words)
		for _, j := range engine.Affected(i, size) {
			eqs[i].set(j)
		}
		if g[i].IsActive {
			eqs[i].rhs = 1
		}
	}
	return eqs
}

func eliminate(ctx context.Context, eqs []equation, n int) (*reduced, error) {
	r := &reduced{eqs: eqs, n: n}
	isPivot := make([]bool, n)
	row := 0
	for col := 0; col < n && row < len(eqs); col++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		p := -1
		for k := row; k < len(eqs); k++ {
			if eqs[k].has(col) {
				p = k
				break
			}
		}
		if p < 0 {
			continue
		}
		eqs[row], eqs[p] = eqs[p], eqs[row]
		for k := range eqs {
			if k != row && eqs[k].has(col) {
				eqs[k].xor(&eqs[row])
				r.nodes++
			}
		}
		r.pivot = append(r.pivot, col)
		isPivot[col] = true
		row++
	}
	for k := row; k < len(eqs); k++ {
		if eqs[k].empty() && eqs[k].rhs == 1 {
			return r, domain.ErrUnsolvable
		}
	}
	for col := 0; col < n; col++ {
		if !isPivot[col] {
			r.free = append(r.free, col)
		}
	}
	return r, nil
}

// assign returns the solution for one choice of free variables; bit k of
// mask sets free[k].
func (r *reduced) assign(mask uint64) []bool {
	x := make([]bool, r.n)
	for k, f := range r.free {
		x[f] = mask>>uint(k)&1 == 1
	}
	for i, pc := range r.pivot {
		v := r.eqs[i].rhs
		for k, f := range r.free {
			if mask>>uint(k)&1 == 1 && r.eqs[i].has(f) {
				v ^= 1
			}
		}
		x[pc] = v == 1
	}
	return x
}

func count(x []bool) int {
	n := 0
	for _, b := range x {
		if b {
			n++
		}
	}
	return n
}

// Solve returns the ascending cell indices to press once each to clear g.
// When several pressing sets exist and at most MaxFree variables are free,
// the shortest one is returned. With more free variables the set with every
// free variable unpressed is returned, which need not be the shortest.
func (s *GF2Solver) Solve(ctx context.Context, g domain.Grid, size int) ([]int, ports.Stats, error) {
	start := time.Now()
	if err := validator.CheckGrid(g, size); err != nil {
		return nil, ports.Stats{}, err
	}
	r, err := eliminate(ctx, build(g, size), size*size)
	if err != nil {
		st := ports.Stats{Duration: time.Since(start)}
		if r != nil {
			st.Nodes = r.nodes
		}
		return nil, st, err
	}

	best := r.assign(0)
	if len(r.free) > 0 && len(r.free) <= s.MaxFree && len(r.free) < 64 {
		bestN := count(best)
		limit := uint64(1) << uint(len(r.free))
		for mask := uint64(1); mask < limit; mask++ {
			x := r.assign(mask)
			if c := count(x); c < bestN {
				best, bestN = x, c
			}
			r.nodes++
		}
	}

	presses := make([]int, 0, count(best))
	for i, p := range best {
		if p {
			presses = append(presses, i)
		}
	}
	return presses, ports.Stats{Nodes: r.nodes, Duration: time.Since(start)}, nil
}

// Solvable reports whether some pressing set clears g.
func (s *GF2Solver) Solvable(ctx context.Context, g domain.Grid, size int) (bool, ports.Stats, error) {
	start := time.Now()
	if err := validator.CheckGrid(g, size); err != nil {
		return false, ports.Stats{}, err
	}
	r, err := eliminate(ctx, build(g, size), size*size)
	st := ports.Stats{Duration: time.Since(start)}
	if r != nil {
		st.Nodes = r.nodes
	}
	switch {
	case errors.Is(err, domain.ErrUnsolvable):
		return false, st, nil
	case err != nil:
		return false, st, err
	}
	return true, st, nil
}

// Nullity is the number of independent quiet patterns on a size x size
// board, i.e. presses that leave every light unchanged.
func Nullity(ctx context.Context, size int) (int, error) {
	if err := domain.CheckSize(size); err != nil {
		return 0, err
	}
	r, err := eliminate(ctx, build(domain.NewGrid(size), size), size*size)
	if err != nil {
		return 0, err
	}
	return len(r.free), nil
}

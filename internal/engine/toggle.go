// Package engine applies Lights Out presses to a grid.
package engine

import (
	"fmt"

	"svw.info/lightsout/internal/domain"
)

// Neighbors returns the orthogonal neighbors of index that fall inside a
// size x size grid, in up, down, left, right order.
func Neighbors(index, size int) []int {
	r, c := domain.Coord(index, size)
	out := make([]int, 0, 4)
	if r > 0 {
		out = append(out, index-size)
	}
	if r < size-1 {
		out = append(out, index+size)
	}
	if c > 0 {
		out = append(out, index-1)
	}
	if c < size-1 {
		out = append(out, index+1)
	}
	return out
}

// Affected returns index followed by its orthogonal neighbors.
func Affected(index, size int) []int {
	return append([]int{index}, Neighbors(index, size)...)
}

// Toggle returns a new grid with the cell at index and its orthogonal
// neighbors inverted. The input grid is never modified.
func Toggle(g domain.Grid, index, size int) (domain.Grid, error) {
	if index < 0 || index >= len(g) {
		return nil, fmt.Errorf("toggle %d on %d cells: %w", index, len(g), domain.ErrIndexOutOfRange)
	}
	if err := domain.CheckSize(size); err != nil {
		return nil, fmt.Errorf("toggle: %w", err)
	}
	if size*size != len(g) {
		return nil, fmt.Errorf("toggle: size %d does not match %d cells: %w", size, len(g), domain.ErrInvalidArgument)
	}
	out := g.Clone()
	for _, i := range Affected(index, size) {
		out[i].IsActive = !g[i].IsActive
	}
	return out, nil
}

// PressAll applies Toggle for every index in order.
func PressAll(g domain.Grid, size int, indices []int) (domain.Grid, error) {
	cur := g
	for _, i := range indices {
		next, err := Toggle(cur, i, size)
		if err != nil {
			return nil, err
		}
		cur = next
	}
	return cur, nil
}

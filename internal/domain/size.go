package domain

import "fmt"

// MaxGridSize bounds the side length of any grid. The solver's elimination
// is cubic in the cell count.
const MaxGridSize = 20

// CheckSize rejects side lengths outside [1, MaxGridSize].
func CheckSize(size int) error {
	if size < 1 || size > MaxGridSize {
		return fmt.Errorf("grid size %d outside [1,%d]: %w", size, MaxGridSize, ErrInvalidArgument)
	}
	return nil
}

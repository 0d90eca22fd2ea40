package domain

// Cell is one grid position. ID is its row-major index.
type Cell struct {
	ID       int  `json:"id"`
	IsActive bool `json:"isActive"`
}

// Grid holds size*size cells in row-major order.
type Grid []Cell

// NewGrid returns an all-dark grid of size*size cells.
func NewGrid(size int) Grid {
	g := make(Grid, size*size)
	for i := range g {
		g[i].ID = i
	}
	return g
}

// Clone returns an independent copy of g.
func (g Grid) Clone() Grid {
	if g == nil {
		return nil
	}
	out := make(Grid, len(g))
	copy(out, g)
	return out
}

// Coord maps a row-major index to its row and column.
func Coord(index, size int) (row, col int) {
	return index / size, index % size
}

// CellCoord identifies a cell by row and column.
type CellCoord struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Hint points at the next cell worth pressing.
type Hint struct {
	Index     int    `json:"index"`
	Row       int    `json:"row"`
	Col       int    `json:"col"`
	Remaining int    `json:"remaining"`
	Message   string `json:"message,omitempty"`
}

// Puzzle is a generated starting grid with metadata.
type Puzzle struct {
	Seed      int64       `json:"seed"`
	Level     LevelConfig `json:"level"`
	Grid      Grid        `json:"grid"`
	Solvable  bool        `json:"solvable"` // confirmed by a solver
	CreatedAt int64       `json:"createdAt,omitempty"`
}

// LeaderboardEntry is one recorded run.
type LeaderboardEntry struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Score     int    `json:"score"`
	Level     int    `json:"level"`
	Moves     int    `json:"moves"`
	CreatedAt int64  `json:"createdAt"`
}

package domain

import "fmt"

// LevelConfig describes one difficulty tier. MaxMoves is advisory.
type LevelConfig struct {
	Name                string `json:"name,omitempty" yaml:"name"`
	GridSize            int    `json:"gridSize" yaml:"grid_size"`
	InitialActiveLights int    `json:"initialActiveLights" yaml:"initial_active_lights"`
	MaxMoves            int    `json:"maxMoves" yaml:"max_moves"`
}

// Validate rejects tiers the grid factory would refuse.
func (l LevelConfig) Validate() error {
	if l.GridSize < 2 || l.GridSize > MaxGridSize {
		return fmt.Errorf("%w: level %q grid size %d outside [2,%d]", ErrInvalidLevels, l.Name, l.GridSize, MaxGridSize)
	}
	cells := l.GridSize * l.GridSize
	if l.InitialActiveLights < 0 || l.InitialActiveLights > cells {
		return fmt.Errorf("%w: level %q active lights %d outside [0,%d]", ErrInvalidLevels, l.Name, l.InitialActiveLights, cells)
	}
	if l.MaxMoves < 0 {
		return fmt.Errorf("%w: level %q max moves %d < 0", ErrInvalidLevels, l.Name, l.MaxMoves)
	}
	return nil
}

// Levels is the ordered sequence of difficulty tiers.
type Levels []LevelConfig

// DefaultLevels is the built-in tier table.
func DefaultLevels() Levels {
	return Levels{
		{Name: "Spark", GridSize: 3, InitialActiveLights: 3, MaxMoves: 10},
		{Name: "Glow", GridSize: 4, InitialActiveLights: 5, MaxMoves: 16},
		{Name: "Flicker", GridSize: 5, InitialActiveLights: 8, MaxMoves: 25},
		{Name: "Blaze", GridSize: 6, InitialActiveLights: 12, MaxMoves: 36},
		{Name: "Inferno", GridSize: 7, InitialActiveLights: 16, MaxMoves: 49},
	}
}

// Get returns the tier at index i.
func (ls Levels) Get(i int) (LevelConfig, bool) {
	if i < 0 || i >= len(ls) {
		return LevelConfig{}, false
	}
	return ls[i], true
}

func (ls Levels) Validate() error {
	if len(ls) == 0 {
		return fmt.Errorf("%w: no levels", ErrInvalidLevels)
	}
	for i, l := range ls {
		if err := l.Validate(); err != nil {
			return fmt.Errorf("level %d: %w", i+1, err)
		}
	}
	return nil
}

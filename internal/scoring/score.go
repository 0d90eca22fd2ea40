// Package scoring rates a solved level by how close the move count came to
// the perfect-moves anchor.
package scoring

import (
	"fmt"

	"github.com/shopspring/decimal"

	"svw.info/lightsout/internal/domain"
)

var (
	one     = decimal.NewFromInt(1)
	hundred = decimal.NewFromInt(100)
)

// PerfectMoves is ceil(size²/2). It is a scoring anchor, not an optimal
// solution length.
func PerfectMoves(gridSize int) int {
	return (gridSize*gridSize + 1) / 2
}

// Efficiency is max(0, 1 - (moves-perfect)/(2*perfect)). It exceeds 1 when
// the level is solved in fewer moves than the anchor.
func Efficiency(movesMade, gridSize int) (decimal.Decimal, error) {
	if movesMade < 0 {
		return decimal.Zero, fmt.Errorf("moves %d: %w", movesMade, domain.ErrInvalidArgument)
	}
	if err := domain.CheckSize(gridSize); err != nil {
		return decimal.Zero, err
	}
	perfect := PerfectMoves(gridSize)
	over := decimal.NewFromInt(int64(movesMade - perfect))
	eff := one.Sub(over.Div(decimal.NewFromInt(int64(2 * perfect))))
	if eff.IsNegative() {
		return decimal.Zero, nil
	}
	return eff, nil
}

// CalculateScore returns round(100 * efficiency), halves rounded up.
func CalculateScore(movesMade, gridSize int) (int, error) {
	eff, err := Efficiency(movesMade, gridSize)
	if err != nil {
		return 0, err
	}
	return int(eff.Mul(hundred).Round(0).IntPart()), nil
}

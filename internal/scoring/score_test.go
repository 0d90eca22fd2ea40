package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"svw.info/lightsout/internal/domain"
)

func TestPerfectMoves(t *testing.T) {
	cases := map[int]int{1: 1, 2: 2, 3: 5, 4: 8, 5: 13, 7: 25, 10: 50}
	for size, want := range cases {
		assert.Equal(t, want, PerfectMoves(size), "size %d", size)
	}
}

func TestScoreAnchors(t *testing.T) {
	for size := 1; size <= 10; size++ {
		p := PerfectMoves(size)

		got, err := CalculateScore(p, size)
		require.NoError(t, err)
		assert.Equal(t, 100, got, "perfect moves on size %d", size)

		got, err = CalculateScore(3*p, size)
		require.NoError(t, err)
		assert.Equal(t, 0, got, "triple moves on size %d", size)

		got, err = CalculateScore(10*p, size)
		require.NoError(t, err)
		assert.Equal(t, 0, got, "score must clamp at zero on size %d", size)
	}
}

func TestScoreStrictlyDecreasesPastPerfect(t *testing.T) {
	for size := 2; size <= 10; size++ {
		p := PerfectMoves(size)
		prev, err := CalculateScore(p, size)
		require.NoError(t, err)
		for m := p + 1; m <= 3*p; m++ {
			cur, err := CalculateScore(m, size)
			require.NoError(t, err)
			require.Less(t, cur, prev, "size %d moves %d", size, m)
			prev = cur
		}
	}
}

func TestScoreAboveHundredIsKept(t *testing.T) {
	got, err := CalculateScore(0, 3)
	require.NoError(t, err)
	assert.Equal(t, 150, got)

	got, err = CalculateScore(3, 3)
	require.NoError(t, err)
	assert.Equal(t, 120, got)
}

func TestScoreRoundsHalfUp(t *testing.T) {
	// size 4: perfect 8, moves 10 -> 100 * (1 - 2/16) = 87.5
	got, err := CalculateScore(10, 4)
	require.NoError(t, err)
	assert.Equal(t, 88, got)

	// size 4: moves 9 -> 93.75
	got, err = CalculateScore(9, 4)
	require.NoError(t, err)
	assert.Equal(t, 94, got)
}

func TestScoreRejectsInvalidInput(t *testing.T) {
	_, err := CalculateScore(-1, 3)
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)
	_, err = CalculateScore(4, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)
}

func TestScoreRejectsOversizedGrid(t *testing.T) {
	for _, size := range []int{domain.MaxGridSize + 1, 1 << 32} {
		_, err := CalculateScore(0, size)
		assert.ErrorIs(t, err, domain.ErrInvalidArgument, "size %d", size)
	}
	got, err := CalculateScore(0, domain.MaxGridSize)
	require.NoError(t, err)
	assert.Equal(t, 150, got)
}

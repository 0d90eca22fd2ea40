// Package leaderboard ranks finished runs. It owns no storage; entries are
// loaded and saved through a ports.LeaderboardStore.
package leaderboard

import (
	"sort"
	"strings"
	"unicode/utf8"

	"svw.info/lightsout/internal/domain"
)

const (
	DefaultSize   = 10
	MaxNameLength = 24
	Anonymous     = "Anonymous"
)

// Board keeps the best Size runs.
type Board struct {
	Size int
}

func New(size int) Board {
	if size < 1 {
		size = DefaultSize
	}
	return Board{Size: size}
}

// Qualifies reports whether score would place on the board.
func (b Board) Qualifies(entries []domain.LeaderboardEntry, score int) bool {
	ranked := Sort(entries)
	if len(ranked) < b.Size {
		return true
	}
	return score > ranked[b.Size-1].Score
}

// Insert returns the ranked board with e added and trimmed to Size.
func (b Board) Insert(entries []domain.LeaderboardEntry, e domain.LeaderboardEntry) []domain.LeaderboardEntry {
	e.Name = NormalizeName(e.Name)
	out := Sort(append(append([]domain.LeaderboardEntry(nil), entries...), e))
	if len(out) > b.Size {
		out = out[:b.Size]
	}
	return out
}

// Sort returns a copy ordered by score, highest first; ties keep the
// earlier run ahead.
func Sort(entries []domain.LeaderboardEntry) []domain.LeaderboardEntry {
	out := append([]domain.LeaderboardEntry(nil), entries...)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].CreatedAt < out[j].CreatedAt
	})
	return out
}

// NormalizeName trims whitespace, caps the length and substitutes
// Anonymous for blank names.
func NormalizeName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return Anonymous
	}
	if utf8.RuneCountInString(name) > MaxNameLength {
		name = strings.TrimSpace(string([]rune(name)[:MaxNameLength]))
	}
	return name
}

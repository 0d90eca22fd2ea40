// Package session runs the level progression of one player:
// Intro -> Playing -> Solved -> (NameEntry) -> Transition -> Playing ... -> Intro.
// A Session is not safe for concurrent use.
package session

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"svw.info/lightsout/internal/domain"
	"svw.info/lightsout/internal/engine"
	"svw.info/lightsout/internal/leaderboard"
	"svw.info/lightsout/internal/ports"
	"svw.info/lightsout/internal/scoring"
	"svw.info/lightsout/internal/validator"
)

// Game holds the rules shared by every session.
type Game struct {
	Levels    domain.Levels
	Generator ports.Generator
	Board     leaderboard.Board
	Store     ports.LeaderboardStore

	Seed func() int64
	Now  func() time.Time
}

// NewGame wires the rules. store may be nil, in which case the leaderboard
// is neither read nor written.
func NewGame(levels domain.Levels, gen ports.Generator, board leaderboard.Board, store ports.LeaderboardStore) *Game {
	return &Game{
		Levels:    levels,
		Generator: gen,
		Board:     board,
		Store:     store,
		Seed:      func() int64 { return time.Now().UnixNano() },
		Now:       time.Now,
	}
}

// Session is the state of one player's run.
type Session struct {
	ID              string
	Phase           domain.Phase
	LevelIndex      int
	Level           domain.LevelConfig
	Grid            domain.Grid
	Seed            int64
	Solvable        bool
	Moves           int
	LevelScore      int
	CumulativeScore int
	TotalMoves      int

	game    *Game
	history []domain.Grid
}

// NewSession returns a session in Intro.
func (g *Game) NewSession(id string) *Session {
	return &Session{ID: id, Phase: domain.Intro, game: g}
}

func (s *Session) wrongPhase(op string) error {
	return fmt.Errorf("%s during %s: %w", op, s.Phase, domain.ErrWrongPhase)
}

// Start begins the first level.
func (s *Session) Start(ctx context.Context) error {
	if s.Phase != domain.Intro {
		return s.wrongPhase("start")
	}
	s.CumulativeScore = 0
	s.TotalMoves = 0
	return s.startLevel(ctx, 0)
}

func (s *Session) startLevel(ctx context.Context, index int) error {
	lvl, ok := s.game.Levels.Get(index)
	if !ok {
		return fmt.Errorf("level %d: %w", index, domain.ErrInvalidLevels)
	}
	seed := s.game.Seed()
	p, _, err := s.game.Generator.Generate(ctx, seed, lvl)
	if err != nil {
		return fmt.Errorf("generate level %d: %w", index+1, err)
	}
	s.LevelIndex = index
	s.Level = lvl
	s.Grid = p.Grid
	s.Seed = p.Seed
	s.Solvable = p.Solvable
	s.Moves = 0
	s.LevelScore = 0
	s.history = nil
	s.Phase = domain.Playing
	return nil
}

// Press toggles the cell at index and counts one move. It reports whether
// the press solved the level.
func (s *Session) Press(index int) (bool, error) {
	if s.Phase != domain.Playing {
		return false, fmt.Errorf("press during %s: %w", s.Phase, domain.ErrNotPlaying)
	}
	next, err := engine.Toggle(s.Grid, index, s.Level.GridSize)
	if err != nil {
		return false, err
	}
	s.history = append(s.history, s.Grid)
	s.Grid = next
	s.Moves++
	if !validator.IsSolved(next) {
		return false, nil
	}
	score, err := scoring.CalculateScore(s.Moves, s.Level.GridSize)
	if err != nil {
		return false, err
	}
	s.LevelScore = score
	s.CumulativeScore += score
	s.TotalMoves += s.Moves
	s.history = nil
	s.Phase = domain.Solved
	return true, nil
}

// Undo restores the grid before the last press. It reports false when
// there is nothing to undo.
func (s *Session) Undo() (bool, error) {
	if s.Phase != domain.Playing {
		return false, fmt.Errorf("undo during %s: %w", s.Phase, domain.ErrNotPlaying)
	}
	n := len(s.history)
	if n == 0 {
		return false, nil
	}
	s.Grid = s.history[n-1]
	s.history = s.history[:n-1]
	s.Moves--
	return true, nil
}

func (s *Session) CanUndo() bool { return s.Phase == domain.Playing && len(s.history) > 0 }

// Reset draws a fresh grid for the current level and zeroes the move
// counter. Level and cumulative score are kept.
func (s *Session) Reset(ctx context.Context) error {
	if s.Phase != domain.Playing {
		return s.wrongPhase("reset")
	}
	return s.startLevel(ctx, s.LevelIndex)
}

// Advance moves past Solved, NameEntry and Transition.
func (s *Session) Advance(ctx context.Context) error {
	switch s.Phase {
	case domain.Solved:
		qualifies, err := s.qualifies(ctx)
		if err != nil {
			return err
		}
		if qualifies {
			s.Phase = domain.NameEntry
		} else {
			s.Phase = domain.Transition
		}
		return nil
	case domain.NameEntry:
		s.Phase = domain.Transition
		return nil
	case domain.Transition:
		if s.LevelIndex+1 < len(s.game.Levels) {
			return s.startLevel(ctx, s.LevelIndex+1)
		}
		s.finish()
		return nil
	default:
		return s.wrongPhase("advance")
	}
}

func (s *Session) finish() {
	s.Phase = domain.Intro
	s.LevelIndex = 0
	s.Level = domain.LevelConfig{}
	s.Grid = nil
	s.Moves = 0
	s.LevelScore = 0
	s.CumulativeScore = 0
	s.TotalMoves = 0
	s.history = nil
}

func (s *Session) qualifies(ctx context.Context) (bool, error) {
	if s.game.Store == nil {
		return false, nil
	}
	entries, err := s.game.Store.Load(ctx)
	if err != nil {
		return false, fmt.Errorf("load leaderboard: %w", err)
	}
	return s.game.Board.Qualifies(entries, s.CumulativeScore), nil
}

// SubmitName records the cumulative score under name and moves to
// Transition.
func (s *Session) SubmitName(ctx context.Context, name string) (domain.LeaderboardEntry, error) {
	if s.Phase != domain.NameEntry {
		return domain.LeaderboardEntry{}, s.wrongPhase("submit name")
	}
	entry := domain.LeaderboardEntry{
		ID:        uuid.NewString(),
		Name:      leaderboard.NormalizeName(name),
		Score:     s.CumulativeScore,
		Level:     s.LevelIndex + 1,
		Moves:     s.TotalMoves,
		CreatedAt: s.game.Now().UnixNano(),
	}
	if s.game.Store != nil {
		entries, err := s.game.Store.Load(ctx)
		if err != nil {
			return domain.LeaderboardEntry{}, fmt.Errorf("load leaderboard: %w", err)
		}
		if err := s.game.Store.Save(ctx, s.game.Board.Insert(entries, entry)); err != nil {
			return domain.LeaderboardEntry{}, fmt.Errorf("save leaderboard: %w", err)
		}
	}
	s.Phase = domain.Transition
	return entry, nil
}

// View is a read-only copy of a session for clients.
type View struct {
	ID              string             `json:"id"`
	Phase           domain.Phase       `json:"phase"`
	LevelIndex      int                `json:"levelIndex"`
	LevelCount      int                `json:"levelCount"`
	Level           domain.LevelConfig `json:"level"`
	Grid            domain.Grid        `json:"grid"`
	Seed            int64              `json:"seed"`
	Solvable        bool               `json:"solvable"`
	Moves           int                `json:"moves"`
	LevelScore      int                `json:"levelScore"`
	CumulativeScore int                `json:"cumulativeScore"`
	TotalMoves      int                `json:"totalMoves"`
	CanUndo         bool               `json:"canUndo"`
}

func (s *Session) Snapshot() View {
	return View{
		ID:              s.ID,
		Phase:           s.Phase,
		LevelIndex:      s.LevelIndex,
		LevelCount:      len(s.game.Levels),
		Level:           s.Level,
		Grid:            s.Grid.Clone(),
		Seed:            s.Seed,
		Solvable:        s.Solvable,
		Moves:           s.Moves,
		LevelScore:      s.LevelScore,
		CumulativeScore: s.CumulativeScore,
		TotalMoves:      s.TotalMoves,
		CanUndo:         s.CanUndo(),
	}
}

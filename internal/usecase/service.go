package usecase

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"svw.info/lightsout/internal/domain"
	"svw.info/lightsout/internal/engine"
	"svw.info/lightsout/internal/generator"
	"svw.info/lightsout/internal/leaderboard"
	"svw.info/lightsout/internal/ports"
	"svw.info/lightsout/internal/scoring"
	"svw.info/lightsout/internal/session"
	"svw.info/lightsout/internal/validator"
)

type Service struct {
	Solver      ports.Solver
	Generator   ports.Generator
	Validator   ports.Validator
	Hinter      ports.Hinter
	Leaderboard ports.LeaderboardStore

	game   *session.Game
	logger *zap.Logger

	mu       sync.Mutex
	sessions map[string]*session.Session
}

func NewService(s ports.Solver, g ports.Generator, v ports.Validator, h ports.Hinter, lb ports.LeaderboardStore, levels domain.Levels, board leaderboard.Board, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		Solver:      s,
		Generator:   g,
		Validator:   v,
		Hinter:      h,
		Leaderboard: lb,
		game:        session.NewGame(levels, g, board, lb),
		logger:      logger,
		sessions:    make(map[string]*session.Session),
	}
}

var errNotConfigured = errors.New("usecase dependency not configured")

func newRand(seed int64) *rand.Rand { return rand.New(rand.NewSource(seed)) }

// ---- engine operations ----

// GenerateGrid draws a grid with a math/rand source seeded by seed.
func (u *Service) GenerateGrid(seed int64, size, active int) (domain.Grid, error) {
	return generator.GenerateGrid(newRand(seed), size, active)
}

// Toggle presses index on a client supplied grid, which must also carry
// ids 0..n-1 in order.
func (u *Service) Toggle(g domain.Grid, index, size int) (domain.Grid, error) {
	next, err := engine.Toggle(g, index, size)
	if err != nil {
		return nil, err
	}
	if err := validator.CheckGrid(g, size); err != nil {
		return nil, err
	}
	return next, nil
}

func (u *Service) IsSolved(g domain.Grid) bool {
	return validator.IsSolved(g)
}

func (u *Service) CalculateScore(moves, gridSize int) (int, error) {
	return scoring.CalculateScore(moves, gridSize)
}

func (u *Service) Generate(ctx context.Context, seed int64, level domain.LevelConfig) (*domain.Puzzle, ports.Stats, error) {
	if u.Generator == nil {
		return nil, ports.Stats{}, errNotConfigured
	}
	return u.Generator.Generate(ctx, seed, level)
}

func (u *Service) Solve(ctx context.Context, g domain.Grid, size int) ([]int, ports.Stats, error) {
	if u.Solver == nil {
		return nil, ports.Stats{}, errNotConfigured
	}
	return u.Solver.Solve(ctx, g, size)
}

func (u *Service) Validate(ctx context.Context, g domain.Grid, size int) (bool, []int, error) {
	if u.Validator == nil {
		return false, nil, errNotConfigured
	}
	return u.Validator.Validate(ctx, g, size)
}

func (u *Service) Levels() domain.Levels {
	return append(domain.Levels(nil), u.game.Levels...)
}

func (u *Service) LeaderboardEntries(ctx context.Context) ([]domain.LeaderboardEntry, error) {
	if u.Leaderboard == nil {
		return nil, errNotConfigured
	}
	entries, err := u.Leaderboard.Load(ctx)
	if err != nil {
		return nil, err
	}
	return leaderboard.Sort(entries), nil
}

// ---- sessions ----

func (u *Service) CreateSession() session.View {
	id := uuid.NewString()
	s := u.game.NewSession(id)

	u.mu.Lock()
	u.sessions[id] = s
	u.mu.Unlock()

	u.logger.Info("session created", zap.String("session", id))
	return s.Snapshot()
}

// withSession runs fn on the session under the service lock.
func (u *Service) withSession(id string, fn func(s *session.Session) error) (session.View, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	s, ok := u.sessions[id]
	if !ok {
		return session.View{}, fmt.Errorf("session %s: %w", id, domain.ErrSessionNotFound)
	}
	err := fn(s)
	return s.Snapshot(), err
}

func (u *Service) Session(id string) (session.View, error) {
	return u.withSession(id, func(*session.Session) error { return nil })
}

func (u *Service) DeleteSession(id string) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	if _, ok := u.sessions[id]; !ok {
		return fmt.Errorf("session %s: %w", id, domain.ErrSessionNotFound)
	}
	delete(u.sessions, id)
	return nil
}

func (u *Service) Start(ctx context.Context, id string) (session.View, error) {
	return u.withSession(id, func(s *session.Session) error {
		if err := s.Start(ctx); err != nil {
			return err
		}
		u.logger.Info("run started", zap.String("session", id), zap.Int64("seed", s.Seed))
		return nil
	})
}

// Press reports the session after the press and whether it solved the level.
func (u *Service) Press(ctx context.Context, id string, index int) (session.View, bool, error) {
	var solved bool
	v, err := u.withSession(id, func(s *session.Session) error {
		var err error
		solved, err = s.Press(index)
		if solved {
			u.logger.Info("level solved",
				zap.String("session", id),
				zap.Int("level", s.LevelIndex+1),
				zap.Int("moves", s.Moves),
				zap.Int("score", s.LevelScore),
				zap.Int("total", s.CumulativeScore),
			)
		}
		return err
	})
	return v, solved, err
}

func (u *Service) Undo(ctx context.Context, id string) (session.View, error) {
	return u.withSession(id, func(s *session.Session) error {
		_, err := s.Undo()
		return err
	})
}

func (u *Service) Reset(ctx context.Context, id string) (session.View, error) {
	return u.withSession(id, func(s *session.Session) error {
		return s.Reset(ctx)
	})
}

func (u *Service) Advance(ctx context.Context, id string) (session.View, error) {
	return u.withSession(id, func(s *session.Session) error {
		wasLast := s.Phase == domain.Transition && s.LevelIndex+1 >= len(u.game.Levels)
		final := s.CumulativeScore
		if err := s.Advance(ctx); err != nil {
			return err
		}
		if wasLast {
			u.logger.Info("run finished", zap.String("session", id), zap.Int("score", final))
		}
		return nil
	})
}

func (u *Service) SubmitName(ctx context.Context, id, name string) (session.View, domain.LeaderboardEntry, error) {
	var entry domain.LeaderboardEntry
	v, err := u.withSession(id, func(s *session.Session) error {
		var err error
		entry, err = s.SubmitName(ctx, name)
		if err == nil {
			u.logger.Info("leaderboard entry",
				zap.String("session", id),
				zap.String("name", entry.Name),
				zap.Int("score", entry.Score),
			)
		}
		return err
	})
	return v, entry, err
}

func (u *Service) Hint(ctx context.Context, id string) (domain.Hint, bool, error) {
	if u.Hinter == nil {
		return domain.Hint{}, false, errNotConfigured
	}
	var (
		grid domain.Grid
		size int
	)
	if _, err := u.withSession(id, func(s *session.Session) error {
		if s.Phase != domain.Playing {
			return fmt.Errorf("hint during %s: %w", s.Phase, domain.ErrNotPlaying)
		}
		grid, size = s.Grid.Clone(), s.Level.GridSize
		return nil
	}); err != nil {
		return domain.Hint{}, false, err
	}
	return u.Hinter.Hint(ctx, grid, size)
}

package storage

import (
	"context"
	"sync"

	"svw.info/lightsout/internal/domain"
)

// Memory is a process-local leaderboard store.
type Memory struct {
	mu      sync.Mutex
	entries []domain.LeaderboardEntry
}

func NewMemory() *Memory { return &Memory{} }

func (m *Memory) Load(ctx context.Context) ([]domain.LeaderboardEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.LeaderboardEntry(nil), m.entries...), nil
}

func (m *Memory) Save(ctx context.Context, entries []domain.LeaderboardEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append([]domain.LeaderboardEntry(nil), entries...)
	return nil
}

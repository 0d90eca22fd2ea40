package storage

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"

	"svw.info/lightsout/internal/domain"
)

const leaderboardFile = "leaderboard.json"

// FS keeps the leaderboard as a JSON document under dir.
type FS struct {
	dir string
	mu  sync.Mutex
}

func NewFS(dir string) *FS { return &FS{dir: dir} }

func (s *FS) path() string { return filepath.Join(s.dir, leaderboardFile) }

type fsDoc struct {
	Version int                       `json:"version"`
	Entries []domain.LeaderboardEntry `json:"entries"`
}

func (s *FS) Save(ctx context.Context, entries []domain.LeaderboardEntry) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return err
	}
	// replace atomically via rename
	tmp, err := os.CreateTemp(s.dir, leaderboardFile+".*")
	if err != nil {
		return err
	}
	enc := json.NewEncoder(tmp)
	enc.SetIndent("", "  ")
	if entries == nil {
		entries = []domain.LeaderboardEntry{}
	}
	if err := enc.Encode(fsDoc{Version: 1, Entries: entries}); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), s.path())
}

func (s *FS) Load(ctx context.Context) ([]domain.LeaderboardEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	var doc fsDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		// legacy layout: a bare array of entries
		var bare []domain.LeaderboardEntry
		if err2 := json.Unmarshal(data, &bare); err2 != nil {
			return nil, err
		}
		return bare, nil
	}
	return doc.Entries, nil
}

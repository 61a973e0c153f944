// Package storage persists the daily-post marker. Two implementations of
// the same port: a JSON file for local disk, Postgres for hosts with
// ephemeral filesystems.
package storage

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/fxelysrism/a-map-of-us-bot/internal/core/ports"
)

type marker struct {
	LastPostDate string `json:"last_post_date"`
}

// JSONStorage keeps the marker in a single JSON file, overwritten on each
// save. A missing or unreadable file reads as "never posted".
type JSONStorage struct {
	FilePath string
	mu       sync.Mutex
}

func NewJSONStorage(filePath string) (*JSONStorage, error) {
	if dir := filepath.Dir(filePath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, err
		}
	}
	return &JSONStorage{FilePath: filePath}, nil
}

var _ ports.Storage = (*JSONStorage)(nil)

// LastPostDate reads the marker. Absent, malformed, or unreadable files
// are all indistinguishable from "no marker": ("", nil).
func (s *JSONStorage) LastPostDate(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := os.ReadFile(s.FilePath)
	if err != nil {
		return "", nil
	}
	var m marker
	if err := json.Unmarshal(raw, &m); err != nil {
		return "", nil
	}
	return m.LastPostDate, nil
}

func (s *JSONStorage) SetLastPostDate(ctx context.Context, date string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := json.Marshal(marker{LastPostDate: date})
	if err != nil {
		return err
	}
	return os.WriteFile(s.FilePath, raw, 0644)
}

package leaderboard

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
)

// FileStore keeps the history as a single JSON document on disk, written via
// a temp file and rename so a crashed write never leaves a half-written list.
type FileStore struct {
	path   string
	logger zerolog.Logger
}

// NewFileStore creates a file-backed store at path. The parent directory is
// created on first save.
func NewFileStore(path string, logger zerolog.Logger) *FileStore {
	return &FileStore{
		path:   path,
		logger: logger.With().Str("component", "leaderboard_file").Logger(),
	}
}

func (f *FileStore) Load(ctx context.Context) ([]Entry, error) {
	data, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", ErrUnavailable, f.path, err)
	}

	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		f.logger.Warn().Err(err).Str("path", f.path).Msg("corrupt history, treating as empty")
		return nil, nil
	}
	return entries, nil
}

func (f *FileStore) Save(ctx context.Context, entries []Entry) error {
	data, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("marshal history: %w", err)
	}

	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("%w: mkdir %s: %v", ErrUnavailable, dir, err)
	}

	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("%w: write %s: %v", ErrUnavailable, tmp, err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		return fmt.Errorf("%w: rename %s: %v", ErrUnavailable, tmp, err)
	}
	return nil
}

func (f *FileStore) Wipe(ctx context.Context) error {
	if err := os.Remove(f.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: remove %s: %v", ErrUnavailable, f.path, err)
	}
	return nil
}

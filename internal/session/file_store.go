package session

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
)

// fileStore implements Store on a single JSON file.
type fileStore struct {
	path   string
	logger zerolog.Logger
}

// NewFileStore creates a file-backed session store.
func NewFileStore(path string, logger zerolog.Logger) Store {
	return &fileStore{
		path:   path,
		logger: logger.With().Str("component", "session-file").Logger(),
	}
}

// Load reads the session file.
func (s *fileStore) Load(ctx context.Context) (State, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			s.logger.Debug().Str("file", s.path).Msg("no stored session")
			return State{}, nil
		}
		return State{}, fmt.Errorf("failed to read session file %s: %w", s.path, err)
	}

	state, err := Decode(data)
	if err != nil {
		s.logger.Warn().Err(err).Str("file", s.path).Msg("stored session is unreadable")
		return State{}, err
	}

	return state, nil
}

// Save writes the session atomically with owner-only permissions.
func (s *fileStore) Save(ctx context.Context, state State) error {
	data, err := Encode(state)
	if err != nil {
		return err
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("failed to create session directory %s: %w", dir, err)
	}

	// Write to a temp file in the same directory, then rename over the target
	tmp, err := os.CreateTemp(dir, ".session-*")
	if err != nil {
		return fmt.Errorf("failed to create temp session file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to set session file permissions: %w", err)
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write session file: %w", err)
	}

	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close session file: %w", err)
	}

	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("failed to replace session file %s: %w", s.path, err)
	}

	s.logger.Debug().Str("file", s.path).Msg("session saved")

	return nil
}

// Clear deletes the session file.
func (s *fileStore) Clear(ctx context.Context) error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to remove session file %s: %w", s.path, err)
	}

	s.logger.Debug().Str("file", s.path).Msg("session cleared")

	return nil
}

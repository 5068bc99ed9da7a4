// Package file persists the current session as a JSON file under the
// client's state directory. It is the durable-storage analog of the browser
// localStorage slot: missing files, corrupt payloads, and an unavailable
// state directory all read back as "no session".
package file

import (
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/rently/rently-client/internal/core/domain"
)

const sessionFile = "current_session.json"

// Store writes the session slot to <dir>/current_session.json.
type Store struct {
	dir string
	log zerolog.Logger
}

// NewStore returns a Store rooted at dir. An empty dir models an execution
// context without storage capability: saves and clears become no-ops and
// restores find nothing.
func NewStore(dir string, log zerolog.Logger) *Store {
	return &Store{dir: dir, log: log}
}

// sessionRecord is the on-disk shape. The credential is deliberately not
// persisted; a restored session carries identity only.
type sessionRecord struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Role string `json:"role"`
}

func (s *Store) Save(_ context.Context, identity *domain.Identity) error {
	if s.dir == "" {
		s.log.Debug().Msg("no state directory, skipping session persist")
		return nil
	}
	if err := os.MkdirAll(s.dir, 0o700); err != nil {
		return err
	}
	data, err := json.Marshal(sessionRecord{
		ID:   identity.ID,
		Name: identity.Name,
		Role: string(identity.Role),
	})
	if err != nil {
		return err
	}
	return os.WriteFile(s.path(), data, 0o600)
}

func (s *Store) Clear(_ context.Context) error {
	if s.dir == "" {
		return nil
	}
	if err := os.Remove(s.path()); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

func (s *Store) Restore(_ context.Context) (*domain.Identity, error) {
	if s.dir == "" {
		return nil, nil
	}
	data, err := os.ReadFile(s.path())
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		s.log.Warn().Err(err).Msg("session slot unreadable, treating as empty")
		return nil, nil
	}

	var rec sessionRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		s.log.Warn().Err(err).Msg("session slot corrupt, treating as empty")
		return nil, nil
	}
	role, err := domain.ParseRole(rec.Role)
	if err != nil {
		s.log.Warn().Str("role", rec.Role).Msg("session slot holds unknown role, treating as empty")
		return nil, nil
	}

	return &domain.Identity{ID: rec.ID, Name: rec.Name, Role: role}, nil
}

func (s *Store) path() string {
	return filepath.Join(s.dir, sessionFile)
}

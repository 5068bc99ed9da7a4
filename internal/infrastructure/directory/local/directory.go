// Package local implements the identity directory as a durable JSON users
// file, seeded with the demo roster on first load. It models the mock-data
// era of the product, before the remote identity service existed.
package local

import (
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"

	"github.com/rently/rently-client/internal/core/domain"
	"github.com/rently/rently-client/internal/metrics"
)

const usersFile = "users.json"

// Directory stores identities in <dir>/users.json. Passwords are kept
// bcrypt-hashed; the plaintext never touches disk.
type Directory struct {
	dir string
	log zerolog.Logger

	mu  sync.Mutex
	mem []userRecord // roster when no state directory is configured
}

// NewDirectory returns a Directory rooted at dir. An empty dir keeps the
// roster purely in memory for the lifetime of the process.
func NewDirectory(dir string, log zerolog.Logger) *Directory {
	return &Directory{dir: dir, log: log}
}

type userRecord struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Role         string `json:"role"`
	PasswordHash string `json:"password_hash"`
}

func (d *Directory) List(ctx context.Context) ([]domain.Identity, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	records, err := d.load()
	if err != nil {
		metrics.DirectoryRequestsTotal.WithLabelValues("local", "error").Inc()
		return nil, err
	}
	metrics.DirectoryRequestsTotal.WithLabelValues("local", "success").Inc()

	identities := make([]domain.Identity, 0, len(records))
	for _, rec := range records {
		role, err := domain.ParseRole(rec.Role)
		if err != nil {
			d.log.Warn().Str("id", rec.ID).Str("role", rec.Role).Msg("skipping user with unknown role")
			continue
		}
		identities = append(identities, domain.Identity{
			ID:     rec.ID,
			Name:   rec.Name,
			Role:   role,
			Secret: domain.Secret{Scheme: domain.SecretBcrypt, Value: rec.PasswordHash},
		})
	}
	return identities, nil
}

func (d *Directory) Create(ctx context.Context, n domain.NewIdentity) (*domain.Identity, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	records, err := d.load()
	if err != nil {
		metrics.DirectoryRequestsTotal.WithLabelValues("local", "error").Inc()
		return nil, err
	}

	for _, rec := range records {
		if rec.Role == string(n.Role) && strings.EqualFold(strings.TrimSpace(rec.Name), strings.TrimSpace(n.Name)) {
			metrics.DirectoryRequestsTotal.WithLabelValues("local", "error").Inc()
			return nil, domain.ErrConflict
		}
	}

	secret, err := domain.BcryptSecret(n.Password)
	if err != nil {
		metrics.DirectoryRequestsTotal.WithLabelValues("local", "error").Inc()
		return nil, err
	}

	rec := userRecord{
		ID:           ulid.Make().String(),
		Name:         n.Name,
		Role:         string(n.Role),
		PasswordHash: secret.Value,
	}
	records = append(records, rec)
	if err := d.save(records); err != nil {
		metrics.DirectoryRequestsTotal.WithLabelValues("local", "error").Inc()
		return nil, err
	}
	metrics.DirectoryRequestsTotal.WithLabelValues("local", "success").Inc()

	return &domain.Identity{
		ID:     rec.ID,
		Name:   rec.Name,
		Role:   n.Role,
		Secret: secret,
	}, nil
}

// load reads the users file, seeding it with the demo roster on first use.
func (d *Directory) load() ([]userRecord, error) {
	if d.dir == "" {
		if d.mem == nil {
			d.mem = seedRoster(d.log)
		}
		return d.mem, nil
	}

	data, err := os.ReadFile(d.path())
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
		seeded := seedRoster(d.log)
		if err := d.save(seeded); err != nil {
			return nil, err
		}
		return seeded, nil
	}

	var records []userRecord
	if err := json.Unmarshal(data, &records); err != nil {
		d.log.Warn().Err(err).Msg("users file corrupt, reseeding")
		seeded := seedRoster(d.log)
		if err := d.save(seeded); err != nil {
			return nil, err
		}
		return seeded, nil
	}
	return records, nil
}

func (d *Directory) save(records []userRecord) error {
	if d.dir == "" {
		d.mem = records
		return nil
	}
	if err := os.MkdirAll(d.dir, 0o700); err != nil {
		return err
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(d.path(), data, 0o600)
}

func (d *Directory) path() string {
	return filepath.Join(d.dir, usersFile)
}

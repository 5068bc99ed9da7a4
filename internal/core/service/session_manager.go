package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/rently/rently-client/internal/core/domain"
	"github.com/rently/rently-client/internal/core/ports"
	"github.com/rently/rently-client/internal/metrics"
)

// SessionManager owns the authentication lifecycle for one client process:
// registering identities, validating logins, tracking the active session,
// and keeping the durable store and cookie mirror in step with it.
//
// Session-mutating operations carry a monotonically increasing sequence
// number taken before their first suspension point. A completed operation is
// applied only if nothing newer has been applied since, so an overlapping
// slow response is discarded (ErrSuperseded) instead of clobbering a more
// recent session.
type SessionManager struct {
	directory ports.IdentityDirectory
	store     ports.SessionStore
	cookies   ports.CookieMirror
	validate  *validator.Validate
	log       zerolog.Logger

	mu      sync.Mutex
	current *domain.Identity
	issued  uint64
	applied uint64

	// persistMu orders writes to the durable store and cookie mirror so a
	// superseded operation cannot overwrite a newer operation's persisted
	// session after the fact.
	persistMu sync.Mutex
}

// NewSessionManager builds a manager and restores any persisted session from
// the durable store. A missing, malformed, or unreadable slot restores to
// "logged out" rather than failing construction.
func NewSessionManager(ctx context.Context, directory ports.IdentityDirectory, store ports.SessionStore, cookies ports.CookieMirror, log zerolog.Logger) *SessionManager {
	m := &SessionManager{
		directory: directory,
		store:     store,
		cookies:   cookies,
		validate:  newValidator(),
		log:       log,
	}

	restored, err := store.Restore(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("session restore failed, starting logged out")
	}
	m.current = restored
	return m
}

// Current returns a copy of the authenticated identity, or nil when logged
// out. It never blocks on the backing directory.
func (m *SessionManager) Current() *domain.Identity {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.current == nil {
		return nil
	}
	cp := *m.current
	return &cp
}

// Register creates a new identity and logs it in.
func (m *SessionManager) Register(ctx context.Context, name, password string, role domain.Role) (*domain.Identity, error) {
	identity, err := m.register(ctx, name, password, role)
	metrics.SessionOperationsTotal.WithLabelValues("register", outcomeLabel(err)).Inc()
	return identity, err
}

func (m *SessionManager) register(ctx context.Context, name, password string, role domain.Role) (*domain.Identity, error) {
	if err := m.checkCredentials(name, password); err != nil {
		return nil, err
	}
	seq := m.begin()

	name = strings.TrimSpace(name)
	existing, err := m.directory.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, id := range existing {
		if id.Role == role && id.NameMatches(name) {
			return nil, fmt.Errorf("%w: a %s account named %q is already registered", domain.ErrConflict, role, name)
		}
	}

	created, err := m.directory.Create(ctx, domain.NewIdentity{
		Name:     name,
		Password: password,
		Role:     role,
	})
	if err != nil {
		return nil, err
	}

	return m.apply(ctx, seq, created)
}

// Login authenticates against the identity directory and makes the matching
// identity the current session.
func (m *SessionManager) Login(ctx context.Context, name, password string, role domain.Role) (*domain.Identity, error) {
	identity, err := m.login(ctx, name, password, role)
	metrics.SessionOperationsTotal.WithLabelValues("login", outcomeLabel(err)).Inc()
	return identity, err
}

func (m *SessionManager) login(ctx context.Context, name, password string, role domain.Role) (*domain.Identity, error) {
	if err := m.checkCredentials(name, password); err != nil {
		return nil, err
	}
	seq := m.begin()

	identities, err := m.directory.List(ctx)
	if err != nil {
		return nil, err
	}

	var byName []domain.Identity
	for _, id := range identities {
		if id.NameMatches(name) {
			byName = append(byName, id)
		}
	}
	if len(byName) == 0 {
		return nil, domain.ErrNotFound
	}

	// Duplicate (name, role) pairs are prevented at registration but
	// tolerated here: the first match in directory order wins.
	var match *domain.Identity
	for i := range byName {
		if byName[i].Role == role {
			match = &byName[i]
			break
		}
	}
	if match == nil {
		return nil, fmt.Errorf("%w: found a %s account for %q, not a %s account",
			domain.ErrRoleMismatch, byName[0].Role, strings.TrimSpace(name), role)
	}

	if !match.Secret.Matches(password) {
		return nil, domain.ErrInvalidCredentials
	}

	return m.apply(ctx, seq, match)
}

// Logout clears the session, the durable slot, and the cookie mirror.
// Calling it while already logged out is a no-op. Storage failures are
// logged and swallowed; the in-memory session is cleared regardless.
func (m *SessionManager) Logout(ctx context.Context) {
	m.mu.Lock()
	// Logging out supersedes any in-flight login/register response.
	m.issued++
	m.applied = m.issued
	m.current = nil
	m.mu.Unlock()

	m.persistMu.Lock()
	defer m.persistMu.Unlock()
	if err := m.store.Clear(ctx); err != nil {
		m.log.Error().Err(err).Msg("clearing persisted session failed")
	}
	if err := m.cookies.Expire(); err != nil {
		m.log.Error().Err(err).Msg("expiring session cookie failed")
	}
	metrics.SessionOperationsTotal.WithLabelValues("logout", "success").Inc()
}

// begin issues the sequence number for a session-mutating operation. Taken
// before the operation's first suspension point.
func (m *SessionManager) begin() uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.issued++
	return m.issued
}

// apply installs identity as the current session unless a newer operation
// has already been applied.
func (m *SessionManager) apply(ctx context.Context, seq uint64, identity *domain.Identity) (*domain.Identity, error) {
	m.mu.Lock()
	if seq <= m.applied {
		m.mu.Unlock()
		m.log.Warn().Uint64("seq", seq).Str("name", identity.Name).
			Msg("discarding stale session operation result")
		return nil, domain.ErrSuperseded
	}
	m.applied = seq
	cp := *identity
	m.current = &cp
	m.mu.Unlock()

	// The store and mirror are written in application order. A newer
	// operation may have applied between the check above and this point;
	// its writes must not be clobbered, so re-check before persisting.
	m.persistMu.Lock()
	defer m.persistMu.Unlock()
	m.mu.Lock()
	superseded := m.applied != seq
	m.mu.Unlock()
	if superseded {
		m.log.Warn().Uint64("seq", seq).Str("name", identity.Name).
			Msg("skipping persist for superseded session operation")
		return nil, domain.ErrSuperseded
	}

	if err := m.store.Save(ctx, identity); err != nil {
		m.log.Error().Err(err).Msg("persisting session failed")
	}
	if err := m.cookies.Set(identity); err != nil {
		m.log.Error().Err(err).Msg("writing session cookie failed")
	}

	out := *identity
	return &out, nil
}

func outcomeLabel(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, domain.ErrValidation):
		return "validation"
	case errors.Is(err, domain.ErrConflict):
		return "conflict"
	case errors.Is(err, domain.ErrNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrRoleMismatch):
		return "role_mismatch"
	case errors.Is(err, domain.ErrInvalidCredentials):
		return "invalid_credentials"
	case errors.Is(err, domain.ErrTransport):
		return "transport"
	case errors.Is(err, domain.ErrSuperseded):
		return "superseded"
	default:
		return "error"
	}
}

// Package redis keeps the session slot in a Redis key, for deployments
// where several kiosk clients share session state through one instance.
package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/rently/rently-client/internal/core/domain"
)

const (
	sessionKey  = "current_session"
	pingTimeout = 5 * time.Second
)

// Connect initialises a Redis client and validates connectivity with a ping.
func Connect(ctx context.Context, addr string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr: addr,
		DB:   db,
	})

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return client, nil
}

// Store persists the current session under the key "current_session".
// No TTL: the slot must survive restarts until an explicit logout.
type Store struct {
	client *redis.Client
	log    zerolog.Logger
}

func NewStore(client *redis.Client, log zerolog.Logger) *Store {
	return &Store{client: client, log: log}
}

type sessionRecord struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Role string `json:"role"`
}

func (s *Store) Save(ctx context.Context, identity *domain.Identity) error {
	data, err := json.Marshal(sessionRecord{
		ID:   identity.ID,
		Name: identity.Name,
		Role: string(identity.Role),
	})
	if err != nil {
		return err
	}
	return s.client.Set(ctx, sessionKey, data, 0).Err()
}

func (s *Store) Clear(ctx context.Context) error {
	return s.client.Del(ctx, sessionKey).Err()
}

func (s *Store) Restore(ctx context.Context) (*domain.Identity, error) {
	data, err := s.client.Get(ctx, sessionKey).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		s.log.Warn().Err(err).Msg("session slot unreachable, treating as empty")
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

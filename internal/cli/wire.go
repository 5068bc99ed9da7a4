package cli

import (
	"context"
	"fmt"

	"github.com/rently/rently-client/internal/core/ports"
	"github.com/rently/rently-client/internal/core/service"
	"github.com/rently/rently-client/internal/infrastructure/config"
	"github.com/rently/rently-client/internal/infrastructure/cookie"
	localdir "github.com/rently/rently-client/internal/infrastructure/directory/local"
	mongodir "github.com/rently/rently-client/internal/infrastructure/directory/mongo"
	remotedir "github.com/rently/rently-client/internal/infrastructure/directory/remote"
	filestore "github.com/rently/rently-client/internal/infrastructure/storage/file"
	redisstore "github.com/rently/rently-client/internal/infrastructure/storage/redis"
	"github.com/rently/rently-client/pkg/logger"
)

// buildDirectory constructs the configured identity directory backend. The
// returned func releases any held connections.
func buildDirectory(ctx context.Context, cfg *config.Config) (ports.IdentityDirectory, func(), error) {
	switch cfg.Directory {
	case config.DirectoryLocal:
		return localdir.NewDirectory(cfg.StateDir, logger.Component("local-directory")), func() {}, nil

	case config.DirectoryRemote:
		return remotedir.NewClient(cfg.APIBaseURL, logger.Component("remote-directory")), func() {}, nil

	case config.DirectoryMongo:
		client, db, err := mongodir.Connect(ctx, cfg.Mongo.URI, cfg.Mongo.Database)
		if err != nil {
			return nil, nil, err
		}
		cleanup := func() { _ = client.Disconnect(context.Background()) }
		return mongodir.NewDirectory(db), cleanup, nil

	default:
		return nil, nil, fmt.Errorf("unknown directory backend %q", cfg.Directory)
	}
}

// buildSessionStore constructs the configured durable session store.
func buildSessionStore(ctx context.Context, cfg *config.Config) (ports.SessionStore, func(), error) {
	switch cfg.SessionStore {
	case config.SessionStoreFile:
		return filestore.NewStore(cfg.StateDir, logger.Component("session-store")), func() {}, nil

	case config.SessionStoreRedis:
		client, err := redisstore.Connect(ctx, cfg.Redis.Addr, cfg.Redis.DB)
		if err != nil {
			return nil, nil, err
		}
		cleanup := func() { _ = client.Close() }
		return redisstore.NewStore(client, logger.Component("session-store")), cleanup, nil

	default:
		return nil, nil, fmt.Errorf("unknown session store backend %q", cfg.SessionStore)
	}
}

// buildManager assembles a SessionManager from the configured backends,
// restoring any persisted session in the process.
func buildManager(ctx context.Context, cfg *config.Config) (*service.SessionManager, func(), error) {
	directory, dirCleanup, err := buildDirectory(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	store, storeCleanup, err := buildSessionStore(ctx, cfg)
	if err != nil {
		dirCleanup()
		return nil, nil, err
	}
	mirror := cookie.NewMirror(cfg.StateDir, logger.Component("cookie-mirror"))

	mgr := service.NewSessionManager(ctx, directory, store, mirror, logger.Component("session"))
	cleanup := func() {
		storeCleanup()
		dirCleanup()
	}
	return mgr, cleanup, nil
}

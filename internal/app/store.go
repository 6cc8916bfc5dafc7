package app

import (
	"context"
	"fmt"

	"github.com/bissquit/job-board/internal/config"
	"github.com/bissquit/job-board/internal/identity"
	identitymemory "github.com/bissquit/job-board/internal/identity/memory"
	identitymongo "github.com/bissquit/job-board/internal/identity/mongo"
	identitypostgres "github.com/bissquit/job-board/internal/identity/postgres"
	"github.com/bissquit/job-board/internal/jobs"
	jobsmemory "github.com/bissquit/job-board/internal/jobs/memory"
	jobsmongo "github.com/bissquit/job-board/internal/jobs/mongo"
	jobspostgres "github.com/bissquit/job-board/internal/jobs/postgres"
	"github.com/bissquit/job-board/internal/pkg/metrics"
	"github.com/bissquit/job-board/internal/pkg/mongodb"
	"github.com/bissquit/job-board/internal/pkg/postgres"
	"github.com/bissquit/job-board/migrations"
	"github.com/prometheus/client_golang/prometheus"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"
)

// store bundles the repositories of the selected driver with its lifecycle hooks.
type store struct {
	identity identity.Repository
	jobs     jobs.Repository

	ping  func(ctx context.Context) error
	close func(ctx context.Context) error

	// collector exports pool statistics; nil when the driver has none.
	collector prometheus.Collector
}

func openStore(ctx context.Context, cfg config.DatabaseConfig) (*store, error) {
	switch cfg.Driver {
	case config.DriverMongoDB:
		return openMongoStore(ctx, cfg)
	case config.DriverPostgres:
		return openPostgresStore(ctx, cfg)
	case config.DriverMemory:
		return &store{
			identity: identitymemory.NewRepository(),
			jobs:     jobsmemory.NewRepository(),
			ping:     func(context.Context) error { return nil },
			close:    func(context.Context) error { return nil },
		}, nil
	default:
		return nil, fmt.Errorf("unknown database driver %q", cfg.Driver)
	}
}

func openMongoStore(ctx context.Context, cfg config.DatabaseConfig) (*store, error) {
	db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:             cfg.URL,
		Database:        cfg.Name,
		MaxPoolSize:     uint64(max(cfg.MaxOpenConns, 0)),
		MinPoolSize:     uint64(max(cfg.MaxIdleConns, 0)),
		ConnectAttempts: cfg.ConnectAttempts,
	})
	if err != nil {
		return nil, fmt.Errorf("connect to mongodb: %w", err)
	}

	identityRepo := identitymongo.NewRepository(db)
	jobsRepo := jobsmongo.NewRepository(db)

	if err := ensureMongoIndexes(ctx, identityRepo, jobsRepo); err != nil {
		_ = mongodb.Disconnect(context.Background(), db)
		return nil, err
	}

	return &store{
		identity: identityRepo,
		jobs:     jobsRepo,
		ping: func(ctx context.Context) error {
			return db.Client().Ping(ctx, readpref.Primary())
		},
		close: func(ctx context.Context) error {
			return mongodb.Disconnect(ctx, db)
		},
	}, nil
}

func ensureMongoIndexes(ctx context.Context, repos ...interface{ EnsureIndexes(context.Context) error }) error {
	for _, repo := range repos {
		if err := repo.EnsureIndexes(ctx); err != nil {
			return err
		}
	}
	return nil
}

func openPostgresStore(ctx context.Context, cfg config.DatabaseConfig) (*store, error) {
	pool, err := postgres.Connect(ctx, postgres.Config{
		URL:             cfg.URL,
		MaxOpenConns:    cfg.MaxOpenConns,
		MaxIdleConns:    cfg.MaxIdleConns,
		ConnMaxLifetime: cfg.ConnMaxLifetime,
		ConnectAttempts: cfg.ConnectAttempts,
	})
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	if cfg.MigrateOnStart {
		if err := postgres.Migrate(cfg.URL, migrations.FS); err != nil {
			pool.Close()
			return nil, fmt.Errorf("migrate database: %w", err)
		}
	}

	return &store{
		identity: identitypostgres.NewRepository(pool),
		jobs:     jobspostgres.NewRepository(pool),
		ping:     pool.Ping,
		close: func(context.Context) error {
			pool.Close()
			return nil
		},
		collector: metrics.NewPGXPoolCollector(pool),
	}, nil
}

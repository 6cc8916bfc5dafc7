// Package mongodb provides MongoDB connection utilities.
package mongodb

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/bissquit/job-board/internal/pkg/backoff"
	"github.com/bissquit/job-board/internal/pkg/metrics"
	"go.mongodb.org/mongo-driver/v2/event"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"
)

// Config contains MongoDB connection configuration.
type Config struct {
	URI             string
	Database        string
	MaxPoolSize     uint64
	MinPoolSize     uint64
	ConnectAttempts int
}

// Connect creates a client and returns the configured database once the server
// answers a ping.
func Connect(ctx context.Context, cfg Config) (*mongo.Database, error) {
	opts := options.Client().
		ApplyURI(cfg.URI).
		SetServerSelectionTimeout(5 * time.Second).
		SetPoolMonitor(poolMonitor())
	if cfg.MaxPoolSize > 0 {
		opts.SetMaxPoolSize(cfg.MaxPoolSize)
	}
	opts.SetMinPoolSize(cfg.MinPoolSize)

	client, err := mongo.Connect(opts)
	if err != nil {
		return nil, fmt.Errorf("create mongodb client: %w", err)
	}

	attempt, err := backoff.Retry(ctx, cfg.ConnectAttempts, "connect to mongodb", func(ctx context.Context) error {
		return client.Ping(ctx, readpref.Primary())
	})
	if err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}

	slog.Info("connected to mongodb", "database", cfg.Database, "attempts", attempt)
	return client.Database(cfg.Database), nil
}

// Disconnect closes the client behind db.
func Disconnect(ctx context.Context, db *mongo.Database) error {
	if err := db.Client().Disconnect(ctx); err != nil {
		return fmt.Errorf("disconnect mongodb: %w", err)
	}
	return nil
}

// poolMonitor mirrors connection pool events into the mongodb pool gauges.
func poolMonitor() *event.PoolMonitor {
	open := metrics.MongoPoolConnections.WithLabelValues("open")
	inUse := metrics.MongoPoolConnections.WithLabelValues("in_use")

	return &event.PoolMonitor{
		Event: func(e *event.PoolEvent) {
			switch e.Type {
			case event.ConnectionCreated:
				open.Inc()
			case event.ConnectionClosed:
				open.Dec()
			case event.ConnectionCheckedOut:
				inUse.Inc()
			case event.ConnectionCheckedIn:
				inUse.Dec()
			}
		},
	}
}

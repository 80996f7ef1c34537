package mongo

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"mentor-match/internal/config"

	"go.mongodb.org/mongo-driver/v2/mongo"
)

var (
	// ErrNotInitialized is returned by Shutdown when Init never produced a client.
	ErrNotInitialized = errors.New("mongo client not initialized")
	// ErrShutdown is returned by Shutdown after the client was already closed.
	ErrShutdown = errors.New("mongo client already shut down")
)

var conn connector = liveConnector{}

var (
	client       *mongo.Client
	db           *mongo.Database
	initErr      error
	initOnce     sync.Once
	shutdownOnce sync.Once
	mu           sync.RWMutex
)

// Init connects once and caches the client (first call wins, thread-safe).
// A failed first attempt is cached too, so later calls return the same error.
func Init(ctx context.Context, cfg config.Config, log *slog.Logger) (*mongo.Client, *mongo.Database, error) {
	initOnce.Do(func() {
		ctx, cancel := context.WithTimeout(ctx, connectTimeout)
		defer cancel()

		cli, err := conn.Open(ctx, cfg.MongoURI)
		if err != nil {
			log.Error("failed to connect to mongo", "err", err)
			initErr = err
			return
		}
		if err := conn.Ping(ctx, cli); err != nil {
			log.Error("failed to ping mongo", "err", err)
			_ = conn.Close(ctx, cli)
			initErr = err
			return
		}

		mu.Lock()
		client = cli
		db = cli.Database(cfg.MongoDBName)
		mu.Unlock()

		log.Info("successfully connected to mongo", "db", cfg.MongoDBName)
	})

	mu.RLock()
	defer mu.RUnlock()
	return client, db, initErr
}

// Client returns the singleton MongoDB client instance.
func Client() *mongo.Client {
	mu.RLock()
	defer mu.RUnlock()
	return client
}

// DB returns the singleton MongoDB database instance.
func DB() *mongo.Database {
	mu.RLock()
	defer mu.RUnlock()
	return db
}

// Ping checks the live connection. Used by the health check.
func Ping(ctx context.Context) error {
	cli := Client()
	if cli == nil {
		return ErrNotInitialized
	}
	ctx, cancel := boundCtx(ctx, OpTimeout)
	defer cancel()
	return conn.Ping(ctx, cli)
}

// Shutdown disconnects the client. Only the first call does any work.
func Shutdown(ctx context.Context) error {
	err := ErrShutdown
	shutdownOnce.Do(func() {
		mu.Lock()
		defer mu.Unlock()

		if client == nil {
			err = ErrNotInitialized
			return
		}

		ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()

		err = conn.Close(ctx, client)
		client = nil
		db = nil
	})
	return err
}

package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"
)

const (
	connectTimeout = 10 * time.Second
	appName        = "mentor-match"
)

// connector is the slice of the driver that Init, Ping and Shutdown use.
// Tests swap it to simulate an unreachable server.
type connector interface {
	Open(ctx context.Context, uri string) (*mongo.Client, error)
	Ping(ctx context.Context, cli *mongo.Client) error
	Close(ctx context.Context, cli *mongo.Client) error
}

type liveConnector struct{}

func (liveConnector) Open(_ context.Context, uri string) (*mongo.Client, error) {
	opts := options.Client().
		ApplyURI(uri).
		SetServerAPIOptions(options.ServerAPI(options.ServerAPIVersion1)).
		SetConnectTimeout(connectTimeout).
		SetAppName(appName)

	cli, err := mongo.Connect(opts)
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	return cli, nil
}

// Ping goes to the primary since every repository write needs it.
func (liveConnector) Ping(ctx context.Context, cli *mongo.Client) error {
	if err := cli.Ping(ctx, readpref.Primary()); err != nil {
		return fmt.Errorf("mongo ping: %w", err)
	}
	return nil
}

func (liveConnector) Close(ctx context.Context, cli *mongo.Client) error {
	if err := cli.Disconnect(ctx); err != nil {
		return fmt.Errorf("mongo disconnect: %w", err)
	}
	return nil
}

// OpTimeout bounds a single repository or health call.
const OpTimeout = 5 * time.Second

// boundCtx caps ctx at d from now. A parent that is already done, or that
// expires sooner, is returned unchanged with a no-op cancel.
func boundCtx(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if ctx.Err() != nil {
		return ctx, func() {}
	}
	limit := time.Now().Add(d)
	if dl, ok := ctx.Deadline(); ok && !dl.After(limit) {
		return ctx, func() {}
	}
	return context.WithDeadline(ctx, limit)
}

package media

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"mentor-match/internal/services/auth"

	"github.com/sony/gobreaker"
)

// ErrUnavailable is returned while the breaker is open.
var ErrUnavailable = errors.New("media storage temporarily unavailable")

const (
	breakerTimeout      = 30 * time.Second
	breakerTripFailures = 3
)

// Guard fails fast after repeated upload failures instead of making every
// registration wait on a dead provider.
type Guard struct {
	store Store
	cb    *gobreaker.CircuitBreaker
}

// NewGuard wraps store in a breaker named name.
func NewGuard(name string, store Store, log *slog.Logger) *Guard {
	return &Guard{
		store: store,
		cb: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:        "media-" + name,
			MaxRequests: 1,
			Timeout:     breakerTimeout,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= breakerTripFailures
			},
			OnStateChange: func(name string, from, to gobreaker.State) {
				log.Warn("media breaker state changed", "breaker", name, "from", from.String(), "to", to.String())
			},
		}),
	}
}

// Store returns the wrapped provider.
func (g *Guard) Store() Store { return g.store }

// Upload runs the provider upload through the breaker.
func (g *Guard) Upload(ctx context.Context, photo auth.Photo) (string, error) {
	out, err := g.cb.Execute(func() (interface{}, error) {
		return g.store.Upload(ctx, photo)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return "", ErrUnavailable
	}
	if err != nil {
		return "", err
	}
	return out.(string), nil
}

// State returns the name of the current breaker state.
func (g *Guard) State() string { return g.cb.State().String() }

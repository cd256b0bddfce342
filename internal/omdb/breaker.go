package omdb

import (
	"context"
	"errors"
	"log/slog"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"moviedb/internal/logging"
	"moviedb/internal/movie"
	"moviedb/internal/services"
)

// Breaker wraps a Fetcher with a circuit breaker. While the circuit is open,
// calls fail immediately with services.ErrRemote instead of reaching the
// catalog. It never retries.
type Breaker struct {
	next   Fetcher
	cb     *gobreaker.CircuitBreaker[any]
	logger *slog.Logger
}

var _ Fetcher = (*Breaker)(nil)

// BreakerSettings tunes when the circuit opens and how long it stays open.
type BreakerSettings struct {
	// MinRequests is the number of calls observed before the failure ratio counts.
	MinRequests uint32
	// FailureRatio opens the circuit once reached.
	FailureRatio float64
	// Interval resets the closed-state counts.
	Interval time.Duration
	// Cooldown is how long the circuit stays open before probing again.
	Cooldown time.Duration
}

// DefaultBreakerSettings opens after 60% failures across at least five calls
// and probes again after thirty seconds.
func DefaultBreakerSettings() BreakerSettings {
	return BreakerSettings{
		MinRequests:  5,
		FailureRatio: 0.6,
		Interval:     time.Minute,
		Cooldown:     30 * time.Second,
	}
}

// NewBreaker wraps next with circuit breaker protection.
func NewBreaker(next Fetcher, settings BreakerSettings, logger *slog.Logger) *Breaker {
	defaults := DefaultBreakerSettings()
	if settings.MinRequests == 0 {
		settings.MinRequests = defaults.MinRequests
	}
	if settings.FailureRatio <= 0 {
		settings.FailureRatio = defaults.FailureRatio
	}
	if settings.Interval <= 0 {
		settings.Interval = defaults.Interval
	}
	if settings.Cooldown <= 0 {
		settings.Cooldown = defaults.Cooldown
	}
	logger = logging.NewComponentLogger(logger, "omdb")

	cb := gobreaker.NewCircuitBreaker[any](gobreaker.Settings{
		Name:        "omdb-api",
		MaxRequests: 1,
		Interval:    settings.Interval,
		Timeout:     settings.Cooldown,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < settings.MinRequests {
				return false
			}
			ratio := float64(counts.TotalFailures) / float64(counts.Requests)
			return ratio >= settings.FailureRatio
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Info("omdb circuit state changed",
				logging.String("breaker", name),
				logging.String("from", from.String()),
				logging.String("to", to.String()),
			)
		},
		// Cancelled callers say nothing about catalog health.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled) || errors.Is(err, services.ErrInvalidInput)
		},
	})

	return &Breaker{next: next, cb: cb, logger: logger}
}

// FetchOne delegates to the wrapped fetcher unless the circuit is open.
func (b *Breaker) FetchOne(ctx context.Context, title string) (*movie.Movie, error) {
	result, err := b.execute("fetch one", func() (any, error) {
		return b.next.FetchOne(ctx, title)
	})
	if err != nil {
		return nil, err
	}
	m, _ := result.(*movie.Movie)
	return m, nil
}

// FetchMany delegates to the wrapped fetcher unless the circuit is open.
func (b *Breaker) FetchMany(ctx context.Context, title string) ([]movie.Movie, error) {
	result, err := b.execute("fetch many", func() (any, error) {
		return b.next.FetchMany(ctx, title)
	})
	if err != nil {
		return nil, err
	}
	movies, _ := result.([]movie.Movie)
	return movies, nil
}

// State reports the circuit state name ("closed", "open", "half-open").
func (b *Breaker) State() string {
	return b.cb.State().String()
}

func (b *Breaker) execute(operation string, fn func() (any, error)) (any, error) {
	result, err := b.cb.Execute(fn)
	if err == nil {
		return result, nil
	}
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		logging.WarnWithContext(b.logger, "omdb request rejected by circuit breaker", "remote_rejected",
			logging.String(logging.FieldErrorHint, "the remote catalog is unavailable; try again later"),
			logging.String(logging.FieldImpact, "title lookup cannot fall back to the remote catalog"),
			logging.String("operation", operation),
		)
		return nil, services.Wrap(services.ErrRemote, "omdb", operation, "circuit open; try again later", err)
	}
	return nil, err
}

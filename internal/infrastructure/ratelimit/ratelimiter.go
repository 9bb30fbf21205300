// Package ratelimit provides the Redis sliding-window limiter behind the API
// rate limiting middleware.
package ratelimit

import (
	"context"
	"time"

	"github.com/reque-io/reque/internal/shared/config"
)

// Limits holds the per-window request budgets. A zero value disables that
// window.
type Limits struct {
	PerMinute int
	PerHour   int
	PerDay    int
}

// LimitsFromConfig maps the configuration section onto Limits.
func LimitsFromConfig(cfg *config.RateLimitConfig) Limits {
	return Limits{
		PerMinute: cfg.PerMinute,
		PerHour:   cfg.PerHour,
		PerDay:    cfg.PerDay,
	}
}

type Limiter interface {
	Allow(ctx context.Context, key string, limits Limits) (bool, error)
	Remaining(ctx context.Context, key string, window time.Duration) (int64, error)
	Reset(ctx context.Context, key string) error
}

package ban

import (
	"context"
	"fmt"
	"time"

	"github.com/rogerio-castellano/product-api/internal/config"
	"go.uber.org/zap"
)

// Store persists strike counters and active bans.
type Store interface {
	IsBanned(ctx context.Context, target string) (bool, error)
	// AddStrike increments the strike counter for target and returns the new
	// count. The counter expires window after the first strike.
	AddStrike(ctx context.Context, target string, window time.Duration) (int64, error)
	Ban(ctx context.Context, entry LogEntry, d time.Duration) error
}

type LogEntry struct {
	Target  string    `json:"target"`
	Route   string    `json:"route"`
	Strikes int64     `json:"strikes"`
	Time    time.Time `json:"time"`
}

// Banner turns repeated rate limit violations into temporary bans.
type Banner struct {
	store  Store
	policy config.BanConfig
	log    *zap.Logger
}

func NewBanner(store Store, policy config.BanConfig, log *zap.Logger) *Banner {
	return &Banner{store: store, policy: policy, log: log}
}

func (b *Banner) IsBanned(ctx context.Context, target string) (bool, error) {
	return b.store.IsBanned(ctx, target)
}

// Strike records a violation by target on route. It reports whether the
// violation pushed target over the configured limit and got it banned.
func (b *Banner) Strike(ctx context.Context, target, route string) (bool, error) {
	if b.policy.Strikes <= 0 {
		return false, nil
	}

	strikes, err := b.store.AddStrike(ctx, target, b.policy.Window)
	if err != nil {
		return false, fmt.Errorf("failed to record strike: %w", err)
	}
	if strikes < int64(b.policy.Strikes) {
		return false, nil
	}

	entry := LogEntry{Target: target, Route: route, Strikes: strikes, Time: time.Now().UTC()}
	if err := b.store.Ban(ctx, entry, b.policy.Duration); err != nil {
		return false, fmt.Errorf("failed to ban %s: %w", target, err)
	}

	b.log.Warn("client banned",
		zap.String("target", target),
		zap.String("route", route),
		zap.Int64("strikes", strikes),
		zap.Duration("duration", b.policy.Duration),
	)
	return true, nil
}

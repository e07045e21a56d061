package redis_fx

import (
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"

	"artify/internal/config"
	"artify/internal/infra"
	"artify/pkg/ratelimit"
)

// Limiters bundles the per-endpoint rate limiters so the router can take
// them as one dependency.
type Limiters struct {
	Train    *ratelimit.FixedWindowLimiter
	Generate *ratelimit.FixedWindowLimiter
}

var Module = fx.Provide(
	infra.InitRedis, provideLimiters)

func provideLimiters(cfg *config.Config, client *redis.Client) (*Limiters, error) {
	train, err := ratelimit.NewFixedWindowLimiter(client, "rl:train", cfg.TrainRateLimit, cfg.RateLimitWindow)
	if err != nil {
		return nil, err
	}
	generate, err := ratelimit.NewFixedWindowLimiter(client, "rl:generate", cfg.GenerateRateLimit, cfg.RateLimitWindow)
	if err != nil {
		return nil, err
	}
	return &Limiters{Train: train, Generate: generate}, nil
}

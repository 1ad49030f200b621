package visitlog

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/shopfront/backend/internal/infrastructure/config"
)

// NewStore creates a visit log store from configuration. The "redis"
// backend falls back to memory when Redis is unreachable, logging the
// downgrade, so a cache outage never takes the storefront down.
func NewStore(cfg *config.Config, logger *zap.Logger) Store {
	switch cfg.VisitLog.Backend {
	case "redis":
		store, err := NewRedisStore(RedisConfig{
			Host:     cfg.Redis.Host,
			Port:     cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		}, cfg.VisitLog.MaxEntries)
		if err != nil {
			logger.Warn("Redis visit log unavailable, falling back to memory",
				zap.String("addr", fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port)),
				zap.Error(err))
			return NewMemoryStore(cfg.VisitLog.MaxEntries)
		}
		logger.Info("Using Redis visit log store",
			zap.Int("max_entries", cfg.VisitLog.MaxEntries))
		return store
	default:
		logger.Info("Using in-memory visit log store",
			zap.Int("max_entries", cfg.VisitLog.MaxEntries))
		return NewMemoryStore(cfg.VisitLog.MaxEntries)
	}
}

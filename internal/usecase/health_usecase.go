package usecase

import (
	"context"
	"time"

	redisclient "go-website-backend/pkg/redis"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// HealthStatus is the liveness payload; TS is Unix milliseconds.
type HealthStatus struct {
	OK bool  `json:"ok"`
	TS int64 `json:"ts"`
}

type HealthUsecase interface {
	Check(ctx context.Context) HealthStatus
}

type healthUsecase struct {
	redis  *redis.Client
	logger *zap.Logger
	now    func() time.Time
}

// NewHealthUsecase reports liveness. When client is set, an unreachable
// Redis is logged as a degraded limiter; the probe itself stays up.
func NewHealthUsecase(client *redis.Client, logger *zap.Logger) HealthUsecase {
	return &healthUsecase{redis: client, logger: logger, now: time.Now}
}

func (u *healthUsecase) Check(ctx context.Context) HealthStatus {
	if u.redis != nil {
		pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		defer cancel()
		if err := redisclient.HealthCheck(pingCtx, u.redis); err != nil {
			u.logger.Warn("rate limiter backend unreachable, limited requests will be refused",
				zap.String("backend", "redis"),
				zap.Error(err),
			)
		}
	}
	return HealthStatus{OK: true, TS: u.now().UnixMilli()}
}

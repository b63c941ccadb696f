package queue

import (
	"context"
	"encoding/json"

	"candidate-management-db/internal/config"
	"candidate-management-db/internal/model"

	"github.com/go-redis/redis/v8"
)

type Producer struct {
	client *redis.Client
	cfg    *config.Config
}

func NewProducer(redisClient *RedisClient, cfg *config.Config) *Producer {
	return &Producer{
		client: redisClient.Client(),
		cfg:    cfg,
	}
}

// EnqueueCleanupJob hands a released attachment key to the cleanup
// worker. Callers treat failures as best-effort: log and continue.
func (p *Producer) EnqueueCleanupJob(ctx context.Context, job model.CleanupJob) error {
	data, err := json.Marshal(job)
	if err != nil {
		return err
	}

	return p.client.LPush(ctx, p.cfg.Redis.CleanupQueue, data).Err()
}

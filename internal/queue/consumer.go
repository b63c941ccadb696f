package queue

import (
	"context"
	"encoding/json"
	"time"

	"candidate-management-db/internal/config"
	"candidate-management-db/internal/logger"
	"candidate-management-db/internal/model"

	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog"
)

type Consumer struct {
	client *redis.Client
	cfg    *config.Config
	log    zerolog.Logger
}

// CleanupHandler processes one decoded cleanup job. A non-nil error
// sends the raw message to the DLQ.
type CleanupHandler func(ctx context.Context, job model.CleanupJob) error

func NewConsumer(redisClient *RedisClient, cfg *config.Config) *Consumer {
	return &Consumer{
		client: redisClient.Client(),
		cfg:    cfg,
		log:    logger.Get(),
	}
}

// ConsumeCleanupQueue blocks on the cleanup queue until the context is
// cancelled. Messages that fail to decode or to process land in the
// DLQ; the loop itself never stops on a bad message.
func (c *Consumer) ConsumeCleanupQueue(ctx context.Context, handler CleanupHandler) error {
	queueName := c.cfg.Redis.CleanupQueue
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
			result, err := c.client.BRPop(ctx, 5*time.Second, queueName).Result()
			if err != nil {
				if err == redis.Nil {
					continue // Timeout, continue polling
				}
				c.log.Error().Err(err).Str("queue", queueName).Msg("Failed to consume message")
				continue
			}

			if len(result) < 2 {
				continue
			}

			message := result[1]
			var job model.CleanupJob
			if err := json.Unmarshal([]byte(message), &job); err != nil {
				c.log.Error().Err(err).Str("queue", queueName).Msg("Malformed cleanup job")
				c.deadLetter(ctx, queueName, message)
				continue
			}

			if err := handler(ctx, job); err != nil {
				c.log.Error().Err(err).Str("key", job.Key).Msg("Failed to process cleanup job")
				c.deadLetter(ctx, queueName, message)
			}
		}
	}
}

func (c *Consumer) deadLetter(ctx context.Context, queueName, message string) {
	dlqName := queueName + c.cfg.Redis.DLQSuffix
	if err := c.client.LPush(ctx, dlqName, message).Err(); err != nil {
		c.log.Error().Err(err).Str("dlq", dlqName).Msg("Failed to move message to DLQ")
	}
}

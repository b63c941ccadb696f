package worker

import (
	"context"

	"candidate-management-db/internal/config"
	"candidate-management-db/internal/logger"
	"candidate-management-db/internal/model"
	"candidate-management-db/internal/queue"
	"candidate-management-db/internal/storage"

	"github.com/rs/zerolog"
)

// CleanupWorker releases attachment objects whose records were deleted
// or whose attachments were replaced. Deletion is best-effort: a
// failure is logged and the message lands in the DLQ, it never blocks
// any API response.
type CleanupWorker struct {
	cfg        *config.Config
	storage    storage.Storage
	consumer   *queue.Consumer
	workerPool *WorkerPool
	log        zerolog.Logger
}

func NewCleanupWorker(
	cfg *config.Config,
	storage storage.Storage,
	redisClient *queue.RedisClient,
) *CleanupWorker {
	return &CleanupWorker{
		cfg:        cfg,
		storage:    storage,
		consumer:   queue.NewConsumer(redisClient, cfg),
		workerPool: NewWorkerPool(cfg.Workers.Cleanup.Count),
		log:        logger.Get(),
	}
}

func (w *CleanupWorker) Start(ctx context.Context) error {
	w.log.Info().Msg("Starting cleanup worker")

	w.workerPool.Start(ctx)

	return w.consumer.ConsumeCleanupQueue(ctx, w.handleJob)
}

func (w *CleanupWorker) Stop() {
	w.log.Info().Msg("Stopping cleanup worker")
	w.workerPool.Stop()
}

func (w *CleanupWorker) handleJob(ctx context.Context, job model.CleanupJob) error {
	w.log.Info().Str("key", job.Key).Str("reason", job.Reason).Msg("Processing cleanup job")

	w.workerPool.Submit(func(ctx context.Context) error {
		return w.deleteObject(ctx, job)
	})

	return nil
}

func (w *CleanupWorker) deleteObject(ctx context.Context, job model.CleanupJob) error {
	if job.Key == "" {
		return nil
	}

	if err := w.storage.Delete(ctx, job.Key); err != nil {
		w.log.Error().Err(err).Str("key", job.Key).Msg("Failed to delete attachment object")
		return err
	}

	w.log.Info().Str("key", job.Key).Msg("Attachment object deleted")
	return nil
}

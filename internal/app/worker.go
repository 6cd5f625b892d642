package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/GoArmGo/NewsApp/internal/core/ports"
	"github.com/GoArmGo/NewsApp/internal/messaging/payloads"
)

// runWorker запускает потребителя очереди очистки изображений: задачи
// публикуются сервером при замене изображения новости или удалении новости,
// воркер удаляет соответствующие объекты из файлового хранилища.
func runWorker(
	ctx context.Context,
	logger *slog.Logger,
	fileStorage ports.FileStorage,
	cleanupConsumer ports.ImageCleanupConsumer,
) error {
	logger.Info("worker started, waiting for cleanup tasks")

	workerCtx, cancelWorker := context.WithCancel(ctx)
	defer cancelWorker()

	messageHandler := func(ctx context.Context, payload payloads.ImageCleanupPayload) error {
		logger.Info("processing cleanup task", "key", payload.ObjectKey, "reason", payload.Reason)

		if err := fileStorage.DeleteFile(ctx, payload.ObjectKey); err != nil {
			logger.Error("failed to delete file", "key", payload.ObjectKey, "error", err)
			return err
		}

		logger.Info("cleanup task completed", "key", payload.ObjectKey)
		return nil
	}

	if err := cleanupConsumer.StartConsumingImageCleanup(workerCtx, messageHandler); err != nil {
		return fmt.Errorf("ошибка при запуске потребителя RabbitMQ: %w", err)
	}

	<-ctx.Done()

	logger.Info("worker shutdown signal received")
	cancelWorker()

	logger.Info("worker stopped gracefully")
	return nil
}

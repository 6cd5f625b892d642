package ports

import (
	"context"

	"github.com/GoArmGo/NewsApp/internal/messaging/payloads"
)

// ImageCleanupPublisher определяет методы для публикации задач на удаление
// замененных или осиротевших изображений из файлового хранилища.
// Этот интерфейс используется бизнес-логикой новостей.
type ImageCleanupPublisher interface {
	PublishImageCleanup(ctx context.Context, payload payloads.ImageCleanupPayload) error
}

// ImageCleanupConsumer определяет методы для потребления задач очистки.
// Используется воркером для получения задач из очереди.
type ImageCleanupConsumer interface {
	// StartConsumingImageCleanup начинает прослушивание очереди задач очистки.
	// Принимает функцию-обработчик, которая будет вызываться для каждой задачи.
	StartConsumingImageCleanup(ctx context.Context, handler func(context.Context, payloads.ImageCleanupPayload) error) error
}

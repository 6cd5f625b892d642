package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/GoArmGo/NewsApp/internal/core/ports"
	"github.com/GoArmGo/NewsApp/internal/domain"
	"github.com/GoArmGo/NewsApp/internal/messaging/payloads"
	"github.com/google/uuid"
)

// newsUseCase implements NewsUseCase
type newsUseCase struct {
	newsStorage      ports.NewsStorage
	fileStorage      ports.FileStorage
	cleanupPublisher ports.ImageCleanupPublisher
	logger           *slog.Logger
}

// NewNewsUseCase создает новый экземпляр NewsUseCase,
// принимает реализации портов NewsStorage, FileStorage и ImageCleanupPublisher.
func NewNewsUseCase(
	newsStorage ports.NewsStorage,
	fileStorage ports.FileStorage,
	cleanupPublisher ports.ImageCleanupPublisher,
	logger *slog.Logger,
) NewsUseCase {
	return &newsUseCase{
		newsStorage:      newsStorage,
		fileStorage:      fileStorage,
		cleanupPublisher: cleanupPublisher,
		logger:           logger,
	}
}

// storageKey строит уникальный путь объекта в файловом хранилище.
// Наносекундная метка исключает коллизии путей при конкурентных загрузках
// в пределах одного тика системных часов.
func storageKey(filename string) string {
	return fmt.Sprintf("/%d-%s", time.Now().UnixNano(), filepath.Base(filename))
}

// uploadImage проверяет размер файла, загружает его во внешнее хранилище
// и возвращает публичный direct-download URL вместе с ключом объекта.
func (uc *newsUseCase) uploadImage(ctx context.Context, file *UploadFile) (string, string, error) {
	if file.Size > MaxUploadSize {
		return "", "", ErrPayloadTooLarge
	}

	key := storageKey(file.Filename)

	contentType := file.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	url, err := uc.fileStorage.UploadFile(ctx, key, file.Content, contentType)
	if err != nil {
		return "", "", fmt.Errorf("%w: %v", ErrUploadFailed, err)
	}

	uc.logger.Info("image uploaded", "key", key)
	return url, key, nil
}

// scheduleCleanup публикует задачу на удаление старого объекта из файлового
// хранилища. Очистка fire-and-forget: ошибка публикации логируется и никогда
// не проваливает сам запрос.
func (uc *newsUseCase) scheduleCleanup(ctx context.Context, objectKey, reason string) {
	if objectKey == "" {
		return
	}
	payload := payloads.ImageCleanupPayload{ObjectKey: objectKey, Reason: reason}
	if err := uc.cleanupPublisher.PublishImageCleanup(ctx, payload); err != nil {
		uc.logger.Warn("failed to publish image cleanup task", "key", objectKey, "error", err)
	}
}

// CreateNews загружает изображение и сохраняет новость.
// Частичное состояние при сбое сохранения допустимо: файл остается во внешнем
// хранилище без ссылки на него, новость при этом не создается.
func (uc *newsUseCase) CreateNews(ctx context.Context, input CreateNewsInput) (*domain.News, error) {
	if input.File == nil {
		return nil, ErrNoFile
	}

	news := &domain.News{
		Title: input.Title,
		Text:  input.Text,
		Place: input.Place,
	}
	if missing := news.Validate(); len(missing) > 0 {
		return nil, &ValidationError{Fields: missing}
	}

	url, key, err := uc.uploadImage(ctx, input.File)
	if err != nil {
		return nil, err
	}
	news.Image = url
	news.ImageKey = key

	if err := uc.newsStorage.SaveNews(ctx, news); err != nil {
		return nil, fmt.Errorf("usecase: ошибка при сохранении новости в БД: %w", err)
	}

	uc.logger.Info("news created", "id", news.ID)
	return news, nil
}

// ListNews возвращает новости по убыванию даты создания.
func (uc *newsUseCase) ListNews(ctx context.Context, page, perPage int) ([]domain.News, error) {
	news, err := uc.newsStorage.ListNews(ctx, page, perPage)
	if err != nil {
		return nil, fmt.Errorf("usecase: ошибка при получении списка новостей: %w", err)
	}
	return news, nil
}

// GetNews возвращает новость по ID.
func (uc *newsUseCase) GetNews(ctx context.Context, id uuid.UUID) (*domain.News, error) {
	news, err := uc.newsStorage.GetNewsByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("usecase: ошибка при получении новости по ID %s: %w", id, err)
	}
	if news == nil {
		return nil, ErrNotFound
	}
	return news, nil
}

// UpdateNews выполняет частичное обновление новости: опущенные поля сохраняют
// прежние значения, изображение заменяется только при наличии нового файла.
func (uc *newsUseCase) UpdateNews(ctx context.Context, id uuid.UUID, input UpdateNewsInput) (*domain.News, error) {
	news, err := uc.newsStorage.GetNewsByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("usecase: ошибка при получении новости по ID %s: %w", id, err)
	}
	if news == nil {
		return nil, ErrNotFound
	}

	var replacedKey string
	if input.File != nil {
		url, key, err := uc.uploadImage(ctx, input.File)
		if err != nil {
			return nil, err
		}
		replacedKey = news.ImageKey
		news.Image = url
		news.ImageKey = key
	}

	news.ApplyPartial(input.Title, input.Text, input.Place)

	if err := uc.newsStorage.UpdateNews(ctx, news); err != nil {
		return nil, fmt.Errorf("usecase: ошибка при обновлении новости %s: %w", id, err)
	}

	// Старый объект удаляется только после того, как БД ссылается на новый:
	// при провале обновления запись продолжает указывать на прежний файл
	if input.File != nil {
		uc.scheduleCleanup(ctx, replacedKey, "replaced")
	}

	uc.logger.Info("news updated", "id", id)
	return news, nil
}

// DeleteNews удаляет новость по ID.
func (uc *newsUseCase) DeleteNews(ctx context.Context, id uuid.UUID) error {
	news, err := uc.newsStorage.GetNewsByID(ctx, id)
	if err != nil {
		return fmt.Errorf("usecase: ошибка при получении новости по ID %s: %w", id, err)
	}
	if news == nil {
		return ErrNotFound
	}

	deleted, err := uc.newsStorage.DeleteNews(ctx, id)
	if err != nil {
		return fmt.Errorf("usecase: ошибка при удалении новости %s: %w", id, err)
	}
	if !deleted {
		return ErrNotFound
	}

	uc.scheduleCleanup(ctx, news.ImageKey, "deleted")

	uc.logger.Info("news deleted", "id", id)
	return nil
}

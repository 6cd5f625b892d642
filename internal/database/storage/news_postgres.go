package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/GoArmGo/NewsApp/internal/domain"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// NewsStorage — sqlx-реализация хранилища новостей.
type NewsStorage struct {
	db     *sqlx.DB
	logger *slog.Logger
}

func NewNewsStorage(db *sqlx.DB, logger *slog.Logger) *NewsStorage {
	return &NewsStorage{db: db, logger: logger}
}

// SaveNews сохраняет новость в базе данных
func (s *NewsStorage) SaveNews(ctx context.Context, news *domain.News) error {
	start := time.Now()

	if news.ID == uuid.Nil {
		news.ID = uuid.New()
	}
	now := time.Now()
	news.CreatedAt = now
	news.UpdatedAt = now

	query := `
	INSERT INTO news (id, title, text, place, image, image_key, created_at, updated_at)
	VALUES (:id, :title, :text, :place, :image, :image_key, :created_at, :updated_at)
	`

	_, err := s.db.NamedExecContext(ctx, query, news)
	if err != nil {
		s.logger.Error("failed to save news", "id", news.ID, "error", err)
		return fmt.Errorf("ошибка при сохранении новости: %w", err)
	}

	s.logger.Info("news saved successfully",
		"id", news.ID,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return nil
}

// GetNewsByID получает новость по ID. Возвращает (nil, nil), если запись не найдена.
func (s *NewsStorage) GetNewsByID(ctx context.Context, id uuid.UUID) (*domain.News, error) {
	start := time.Now()

	var news domain.News
	query := `SELECT * FROM news WHERE id = $1 LIMIT 1`

	err := s.db.GetContext(ctx, &news, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			s.logger.Warn("news not found by id", "id", id)
			return nil, nil
		}
		s.logger.Error("failed to get news by id", "id", id, "error", err)
		return nil, fmt.Errorf("ошибка при получении новости по ID: %w", err)
	}

	s.logger.Info("news retrieved by id",
		"id", id,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return &news, nil
}

// ListNews получает список новостей, отсортированный по убыванию даты создания.
// При perPage <= 0 пагинация не применяется и возвращаются все записи.
func (s *NewsStorage) ListNews(ctx context.Context, page, perPage int) ([]domain.News, error) {
	start := time.Now()

	var (
		news []domain.News
		err  error
	)

	if perPage <= 0 {
		q := `SELECT * FROM news ORDER BY created_at DESC`
		err = s.db.SelectContext(ctx, &news, q)
	} else {
		if page <= 0 {
			page = 1
		}
		offset := (page - 1) * perPage
		q := `SELECT * FROM news ORDER BY created_at DESC LIMIT $1 OFFSET $2`
		err = s.db.SelectContext(ctx, &news, q, perPage, offset)
	}

	if err != nil {
		s.logger.Error("failed to list news", "page", page, "per_page", perPage, "error", err)
		return nil, fmt.Errorf("ошибка при получении списка новостей: %w", err)
	}

	s.logger.Info("listed news successfully",
		"count", len(news),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return news, nil
}

// UpdateNews обновляет существующую новость.
func (s *NewsStorage) UpdateNews(ctx context.Context, news *domain.News) error {
	start := time.Now()

	news.UpdatedAt = time.Now()

	query := `
	UPDATE news
	SET title = :title, text = :text, place = :place, image = :image, image_key = :image_key, updated_at = :updated_at
	WHERE id = :id
	`

	_, err := s.db.NamedExecContext(ctx, query, news)
	if err != nil {
		s.logger.Error("failed to update news", "id", news.ID, "error", err)
		return fmt.Errorf("ошибка при обновлении новости: %w", err)
	}

	s.logger.Info("news updated successfully",
		"id", news.ID,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return nil
}

// DeleteNews удаляет новость по ID. Возвращает false, если запись не найдена.
func (s *NewsStorage) DeleteNews(ctx context.Context, id uuid.UUID) (bool, error) {
	start := time.Now()

	res, err := s.db.ExecContext(ctx, `DELETE FROM news WHERE id = $1`, id)
	if err != nil {
		s.logger.Error("failed to delete news", "id", id, "error", err)
		return false, fmt.Errorf("ошибка при удалении новости: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("ошибка при получении числа удаленных строк: %w", err)
	}

	s.logger.Info("news delete completed",
		"id", id,
		"deleted", affected > 0,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return affected > 0, nil
}

package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/GoArmGo/NewsApp/internal/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormNewsStorage реализует интерфейс ports.NewsStorage с использованием GORM
type GormNewsStorage struct {
	db *gorm.DB
}

// NewGormNewsStorage создает новый экземпляр GormNewsStorage
func NewGormNewsStorage(db *gorm.DB) *GormNewsStorage {
	return &GormNewsStorage{db: db}
}

// SaveNews сохраняет новость в базе данных с помощью GORM
func (s *GormNewsStorage) SaveNews(ctx context.Context, news *domain.News) error {
	if news.ID == uuid.Nil {
		news.ID = uuid.New()
	}
	now := time.Now()
	news.CreatedAt = now
	news.UpdatedAt = now

	result := s.db.WithContext(ctx).Create(news)
	if result.Error != nil {
		return fmt.Errorf("ошибка при сохранении новости в БД с помощью GORM: %w", result.Error)
	}
	return nil
}

// GetNewsByID получает новость по ID с помощью GORM
func (s *GormNewsStorage) GetNewsByID(ctx context.Context, id uuid.UUID) (*domain.News, error) {
	var news domain.News
	result := s.db.WithContext(ctx).First(&news, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("ошибка при получении новости по ID из БД с помощью GORM: %w", result.Error)
	}
	return &news, nil
}

// ListNews получает список новостей по убыванию даты создания с помощью GORM.
// При perPage <= 0 пагинация не применяется.
func (s *GormNewsStorage) ListNews(ctx context.Context, page, perPage int) ([]domain.News, error) {
	var news []domain.News

	q := s.db.WithContext(ctx).Order("created_at DESC")
	if perPage > 0 {
		if page <= 0 {
			page = 1
		}
		q = q.Limit(perPage).Offset((page - 1) * perPage)
	}

	if result := q.Find(&news); result.Error != nil {
		return nil, fmt.Errorf("ошибка при получении списка новостей из БД с помощью GORM: %w", result.Error)
	}
	return news, nil
}

// UpdateNews обновляет существующую новость с помощью GORM
func (s *GormNewsStorage) UpdateNews(ctx context.Context, news *domain.News) error {
	news.UpdatedAt = time.Now()

	result := s.db.WithContext(ctx).Model(&domain.News{}).Where("id = ?", news.ID).Updates(map[string]interface{}{
		"title":      news.Title,
		"text":       news.Text,
		"place":      news.Place,
		"image":      news.Image,
		"image_key":  news.ImageKey,
		"updated_at": news.UpdatedAt,
	})
	if result.Error != nil {
		return fmt.Errorf("ошибка при обновлении новости в БД с помощью GORM: %w", result.Error)
	}
	return nil
}

// DeleteNews удаляет новость по ID с помощью GORM. Возвращает false, если запись не найдена.
func (s *GormNewsStorage) DeleteNews(ctx context.Context, id uuid.UUID) (bool, error) {
	result := s.db.WithContext(ctx).Delete(&domain.News{}, "id = ?", id)
	if result.Error != nil {
		return false, fmt.Errorf("ошибка при удалении новости из БД с помощью GORM: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

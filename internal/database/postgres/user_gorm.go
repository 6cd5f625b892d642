package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/GoArmGo/NewsApp/internal/core/ports"
	"github.com/GoArmGo/NewsApp/internal/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormUserStorage реализует интерфейс ports.UserStorage с использованием GORM
type GormUserStorage struct {
	db *gorm.DB
}

// NewGormUserStorage создает новый экземпляр GormUserStorage
func NewGormUserStorage(db *gorm.DB) *GormUserStorage {
	return &GormUserStorage{db: db}
}

// CreateUser сохраняет нового пользователя с помощью GORM.
// При нарушении уникальности возвращает ports.ErrDuplicate.
func (s *GormUserStorage) CreateUser(ctx context.Context, user *domain.User) error {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now

	result := s.db.WithContext(ctx).Create(user)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("%w: %v", ports.ErrDuplicate, result.Error)
		}
		return fmt.Errorf("ошибка при создании пользователя с GORM: %w", result.Error)
	}
	return nil
}

// GetUserByUsername получает пользователя по имени с помощью GORM
func (s *GormUserStorage) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	return s.getUser(ctx, "username = ?", username)
}

// GetUserByEmail получает пользователя по email с помощью GORM
func (s *GormUserStorage) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	return s.getUser(ctx, "email = ?", email)
}

func (s *GormUserStorage) getUser(ctx context.Context, cond, value string) (*domain.User, error) {
	var user domain.User
	result := s.db.WithContext(ctx).Where(cond, value).First(&user)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("ошибка при поиске пользователя с GORM: %w", result.Error)
	}
	return &user, nil
}

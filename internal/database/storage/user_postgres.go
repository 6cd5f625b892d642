package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/GoArmGo/NewsApp/internal/core/ports"
	"github.com/GoArmGo/NewsApp/internal/domain"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// Код ошибки PostgreSQL для нарушения уникального ограничения
const pgUniqueViolation = "23505"

// UserStorage — sqlx-реализация хранилища пользователей.
type UserStorage struct {
	db     *sqlx.DB
	logger *slog.Logger
}

func NewUserStorage(db *sqlx.DB, logger *slog.Logger) *UserStorage {
	return &UserStorage{db: db, logger: logger}
}

// CreateUser сохраняет нового пользователя. При нарушении уникальности
// username или email возвращает ports.ErrDuplicate.
func (s *UserStorage) CreateUser(ctx context.Context, user *domain.User) error {
	start := time.Now()

	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now

	_, err := s.db.NamedExecContext(ctx, `
        INSERT INTO users (id, username, email, password_hash, created_at, updated_at)
        VALUES (:id, :username, :email, :password_hash, :created_at, :updated_at)
    `, user)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == pgUniqueViolation {
			s.logger.Warn("duplicate user", "username", user.Username, "constraint", pqErr.Constraint)
			return fmt.Errorf("%w: %s", ports.ErrDuplicate, pqErr.Constraint)
		}
		s.logger.Error("failed to insert user", "username", user.Username, "error", err)
		return fmt.Errorf("ошибка при создании пользователя: %w", err)
	}

	s.logger.Info("user created successfully",
		"user_id", user.ID,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return nil
}

// GetUserByUsername получает пользователя по имени. Возвращает (nil, nil), если не найден.
func (s *UserStorage) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	return s.getUser(ctx, `SELECT * FROM users WHERE username = $1 LIMIT 1`, username, "username")
}

// GetUserByEmail получает пользователя по email. Возвращает (nil, nil), если не найден.
func (s *UserStorage) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	return s.getUser(ctx, `SELECT * FROM users WHERE email = $1 LIMIT 1`, email, "email")
}

func (s *UserStorage) getUser(ctx context.Context, query, value, field string) (*domain.User, error) {
	start := time.Now()

	var user domain.User
	err := s.db.GetContext(ctx, &user, query, value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		s.logger.Error("failed to select user", "field", field, "error", err)
		return nil, fmt.Errorf("ошибка при поиске пользователя по %s: %w", field, err)
	}

	s.logger.Info("user found",
		"user_id", user.ID,
		"field", field,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return &user, nil
}

package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/GoArmGo/NewsApp/internal/auth"
	"github.com/GoArmGo/NewsApp/internal/core/ports"
	"github.com/GoArmGo/NewsApp/internal/domain"
)

// authUseCase implements AuthUseCase
type authUseCase struct {
	userStorage ports.UserStorage
	jwtManager  *auth.JWTManager
	logger      *slog.Logger
}

// NewAuthUseCase создает новый экземпляр AuthUseCase.
func NewAuthUseCase(userStorage ports.UserStorage, jwtManager *auth.JWTManager, logger *slog.Logger) AuthUseCase {
	return &authUseCase{
		userStorage: userStorage,
		jwtManager:  jwtManager,
		logger:      logger,
	}
}

// Register создает нового пользователя с bcrypt-хешем пароля.
func (uc *authUseCase) Register(ctx context.Context, username, email, password string) (*domain.User, error) {
	if missing := domain.ValidateRegistration(username, email, password); len(missing) > 0 {
		return nil, &ValidationError{Fields: missing}
	}

	// Явные проверки занятости до вставки дают понятное сообщение о том,
	// какое именно поле конфликтует
	existing, err := uc.userStorage.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("usecase: ошибка при проверке занятости username: %w", err)
	}
	if existing != nil {
		return nil, &ConflictError{Field: "username"}
	}

	existing, err = uc.userStorage.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("usecase: ошибка при проверке занятости email: %w", err)
	}
	if existing != nil {
		return nil, &ConflictError{Field: "email"}
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("usecase: ошибка хеширования пароля: %w", err)
	}

	user := &domain.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
	}

	if err := uc.userStorage.CreateUser(ctx, user); err != nil {
		// Вставка могла проиграть гонку конкурентной регистрации.
		// Хранилище вкладывает имя нарушенного ограничения в текст ошибки,
		// по нему определяется конфликтующее поле.
		if errors.Is(err, ports.ErrDuplicate) {
			field := "username"
			if strings.Contains(err.Error(), "email") {
				field = "email"
			}
			return nil, &ConflictError{Field: field}
		}
		return nil, fmt.Errorf("usecase: ошибка при создании пользователя: %w", err)
	}

	uc.logger.Info("user registered", "user_id", user.ID, "username", user.Username)
	return user, nil
}

// Login проверяет учетные данные и выпускает токен доступа.
func (uc *authUseCase) Login(ctx context.Context, username, password string) (string, error) {
	user, err := uc.userStorage.GetUserByUsername(ctx, username)
	if err != nil {
		return "", fmt.Errorf("usecase: ошибка при поиске пользователя: %w", err)
	}
	if user == nil {
		return "", ErrInvalidCredentials
	}

	if !auth.CheckPasswordHash(password, user.PasswordHash) {
		return "", ErrInvalidCredentials
	}

	token, err := uc.jwtManager.GenerateToken(user.ID, user.Username)
	if err != nil {
		return "", fmt.Errorf("usecase: ошибка выпуска токена: %w", err)
	}

	uc.logger.Info("user logged in", "user_id", user.ID)
	return token, nil
}

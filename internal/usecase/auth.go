package usecase

import (
	"context"

	"github.com/GoArmGo/NewsApp/internal/domain"
)

// AuthUseCase определяет интерфейс бизнес-логики контроля доступа.
type AuthUseCase interface {
	// Register создает нового пользователя. Возвращает ValidationError при
	// незаполненных полях и ConflictError при занятом username или email.
	// Пароль сохраняется только в виде соленого bcrypt-хеша.
	Register(ctx context.Context, username, email, password string) (*domain.User, error)

	// Login проверяет учетные данные и выпускает подписанный токен доступа.
	// Для неизвестного имени и неверного пароля возвращается одна и та же
	// ошибка ErrInvalidCredentials, чтобы не раскрывать, какое поле неверно.
	Login(ctx context.Context, username, password string) (string, error)
}

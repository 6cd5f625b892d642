package ports

import (
	"context"
	"errors"
	"io"

	"github.com/GoArmGo/NewsApp/internal/domain"
	"github.com/google/uuid"
)

// ErrDuplicate возвращается хранилищем при нарушении уникального ограничения
// (username или email уже заняты).
var ErrDuplicate = errors.New("duplicate unique field")

// NewsStorage определяет методы для взаимодействия с хранилищем новостей.
// Методы Get* возвращают (nil, nil), если запись не найдена.
type NewsStorage interface {
	SaveNews(ctx context.Context, news *domain.News) error
	GetNewsByID(ctx context.Context, id uuid.UUID) (*domain.News, error)
	ListNews(ctx context.Context, page, perPage int) ([]domain.News, error)
	UpdateNews(ctx context.Context, news *domain.News) error
	DeleteNews(ctx context.Context, id uuid.UUID) (bool, error)
}

// UserStorage определяет методы для взаимодействия с хранилищем пользователей.
type UserStorage interface {
	CreateUser(ctx context.Context, user *domain.User) error
	GetUserByUsername(ctx context.Context, username string) (*domain.User, error)
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
}

// FileStorage определяет интерфейс для работы с внешним файловым хранилищем
// (Dropbox, S3/MinIO) — порт для хранения бинарных данных изображений.
type FileStorage interface {
	// UploadFile загружает файл в хранилище и возвращает его публичный
	// direct-download URL. `key` — уникальное имя объекта в хранилище.
	UploadFile(ctx context.Context, key string, reader io.Reader, contentType string) (string, error)

	// DeleteFile удаляет файл из хранилища по его ключу.
	DeleteFile(ctx context.Context, key string) error
}

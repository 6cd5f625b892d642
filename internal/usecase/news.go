package usecase

import (
	"context"
	"io"

	"github.com/GoArmGo/NewsApp/internal/domain"
	"github.com/google/uuid"
)

// MaxUploadSize — предельный размер загружаемого изображения (70 МиБ).
// Ровно 70 МиБ принимается, любое превышение отклоняется.
const MaxUploadSize = 70 * 1024 * 1024

// UploadFile описывает загружаемый файл изображения.
// Size берется из multipart-заголовка до чтения содержимого.
type UploadFile struct {
	Content     io.Reader
	Size        int64
	Filename    string
	ContentType string
}

// CreateNewsInput — поля запроса на создание новости. Файл обязателен.
type CreateNewsInput struct {
	Title string
	Text  string
	Place string
	File  *UploadFile
}

// UpdateNewsInput — поля запроса на частичное обновление новости.
// Пустые строки означают "оставить прежнее значение"; File == nil — "не менять изображение".
type UpdateNewsInput struct {
	Title string
	Text  string
	Place string
	File  *UploadFile
}

// NewsUseCase определяет интерфейс бизнес-логики публикации новостей.
type NewsUseCase interface {
	// CreateNews загружает изображение во внешнее хранилище, валидирует поля
	// и сохраняет новость с публичной direct-download ссылкой.
	CreateNews(ctx context.Context, input CreateNewsInput) (*domain.News, error)

	// ListNews возвращает новости по убыванию даты создания.
	// При perPage <= 0 возвращаются все записи.
	ListNews(ctx context.Context, page, perPage int) ([]domain.News, error)

	// GetNews возвращает новость по ID или ErrNotFound.
	GetNews(ctx context.Context, id uuid.UUID) (*domain.News, error)

	// UpdateNews выполняет частичное обновление: опущенные поля сохраняют
	// прежние значения, изображение заменяется только при наличии нового файла.
	UpdateNews(ctx context.Context, id uuid.UUID, input UpdateNewsInput) (*domain.News, error)

	// DeleteNews удаляет новость по ID или возвращает ErrNotFound.
	DeleteNews(ctx context.Context, id uuid.UUID) error
}

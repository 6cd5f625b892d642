package usecase

import (
	"errors"
	"fmt"
	"strings"
)

// Сентинельные ошибки бизнес-логики. Обработчики HTTP отображают их в статус-коды.
var (
	ErrNotFound           = errors.New("news not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNoFile             = errors.New("no file uploaded")
	ErrPayloadTooLarge    = errors.New("file size exceeds 70MB limit")
	ErrUploadFailed       = errors.New("upload to file storage failed")
)

// ValidationError перечисляет незаполненные обязательные поля запроса.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("required fields missing: %s", strings.Join(e.Fields, ", "))
}

// ConflictError сообщает о нарушении уникальности поля при регистрации.
type ConflictError struct {
	Field string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s already exists", e.Field)
}

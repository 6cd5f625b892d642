package domain

import (
	"time"

	"github.com/google/uuid"
)

// News представляет модель новости в системе,
// соответствует таблице news в бд.
// Image хранит публичный direct-download URL, а не бинарные данные.
type News struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Title     string    `json:"title" db:"title"`
	Text      string    `json:"text" db:"text"`
	Place     string    `json:"place,omitempty" db:"place"`
	Image     string    `json:"image,omitempty" db:"image"`
	ImageKey  string    `json:"-" db:"image_key"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

func (News) TableName() string {
	return "news"
}

// Validate проверяет обязательные поля новости и возвращает список имен
// незаполненных полей. Валидация отделена от слоя хранения: хранилище
// получает уже проверенную модель.
func (n *News) Validate() []string {
	var missing []string
	if n.Title == "" {
		missing = append(missing, "title")
	}
	if n.Text == "" {
		missing = append(missing, "text")
	}
	return missing
}

// ApplyPartial применяет частичное обновление: пустые значения оставляют
// прежнее содержимое поля без изменений.
func (n *News) ApplyPartial(title, text, place string) {
	if title != "" {
		n.Title = title
	}
	if text != "" {
		n.Text = text
	}
	if place != "" {
		n.Place = place
	}
}

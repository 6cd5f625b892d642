package postgres

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewGormDB оборачивает уже установленное sqlx-соединение в GORM.
// Используется, когда выбрана GORM-реализация хранилищ (DB_USE_GORM).
func NewGormDB(db *sqlx.DB) (*gorm.DB, error) {
	gormDB, err := gorm.Open(gormpostgres.New(gormpostgres.Config{
		Conn: db.DB,
	}), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("ошибка инициализации GORM поверх существующего соединения: %w", err)
	}
	return gormDB, nil
}

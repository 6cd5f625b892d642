package config

import (
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

// Config хранит все конфигурационные параметры приложения.
type Config struct {
	DatabaseURL string `env:"DATABASE_URL,required"`
	ServerPort  string `env:"SERVER_PORT"`
	DBUseGorm   bool   `env:"DB_USE_GORM"`

	// Секрет для подписи JWT и время жизни токена
	JWTSecret string        `env:"JWT_SECRET,required"`
	TokenTTL  time.Duration `env:"TOKEN_TTL"`

	// Бэкенд файлового хранилища: "dropbox" или "s3"
	StorageBackend     string `env:"STORAGE_BACKEND"`
	DropboxAccessToken string `env:"DROPBOX_ACCESS_TOKEN"`

	// Настройки для MinIO / S3
	MinioEndpoint        string `env:"MINIO_ENDPOINT"`
	MinioAccessKeyID     string `env:"MINIO_ACCESS_KEY_ID"`
	MinioSecretAccessKey string `env:"MINIO_SECRET_ACCESS_KEY"`
	MinioUseSSL          bool   `env:"MINIO_USE_SSL"`
	MinioBucketName      string `env:"MINIO_BUCKET_NAME"`
	MinioRegion          string `env:"MINIO_REGION"`

	RabbitMQ struct {
		RabbitMQURL       string `env:"RABBITMQ_URL,required"`
		RabbitMQQueueName string `env:"RABBITMQ_QUEUE_NAME" envDefault:"news_image_cleanup"`
	}

	LogLevel  string `env:"LOG_LEVEL"`
	LogFormat string `env:"LOG_FORMAT"`

	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// LoadConfig загружает конфигурацию из переменных окружения.
// В режиме разработки пытается загрузить .env файл.
func LoadConfig() (*Config, error) {
	if _, err := os.Stat(".env"); !os.IsNotExist(err) {
		if err := godotenv.Load(); err != nil {
			return nil, fmt.Errorf("ошибка загрузки .env файла: %w", err)
		}
	}

	cfg := Config{}
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("ошибка парсинга конфигурации из окружения: %w", err)
	}

	// Значения по умолчанию для полей без envDefault
	if cfg.ServerPort == "" {
		cfg.ServerPort = "8080"
	}
	if cfg.TokenTTL == 0 {
		cfg.TokenTTL = time.Hour
	}
	if cfg.StorageBackend == "" {
		cfg.StorageBackend = "dropbox"
	}
	if cfg.RequestTimeout == 0 {
		cfg.RequestTimeout = 60 * time.Second
	}

	switch cfg.StorageBackend {
	case "dropbox":
		if cfg.DropboxAccessToken == "" {
			return nil, fmt.Errorf("DROPBOX_ACCESS_TOKEN обязателен при STORAGE_BACKEND=dropbox")
		}
	case "s3":
		if cfg.MinioEndpoint == "" || cfg.MinioAccessKeyID == "" || cfg.MinioSecretAccessKey == "" ||
			cfg.MinioBucketName == "" || cfg.MinioRegion == "" {
			return nil, fmt.Errorf("настройки MinIO (MINIO_ENDPOINT, MINIO_ACCESS_KEY_ID, MINIO_SECRET_ACCESS_KEY, MINIO_BUCKET_NAME, MINIO_REGION) обязательны при STORAGE_BACKEND=s3")
		}
	default:
		return nil, fmt.Errorf("неизвестный STORAGE_BACKEND: %q (используйте 'dropbox' или 's3')", cfg.StorageBackend)
	}

	return &cfg, nil
}

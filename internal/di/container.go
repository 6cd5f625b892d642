package di

import (
	"fmt"

	"github.com/GoArmGo/NewsApp/internal/adapter/storage/dropbox"
	"github.com/GoArmGo/NewsApp/internal/adapter/storage/minio"
	"github.com/GoArmGo/NewsApp/internal/app"
	"github.com/GoArmGo/NewsApp/internal/auth"
	"github.com/GoArmGo/NewsApp/internal/config"
	"github.com/GoArmGo/NewsApp/internal/core/ports"
	"github.com/GoArmGo/NewsApp/internal/database/client"
	"github.com/GoArmGo/NewsApp/internal/database/postgres"
	"github.com/GoArmGo/NewsApp/internal/database/storage"
	"github.com/GoArmGo/NewsApp/internal/logger"
	"github.com/GoArmGo/NewsApp/internal/rabbitmq"
	"github.com/GoArmGo/NewsApp/internal/usecase"
)

// BuildApp инициализирует все зависимости и возвращает готовый объект App.
func BuildApp() (*app.App, error) {
	// 1. Загрузка конфигурации
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}

	slogger := logger.NewSlog(logger.SlogConfig{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	})
	slogger.Info("logger initialized", "level", cfg.LogLevel, "format", cfg.LogFormat)

	// 2. Инициализация PostgreSQL клиента (провал подключения фатален)
	dbClient, err := client.NewClient(cfg, slogger)
	if err != nil {
		return nil, err
	}

	// 3. Инициализация хранилищ: sqlx по умолчанию, GORM по флагу
	var (
		newsStorage ports.NewsStorage
		userStorage ports.UserStorage
	)
	if cfg.DBUseGorm {
		gormDB, err := postgres.NewGormDB(dbClient.DB)
		if err != nil {
			return nil, err
		}
		newsStorage = postgres.NewGormNewsStorage(gormDB)
		userStorage = postgres.NewGormUserStorage(gormDB)
		slogger.Info("using GORM storage implementation")
	} else {
		newsStorage = storage.NewNewsStorage(dbClient.DB, slogger)
		userStorage = storage.NewUserStorage(dbClient.DB, slogger)
	}

	// 4. Инициализация файлового хранилища
	var fileStorage ports.FileStorage
	switch cfg.StorageBackend {
	case "dropbox":
		fileStorage = dropbox.NewClient(cfg)
	case "s3":
		fileStorage, err = minio.NewClient(cfg, slogger)
		if err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("неизвестный бэкенд файлового хранилища: %s", cfg.StorageBackend)
	}
	slogger.Info("file storage initialized", "backend", cfg.StorageBackend)

	// 5. Инициализация RabbitMQ клиента (publisher и consumer очереди очистки)
	rabbitMQClient, err := rabbitmq.NewClient(cfg, slogger)
	if err != nil {
		return nil, err
	}

	// 6. Инициализация бизнес-логики (usecases)
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.TokenTTL)
	authUseCase := usecase.NewAuthUseCase(userStorage, jwtManager, slogger)
	newsUseCase := usecase.NewNewsUseCase(newsStorage, fileStorage, rabbitMQClient, slogger)

	// 7. Сборка итогового приложения
	application := app.NewApp(
		cfg,
		slogger,
		dbClient.DB,
		jwtManager,
		authUseCase,
		newsUseCase,
		fileStorage,
		rabbitMQClient,
	)

	slogger.Info("all dependencies initialized")
	return application, nil
}

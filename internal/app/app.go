package app

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/GoArmGo/NewsApp/internal/auth"
	"github.com/GoArmGo/NewsApp/internal/config"
	"github.com/GoArmGo/NewsApp/internal/core/ports"
	"github.com/GoArmGo/NewsApp/internal/usecase"
	"github.com/jmoiron/sqlx"
)

type App struct {
	Config          *config.Config
	logger          *slog.Logger
	db              *sqlx.DB
	jwtManager      *auth.JWTManager
	authUseCase     usecase.AuthUseCase
	newsUseCase     usecase.NewsUseCase
	fileStorage     ports.FileStorage
	cleanupConsumer ports.ImageCleanupConsumer
}

func NewApp(
	cfg *config.Config,
	logger *slog.Logger,
	db *sqlx.DB,
	jwtManager *auth.JWTManager,
	authUseCase usecase.AuthUseCase,
	newsUseCase usecase.NewsUseCase,
	fileStorage ports.FileStorage,
	cleanupConsumer ports.ImageCleanupConsumer,
) *App {
	return &App{
		Config:          cfg,
		logger:          logger,
		db:              db,
		jwtManager:      jwtManager,
		authUseCase:     authUseCase,
		newsUseCase:     newsUseCase,
		fileStorage:     fileStorage,
		cleanupConsumer: cleanupConsumer,
	}
}

// LoggerIns возвращает основной логгер приложения.
func (a *App) LoggerIns() *slog.Logger {
	return a.logger
}

func (a *App) Run(ctx context.Context, mode *string) error {
	// контекст для graceful shutdown
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a.logger.Info("application starting", "mode", *mode)

	var err error

	switch *mode {
	case "server":
		err = runServer(ctx, a.Config, a.logger, a.jwtManager, a.authUseCase, a.newsUseCase)

	case "worker":
		err = runWorker(ctx, a.logger, a.fileStorage, a.cleanupConsumer)

	default:
		err = fmt.Errorf("неизвестный режим: %s (используйте 'server' или 'worker')", *mode)
	}

	if err != nil {
		return err
	}

	// аккуратно закрываем ресурсы
	if closeErr := a.Shutdown(); closeErr != nil {
		a.logger.Error("shutdown error", "error", closeErr)
	}

	a.logger.Info("application stopped")
	return nil
}

// Shutdown закрывает все ресурсы приложения
func (a *App) Shutdown() error {
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			return fmt.Errorf("ошибка закрытия БД: %w", err)
		}
	}

	if closer, ok := a.cleanupConsumer.(interface{ Close() error }); ok {
		_ = closer.Close()
	}

	return nil
}

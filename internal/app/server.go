package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/GoArmGo/NewsApp/internal/auth"
	"github.com/GoArmGo/NewsApp/internal/config"
	"github.com/GoArmGo/NewsApp/internal/handler"
	"github.com/GoArmGo/NewsApp/internal/usecase"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// NewRouter собирает chi-роутер со всеми маршрутами сервиса.
// Bearer-токен обязателен для всех мутирующих операций новостей;
// чтение новостей и регистрация/вход публичны.
func NewRouter(
	cfg *config.Config,
	logger *slog.Logger,
	jwtManager *auth.JWTManager,
	authUseCase usecase.AuthUseCase,
	newsUseCase usecase.NewsUseCase,
) *chi.Mux {
	authHandler := handler.NewAuthHandler(authUseCase, logger)
	newsHandler := handler.NewNewsHandler(newsUseCase, logger)

	r := chi.NewRouter()
	r.Use(handler.RequestLogger(logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(cfg.RequestTimeout))

	r.Post("/login", authHandler.Login)
	r.Post("/users", authHandler.CreateUser)

	r.Get("/news", newsHandler.ListNews)
	r.Get("/news/{id}", newsHandler.GetNews)

	r.Group(func(r chi.Router) {
		r.Use(handler.Authenticator(jwtManager, logger))
		r.Post("/news", newsHandler.CreateNews)
		r.Put("/news/{id}", newsHandler.UpdateNews)
		r.Delete("/news/{id}", newsHandler.DeleteNews)
	})

	return r
}

// runServer запускает HTTP сервер
func runServer(
	ctx context.Context,
	cfg *config.Config,
	logger *slog.Logger,
	jwtManager *auth.JWTManager,
	authUseCase usecase.AuthUseCase,
	newsUseCase usecase.NewsUseCase,
) error {
	r := NewRouter(cfg, logger, jwtManager, authUseCase, newsUseCase)

	serverAddr := fmt.Sprintf(":%s", cfg.ServerPort)
	server := &http.Server{
		Addr:    serverAddr,
		Handler: r,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server started", "addr", serverAddr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("ошибка при запуске сервера: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutdown signal received, stopping server")

	ctxServer, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctxServer); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}

	logger.Info("server stopped gracefully")
	return nil
}

// Package subscoreapi собирает основное HTTP-приложение: хранилище, кеш,
// извлечение идентичности из токена, сервисы и маршруты.
package subscoreapi

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/rs/cors"

	"github.com/subscore/subscore-api/internal/cache"
	"github.com/subscore/subscore-api/internal/config"
	"github.com/subscore/subscore-api/internal/lib/token"
	"github.com/subscore/subscore-api/internal/migrations"
	categoryservice "github.com/subscore/subscore-api/internal/services/category"
	subscriptionservice "github.com/subscore/subscore-api/internal/services/subscription"
	userservice "github.com/subscore/subscore-api/internal/services/user"
	"github.com/subscore/subscore-api/internal/storage/repository"
)

// App хранит зависимости HTTP-приложения и управляет его жизненным циклом.
type App struct {
	server *http.Server
	logger *slog.Logger
	db     *repository.Storage
}

// New инициализирует зависимости приложения: подключается к Postgres,
// применяет миграции, поднимает Redis и строит роутер.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, "./migrations"); err != nil {
		return nil, err
	}

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		return nil, err
	}

	extractor, err := newExtractor(cfg.Auth)
	if err != nil {
		return nil, err
	}

	userService := userservice.NewUserService(db, logger)
	categoryService := categoryservice.NewCategoryService(db, cacheRedis, logger)
	subscriptionService := subscriptionservice.NewSubscriptionService(db, db, db, cacheRedis, logger)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, extractor, subscriptionService, userService, categoryService)

	corsMiddleware := newCORS(cfg.AllowedOrigin)

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      corsMiddleware.Handler(router),
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server: srv,
		logger: logger,
		db:     db,
	}, nil
}

// newCORS строит CORS-слой: один разрешённый origin, любые заголовки,
// методы GET/POST/PUT/DELETE/OPTIONS, с передачей учётных данных.
func newCORS(allowedOrigin string) *cors.Cors {
	return cors.New(cors.Options{
		AllowedOrigins:   []string{allowedOrigin},
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})
}

// newExtractor выбирает способ извлечения идентичности по конфигурации.
func newExtractor(cfg config.Auth) (token.Extractor, error) {
	switch cfg.Mode {
	case "", "unverified":
		return token.NewUnverifiedExtractor(), nil
	case "hs256":
		if cfg.HS256Secret == "" {
			return nil, errors.New("auth mode hs256 requires hs256_secret")
		}
		return token.NewHMACExtractor(cfg.HS256Secret), nil
	default:
		return nil, fmt.Errorf("unknown auth mode: %s", cfg.Mode)
	}
}

// Run запускает HTTP-сервер и мягко останавливает его при отмене контекста.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		a.db.DB.Close()
		return err
	}
}

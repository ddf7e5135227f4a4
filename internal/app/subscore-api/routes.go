package subscoreapi

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	httpSwagger "github.com/swaggo/http-swagger"

	categorylist "github.com/subscore/subscore-api/internal/http/handlers/category/list"
	"github.com/subscore/subscore-api/internal/http/handlers/subscription/create"
	"github.com/subscore/subscore-api/internal/http/handlers/subscription/list"
	"github.com/subscore/subscore-api/internal/http/handlers/subscription/listuser"
	"github.com/subscore/subscore-api/internal/http/handlers/subscription/remove"
	"github.com/subscore/subscore-api/internal/http/handlers/subscription/update"
	"github.com/subscore/subscore-api/internal/http/handlers/user/register"
	"github.com/subscore/subscore-api/internal/http/handlers/whoami"
	"github.com/subscore/subscore-api/internal/http/middlewarectx"
	"github.com/subscore/subscore-api/internal/lib/token"
	categoryservice "github.com/subscore/subscore-api/internal/services/category"
	subscriptionservice "github.com/subscore/subscore-api/internal/services/subscription"
	userservice "github.com/subscore/subscore-api/internal/services/user"
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, extractor token.Extractor,
	subscriptionService *subscriptionservice.SubscriptionService,
	userService *userservice.UserService,
	categoryService *categoryservice.CategoryService) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	r.Route("/api", func(r chi.Router) {
		// Открытая конечная точка: регистрация не требует токена
		r.Post("/users/register", register.New(logger, userService).ServeHTTP)

		// Группа с извлечением идентичности из bearer-токена
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.AuthMiddleware(extractor, logger))
			r.Use(middlewarectx.RateLimitMiddleware(logger))
			r.Get("/subscriptions", list.New(logger, subscriptionService).ServeHTTP)
			r.Post("/subscriptions", create.New(logger, subscriptionService).ServeHTTP)
			r.Get("/subscriptions/user", listuser.New(logger, subscriptionService).ServeHTTP)
			r.Put("/subscriptions/{id}", update.New(logger, subscriptionService).ServeHTTP)
			r.Delete("/subscriptions/{id}", remove.New(logger, subscriptionService).ServeHTTP)
			r.Get("/categories", categorylist.New(logger, categoryService).ServeHTTP)
			r.Get("/test", whoami.New(logger).ServeHTTP)
		})
	})

	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}

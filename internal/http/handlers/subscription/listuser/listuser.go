// Package listuser реализует HTTP-обработчик получения подписок текущего
// пользователя вместе с данными категорий.
package listuser

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/subscore/subscore-api/internal/http/middlewarectx"
	"github.com/subscore/subscore-api/internal/http/response"
	"github.com/subscore/subscore-api/internal/lib/sl"
	"github.com/subscore/subscore-api/internal/models"
	"github.com/subscore/subscore-api/internal/storage/repository"
)

// Handler управляет HTTP-запросами на чтение подписок пользователя.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики чтения подписок пользователя.
type Service interface {
	ListByUser(ctx context.Context, email string) ([]*models.SubscriptionView, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Получить подписки текущего пользователя
// @Description Возвращает подписки пользователя из токена с вложенной категорией. Пустой список — это 200 с пустым массивом.
// @Tags Subscriptions
// @Produce  json
// @Success 200 {object} response.Response "Подписки пользователя"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 404 {object} response.ErrorResponse "Пользователь не зарегистрирован"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера при чтении подписок"
// @Security BearerAuth
// @Router /subscriptions/user [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.subscription.listuser"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	identity, ok := middlewarectx.IdentityFromContext(r.Context())
	if !ok || identity.Email == "" {
		log.Error("identity not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	views, err := h.service.ListByUser(r.Context(), identity.Email)
	if errors.Is(err, repository.ErrUserNotFound) {
		log.Error("user is not registered", slog.String("email", identity.Email))
		w.WriteHeader(http.StatusNotFound)
		render.JSON(w, r, response.Error("user not found"))
		return
	}
	if err != nil {
		log.Error("failed to list user subscriptions", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list subscriptions"))
		return
	}

	log.Info("success to list user subscriptions",
		slog.String("email", identity.Email), slog.Int("count", len(views)))
	render.JSON(w, r, response.StatusOKWithData(views))
}

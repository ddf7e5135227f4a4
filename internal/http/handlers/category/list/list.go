// Package list реализует HTTP-обработчик чтения справочника категорий.
package list

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/subscore/subscore-api/internal/http/response"
	"github.com/subscore/subscore-api/internal/lib/sl"
	"github.com/subscore/subscore-api/internal/models"
)

// Handler управляет HTTP-запросами на чтение категорий.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики чтения категорий.
type Service interface {
	ListAll(ctx context.Context) ([]*models.Category, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Получить список категорий
// @Description Возвращает весь справочник категорий. При пустом справочнике отвечает 204 без тела.
// @Tags Categories
// @Produce  json
// @Success 200 {object} response.Response "Список категорий"
// @Success 204 "Категорий нет"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера при чтении категорий"
// @Security BearerAuth
// @Router /categories [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.category.list"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	categories, err := h.service.ListAll(r.Context())
	if err != nil {
		log.Error("failed to list categories", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list categories"))
		return
	}

	if len(categories) == 0 {
		log.Info("no categories found")
		w.WriteHeader(http.StatusNoContent)
		return
	}

	log.Info("success to list categories", slog.Int("count", len(categories)))
	render.JSON(w, r, response.StatusOKWithData(categories))
}

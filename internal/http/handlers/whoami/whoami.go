// Package whoami реализует диагностический HTTP-обработчик, возвращающий
// идентичность, извлечённую из токена текущего запроса.
package whoami

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/subscore/subscore-api/internal/http/middlewarectx"
	"github.com/subscore/subscore-api/internal/http/response"
)

// Echo описывает тело ответа диагностического эндпоинта.
type Echo struct {
	Message   string   `json:"message"`
	Timestamp string   `json:"timestamp"`
	User      EchoUser `json:"user"`
}

// EchoUser содержит поля идентичности из токена.
type EchoUser struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	Image string `json:"image"`
}

// Handler управляет диагностическими HTTP-запросами.
type Handler struct {
	log *slog.Logger
	now func() time.Time
}

// New создает новый Handler с переданным логгером.
func New(log *slog.Logger) *Handler {
	return &Handler{
		log: log,
		now: time.Now,
	}
}

// ServeHTTP godoc
// @Summary Проверить аутентификацию
// @Description Возвращает идентичность пользователя из токена и текущее время сервера.
// @Tags Diagnostics
// @Produce  json
// @Success 200 {object} whoami.Echo "Идентичность пользователя"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Security BearerAuth
// @Router /test [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.whoami"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	identity, ok := middlewarectx.IdentityFromContext(r.Context())
	if !ok {
		log.Error("identity not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	log.Info("identity echoed", slog.String("email", identity.Email))
	render.JSON(w, r, Echo{
		Message:   "authenticated",
		Timestamp: h.now().UTC().Format(time.RFC3339),
		User: EchoUser{
			Email: identity.Email,
			Name:  identity.Name,
			Image: identity.Picture,
		},
	})
}

// Package middlewarectx содержит HTTP middleware аутентификации запросов.
//
// AuthMiddleware извлекает идентичность пользователя из bearer-токена в
// заголовке Authorization и кладёт её в контекст запроса. Preflight-запросы
// и публичный маршрут регистрации пропускаются без проверки.
//
// В случае ошибки извлечения возвращает HTTP 401 Unauthorized.
package middlewarectx

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/subscore/subscore-api/internal/http/response"
	"github.com/subscore/subscore-api/internal/lib/sl"
	"github.com/subscore/subscore-api/internal/lib/token"
)

// Key тип для ключей контекста HTTP-запроса.
type Key string

// CurrentIdentity — ключ для идентичности пользователя в контексте.
const CurrentIdentity Key = "identity"

// RegisterPath — публичный маршрут регистрации, проходит без токена.
const RegisterPath = "/api/users/register"

const bearerPrefix = "Bearer "

// IdentityFromContext возвращает идентичность текущего пользователя,
// установленную AuthMiddleware.
func IdentityFromContext(ctx context.Context) (*token.Identity, bool) {
	identity, ok := ctx.Value(CurrentIdentity).(*token.Identity)
	return identity, ok && identity != nil
}

// AuthMiddleware возвращает HTTP middleware, который проверяет bearer-токен
// в заголовке Authorization и извлекает из него идентичность пользователя.
//
// Порядок проверок: OPTIONS и RegisterPath проходят без аутентификации;
// далее заголовок должен начинаться с "Bearer " (регистр и один пробел
// значимы), а экстрактор — успешно разобрать токен. Иначе 401.
func AuthMiddleware(extractor token.Extractor, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.AuthMiddleware"

			log := log.With(
				slog.String("op", op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)

			if r.Method == http.MethodOptions {
				next.ServeHTTP(w, r)
				return
			}
			if r.URL.Path == RegisterPath {
				next.ServeHTTP(w, r)
				return
			}

			authHeader := r.Header.Get("Authorization")
			if !strings.HasPrefix(authHeader, bearerPrefix) {
				log.Error("missing or invalid authorization header",
					slog.String("method", r.Method),
					slog.String("path", r.URL.Path))
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error("missing or invalid authorization header"))
				return
			}
			tokenStr := strings.TrimPrefix(authHeader, bearerPrefix)
			log.Info("token found",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.String("token_prefix", tokenPrefix(tokenStr)))

			identity, err := extractor.Extract(tokenStr)
			if err != nil {
				log.Error("failed to extract identity", sl.Err(err))
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error("invalid token"))
				return
			}

			ctx := context.WithValue(r.Context(), CurrentIdentity, identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// tokenPrefix обрезает токен до 20 символов: целиком токены не логируются.
func tokenPrefix(tokenStr string) string {
	if len(tokenStr) > 20 {
		return tokenStr[:20] + "..."
	}
	return tokenStr
}

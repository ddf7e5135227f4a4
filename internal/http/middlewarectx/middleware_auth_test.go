package middlewarectx_test

import (
	"encoding/base64"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/subscore/subscore-api/internal/http/middlewarectx"
	"github.com/subscore/subscore-api/internal/lib/token"
)

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func claimsToken(payload string) string {
	return "header." + base64.RawURLEncoding.EncodeToString([]byte(payload)) + ".sig"
}

func TestAuthMiddleware(t *testing.T) {
	tests := []struct {
		name           string
		method         string
		path           string
		authHeader     string
		wantStatusCode int
		wantCalled     bool
		wantEmail      string
	}{
		{
			name:           "missing Authorization header",
			method:         http.MethodGet,
			path:           "/api/subscriptions",
			authHeader:     "",
			wantStatusCode: http.StatusUnauthorized,
			wantCalled:     false,
		},
		{
			name:           "invalid Authorization header prefix",
			method:         http.MethodGet,
			path:           "/api/subscriptions",
			authHeader:     "Basic sometoken",
			wantStatusCode: http.StatusUnauthorized,
			wantCalled:     false,
		},
		{
			name:           "lowercase bearer prefix rejected",
			method:         http.MethodGet,
			path:           "/api/subscriptions",
			authHeader:     "bearer " + claimsToken(`{"email":"a@b.com"}`),
			wantStatusCode: http.StatusUnauthorized,
			wantCalled:     false,
		},
		{
			name:           "unparseable token",
			method:         http.MethodGet,
			path:           "/api/subscriptions",
			authHeader:     "Bearer justonesegment",
			wantStatusCode: http.StatusUnauthorized,
			wantCalled:     false,
		},
		{
			name:           "valid token installs identity",
			method:         http.MethodGet,
			path:           "/api/subscriptions",
			authHeader:     "Bearer " + claimsToken(`{"email":"a@b.com","name":"A","picture":"http://x"}`),
			wantStatusCode: http.StatusOK,
			wantCalled:     true,
			wantEmail:      "a@b.com",
		},
		{
			name:           "OPTIONS preflight passes without token",
			method:         http.MethodOptions,
			path:           "/api/subscriptions",
			authHeader:     "",
			wantStatusCode: http.StatusOK,
			wantCalled:     true,
		},
		{
			name:           "register path passes without token",
			method:         http.MethodPost,
			path:           "/api/users/register",
			authHeader:     "",
			wantStatusCode: http.StatusOK,
			wantCalled:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handlerCalled := false
			nextHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				handlerCalled = true
				if tt.wantEmail != "" {
					identity, ok := middlewarectx.IdentityFromContext(r.Context())
					assert.True(t, ok)
					assert.Equal(t, tt.wantEmail, identity.Email)
				}
				w.WriteHeader(http.StatusOK)
			})

			mw := middlewarectx.AuthMiddleware(token.NewUnverifiedExtractor(), newNoopLogger())(nextHandler)

			req := httptest.NewRequest(tt.method, tt.path, nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			rec := httptest.NewRecorder()
			mw.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatusCode, rec.Code)
			assert.Equal(t, tt.wantCalled, handlerCalled)
		})
	}
}

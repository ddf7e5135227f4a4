package subscoreapi

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/subscore/subscore-api/internal/config"
)

func TestNewCORS(t *testing.T) {
	handler := newCORS("http://localhost:3000").Handler(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	t.Run("preflight разрешает произвольный заголовок", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/api/subscriptions", nil)
		req.Header.Set("Origin", "http://localhost:3000")
		req.Header.Set("Access-Control-Request-Method", http.MethodPut)
		req.Header.Set("Access-Control-Request-Headers", "X-Request-Id")
		rr := httptest.NewRecorder()

		handler.ServeHTTP(rr, req)

		assert.Equal(t, "http://localhost:3000", rr.Header().Get("Access-Control-Allow-Origin"))
		assert.NotEmpty(t, rr.Header().Get("Access-Control-Allow-Headers"))
		assert.Equal(t, "true", rr.Header().Get("Access-Control-Allow-Credentials"))
	})

	t.Run("чужой origin не разрешается", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/api/subscriptions", nil)
		req.Header.Set("Origin", "http://evil.example.com")
		req.Header.Set("Access-Control-Request-Method", http.MethodGet)
		rr := httptest.NewRecorder()

		handler.ServeHTTP(rr, req)

		assert.Empty(t, rr.Header().Get("Access-Control-Allow-Origin"))
	})
}

func TestNewExtractor(t *testing.T) {
	t.Run("по умолчанию извлечение без проверки подписи", func(t *testing.T) {
		extractor, err := newExtractor(config.Auth{})
		assert.NoError(t, err)
		assert.NotNil(t, extractor)
	})

	t.Run("hs256 требует секрет", func(t *testing.T) {
		_, err := newExtractor(config.Auth{Mode: "hs256"})
		assert.Error(t, err)
	})

	t.Run("hs256 с секретом", func(t *testing.T) {
		extractor, err := newExtractor(config.Auth{Mode: "hs256", HS256Secret: "secret"})
		assert.NoError(t, err)
		assert.NotNil(t, extractor)
	})

	t.Run("неизвестный режим", func(t *testing.T) {
		_, err := newExtractor(config.Auth{Mode: "rs256"})
		assert.Error(t, err)
	})
}

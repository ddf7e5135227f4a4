package create

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/subscore/subscore-api/internal/http/middlewarectx"
	"github.com/subscore/subscore-api/internal/lib/token"
	"github.com/subscore/subscore-api/internal/models"
	"github.com/subscore/subscore-api/internal/storage/repository"
)

// MockService реализует интерфейс create.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) Create(ctx context.Context, email string, req models.DummySubscription) (*models.Subscription, error) {
	args := m.Called(ctx, email, req)
	if sub, ok := args.Get(0).(*models.Subscription); ok {
		return sub, args.Error(1)
	}
	return nil, args.Error(1)
}

func validRequest() models.DummySubscription {
	return models.DummySubscription{
		Name:         "Netflix",
		Price:        15,
		CategoryID:   "7e57d004-2b97-44e7-8f00-000000000001",
		BillingCycle: "monthly",
		PaymentDay:   15,
		Status:       "active",
	}
}

func TestCreateHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	tests := []struct {
		name           string
		requestBody    interface{}
		identity       *token.Identity
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:        "успешное создание подписки",
			requestBody: validRequest(),
			identity:    &token.Identity{Email: "user@example.com"},
			setupMock: func(m *MockService) {
				m.On("Create", mock.Anything, "user@example.com", mock.AnythingOfType("models.DummySubscription")).
					Return(&models.Subscription{
						ID:              "a2b8c334-8a4f-4f47-9c43-000000000001",
						Name:            "Netflix",
						Price:           15,
						BillingCycle:    "monthly",
						PaymentDay:      15,
						NextPaymentDate: time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC),
					}, nil)
			},
			expectedStatus: http.StatusCreated,
			expectedBody:   `"name":"Netflix"`,
		},
		{
			name: "бесплатная подписка с нулевой ценой",
			requestBody: func() models.DummySubscription {
				req := validRequest()
				req.Name = "Duolingo"
				req.Price = 0
				return req
			}(),
			identity: &token.Identity{Email: "user@example.com"},
			setupMock: func(m *MockService) {
				m.On("Create", mock.Anything, "user@example.com", mock.AnythingOfType("models.DummySubscription")).
					Return(&models.Subscription{
						ID:           "a2b8c334-8a4f-4f47-9c43-000000000002",
						Name:         "Duolingo",
						Price:        0,
						BillingCycle: "monthly",
						PaymentDay:   15,
					}, nil)
			},
			expectedStatus: http.StatusCreated,
			expectedBody:   `"price":0`,
		},
		{
			name:           "некорректный JSON",
			requestBody:    "not a json",
			identity:       &token.Identity{Email: "user@example.com"},
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"status":"Error","error":"invalid request body"}`,
		},
		{
			name: "ошибка валидации",
			requestBody: models.DummySubscription{
				Name:         "",
				Price:        0,
				CategoryID:   "not-a-uuid",
				BillingCycle: "weekly",
				PaymentDay:   0,
			},
			identity:       &token.Identity{Email: "user@example.com"},
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"status":"Error"`,
		},
		{
			name:           "отсутствует идентичность",
			requestBody:    validRequest(),
			identity:       nil,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `{"status":"Error","error":"unauthorized"}`,
		},
		{
			name:        "пользователь не зарегистрирован",
			requestBody: validRequest(),
			identity:    &token.Identity{Email: "ghost@example.com"},
			setupMock: func(m *MockService) {
				m.On("Create", mock.Anything, "ghost@example.com", mock.AnythingOfType("models.DummySubscription")).
					Return(nil, repository.ErrUserNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `{"status":"Error","error":"user not found"}`,
		},
		{
			name:        "ошибка сервиса",
			requestBody: validRequest(),
			identity:    &token.Identity{Email: "user@example.com"},
			setupMock: func(m *MockService) {
				m.On("Create", mock.Anything, "user@example.com", mock.AnythingOfType("models.DummySubscription")).
					Return(nil, errors.New("db error"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"status":"Error","error":"could not create subscription"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			var body []byte
			var err error
			if str, ok := tt.requestBody.(string); ok {
				body = []byte(str)
			} else {
				body, err = json.Marshal(tt.requestBody)
				assert.NoError(t, err)
			}

			req := httptest.NewRequest(http.MethodPost, "/subscriptions", bytes.NewReader(body))
			req.Header.Set("Content-Type", "application/json")

			ctx := context.WithValue(req.Context(), middleware.RequestIDKey, "req-id")
			if tt.identity != nil {
				ctx = context.WithValue(ctx, middlewarectx.CurrentIdentity, tt.identity)
			}
			req = req.WithContext(ctx)

			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedBody)

			mockService.AssertExpectations(t)
		})
	}
}

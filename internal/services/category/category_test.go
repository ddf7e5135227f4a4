package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/subscore/subscore-api/internal/models"
)

type RepoMock struct{ mock.Mock }

func (m *RepoMock) ListCategories(ctx context.Context) ([]*models.Category, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Category), args.Error(1)
}
func (m *RepoMock) ListCategoriesByIDs(ctx context.Context, ids []string) ([]*models.Category, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Category), args.Error(1)
}

type CacheMock struct{ mock.Mock }

func (m *CacheMock) Get(key string, result any) (bool, error) {
	args := m.Called(key, result)
	return args.Bool(0), args.Error(1)
}
func (m *CacheMock) Set(key string, value any, expiration time.Duration) error {
	return m.Called(key, value, expiration).Error(0)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestCategoryService_ListAll(t *testing.T) {
	categories := []*models.Category{
		{ID: "cat-1", Name: "Music"},
		{ID: "cat-2", Name: "Video"},
	}

	t.Run("cache miss reads storage and fills cache", func(t *testing.T) {
		r, ch := new(RepoMock), new(CacheMock)
		ch.On("Get", "categories:all", mock.Anything).Return(false, nil).Once()
		r.On("ListCategories", mock.Anything).Return(categories, nil).Once()
		ch.On("Set", "categories:all", mock.Anything, 12*time.Hour).Return(nil).Once()

		svc := NewCategoryService(r, ch, newNoopLogger())
		got, err := svc.ListAll(context.Background())

		assert.NoError(t, err)
		assert.Len(t, got, 2)
		r.AssertExpectations(t)
		ch.AssertExpectations(t)
	})

	t.Run("cache hit skips storage", func(t *testing.T) {
		r, ch := new(RepoMock), new(CacheMock)
		ch.On("Get", "categories:all", mock.Anything).Return(true, nil).Once()

		svc := NewCategoryService(r, ch, newNoopLogger())
		_, err := svc.ListAll(context.Background())

		assert.NoError(t, err)
		r.AssertNotCalled(t, "ListCategories")
		ch.AssertExpectations(t)
	})

	t.Run("storage failure", func(t *testing.T) {
		r, ch := new(RepoMock), new(CacheMock)
		ch.On("Get", "categories:all", mock.Anything).Return(false, nil).Once()
		r.On("ListCategories", mock.Anything).Return(nil, errors.New("db error")).Once()

		svc := NewCategoryService(r, ch, newNoopLogger())
		got, err := svc.ListAll(context.Background())

		assert.Error(t, err)
		assert.Nil(t, got)
		r.AssertExpectations(t)
	})
}

func TestCategoryService_ListByIDs(t *testing.T) {
	r, ch := new(RepoMock), new(CacheMock)
	r.On("ListCategoriesByIDs", mock.Anything, []string{"cat-1"}).
		Return([]*models.Category{{ID: "cat-1", Name: "Music"}}, nil).Once()

	svc := NewCategoryService(r, ch, newNoopLogger())
	got, err := svc.ListByIDs(context.Background(), []string{"cat-1"})

	assert.NoError(t, err)
	assert.Len(t, got, 1)
	r.AssertExpectations(t)
}

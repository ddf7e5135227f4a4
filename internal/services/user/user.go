// Package services содержит бизнес-логику справочника пользователей.
package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/subscore/subscore-api/internal/models"
	"github.com/subscore/subscore-api/internal/storage/repository"
)

// UserRepository определяет методы для работы с пользователями в хранилище.
type UserRepository interface {
	CreateUser(ctx context.Context, user models.User) error
	UpdateUser(ctx context.Context, user models.User) error
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserIDByEmail(ctx context.Context, email string) (string, error)
}

// UserService реализует регистрацию пользователей и поиск по email.
type UserService struct {
	repo UserRepository
	log  *slog.Logger
	now  func() time.Time
}

// NewUserService создает новый экземпляр UserService.
func NewUserService(repo UserRepository, log *slog.Logger) *UserService {
	return &UserService{
		repo: repo,
		log:  log,
		now:  time.Now,
	}
}

// Register регистрирует пользователя по email.
//
// Для уже известного email обновляются имя, аватар и updated_at,
// идентификатор сохраняется. Для нового email создаётся запись
// с новым ID и отметкой о подтверждении почты.
func (s *UserService) Register(ctx context.Context, req models.DummyUser) (*models.User, error) {
	existing, err := s.repo.GetUserByEmail(ctx, req.Email)
	if err != nil && !errors.Is(err, repository.ErrUserNotFound) {
		return nil, err
	}

	now := s.now()
	if existing != nil {
		existing.Name = req.Name
		existing.Image = req.Image
		existing.UpdatedAt = now
		if err := s.repo.UpdateUser(ctx, *existing); err != nil {
			return nil, err
		}
		s.log.Info("updated existing user", slog.String("id", existing.ID))
		return existing, nil
	}

	user := models.User{
		ID:            uuid.New().String(),
		Email:         req.Email,
		Name:          req.Name,
		Image:         req.Image,
		EmailVerified: &now,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.repo.CreateUser(ctx, user); err != nil {
		return nil, err
	}
	s.log.Info("registered new user", slog.String("id", user.ID))
	return &user, nil
}

// GetUserIDByEmail возвращает идентификатор пользователя по email.
func (s *UserService) GetUserIDByEmail(ctx context.Context, email string) (string, error) {
	return s.repo.GetUserIDByEmail(ctx, email)
}

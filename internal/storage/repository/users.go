package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/subscore/subscore-api/internal/models"
)

// CreateUser сохраняет нового пользователя в базу данных.
func (s *Storage) CreateUser(ctx context.Context, user models.User) error {
	const op = "storage.CreateUser"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO users (id, email, name, image, email_verified, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7)`
	if _, err := s.DB.ExecContext(ctx, query,
		user.ID, user.Email, user.Name, user.Image, user.EmailVerified,
		user.CreatedAt, user.UpdatedAt); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// UpdateUser обновляет имя, аватар и updated_at существующего пользователя.
// Идентификатор и email не меняются.
func (s *Storage) UpdateUser(ctx context.Context, user models.User) error {
	const op = "storage.UpdateUser"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE users
			  SET name = $1, image = $2, updated_at = $3
			  WHERE id = $4`
	result, err := s.DB.ExecContext(ctx, query, user.Name, user.Image, user.UpdatedAt, user.ID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("%s: %w", op, ErrUserNotFound)
	}
	return nil
}

// GetUserByEmail возвращает пользователя по его email.
func (s *Storage) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	const op = "storage.GetUserByEmail"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, email, name, image, email_verified, created_at, updated_at
			  FROM users
			  WHERE email = $1`
	u := &models.User{}
	row := s.DB.QueryRowContext(ctx, query, email)

	var emailVerified sql.NullTime
	err := row.Scan(&u.ID, &u.Email, &u.Name, &u.Image, &emailVerified,
		&u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", op, ErrUserNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if emailVerified.Valid {
		u.EmailVerified = &emailVerified.Time
	}
	return u, nil
}

// GetUserIDByEmail возвращает идентификатор пользователя по его email.
func (s *Storage) GetUserIDByEmail(ctx context.Context, email string) (string, error) {
	const op = "storage.GetUserIDByEmail"
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id FROM users WHERE email = $1`
	var id string
	err := s.DB.QueryRowContext(ctx, query, email).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("%s: %w", op, ErrUserNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return id, nil
}

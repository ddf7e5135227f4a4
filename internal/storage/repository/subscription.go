package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/subscore/subscore-api/internal/models"
)

const subscriptionColumns = `id, user_id, category_id, name, price, billing_cycle,
			      payment_day, next_payment_date, status, notification_enabled,
			      created_at, updated_at`

// CreateSubscription вставляет новую запись подписки и возвращает её ID.
func (s *Storage) CreateSubscription(ctx context.Context, sub models.Subscription) (string, error) {
	const op = "storage.CreateSubscription"
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO subscriptions (id, user_id, category_id, name, price, billing_cycle,
			      payment_day, next_payment_date, status, notification_enabled, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
			  RETURNING id`
	var newID string
	err := s.DB.QueryRowContext(ctx, query,
		sub.ID, sub.UserID, sub.CategoryID, sub.Name, sub.Price, sub.BillingCycle,
		sub.PaymentDay, sub.NextPaymentDate, sub.Status, sub.NotificationEnabled,
		sub.CreatedAt, sub.UpdatedAt).Scan(&newID)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// ListSubscriptions возвращает все записи подписок.
func (s *Storage) ListSubscriptions(ctx context.Context) ([]*models.Subscription, error) {
	const op = "storage.ListSubscriptions"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + subscriptionColumns + `
			  FROM subscriptions
			  ORDER BY created_at`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	return scanSubscriptions(rows, op)
}

// ListSubscriptionsByUser возвращает подписки одного пользователя.
func (s *Storage) ListSubscriptionsByUser(ctx context.Context, userID string) ([]*models.Subscription, error) {
	const op = "storage.ListSubscriptionsByUser"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + subscriptionColumns + `
			  FROM subscriptions
			  WHERE user_id = $1
			  ORDER BY created_at`
	rows, err := s.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	return scanSubscriptions(rows, op)
}

// UpdateSubscription перезаписывает изменяемые поля подписки одним запросом
// и возвращает обновлённую запись. ID, владелец и created_at не меняются,
// updated_at выставляется в now(). Конкурентные обновления одной записи дают
// last-write-wins без частичной записи.
func (s *Storage) UpdateSubscription(ctx context.Context, id string, sub models.Subscription) (*models.Subscription, error) {
	const op = "storage.UpdateSubscription"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE subscriptions
			  SET name = $1, price = $2, category_id = $3, billing_cycle = $4,
			      payment_day = $5, next_payment_date = $6, status = $7,
			      notification_enabled = $8, updated_at = now()
			  WHERE id = $9
			  RETURNING ` + subscriptionColumns
	row := s.DB.QueryRowContext(ctx, query,
		sub.Name, sub.Price, sub.CategoryID, sub.BillingCycle,
		sub.PaymentDay, sub.NextPaymentDate, sub.Status, sub.NotificationEnabled, id)

	updated, err := scanSubscription(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", op, ErrSubscriptionNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return updated, nil
}

// RemoveSubscription удаляет подписку по ID и возвращает ID её владельца.
func (s *Storage) RemoveSubscription(ctx context.Context, id string) (string, error) {
	const op = "storage.RemoveSubscription"
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `DELETE FROM subscriptions WHERE id = $1 RETURNING user_id`
	var userID string
	err := s.DB.QueryRowContext(ctx, query, id).Scan(&userID)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("%s: %w", op, ErrSubscriptionNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return userID, nil
}

// FindRemindersDueTomorrow находит активные подписки с включёнными
// уведомлениями, списание по которым наступает завтра.
func (s *Storage) FindRemindersDueTomorrow(ctx context.Context) ([]*models.ReminderInfo, error) {
	const op = "storage.FindRemindersDueTomorrow"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT
		          u.email,
			      u.name,
			      s.name,
			      s.price,
			      s.next_payment_date
			  FROM subscriptions s
			  JOIN users u ON s.user_id = u.id
			  WHERE s.notification_enabled = true
			    AND s.status = 'active'
			    AND s.next_payment_date = CURRENT_DATE + INTERVAL '1 day';`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.ReminderInfo
	for rows.Next() {
		var ri models.ReminderInfo
		if err := rows.Scan(&ri.Email, &ri.UserName, &ri.Name, &ri.Price,
			&ri.NextPaymentDate); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &ri)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// FindOverdueSubscriptions находит активные подписки,
// у которых дата следующего списания уже прошла.
func (s *Storage) FindOverdueSubscriptions(ctx context.Context) ([]*models.Subscription, error) {
	const op = "storage.FindOverdueSubscriptions"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + subscriptionColumns + `
			  FROM subscriptions
			  WHERE next_payment_date < CURRENT_DATE
			    AND status = 'active'`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	return scanSubscriptions(rows, op)
}

// UpdateNextPaymentDate выставляет новую дату следующего списания.
func (s *Storage) UpdateNextPaymentDate(ctx context.Context, id string, next time.Time) error {
	const op = "storage.UpdateNextPaymentDate"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE subscriptions
			  SET next_payment_date = $1, updated_at = now()
			  WHERE id = $2`
	result, err := s.DB.ExecContext(ctx, query, next, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("%s: %w", op, ErrSubscriptionNotFound)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSubscription(row rowScanner) (*models.Subscription, error) {
	var item models.Subscription
	if err := row.Scan(&item.ID, &item.UserID, &item.CategoryID, &item.Name, &item.Price,
		&item.BillingCycle, &item.PaymentDay, &item.NextPaymentDate, &item.Status,
		&item.NotificationEnabled, &item.CreatedAt, &item.UpdatedAt); err != nil {
		return nil, err
	}
	return &item, nil
}

func scanSubscriptions(rows *sql.Rows, op string) ([]*models.Subscription, error) {
	var result []*models.Subscription
	for rows.Next() {
		item, err := scanSubscription(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

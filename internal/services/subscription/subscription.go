// Package services содержит бизнес-логику для управления подписками и кешированием.
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/subscore/subscore-api/internal/lib/paydate"
	"github.com/subscore/subscore-api/internal/models"
)

// ErrInvalidNextPaymentDate — при обновлении дата следующего списания
// отсутствует или не соответствует формату 2006-01-02.
var ErrInvalidNextPaymentDate = errors.New("invalid next payment date")

// SubscriptionRepository определяет методы для работы с подписками в хранилище.
type SubscriptionRepository interface {
	// CreateSubscription добавляет новую подписку и возвращает её ID.
	CreateSubscription(ctx context.Context, sub models.Subscription) (string, error)
	// ListSubscriptions возвращает все подписки.
	ListSubscriptions(ctx context.Context) ([]*models.Subscription, error)
	// ListSubscriptionsByUser возвращает подписки одного пользователя.
	ListSubscriptionsByUser(ctx context.Context, userID string) ([]*models.Subscription, error)
	// UpdateSubscription перезаписывает изменяемые поля и возвращает запись.
	UpdateSubscription(ctx context.Context, id string, sub models.Subscription) (*models.Subscription, error)
	// RemoveSubscription удаляет подписку и возвращает ID владельца.
	RemoveSubscription(ctx context.Context, id string) (string, error)
}

// UserDirectory сопоставляет email пользователя с его идентификатором.
type UserDirectory interface {
	GetUserIDByEmail(ctx context.Context, email string) (string, error)
}

// CategoryDirectory — справочник категорий c выборкой по набору ID.
type CategoryDirectory interface {
	ListCategoriesByIDs(ctx context.Context, ids []string) ([]*models.Category, error)
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	// Get пытается получить значение из кеша по ключу.
	Get(key string, result any) (bool, error)
	// Set сохраняет значение в кеш с временем жизни.
	Set(key string, value any, expiration time.Duration) error
	// Invalidate удаляет значение из кеша по ключу.
	Invalidate(key string) error
}

// SubscriptionService реализует бизнес-логику работы с подписками, включая кеширование.
type SubscriptionService struct {
	repo       SubscriptionRepository
	users      UserDirectory
	categories CategoryDirectory
	cache      Cache
	log        *slog.Logger
	now        func() time.Time
}

// NewSubscriptionService создает новый экземпляр SubscriptionService.
func NewSubscriptionService(repo SubscriptionRepository, users UserDirectory,
	categories CategoryDirectory, cache Cache, log *slog.Logger) *SubscriptionService {
	return &SubscriptionService{
		repo:       repo,
		users:      users,
		categories: categories,
		cache:      cache,
		log:        log,
		now:        time.Now,
	}
}

// ListAll возвращает все подписки; пустой список — валидный результат.
func (s *SubscriptionService) ListAll(ctx context.Context) ([]*models.Subscription, error) {
	return s.repo.ListSubscriptions(ctx)
}

// Create создаёт подписку для пользователя с заданным email.
//
// ID, владелец, даты создания и следующего списания назначаются сервером:
// что бы клиент ни прислал в этих полях, оно игнорируется.
func (s *SubscriptionService) Create(ctx context.Context, email string, req models.DummySubscription) (*models.Subscription, error) {
	userID, err := s.users.GetUserIDByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	now := s.now()
	sub := models.Subscription{
		ID:                  uuid.New().String(),
		UserID:              userID,
		CategoryID:          req.CategoryID,
		Name:                req.Name,
		Price:               req.Price,
		BillingCycle:        req.BillingCycle,
		PaymentDay:          req.PaymentDay,
		NextPaymentDate:     paydate.Next(now, req.PaymentDay, req.BillingCycle),
		Status:              req.Status,
		NotificationEnabled: req.NotificationEnabled,
		CreatedAt:           now,
		UpdatedAt:           now,
	}

	if _, err := s.repo.CreateSubscription(ctx, sub); err != nil {
		return nil, err
	}
	s.log.Info("created new subscription", slog.String("id", sub.ID))

	s.invalidateUserCache(userID)
	return &sub, nil
}

// Update перезаписывает изменяемые поля подписки. Дата следующего списания
// берётся из запроса как есть и не пересчитывается.
func (s *SubscriptionService) Update(ctx context.Context, id string, req models.DummySubscription) (*models.Subscription, error) {
	nextPaymentDate, err := parseNextPaymentDate(req.NextPaymentDate)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidNextPaymentDate, err)
	}

	sub := models.Subscription{
		CategoryID:          req.CategoryID,
		Name:                req.Name,
		Price:               req.Price,
		BillingCycle:        req.BillingCycle,
		PaymentDay:          req.PaymentDay,
		NextPaymentDate:     nextPaymentDate,
		Status:              req.Status,
		NotificationEnabled: req.NotificationEnabled,
	}

	updated, err := s.repo.UpdateSubscription(ctx, id, sub)
	if err != nil {
		return nil, err
	}
	s.log.Info("updated subscription in storage", slog.String("id", id))

	s.invalidateUserCache(updated.UserID)
	return updated, nil
}

// parseNextPaymentDate разбирает дату следующего списания из запроса.
// Принимаются оба формата: "2006-01-02" и RFC3339 — клиент может вернуть
// запись в том виде, в котором сервер её отдал.
func parseNextPaymentDate(value string) (time.Time, error) {
	if parsed, err := time.Parse("2006-01-02", value); err == nil {
		return parsed, nil
	}
	return time.Parse(time.RFC3339, value)
}

// Remove удаляет подписку по ID и инвалидирует кеш её владельца.
func (s *SubscriptionService) Remove(ctx context.Context, id string) error {
	userID, err := s.repo.RemoveSubscription(ctx, id)
	if err != nil {
		return err
	}
	s.log.Info("removed subscription", slog.String("id", id))

	s.invalidateUserCache(userID)
	return nil
}

// ListByUser возвращает подписки пользователя с раскрытыми категориями.
// Для пользователя без подписок возвращается пустой список, не ошибка.
func (s *SubscriptionService) ListByUser(ctx context.Context, email string) ([]*models.SubscriptionView, error) {
	userID, err := s.users.GetUserIDByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	cacheKey := userCacheKey(userID)
	var cached []*models.SubscriptionView
	found, err := s.cache.Get(cacheKey, &cached)
	if err != nil {
		s.log.Warn("failed to read from cache", slog.String("key", cacheKey), slog.Any("err", err))
	}
	if found {
		return cached, nil
	}

	subs, err := s.repo.ListSubscriptionsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	categoryByID, err := s.categoriesForSubscriptions(ctx, subs)
	if err != nil {
		return nil, err
	}

	views := make([]*models.SubscriptionView, 0, len(subs))
	for _, sub := range subs {
		views = append(views, &models.SubscriptionView{
			ID:                  sub.ID,
			UserID:              sub.UserID,
			Category:            categoryByID[sub.CategoryID],
			Name:                sub.Name,
			Price:               sub.Price,
			BillingCycle:        sub.BillingCycle,
			PaymentDay:          sub.PaymentDay,
			NextPaymentDate:     sub.NextPaymentDate,
			Status:              sub.Status,
			NotificationEnabled: sub.NotificationEnabled,
			CreatedAt:           sub.CreatedAt,
			UpdatedAt:           sub.UpdatedAt,
		})
	}

	if err := s.cache.Set(cacheKey, views, time.Hour); err != nil {
		s.log.Warn("failed to cache subscriptions", slog.String("key", cacheKey), slog.Any("err", err))
	}
	return views, nil
}

func (s *SubscriptionService) categoriesForSubscriptions(ctx context.Context, subs []*models.Subscription) (map[string]models.Category, error) {
	seen := make(map[string]struct{}, len(subs))
	ids := make([]string, 0, len(subs))
	for _, sub := range subs {
		if _, ok := seen[sub.CategoryID]; ok {
			continue
		}
		seen[sub.CategoryID] = struct{}{}
		ids = append(ids, sub.CategoryID)
	}

	categories, err := s.categories.ListCategoriesByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	categoryByID := make(map[string]models.Category, len(categories))
	for _, category := range categories {
		categoryByID[category.ID] = *category
	}
	return categoryByID, nil
}

func (s *SubscriptionService) invalidateUserCache(userID string) {
	cacheKey := userCacheKey(userID)
	if err := s.cache.Invalidate(cacheKey); err != nil {
		s.log.Warn("failed to invalidate cache", slog.String("key", cacheKey), slog.Any("err", err))
	}
}

func userCacheKey(userID string) string {
	return fmt.Sprintf("subscriptions:user:%s", userID)
}

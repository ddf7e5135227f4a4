// Package services содержит планировщик напоминаний о предстоящих списаниях.
package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/streadway/amqp"

	"github.com/subscore/subscore-api/internal/lib/paydate"
	"github.com/subscore/subscore-api/internal/lib/sl"
	"github.com/subscore/subscore-api/internal/models"
	"github.com/subscore/subscore-api/internal/rabbitmq"
)

// SubscriptionRepository определяет доступ планировщика к хранилищу.
type SubscriptionRepository interface {
	FindRemindersDueTomorrow(ctx context.Context) ([]*models.ReminderInfo, error)
	FindOverdueSubscriptions(ctx context.Context) ([]*models.Subscription, error)
	UpdateNextPaymentDate(ctx context.Context, id string, next time.Time) error
}

// SchedulerService периодически публикует напоминания и
// продвигает просроченные даты списаний.
type SchedulerService struct {
	repo SubscriptionRepository
	log  *slog.Logger
	now  func() time.Time
}

// NewSchedulerService создает новый экземпляр SchedulerService.
func NewSchedulerService(repo SubscriptionRepository, log *slog.Logger) *SchedulerService {
	return &SchedulerService{
		repo: repo,
		log:  log,
		now:  time.Now,
	}
}

// Run запускает планировщик с заданным интервалом до отмены контекста.
// Ошибки одного тика логируются и не останавливают следующий.
func (s *SchedulerService) Run(ctx context.Context, channel *amqp.Channel, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.PublishDueTomorrow(ctx, channel)
			s.RollForwardOverdue(ctx)
		case <-ctx.Done():
			return
		}
	}
}

// PublishDueTomorrow находит подписки со списанием завтра и публикует
// напоминания в очередь уведомлений.
func (s *SchedulerService) PublishDueTomorrow(ctx context.Context, channel *amqp.Channel) {
	s.log.Info("starting search for subscriptions due tomorrow")
	reminders, err := s.repo.FindRemindersDueTomorrow(ctx)
	if err != nil {
		s.log.Error("failed to find due subscriptions", sl.Err(err))
		return
	}
	for _, reminder := range reminders {
		err = rabbitmq.PublishMessage(channel, rabbitmq.NotificationsExchange,
			rabbitmq.RemindersRoutingKey, reminder)
		if err != nil {
			s.log.Error("failed to publish reminder", sl.Err(err))
		}
	}
	s.log.Info("published reminders", slog.Int("count", len(reminders)))
}

// RollForwardOverdue пересчитывает прошедшие даты следующего списания
// активных подписок по их дню платежа и расчётному периоду.
func (s *SchedulerService) RollForwardOverdue(ctx context.Context) {
	overdue, err := s.repo.FindOverdueSubscriptions(ctx)
	if err != nil {
		s.log.Error("failed to find overdue subscriptions", sl.Err(err))
		return
	}
	for _, sub := range overdue {
		next := paydate.Next(s.now(), sub.PaymentDay, sub.BillingCycle)
		if err := s.repo.UpdateNextPaymentDate(ctx, sub.ID, next); err != nil {
			s.log.Error("failed to roll payment date forward",
				slog.String("id", sub.ID), sl.Err(err))
		}
	}
	if len(overdue) > 0 {
		s.log.Info("rolled forward overdue payment dates", slog.Int("count", len(overdue)))
	}
}

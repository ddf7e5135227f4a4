// Package models содержит доменные структуры: подписки, пользователей и категории,
// а также вспомогательные типы для приёма данных из JSON-запросов.
package models

import "time"

// Subscription представляет собой основную модель подписки,
// используемую в бизнес-логике и хранилище.
// NextPaymentDate вычисляется сервером при создании записи и
// при обновлении берётся из запроса как есть.
type Subscription struct {
	ID                  string    `json:"id"`                  // Уникальный идентификатор записи
	UserID              string    `json:"userId"`              // Идентификатор владельца
	CategoryID          string    `json:"categoryId"`          // Идентификатор категории
	Name                string    `json:"name"`                // Название сервиса подписки
	Price               int       `json:"price"`               // Цена за расчётный период
	BillingCycle        string    `json:"billingCycle"`        // monthly или yearly
	PaymentDay          int       `json:"paymentDate"`         // День месяца списания (1-31)
	NextPaymentDate     time.Time `json:"nextPaymentDate"`     // Дата следующего списания
	Status              string    `json:"status"`              // Статус подписки
	NotificationEnabled bool      `json:"notificationEnabled"` // Отправлять ли напоминания
	CreatedAt           time.Time `json:"createdAt"`
	UpdatedAt           time.Time `json:"updatedAt"`
}

// DummySubscription используется для приёма данных из JSON-запроса,
// прежде чем конвертировать их в Subscription.
// NextPaymentDate приходит строкой формата 2006-01-02 или RFC3339
// и учитывается только при обновлении: при создании дата вычисляется сервером.
type DummySubscription struct {
	Name                string `json:"name" validate:"required"`
	Price               int    `json:"price" validate:"min=0"`
	CategoryID          string `json:"categoryId" validate:"required,uuid"`
	BillingCycle        string `json:"billingCycle" validate:"required,oneof=monthly yearly"`
	PaymentDay          int    `json:"paymentDate" validate:"required,min=1,max=31"`
	NextPaymentDate     string `json:"nextPaymentDate,omitempty"`
	Status              string `json:"status" validate:"required"`
	NotificationEnabled bool   `json:"notificationEnabled"`
}

// SubscriptionView — представление подписки с раскрытой категорией,
// отдаётся при выборке подписок пользователя.
type SubscriptionView struct {
	ID                  string    `json:"id"`
	UserID              string    `json:"userId"`
	Category            Category  `json:"category"`
	Name                string    `json:"name"`
	Price               int       `json:"price"`
	BillingCycle        string    `json:"billingCycle"`
	PaymentDay          int       `json:"paymentDate"`
	NextPaymentDate     time.Time `json:"nextPaymentDate"`
	Status              string    `json:"status"`
	NotificationEnabled bool      `json:"notificationEnabled"`
	CreatedAt           time.Time `json:"createdAt"`
	UpdatedAt           time.Time `json:"updatedAt"`
}

// ReminderInfo — данные для письма-напоминания о предстоящем списании.
type ReminderInfo struct {
	Email           string    `json:"email"`
	UserName        string    `json:"user_name"`
	Name            string    `json:"name"`
	Price           int       `json:"price"`
	NextPaymentDate time.Time `json:"next_payment_date"`
}

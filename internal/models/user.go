package models

import "time"

// User представляет зарегистрированного пользователя системы.
// Email служит ключом поиска: повторная регистрация с тем же email
// обновляет имя и картинку, сохраняя идентификатор.
type User struct {
	ID            string     `json:"id"`            // Уникальный идентификатор пользователя
	Email         string     `json:"email"`         // Электронная почта (уникальная)
	Name          string     `json:"name"`          // Отображаемое имя
	Image         string     `json:"image"`         // URL аватара
	EmailVerified *time.Time `json:"emailVerified"` // Когда почта была подтверждена
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

// DummyUser используется для приёма данных регистрации из JSON-запроса.
type DummyUser struct {
	Email string `json:"email" validate:"required,email"`
	Name  string `json:"name"`
	Image string `json:"image"`
}

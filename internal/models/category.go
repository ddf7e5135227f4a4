package models

// Category — справочная категория подписок. Сервис её не создаёт и не меняет,
// записи заводятся миграциями.
type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

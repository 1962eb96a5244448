// Package models содержит доменные структуры сервиса Control Financiero:
// учетные записи подписчиков, уведомления, контакты, операции, котировки
// и события фискального календаря.
package models

import "time"

// Роли учетных записей.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// Account представляет учетную запись подписчика сервиса.
// Поле SubscriptionEndDate может быть nil — это означает, что подписка
// не управляется сервисом и учетная запись не участвует в ежедневной проверке.
type Account struct {
	UID                 string     // Уникальный идентификатор учетной записи
	Email               string     // Электронная почта (может быть пустой)
	Username            string     // Имя пользователя (уникальное)
	PasswordHash        string     // Хэш пароля
	FirstName           *string    // Имя (опционально)
	LastName            *string    // Фамилия (опционально)
	Role                string     // Роль: admin или user
	SubscriptionEndDate *time.Time // Дата окончания подписки (nil — подписка не управляется)
	IsSuspended         bool       // Признак блокировки за неоплату
	CreatedAt           time.Time  // Дата создания записи
}

// DisplayName возвращает отображаемое имя учетной записи, собранное из
// имени и фамилии. Если оба поля пустые, возвращает заглушку "Usuario".
func (a *Account) DisplayName() string {
	switch {
	case a.FirstName != nil && a.LastName != nil:
		return *a.FirstName + " " + *a.LastName
	case a.FirstName != nil:
		return *a.FirstName
	case a.LastName != nil:
		return *a.LastName
	default:
		return "Usuario"
	}
}

// IsAdmin сообщает, имеет ли учетная запись роль администратора.
func (a *Account) IsAdmin() bool {
	return a.Role == RoleAdmin
}

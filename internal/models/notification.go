package models

import "time"

// Виды внутренних уведомлений.
const (
	NotificationWarning = "warning"
	NotificationError   = "error"
	NotificationInfo    = "info"
)

// Notification представляет внутреннее уведомление, которое пользователь
// увидит при следующем входе в систему.
type Notification struct {
	ID         int       `json:"id"`
	AccountUID string    `json:"account_uid"`
	Title      string    `json:"title"`
	Message    string    `json:"message"`
	Kind       string    `json:"kind"` // warning, error или info
	IsRead     bool      `json:"is_read"`
	CreatedAt  time.Time `json:"created_at"`
}

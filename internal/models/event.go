package models

import "time"

// CalendarEvent представляет событие фискального календаря:
// срок подачи декларации, уплаты налога и т.п.
type CalendarEvent struct {
	ID          int       // Идентификатор события
	AccountUID  string    // Владелец записи
	Title       string    // Название события
	Description string    // Описание (может быть пустым)
	DueDate     time.Time // Дата наступления события
	CreatedAt   time.Time // Дата создания записи
}

// DummyCalendarEvent используется для приёма события из JSON-запроса.
type DummyCalendarEvent struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description,omitempty"`
	DueDate     string `json:"due_date" validate:"required,datetime=02-01-2006"`
}

// EventReminder — сообщение о приближающемся событии, публикуемое
// планировщиком в очередь и отправляемое пользователю по почте.
type EventReminder struct {
	Email       string    `json:"email"`
	DisplayName string    `json:"display_name"`
	Title       string    `json:"title"`
	DueDate     time.Time `json:"due_date"`
}

package rabbitmq

// QueueConfig описывает очередь и ключ маршрутизации для ее привязки.
type QueueConfig struct {
	QueueName  string
	RoutingKey string
}

// FiscalEventQueue — очередь напоминаний о событиях фискального календаря.
const FiscalEventQueue = "reminder.fiscal-event"

// GetReminderQueues возвращает конфигурацию очередей напоминаний.
func GetReminderQueues() []QueueConfig {
	return []QueueConfig{
		{QueueName: FiscalEventQueue, RoutingKey: "fiscal-event"},
	}
}

// Package dateutil содержит календарную арифметику для ежедневной проверки
// подписок. Все вычисления ведутся в UTC: дата окончания подписки хранится
// без времени, поэтому обе даты приводятся к полуночи UTC и разница между
// ними всегда кратна суткам.
package dateutil

import "time"

// Midnight приводит момент времени к полуночи того же календарного дня в UTC.
func Midnight(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// DaysUntil возвращает число целых дней от today до end.
// Отрицательное значение означает, что дата end уже прошла.
func DaysUntil(end, today time.Time) int {
	return int(Midnight(end).Sub(Midnight(today)) / (24 * time.Hour))
}

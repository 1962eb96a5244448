// Package services реализует бизнес-логику фискального календаря.
package services

import (
	"context"
	"fmt"
	"time"

	"github.com/magabrotheeeer/control-financiero/internal/models"
)

// EventRepository описывает методы хранилища для работы с событиями календаря.
type EventRepository interface {
	CreateEvent(ctx context.Context, event models.CalendarEvent) (int, error)
	ListEvents(ctx context.Context, accountUID string, limit, offset int) ([]*models.CalendarEvent, error)
	RemoveEvent(ctx context.Context, accountUID string, id int) (int, error)
}

// EventService реализует операции над событиями фискального календаря.
type EventService struct {
	repo EventRepository
}

// NewEventService создает новый сервис календаря.
func NewEventService(repo EventRepository) *EventService {
	return &EventService{repo: repo}
}

// Create сохраняет новое событие и возвращает его ID.
func (s *EventService) Create(ctx context.Context, accountUID string, req models.DummyCalendarEvent) (int, error) {
	dueDate, err := time.Parse("02-01-2006", req.DueDate)
	if err != nil {
		return 0, fmt.Errorf("invalid due date: %w", err)
	}
	return s.repo.CreateEvent(ctx, models.CalendarEvent{
		AccountUID:  accountUID,
		Title:       req.Title,
		Description: req.Description,
		DueDate:     dueDate,
	})
}

// List возвращает события учетной записи с пагинацией.
func (s *EventService) List(ctx context.Context, accountUID string, limit, offset int) ([]*models.CalendarEvent, error) {
	return s.repo.ListEvents(ctx, accountUID, limit, offset)
}

// Remove удаляет событие и возвращает количество удаленных записей.
func (s *EventService) Remove(ctx context.Context, accountUID string, id int) (int, error) {
	return s.repo.RemoveEvent(ctx, accountUID, id)
}

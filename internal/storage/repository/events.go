package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/magabrotheeeer/control-financiero/internal/models"
)

// CreateEvent сохраняет событие фискального календаря и возвращает его ID.
func (s *Storage) CreateEvent(ctx context.Context, event models.CalendarEvent) (int, error) {
	const op = "storage.CreateEvent"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var newID int
	query := `INSERT INTO calendar_events (account_uid, title, description, due_date)
			  VALUES ($1, $2, $3, $4)
			  RETURNING id;`
	if err := s.DB.QueryRowContext(ctx, query, event.AccountUID, event.Title,
		event.Description, event.DueDate).Scan(&newID); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// ListEvents возвращает события учетной записи по возрастанию даты.
func (s *Storage) ListEvents(ctx context.Context, accountUID string, limit, offset int) ([]*models.CalendarEvent, error) {
	const op = "storage.ListEvents"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, account_uid, title, description, due_date, created_at
			  FROM calendar_events
			  WHERE account_uid = $1
			  ORDER BY due_date
			  LIMIT $2 OFFSET $3`
	rows, err := s.DB.QueryContext(ctx, query, accountUID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()
	var result []*models.CalendarEvent
	for rows.Next() {
		var e models.CalendarEvent
		var description sql.NullString
		if err = rows.Scan(&e.ID, &e.AccountUID, &e.Title, &description,
			&e.DueDate, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if description.Valid {
			e.Description = description.String
		}
		result = append(result, &e)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// RemoveEvent удаляет событие. Возвращает количество удаленных записей.
func (s *Storage) RemoveEvent(ctx context.Context, accountUID string, id int) (int, error) {
	const op = "storage.RemoveEvent"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `DELETE FROM calendar_events WHERE id = $1 AND account_uid = $2`
	res, err := s.DB.ExecContext(ctx, query, id, accountUID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(affected), nil
}

// FindEventsDueTomorrow возвращает напоминания по событиям, наступающим завтра,
// вместе с данными владельца для отправки письма.
func (s *Storage) FindEventsDueTomorrow(ctx context.Context) ([]*models.EventReminder, error) {
	const op = "storage.FindEventsDueTomorrow"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT a.email, COALESCE(NULLIF(TRIM(CONCAT(a.first_name, ' ', a.last_name)), ''), 'Usuario'),
			      e.title, e.due_date
			  FROM calendar_events e
			  JOIN accounts a ON a.uid = e.account_uid
			  WHERE e.due_date::DATE = CURRENT_DATE + INTERVAL '1 day'
			    AND a.email IS NOT NULL`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()
	var result []*models.EventReminder
	for rows.Next() {
		var r models.EventReminder
		if err = rows.Scan(&r.Email, &r.DisplayName, &r.Title, &r.DueDate); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &r)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/magabrotheeeer/control-financiero/internal/models"
)

// CreateContact сохраняет контакт (клиента или поставщика) и возвращает его ID.
func (s *Storage) CreateContact(ctx context.Context, contact models.Contact) (int, error) {
	const op = "storage.CreateContact"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var newID int
	query := `INSERT INTO contacts (account_uid, name, kind, tax_id, person_type, email, phone)
			  VALUES ($1, $2, $3, $4, $5, $6, $7)
			  RETURNING id;`
	if err := s.DB.QueryRowContext(ctx, query, contact.AccountUID, contact.Name,
		contact.Kind, contact.TaxID, contact.PersonType, contact.Email, contact.Phone).Scan(&newID); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// ReadContact возвращает контакт по ID в рамках учетной записи.
func (s *Storage) ReadContact(ctx context.Context, accountUID string, id int) (*models.Contact, error) {
	const op = "storage.ReadContact"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, account_uid, name, kind, tax_id, person_type, email, phone, created_at
			  FROM contacts
			  WHERE id = $1 AND account_uid = $2`
	c := &models.Contact{}
	var email, phone sql.NullString
	row := s.DB.QueryRowContext(ctx, query, id, accountUID)
	if err := row.Scan(&c.ID, &c.AccountUID, &c.Name, &c.Kind, &c.TaxID,
		&c.PersonType, &email, &phone, &c.CreatedAt); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if email.Valid {
		c.Email = &email.String
	}
	if phone.Valid {
		c.Phone = &phone.String
	}
	return c, nil
}

// ListContacts возвращает контакты учетной записи с пагинацией.
func (s *Storage) ListContacts(ctx context.Context, accountUID string, limit, offset int) ([]*models.Contact, error) {
	const op = "storage.ListContacts"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, account_uid, name, kind, tax_id, person_type, email, phone, created_at
			  FROM contacts
			  WHERE account_uid = $1
			  ORDER BY name
			  LIMIT $2 OFFSET $3`
	rows, err := s.DB.QueryContext(ctx, query, accountUID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()
	var result []*models.Contact
	for rows.Next() {
		var c models.Contact
		var email, phone sql.NullString
		if err = rows.Scan(&c.ID, &c.AccountUID, &c.Name, &c.Kind, &c.TaxID,
			&c.PersonType, &email, &phone, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if email.Valid {
			c.Email = &email.String
		}
		if phone.Valid {
			c.Phone = &phone.String
		}
		result = append(result, &c)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// UpdateContact обновляет данные контакта.
// Возвращает количество обновленных записей.
func (s *Storage) UpdateContact(ctx context.Context, contact models.Contact) (int, error) {
	const op = "storage.UpdateContact"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE contacts
			  SET name = $1, kind = $2, tax_id = $3, person_type = $4, email = $5, phone = $6
			  WHERE id = $7 AND account_uid = $8`
	res, err := s.DB.ExecContext(ctx, query, contact.Name, contact.Kind, contact.TaxID,
		contact.PersonType, contact.Email, contact.Phone, contact.ID, contact.AccountUID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(affected), nil
}

// RemoveContact удаляет контакт. Возвращает количество удаленных записей.
func (s *Storage) RemoveContact(ctx context.Context, accountUID string, id int) (int, error) {
	const op = "storage.RemoveContact"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `DELETE FROM contacts WHERE id = $1 AND account_uid = $2`
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

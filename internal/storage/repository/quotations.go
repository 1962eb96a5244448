package repository

import (
	"context"
	"fmt"

	"github.com/magabrotheeeer/control-financiero/internal/models"
)

// NextFolio выдает следующий номер котировки учетной записи за указанный год
// в формате COT-<год>-<номер>. Счетчик ведется строкой в quotation_folios;
// UPSERT делает выдачу безопасной при параллельных запросах.
func (s *Storage) NextFolio(ctx context.Context, accountUID string, year int) (string, error) {
	const op = "storage.NextFolio"
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var seq int
	query := `INSERT INTO quotation_folios (account_uid, year, last_seq)
			  VALUES ($1, $2, 1)
			  ON CONFLICT (account_uid, year)
			  DO UPDATE SET last_seq = quotation_folios.last_seq + 1
			  RETURNING last_seq;`
	if err := s.DB.QueryRowContext(ctx, query, accountUID, year).Scan(&seq); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return fmt.Sprintf("COT-%d-%04d", year, seq), nil
}

// CreateQuotation сохраняет котировку вместе с позициями в одной транзакции
// и возвращает её ID.
func (s *Storage) CreateQuotation(ctx context.Context, q models.Quotation) (int, error) {
	const op = "storage.CreateQuotation"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	var newID int
	query := `INSERT INTO quotations (account_uid, contact_id, folio, status,
			      subtotal, vat, total, valid_until)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			  RETURNING id;`
	if err = tx.QueryRowContext(ctx, query, q.AccountUID, q.ContactID, q.Folio,
		q.Status, q.Subtotal, q.VAT, q.Total, q.ValidUntil).Scan(&newID); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	itemQuery := `INSERT INTO quotation_items (uid, quotation_id, description, quantity, unit_price, amount)
			  VALUES ($1, $2, $3, $4, $5, $6)`
	for _, item := range q.Items {
		if _, err = tx.ExecContext(ctx, itemQuery, item.UID, newID,
			item.Description, item.Quantity, item.UnitPrice, item.Amount); err != nil {
			return 0, fmt.Errorf("%s: %w", op, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// ReadQuotation возвращает котировку с позициями.
func (s *Storage) ReadQuotation(ctx context.Context, accountUID string, id int) (*models.Quotation, error) {
	const op = "storage.ReadQuotation"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, account_uid, contact_id, folio, status, subtotal, vat,
			      total, valid_until, created_at
			  FROM quotations
			  WHERE id = $1 AND account_uid = $2`
	q := &models.Quotation{}
	row := s.DB.QueryRowContext(ctx, query, id, accountUID)
	if err := row.Scan(&q.ID, &q.AccountUID, &q.ContactID, &q.Folio, &q.Status,
		&q.Subtotal, &q.VAT, &q.Total, &q.ValidUntil, &q.CreatedAt); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	itemQuery := `SELECT uid, description, quantity, unit_price, amount
			  FROM quotation_items
			  WHERE quotation_id = $1
			  ORDER BY uid`
	rows, err := s.DB.QueryContext(ctx, itemQuery, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()
	for rows.Next() {
		var item models.QuotationItem
		if err = rows.Scan(&item.UID, &item.Description, &item.Quantity,
			&item.UnitPrice, &item.Amount); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		q.Items = append(q.Items, item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return q, nil
}

// ListQuotations возвращает котировки учетной записи, опционально по статусу.
func (s *Storage) ListQuotations(ctx context.Context, accountUID string, status *string, limit, offset int) ([]*models.Quotation, error) {
	const op = "storage.ListQuotations"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, account_uid, contact_id, folio, status, subtotal, vat,
			      total, valid_until, created_at
			  FROM quotations
			  WHERE account_uid = $1 AND ($2::text IS NULL OR status = $2)
			  ORDER BY created_at DESC
			  LIMIT $3 OFFSET $4`
	rows, err := s.DB.QueryContext(ctx, query, accountUID, status, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()
	var result []*models.Quotation
	for rows.Next() {
		var q models.Quotation
		if err = rows.Scan(&q.ID, &q.AccountUID, &q.ContactID, &q.Folio, &q.Status,
			&q.Subtotal, &q.VAT, &q.Total, &q.ValidUntil, &q.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &q)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// UpdateQuotationStatus переводит котировку из ожидаемого статуса в новый.
// Условие по текущему статусу не дает параллельным запросам применить
// один и тот же переход дважды. Возвращает количество обновленных записей.
func (s *Storage) UpdateQuotationStatus(ctx context.Context, accountUID string, id int, fromStatus, toStatus string) (int, error) {
	const op = "storage.UpdateQuotationStatus"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE quotations
			  SET status = $1
			  WHERE id = $2 AND account_uid = $3 AND status = $4`
	res, err := s.DB.ExecContext(ctx, query, toStatus, id, accountUID, fromStatus)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(affected), nil
}

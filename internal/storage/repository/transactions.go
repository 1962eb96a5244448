package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/magabrotheeeer/control-financiero/internal/models"
)

// CreateTransaction сохраняет финансовую операцию и возвращает её ID.
func (s *Storage) CreateTransaction(ctx context.Context, tr models.Transaction) (int, error) {
	const op = "storage.CreateTransaction"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var newID int
	query := `INSERT INTO transactions (account_uid, contact_id, kind, concept,
			      total, subtotal, vat, vat_rate, date)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			  RETURNING id;`
	if err := s.DB.QueryRowContext(ctx, query, tr.AccountUID, tr.ContactID, tr.Kind,
		tr.Concept, tr.Total, tr.Subtotal, tr.VAT, tr.VATRate, tr.Date).Scan(&newID); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// ListTransactions возвращает операции учетной записи с пагинацией, новые первыми.
func (s *Storage) ListTransactions(ctx context.Context, accountUID string, limit, offset int) ([]*models.Transaction, error) {
	const op = "storage.ListTransactions"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, account_uid, contact_id, kind, concept, total, subtotal,
			      vat, vat_rate, date, created_at
			  FROM transactions
			  WHERE account_uid = $1
			  ORDER BY date DESC, id DESC
			  LIMIT $2 OFFSET $3`
	rows, err := s.DB.QueryContext(ctx, query, accountUID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()
	var result []*models.Transaction
	for rows.Next() {
		var tr models.Transaction
		var contactID sql.NullInt64
		if err = rows.Scan(&tr.ID, &tr.AccountUID, &contactID, &tr.Kind, &tr.Concept,
			&tr.Total, &tr.Subtotal, &tr.VAT, &tr.VATRate, &tr.Date, &tr.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if contactID.Valid {
			id := int(contactID.Int64)
			tr.ContactID = &id
		}
		result = append(result, &tr)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// RemoveTransaction удаляет операцию. Возвращает количество удаленных записей.
func (s *Storage) RemoveTransaction(ctx context.Context, accountUID string, id int) (int, error) {
	const op = "storage.RemoveTransaction"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `DELETE FROM transactions WHERE id = $1 AND account_uid = $2`
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

// MonthlySummary агрегирует операции учетной записи за указанный месяц:
// доходы, расходы и суммы НДС по каждому направлению.
func (s *Storage) MonthlySummary(ctx context.Context, accountUID string, year, month int) (*models.MonthlySummary, error) {
	const op = "storage.MonthlySummary"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT
			      COALESCE(SUM(total)    FILTER (WHERE kind = 'ingreso'), 0),
			      COALESCE(SUM(total)    FILTER (WHERE kind = 'gasto'), 0),
			      COALESCE(SUM(vat)      FILTER (WHERE kind = 'ingreso'), 0),
			      COALESCE(SUM(vat)      FILTER (WHERE kind = 'gasto'), 0)
			  FROM transactions
			  WHERE account_uid = $1
			    AND EXTRACT(YEAR FROM date) = $2
			    AND EXTRACT(MONTH FROM date) = $3`
	sum := &models.MonthlySummary{Year: year, Month: month}
	row := s.DB.QueryRowContext(ctx, query, accountUID, year, month)
	if err := row.Scan(&sum.Income, &sum.Expenses, &sum.VATCollected, &sum.VATPaid); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	sum.Balance = sum.Income.Sub(sum.Expenses)
	return sum, nil
}

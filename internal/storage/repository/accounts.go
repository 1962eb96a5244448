package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/magabrotheeeer/control-financiero/internal/models"
)

const accountColumns = `uid, email, username, password_hash, first_name, last_name,
			      role, subscription_end_date, is_suspended, created_at`

func scanAccount(row interface{ Scan(dest ...any) error }) (*models.Account, error) {
	a := &models.Account{}
	var email sql.NullString
	var firstName, lastName sql.NullString
	var endDate sql.NullTime
	if err := row.Scan(&a.UID, &email, &a.Username, &a.PasswordHash, &firstName,
		&lastName, &a.Role, &endDate, &a.IsSuspended, &a.CreatedAt); err != nil {
		return nil, err
	}
	if email.Valid {
		a.Email = email.String
	}
	if firstName.Valid {
		a.FirstName = &firstName.String
	}
	if lastName.Valid {
		a.LastName = &lastName.String
	}
	if endDate.Valid {
		d := endDate.Time
		a.SubscriptionEndDate = &d
	}
	return a, nil
}

// RegisterAccount сохраняет новую учетную запись и возвращает её UID.
func (s *Storage) RegisterAccount(ctx context.Context, account models.Account) (string, error) {
	const op = "storage.RegisterAccount"
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var newUID string
	query := `INSERT INTO accounts (email, username, password_hash, first_name, last_name,
			      role, subscription_end_date)
			  VALUES ($1, $2, $3, $4, $5, $6, $7)
			  RETURNING uid;`
	if err := s.DB.QueryRowContext(ctx, query,
		account.Email, account.Username, account.PasswordHash, account.FirstName,
		account.LastName, account.Role, account.SubscriptionEndDate).Scan(&newUID); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return newUID, nil
}

// GetAccountByUsername возвращает учетную запись по username.
func (s *Storage) GetAccountByUsername(ctx context.Context, username string) (*models.Account, error) {
	const op = "storage.GetAccountByUsername"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + accountColumns + `
			  FROM accounts
			  WHERE username = $1`
	a, err := scanAccount(s.DB.QueryRowContext(ctx, query, username))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return a, nil
}

// GetAccount возвращает учетную запись по её UID.
func (s *Storage) GetAccount(ctx context.Context, accountUID string) (*models.Account, error) {
	const op = "storage.GetAccount"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + accountColumns + `
			  FROM accounts
			  WHERE uid = $1`
	a, err := scanAccount(s.DB.QueryRowContext(ctx, query, accountUID))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return a, nil
}

// ListAccounts возвращает все учетные записи с пагинацией (для админ-панели).
func (s *Storage) ListAccounts(ctx context.Context, limit, offset int) ([]*models.Account, error) {
	const op = "storage.ListAccounts"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + accountColumns + `
			  FROM accounts
			  ORDER BY created_at
			  LIMIT $1 OFFSET $2`
	rows, err := s.DB.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()
	var result []*models.Account
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, a)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// ListAccountsWithSubscription возвращает учетные записи, у которых задана
// дата окончания подписки.
func (s *Storage) ListAccountsWithSubscription(ctx context.Context) ([]*models.Account, error) {
	const op = "storage.ListAccountsWithSubscription"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + accountColumns + `
			  FROM accounts
			  WHERE subscription_end_date IS NOT NULL`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()
	var result []*models.Account
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, a)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// ListAdminAccountUIDs возвращает множество UID учетных записей с ролью admin.
func (s *Storage) ListAdminAccountUIDs(ctx context.Context) (map[string]struct{}, error) {
	const op = "storage.ListAdminAccountUIDs"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT uid FROM accounts WHERE role = 'admin'`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()
	result := make(map[string]struct{})
	for rows.Next() {
		var uid string
		if err = rows.Scan(&uid); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result[uid] = struct{}{}
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// ResolveEmail возвращает электронную почту учетной записи.
// Пустая строка означает, что адрес не задан.
func (s *Storage) ResolveEmail(ctx context.Context, accountUID string) (string, error) {
	const op = "storage.ResolveEmail"
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var email sql.NullString
	query := `SELECT email FROM accounts WHERE uid = $1`
	if err := s.DB.QueryRowContext(ctx, query, accountUID).Scan(&email); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	if !email.Valid {
		return "", nil
	}
	return email.String, nil
}

// SuspendAccount устанавливает флаг блокировки, только если он сейчас снят.
// Возвращает true, если флаг был переключен этим вызовом. Условный UPDATE
// не дает двум параллельным запускам применить блокировку дважды.
func (s *Storage) SuspendAccount(ctx context.Context, accountUID string) (bool, error) {
	const op = "storage.SuspendAccount"
	select {
	case <-ctx.Done():
		return false, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE accounts
			  SET is_suspended = TRUE
			  WHERE uid = $1 AND is_suspended = FALSE`
	res, err := s.DB.ExecContext(ctx, query, accountUID)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return affected > 0, nil
}

// ReactivateAccount снимает флаг блокировки (только ручное действие администратора).
func (s *Storage) ReactivateAccount(ctx context.Context, accountUID string) error {
	const op = "storage.ReactivateAccount"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE accounts
			  SET is_suspended = FALSE
			  WHERE uid = $1`
	_, err := s.DB.ExecContext(ctx, query, accountUID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// UpdateSubscriptionEndDate обновляет дату окончания подписки.
// nil снимает дату, выводя учетную запись из ежедневной проверки.
func (s *Storage) UpdateSubscriptionEndDate(ctx context.Context, accountUID string, endDate *time.Time) error {
	const op = "storage.UpdateSubscriptionEndDate"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE accounts
			  SET subscription_end_date = $1
			  WHERE uid = $2`
	_, err := s.DB.ExecContext(ctx, query, endDate, accountUID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Package services содержит логику бизнес-уровня для аутентификации
// и создания учетных записей.
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/magabrotheeeer/control-financiero/internal/lib/jwt"
	"github.com/magabrotheeeer/control-financiero/internal/lib/password"
	"github.com/magabrotheeeer/control-financiero/internal/models"
)

// ErrSuspended возвращается при попытке входа заблокированной учетной записи.
// Снять блокировку может только администратор.
var ErrSuspended = errors.New("account is suspended")

// ErrInvalidCredentials возвращается при неверном пароле.
var ErrInvalidCredentials = errors.New("invalid credentials")

// AccountRepository описывает контракт для работы с учетными записями в базе данных.
type AccountRepository interface {
	// RegisterAccount сохраняет новую учетную запись и возвращает её UID.
	RegisterAccount(ctx context.Context, account models.Account) (string, error)

	// GetAccountByUsername возвращает учетную запись по имени или ошибку, если не найдена.
	GetAccountByUsername(ctx context.Context, username string) (*models.Account, error)
}

// AuthService отвечает за создание учетных записей, авторизацию и валидацию JWT.
type AuthService struct {
	accounts AccountRepository
	jwtMaker jwt.Maker
}

// NewAuthService создает новый экземпляр AuthService.
func NewAuthService(accounts AccountRepository, jwtMaker jwt.Maker) *AuthService {
	return &AuthService{
		accounts: accounts,
		jwtMaker: jwtMaker,
	}
}

// Register создает новую учетную запись с хэшированием пароля.
// Учетные записи заводит администратор, поэтому роль передается явно.
func (s *AuthService) Register(ctx context.Context, account models.Account, rawPassword string) (string, error) {
	const op = "auth.Register"
	hashed, err := password.GetHash(rawPassword)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	account.PasswordHash = hashed
	if account.Role == "" {
		account.Role = models.RoleUser
	}
	return s.accounts.RegisterAccount(ctx, account)
}

// Login проверяет пароль пользователя и генерирует JWT.
// Заблокированные учетные записи не допускаются к входу.
func (s *AuthService) Login(ctx context.Context, username, rawPassword string) (token, role string, err error) {
	account, err := s.accounts.GetAccountByUsername(ctx, username)
	if err != nil {
		return "", "", err
	}
	if err := password.CompareHash(account.PasswordHash, rawPassword); err != nil {
		return "", "", ErrInvalidCredentials
	}
	if account.IsSuspended {
		return "", "", ErrSuspended
	}
	token, err = s.jwtMaker.GenerateToken(account.Username, account.Role, account.UID)
	if err != nil {
		return "", "", err
	}
	return token, account.Role, nil
}

// ValidateToken проверяет JWT и возвращает claims с данными пользователя.
func (s *AuthService) ValidateToken(_ context.Context, token string) (*jwt.CustomClaims, error) {
	return s.jwtMaker.ParseToken(token)
}

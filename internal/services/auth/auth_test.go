package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/control-financiero/internal/lib/jwt"
	"github.com/magabrotheeeer/control-financiero/internal/lib/password"
	"github.com/magabrotheeeer/control-financiero/internal/models"
)

type RepoMock struct{ mock.Mock }

func (m *RepoMock) RegisterAccount(ctx context.Context, account models.Account) (string, error) {
	args := m.Called(ctx, account)
	return args.String(0), args.Error(1)
}

func (m *RepoMock) GetAccountByUsername(ctx context.Context, username string) (*models.Account, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Account), args.Error(1)
}

func newMaker() jwt.Maker {
	return jwt.NewJWTMaker("test-secret", time.Hour)
}

func TestRegister_HashesPasswordAndDefaultsRole(t *testing.T) {
	repo := new(RepoMock)
	service := NewAuthService(repo, newMaker())

	repo.On("RegisterAccount", mock.Anything, mock.MatchedBy(func(a models.Account) bool {
		return a.Role == models.RoleUser &&
			a.PasswordHash != "" &&
			password.CompareHash(a.PasswordHash, "secreto123") == nil
	})).Return("uid-1", nil).Once()

	uid, err := service.Register(context.Background(), models.Account{Username: "ana"}, "secreto123")

	require.NoError(t, err)
	assert.Equal(t, "uid-1", uid)
	repo.AssertExpectations(t)
}

func TestLogin(t *testing.T) {
	hash, err := password.GetHash("secreto123")
	require.NoError(t, err)

	tests := []struct {
		name    string
		account *models.Account
		repoErr error
		pass    string
		wantErr error
	}{
		{
			name: "success",
			account: &models.Account{
				UID: "uid-1", Username: "ana", PasswordHash: hash, Role: models.RoleUser,
			},
			pass: "secreto123",
		},
		{
			name: "wrong password",
			account: &models.Account{
				UID: "uid-1", Username: "ana", PasswordHash: hash, Role: models.RoleUser,
			},
			pass:    "otra",
			wantErr: ErrInvalidCredentials,
		},
		{
			name: "suspended account is refused",
			account: &models.Account{
				UID: "uid-1", Username: "ana", PasswordHash: hash,
				Role: models.RoleUser, IsSuspended: true,
			},
			pass:    "secreto123",
			wantErr: ErrSuspended,
		},
		{
			name:    "unknown user",
			repoErr: errors.New("no rows"),
			pass:    "secreto123",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(RepoMock)
			service := NewAuthService(repo, newMaker())

			if tt.repoErr != nil {
				repo.On("GetAccountByUsername", mock.Anything, "ana").Return(nil, tt.repoErr).Once()
			} else {
				repo.On("GetAccountByUsername", mock.Anything, "ana").Return(tt.account, nil).Once()
			}

			token, role, err := service.Login(context.Background(), "ana", tt.pass)

			switch {
			case tt.repoErr != nil:
				assert.Error(t, err)
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, token)
			default:
				require.NoError(t, err)
				assert.Equal(t, models.RoleUser, role)

				claims, err := service.ValidateToken(context.Background(), token)
				require.NoError(t, err)
				assert.Equal(t, "ana", claims.Username)
				assert.Equal(t, "uid-1", claims.AccountUID)
			}
		})
	}
}

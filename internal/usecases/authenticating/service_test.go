package authenticating

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/goal-tracker-api/infrastructure/repository/mocks"
	"github.com/vfg2006/goal-tracker-api/internal/config"
	"github.com/vfg2006/goal-tracker-api/internal/domain"
	"github.com/vfg2006/goal-tracker-api/pkg/apiErrors"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"
)

const validPassword = "Senha@123"

func hash(t *testing.T, password string) string {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hashed)
}

func setup(t *testing.T) (*mocks.MockUserRepository, *Service) {
	ctrl := gomock.NewController(t)
	userRepo := mocks.NewMockUserRepository(ctrl)

	cfg := &config.Config{Auth: config.Auth{Secret: "segredo-de-teste", TokenTTL: time.Hour}}
	return userRepo, NewService(userRepo, cfg)
}

func assertAuthError(t *testing.T, err error, target error, code string) {
	t.Helper()
	require.Error(t, err)
	assert.ErrorIs(t, err, target)

	var authErr *AuthError
	require.True(t, errors.As(err, &authErr))
	assert.Equal(t, code, authErr.Code)
}

func TestService_LoginUser(t *testing.T) {
	tests := []struct {
		name        string
		email       string
		password    string
		user        *domain.User
		expectedErr error
		expectedCod string
	}{
		{
			name:     "Login com sucesso",
			email:    "  Ana@Empresa.com ",
			password: validPassword,
			user:     &domain.User{ID: 1, Name: "Ana", Email: "ana@empresa.com", Active: true, RoleID: domain.RoleManager},
		},
		{
			name:        "Usuário inexistente",
			email:       "ana@empresa.com",
			password:    validPassword,
			expectedErr: ErrUserNotFound,
			expectedCod: apiErrors.ErrUserNotFound,
		},
		{
			name:        "Usuário inativo",
			email:       "ana@empresa.com",
			password:    validPassword,
			user:        &domain.User{ID: 1, Active: false},
			expectedErr: ErrUserDisabled,
			expectedCod: apiErrors.ErrUserDisabled,
		},
		{
			name:        "Senha incorreta",
			email:       "ana@empresa.com",
			password:    "Outra@123",
			user:        &domain.User{ID: 1, Active: true},
			expectedErr: ErrInvalidCredentials,
			expectedCod: apiErrors.ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			userRepo, service := setup(t)

			if tt.user != nil {
				tt.user.PasswordHash = hash(t, validPassword)
			}
			userRepo.EXPECT().GetUserByEmail(gomock.Any(), "ana@empresa.com").Return(tt.user, nil)

			token, err := service.LoginUser(context.Background(), tt.email, tt.password)

			if tt.expectedErr != nil {
				assertAuthError(t, err, tt.expectedErr, tt.expectedCod)
				return
			}

			require.NoError(t, err)

			claims, err := service.ValidateToken(token)
			require.NoError(t, err)
			assert.Equal(t, 1, claims.UserID)
			assert.Equal(t, domain.RoleManager, claims.UserRoleID)
		})
	}
}

func TestService_LoginUser_MissingData(t *testing.T) {
	_, service := setup(t)

	_, err := service.LoginUser(context.Background(), "", "")
	assertAuthError(t, err, ErrMissingRequiredData, apiErrors.ErrMissingRequiredData)
}

func TestService_ValidateToken(t *testing.T) {
	t.Run("Token expirado", func(t *testing.T) {
		_, service := setup(t)
		service.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }

		token, err := service.generateJWT(&domain.User{ID: 1})
		require.NoError(t, err)

		_, err = service.ValidateToken(token)
		assertAuthError(t, err, ErrExpiredToken, apiErrors.ErrExpiredToken)
	})

	t.Run("Token assinado com outro segredo", func(t *testing.T) {
		_, service := setup(t)
		token, err := service.generateJWT(&domain.User{ID: 1})
		require.NoError(t, err)

		service.cfg = &config.Config{Auth: config.Auth{Secret: "outro"}}

		_, err = service.ValidateToken(token)
		assertAuthError(t, err, ErrInvalidToken, apiErrors.ErrInvalidToken)
	})

	t.Run("Token malformado", func(t *testing.T) {
		_, service := setup(t)

		_, err := service.ValidateToken("abc.def")
		assertAuthError(t, err, ErrInvalidToken, apiErrors.ErrInvalidToken)
	})
}

func TestService_CreateUser(t *testing.T) {
	t.Run("Cria usuário inativo com perfil comercial", func(t *testing.T) {
		userRepo, service := setup(t)

		userRepo.EXPECT().GetUserByEmail(gomock.Any(), "bia@empresa.com").Return(nil, nil)
		userRepo.EXPECT().CreateUser(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, user *domain.User) (*domain.User, error) {
				assert.False(t, user.Active)
				assert.Equal(t, domain.RoleSales, user.RoleID)
				assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(validPassword)))
				user.ID = 5
				return user, nil
			})

		user, err := service.CreateUser(context.Background(), &domain.User{
			Name:         "Bia",
			Lastname:     "Lima",
			Email:        "Bia@Empresa.com",
			PasswordHash: validPassword,
		})
		require.NoError(t, err)
		assert.Equal(t, 5, user.ID)
		assert.Empty(t, user.PasswordHash)
	})

	t.Run("Email já cadastrado", func(t *testing.T) {
		userRepo, service := setup(t)
		userRepo.EXPECT().GetUserByEmail(gomock.Any(), "bia@empresa.com").Return(&domain.User{ID: 2}, nil)

		_, err := service.CreateUser(context.Background(), &domain.User{
			Name: "Bia", Lastname: "Lima", Email: "bia@empresa.com", PasswordHash: validPassword,
		})
		assertAuthError(t, err, ErrUserAlreadyExists, apiErrors.ErrUserAlreadyExists)
	})

	t.Run("Senha fraca", func(t *testing.T) {
		userRepo, service := setup(t)
		userRepo.EXPECT().GetUserByEmail(gomock.Any(), "bia@empresa.com").Return(nil, nil)

		_, err := service.CreateUser(context.Background(), &domain.User{
			Name: "Bia", Lastname: "Lima", Email: "bia@empresa.com", PasswordHash: "123",
		})
		assertAuthError(t, err, ErrWeakPassword, apiErrors.ErrInvalidFormat)
	})
}

func TestService_ChangePassword(t *testing.T) {
	t.Run("Troca a senha", func(t *testing.T) {
		userRepo, service := setup(t)
		userRepo.EXPECT().GetUserByID(gomock.Any(), 1).Return(&domain.User{ID: 1, PasswordHash: hash(t, validPassword)}, nil)
		userRepo.EXPECT().UpdateUser(gomock.Any(), gomock.Any()).Return(nil)

		assert.NoError(t, service.ChangePassword(context.Background(), 1, validPassword, "Nova#Senha9"))
	})

	t.Run("Senha atual incorreta", func(t *testing.T) {
		userRepo, service := setup(t)
		userRepo.EXPECT().GetUserByID(gomock.Any(), 1).Return(&domain.User{ID: 1, PasswordHash: hash(t, validPassword)}, nil)

		err := service.ChangePassword(context.Background(), 1, "errada", "Nova#Senha9")
		assertAuthError(t, err, ErrPasswordMismatch, apiErrors.ErrInvalidCredentials)
	})

	t.Run("Nova senha igual à atual", func(t *testing.T) {
		userRepo, service := setup(t)
		userRepo.EXPECT().GetUserByID(gomock.Any(), 1).Return(&domain.User{ID: 1, PasswordHash: hash(t, validPassword)}, nil)

		err := service.ChangePassword(context.Background(), 1, validPassword, validPassword)
		assertAuthError(t, err, ErrSamePassword, apiErrors.ErrInvalidRequest)
	})
}

func TestService_GenerateStrongPassword(t *testing.T) {
	t.Run("Administrador gera senha válida", func(t *testing.T) {
		userRepo, service := setup(t)
		userRepo.EXPECT().GetUserByID(gomock.Any(), 1).Return(&domain.User{ID: 1, RoleID: domain.RoleAdmin}, nil)
		userRepo.EXPECT().GetUserByID(gomock.Any(), 2).Return(&domain.User{ID: 2}, nil)
		userRepo.EXPECT().UpdateUser(gomock.Any(), gomock.Any()).Return(nil)

		password, err := service.GenerateStrongPassword(context.Background(), 1, 2)
		require.NoError(t, err)
		assert.Len(t, password, 12)
		assert.NoError(t, service.ValidatePasswordStrength(password))
	})

	t.Run("Gestor não pode gerar senha", func(t *testing.T) {
		userRepo, service := setup(t)
		userRepo.EXPECT().GetUserByID(gomock.Any(), 1).Return(&domain.User{ID: 1, RoleID: domain.RoleManager}, nil)

		_, err := service.GenerateStrongPassword(context.Background(), 1, 2)
		assertAuthError(t, err, ErrNoAdminPrivileges, apiErrors.ErrInsufficientPrivilege)
		assert.True(t, IsAuthorizationError(err))
	})
}

func TestService_ValidatePasswordStrength(t *testing.T) {
	_, service := setup(t)

	tests := []struct {
		name     string
		password string
		valid    bool
	}{
		{name: "Senha forte", password: validPassword, valid: true},
		{name: "Curta", password: "Ab@1", valid: false},
		{name: "Sem maiúscula", password: "senha@123", valid: false},
		{name: "Sem minúscula", password: "SENHA@123", valid: false},
		{name: "Sem número", password: "Senha@abc", valid: false},
		{name: "Sem caractere especial", password: "Senha1234", valid: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := service.ValidatePasswordStrength(tt.password)
			if tt.valid {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, ErrWeakPassword)
		})
	}
}

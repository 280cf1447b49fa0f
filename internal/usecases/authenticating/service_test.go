package authenticating

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"

	"github.com/gonqgg-debug/facturAI-sub006/infrastructure/repository/mocks"
	"github.com/gonqgg-debug/facturAI-sub006/internal/config"
	"github.com/gonqgg-debug/facturAI-sub006/internal/domain"
)

func testConfig() *config.Config {
	return &config.Config{
		Auth: config.Auth{Secret: "secreto-de-prueba"},
	}
}

func hashPIN(t *testing.T, pin string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(pin), bcrypt.MinCost)
	assert.NoError(t, err)
	return string(hash)
}

func activeUser(t *testing.T) *domain.User {
	return &domain.User{
		ID:       7,
		Name:     "María",
		Lastname: "Peralta",
		Username: "maria",
		PINHash:  hashPIN(t, "1234"),
		Active:   true,
		RoleID:   domain.RoleCajero,
	}
}

func TestService_LoginUser(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	t.Run("login con PIN correcto emite token válido", func(t *testing.T) {
		userRepo := mocks.NewMockUserRepository(ctrl)
		userRepo.EXPECT().GetUserByUsername("maria").Return(activeUser(t), nil)

		service := NewService(userRepo, testConfig())
		token, err := service.LoginUser("Maria ", "1234")

		assert.NoError(t, err)
		assert.NotEmpty(t, token)

		claims, err := service.ValidateToken(token)
		assert.NoError(t, err)
		assert.Equal(t, 7, claims.UserID)
		assert.Equal(t, domain.RoleCajero, claims.UserRoleID)
	})

	t.Run("PIN incorrecto acumula el intento fallido", func(t *testing.T) {
		userRepo := mocks.NewMockUserRepository(ctrl)
		user := activeUser(t)
		userRepo.EXPECT().GetUserByUsername("maria").Return(user, nil)
		userRepo.EXPECT().UpdateUser(gomock.Any()).DoAndReturn(func(updated *domain.User) error {
			assert.Equal(t, 1, updated.FailedAttempts)
			assert.Nil(t, updated.LockedUntil)
			return nil
		})

		service := NewService(userRepo, testConfig())
		_, err := service.LoginUser("maria", "9999")

		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("el quinto intento fallido bloquea la cuenta", func(t *testing.T) {
		userRepo := mocks.NewMockUserRepository(ctrl)
		user := activeUser(t)
		user.FailedAttempts = 4
		userRepo.EXPECT().GetUserByUsername("maria").Return(user, nil)
		userRepo.EXPECT().UpdateUser(gomock.Any()).DoAndReturn(func(updated *domain.User) error {
			assert.NotNil(t, updated.LockedUntil)
			assert.Equal(t, 0, updated.FailedAttempts)
			return nil
		})

		service := NewService(userRepo, testConfig())
		_, err := service.LoginUser("maria", "9999")

		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("cuenta bloqueada rechaza el login aunque el PIN sea correcto", func(t *testing.T) {
		userRepo := mocks.NewMockUserRepository(ctrl)
		user := activeUser(t)
		lockedUntil := time.Now().Add(10 * time.Minute)
		user.LockedUntil = &lockedUntil
		userRepo.EXPECT().GetUserByUsername("maria").Return(user, nil)

		service := NewService(userRepo, testConfig())
		_, err := service.LoginUser("maria", "1234")

		assert.ErrorIs(t, err, ErrUserLocked)
		assert.True(t, IsCredentialsError(err))
	})

	t.Run("bloqueo vencido permite el login y reinicia el contador", func(t *testing.T) {
		userRepo := mocks.NewMockUserRepository(ctrl)
		user := activeUser(t)
		lockedUntil := time.Now().Add(-time.Minute)
		user.LockedUntil = &lockedUntil
		userRepo.EXPECT().GetUserByUsername("maria").Return(user, nil)
		userRepo.EXPECT().UpdateUser(gomock.Any()).DoAndReturn(func(updated *domain.User) error {
			assert.Nil(t, updated.LockedUntil)
			assert.Equal(t, 0, updated.FailedAttempts)
			return nil
		})

		service := NewService(userRepo, testConfig())
		token, err := service.LoginUser("maria", "1234")

		assert.NoError(t, err)
		assert.NotEmpty(t, token)
	})

	t.Run("usuario desactivado es rechazado", func(t *testing.T) {
		userRepo := mocks.NewMockUserRepository(ctrl)
		user := activeUser(t)
		user.Active = false
		userRepo.EXPECT().GetUserByUsername("maria").Return(user, nil)

		service := NewService(userRepo, testConfig())
		_, err := service.LoginUser("maria", "1234")

		assert.ErrorIs(t, err, ErrUserDisabled)
	})

	t.Run("usuario inexistente", func(t *testing.T) {
		userRepo := mocks.NewMockUserRepository(ctrl)
		userRepo.EXPECT().GetUserByUsername("fantasma").Return(nil, nil)

		service := NewService(userRepo, testConfig())
		_, err := service.LoginUser("fantasma", "1234")

		assert.ErrorIs(t, err, ErrUserNotFound)
	})
}

func TestService_CreateUser(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	t.Run("alta con rol por defecto de cajero", func(t *testing.T) {
		userRepo := mocks.NewMockUserRepository(ctrl)
		userRepo.EXPECT().GetUserByUsername("pedro").Return(nil, nil)
		userRepo.EXPECT().CreateUser(gomock.Any()).DoAndReturn(func(user *domain.User) (*domain.User, error) {
			assert.Equal(t, domain.RoleCajero, user.RoleID)
			assert.False(t, user.Active)
			assert.NotEqual(t, "4321", user.PINHash)
			user.ID = 12
			return user, nil
		})

		service := NewService(userRepo, testConfig())
		user, err := service.CreateUser(&domain.User{Name: "Pedro", Username: "Pedro"}, "4321")

		assert.NoError(t, err)
		assert.Equal(t, 12, user.ID)
	})

	t.Run("nombre de usuario duplicado", func(t *testing.T) {
		userRepo := mocks.NewMockUserRepository(ctrl)
		userRepo.EXPECT().GetUserByUsername("maria").Return(activeUser(t), nil)

		service := NewService(userRepo, testConfig())
		_, err := service.CreateUser(&domain.User{Name: "María", Username: "maria"}, "4321")

		assert.ErrorIs(t, err, ErrUserAlreadyExists)
	})

	t.Run("PIN no numérico es rechazado", func(t *testing.T) {
		userRepo := mocks.NewMockUserRepository(ctrl)

		service := NewService(userRepo, testConfig())
		_, err := service.CreateUser(&domain.User{Name: "Pedro", Username: "pedro"}, "abcd")

		assert.ErrorIs(t, err, ErrWeakPIN)
	})

	t.Run("PIN demasiado corto es rechazado", func(t *testing.T) {
		userRepo := mocks.NewMockUserRepository(ctrl)

		service := NewService(userRepo, testConfig())
		_, err := service.CreateUser(&domain.User{Name: "Pedro", Username: "pedro"}, "123")

		assert.ErrorIs(t, err, ErrWeakPIN)
	})
}

func TestService_ValidateToken_Invalido(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	userRepo := mocks.NewMockUserRepository(ctrl)
	service := NewService(userRepo, testConfig())

	_, err := service.ValidateToken("no-es-un-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
	assert.True(t, IsAuthorizationError(err))
}

func TestService_ChangePIN(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	t.Run("cambio con PIN actual correcto", func(t *testing.T) {
		userRepo := mocks.NewMockUserRepository(ctrl)
		userRepo.EXPECT().GetUserByID(7).Return(activeUser(t), nil)
		userRepo.EXPECT().UpdateUser(gomock.Any()).Return(nil)

		service := NewService(userRepo, testConfig())
		err := service.ChangePIN(7, "1234", "5678")

		assert.NoError(t, err)
	})

	t.Run("PIN actual incorrecto", func(t *testing.T) {
		userRepo := mocks.NewMockUserRepository(ctrl)
		userRepo.EXPECT().GetUserByID(7).Return(activeUser(t), nil)

		service := NewService(userRepo, testConfig())
		err := service.ChangePIN(7, "0000", "5678")

		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestService_ResetPIN(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	t.Run("el administrador reinicia el PIN y desbloquea la cuenta", func(t *testing.T) {
		userRepo := mocks.NewMockUserRepository(ctrl)
		admin := &domain.User{ID: 1, RoleID: domain.RoleAdmin, Active: true}
		locked := activeUser(t)
		lockedUntil := time.Now().Add(10 * time.Minute)
		locked.LockedUntil = &lockedUntil

		userRepo.EXPECT().GetUserByID(1).Return(admin, nil)
		userRepo.EXPECT().GetUserByID(7).Return(locked, nil)
		userRepo.EXPECT().UpdateUser(gomock.Any()).DoAndReturn(func(updated *domain.User) error {
			assert.Nil(t, updated.LockedUntil)
			assert.Equal(t, 0, updated.FailedAttempts)
			return nil
		})

		service := NewService(userRepo, testConfig())
		err := service.ResetPIN(1, 7, "8765")

		assert.NoError(t, err)
	})

	t.Run("un cajero no puede reiniciar PIN ajeno", func(t *testing.T) {
		userRepo := mocks.NewMockUserRepository(ctrl)
		userRepo.EXPECT().GetUserByID(7).Return(activeUser(t), nil)

		service := NewService(userRepo, testConfig())
		err := service.ResetPIN(7, 1, "8765")

		assert.ErrorIs(t, err, ErrInsufficientPrivilege)
	})
}

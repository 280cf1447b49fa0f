package authenticating

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/gonqgg-debug/facturAI-sub006/infrastructure/repository"
	"github.com/gonqgg-debug/facturAI-sub006/internal/config"
	"github.com/gonqgg-debug/facturAI-sub006/internal/domain"
	"github.com/gonqgg-debug/facturAI-sub006/pkg/apiErrors"
)

const (
	// Intentos fallidos antes de bloquear la cuenta y duración del bloqueo
	maxFailedAttempts = 5
	lockoutDuration   = 15 * time.Minute

	tokenLifetime = 12 * time.Hour
	minPINLength  = 4
)

type Authenticator interface {
	CreateUser(user *domain.User, pin string) (*domain.User, error)
	UpdateUser(user *domain.UpdateUserRequest) error
	ListUser() ([]*domain.User, error)
	LoginUser(username, pin string) (string, error)
	GetUserProfile(userID int) (*domain.User, error)
	ValidateToken(tokenString string) (*domain.Claims, error)
	ChangePIN(userID int, currentPIN, newPIN string) error
	ResetPIN(requestUserID, targetUserID int, newPIN string) error
}

type Service struct {
	userRepo repository.UserRepository
	cfg      *config.Config
}

func NewService(userRepo repository.UserRepository, cfg *config.Config) Authenticator {
	return &Service{
		userRepo: userRepo,
		cfg:      cfg,
	}
}

// CreateUser da de alta un usuario del punto de venta con su PIN. El usuario
// nace desactivado hasta que un administrador lo habilite.
func (s *Service) CreateUser(user *domain.User, pin string) (*domain.User, error) {
	if user.Username == "" || user.Name == "" || pin == "" {
		return nil, NewAuthError(ErrMissingRequiredData, apiErrors.ErrMissingRequiredData, "Usuario, nombre y PIN son obligatorios")
	}

	if err := validatePIN(pin); err != nil {
		return nil, NewAuthError(err, apiErrors.ErrInvalidFormat, "El PIN no cumple los requisitos")
	}

	user.Username = handleUsername(user.Username)

	existing, err := s.userRepo.GetUserByUsername(user.Username)
	if err != nil {
		return nil, NewAuthError(err, apiErrors.ErrDatabaseOperation, "Error al consultar el usuario")
	}
	if existing != nil {
		return nil, NewAuthError(ErrUserAlreadyExists, apiErrors.ErrUserAlreadyExists, "El nombre de usuario ya está registrado")
	}

	hashedPIN, err := bcrypt.GenerateFromPassword([]byte(pin), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	if user.RoleID == 0 {
		user.RoleID = domain.RoleCajero
	}

	user.PINHash = string(hashedPIN)
	user.Active = false

	user, err = s.userRepo.CreateUser(user)
	if err != nil {
		return nil, NewAuthError(err, apiErrors.ErrDatabaseOperation, "Error al crear el usuario")
	}

	return user, nil
}

func (s *Service) UpdateUser(user *domain.UpdateUserRequest) error {
	if user.ID == 0 {
		return NewAuthError(ErrInvalidRequest, apiErrors.ErrMissingRequiredData, "El ID es obligatorio")
	}

	userDatabase, err := s.userRepo.GetUserByID(user.ID)
	if err != nil {
		return err
	}
	if userDatabase == nil {
		return NewAuthError(ErrUserNotFound, apiErrors.ErrUserNotFound, fmt.Sprintf("usuario %d", user.ID))
	}

	if user.Name != nil {
		userDatabase.Name = *user.Name
	}

	if user.Lastname != nil {
		userDatabase.Lastname = *user.Lastname
	}

	if user.Username != nil {
		userDatabase.Username = handleUsername(*user.Username)
	}

	if user.Active != nil {
		userDatabase.Active = *user.Active
	}

	if user.RoleID != nil {
		userDatabase.RoleID = *user.RoleID
	}

	if user.Deleted != nil {
		now := time.Now()
		userDatabase.Deleted = *user.Deleted
		userDatabase.DeletedAt = &now
	}

	return s.userRepo.UpdateUser(userDatabase)
}

func (s *Service) ListUser() ([]*domain.User, error) {
	return s.userRepo.ListUser()
}

// LoginUser valida el PIN del usuario y emite el token de sesión. Tras varios
// intentos fallidos consecutivos la cuenta queda bloqueada por un tiempo.
func (s *Service) LoginUser(username, pin string) (string, error) {
	if username == "" || pin == "" {
		return "", NewAuthError(ErrMissingRequiredData, apiErrors.ErrMissingRequiredData, "Usuario y PIN son obligatorios")
	}

	username = handleUsername(username)

	user, err := s.userRepo.GetUserByUsername(username)
	if err != nil {
		return "", NewAuthError(err, apiErrors.ErrDatabaseOperation, "Error al consultar el usuario")
	}

	if user == nil {
		return "", NewAuthError(ErrUserNotFound, apiErrors.ErrUserNotFound, "Usuario no encontrado")
	}

	if !user.Active || user.Deleted {
		return "", NewUserAuthError(ErrUserDisabled, apiErrors.ErrUserDisabled, user.ID, "Cuenta desactivada")
	}

	now := time.Now()
	if user.LockedUntil != nil && now.Before(*user.LockedUntil) {
		return "", NewUserAuthError(ErrUserLocked, apiErrors.ErrUserLocked, user.ID,
			fmt.Sprintf("Cuenta bloqueada hasta %s", user.LockedUntil.Format(time.Kitchen)))
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PINHash), []byte(pin)); err != nil {
		s.registerFailedAttempt(user, now)
		return "", NewUserAuthError(ErrInvalidCredentials, apiErrors.ErrInvalidCredentials, user.ID, "PIN incorrecto")
	}

	if user.FailedAttempts > 0 || user.LockedUntil != nil {
		user.FailedAttempts = 0
		user.LockedUntil = nil
		if err := s.userRepo.UpdateUser(user); err != nil {
			logrus.WithError(err).WithField("user_id", user.ID).
				Warn("Error al reiniciar los intentos fallidos del usuario")
		}
	}

	token, err := generateJWT(user, s.cfg.Auth.Secret)
	if err != nil {
		return "", NewAuthError(err, apiErrors.ErrInternalServer, "Error al generar el token de autenticación")
	}

	return token, nil
}

// registerFailedAttempt acumula el intento fallido y bloquea la cuenta al
// llegar al límite
func (s *Service) registerFailedAttempt(user *domain.User, now time.Time) {
	user.FailedAttempts++
	if user.FailedAttempts >= maxFailedAttempts {
		lockedUntil := now.Add(lockoutDuration)
		user.LockedUntil = &lockedUntil
		user.FailedAttempts = 0
		logrus.WithField("user_id", user.ID).Warn("Usuario bloqueado por intentos fallidos")
	}

	if err := s.userRepo.UpdateUser(user); err != nil {
		logrus.WithError(err).WithField("user_id", user.ID).
			Error("Error al registrar el intento fallido")
	}
}

func (s *Service) GetUserProfile(userID int) (*domain.User, error) {
	user, err := s.userRepo.GetUserByID(userID)
	if err != nil {
		logrus.Error(err)
		return nil, err
	}
	if user == nil {
		return nil, NewAuthError(ErrUserNotFound, apiErrors.ErrUserNotFound, fmt.Sprintf("usuario %d", userID))
	}

	user.PINHash = ""
	return user, nil
}

func generateJWT(user *domain.User, secret string) (string, error) {
	claims := domain.Claims{
		UserID:       user.ID,
		UserName:     user.Name,
		UserLastname: user.Lastname,
		UserUsername: user.Username,
		UserActive:   user.Active,
		UserRoleID:   user.RoleID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(tokenLifetime)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

func (s *Service) ValidateToken(tokenString string) (*domain.Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &domain.Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de firma inesperado: %v", token.Header["alg"])
		}
		return []byte(s.cfg.Auth.Secret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, NewAuthError(ErrExpiredToken, apiErrors.ErrExpiredToken, "")
		}
		return nil, NewAuthError(ErrInvalidToken, apiErrors.ErrInvalidToken, err.Error())
	}

	claims, ok := token.Claims.(*domain.Claims)
	if !ok || !token.Valid {
		return nil, NewAuthError(ErrInvalidToken, apiErrors.ErrInvalidToken, "")
	}

	return claims, nil
}

// ChangePIN permite que un usuario cambie su propio PIN verificando el actual
func (s *Service) ChangePIN(userID int, currentPIN, newPIN string) error {
	user, err := s.userRepo.GetUserByID(userID)
	if err != nil {
		return err
	}
	if user == nil {
		return NewAuthError(ErrUserNotFound, apiErrors.ErrUserNotFound, fmt.Sprintf("usuario %d", userID))
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PINHash), []byte(currentPIN)); err != nil {
		return NewUserAuthError(ErrInvalidCredentials, apiErrors.ErrInvalidCredentials, user.ID, "PIN actual incorrecto")
	}

	if err := validatePIN(newPIN); err != nil {
		return NewAuthError(err, apiErrors.ErrInvalidFormat, "El PIN nuevo no cumple los requisitos")
	}

	hashedPIN, err := bcrypt.GenerateFromPassword([]byte(newPIN), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	user.PINHash = string(hashedPIN)
	return s.userRepo.UpdateUser(user)
}

// ResetPIN permite que un administrador asigne un PIN nuevo a otro usuario,
// desbloqueando la cuenta si estaba bloqueada
func (s *Service) ResetPIN(requestUserID, targetUserID int, newPIN string) error {
	requestUser, err := s.userRepo.GetUserByID(requestUserID)
	if err != nil {
		return err
	}
	if requestUser == nil || requestUser.RoleID != domain.RoleAdmin {
		return NewAuthError(ErrInsufficientPrivilege, apiErrors.ErrInsufficientPrivilege,
			"Solo los administradores pueden reiniciar el PIN")
	}

	targetUser, err := s.userRepo.GetUserByID(targetUserID)
	if err != nil {
		return err
	}
	if targetUser == nil {
		return NewAuthError(ErrUserNotFound, apiErrors.ErrUserNotFound, fmt.Sprintf("usuario %d", targetUserID))
	}

	if err := validatePIN(newPIN); err != nil {
		return NewAuthError(err, apiErrors.ErrInvalidFormat, "El PIN nuevo no cumple los requisitos")
	}

	hashedPIN, err := bcrypt.GenerateFromPassword([]byte(newPIN), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	targetUser.PINHash = string(hashedPIN)
	targetUser.FailedAttempts = 0
	targetUser.LockedUntil = nil
	return s.userRepo.UpdateUser(targetUser)
}

// validatePIN exige un PIN numérico de al menos cuatro dígitos
func validatePIN(pin string) error {
	if len(pin) < minPINLength {
		return ErrWeakPIN
	}
	for _, char := range pin {
		if char < '0' || char > '9' {
			return ErrWeakPIN
		}
	}
	return nil
}

func handleUsername(s string) string {
	username := strings.ToLower(s)
	username = strings.TrimSpace(username)
	username = strings.ReplaceAll(username, " ", "")
	return username
}

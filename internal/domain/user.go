package domain

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Roles del colmado
const (
	RoleAdmin    = 1 // Dueño / administrador
	RoleCajero   = 2 // Cajero del punto de venta
	RoleContable = 3 // Contable (reportes y diario)
)

type User struct {
	ID             int        `json:"id"`
	Name           string     `json:"name"`
	Lastname       string     `json:"lastname"`
	Username       string     `json:"username"`
	PINHash        string     `json:"-"`
	Active         bool       `json:"active"`
	RoleID         int        `json:"role_id"`
	FailedAttempts int        `json:"-"`
	LockedUntil    *time.Time `json:"-"`
	Deleted        bool       `json:"deleted"`
	DeletedAt      *time.Time `json:"deleted_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

type UpdateUserRequest struct {
	ID       int     `json:"id"`
	Name     *string `json:"name"`
	Lastname *string `json:"lastname"`
	Username *string `json:"username"`
	Active   *bool   `json:"active"`
	RoleID   *int    `json:"role_id"`
	Deleted  *bool   `json:"deleted"`
}

type Claims struct {
	UserID       int
	UserName     string
	UserLastname string
	UserUsername string
	UserActive   bool
	UserRoleID   int
	jwt.RegisteredClaims
}

package entity

import "time"

// Roles válidos para User.
const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

// WelcomeBonus saldo inicial de tokens asignado al registrarse.
const WelcomeBonus = 100

// User representa una cuenta registrada.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Role         string
	TokenBalance int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

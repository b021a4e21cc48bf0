package entity

import "time"

// Identity es el usuario autenticado resuelto a partir del token de la petición.
type Identity struct {
	UserID       string
	Name         string
	Email        string
	Role         string
	TokenBalance int
	TokenID      string
	ExpiresAt    time.Time
}

package repository

import (
	"context"

	"github.com/jhoicas/autopublish-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User (DIP).
// Los métodos Get devuelven (nil, nil) cuando el usuario no existe.
type UserRepository interface {
	// Create persiste el usuario; email duplicado devuelve domain.ErrEmailAlreadyExists.
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	Count(ctx context.Context) (int, error)
}

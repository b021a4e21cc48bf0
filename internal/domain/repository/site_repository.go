package repository

import (
	"context"

	"github.com/jhoicas/autopublish-api/internal/domain/entity"
)

// SiteRepository define el puerto de persistencia para Site.
// Toda lectura o escritura sobre un sitio concreto filtra por id y user_id en la misma consulta.
type SiteRepository interface {
	// Create persiste el sitio; (user_id, url) duplicado devuelve domain.ErrConflict.
	Create(ctx context.Context, site *entity.Site) error
	// GetByIDForOwner devuelve (nil, nil) si el sitio no existe o pertenece a otro usuario.
	GetByIDForOwner(ctx context.Context, id, ownerID string) (*entity.Site, error)
	// ListByOwner lista los sitios del usuario (más recientes primero) con sus conteos.
	ListByOwner(ctx context.Context, ownerID string) ([]*entity.Site, error)
	// ExistsByURL indica si el usuario ya tiene un sitio con esa URL, excluyendo excludeID si no está vacío.
	ExistsByURL(ctx context.Context, ownerID, url, excludeID string) (bool, error)
	// Update persiste los cambios; devuelve domain.ErrNotFound si no hay fila (id, user_id)
	// y domain.ErrConflict si la nueva URL choca con otro sitio del usuario.
	Update(ctx context.Context, site *entity.Site) error
	// Delete elimina el sitio del usuario; domain.ErrNotFound si no hay fila (id, user_id).
	Delete(ctx context.Context, id, ownerID string) error
}

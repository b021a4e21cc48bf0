package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/autopublish-api/internal/domain"
	"github.com/jhoicas/autopublish-api/internal/domain/entity"
	"github.com/jhoicas/autopublish-api/internal/domain/repository"
)

var _ repository.SiteRepository = (*SiteRepo)(nil)

// selectSite columnas de sites más los conteos de registros dependientes.
const selectSite = `
	SELECT s.id, s.user_id, s.name, s.url, s.type, s.status, s.wp_config, s.created_at, s.updated_at,
		(SELECT COUNT(*) FROM articles a WHERE a.site_id = s.id),
		(SELECT COUNT(*) FROM automations au WHERE au.site_id = s.id),
		(SELECT COUNT(*) FROM sources so WHERE so.site_id = s.id)
	FROM sites s`

// SiteRepo implementación del puerto SiteRepository sobre PostgreSQL.
type SiteRepo struct {
	pool *pgxpool.Pool
}

// NewSiteRepository construye el adaptador de persistencia para sitios.
func NewSiteRepository(pool *pgxpool.Pool) *SiteRepo {
	return &SiteRepo{pool: pool}
}

// Create persiste un nuevo sitio.
func (r *SiteRepo) Create(ctx context.Context, site *entity.Site) error {
	cfg, err := encodeWordPressConfig(site.Platform.WordPress)
	if err != nil {
		return err
	}
	query := `
		INSERT INTO sites (id, user_id, name, url, type, status, wp_config, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err = r.pool.Exec(ctx, query,
		site.ID, site.UserID, site.Name, site.URL, string(site.Platform.Type), string(site.Status), cfg,
		site.CreatedAt, site.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("insert site: %w", err)
	}
	return nil
}

// GetByIDForOwner obtiene un sitio por ID y dueño en una sola condición.
func (r *SiteRepo) GetByIDForOwner(ctx context.Context, id, ownerID string) (*entity.Site, error) {
	site, err := scanSite(r.pool.QueryRow(ctx, selectSite+` WHERE s.id = $1 AND s.user_id = $2`, id, ownerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get site: %w", err)
	}
	return site, nil
}

// ListByOwner lista los sitios del usuario, más recientes primero.
func (r *SiteRepo) ListByOwner(ctx context.Context, ownerID string) ([]*entity.Site, error) {
	rows, err := r.pool.Query(ctx, selectSite+` WHERE s.user_id = $1 ORDER BY s.created_at DESC, s.id`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list sites: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.Site, 0)
	for rows.Next() {
		site, err := scanSite(rows)
		if err != nil {
			return nil, fmt.Errorf("scan site: %w", err)
		}
		list = append(list, site)
	}
	return list, rows.Err()
}

// ExistsByURL indica si el usuario ya registró la URL (excluyendo excludeID).
func (r *SiteRepo) ExistsByURL(ctx context.Context, ownerID, url, excludeID string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM sites WHERE user_id = $1 AND url = $2 AND ($3 = '' OR id::text <> $3))`
	var exists bool
	if err := r.pool.QueryRow(ctx, query, ownerID, url, excludeID).Scan(&exists); err != nil {
		return false, fmt.Errorf("exists site url: %w", err)
	}
	return exists, nil
}

// Update actualiza un sitio del usuario.
func (r *SiteRepo) Update(ctx context.Context, site *entity.Site) error {
	cfg, err := encodeWordPressConfig(site.Platform.WordPress)
	if err != nil {
		return err
	}
	query := `
		UPDATE sites SET name = $3, url = $4, type = $5, status = $6, wp_config = $7, updated_at = $8
		WHERE id = $1 AND user_id = $2`
	cmd, err := r.pool.Exec(ctx, query,
		site.ID, site.UserID, site.Name, site.URL, string(site.Platform.Type), string(site.Status), cfg,
		site.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("update site: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina un sitio del usuario; los registros dependientes caen en cascada.
func (r *SiteRepo) Delete(ctx context.Context, id, ownerID string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM sites WHERE id = $1 AND user_id = $2`, id, ownerID)
	if err != nil {
		return fmt.Errorf("delete site: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanSite(row rowScanner) (*entity.Site, error) {
	var (
		s       entity.Site
		siteTyp string
		status  string
		rawCfg  []byte
	)
	err := row.Scan(
		&s.ID, &s.UserID, &s.Name, &s.URL, &siteTyp, &status, &rawCfg, &s.CreatedAt, &s.UpdatedAt,
		&s.Counts.Articles, &s.Counts.Automations, &s.Counts.Sources,
	)
	if err != nil {
		return nil, err
	}
	cfg, err := decodeWordPressConfig(rawCfg)
	if err != nil {
		return nil, err
	}
	s.Platform = entity.NewPlatform(entity.SiteType(siteTyp), cfg)
	s.Status = entity.SiteStatus(status)
	return &s, nil
}

package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/jhoicas/autopublish-api/internal/domain"
	"github.com/jhoicas/autopublish-api/internal/domain/entity"
	"github.com/jhoicas/autopublish-api/internal/domain/repository"
)

var _ repository.SiteRepository = (*SiteRepo)(nil)

const selectSite = `
	SELECT s.id, s.user_id, s.name, s.url, s.type, s.status, s.wp_config, s.created_at, s.updated_at,
		(SELECT COUNT(*) FROM articles a WHERE a.site_id = s.id) AS articles,
		(SELECT COUNT(*) FROM automations au WHERE au.site_id = s.id) AS automations,
		(SELECT COUNT(*) FROM sources so WHERE so.site_id = s.id) AS sources
	FROM sites s`

type siteRow struct {
	ID          string         `db:"id"`
	UserID      string         `db:"user_id"`
	Name        string         `db:"name"`
	URL         string         `db:"url"`
	Type        string         `db:"type"`
	Status      string         `db:"status"`
	WPConfig    sql.NullString `db:"wp_config"`
	CreatedAt   int64          `db:"created_at"`
	UpdatedAt   int64          `db:"updated_at"`
	Articles    int            `db:"articles"`
	Automations int            `db:"automations"`
	Sources     int            `db:"sources"`
}

func (r siteRow) toEntity() (*entity.Site, error) {
	var cfg *entity.WordPressConfig
	if r.WPConfig.Valid && r.WPConfig.String != "" {
		cfg = &entity.WordPressConfig{}
		if err := json.Unmarshal([]byte(r.WPConfig.String), cfg); err != nil {
			return nil, fmt.Errorf("leer wp_config: %w", err)
		}
	}
	return &entity.Site{
		ID:       r.ID,
		UserID:   r.UserID,
		Name:     r.Name,
		URL:      r.URL,
		Platform: entity.NewPlatform(entity.SiteType(r.Type), cfg),
		Status:   entity.SiteStatus(r.Status),
		Counts: entity.SiteCounts{
			Articles:    r.Articles,
			Automations: r.Automations,
			Sources:     r.Sources,
		},
		CreatedAt: fromMicros(r.CreatedAt),
		UpdatedAt: fromMicros(r.UpdatedAt),
	}, nil
}

func encodeConfig(cfg *entity.WordPressConfig) (sql.NullString, error) {
	if cfg == nil {
		return sql.NullString{}, nil
	}
	b, err := json.Marshal(cfg)
	if err != nil {
		return sql.NullString{}, fmt.Errorf("serializar wp_config: %w", err)
	}
	return sql.NullString{String: string(b), Valid: true}, nil
}

// SiteRepo implementación del puerto SiteRepository sobre SQLite.
type SiteRepo struct {
	db *sqlx.DB
}

// NewSiteRepository construye el adaptador.
func NewSiteRepository(db *sqlx.DB) *SiteRepo {
	return &SiteRepo{db: db}
}

func (r *SiteRepo) Create(ctx context.Context, site *entity.Site) error {
	cfg, err := encodeConfig(site.Platform.WordPress)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO sites (id, user_id, name, url, type, status, wp_config, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		site.ID, site.UserID, site.Name, site.URL, string(site.Platform.Type), string(site.Status), cfg,
		toMicros(site.CreatedAt), toMicros(site.UpdatedAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("insert site: %w", err)
	}
	return nil
}

func (r *SiteRepo) GetByIDForOwner(ctx context.Context, id, ownerID string) (*entity.Site, error) {
	var row siteRow
	if err := r.db.GetContext(ctx, &row, selectSite+` WHERE s.id = ? AND s.user_id = ?`, id, ownerID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get site: %w", err)
	}
	return row.toEntity()
}

func (r *SiteRepo) ListByOwner(ctx context.Context, ownerID string) ([]*entity.Site, error) {
	var rows []siteRow
	if err := r.db.SelectContext(ctx, &rows, selectSite+` WHERE s.user_id = ? ORDER BY s.created_at DESC, s.id`, ownerID); err != nil {
		return nil, fmt.Errorf("list sites: %w", err)
	}
	list := make([]*entity.Site, 0, len(rows))
	for _, row := range rows {
		site, err := row.toEntity()
		if err != nil {
			return nil, err
		}
		list = append(list, site)
	}
	return list, nil
}

func (r *SiteRepo) ExistsByURL(ctx context.Context, ownerID, url, excludeID string) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists,
		`SELECT EXISTS (SELECT 1 FROM sites WHERE user_id = ? AND url = ? AND (? = '' OR id <> ?))`,
		ownerID, url, excludeID, excludeID)
	if err != nil {
		return false, fmt.Errorf("exists site url: %w", err)
	}
	return exists, nil
}

func (r *SiteRepo) Update(ctx context.Context, site *entity.Site) error {
	cfg, err := encodeConfig(site.Platform.WordPress)
	if err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx, `
		UPDATE sites SET name = ?, url = ?, type = ?, status = ?, wp_config = ?, updated_at = ?
		WHERE id = ? AND user_id = ?`,
		site.Name, site.URL, string(site.Platform.Type), string(site.Status), cfg, toMicros(site.UpdatedAt),
		site.ID, site.UserID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("update site: %w", err)
	}
	return requireAffected(res)
}

func (r *SiteRepo) Delete(ctx context.Context, id, ownerID string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM sites WHERE id = ? AND user_id = ?`, id, ownerID)
	if err != nil {
		return fmt.Errorf("delete site: %w", err)
	}
	return requireAffected(res)
}

func requireAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

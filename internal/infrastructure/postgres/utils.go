package postgres

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jhoicas/autopublish-api/internal/domain/entity"
)

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" // unique_violation
	}
	return strings.Contains(err.Error(), "23505")
}

// rowScanner cubre pgx.Row y pgx.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// encodeWordPressConfig serializa la configuración a JSONB; nil se guarda como NULL.
func encodeWordPressConfig(cfg *entity.WordPressConfig) ([]byte, error) {
	if cfg == nil {
		return nil, nil
	}
	b, err := json.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("serializar wp_config: %w", err)
	}
	return b, nil
}

func decodeWordPressConfig(raw []byte) (*entity.WordPressConfig, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var cfg entity.WordPressConfig
	if err := json.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("leer wp_config: %w", err)
	}
	return &cfg, nil
}

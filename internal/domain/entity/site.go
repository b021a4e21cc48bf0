package entity

import "time"

// SiteType plataforma del sitio.
type SiteType string

const (
	SiteTypeWordPress SiteType = "WORDPRESS"
	SiteTypeGeneric   SiteType = "GENERIC"
)

// Valid indica si el tipo pertenece al enum.
func (t SiteType) Valid() bool {
	return t == SiteTypeWordPress || t == SiteTypeGeneric
}

// SiteStatus estado operativo del sitio.
type SiteStatus string

const (
	SiteStatusActive   SiteStatus = "ACTIVE"
	SiteStatusPaused   SiteStatus = "PAUSED"
	SiteStatusInactive SiteStatus = "INACTIVE"
)

// WordPressConfig credenciales y endpoint REST de un sitio WordPress.
type WordPressConfig struct {
	Username string `json:"username,omitempty"`
	Password string `json:"password,omitempty"`
	APIURL   string `json:"api_url,omitempty"`
}

// Platform es la variante {Generic | WordPress(config)} de un sitio.
// WordPress solo puede ser distinto de nil cuando Type == SiteTypeWordPress.
type Platform struct {
	Type      SiteType
	WordPress *WordPressConfig
}

// NewPlatform construye la variante para un sitio nuevo; la configuración
// solo se conserva para WORDPRESS.
func NewPlatform(t SiteType, cfg *WordPressConfig) Platform {
	if t != SiteTypeWordPress {
		return Platform{Type: SiteTypeGeneric}
	}
	return Platform{Type: SiteTypeWordPress, WordPress: cfg.clone()}
}

// Apply calcula la variante resultante de una actualización parcial.
// t y cfg nil significan "no enviado". Pasar a GENERIC siempre limpia la configuración;
// una configuración enviada para un sitio que sigue siendo GENERIC se ignora.
func (p Platform) Apply(t *SiteType, cfg *WordPressConfig) Platform {
	next := p.Type
	if t != nil {
		next = *t
	}
	if next != SiteTypeWordPress {
		return Platform{Type: SiteTypeGeneric}
	}
	if cfg != nil {
		return Platform{Type: SiteTypeWordPress, WordPress: cfg.clone()}
	}
	if p.Type == SiteTypeWordPress {
		return Platform{Type: SiteTypeWordPress, WordPress: p.WordPress.clone()}
	}
	return Platform{Type: SiteTypeWordPress}
}

func (c *WordPressConfig) clone() *WordPressConfig {
	if c == nil {
		return nil
	}
	cp := *c
	return &cp
}

// SiteCounts registros dependientes de un sitio.
type SiteCounts struct {
	Articles    int
	Automations int
	Sources     int
}

// Site es un sitio web registrado por un usuario para automatizar publicaciones.
type Site struct {
	ID        string
	UserID    string
	Name      string
	URL       string
	Platform  Platform
	Status    SiteStatus
	Counts    SiteCounts
	CreatedAt time.Time
	UpdatedAt time.Time
}

package dto

import "time"

// WordPressConfigInput configuración opcional para sitios WORDPRESS.
type WordPressConfigInput struct {
	Username string `json:"username" validate:"omitempty,max=200"`
	Password string `json:"password" validate:"omitempty,max=500"`
	APIURL   string `json:"api_url" validate:"omitempty,http_url"`
}

// CreateSiteRequest entrada para crear un sitio.
type CreateSiteRequest struct {
	Name   string                `json:"name" validate:"required,min=1,max=200"`
	URL    string                `json:"url" validate:"required,http_url,max=2048"`
	Type   string                `json:"type" validate:"required,oneof=WORDPRESS GENERIC"`
	Config *WordPressConfigInput `json:"config"`
}

// UpdateSiteRequest entrada parcial: nil = no enviado; lo enviado se valida.
type UpdateSiteRequest struct {
	Name   *string               `json:"name" validate:"omitnil,min=1,max=200"`
	URL    *string               `json:"url" validate:"omitnil,http_url,max=2048"`
	Type   *string               `json:"type" validate:"omitnil,oneof=WORDPRESS GENERIC"`
	Status *string               `json:"status" validate:"omitnil,oneof=ACTIVE PAUSED INACTIVE"`
	Config *WordPressConfigInput `json:"config"`
}

// WordPressConfigResponse configuración sin la contraseña.
type WordPressConfigResponse struct {
	Username    string `json:"username,omitempty"`
	APIURL      string `json:"api_url,omitempty"`
	HasPassword bool   `json:"has_password"`
}

// SiteCountsResponse conteo de registros dependientes.
type SiteCountsResponse struct {
	Articles    int `json:"articles"`
	Automations int `json:"automations"`
	Sources     int `json:"sources"`
}

// SiteResponse salida de un sitio.
type SiteResponse struct {
	ID        string                   `json:"id"`
	Name      string                   `json:"name"`
	URL       string                   `json:"url"`
	Type      string                   `json:"type"`
	Status    string                   `json:"status"`
	Config    *WordPressConfigResponse `json:"config"`
	Counts    SiteCountsResponse       `json:"counts"`
	CreatedAt time.Time                `json:"created_at"`
	UpdatedAt time.Time                `json:"updated_at"`
}

// SiteListResponse listado de sitios del usuario.
type SiteListResponse struct {
	Sites []SiteResponse `json:"sites"`
}

// SiteEnvelope respuesta de lectura de un sitio.
type SiteEnvelope struct {
	Site SiteResponse `json:"site"`
}

// SiteMutationResponse respuesta de creación/actualización.
type SiteMutationResponse struct {
	Message string       `json:"message"`
	Site    SiteResponse `json:"site"`
}

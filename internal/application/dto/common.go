package dto

// ErrorResponse cuerpo de error HTTP.
// Details lleva los errores por campo en validaciones, o el detalle interno en development.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code"`
	Details any    `json:"details,omitempty"`
}

// MessageResponse confirmación sin payload.
type MessageResponse struct {
	Message string `json:"message"`
}

package domain

import (
	"errors"
	"strings"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrEmailAlreadyExists = errors.New("ya existe un usuario con este email")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrConflict           = errors.New("ya tienes un sitio con esta URL")
)

// FieldIssue describe un error de validación sobre un campo concreto.
type FieldIssue struct {
	Field   string `json:"field"`
	Tag     string `json:"tag"`
	Message string `json:"message"`
}

// ValidationError agrupa los errores de esquema de una petición.
type ValidationError struct {
	Issues []FieldIssue
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Issues))
	for _, is := range e.Issues {
		parts = append(parts, is.Field+": "+is.Message)
	}
	return "validación fallida: " + strings.Join(parts, "; ")
}

// NewValidationError construye un ValidationError con un único campo.
func NewValidationError(field, tag, message string) *ValidationError {
	return &ValidationError{Issues: []FieldIssue{{Field: field, Tag: tag, Message: message}}}
}

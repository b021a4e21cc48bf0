// Package validation valida DTOs de entrada según sus etiquetas `validate` y
// traduce los errores a domain.ValidationError con mensajes por campo.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/jhoicas/autopublish-api/internal/domain"
)

var (
	once     sync.Once
	validate *validator.Validate
)

func instance() *validator.Validate {
	once.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		// Los nombres de campo en los errores son los del JSON.
		validate.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name == "" {
				return f.Name
			}
			return name
		})
	})
	return validate
}

// Struct valida s. Devuelve *domain.ValidationError si alguna regla falla.
func Struct(s any) error {
	err := instance().Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validación: %w", err)
	}
	out := &domain.ValidationError{Issues: make([]domain.FieldIssue, 0, len(verrs))}
	for _, fe := range verrs {
		out.Issues = append(out.Issues, domain.FieldIssue{
			Field:   fieldPath(fe),
			Tag:     fe.Tag(),
			Message: message(fe),
		})
	}
	return out
}

// fieldPath quita el nombre del struct raíz: "CreateSiteRequest.config.api_url" -> "config.api_url".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "es requerido"
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("debe tener al menos %s caracteres", fe.Param())
		}
		return fmt.Sprintf("debe ser al menos %s", fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("debe tener como máximo %s caracteres", fe.Param())
		}
		return fmt.Sprintf("debe ser como máximo %s", fe.Param())
	case "email":
		return "email inválido"
	case "http_url", "url":
		return "ingrese una URL válida"
	case "oneof":
		return "debe ser uno de: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	default:
		return "valor inválido (" + fe.Tag() + ")"
	}
}

package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrInvalidInput = errors.New("entrada inválida")
	ErrDuplicate    = errors.New("recurso duplicado")
	ErrParse        = errors.New("documento fiscal inválido")
)

// ParseError describe por qué un XML no pudo convertirse en borrador de nota.
// Siempre envuelve ErrParse, de modo que errors.Is(err, ErrParse) funciona.
type ParseError struct {
	Reason string
	Err    error
}

// NewParseError construye un ParseError con causa opcional.
func NewParseError(reason string, cause error) *ParseError {
	return &ParseError{Reason: reason, Err: cause}
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", ErrParse.Error(), e.Reason, e.Err)
	}
	return fmt.Sprintf("%s: %s", ErrParse.Error(), e.Reason)
}

// Unwrap expone la causa y el sentinel ErrParse.
func (e *ParseError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrParse, e.Err}
	}
	return []error{ErrParse}
}

package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrInvalidInput = errors.New("entrada inválida")
	ErrDuplicate    = errors.New("recurso duplicado")
	// ErrBusinessRule identifica cualquier violación de regla de negocio (ver BusinessError).
	ErrBusinessRule = errors.New("regla de negocio violada")
)

// BusinessError describe una violación de regla de negocio (fecha futura, inventario negativo,
// inventario duplicado, movimiento anterior a un inventario, etc.).
// errors.Is(err, ErrBusinessRule) es verdadero para cualquier BusinessError.
type BusinessError struct {
	Msg string
}

// NewBusinessError construye el error con el mensaje indicado.
func NewBusinessError(msg string) *BusinessError {
	return &BusinessError{Msg: msg}
}

func (e *BusinessError) Error() string { return e.Msg }

// Unwrap permite errors.Is(err, ErrBusinessRule).
func (e *BusinessError) Unwrap() error { return ErrBusinessRule }

// IsBusinessRule indica si err es (o envuelve) una violación de regla de negocio.
func IsBusinessRule(err error) bool {
	return errors.Is(err, ErrBusinessRule)
}

// IsInvalidInput indica si err es (o envuelve) un error de argumento inválido.
func IsInvalidInput(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

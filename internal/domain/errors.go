package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")
	ErrInvalidCredentials = errors.New("credenciales inválidas")
	ErrUserInactive       = errors.New("usuario inactivo")
)

// Errores del protocolo de stock (órdenes, líneas y movimientos).
var (
	ErrEmptyOrder           = errors.New("la orden no tiene líneas")
	ErrMissingProduct       = errors.New("la línea no indica producto")
	ErrInvalidQuantity      = errors.New("cantidad inválida")
	ErrInvalidAmount        = errors.New("precio o costo inválido")
	ErrProductNotFound      = errors.New("producto no encontrado")
	ErrProductInactive      = errors.New("producto inactivo")
	ErrInsufficientStock    = errors.New("stock insuficiente")
	ErrInvalidMovementKind  = errors.New("tipo de movimiento inválido")
	ErrInvalidOrderKind     = errors.New("tipo de orden inválido")
	ErrOrderNotFound        = errors.New("orden no encontrada")
	ErrOrderAlreadyVoided   = errors.New("la orden ya fue anulada")
	ErrCounterpartyMissing  = errors.New("la compra requiere proveedor")
	ErrCounterpartyNotFound = errors.New("proveedor o cliente no encontrado")
)

// LineError indica qué línea de la orden provocó el rechazo.
// Index es 1-based para que coincida con lo que ve el usuario.
type LineError struct {
	Index     int
	ProductID int64
	Err       error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("línea %d (producto %d): %v", e.Index, e.ProductID, e.Err)
}

func (e *LineError) Unwrap() error { return e.Err }

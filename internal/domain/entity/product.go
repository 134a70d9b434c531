package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo.
// Stock solo cambia a través del libro de movimientos (nunca con un UPDATE suelto).
type Product struct {
	ID          int64
	CategoryID  *int64
	Name        string
	Description string
	Price       decimal.Decimal // precio de venta sugerido
	Stock       int64
	Active      bool
	Image       string // referencia opcional (URL o data URI)
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ProductView es la proyección de listado (con nombre de categoría).
type ProductView struct {
	Product
	CategoryName string
}

package repository

import (
	"context"

	"github.com/jhoicas/inventario-pos/internal/domain/entity"
)

// ProductFilter filtra el listado de productos.
type ProductFilter struct {
	CategoryID *int64
	Search     string // coincidencia parcial por nombre
	OnlyActive bool
	Page       Page
}

// ProductRepository define el puerto de persistencia para Product (DIP).
// GetByID y GetForUpdate devuelven (nil, nil) si no existe.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id int64) (*entity.Product, error)
	// GetForUpdate lee la fila bloqueándola hasta el fin de la transacción (SELECT ... FOR UPDATE).
	GetForUpdate(ctx context.Context, id int64) (*entity.Product, error)
	// UpdateStock solo debe llamarse desde el libro de movimientos.
	UpdateStock(ctx context.Context, id, stock int64) error
	// Update modifica datos de catálogo; nunca toca stock.
	Update(ctx context.Context, product *entity.Product) error
	SetActive(ctx context.Context, id int64, active bool) error
	List(ctx context.Context, filter ProductFilter) ([]*entity.ProductView, error)
}

package repository

import (
	"context"

	"github.com/jhoicas/inventario-pos/internal/domain/entity"
)

// OrderRepository persiste compras y ventas. Cada método recibe el tipo de orden
// porque compras y ventas viven en tablas separadas.
type OrderRepository interface {
	Create(ctx context.Context, order *entity.Order) error
	CreateLine(ctx context.Context, kind entity.OrderKind, line *entity.OrderLine) error
	// GetForUpdate bloquea la cabecera; (nil, nil) si no existe.
	GetForUpdate(ctx context.Context, kind entity.OrderKind, id int64) (*entity.Order, error)
	UpdateStatus(ctx context.Context, kind entity.OrderKind, id int64, status string) error
	// GetLines devuelve las líneas en el orden en que se registraron.
	GetLines(ctx context.Context, kind entity.OrderKind, orderID int64) ([]*entity.OrderLine, error)

	GetSummary(ctx context.Context, kind entity.OrderKind, id int64) (*entity.OrderSummary, error)
	GetLineViews(ctx context.Context, kind entity.OrderKind, orderID int64) ([]*entity.OrderLineView, error)
	List(ctx context.Context, kind entity.OrderKind, page Page) ([]*entity.OrderSummary, error)
}

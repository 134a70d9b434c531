package repository

import (
	"context"
	"time"

	"github.com/jhoicas/inventario-pos/internal/domain/entity"
)

// MovementFilter filtra la consulta del libro.
type MovementFilter struct {
	ProductID *int64
	Kind      entity.MovementKind
	From, To  *time.Time
	Page      Page
}

// StockMovementRepository es el puerto del libro de inventario: solo inserción y lectura.
type StockMovementRepository interface {
	Append(ctx context.Context, movement *entity.StockMovement) error
	// List devuelve los movimientos más recientes primero.
	List(ctx context.Context, filter MovementFilter) ([]*entity.StockMovementView, error)
	// ListByProduct devuelve la historia completa de un producto en orden de creación.
	ListByProduct(ctx context.Context, productID int64) ([]*entity.StockMovement, error)
	// ListAll recorre el libro entero en orden de creación (verificación de cadena).
	ListAll(ctx context.Context, fn func(*entity.StockMovement) error) error
}

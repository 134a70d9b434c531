package inventory

import (
	"context"
	"fmt"

	"github.com/jhoicas/inventario-pos/internal/domain/entity"
	"github.com/jhoicas/inventario-pos/internal/domain/inventory"
)

// ledgerEntry describe una mutación de stock a registrar.
type ledgerEntry struct {
	Kind          entity.MovementKind
	Quantity      int64
	UserID        int64
	ReferenceType string
	ReferenceID   *int64
	Note          string
}

// applyToLedger es el único camino para cambiar stock: calcula stock_after con ApplyMovement,
// actualiza el producto y agrega la fila al libro, todo con los repositorios de la tx en curso.
// product debe haberse leído con GetForUpdate en la misma transacción; se actualiza en memoria.
func applyToLedger(ctx context.Context, repos TxRepos, product *entity.Product, e ledgerEntry) (*entity.StockMovement, error) {
	after, err := inventory.ApplyMovement(e.Kind, product.Stock, e.Quantity)
	if err != nil {
		return nil, err
	}
	if err := repos.Products.UpdateStock(ctx, product.ID, after); err != nil {
		return nil, fmt.Errorf("actualizar stock del producto %d: %w", product.ID, err)
	}
	mov := &entity.StockMovement{
		ProductID:     product.ID,
		Kind:          e.Kind,
		Quantity:      e.Quantity,
		StockBefore:   product.Stock,
		StockAfter:    after,
		UserID:        e.UserID,
		ReferenceType: e.ReferenceType,
		ReferenceID:   e.ReferenceID,
		Note:          e.Note,
	}
	if err := repos.Movements.Append(ctx, mov); err != nil {
		return nil, fmt.Errorf("registrar movimiento del producto %d: %w", product.ID, err)
	}
	product.Stock = after
	return mov, nil
}

package inventory

import (
	"context"
	"fmt"
	"slices"

	"github.com/jhoicas/inventario-pos/internal/domain"
	"github.com/jhoicas/inventario-pos/internal/domain/entity"
	"github.com/jhoicas/inventario-pos/internal/domain/inventory"
	"github.com/jhoicas/inventario-pos/internal/domain/repository"
)

// MovementQuery lectura del libro de inventario.
type MovementQuery struct {
	movRepo     repository.StockMovementRepository
	productRepo repository.ProductRepository
}

func NewMovementQuery(movRepo repository.StockMovementRepository, productRepo repository.ProductRepository) *MovementQuery {
	return &MovementQuery{movRepo: movRepo, productRepo: productRepo}
}

// ListMovements devuelve movimientos filtrados, los más recientes primero.
func (q *MovementQuery) ListMovements(ctx context.Context, filter repository.MovementFilter) ([]*entity.StockMovementView, error) {
	if filter.Kind != "" && !filter.Kind.Valid() {
		return nil, domain.ErrInvalidMovementKind
	}
	filter.Page = normalizePage(filter.Page)
	return q.movRepo.List(ctx, filter)
}

// ProductHistory devuelve la historia completa del producto en orden de creación.
func (q *MovementQuery) ProductHistory(ctx context.Context, productID int64) ([]*entity.StockMovement, error) {
	p, err := q.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrProductNotFound
	}
	return q.movRepo.ListByProduct(ctx, productID)
}

// VerifyLedger recorre todo el libro y devuelve las discontinuidades encontradas.
// También compara el último stock_after de cada producto con su stock actual.
func (q *MovementQuery) VerifyLedger(ctx context.Context) ([]inventory.ChainBreak, error) {
	checker := inventory.NewChainChecker()
	if err := q.movRepo.ListAll(ctx, func(m *entity.StockMovement) error {
		checker.Add(m)
		return nil
	}); err != nil {
		return nil, err
	}
	breaks := checker.Breaks()
	last := checker.LastStock()
	productIDs := make([]int64, 0, len(last))
	for productID := range last {
		productIDs = append(productIDs, productID)
	}
	slices.Sort(productIDs)
	for _, productID := range productIDs {
		stock := last[productID]
		p, err := q.productRepo.GetByID(ctx, productID)
		if err != nil {
			return nil, err
		}
		if p != nil && p.Stock != stock {
			breaks = append(breaks, inventory.ChainBreak{
				ProductID: productID,
				Reason:    fmt.Sprintf("stock actual %d difiere del libro (%d)", p.Stock, stock),
			})
		}
	}
	return breaks, nil
}

package inventory

import (
	"context"
	"fmt"

	"github.com/jhoicas/inventario-pos/internal/application/ports"
	"github.com/jhoicas/inventario-pos/internal/domain"
	"github.com/jhoicas/inventario-pos/internal/domain/entity"
)

// VoidOrderResult la orden anulada y los movimientos de reversa.
type VoidOrderResult struct {
	Order     *entity.Order
	Movements []*entity.StockMovement
}

// VoidOrder anula una orden registrada en una sola transacción: bloquea la cabecera,
// revierte cada línea con el movimiento inverso (sin borrar historia) y cambia el estado a voided.
// Anular una compra cuyo stock ya se vendió falla con ErrInsufficientStock y no cambia nada.
func (p *OrderProcessor) VoidOrder(ctx context.Context, kind entity.OrderKind, orderID, userID int64) (*VoidOrderResult, error) {
	if !kind.Valid() {
		return nil, domain.ErrInvalidOrderKind
	}

	var result *VoidOrderResult
	err := p.txRunner.Run(ctx, func(ctx context.Context, repos TxRepos) error {
		order, err := repos.Orders.GetForUpdate(ctx, kind, orderID)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.ErrOrderNotFound
		}
		if order.Status == entity.OrderStatusVoided {
			return domain.ErrOrderAlreadyVoided
		}

		lines, err := repos.Orders.GetLines(ctx, kind, orderID)
		if err != nil {
			return err
		}
		res := &VoidOrderResult{Order: order, Movements: make([]*entity.StockMovement, 0, len(lines))}
		for i, l := range lines {
			product, err := repos.Products.GetForUpdate(ctx, l.ProductID)
			if err != nil {
				return fmt.Errorf("leer producto %d: %w", l.ProductID, err)
			}
			if product == nil {
				return fmt.Errorf("producto %d de la orden %d no existe: %w", l.ProductID, orderID, domain.ErrConflict)
			}
			mov, err := applyToLedger(ctx, repos, product, ledgerEntry{
				Kind:          kind.ReversalKind(),
				Quantity:      l.Quantity,
				UserID:        userID,
				ReferenceType: kind.VoidReference(),
				ReferenceID:   &order.ID,
			})
			if err != nil {
				if isLineFailure(err) {
					return &domain.LineError{Index: i + 1, ProductID: l.ProductID, Err: err}
				}
				return err
			}
			res.Movements = append(res.Movements, mov)
		}

		if err := repos.Orders.UpdateStatus(ctx, kind, orderID, entity.OrderStatusVoided); err != nil {
			return err
		}
		order.Status = entity.OrderStatusVoided
		result = res
		return nil
	})
	if err != nil {
		return nil, err
	}

	p.log.Info().
		Str("kind", string(kind)).
		Int64("order_id", orderID).
		Int64("user_id", userID).
		Msg("orden anulada")
	p.afterCommit(ctx, ports.OrderVoidedKey(kind), orderEvent(result.Order, len(result.Movements)))
	return result, nil
}

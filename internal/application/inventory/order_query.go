package inventory

import (
	"context"

	"github.com/jhoicas/inventario-pos/internal/domain"
	"github.com/jhoicas/inventario-pos/internal/domain/entity"
	"github.com/jhoicas/inventario-pos/internal/domain/repository"
)

// OrderDetail cabecera y líneas de una orden para presentación.
type OrderDetail struct {
	Header *entity.OrderSummary
	Lines  []*entity.OrderLineView
}

// OrderQuery reconstruye órdenes para lectura. No tiene lógica de invariantes.
type OrderQuery struct {
	orderRepo repository.OrderRepository
}

func NewOrderQuery(orderRepo repository.OrderRepository) *OrderQuery {
	return &OrderQuery{orderRepo: orderRepo}
}

// GetOrder devuelve la cabecera (con proveedor/cliente y usuario) y sus líneas (con producto).
func (q *OrderQuery) GetOrder(ctx context.Context, kind entity.OrderKind, id int64) (*OrderDetail, error) {
	if !kind.Valid() {
		return nil, domain.ErrInvalidOrderKind
	}
	header, err := q.orderRepo.GetSummary(ctx, kind, id)
	if err != nil {
		return nil, err
	}
	if header == nil {
		return nil, domain.ErrOrderNotFound
	}
	lines, err := q.orderRepo.GetLineViews(ctx, kind, id)
	if err != nil {
		return nil, err
	}
	return &OrderDetail{Header: header, Lines: lines}, nil
}

// ListOrders devuelve las cabeceras más recientes primero.
func (q *OrderQuery) ListOrders(ctx context.Context, kind entity.OrderKind, page repository.Page) ([]*entity.OrderSummary, error) {
	if !kind.Valid() {
		return nil, domain.ErrInvalidOrderKind
	}
	return q.orderRepo.List(ctx, kind, normalizePage(page))
}

func normalizePage(p repository.Page) repository.Page {
	if p.Limit <= 0 || p.Limit > 200 {
		p.Limit = 50
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
	return p
}

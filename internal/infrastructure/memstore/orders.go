package memstore

import (
	"context"
	"sort"
	"time"

	"github.com/jhoicas/inventario-pos/internal/domain"
	"github.com/jhoicas/inventario-pos/internal/domain/entity"
	"github.com/jhoicas/inventario-pos/internal/domain/repository"
)

// OrderRepo implementa repository.OrderRepository.
type OrderRepo struct{ db accessor }

var _ repository.OrderRepository = (*OrderRepo)(nil)

func (r *OrderRepo) Create(_ context.Context, o *entity.Order) error {
	if err := r.db.fault("orders.create"); err != nil {
		return err
	}
	return r.db.do(func(st *state, now time.Time) error {
		if o.CounterpartyID != nil && counterpartyName(st, o.Kind, *o.CounterpartyID) == "" {
			return domain.ErrCounterpartyNotFound
		}
		o.ID = st.next(string(o.Kind))
		o.CreatedAt = now
		st.orders[o.Kind][o.ID] = *o
		return nil
	})
}

func (r *OrderRepo) CreateLine(_ context.Context, kind entity.OrderKind, l *entity.OrderLine) error {
	if err := r.db.fault("orders.create_line"); err != nil {
		return err
	}
	return r.db.do(func(st *state, _ time.Time) error {
		if _, ok := st.orders[kind][l.OrderID]; !ok {
			return domain.ErrOrderNotFound
		}
		l.ID = st.next(string(kind) + "_lines")
		st.lines[kind] = append(st.lines[kind], *l)
		return nil
	})
}

func (r *OrderRepo) GetForUpdate(_ context.Context, kind entity.OrderKind, id int64) (*entity.Order, error) {
	var out *entity.Order
	err := r.db.do(func(st *state, _ time.Time) error {
		if o, ok := st.orders[kind][id]; ok {
			out = &o
		}
		return nil
	})
	return out, err
}

func (r *OrderRepo) UpdateStatus(_ context.Context, kind entity.OrderKind, id int64, status string) error {
	return r.db.do(func(st *state, _ time.Time) error {
		o, ok := st.orders[kind][id]
		if !ok {
			return domain.ErrOrderNotFound
		}
		o.Status = status
		st.orders[kind][id] = o
		return nil
	})
}

func (r *OrderRepo) GetLines(_ context.Context, kind entity.OrderKind, orderID int64) ([]*entity.OrderLine, error) {
	var out []*entity.OrderLine
	err := r.db.do(func(st *state, _ time.Time) error {
		for _, l := range st.lines[kind] {
			l := l
			if l.OrderID == orderID {
				out = append(out, &l)
			}
		}
		return nil
	})
	return out, err
}

func (r *OrderRepo) GetSummary(_ context.Context, kind entity.OrderKind, id int64) (*entity.OrderSummary, error) {
	var out *entity.OrderSummary
	err := r.db.do(func(st *state, _ time.Time) error {
		if o, ok := st.orders[kind][id]; ok {
			out = summarize(st, o)
		}
		return nil
	})
	return out, err
}

func (r *OrderRepo) GetLineViews(_ context.Context, kind entity.OrderKind, orderID int64) ([]*entity.OrderLineView, error) {
	var out []*entity.OrderLineView
	err := r.db.do(func(st *state, _ time.Time) error {
		for _, l := range st.lines[kind] {
			if l.OrderID != orderID {
				continue
			}
			p := st.products[l.ProductID]
			out = append(out, &entity.OrderLineView{OrderLine: l, ProductName: p.Name, ProductImage: p.Image})
		}
		return nil
	})
	return out, err
}

func (r *OrderRepo) List(_ context.Context, kind entity.OrderKind, page repository.Page) ([]*entity.OrderSummary, error) {
	var out []*entity.OrderSummary
	err := r.db.do(func(st *state, _ time.Time) error {
		for _, o := range st.orders[kind] {
			out = append(out, summarize(st, o))
		}
		sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
		out = paginate(out, page)
		return nil
	})
	return out, err
}

func summarize(st *state, o entity.Order) *entity.OrderSummary {
	s := &entity.OrderSummary{Order: o, UserName: st.users[o.UserID].Name}
	if o.CounterpartyID != nil {
		s.CounterpartyName = counterpartyName(st, o.Kind, *o.CounterpartyID)
	}
	return s
}

func counterpartyName(st *state, kind entity.OrderKind, id int64) string {
	if kind == entity.OrderPurchase {
		return st.suppliers[id].Name
	}
	return st.customers[id].Name
}

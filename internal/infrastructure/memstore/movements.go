package memstore

import (
	"context"
	"time"

	"github.com/jhoicas/inventario-pos/internal/domain/entity"
	"github.com/jhoicas/inventario-pos/internal/domain/repository"
)

// MovementRepo implementa repository.StockMovementRepository. Solo agrega filas.
type MovementRepo struct{ db accessor }

var _ repository.StockMovementRepository = (*MovementRepo)(nil)

func (r *MovementRepo) Append(_ context.Context, m *entity.StockMovement) error {
	if err := r.db.fault("movements.append"); err != nil {
		return err
	}
	return r.db.do(func(st *state, now time.Time) error {
		m.ID = st.next("movements")
		m.CreatedAt = now
		st.movements = append(st.movements, *m)
		return nil
	})
}

func (r *MovementRepo) List(_ context.Context, f repository.MovementFilter) ([]*entity.StockMovementView, error) {
	var out []*entity.StockMovementView
	err := r.db.do(func(st *state, _ time.Time) error {
		for i := len(st.movements) - 1; i >= 0; i-- {
			m := st.movements[i]
			if f.ProductID != nil && m.ProductID != *f.ProductID {
				continue
			}
			if f.Kind != "" && m.Kind != f.Kind {
				continue
			}
			if f.From != nil && m.CreatedAt.Before(*f.From) {
				continue
			}
			if f.To != nil && !m.CreatedAt.Before(*f.To) {
				continue
			}
			out = append(out, movementView(st, m))
		}
		out = paginate(out, f.Page)
		return nil
	})
	return out, err
}

func (r *MovementRepo) ListByProduct(_ context.Context, productID int64) ([]*entity.StockMovement, error) {
	var out []*entity.StockMovement
	err := r.db.do(func(st *state, _ time.Time) error {
		for _, m := range st.movements {
			m := m
			if m.ProductID == productID {
				out = append(out, &m)
			}
		}
		return nil
	})
	return out, err
}

func (r *MovementRepo) ListAll(_ context.Context, fn func(*entity.StockMovement) error) error {
	var all []entity.StockMovement
	if err := r.db.do(func(st *state, _ time.Time) error {
		all = append(all, st.movements...)
		return nil
	}); err != nil {
		return err
	}
	for i := range all {
		if err := fn(&all[i]); err != nil {
			return err
		}
	}
	return nil
}

func movementView(st *state, m entity.StockMovement) *entity.StockMovementView {
	p := st.products[m.ProductID]
	return &entity.StockMovementView{
		StockMovement: m,
		ProductName:   p.Name,
		ProductImage:  p.Image,
		UserName:      st.users[m.UserID].Name,
	}
}

package memstore

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/jhoicas/inventario-pos/internal/domain"
	"github.com/jhoicas/inventario-pos/internal/domain/entity"
	"github.com/jhoicas/inventario-pos/internal/domain/repository"
)

// ProductRepo implementa repository.ProductRepository.
type ProductRepo struct{ db accessor }

var _ repository.ProductRepository = (*ProductRepo)(nil)

func (r *ProductRepo) Create(_ context.Context, p *entity.Product) error {
	return r.db.do(func(st *state, now time.Time) error {
		if p.CategoryID != nil {
			if _, ok := st.categories[*p.CategoryID]; !ok {
				return domain.ErrNotFound
			}
		}
		p.ID = st.next("products")
		p.CreatedAt, p.UpdatedAt = now, now
		st.products[p.ID] = *p
		return nil
	})
}

func (r *ProductRepo) GetByID(_ context.Context, id int64) (*entity.Product, error) {
	var out *entity.Product
	err := r.db.do(func(st *state, _ time.Time) error {
		if p, ok := st.products[id]; ok {
			out = &p
		}
		return nil
	})
	return out, err
}

func (r *ProductRepo) GetForUpdate(ctx context.Context, id int64) (*entity.Product, error) {
	return r.GetByID(ctx, id)
}

func (r *ProductRepo) UpdateStock(_ context.Context, id, stock int64) error {
	if err := r.db.fault("products.update_stock"); err != nil {
		return err
	}
	return r.db.do(func(st *state, now time.Time) error {
		p, ok := st.products[id]
		if !ok {
			return domain.ErrProductNotFound
		}
		if stock < 0 {
			return fmt.Errorf("memstore: products_stock_check (stock %d)", stock)
		}
		p.Stock = stock
		p.UpdatedAt = now
		st.products[id] = p
		return nil
	})
}

func (r *ProductRepo) Update(_ context.Context, in *entity.Product) error {
	return r.db.do(func(st *state, now time.Time) error {
		p, ok := st.products[in.ID]
		if !ok {
			return domain.ErrNotFound
		}
		if in.CategoryID != nil {
			if _, ok := st.categories[*in.CategoryID]; !ok {
				return domain.ErrNotFound
			}
		}
		p.CategoryID = in.CategoryID
		p.Name = in.Name
		p.Description = in.Description
		p.Price = in.Price
		p.Image = in.Image
		p.UpdatedAt = now
		st.products[in.ID] = p
		in.Stock, in.Active, in.CreatedAt, in.UpdatedAt = p.Stock, p.Active, p.CreatedAt, now
		return nil
	})
}

func (r *ProductRepo) SetActive(_ context.Context, id int64, active bool) error {
	return r.db.do(func(st *state, now time.Time) error {
		p, ok := st.products[id]
		if !ok {
			return domain.ErrNotFound
		}
		p.Active = active
		p.UpdatedAt = now
		st.products[id] = p
		return nil
	})
}

func (r *ProductRepo) List(_ context.Context, f repository.ProductFilter) ([]*entity.ProductView, error) {
	var out []*entity.ProductView
	err := r.db.do(func(st *state, _ time.Time) error {
		search := strings.ToLower(strings.TrimSpace(f.Search))
		for _, p := range st.products {
			if f.OnlyActive && !p.Active {
				continue
			}
			if f.CategoryID != nil && (p.CategoryID == nil || *p.CategoryID != *f.CategoryID) {
				continue
			}
			if search != "" && !strings.Contains(strings.ToLower(p.Name), search) {
				continue
			}
			v := &entity.ProductView{Product: p}
			if p.CategoryID != nil {
				v.CategoryName = st.categories[*p.CategoryID].Name
			}
			out = append(out, v)
		}
		sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
		out = paginate(out, f.Page)
		return nil
	})
	return out, err
}

func paginate[T any](items []T, page repository.Page) []T {
	if page.Offset > 0 {
		if page.Offset >= len(items) {
			return []T{}
		}
		items = items[page.Offset:]
	}
	if page.Limit > 0 && len(items) > page.Limit {
		items = items[:page.Limit]
	}
	return items
}

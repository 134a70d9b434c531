package memstore

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/jhoicas/inventario-pos/internal/domain"
	"github.com/jhoicas/inventario-pos/internal/domain/entity"
	"github.com/jhoicas/inventario-pos/internal/domain/repository"
)

// CategoryRepo implementa repository.CategoryRepository.
type CategoryRepo struct{ db accessor }

var _ repository.CategoryRepository = (*CategoryRepo)(nil)

func (r *CategoryRepo) Create(_ context.Context, c *entity.Category) error {
	return r.db.do(func(st *state, now time.Time) error {
		for _, other := range st.categories {
			if strings.EqualFold(other.Name, c.Name) {
				return domain.ErrDuplicate
			}
		}
		c.ID = st.next("categories")
		c.CreatedAt = now
		st.categories[c.ID] = *c
		return nil
	})
}

func (r *CategoryRepo) GetByID(_ context.Context, id int64) (*entity.Category, error) {
	var out *entity.Category
	err := r.db.do(func(st *state, _ time.Time) error {
		if c, ok := st.categories[id]; ok {
			out = &c
		}
		return nil
	})
	return out, err
}

func (r *CategoryRepo) Update(_ context.Context, c *entity.Category) error {
	return r.db.do(func(st *state, _ time.Time) error {
		cur, ok := st.categories[c.ID]
		if !ok {
			return domain.ErrNotFound
		}
		for id, other := range st.categories {
			if id != c.ID && strings.EqualFold(other.Name, c.Name) {
				return domain.ErrDuplicate
			}
		}
		cur.Name, cur.Description = c.Name, c.Description
		st.categories[c.ID] = cur
		c.CreatedAt = cur.CreatedAt
		return nil
	})
}

func (r *CategoryRepo) List(_ context.Context) ([]*entity.Category, error) {
	var out []*entity.Category
	err := r.db.do(func(st *state, _ time.Time) error {
		for _, c := range st.categories {
			c := c
			out = append(out, &c)
		}
		sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
		return nil
	})
	return out, err
}

// SupplierRepo implementa repository.SupplierRepository.
type SupplierRepo struct{ db accessor }

var _ repository.SupplierRepository = (*SupplierRepo)(nil)

func (r *SupplierRepo) Create(_ context.Context, s *entity.Supplier) error {
	return r.db.do(func(st *state, now time.Time) error {
		s.ID = st.next("suppliers")
		s.CreatedAt = now
		st.suppliers[s.ID] = *s
		return nil
	})
}

func (r *SupplierRepo) GetByID(_ context.Context, id int64) (*entity.Supplier, error) {
	var out *entity.Supplier
	err := r.db.do(func(st *state, _ time.Time) error {
		if s, ok := st.suppliers[id]; ok {
			out = &s
		}
		return nil
	})
	return out, err
}

func (r *SupplierRepo) Update(_ context.Context, s *entity.Supplier) error {
	return r.db.do(func(st *state, _ time.Time) error {
		cur, ok := st.suppliers[s.ID]
		if !ok {
			return domain.ErrNotFound
		}
		cur.Name, cur.Phone, cur.Email = s.Name, s.Phone, s.Email
		st.suppliers[s.ID] = cur
		*s = cur
		return nil
	})
}

func (r *SupplierRepo) SetActive(_ context.Context, id int64, active bool) error {
	return r.db.do(func(st *state, _ time.Time) error {
		cur, ok := st.suppliers[id]
		if !ok {
			return domain.ErrNotFound
		}
		cur.Active = active
		st.suppliers[id] = cur
		return nil
	})
}

func (r *SupplierRepo) List(_ context.Context, onlyActive bool) ([]*entity.Supplier, error) {
	var out []*entity.Supplier
	err := r.db.do(func(st *state, _ time.Time) error {
		for _, s := range st.suppliers {
			s := s
			if onlyActive && !s.Active {
				continue
			}
			out = append(out, &s)
		}
		sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
		return nil
	})
	return out, err
}

// CustomerRepo implementa repository.CustomerRepository.
type CustomerRepo struct{ db accessor }

var _ repository.CustomerRepository = (*CustomerRepo)(nil)

func (r *CustomerRepo) Create(_ context.Context, c *entity.Customer) error {
	return r.db.do(func(st *state, now time.Time) error {
		c.ID = st.next("customers")
		c.CreatedAt = now
		st.customers[c.ID] = *c
		return nil
	})
}

func (r *CustomerRepo) GetByID(_ context.Context, id int64) (*entity.Customer, error) {
	var out *entity.Customer
	err := r.db.do(func(st *state, _ time.Time) error {
		if c, ok := st.customers[id]; ok {
			out = &c
		}
		return nil
	})
	return out, err
}

func (r *CustomerRepo) Update(_ context.Context, c *entity.Customer) error {
	return r.db.do(func(st *state, _ time.Time) error {
		cur, ok := st.customers[c.ID]
		if !ok {
			return domain.ErrNotFound
		}
		cur.Name, cur.Phone, cur.Email = c.Name, c.Phone, c.Email
		st.customers[c.ID] = cur
		*c = cur
		return nil
	})
}

func (r *CustomerRepo) SetActive(_ context.Context, id int64, active bool) error {
	return r.db.do(func(st *state, _ time.Time) error {
		cur, ok := st.customers[id]
		if !ok {
			return domain.ErrNotFound
		}
		cur.Active = active
		st.customers[id] = cur
		return nil
	})
}

func (r *CustomerRepo) List(_ context.Context, onlyActive bool) ([]*entity.Customer, error) {
	var out []*entity.Customer
	err := r.db.do(func(st *state, _ time.Time) error {
		for _, c := range st.customers {
			c := c
			if onlyActive && !c.Active {
				continue
			}
			out = append(out, &c)
		}
		sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
		return nil
	})
	return out, err
}

package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/inventario-pos/internal/domain"
	"github.com/jhoicas/inventario-pos/internal/domain/entity"
	"github.com/jhoicas/inventario-pos/internal/domain/repository"
)

var (
	_ repository.CategoryRepository = (*CategoryRepo)(nil)
	_ repository.SupplierRepository = (*SupplierRepo)(nil)
	_ repository.CustomerRepository = (*CustomerRepo)(nil)
)

// CategoryRepo categorías de producto.
type CategoryRepo struct {
	q Querier
}

func NewCategoryRepository(q Querier) *CategoryRepo {
	return &CategoryRepo{q: q}
}

func (r *CategoryRepo) Create(ctx context.Context, c *entity.Category) error {
	err := r.q.QueryRow(ctx,
		`INSERT INTO categories (name, description) VALUES ($1, $2) RETURNING id, created_at`,
		c.Name, c.Description,
	).Scan(&c.ID, &c.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert category: %w", err)
	}
	return nil
}

func (r *CategoryRepo) GetByID(ctx context.Context, id int64) (*entity.Category, error) {
	var c entity.Category
	err := r.q.QueryRow(ctx, `SELECT id, name, description, created_at FROM categories WHERE id = $1`, id).
		Scan(&c.ID, &c.Name, &c.Description, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get category: %w", err)
	}
	return &c, nil
}

func (r *CategoryRepo) Update(ctx context.Context, c *entity.Category) error {
	err := r.q.QueryRow(ctx,
		`UPDATE categories SET name = $2, description = $3 WHERE id = $1 RETURNING created_at`,
		c.ID, c.Name, c.Description,
	).Scan(&c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrNotFound
		}
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update category: %w", err)
	}
	return nil
}

func (r *CategoryRepo) List(ctx context.Context) ([]*entity.Category, error) {
	rows, err := r.q.Query(ctx, `SELECT id, name, description, created_at FROM categories ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()
	var list []*entity.Category
	for rows.Next() {
		var c entity.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}

// partyStore comparte el SQL de proveedores y clientes: misma forma, distinta tabla.
type partyStore struct {
	q     Querier
	table string
}

func (s partyStore) create(ctx context.Context, name, phone, email string, active bool, id, createdAt any) error {
	err := s.q.QueryRow(ctx,
		fmt.Sprintf(`INSERT INTO %s (name, phone, email, active) VALUES ($1, $2, $3, $4) RETURNING id, created_at`, s.table),
		name, phone, email, active,
	).Scan(id, createdAt)
	if err != nil {
		return fmt.Errorf("insert %s: %w", s.table, err)
	}
	return nil
}

func (s partyStore) get(ctx context.Context, id int64, dst ...any) (bool, error) {
	err := s.q.QueryRow(ctx,
		fmt.Sprintf(`SELECT id, name, phone, email, active, created_at FROM %s WHERE id = $1`, s.table), id,
	).Scan(dst...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("get %s: %w", s.table, err)
	}
	return true, nil
}

func (s partyStore) update(ctx context.Context, id int64, name, phone, email string, active, createdAt any) error {
	err := s.q.QueryRow(ctx,
		fmt.Sprintf(`UPDATE %s SET name = $2, phone = $3, email = $4 WHERE id = $1 RETURNING active, created_at`, s.table),
		id, name, phone, email,
	).Scan(active, createdAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("update %s: %w", s.table, err)
	}
	return nil
}

func (s partyStore) setActive(ctx context.Context, id int64, active bool) error {
	tag, err := s.q.Exec(ctx, fmt.Sprintf(`UPDATE %s SET active = $2 WHERE id = $1`, s.table), id, active)
	if err != nil {
		return fmt.Errorf("set %s active: %w", s.table, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (s partyStore) list(ctx context.Context, onlyActive bool, scan func(pgx.Rows) error) error {
	query := fmt.Sprintf(`SELECT id, name, phone, email, active, created_at FROM %s`, s.table)
	if onlyActive {
		query += ` WHERE active`
	}
	rows, err := s.q.Query(ctx, query+` ORDER BY name`)
	if err != nil {
		return fmt.Errorf("list %s: %w", s.table, err)
	}
	defer rows.Close()
	for rows.Next() {
		if err := scan(rows); err != nil {
			return fmt.Errorf("scan %s: %w", s.table, err)
		}
	}
	return rows.Err()
}

// SupplierRepo proveedores.
type SupplierRepo struct{ s partyStore }

func NewSupplierRepository(q Querier) *SupplierRepo {
	return &SupplierRepo{s: partyStore{q: q, table: "suppliers"}}
}

func (r *SupplierRepo) Create(ctx context.Context, v *entity.Supplier) error {
	return r.s.create(ctx, v.Name, v.Phone, v.Email, v.Active, &v.ID, &v.CreatedAt)
}

func (r *SupplierRepo) GetByID(ctx context.Context, id int64) (*entity.Supplier, error) {
	var v entity.Supplier
	ok, err := r.s.get(ctx, id, &v.ID, &v.Name, &v.Phone, &v.Email, &v.Active, &v.CreatedAt)
	if err != nil || !ok {
		return nil, err
	}
	return &v, nil
}

func (r *SupplierRepo) Update(ctx context.Context, v *entity.Supplier) error {
	return r.s.update(ctx, v.ID, v.Name, v.Phone, v.Email, &v.Active, &v.CreatedAt)
}

func (r *SupplierRepo) SetActive(ctx context.Context, id int64, active bool) error {
	return r.s.setActive(ctx, id, active)
}

func (r *SupplierRepo) List(ctx context.Context, onlyActive bool) ([]*entity.Supplier, error) {
	var list []*entity.Supplier
	err := r.s.list(ctx, onlyActive, func(rows pgx.Rows) error {
		var v entity.Supplier
		if err := rows.Scan(&v.ID, &v.Name, &v.Phone, &v.Email, &v.Active, &v.CreatedAt); err != nil {
			return err
		}
		list = append(list, &v)
		return nil
	})
	return list, err
}

// CustomerRepo clientes.
type CustomerRepo struct{ s partyStore }

func NewCustomerRepository(q Querier) *CustomerRepo {
	return &CustomerRepo{s: partyStore{q: q, table: "customers"}}
}

func (r *CustomerRepo) Create(ctx context.Context, v *entity.Customer) error {
	return r.s.create(ctx, v.Name, v.Phone, v.Email, v.Active, &v.ID, &v.CreatedAt)
}

func (r *CustomerRepo) GetByID(ctx context.Context, id int64) (*entity.Customer, error) {
	var v entity.Customer
	ok, err := r.s.get(ctx, id, &v.ID, &v.Name, &v.Phone, &v.Email, &v.Active, &v.CreatedAt)
	if err != nil || !ok {
		return nil, err
	}
	return &v, nil
}

func (r *CustomerRepo) Update(ctx context.Context, v *entity.Customer) error {
	return r.s.update(ctx, v.ID, v.Name, v.Phone, v.Email, &v.Active, &v.CreatedAt)
}

func (r *CustomerRepo) SetActive(ctx context.Context, id int64, active bool) error {
	return r.s.setActive(ctx, id, active)
}

func (r *CustomerRepo) List(ctx context.Context, onlyActive bool) ([]*entity.Customer, error) {
	var list []*entity.Customer
	err := r.s.list(ctx, onlyActive, func(rows pgx.Rows) error {
		var v entity.Customer
		if err := rows.Scan(&v.ID, &v.Name, &v.Phone, &v.Email, &v.Active, &v.CreatedAt); err != nil {
			return err
		}
		list = append(list, &v)
		return nil
	})
	return list, err
}

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

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

const productColumns = `id, category_id, name, description, price, stock, active, image, created_at, updated_at`

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	err := row.Scan(&p.ID, &p.CategoryID, &p.Name, &p.Description, &p.Price, &p.Stock,
		&p.Active, &p.Image, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Create persiste un nuevo producto con stock 0. El stock inicial entra por el libro.
func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	query := `
		INSERT INTO products (category_id, name, description, price, stock, active, image)
		VALUES ($1, $2, $3, $4, 0, $5, $6)
		RETURNING id, stock, created_at, updated_at`
	err := r.q.QueryRow(ctx, query, p.CategoryID, p.Name, p.Description, p.Price, p.Active, p.Image).
		Scan(&p.ID, &p.Stock, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID.
func (r *ProductRepo) GetByID(ctx context.Context, id int64) (*entity.Product, error) {
	p, err := scanProduct(r.q.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

// GetForUpdate bloquea la fila del producto hasta el fin de la transacción.
func (r *ProductRepo) GetForUpdate(ctx context.Context, id int64) (*entity.Product, error) {
	p, err := scanProduct(r.q.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1 FOR UPDATE`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("lock product %d: %w", id, err)
	}
	return p, nil
}

// UpdateStock escribe el stock calculado por el libro. La restricción CHECK (stock >= 0) es la
// última barrera si algún llamador se saltara la política de movimientos.
func (r *ProductRepo) UpdateStock(ctx context.Context, id, stock int64) error {
	tag, err := r.q.Exec(ctx, `UPDATE products SET stock = $2, updated_at = now() WHERE id = $1`, id, stock)
	if err != nil {
		if pgCode(err) == codeCheckViolation {
			return domain.ErrInsufficientStock
		}
		return fmt.Errorf("update stock: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}

// Update modifica datos de catálogo; nunca toca stock ni estado.
func (r *ProductRepo) Update(ctx context.Context, p *entity.Product) error {
	query := `
		UPDATE products
		SET category_id = $2, name = $3, description = $4, price = $5, image = $6, updated_at = now()
		WHERE id = $1
		RETURNING stock, active, created_at, updated_at`
	err := r.q.QueryRow(ctx, query, p.ID, p.CategoryID, p.Name, p.Description, p.Price, p.Image).
		Scan(&p.Stock, &p.Active, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrNotFound
		}
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("update product: %w", err)
	}
	return nil
}

// SetActive activa o desactiva el producto.
func (r *ProductRepo) SetActive(ctx context.Context, id int64, active bool) error {
	tag, err := r.q.Exec(ctx, `UPDATE products SET active = $2, updated_at = now() WHERE id = $1`, id, active)
	if err != nil {
		return fmt.Errorf("set product active: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista productos con el nombre de su categoría.
func (r *ProductRepo) List(ctx context.Context, f repository.ProductFilter) ([]*entity.ProductView, error) {
	query := `
		SELECT p.id, p.category_id, p.name, p.description, p.price, p.stock, p.active, p.image,
		       p.created_at, p.updated_at, COALESCE(c.name, '')
		FROM products p
		LEFT JOIN categories c ON c.id = p.category_id
		WHERE 1 = 1`
	var args []any
	pos := 1
	if f.OnlyActive {
		query += " AND p.active"
	}
	if f.CategoryID != nil {
		query += fmt.Sprintf(" AND p.category_id = $%d", pos)
		args = append(args, *f.CategoryID)
		pos++
	}
	if f.Search != "" {
		query += fmt.Sprintf(" AND p.name ILIKE '%%' || $%d || '%%'", pos)
		args = append(args, f.Search)
		pos++
	}
	limit, offset := limitOffset(f.Page.Limit, f.Page.Offset)
	query += fmt.Sprintf(" ORDER BY p.id LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, offset)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var list []*entity.ProductView
	for rows.Next() {
		var v entity.ProductView
		if err := rows.Scan(&v.ID, &v.CategoryID, &v.Name, &v.Description, &v.Price, &v.Stock,
			&v.Active, &v.Image, &v.CreatedAt, &v.UpdatedAt, &v.CategoryName); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, &v)
	}
	return list, rows.Err()
}

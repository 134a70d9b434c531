package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/inventario-pos/internal/domain/entity"
	"github.com/jhoicas/inventario-pos/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

// StockMovementRepo libro de inventario sobre PostgreSQL. La tabla rechaza UPDATE y DELETE
// mediante trigger; este adaptador solo inserta y lee.
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

// Append inserta un movimiento.
func (r *StockMovementRepo) Append(ctx context.Context, m *entity.StockMovement) error {
	query := `
		INSERT INTO stock_movements (product_id, kind, quantity, stock_before, stock_after, user_id,
		                             reference_type, reference_id, note)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at`
	err := r.q.QueryRow(ctx, query,
		m.ProductID, string(m.Kind), m.Quantity, m.StockBefore, m.StockAfter, m.UserID,
		m.ReferenceType, m.ReferenceID, m.Note,
	).Scan(&m.ID, &m.CreatedAt)
	if err != nil {
		return fmt.Errorf("append stock movement: %w", err)
	}
	return nil
}

const movementViewSelect = `
	SELECT m.id, m.product_id, m.kind, m.quantity, m.stock_before, m.stock_after, m.user_id,
	       m.reference_type, m.reference_id, m.note, m.created_at,
	       p.name, p.image, COALESCE(u.name, '')
	FROM stock_movements m
	JOIN products p ON p.id = m.product_id
	LEFT JOIN users u ON u.id = m.user_id`

func scanMovementView(rows pgx.Rows) (*entity.StockMovementView, error) {
	var v entity.StockMovementView
	var kind string
	err := rows.Scan(&v.ID, &v.ProductID, &kind, &v.Quantity, &v.StockBefore, &v.StockAfter, &v.UserID,
		&v.ReferenceType, &v.ReferenceID, &v.Note, &v.CreatedAt,
		&v.ProductName, &v.ProductImage, &v.UserName)
	if err != nil {
		return nil, err
	}
	v.Kind = entity.MovementKind(kind)
	return &v, nil
}

// List devuelve los movimientos más recientes primero, con nombre de producto y usuario.
func (r *StockMovementRepo) List(ctx context.Context, f repository.MovementFilter) ([]*entity.StockMovementView, error) {
	query := movementViewSelect + ` WHERE 1 = 1`
	var args []any
	pos := 1
	if f.ProductID != nil {
		query += fmt.Sprintf(" AND m.product_id = $%d", pos)
		args = append(args, *f.ProductID)
		pos++
	}
	if f.Kind != "" {
		query += fmt.Sprintf(" AND m.kind = $%d", pos)
		args = append(args, string(f.Kind))
		pos++
	}
	if f.From != nil {
		query += fmt.Sprintf(" AND m.created_at >= $%d", pos)
		args = append(args, *f.From)
		pos++
	}
	if f.To != nil {
		query += fmt.Sprintf(" AND m.created_at <= $%d", pos)
		args = append(args, *f.To)
		pos++
	}
	limit, offset := limitOffset(f.Page.Limit, f.Page.Offset)
	query += fmt.Sprintf(" ORDER BY m.id DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, offset)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list stock movements: %w", err)
	}
	defer rows.Close()

	var list []*entity.StockMovementView
	for rows.Next() {
		v, err := scanMovementView(rows)
		if err != nil {
			return nil, fmt.Errorf("scan stock movement: %w", err)
		}
		list = append(list, v)
	}
	return list, rows.Err()
}

const movementSelect = `
	SELECT id, product_id, kind, quantity, stock_before, stock_after, user_id,
	       reference_type, reference_id, note, created_at
	FROM stock_movements`

func scanMovement(rows pgx.Rows) (*entity.StockMovement, error) {
	var m entity.StockMovement
	var kind string
	err := rows.Scan(&m.ID, &m.ProductID, &kind, &m.Quantity, &m.StockBefore, &m.StockAfter, &m.UserID,
		&m.ReferenceType, &m.ReferenceID, &m.Note, &m.CreatedAt)
	if err != nil {
		return nil, err
	}
	m.Kind = entity.MovementKind(kind)
	return &m, nil
}

// ListByProduct devuelve la historia completa de un producto en orden de inserción.
func (r *StockMovementRepo) ListByProduct(ctx context.Context, productID int64) ([]*entity.StockMovement, error) {
	rows, err := r.q.Query(ctx, movementSelect+` WHERE product_id = $1 ORDER BY id`, productID)
	if err != nil {
		return nil, fmt.Errorf("list product history: %w", err)
	}
	defer rows.Close()

	var list []*entity.StockMovement
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, fmt.Errorf("scan stock movement: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

// ListAll recorre el libro completo sin cargarlo en memoria.
func (r *StockMovementRepo) ListAll(ctx context.Context, fn func(*entity.StockMovement) error) error {
	rows, err := r.q.Query(ctx, movementSelect+` ORDER BY id`)
	if err != nil {
		return fmt.Errorf("scan ledger: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return fmt.Errorf("scan stock movement: %w", err)
		}
		if err := fn(m); err != nil {
			return err
		}
	}
	return rows.Err()
}

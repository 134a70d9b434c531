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

var _ repository.OrderRepository = (*OrderRepo)(nil)

// orderTables nombres de tablas y columnas por tipo de orden. Compras y ventas comparten forma
// pero viven en tablas separadas.
type orderTables struct {
	header     string // purchases | sales
	lines      string // purchase_lines | sale_lines
	fk         string // purchase_id | sale_id
	party      string // supplier_id | customer_id
	partyTable string // suppliers | customers
	amount     string // unit_cost | unit_price
}

var tablesByKind = map[entity.OrderKind]orderTables{
	entity.OrderPurchase: {"purchases", "purchase_lines", "purchase_id", "supplier_id", "suppliers", "unit_cost"},
	entity.OrderSale:     {"sales", "sale_lines", "sale_id", "customer_id", "customers", "unit_price"},
}

// partyFK nombre por defecto que PostgreSQL da a la FK de la contraparte (p. ej. sales_customer_id_fkey).
func (t orderTables) partyFK() string { return t.header + "_" + t.party + "_fkey" }

func tablesFor(kind entity.OrderKind) (orderTables, error) {
	t, ok := tablesByKind[kind]
	if !ok {
		return orderTables{}, domain.ErrInvalidOrderKind
	}
	return t, nil
}

// OrderRepo implementación del puerto OrderRepository sobre PostgreSQL (usable con pool o tx).
type OrderRepo struct {
	q Querier
}

// NewOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

// Create inserta la cabecera. Solo la FK de la contraparte se traduce a error de dominio; la del
// usuario (token de un usuario borrado) queda como error interno.
func (r *OrderRepo) Create(ctx context.Context, o *entity.Order) error {
	t, err := tablesFor(o.Kind)
	if err != nil {
		return err
	}
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, user_id, total, status)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`, t.header, t.party)
	err = r.q.QueryRow(ctx, query, o.CounterpartyID, o.UserID, o.Total, o.Status).Scan(&o.ID, &o.CreatedAt)
	if err != nil {
		if isForeignKeyViolation(err) && violatedConstraint(err) == t.partyFK() {
			return domain.ErrCounterpartyNotFound
		}
		return fmt.Errorf("insert %s: %w", t.header, err)
	}
	return nil
}

// CreateLine inserta una línea de la orden.
func (r *OrderRepo) CreateLine(ctx context.Context, kind entity.OrderKind, l *entity.OrderLine) error {
	t, err := tablesFor(kind)
	if err != nil {
		return err
	}
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, product_id, quantity, %s, subtotal)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`, t.lines, t.fk, t.amount)
	err = r.q.QueryRow(ctx, query, l.OrderID, l.ProductID, l.Quantity, l.UnitAmount, l.Subtotal).Scan(&l.ID)
	if err != nil {
		return fmt.Errorf("insert %s: %w", t.lines, err)
	}
	return nil
}

// GetForUpdate bloquea la cabecera para serializar anulaciones concurrentes.
func (r *OrderRepo) GetForUpdate(ctx context.Context, kind entity.OrderKind, id int64) (*entity.Order, error) {
	t, err := tablesFor(kind)
	if err != nil {
		return nil, err
	}
	query := fmt.Sprintf(`
		SELECT id, %s, user_id, total, status, created_at
		FROM %s WHERE id = $1 FOR UPDATE`, t.party, t.header)
	o := entity.Order{Kind: kind}
	err = r.q.QueryRow(ctx, query, id).Scan(&o.ID, &o.CounterpartyID, &o.UserID, &o.Total, &o.Status, &o.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("lock %s: %w", t.header, err)
	}
	return &o, nil
}

// UpdateStatus cambia el estado de la cabecera.
func (r *OrderRepo) UpdateStatus(ctx context.Context, kind entity.OrderKind, id int64, status string) error {
	t, err := tablesFor(kind)
	if err != nil {
		return err
	}
	tag, err := r.q.Exec(ctx, fmt.Sprintf(`UPDATE %s SET status = $2 WHERE id = $1`, t.header), id, status)
	if err != nil {
		return fmt.Errorf("update %s status: %w", t.header, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrOrderNotFound
	}
	return nil
}

// GetLines devuelve las líneas en el orden en que se registraron.
func (r *OrderRepo) GetLines(ctx context.Context, kind entity.OrderKind, orderID int64) ([]*entity.OrderLine, error) {
	t, err := tablesFor(kind)
	if err != nil {
		return nil, err
	}
	query := fmt.Sprintf(`
		SELECT id, %s, product_id, quantity, %s, subtotal
		FROM %s WHERE %s = $1 ORDER BY id`, t.fk, t.amount, t.lines, t.fk)
	rows, err := r.q.Query(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", t.lines, err)
	}
	defer rows.Close()

	var list []*entity.OrderLine
	for rows.Next() {
		var l entity.OrderLine
		if err := rows.Scan(&l.ID, &l.OrderID, &l.ProductID, &l.Quantity, &l.UnitAmount, &l.Subtotal); err != nil {
			return nil, fmt.Errorf("scan %s: %w", t.lines, err)
		}
		list = append(list, &l)
	}
	return list, rows.Err()
}

func (t orderTables) summarySelect() string {
	return fmt.Sprintf(`
		SELECT o.id, o.%s, o.user_id, o.total, o.status, o.created_at,
		       COALESCE(cp.name, ''), COALESCE(u.name, '')
		FROM %s o
		LEFT JOIN %s cp ON cp.id = o.%s
		LEFT JOIN users u ON u.id = o.user_id`, t.party, t.header, t.partyTable, t.party)
}

func scanSummary(row pgx.Row, kind entity.OrderKind) (*entity.OrderSummary, error) {
	s := entity.OrderSummary{Order: entity.Order{Kind: kind}}
	err := row.Scan(&s.ID, &s.CounterpartyID, &s.UserID, &s.Total, &s.Status, &s.CreatedAt,
		&s.CounterpartyName, &s.UserName)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// GetSummary obtiene la cabecera con nombres de contraparte y usuario.
func (r *OrderRepo) GetSummary(ctx context.Context, kind entity.OrderKind, id int64) (*entity.OrderSummary, error) {
	t, err := tablesFor(kind)
	if err != nil {
		return nil, err
	}
	s, err := scanSummary(r.q.QueryRow(ctx, t.summarySelect()+` WHERE o.id = $1`, id), kind)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get %s: %w", t.header, err)
	}
	return s, nil
}

// GetLineViews devuelve las líneas con nombre e imagen del producto.
func (r *OrderRepo) GetLineViews(ctx context.Context, kind entity.OrderKind, orderID int64) ([]*entity.OrderLineView, error) {
	t, err := tablesFor(kind)
	if err != nil {
		return nil, err
	}
	query := fmt.Sprintf(`
		SELECT l.id, l.%s, l.product_id, l.quantity, l.%s, l.subtotal, p.name, p.image
		FROM %s l
		JOIN products p ON p.id = l.product_id
		WHERE l.%s = $1 ORDER BY l.id`, t.fk, t.amount, t.lines, t.fk)
	rows, err := r.q.Query(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", t.lines, err)
	}
	defer rows.Close()

	var list []*entity.OrderLineView
	for rows.Next() {
		var v entity.OrderLineView
		if err := rows.Scan(&v.ID, &v.OrderID, &v.ProductID, &v.Quantity, &v.UnitAmount, &v.Subtotal,
			&v.ProductName, &v.ProductImage); err != nil {
			return nil, fmt.Errorf("scan %s: %w", t.lines, err)
		}
		list = append(list, &v)
	}
	return list, rows.Err()
}

// List lista órdenes, la más reciente primero.
func (r *OrderRepo) List(ctx context.Context, kind entity.OrderKind, page repository.Page) ([]*entity.OrderSummary, error) {
	t, err := tablesFor(kind)
	if err != nil {
		return nil, err
	}
	limit, offset := limitOffset(page.Limit, page.Offset)
	rows, err := r.q.Query(ctx, t.summarySelect()+` ORDER BY o.id DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", t.header, err)
	}
	defer rows.Close()

	var list []*entity.OrderSummary
	for rows.Next() {
		s, err := scanSummary(rows, kind)
		if err != nil {
			return nil, fmt.Errorf("scan %s: %w", t.header, err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

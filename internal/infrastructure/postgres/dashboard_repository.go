package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/inventario-pos/internal/domain/entity"
	"github.com/jhoicas/inventario-pos/internal/domain/repository"
)

var _ repository.DashboardRepository = (*DashboardRepo)(nil)

// DashboardRepo consultas de solo lectura del tablero. Solo cuentan órdenes registradas.
type DashboardRepo struct {
	q Querier
}

// NewDashboardRepository construye el adaptador sobre el pool.
func NewDashboardRepository(q Querier) *DashboardRepo {
	return &DashboardRepo{q: q}
}

// GetTotals suma ventas, compras y gastos desde since.
func (r *DashboardRepo) GetTotals(ctx context.Context, since time.Time) (*repository.SummaryTotals, error) {
	query := `
		SELECT
			(SELECT COALESCE(SUM(total), 0) FROM sales     WHERE status = 'registered' AND created_at >= $1),
			(SELECT COALESCE(SUM(total), 0) FROM purchases WHERE status = 'registered' AND created_at >= $1),
			(SELECT COALESCE(SUM(amount), 0) FROM expenses WHERE created_at >= $1)`
	var t repository.SummaryTotals
	if err := r.q.QueryRow(ctx, query, since).Scan(&t.Sales, &t.Purchases, &t.Expenses); err != nil {
		return nil, fmt.Errorf("dashboard totals: %w", err)
	}
	return &t, nil
}

// GetPopularProducts productos con más unidades vendidas desde since.
func (r *DashboardRepo) GetPopularProducts(ctx context.Context, since time.Time, limit int) ([]repository.PopularProduct, error) {
	query := `
		SELECT p.id, p.name, p.image, SUM(l.quantity)::bigint AS units
		FROM sale_lines l
		JOIN sales s    ON s.id = l.sale_id
		JOIN products p ON p.id = l.product_id
		WHERE s.status = 'registered' AND s.created_at >= $1
		GROUP BY p.id, p.name, p.image
		ORDER BY units DESC, p.id
		LIMIT $2`
	rows, err := r.q.Query(ctx, query, since, limit)
	if err != nil {
		return nil, fmt.Errorf("dashboard popular products: %w", err)
	}
	defer rows.Close()
	var out []repository.PopularProduct
	for rows.Next() {
		var p repository.PopularProduct
		if err := rows.Scan(&p.ProductID, &p.Name, &p.Image, &p.UnitsSold); err != nil {
			return nil, fmt.Errorf("scan popular product: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// GetLowStock productos activos con stock en o bajo el umbral, el más escaso primero.
func (r *DashboardRepo) GetLowStock(ctx context.Context, threshold int64) ([]repository.LowStockProduct, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, name, image, stock FROM products
		WHERE active AND stock <= $1
		ORDER BY stock, id`, threshold)
	if err != nil {
		return nil, fmt.Errorf("dashboard low stock: %w", err)
	}
	defer rows.Close()
	var out []repository.LowStockProduct
	for rows.Next() {
		var p repository.LowStockProduct
		if err := rows.Scan(&p.ProductID, &p.Name, &p.Image, &p.Stock); err != nil {
			return nil, fmt.Errorf("scan low stock: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// GetRecentActivity últimos movimientos del libro desde since.
func (r *DashboardRepo) GetRecentActivity(ctx context.Context, since time.Time, limit int) ([]*entity.StockMovementView, error) {
	rows, err := r.q.Query(ctx, movementViewSelect+` WHERE m.created_at >= $1 ORDER BY m.id DESC LIMIT $2`, since, limit)
	if err != nil {
		return nil, fmt.Errorf("dashboard recent activity: %w", err)
	}
	defer rows.Close()
	var out []*entity.StockMovementView
	for rows.Next() {
		v, err := scanMovementView(rows)
		if err != nil {
			return nil, fmt.Errorf("scan recent activity: %w", err)
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

// GetFinanceSeries un registro por día desde since hasta hoy; los días sin datos van en cero.
func (r *DashboardRepo) GetFinanceSeries(ctx context.Context, since time.Time) ([]repository.FinanceDay, error) {
	query := `
		WITH days AS (
			SELECT generate_series(date_trunc('day', $1::timestamptz), date_trunc('day', now()), interval '1 day')::date AS day
		),
		s AS (
			SELECT created_at::date AS day, SUM(total) AS total FROM sales
			WHERE status = 'registered' AND created_at >= $1 GROUP BY 1
		),
		p AS (
			SELECT created_at::date AS day, SUM(total) AS total FROM purchases
			WHERE status = 'registered' AND created_at >= $1 GROUP BY 1
		),
		e AS (
			SELECT created_at::date AS day, SUM(amount) AS total FROM expenses
			WHERE created_at >= $1 GROUP BY 1
		)
		SELECT to_char(d.day, 'YYYY-MM-DD'),
		       COALESCE(s.total, 0), COALESCE(p.total, 0), COALESCE(e.total, 0)
		FROM days d
		LEFT JOIN s ON s.day = d.day
		LEFT JOIN p ON p.day = d.day
		LEFT JOIN e ON e.day = d.day
		ORDER BY d.day`
	rows, err := r.q.Query(ctx, query, since)
	if err != nil {
		return nil, fmt.Errorf("dashboard finance series: %w", err)
	}
	defer rows.Close()
	var out []repository.FinanceDay
	for rows.Next() {
		var d repository.FinanceDay
		if err := rows.Scan(&d.Day, &d.Sales, &d.Purchases, &d.Expenses); err != nil {
			return nil, fmt.Errorf("scan finance day: %w", err)
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

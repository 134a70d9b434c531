package memstore

import (
	"context"
	"sort"
	"time"

	"github.com/jhoicas/inventario-pos/internal/domain/entity"
	"github.com/jhoicas/inventario-pos/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// DashboardRepo implementa repository.DashboardRepository sobre el estado en memoria.
type DashboardRepo struct{ db accessor }

var _ repository.DashboardRepository = (*DashboardRepo)(nil)

func (r *DashboardRepo) GetTotals(_ context.Context, since time.Time) (*repository.SummaryTotals, error) {
	out := &repository.SummaryTotals{}
	err := r.db.do(func(st *state, _ time.Time) error {
		out.Sales = sumOrders(st, entity.OrderSale, since)
		out.Purchases = sumOrders(st, entity.OrderPurchase, since)
		for _, e := range st.expenses {
			if !e.CreatedAt.Before(since) {
				out.Expenses = out.Expenses.Add(e.Amount)
			}
		}
		return nil
	})
	return out, err
}

func sumOrders(st *state, kind entity.OrderKind, since time.Time) decimal.Decimal {
	total := decimal.Zero
	for _, o := range st.orders[kind] {
		if o.Status == entity.OrderStatusRegistered && !o.CreatedAt.Before(since) {
			total = total.Add(o.Total)
		}
	}
	return total
}

func (r *DashboardRepo) GetPopularProducts(_ context.Context, since time.Time, limit int) ([]repository.PopularProduct, error) {
	var out []repository.PopularProduct
	err := r.db.do(func(st *state, _ time.Time) error {
		units := map[int64]int64{}
		for _, l := range st.lines[entity.OrderSale] {
			o := st.orders[entity.OrderSale][l.OrderID]
			if o.Status == entity.OrderStatusRegistered && !o.CreatedAt.Before(since) {
				units[l.ProductID] += l.Quantity
			}
		}
		for id, n := range units {
			p := st.products[id]
			out = append(out, repository.PopularProduct{ProductID: id, Name: p.Name, Image: p.Image, UnitsSold: n})
		}
		sort.Slice(out, func(i, j int) bool {
			if out[i].UnitsSold != out[j].UnitsSold {
				return out[i].UnitsSold > out[j].UnitsSold
			}
			return out[i].ProductID < out[j].ProductID
		})
		out = paginate(out, repository.Page{Limit: limit})
		return nil
	})
	return out, err
}

func (r *DashboardRepo) GetLowStock(_ context.Context, threshold int64) ([]repository.LowStockProduct, error) {
	var out []repository.LowStockProduct
	err := r.db.do(func(st *state, _ time.Time) error {
		for _, p := range st.products {
			if p.Active && p.Stock <= threshold {
				out = append(out, repository.LowStockProduct{ProductID: p.ID, Name: p.Name, Image: p.Image, Stock: p.Stock})
			}
		}
		sort.Slice(out, func(i, j int) bool {
			if out[i].Stock != out[j].Stock {
				return out[i].Stock < out[j].Stock
			}
			return out[i].ProductID < out[j].ProductID
		})
		return nil
	})
	return out, err
}

func (r *DashboardRepo) GetRecentActivity(_ context.Context, since time.Time, limit int) ([]*entity.StockMovementView, error) {
	var out []*entity.StockMovementView
	err := r.db.do(func(st *state, _ time.Time) error {
		for i := len(st.movements) - 1; i >= 0 && (limit <= 0 || len(out) < limit); i-- {
			m := st.movements[i]
			if !m.CreatedAt.Before(since) {
				out = append(out, movementView(st, m))
			}
		}
		return nil
	})
	return out, err
}

func (r *DashboardRepo) GetFinanceSeries(_ context.Context, since time.Time) ([]repository.FinanceDay, error) {
	var out []repository.FinanceDay
	err := r.db.do(func(st *state, now time.Time) error {
		index := map[string]int{}
		start := time.Date(since.Year(), since.Month(), since.Day(), 0, 0, 0, 0, since.Location())
		for d := start; !d.After(now); d = d.AddDate(0, 0, 1) {
			key := d.Format("2006-01-02")
			index[key] = len(out)
			out = append(out, repository.FinanceDay{Day: key, Sales: decimal.Zero, Purchases: decimal.Zero, Expenses: decimal.Zero})
		}
		add := func(at time.Time, apply func(*repository.FinanceDay)) {
			if at.Before(since) {
				return
			}
			if i, ok := index[at.In(since.Location()).Format("2006-01-02")]; ok {
				apply(&out[i])
			}
		}
		for _, o := range st.orders[entity.OrderSale] {
			if o.Status == entity.OrderStatusRegistered {
				add(o.CreatedAt, func(d *repository.FinanceDay) { d.Sales = d.Sales.Add(o.Total) })
			}
		}
		for _, o := range st.orders[entity.OrderPurchase] {
			if o.Status == entity.OrderStatusRegistered {
				add(o.CreatedAt, func(d *repository.FinanceDay) { d.Purchases = d.Purchases.Add(o.Total) })
			}
		}
		for _, e := range st.expenses {
			add(e.CreatedAt, func(d *repository.FinanceDay) { d.Expenses = d.Expenses.Add(e.Amount) })
		}
		return nil
	})
	return out, err
}

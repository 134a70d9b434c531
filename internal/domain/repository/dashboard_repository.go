package repository

import (
	"context"
	"time"

	"github.com/jhoicas/inventario-pos/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// SummaryTotals resultado crudo de los totales del período (solo órdenes registradas).
type SummaryTotals struct {
	Sales     decimal.Decimal
	Purchases decimal.Decimal
	Expenses  decimal.Decimal
}

// PopularProduct unidades vendidas por producto.
type PopularProduct struct {
	ProductID int64
	Name      string
	Image     string
	UnitsSold int64
}

// LowStockProduct producto activo con stock en o bajo el umbral.
type LowStockProduct struct {
	ProductID int64
	Name      string
	Image     string
	Stock     int64
}

// FinanceDay fila de la serie diaria de ventas, compras y gastos.
type FinanceDay struct {
	Day       string // YYYY-MM-DD
	Sales     decimal.Decimal
	Purchases decimal.Decimal
	Expenses  decimal.Decimal
}

// DashboardRepository define las consultas de lectura del tablero. No modifica datos.
type DashboardRepository interface {
	GetTotals(ctx context.Context, since time.Time) (*SummaryTotals, error)
	GetPopularProducts(ctx context.Context, since time.Time, limit int) ([]PopularProduct, error)
	GetLowStock(ctx context.Context, threshold int64) ([]LowStockProduct, error)
	GetRecentActivity(ctx context.Context, since time.Time, limit int) ([]*entity.StockMovementView, error)
	// GetFinanceSeries devuelve un registro por día desde since hasta hoy, con ceros en días sin datos.
	GetFinanceSeries(ctx context.Context, since time.Time) ([]FinanceDay, error)
}

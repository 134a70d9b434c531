package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SummaryTotalsDTO totales del período.
type SummaryTotalsDTO struct {
	Sales     decimal.Decimal `json:"sales"`
	Purchases decimal.Decimal `json:"purchases"`
	Expenses  decimal.Decimal `json:"expenses"`
	Balance   decimal.Decimal `json:"balance"` // ventas - compras - gastos
}

// PopularProductDTO producto más vendido del período.
type PopularProductDTO struct {
	ProductID int64  `json:"product_id"`
	Name      string `json:"name"`
	Image     string `json:"image,omitempty"`
	UnitsSold int64  `json:"units_sold"`
}

// LowStockDTO producto activo en o bajo el umbral.
type LowStockDTO struct {
	ProductID int64  `json:"product_id"`
	Name      string `json:"name"`
	Image     string `json:"image,omitempty"`
	Stock     int64  `json:"stock"`
}

// FinanceDayDTO punto de la serie diaria.
type FinanceDayDTO struct {
	Day       string          `json:"day"`
	Sales     decimal.Decimal `json:"sales"`
	Purchases decimal.Decimal `json:"purchases"`
	Expenses  decimal.Decimal `json:"expenses"`
}

// DashboardSummaryDTO respuesta de GET /api/dashboard/summary.
type DashboardSummaryDTO struct {
	Period         string              `json:"period"`
	Since          time.Time           `json:"since"`
	Totals         SummaryTotalsDTO    `json:"totals"`
	Popular        []PopularProductDTO `json:"popular_products"`
	LowStock       []LowStockDTO       `json:"low_stock"`
	RecentActivity []MovementResponse  `json:"recent_activity"`
	Series         []FinanceDayDTO     `json:"series"`
}

// ReplenishmentSuggestionDTO producto bajo el umbral con cantidad sugerida de compra,
// priorizado por volumen de ventas reciente.
type ReplenishmentSuggestionDTO struct {
	ProductID         int64  `json:"product_id"`
	ProductName       string `json:"product_name"`
	CurrentStock      int64  `json:"current_stock"`
	Threshold         int64  `json:"threshold"`
	IdealStock        int64  `json:"ideal_stock"`         // umbral * 2, o ventas del período si es mayor
	SuggestedOrderQty int64  `json:"suggested_order_qty"` // IdealStock - CurrentStock
	UnitsSoldLast30d  int64  `json:"units_sold_last_30d"`
	Priority          int    `json:"priority"` // 1 = más urgente
}

package dto

import (
	"time"

	"github.com/jhoicas/inventario-pos/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// PurchaseLineRequest línea de compra (costo unitario).
type PurchaseLineRequest struct {
	ProductID int64           `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitCost  decimal.Decimal `json:"unit_cost"`
}

// CreatePurchaseRequest entrada para registrar una compra.
type CreatePurchaseRequest struct {
	SupplierID *int64                `json:"supplier_id"`
	Lines      []PurchaseLineRequest `json:"lines"`
}

// SaleLineRequest línea de venta (precio unitario).
type SaleLineRequest struct {
	ProductID int64           `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// CreateSaleRequest entrada para registrar una venta. CustomerID es opcional.
type CreateSaleRequest struct {
	CustomerID *int64            `json:"customer_id"`
	Lines      []SaleLineRequest `json:"lines"`
}

// OrderLineResponse salida de una línea de orden.
type OrderLineResponse struct {
	ID           int64           `json:"id"`
	ProductID    int64           `json:"product_id"`
	ProductName  string          `json:"product_name,omitempty"`
	ProductImage string          `json:"product_image,omitempty"`
	Quantity     int64           `json:"quantity"`
	UnitAmount   decimal.Decimal `json:"unit_amount"`
	Subtotal     decimal.Decimal `json:"subtotal"`
}

// OrderResponse salida de una compra o venta.
type OrderResponse struct {
	ID               int64               `json:"id"`
	Kind             string              `json:"kind"`
	CounterpartyID   *int64              `json:"counterparty_id"`
	CounterpartyName string              `json:"counterparty_name,omitempty"`
	UserID           int64               `json:"user_id"`
	UserName         string              `json:"user_name,omitempty"`
	Total            decimal.Decimal     `json:"total"`
	Status           string              `json:"status"`
	CreatedAt        time.Time           `json:"created_at"`
	Lines            []OrderLineResponse `json:"lines,omitempty"`
	Movements        []MovementResponse  `json:"movements,omitempty"`
}

// OrderListResponse lista paginada de órdenes.
type OrderListResponse struct {
	Items []OrderResponse `json:"items"`
	Page  PageResponse    `json:"page"`
}

// NewOrderResponse arma la respuesta desde la cabecera y, si hay, sus líneas y movimientos.
func NewOrderResponse(o *entity.Order, lines []*entity.OrderLine, movs []*entity.StockMovement) OrderResponse {
	resp := OrderResponse{
		ID:             o.ID,
		Kind:           string(o.Kind),
		CounterpartyID: o.CounterpartyID,
		UserID:         o.UserID,
		Total:          o.Total,
		Status:         o.Status,
		CreatedAt:      o.CreatedAt,
	}
	for _, l := range lines {
		resp.Lines = append(resp.Lines, OrderLineResponse{
			ID:         l.ID,
			ProductID:  l.ProductID,
			Quantity:   l.Quantity,
			UnitAmount: l.UnitAmount,
			Subtotal:   l.Subtotal,
		})
	}
	for _, m := range movs {
		resp.Movements = append(resp.Movements, NewMovementResponse(m))
	}
	return resp
}

// NewOrderDetailResponse arma la respuesta de consulta (cabecera con nombres y líneas con producto).
func NewOrderDetailResponse(h *entity.OrderSummary, lines []*entity.OrderLineView) OrderResponse {
	resp := NewOrderResponse(&h.Order, nil, nil)
	resp.CounterpartyName = h.CounterpartyName
	resp.UserName = h.UserName
	resp.Lines = make([]OrderLineResponse, 0, len(lines))
	for _, l := range lines {
		resp.Lines = append(resp.Lines, OrderLineResponse{
			ID:           l.ID,
			ProductID:    l.ProductID,
			ProductName:  l.ProductName,
			ProductImage: l.ProductImage,
			Quantity:     l.Quantity,
			UnitAmount:   l.UnitAmount,
			Subtotal:     l.Subtotal,
		})
	}
	return resp
}

package ports

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/inventario-pos/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// Claves de enrutamiento de los eventos de inventario.
const (
	EventMovementRecorded = "stock.movement.recorded"
	EventLowStock         = "stock.low"
)

// OrderRegisteredKey devuelve order.<kind>.registered.
func OrderRegisteredKey(kind entity.OrderKind) string {
	return fmt.Sprintf("order.%s.registered", kind)
}

// OrderVoidedKey devuelve order.<kind>.voided.
func OrderVoidedKey(kind entity.OrderKind) string {
	return fmt.Sprintf("order.%s.voided", kind)
}

// EventPublisher publica eventos de dominio después del commit.
// Un error de publicación nunca revierte la operación ya confirmada.
type EventPublisher interface {
	Publish(ctx context.Context, routingKey string, payload any) error
}

// NopPublisher descarta los eventos (sin broker configurado).
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, string, any) error { return nil }

// OrderEvent cuerpo de order.<kind>.registered y order.<kind>.voided.
type OrderEvent struct {
	OrderID   int64           `json:"order_id"`
	Kind      string          `json:"kind"`
	Status    string          `json:"status"`
	Total     decimal.Decimal `json:"total"`
	Lines     int             `json:"lines"`
	UserID    int64           `json:"user_id"`
	CreatedAt time.Time       `json:"created_at"`
}

// MovementEvent cuerpo de stock.movement.recorded.
type MovementEvent struct {
	MovementID  int64  `json:"movement_id"`
	ProductID   int64  `json:"product_id"`
	Kind        string `json:"kind"`
	Quantity    int64  `json:"quantity"`
	StockBefore int64  `json:"stock_before"`
	StockAfter  int64  `json:"stock_after"`
	UserID      int64  `json:"user_id"`
}

// LowStockEvent cuerpo de stock.low.
type LowStockEvent struct {
	Threshold int64           `json:"threshold"`
	Products  []LowStockEntry `json:"products"`
}

type LowStockEntry struct {
	ProductID int64  `json:"product_id"`
	Name      string `json:"name"`
	Stock     int64  `json:"stock"`
}

package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderKind distingue compras (suben stock) de ventas (bajan stock).
type OrderKind string

const (
	OrderPurchase OrderKind = "purchase"
	OrderSale     OrderKind = "sale"
)

// Estados de una orden.
const (
	OrderStatusRegistered = "registered"
	OrderStatusVoided     = "voided"
)

type orderPolicy struct {
	movement  MovementKind
	reversal  MovementKind
	reference string
	voidRef   string
}

var orderPolicies = map[OrderKind]orderPolicy{
	OrderPurchase: {movement: MovementEntry, reversal: MovementExit, reference: RefPurchase, voidRef: RefPurchaseVoid},
	OrderSale:     {movement: MovementExit, reversal: MovementEntry, reference: RefSale, voidRef: RefSaleVoid},
}

// Valid indica si el tipo de orden es conocido.
func (k OrderKind) Valid() bool {
	_, ok := orderPolicies[k]
	return ok
}

// MovementKind devuelve el tipo de movimiento que produce cada línea de la orden.
func (k OrderKind) MovementKind() MovementKind { return orderPolicies[k].movement }

// ReversalKind devuelve el movimiento que deshace una línea al anular la orden.
func (k OrderKind) ReversalKind() MovementKind { return orderPolicies[k].reversal }

// Reference y VoidReference son los reference_type del libro para la orden y su anulación.
func (k OrderKind) Reference() string     { return orderPolicies[k].reference }
func (k OrderKind) VoidReference() string { return orderPolicies[k].voidRef }

// Order es la cabecera de una compra o venta.
// CounterpartyID es el proveedor (compra) o el cliente (venta, opcional).
type Order struct {
	ID             int64
	Kind           OrderKind
	CounterpartyID *int64
	UserID         int64
	Total          decimal.Decimal
	Status         string
	CreatedAt      time.Time
}

// OrderLine es inmutable después de creada. UnitAmount es costo en compras y precio en ventas.
type OrderLine struct {
	ID         int64
	OrderID    int64
	ProductID  int64
	Quantity   int64
	UnitAmount decimal.Decimal
	Subtotal   decimal.Decimal
}

// OrderSummary es la cabecera enriquecida para consultas.
type OrderSummary struct {
	Order
	CounterpartyName string
	UserName         string
}

// OrderLineView es la línea con datos de presentación del producto.
type OrderLineView struct {
	OrderLine
	ProductName  string
	ProductImage string
}

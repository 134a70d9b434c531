package entity

import "time"

// MovementKind clasifica una mutación de stock.
type MovementKind string

const (
	MovementEntry      MovementKind = "entry"      // entrada: suma
	MovementExit       MovementKind = "exit"       // salida: resta
	MovementAdjustment MovementKind = "adjustment" // ajuste: fija el valor absoluto
)

// Valid indica si el tipo pertenece al catálogo conocido.
func (k MovementKind) Valid() bool {
	switch k {
	case MovementEntry, MovementExit, MovementAdjustment:
		return true
	}
	return false
}

// Referencias que enlazan un movimiento con el documento que lo originó.
const (
	RefPurchase     = "purchase"
	RefSale         = "sale"
	RefPurchaseVoid = "purchase_void"
	RefSaleVoid     = "sale_void"
	RefManual       = "manual"
	RefInitialStock = "initial_stock"
)

// StockMovement es una fila del libro de inventario. Solo se inserta; nunca se actualiza ni se borra.
type StockMovement struct {
	ID            int64
	ProductID     int64
	Kind          MovementKind
	Quantity      int64
	StockBefore   int64
	StockAfter    int64
	UserID        int64
	ReferenceType string
	ReferenceID   *int64
	Note          string
	CreatedAt     time.Time
}

// StockMovementView agrega datos de presentación (producto y usuario).
type StockMovementView struct {
	StockMovement
	ProductName  string
	ProductImage string
	UserName     string
}

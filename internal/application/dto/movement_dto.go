package dto

import (
	"time"

	"github.com/jhoicas/inventario-pos/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// RecordMovementRequest entrada para un movimiento manual.
// En ajustes Quantity es el stock final.
type RecordMovementRequest struct {
	ProductID int64           `json:"product_id"`
	Kind      string          `json:"kind"` // entry | exit | adjustment
	Quantity  decimal.Decimal `json:"quantity"`
	Note      string          `json:"note"`
}

// MovementResponse salida de una fila del libro.
type MovementResponse struct {
	ID            int64     `json:"id"`
	ProductID     int64     `json:"product_id"`
	ProductName   string    `json:"product_name,omitempty"`
	ProductImage  string    `json:"product_image,omitempty"`
	Kind          string    `json:"kind"`
	Quantity      int64     `json:"quantity"`
	StockBefore   int64     `json:"stock_before"`
	StockAfter    int64     `json:"stock_after"`
	UserID        int64     `json:"user_id"`
	UserName      string    `json:"user_name,omitempty"`
	ReferenceType string    `json:"reference_type,omitempty"`
	ReferenceID   *int64    `json:"reference_id,omitempty"`
	Note          string    `json:"note,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// RecordMovementResponse movimiento registrado y stock resultante del producto.
type RecordMovementResponse struct {
	Movement MovementResponse `json:"movement"`
	Product  ProductResponse  `json:"product"`
}

func NewMovementResponse(m *entity.StockMovement) MovementResponse {
	return MovementResponse{
		ID:            m.ID,
		ProductID:     m.ProductID,
		Kind:          string(m.Kind),
		Quantity:      m.Quantity,
		StockBefore:   m.StockBefore,
		StockAfter:    m.StockAfter,
		UserID:        m.UserID,
		ReferenceType: m.ReferenceType,
		ReferenceID:   m.ReferenceID,
		Note:          m.Note,
		CreatedAt:     m.CreatedAt,
	}
}

func NewMovementViewResponse(v *entity.StockMovementView) MovementResponse {
	r := NewMovementResponse(&v.StockMovement)
	r.ProductName = v.ProductName
	r.ProductImage = v.ProductImage
	r.UserName = v.UserName
	return r
}

// LedgerCheckResponse resultado de verificar la cadena del libro.
type LedgerCheckResponse struct {
	OK     bool     `json:"ok"`
	Breaks []string `json:"breaks"`
}

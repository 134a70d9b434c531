package inventory

import (
	"math"

	"github.com/jhoicas/inventario-pos/internal/domain"
	"github.com/jhoicas/inventario-pos/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// ApplyMovement calcula el stock resultante de aplicar un movimiento (función pura).
//   - entry: stockBefore + quantity (quantity > 0).
//   - exit: stockBefore - quantity (quantity > 0 y <= stockBefore).
//   - adjustment: quantity como valor absoluto (quantity >= 0).
func ApplyMovement(kind entity.MovementKind, stockBefore, quantity int64) (int64, error) {
	switch kind {
	case entity.MovementEntry:
		if quantity <= 0 {
			return 0, domain.ErrInvalidQuantity
		}
		if stockBefore > math.MaxInt64-quantity {
			return 0, domain.ErrInvalidQuantity
		}
		return stockBefore + quantity, nil
	case entity.MovementExit:
		if quantity <= 0 {
			return 0, domain.ErrInvalidQuantity
		}
		if quantity > stockBefore {
			return 0, domain.ErrInsufficientStock
		}
		return stockBefore - quantity, nil
	case entity.MovementAdjustment:
		if quantity < 0 {
			return 0, domain.ErrInvalidQuantity
		}
		return quantity, nil
	}
	return 0, domain.ErrInvalidMovementKind
}

var maxQuantity = decimal.NewFromInt(math.MaxInt64)

// ParseQuantity convierte la cantidad recibida (decimal en el JSON) a unidades enteras.
// allowZero solo aplica a ajustes, donde dejar el stock en cero es válido.
func ParseQuantity(q decimal.Decimal, allowZero bool) (int64, error) {
	if !q.IsInteger() || q.IsNegative() || q.GreaterThan(maxQuantity) {
		return 0, domain.ErrInvalidQuantity
	}
	if q.IsZero() && !allowZero {
		return 0, domain.ErrInvalidQuantity
	}
	return q.IntPart(), nil
}

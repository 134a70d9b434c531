package inventory

import (
	"github.com/jhoicas/inventario-pos/internal/domain"
	"github.com/jhoicas/inventario-pos/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// AmountScale es la cantidad máxima de decimales admitida en precios y costos (NUMERIC(18,4)).
const AmountScale = 4

// LineInput es una línea tal como llega del cliente.
type LineInput struct {
	ProductID  int64
	Quantity   decimal.Decimal
	UnitAmount decimal.Decimal
}

// ValidateLineShape hace las validaciones estructurales de una línea en este orden:
// producto indicado, cantidad entera positiva, monto positivo. Devuelve la cantidad en unidades.
func ValidateLineShape(line LineInput) (int64, error) {
	if line.ProductID <= 0 {
		return 0, domain.ErrMissingProduct
	}
	qty, err := ParseQuantity(line.Quantity, false)
	if err != nil {
		return 0, err
	}
	if err := ValidateAmount(line.UnitAmount); err != nil {
		return 0, err
	}
	return qty, nil
}

// ValidateAmount exige un monto positivo con a lo sumo AmountScale decimales.
func ValidateAmount(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return domain.ErrInvalidAmount
	}
	if !amount.Equal(amount.Truncate(AmountScale)) {
		return domain.ErrInvalidAmount
	}
	return nil
}

// ValidateLineAgainstProduct valida la línea contra la fila leída dentro de la transacción.
// product nil significa que no existe.
func ValidateLineAgainstProduct(kind entity.OrderKind, product *entity.Product, qty int64) error {
	if product == nil {
		return domain.ErrProductNotFound
	}
	if !product.Active {
		return domain.ErrProductInactive
	}
	if kind == entity.OrderSale && qty > product.Stock {
		return domain.ErrInsufficientStock
	}
	return nil
}

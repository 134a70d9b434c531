package inventory_test

import (
	"testing"

	"github.com/jhoicas/inventario-pos/internal/domain"
	"github.com/jhoicas/inventario-pos/internal/domain/entity"
	"github.com/jhoicas/inventario-pos/internal/domain/inventory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func line(productID int64, qty, amount string) inventory.LineInput {
	return inventory.LineInput{
		ProductID:  productID,
		Quantity:   decimal.RequireFromString(qty),
		UnitAmount: decimal.RequireFromString(amount),
	}
}

func TestValidateLineShape(t *testing.T) {
	qty, err := inventory.ValidateLineShape(line(1, "3", "5.00"))
	require.NoError(t, err)
	assert.EqualValues(t, 3, qty)

	tests := []struct {
		name string
		in   inventory.LineInput
		want error
	}{
		{"sin producto", line(0, "3", "5"), domain.ErrMissingProduct},
		{"producto primero que cantidad", line(0, "0", "0"), domain.ErrMissingProduct},
		{"cantidad cero", line(1, "0", "5"), domain.ErrInvalidQuantity},
		{"cantidad fraccionaria", line(1, "1.5", "5"), domain.ErrInvalidQuantity},
		{"cantidad antes que monto", line(1, "-2", "-5"), domain.ErrInvalidQuantity},
		{"monto cero", line(1, "1", "0"), domain.ErrInvalidAmount},
		{"monto negativo", line(1, "1", "-2.50"), domain.ErrInvalidAmount},
		{"monto con demasiados decimales", line(1, "1", "2.00001"), domain.ErrInvalidAmount},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := inventory.ValidateLineShape(tt.in)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestValidateLineAgainstProduct(t *testing.T) {
	active := &entity.Product{ID: 1, Stock: 5, Active: true}
	inactive := &entity.Product{ID: 2, Stock: 50, Active: false}

	assert.ErrorIs(t, inventory.ValidateLineAgainstProduct(entity.OrderSale, nil, 1), domain.ErrProductNotFound)
	assert.ErrorIs(t, inventory.ValidateLineAgainstProduct(entity.OrderSale, inactive, 1), domain.ErrProductInactive)
	assert.ErrorIs(t, inventory.ValidateLineAgainstProduct(entity.OrderPurchase, inactive, 1), domain.ErrProductInactive)
	assert.ErrorIs(t, inventory.ValidateLineAgainstProduct(entity.OrderSale, active, 8), domain.ErrInsufficientStock)

	assert.NoError(t, inventory.ValidateLineAgainstProduct(entity.OrderSale, active, 5))
	// las compras no dependen del stock actual
	assert.NoError(t, inventory.ValidateLineAgainstProduct(entity.OrderPurchase, active, 500))
}

func TestLineError_ConservaMotivo(t *testing.T) {
	err := error(&domain.LineError{Index: 2, ProductID: 9, Err: domain.ErrProductInactive})
	assert.ErrorIs(t, err, domain.ErrProductInactive)

	var lineErr *domain.LineError
	require.ErrorAs(t, err, &lineErr)
	assert.Equal(t, 2, lineErr.Index)
	assert.Contains(t, err.Error(), "línea 2")
}

package inventory_test

import (
	"context"
	"testing"

	"github.com/jhoicas/inventario-pos/internal/application/inventory"
	"github.com/jhoicas/inventario-pos/internal/application/ports"
	"github.com/jhoicas/inventario-pos/internal/domain"
	"github.com/jhoicas/inventario-pos/internal/domain/entity"
	"github.com/jhoicas/inventario-pos/internal/domain/repository"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordMovement_AjusteEsAbsoluto(t *testing.T) {
	f := newFixture(t)
	pid := f.seedProduct(t, "Pegante", 7, true)

	res, err := f.recorder.RecordMovement(context.Background(), inventory.RecordMovementInput{
		ProductID: pid,
		Kind:      entity.MovementAdjustment,
		Quantity:  decimal.NewFromInt(20),
		UserID:    f.userID,
		Note:      "  conteo físico ",
	})
	require.NoError(t, err)
	assert.EqualValues(t, 20, res.Product.Stock, "20, no 27")
	assert.Equal(t, entity.MovementAdjustment, res.Movement.Kind)
	assert.EqualValues(t, 20, res.Movement.Quantity)
	assert.EqualValues(t, 7, res.Movement.StockBefore)
	assert.EqualValues(t, 20, res.Movement.StockAfter)
	assert.Equal(t, "conteo físico", res.Movement.Note)
	assert.Equal(t, entity.RefManual, res.Movement.ReferenceType)
	assert.EqualValues(t, 20, f.stock(t, pid))
	assert.Equal(t, []string{ports.EventMovementRecorded}, f.publisher.Keys())
}

func TestRecordMovement_AjusteACero(t *testing.T) {
	f := newFixture(t)
	pid := f.seedProduct(t, "Cinta", 4, true)
	res, err := f.recorder.RecordMovement(context.Background(), inventory.RecordMovementInput{
		ProductID: pid, Kind: entity.MovementAdjustment, Quantity: decimal.Zero, UserID: f.userID,
	})
	require.NoError(t, err)
	assert.EqualValues(t, 0, res.Product.Stock)
}

func TestRecordMovement_EntradaYSalida(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	pid := f.seedProduct(t, "Sobre", 2, true)

	_, err := f.recorder.RecordMovement(ctx, inventory.RecordMovementInput{
		ProductID: pid, Kind: entity.MovementEntry, Quantity: decimal.NewFromInt(3), UserID: f.userID,
	})
	require.NoError(t, err)
	_, err = f.recorder.RecordMovement(ctx, inventory.RecordMovementInput{
		ProductID: pid, Kind: entity.MovementExit, Quantity: decimal.NewFromInt(6), UserID: f.userID,
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.EqualValues(t, 5, f.stock(t, pid))
}

func TestRecordMovement_Rechazos(t *testing.T) {
	f := newFixture(t)
	active := f.seedProduct(t, "Activo", 2, true)
	inactive := f.seedProduct(t, "Inactivo", 2, false)

	cases := []struct {
		name string
		in   inventory.RecordMovementInput
		want error
	}{
		{"tipo desconocido", inventory.RecordMovementInput{ProductID: active, Kind: "transfer", Quantity: decimal.NewFromInt(1)}, domain.ErrInvalidMovementKind},
		{"sin producto", inventory.RecordMovementInput{Kind: entity.MovementEntry, Quantity: decimal.NewFromInt(1)}, domain.ErrMissingProduct},
		{"entrada cero", inventory.RecordMovementInput{ProductID: active, Kind: entity.MovementEntry, Quantity: decimal.Zero}, domain.ErrInvalidQuantity},
		{"ajuste fraccionario", inventory.RecordMovementInput{ProductID: active, Kind: entity.MovementAdjustment, Quantity: decimal.RequireFromString("2.5")}, domain.ErrInvalidQuantity},
		{"producto inexistente", inventory.RecordMovementInput{ProductID: 999, Kind: entity.MovementEntry, Quantity: decimal.NewFromInt(1)}, domain.ErrProductNotFound},
		{"producto inactivo", inventory.RecordMovementInput{ProductID: inactive, Kind: entity.MovementEntry, Quantity: decimal.NewFromInt(1)}, domain.ErrProductInactive},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tc.in.UserID = f.userID
			_, err := f.recorder.RecordMovement(context.Background(), tc.in)
			assert.ErrorIs(t, err, tc.want)
		})
	}
	assert.EqualValues(t, 2, f.stock(t, active))
	assert.EqualValues(t, 2, f.stock(t, inactive))
}

func TestMovementQuery_ListaFiltraYHistoria(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p1 := f.seedProduct(t, "Uno", 3, true)
	p2 := f.seedProduct(t, "Dos", 4, true)
	_, err := f.recorder.RecordMovement(ctx, inventory.RecordMovementInput{
		ProductID: p1, Kind: entity.MovementExit, Quantity: decimal.NewFromInt(1), UserID: f.userID,
	})
	require.NoError(t, err)

	all, err := f.movements.ListMovements(ctx, repository.MovementFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, entity.MovementExit, all[0].Kind, "más reciente primero")
	assert.Equal(t, "Uno", all[0].ProductName)
	assert.Equal(t, "Operador Uno", all[0].UserName)

	onlyP2, err := f.movements.ListMovements(ctx, repository.MovementFilter{ProductID: &p2})
	require.NoError(t, err)
	require.Len(t, onlyP2, 1)

	_, err = f.movements.ListMovements(ctx, repository.MovementFilter{Kind: "bogus"})
	assert.ErrorIs(t, err, domain.ErrInvalidMovementKind)

	hist, err := f.movements.ProductHistory(ctx, p1)
	require.NoError(t, err)
	require.Len(t, hist, 2)
	assert.Less(t, hist[0].ID, hist[1].ID)

	_, err = f.movements.ProductHistory(ctx, 404)
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

package inventory_test

import (
	"testing"

	"github.com/jhoicas/inventario-pos/internal/domain/entity"
	"github.com/jhoicas/inventario-pos/internal/domain/inventory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mov(id, product int64, kind entity.MovementKind, qty, before, after int64) *entity.StockMovement {
	return &entity.StockMovement{ID: id, ProductID: product, Kind: kind, Quantity: qty, StockBefore: before, StockAfter: after}
}

func TestVerifyChain_LibroCorrecto(t *testing.T) {
	movs := []*entity.StockMovement{
		mov(1, 1, entity.MovementEntry, 5, 0, 5),
		mov(2, 2, entity.MovementAdjustment, 10, 0, 10),
		mov(3, 1, entity.MovementExit, 3, 5, 2),
		mov(4, 1, entity.MovementAdjustment, 20, 2, 20),
		mov(5, 2, entity.MovementExit, 10, 10, 0),
	}
	assert.Empty(t, inventory.VerifyChain(movs))
}

func TestVerifyChain_DetectaSaltoYFilaInconsistente(t *testing.T) {
	movs := []*entity.StockMovement{
		mov(1, 1, entity.MovementEntry, 5, 0, 5),
		mov(2, 1, entity.MovementExit, 1, 7, 6), // salto: 5 -> 7
		mov(3, 1, entity.MovementEntry, 2, 6, 9), // 6+2 != 9
	}
	breaks := inventory.VerifyChain(movs)
	require.Len(t, breaks, 2)
	assert.EqualValues(t, 2, breaks[0].MovementID)
	assert.EqualValues(t, 3, breaks[1].MovementID)
	assert.Contains(t, breaks[1].String(), "se esperaba 8")
}

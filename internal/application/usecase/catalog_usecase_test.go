package usecase_test

import (
	"context"
	"testing"

	"github.com/jhoicas/inventario-pos/internal/application/dto"
	"github.com/jhoicas/inventario-pos/internal/application/usecase"
	"github.com/jhoicas/inventario-pos/internal/domain"
	"github.com/jhoicas/inventario-pos/internal/domain/entity"
	"github.com/jhoicas/inventario-pos/internal/infrastructure/memstore"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategory_NombreUnico(t *testing.T) {
	store := memstore.New()
	uc := usecase.NewCategoryUseCase(store.Categories())
	ctx := context.Background()

	c, err := uc.Create(ctx, dto.CategoryRequest{Name: "Bebidas"})
	require.NoError(t, err)
	_, err = uc.Create(ctx, dto.CategoryRequest{Name: "bebidas"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
	_, err = uc.Create(ctx, dto.CategoryRequest{Name: " "})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	updated, err := uc.Update(ctx, c.ID, dto.CategoryRequest{Name: "Bebidas frías", Description: "refrigerados"})
	require.NoError(t, err)
	assert.Equal(t, "Bebidas frías", updated.Name)

	list, err := uc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "refrigerados", list[0].Description)
}

func TestSupplier_AltaEdicionYBaja(t *testing.T) {
	store := memstore.New()
	uc := usecase.NewSupplierUseCase(store.Suppliers())
	ctx := context.Background()

	s, err := uc.Create(ctx, dto.PartyRequest{Name: "Molinos del Norte", Email: " VENTAS@molinos.test "})
	require.NoError(t, err)
	assert.True(t, s.Active)
	assert.Equal(t, "ventas@molinos.test", s.Email)

	_, err = uc.Create(ctx, dto.PartyRequest{Name: "Sin arroba", Email: "nada"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	updated, err := uc.Update(ctx, s.ID, dto.PartyRequest{Name: "Molinos del Norte SA", Phone: "555-0101"})
	require.NoError(t, err)
	assert.Equal(t, "555-0101", updated.Phone)
	assert.True(t, updated.Active)

	require.NoError(t, uc.SetActive(ctx, s.ID, false))
	active, err := uc.List(ctx, true)
	require.NoError(t, err)
	assert.Empty(t, active)
	all, err := uc.List(ctx, false)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestCustomer_Alta(t *testing.T) {
	store := memstore.New()
	uc := usecase.NewCustomerUseCase(store.Customers())
	ctx := context.Background()

	c, err := uc.Create(ctx, dto.PartyRequest{Name: "Tienda La Esquina"})
	require.NoError(t, err)
	_, err = uc.Update(ctx, 404, dto.PartyRequest{Name: "X"})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	list, err := uc.List(ctx, true)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, c.ID, list[0].ID)
}

// ──────────────────────────────────────────────────────────────────────────────
// Gastos
// ──────────────────────────────────────────────────────────────────────────────

type countingCache struct{ invalidations int }

func (c *countingCache) Get(context.Context, string, any) (bool, error) { return false, nil }
func (c *countingCache) Set(context.Context, string, any) error         { return nil }
func (c *countingCache) Invalidate(context.Context) error {
	c.invalidations++
	return nil
}

func TestExpense_RegistraEInvalidaTablero(t *testing.T) {
	store := memstore.New()
	ctx := context.Background()
	user := &entity.User{Name: "Cajera", Email: "caja@pos.test", Role: entity.RoleOperador, Active: true}
	require.NoError(t, store.Users().Create(ctx, user))
	cache := &countingCache{}
	uc := usecase.NewExpenseUseCase(store.Expenses(), cache)
	actor := usecase.Actor{UserID: user.ID, Role: user.Role}

	e, err := uc.Create(ctx, actor, dto.CreateExpenseRequest{Concept: "Luz", Amount: decimal.RequireFromString("120.50")})
	require.NoError(t, err)
	assert.Equal(t, "Cajera", e.UserName)
	assert.Equal(t, 1, cache.invalidations)

	_, err = uc.Create(ctx, actor, dto.CreateExpenseRequest{Concept: "Agua", Amount: decimal.Zero})
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)
	_, err = uc.Create(ctx, actor, dto.CreateExpenseRequest{Concept: "", Amount: decimal.NewFromInt(1)})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	list, err := uc.List(ctx, dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Luz", list[0].Concept)
}

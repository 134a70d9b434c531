package postgres

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jhoicas/inventario-pos/internal/domain"
	"github.com/jhoicas/inventario-pos/internal/domain/entity"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// rowQuerier devuelve siempre la misma fila; solo QueryRow está implementado.
type rowQuerier struct {
	Querier
	row pgx.Row
}

func (q rowQuerier) QueryRow(context.Context, string, ...any) pgx.Row { return q.row }

type errRow struct{ err error }

func (r errRow) Scan(...any) error { return r.err }

func fkViolation(constraint string) error {
	return &pgconn.PgError{Code: codeForeignKeyViolation, ConstraintName: constraint}
}

func TestOrderRepo_Create_FKDeContraparte(t *testing.T) {
	cases := []struct {
		kind       entity.OrderKind
		constraint string
	}{
		{entity.OrderPurchase, "purchases_supplier_id_fkey"},
		{entity.OrderSale, "sales_customer_id_fkey"},
	}
	for _, tc := range cases {
		t.Run(string(tc.kind), func(t *testing.T) {
			repo := NewOrderRepository(rowQuerier{row: errRow{fkViolation(tc.constraint)}})
			err := repo.Create(context.Background(), &entity.Order{Kind: tc.kind, UserID: 1, Total: decimal.Zero})
			assert.ErrorIs(t, err, domain.ErrCounterpartyNotFound)
		})
	}
}

// Un token de un usuario que ya no existe no es un problema de proveedor o cliente.
func TestOrderRepo_Create_FKDeUsuarioEsErrorInterno(t *testing.T) {
	repo := NewOrderRepository(rowQuerier{row: errRow{fkViolation("sales_user_id_fkey")}})
	err := repo.Create(context.Background(), &entity.Order{Kind: entity.OrderSale, UserID: 77, Total: decimal.Zero})

	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrCounterpartyNotFound)
	assert.Equal(t, "sales_user_id_fkey", violatedConstraint(err))
	assert.Contains(t, err.Error(), "insert sales")
}

func TestProductRepo_GetForUpdate_LockTimeoutNoEsConflicto(t *testing.T) {
	timeout := &pgconn.PgError{Code: codeLockNotAvailable, Message: "canceling statement due to lock timeout"}
	repo := NewProductRepository(rowQuerier{row: errRow{timeout}})

	p, err := repo.GetForUpdate(context.Background(), 9)
	require.Error(t, err)
	assert.Nil(t, p)
	assert.True(t, isLockTimeout(err))
	assert.NotErrorIs(t, err, domain.ErrConflict)
	assert.False(t, isRetryable(err))
}

package report_test

import (
	"context"
	"errors"
	"testing"

	"github.com/jhoicas/inventario-pos/internal/application/inventory"
	"github.com/jhoicas/inventario-pos/internal/application/report"
	"github.com/jhoicas/inventario-pos/internal/domain"
	"github.com/jhoicas/inventario-pos/internal/domain/entity"
	domaininv "github.com/jhoicas/inventario-pos/internal/domain/inventory"
	"github.com/jhoicas/inventario-pos/internal/infrastructure/memstore"
	"github.com/jhoicas/inventario-pos/pkg/logger"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type captureGenerator struct {
	doc report.OrderDocument
	err error
}

func (g *captureGenerator) GenerateOrderPDF(_ context.Context, doc report.OrderDocument) ([]byte, error) {
	g.doc = doc
	if g.err != nil {
		return nil, g.err
	}
	return []byte("%PDF-1.3"), nil
}

func registerPurchase(t *testing.T, store *memstore.Store) int64 {
	t.Helper()
	ctx := context.Background()
	user := &entity.User{Name: "Compras", Email: "compras@pos.test", Role: entity.RoleOperador, Active: true}
	require.NoError(t, store.Users().Create(ctx, user))
	supplier := &entity.Supplier{Name: "Mayorista Central", Active: true}
	require.NoError(t, store.Suppliers().Create(ctx, supplier))
	product := &entity.Product{Name: "Harina", Price: decimal.NewFromInt(3), Active: true}
	require.NoError(t, store.Products().Create(ctx, product))

	res, err := inventory.NewOrderProcessor(store, nil, nil, logger.Nop()).ProcessOrder(ctx, inventory.ProcessOrderInput{
		Kind:           entity.OrderPurchase,
		CounterpartyID: &supplier.ID,
		UserID:         user.ID,
		Lines: []domaininv.LineInput{
			{ProductID: product.ID, Quantity: decimal.NewFromInt(10), UnitAmount: decimal.RequireFromString("1.25")},
		},
	})
	require.NoError(t, err)
	return res.Order.ID
}

func TestDownloadOrderPDF_ResuelveNombres(t *testing.T) {
	store := memstore.New()
	id := registerPurchase(t, store)
	gen := &captureGenerator{}
	uc := report.NewOrderReportUseCase(store.Orders(), gen)

	pdf, filename, err := uc.DownloadOrderPDF(context.Background(), entity.OrderPurchase, id)
	require.NoError(t, err)
	assert.NotEmpty(t, pdf)
	assert.Equal(t, "compra_1.pdf", filename)
	assert.Equal(t, "Mayorista Central", gen.doc.Header.CounterpartyName)
	require.Len(t, gen.doc.Lines, 1)
	assert.Equal(t, "Harina", gen.doc.Lines[0].ProductName)
	assert.True(t, decimal.RequireFromString("12.5").Equal(gen.doc.Lines[0].Subtotal))
}

func TestDownloadOrderPDF_Errores(t *testing.T) {
	store := memstore.New()
	id := registerPurchase(t, store)
	ctx := context.Background()

	uc := report.NewOrderReportUseCase(store.Orders(), &captureGenerator{})
	_, _, err := uc.DownloadOrderPDF(ctx, entity.OrderSale, id)
	assert.ErrorIs(t, err, domain.ErrOrderNotFound, "una compra no se encuentra como venta")
	_, _, err = uc.DownloadOrderPDF(ctx, entity.OrderKind("devolucion"), id)
	assert.ErrorIs(t, err, domain.ErrInvalidOrderKind)

	boom := errors.New("fuente no disponible")
	uc = report.NewOrderReportUseCase(store.Orders(), &captureGenerator{err: boom})
	_, _, err = uc.DownloadOrderPDF(ctx, entity.OrderPurchase, id)
	assert.ErrorIs(t, err, boom)
}

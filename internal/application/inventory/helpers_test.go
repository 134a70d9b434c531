package inventory_test

import (
	"context"
	"sync"
	"testing"

	"github.com/jhoicas/inventario-pos/internal/application/inventory"
	"github.com/jhoicas/inventario-pos/internal/domain/entity"
	domaininv "github.com/jhoicas/inventario-pos/internal/domain/inventory"
	"github.com/jhoicas/inventario-pos/internal/domain/repository"
	"github.com/jhoicas/inventario-pos/internal/infrastructure/memstore"
	"github.com/jhoicas/inventario-pos/pkg/logger"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fixture: store en memoria con un usuario, un proveedor y un cliente.
// ──────────────────────────────────────────────────────────────────────────────

type fixture struct {
	store      *memstore.Store
	processor  *inventory.OrderProcessor
	recorder   *inventory.MovementRecorder
	query      *inventory.OrderQuery
	movements  *inventory.MovementQuery
	publisher  *spyPublisher
	cache      *spyCache
	runner     *countingRunner
	userID     int64
	supplierID int64
	customerID int64
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	store := memstore.New()

	user := &entity.User{Name: "Operador Uno", Email: "op@pos.test", Role: entity.RoleOperador, Active: true}
	require.NoError(t, store.Users().Create(ctx, user))
	supplier := &entity.Supplier{Name: "Distribuidora Sur", Active: true}
	require.NoError(t, store.Suppliers().Create(ctx, supplier))
	customer := &entity.Customer{Name: "Cliente Frecuente", Active: true}
	require.NoError(t, store.Customers().Create(ctx, customer))

	f := &fixture{
		store:      store,
		publisher:  &spyPublisher{},
		cache:      &spyCache{},
		runner:     &countingRunner{inner: store},
		userID:     user.ID,
		supplierID: supplier.ID,
		customerID: customer.ID,
	}
	f.processor = inventory.NewOrderProcessor(f.runner, f.publisher, f.cache, logger.Nop())
	f.recorder = inventory.NewMovementRecorder(f.runner, f.publisher, f.cache, logger.Nop())
	f.query = inventory.NewOrderQuery(store.Orders())
	f.movements = inventory.NewMovementQuery(store.Movements(), store.Products())
	return f
}

// seedProduct crea un producto activo con stock inicial registrado en el libro.
func (f *fixture) seedProduct(t *testing.T, name string, stock int64, active bool) int64 {
	t.Helper()
	ctx := context.Background()
	var id int64
	require.NoError(t, f.store.Run(ctx, func(ctx context.Context, repos inventory.TxRepos) error {
		p := &entity.Product{Name: name, Price: decimal.RequireFromString("5.00"), Active: true}
		if err := repos.Products.Create(ctx, p); err != nil {
			return err
		}
		id = p.ID
		_, err := inventory.SeedStock(ctx, repos, p, stock, f.userID)
		return err
	}))
	if !active {
		require.NoError(t, f.store.Products().SetActive(ctx, id, false))
	}
	return id
}

func (f *fixture) stock(t *testing.T, productID int64) int64 {
	t.Helper()
	p, err := f.store.Products().GetByID(context.Background(), productID)
	require.NoError(t, err)
	require.NotNil(t, p)
	return p.Stock
}

func (f *fixture) history(t *testing.T, productID int64) []*entity.StockMovement {
	t.Helper()
	movs, err := f.store.Movements().ListByProduct(context.Background(), productID)
	require.NoError(t, err)
	return movs
}

func (f *fixture) orderCount(t *testing.T, kind entity.OrderKind) int {
	t.Helper()
	list, err := f.store.Orders().List(context.Background(), kind, repository.Page{})
	require.NoError(t, err)
	return len(list)
}

func ln(productID int64, qty, amount string) domaininv.LineInput {
	return domaininv.LineInput{
		ProductID:  productID,
		Quantity:   decimal.RequireFromString(qty),
		UnitAmount: decimal.RequireFromString(amount),
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Dobles de prueba
// ──────────────────────────────────────────────────────────────────────────────

type countingRunner struct {
	inner inventory.TxRunner
	mu    sync.Mutex
	calls int
}

func (r *countingRunner) Run(ctx context.Context, fn func(ctx context.Context, repos inventory.TxRepos) error) error {
	r.mu.Lock()
	r.calls++
	r.mu.Unlock()
	return r.inner.Run(ctx, fn)
}

func (r *countingRunner) Calls() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.calls
}

type spyPublisher struct {
	mu   sync.Mutex
	keys []string
}

func (p *spyPublisher) Publish(_ context.Context, key string, _ any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.keys = append(p.keys, key)
	return nil
}

func (p *spyPublisher) Keys() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.keys...)
}

type spyCache struct {
	mu            sync.Mutex
	invalidations int
}

func (c *spyCache) Get(context.Context, string, any) (bool, error) { return false, nil }
func (c *spyCache) Set(context.Context, string, any) error         { return nil }

func (c *spyCache) Invalidate(context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.invalidations++
	return nil
}

func (c *spyCache) Invalidations() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.invalidations
}

package analytics_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/jhoicas/inventario-pos/internal/application/analytics"
	"github.com/jhoicas/inventario-pos/internal/application/inventory"
	"github.com/jhoicas/inventario-pos/internal/domain/entity"
	domaininv "github.com/jhoicas/inventario-pos/internal/domain/inventory"
	"github.com/jhoicas/inventario-pos/internal/domain/repository"
	"github.com/jhoicas/inventario-pos/internal/infrastructure/memstore"
	"github.com/jhoicas/inventario-pos/pkg/logger"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, time.March, 15, 10, 30, 0, 0, time.UTC)

// mapCache caché en memoria que serializa como lo haría redis.
type mapCache struct {
	data map[string][]byte
	hits int
}

func (c *mapCache) Get(_ context.Context, key string, dst any) (bool, error) {
	raw, ok := c.data[key]
	if !ok {
		return false, nil
	}
	c.hits++
	return true, json.Unmarshal(raw, dst)
}

func (c *mapCache) Set(_ context.Context, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.data[key] = raw
	return nil
}

func (c *mapCache) Invalidate(context.Context) error {
	c.data = map[string][]byte{}
	return nil
}

func seed(t *testing.T) *memstore.Store {
	t.Helper()
	ctx := context.Background()
	store := memstore.New()
	store.SetClock(func() time.Time { return fixedNow })

	user := &entity.User{Name: "Cajero", Email: "caja@pos.test", Role: entity.RoleOperador, Active: true}
	require.NoError(t, store.Users().Create(ctx, user))
	customer := &entity.Customer{Name: "Mostrador", Active: true}
	require.NoError(t, store.Customers().Create(ctx, customer))

	var ids []int64
	for _, p := range []struct {
		name  string
		stock int64
	}{{"Pan", 20}, {"Leche", 3}, {"Huevos", 8}} {
		require.NoError(t, store.Run(ctx, func(ctx context.Context, repos inventory.TxRepos) error {
			prod := &entity.Product{Name: p.name, Price: decimal.NewFromInt(2), Active: true}
			if err := repos.Products.Create(ctx, prod); err != nil {
				return err
			}
			ids = append(ids, prod.ID)
			_, err := inventory.SeedStock(ctx, repos, prod, p.stock, user.ID)
			return err
		}))
	}

	proc := inventory.NewOrderProcessor(store, nil, nil, logger.Nop())
	_, err := proc.ProcessOrder(ctx, inventory.ProcessOrderInput{
		Kind:           entity.OrderSale,
		CounterpartyID: &customer.ID,
		UserID:         user.ID,
		Lines: []domaininv.LineInput{
			{ProductID: ids[0], Quantity: decimal.NewFromInt(6), UnitAmount: decimal.RequireFromString("2.50")},
			{ProductID: ids[2], Quantity: decimal.NewFromInt(4), UnitAmount: decimal.NewFromInt(3)},
		},
	})
	require.NoError(t, err)
	require.NoError(t, store.Expenses().Create(ctx, &entity.Expense{Concept: "Luz", Amount: decimal.NewFromInt(10), UserID: user.ID}))
	return store
}

func TestPeriodStart(t *testing.T) {
	cases := []struct {
		in, name string
		want     time.Time
	}{
		{"dia", analytics.PeriodDay, time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)},
		{"semana", analytics.PeriodWeek, time.Date(2026, 3, 8, 10, 30, 0, 0, time.UTC)},
		{"mes", analytics.PeriodMonth, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)},
		{"anio", analytics.PeriodYear, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)},
		{"trimestre", analytics.PeriodMonth, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)},
	}
	for _, tc := range cases {
		name, since := analytics.PeriodStart(tc.in, fixedNow)
		assert.Equal(t, tc.name, name, tc.in)
		assert.True(t, tc.want.Equal(since), "%s: %s", tc.in, since)
	}
}

func TestGetSummary_ArmaTodasLasSecciones(t *testing.T) {
	store := seed(t)
	uc := analytics.NewDashboardUseCase(store.Dashboard(), nil, logger.Nop()).WithClock(func() time.Time { return fixedNow })

	out, err := uc.GetSummary(context.Background(), "mes", 5)
	require.NoError(t, err)

	assert.Equal(t, analytics.PeriodMonth, out.Period)
	assert.True(t, decimal.NewFromInt(27).Equal(out.Totals.Sales), out.Totals.Sales.String())
	assert.True(t, decimal.NewFromInt(10).Equal(out.Totals.Expenses))
	assert.True(t, decimal.NewFromInt(17).Equal(out.Totals.Balance))

	require.Len(t, out.Popular, 2)
	assert.Equal(t, "Pan", out.Popular[0].Name)
	assert.Equal(t, int64(6), out.Popular[0].UnitsSold)

	require.Len(t, out.LowStock, 2)
	assert.Equal(t, "Leche", out.LowStock[0].Name)
	assert.Equal(t, int64(3), out.LowStock[0].Stock)
	assert.Equal(t, "Huevos", out.LowStock[1].Name)

	assert.Len(t, out.RecentActivity, 5)
	assert.Len(t, out.Series, 15, "un punto por día desde el 1 del mes")
	last := out.Series[len(out.Series)-1]
	assert.Equal(t, "2026-03-15", last.Day)
	assert.True(t, decimal.NewFromInt(27).Equal(last.Sales))
}

func TestGetSummary_UsaCache(t *testing.T) {
	store := seed(t)
	cache := &mapCache{data: map[string][]byte{}}
	uc := analytics.NewDashboardUseCase(store.Dashboard(), cache, logger.Nop()).WithClock(func() time.Time { return fixedNow })
	ctx := context.Background()

	first, err := uc.GetSummary(ctx, "dia", 5)
	require.NoError(t, err)
	require.Len(t, cache.data, 1)
	for key := range cache.data {
		assert.Equal(t, "dashboard:summary:dia:2026-03-15:5", key)
	}

	second, err := uc.GetSummary(ctx, "dia", 5)
	require.NoError(t, err)
	assert.Equal(t, 1, cache.hits)
	assert.True(t, first.Totals.Sales.Equal(second.Totals.Sales))
}

type failingRepo struct{ repository.DashboardRepository }

func (failingRepo) GetLowStock(context.Context, int64) ([]repository.LowStockProduct, error) {
	return nil, errors.New("conexión perdida")
}

func TestGetSummary_PropagaErrorDeConsulta(t *testing.T) {
	store := seed(t)
	uc := analytics.NewDashboardUseCase(failingRepo{store.Dashboard()}, nil, logger.Nop())

	_, err := uc.GetSummary(context.Background(), "mes", 5)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "stock bajo")
}


package scheduler_test

import (
	"context"
	"testing"

	"github.com/jhoicas/inventario-pos/internal/application/inventory"
	"github.com/jhoicas/inventario-pos/internal/application/ports"
	"github.com/jhoicas/inventario-pos/internal/domain/entity"
	"github.com/jhoicas/inventario-pos/internal/infrastructure/memstore"
	"github.com/jhoicas/inventario-pos/internal/infrastructure/scheduler"
	"github.com/jhoicas/inventario-pos/pkg/logger"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type capturePublisher struct {
	keys    []string
	payload any
}

func (p *capturePublisher) Publish(_ context.Context, key string, payload any) error {
	p.keys = append(p.keys, key)
	p.payload = payload
	return nil
}

func seedProducts(t *testing.T, store *memstore.Store, stocks map[string]int64) {
	t.Helper()
	ctx := context.Background()
	user := &entity.User{Name: "Sistema", Email: "sys@pos.test", Role: entity.RoleAdmin, Active: true}
	require.NoError(t, store.Users().Create(ctx, user))
	for name, stock := range stocks {
		require.NoError(t, store.Run(ctx, func(ctx context.Context, repos inventory.TxRepos) error {
			p := &entity.Product{Name: name, Price: decimal.NewFromInt(1), Active: true}
			if err := repos.Products.Create(ctx, p); err != nil {
				return err
			}
			_, err := inventory.SeedStock(ctx, repos, p, stock, user.ID)
			return err
		}))
	}
}

func TestRunLowStockSweep_PublicaSoloLosBajos(t *testing.T) {
	store := memstore.New()
	seedProducts(t, store, map[string]int64{"Pan": 2, "Leche": 40, "Huevos": 5})
	pub := &capturePublisher{}
	s := scheduler.New("0 7 * * *", 5, inventory.NewReplenishmentUseCase(store.Dashboard()), pub, logger.Nop())

	n, err := s.RunLowStockSweep(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, []string{ports.EventLowStock}, pub.keys)

	event, ok := pub.payload.(ports.LowStockEvent)
	require.True(t, ok)
	assert.Equal(t, int64(5), event.Threshold)
	assert.Len(t, event.Products, 2)
}

func TestRunLowStockSweep_SinBajosNoPublica(t *testing.T) {
	store := memstore.New()
	seedProducts(t, store, map[string]int64{"Leche": 40})
	pub := &capturePublisher{}
	s := scheduler.New("0 7 * * *", 5, inventory.NewReplenishmentUseCase(store.Dashboard()), pub, logger.Nop())

	n, err := s.RunLowStockSweep(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Empty(t, pub.keys)
}

func TestStart_ExpresionInvalida(t *testing.T) {
	s := scheduler.New("cada lunes", 5, nil, nil, logger.Nop())
	assert.Error(t, s.Start())
}

// Package analytics contiene el tablero de resumen: totales del período, productos
// populares, stock bajo, actividad reciente y serie diaria de finanzas.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/inventario-pos/internal/application/dto"
	"github.com/jhoicas/inventario-pos/internal/application/ports"
	"github.com/jhoicas/inventario-pos/internal/domain/entity"
	"github.com/jhoicas/inventario-pos/internal/domain/repository"
	"github.com/jhoicas/inventario-pos/pkg/logger"
	"golang.org/x/sync/errgroup"
)

const (
	dashboardPopular = 5  // productos en el widget de populares
	dashboardRecent  = 10 // movimientos en la actividad reciente

	// DefaultLowStockThreshold umbral de stock bajo si el cliente no envía uno.
	DefaultLowStockThreshold int64 = 5
)

// Períodos aceptados por el tablero. Un valor desconocido se trata como PeriodMonth.
const (
	PeriodDay   = "dia"
	PeriodWeek  = "semana"
	PeriodMonth = "mes"
	PeriodYear  = "anio"
)

// DashboardUseCase arma el resumen del tablero.
//
// Fuente de datos: DashboardRepository (consultas read-only). El resultado se guarda en
// la caché de resumen; las escrituras de inventario la invalidan tras el commit.
type DashboardUseCase struct {
	repo  repository.DashboardRepository
	cache ports.SummaryCache
	log   *logger.Logger
	now   func() time.Time
}

// NewDashboardUseCase construye el caso de uso. cache puede ser nil.
func NewDashboardUseCase(repo repository.DashboardRepository, cache ports.SummaryCache, log *logger.Logger) *DashboardUseCase {
	if cache == nil {
		cache = ports.NopCache{}
	}
	return &DashboardUseCase{repo: repo, cache: cache, log: log, now: time.Now}
}

// WithClock fija el reloj (tests).
func (uc *DashboardUseCase) WithClock(now func() time.Time) *DashboardUseCase {
	uc.now = now
	return uc
}

// PeriodStart devuelve el inicio del período relativo a now.
//   - dia: hoy a las 00:00
//   - semana: now menos 7 días
//   - anio: 1 de enero
//   - mes (y cualquier otro valor): día 1 del mes en curso
func PeriodStart(period string, now time.Time) (string, time.Time) {
	switch period {
	case PeriodDay:
		return PeriodDay, time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	case PeriodWeek:
		return PeriodWeek, now.AddDate(0, 0, -7)
	case PeriodYear:
		return PeriodYear, time.Date(now.Year(), 1, 1, 0, 0, 0, 0, now.Location())
	default:
		return PeriodMonth, time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	}
}

func cacheKey(period string, since time.Time, threshold int64) string {
	return fmt.Sprintf("dashboard:summary:%s:%s:%d", period, since.Format("2006-01-02"), threshold)
}

// GetSummary construye el resumen. Las cinco consultas corren en paralelo; si alguna falla
// se cancela el resto y se devuelve el error.
func (uc *DashboardUseCase) GetSummary(ctx context.Context, period string, threshold int64) (*dto.DashboardSummaryDTO, error) {
	if threshold < 0 {
		threshold = DefaultLowStockThreshold
	}
	period, since := PeriodStart(period, uc.now())
	key := cacheKey(period, since, threshold)

	var cached dto.DashboardSummaryDTO
	if ok, err := uc.cache.Get(ctx, key, &cached); err != nil {
		uc.log.Warn().Err(err).Str("key", key).Msg("caché del tablero no disponible")
	} else if ok {
		return &cached, nil
	}

	var (
		totals   *repository.SummaryTotals
		popular  []repository.PopularProduct
		lowStock []repository.LowStockProduct
		recent   []*entity.StockMovementView
		series   []repository.FinanceDay
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		totals, err = uc.repo.GetTotals(gctx, since)
		return wrap("totales", err)
	})
	g.Go(func() (err error) {
		popular, err = uc.repo.GetPopularProducts(gctx, since, dashboardPopular)
		return wrap("productos populares", err)
	})
	g.Go(func() (err error) {
		lowStock, err = uc.repo.GetLowStock(gctx, threshold)
		return wrap("stock bajo", err)
	})
	g.Go(func() (err error) {
		recent, err = uc.repo.GetRecentActivity(gctx, since, dashboardRecent)
		return wrap("actividad reciente", err)
	})
	g.Go(func() (err error) {
		series, err = uc.repo.GetFinanceSeries(gctx, since)
		return wrap("serie de finanzas", err)
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := &dto.DashboardSummaryDTO{
		Period:         period,
		Since:          since,
		Totals:         toTotalsDTO(totals),
		Popular:        make([]dto.PopularProductDTO, 0, len(popular)),
		LowStock:       make([]dto.LowStockDTO, 0, len(lowStock)),
		RecentActivity: make([]dto.MovementResponse, 0, len(recent)),
		Series:         make([]dto.FinanceDayDTO, 0, len(series)),
	}
	for _, p := range popular {
		out.Popular = append(out.Popular, dto.PopularProductDTO{ProductID: p.ProductID, Name: p.Name, Image: p.Image, UnitsSold: p.UnitsSold})
	}
	for _, p := range lowStock {
		out.LowStock = append(out.LowStock, dto.LowStockDTO{ProductID: p.ProductID, Name: p.Name, Image: p.Image, Stock: p.Stock})
	}
	for _, m := range recent {
		out.RecentActivity = append(out.RecentActivity, dto.NewMovementViewResponse(m))
	}
	for _, d := range series {
		out.Series = append(out.Series, dto.FinanceDayDTO{Day: d.Day, Sales: d.Sales, Purchases: d.Purchases, Expenses: d.Expenses})
	}

	if err := uc.cache.Set(ctx, key, out); err != nil {
		uc.log.Warn().Err(err).Str("key", key).Msg("no se pudo guardar el resumen en caché")
	}
	return out, nil
}

func toTotalsDTO(t *repository.SummaryTotals) dto.SummaryTotalsDTO {
	if t == nil {
		return dto.SummaryTotalsDTO{}
	}
	return dto.SummaryTotalsDTO{
		Sales:     t.Sales.Round(2),
		Purchases: t.Purchases.Round(2),
		Expenses:  t.Expenses.Round(2),
		Balance:   t.Sales.Sub(t.Purchases).Sub(t.Expenses).Round(2),
	}
}

func wrap(what string, err error) error {
	if err != nil {
		return fmt.Errorf("dashboard: %s: %w", what, err)
	}
	return nil
}

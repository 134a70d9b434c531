package inventory

import (
	"context"
	"sort"
	"time"

	"github.com/jhoicas/inventario-pos/internal/application/dto"
	"github.com/jhoicas/inventario-pos/internal/domain/repository"
)

// ReplenishmentUseCase genera la lista de reposición: productos activos en o bajo el umbral,
// con cantidad sugerida y prioridad por volumen de ventas de los últimos 30 días.
type ReplenishmentUseCase struct {
	dashboardRepo repository.DashboardRepository
	now           func() time.Time
}

// NewReplenishmentUseCase construye el caso de uso de reposición.
func NewReplenishmentUseCase(dashboardRepo repository.DashboardRepository) *ReplenishmentUseCase {
	return &ReplenishmentUseCase{dashboardRepo: dashboardRepo, now: time.Now}
}

// GenerateReplenishmentList devuelve las sugerencias ordenadas (1 = más urgente).
func (uc *ReplenishmentUseCase) GenerateReplenishmentList(ctx context.Context, threshold int64) ([]dto.ReplenishmentSuggestionDTO, error) {
	if threshold < 0 {
		threshold = 0
	}
	low, err := uc.dashboardRepo.GetLowStock(ctx, threshold)
	if err != nil {
		return nil, err
	}
	if len(low) == 0 {
		return []dto.ReplenishmentSuggestionDTO{}, nil
	}

	// Historial de ventas: sin él se sugiere solo por umbral
	since := uc.now().AddDate(0, 0, -30)
	popular, _ := uc.dashboardRepo.GetPopularProducts(ctx, since, 500)
	soldByID := make(map[int64]int64, len(popular))
	for _, p := range popular {
		soldByID[p.ProductID] = p.UnitsSold
	}

	suggestions := make([]dto.ReplenishmentSuggestionDTO, 0, len(low))
	for _, item := range low {
		sold := soldByID[item.ProductID]
		ideal := threshold * 2
		if sold > ideal {
			ideal = sold
		}
		qty := ideal - item.Stock
		if qty < 0 {
			qty = 0
		}
		suggestions = append(suggestions, dto.ReplenishmentSuggestionDTO{
			ProductID:         item.ProductID,
			ProductName:       item.Name,
			CurrentStock:      item.Stock,
			Threshold:         threshold,
			IdealStock:        ideal,
			SuggestedOrderQty: qty,
			UnitsSoldLast30d:  sold,
		})
	}

	// Primero mayor volumen de ventas, luego menor stock.
	sort.SliceStable(suggestions, func(i, j int) bool {
		a, b := suggestions[i], suggestions[j]
		if a.UnitsSoldLast30d != b.UnitsSoldLast30d {
			return a.UnitsSoldLast30d > b.UnitsSoldLast30d
		}
		return a.CurrentStock < b.CurrentStock
	})
	for i := range suggestions {
		suggestions[i].Priority = i + 1
	}
	return suggestions, nil
}

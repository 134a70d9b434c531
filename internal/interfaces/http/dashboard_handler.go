package http

import (
	"github.com/gofiber/fiber/v2"
	appanalytics "github.com/jhoicas/inventario-pos/internal/application/analytics"
)

// DashboardHandler maneja los endpoints del módulo de Dashboard.
type DashboardHandler struct {
	uc *appanalytics.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *appanalytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// GetSummary godoc
// @Summary      Resumen del tablero
// @Description  Totales de ventas, compras y gastos desde el inicio del período, productos
// @Description  populares, stock bajo, actividad reciente y serie diaria.
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Param        period     query  string  false  "dia | semana | mes | anio"  default(mes)
// @Param        threshold  query  int     false  "Umbral de stock bajo"        default(5)
// @Success      200  {object}  dto.DashboardSummaryDTO
// @Router       /api/dashboard/summary [get]
func (h *DashboardHandler) GetSummary(c *fiber.Ctx) error {
	period := c.Query("period", appanalytics.PeriodMonth)
	threshold := int64(c.QueryInt("threshold", int(appanalytics.DefaultLowStockThreshold)))

	summary, err := h.uc.GetSummary(c.UserContext(), period, threshold)
	if err != nil {
		return err
	}
	return c.JSON(summary)
}

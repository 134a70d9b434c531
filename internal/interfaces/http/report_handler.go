package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/inventario-pos/internal/application/report"
	"github.com/jhoicas/inventario-pos/internal/domain/entity"
)

// ReportHandler descarga los comprobantes y el kardex en PDF.
type ReportHandler struct {
	uc        *report.OrderReportUseCase
	movements *report.MovementReportUseCase
}

func NewReportHandler(uc *report.OrderReportUseCase, movements *report.MovementReportUseCase) *ReportHandler {
	return &ReportHandler{uc: uc, movements: movements}
}

// SalePDF godoc
// @Summary      Comprobante de venta en PDF
// @Description  Acepta el token en ?token= para abrir la descarga desde el navegador.
// @Tags         reports
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  int  true  "ID de la venta"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/reports/sales/{id}/pdf [get]
func (h *ReportHandler) SalePDF(c *fiber.Ctx) error {
	return h.download(c, entity.OrderSale)
}

// PurchasePDF comprobante de compra en PDF.
// GET /api/reports/purchases/:id/pdf
func (h *ReportHandler) PurchasePDF(c *fiber.Ctx) error {
	return h.download(c, entity.OrderPurchase)
}

func (h *ReportHandler) download(c *fiber.Ctx, kind entity.OrderKind) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	pdf, filename, err := h.uc.DownloadOrderPDF(c.UserContext(), kind, id)
	if err != nil {
		return err
	}
	return sendPDF(c, pdf, filename)
}

// MovementsPDF godoc
// @Summary      Kardex (historial de movimientos) en PDF
// @Description  Movimientos en orden cronológico. Acepta el token en ?token=.
// @Tags         reports
// @Security     Bearer
// @Produce      application/pdf
// @Param        product_id  query  int     false  "Producto"
// @Param        from        query  string  false  "Desde (YYYY-MM-DD)"
// @Param        to          query  string  false  "Hasta (YYYY-MM-DD, inclusive)"
// @Success      200  {file}    binary
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/reports/movements/pdf [get]
func (h *ReportHandler) MovementsPDF(c *fiber.Ctx) error {
	productID, err := queryInt64(c, "product_id")
	if err != nil {
		return err
	}
	from, err := queryTime(c, "from", false)
	if err != nil {
		return err
	}
	to, err := queryTime(c, "to", true)
	if err != nil {
		return err
	}
	pdf, filename, err := h.movements.DownloadMovementsPDF(c.UserContext(), report.MovementFilter{
		ProductID: productID,
		From:      from,
		To:        to,
	})
	if err != nil {
		return err
	}
	return sendPDF(c, pdf, filename)
}

func sendPDF(c *fiber.Ctx, pdf []byte, filename string) error {
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Send(pdf)
}

package http

import (
	"github.com/gofiber/fiber/v2"
	appanalytics "github.com/jhoicas/inventario-pos/internal/application/analytics"
	"github.com/jhoicas/inventario-pos/internal/application/dto"
	"github.com/jhoicas/inventario-pos/internal/application/inventory"
	"github.com/jhoicas/inventario-pos/internal/domain/entity"
	"github.com/jhoicas/inventario-pos/internal/domain/repository"
)

// InventoryHandler maneja las peticiones HTTP de movimientos e inventario (protegido).
type InventoryHandler struct {
	recorder      *inventory.MovementRecorder
	query         *inventory.MovementQuery
	replenishment *inventory.ReplenishmentUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(recorder *inventory.MovementRecorder, query *inventory.MovementQuery, replenishment *inventory.ReplenishmentUseCase) *InventoryHandler {
	return &InventoryHandler{recorder: recorder, query: query, replenishment: replenishment}
}

// RecordMovement godoc
// @Summary      Registrar movimiento manual
// @Description  kind: entry | exit | adjustment. En adjustment, quantity es el stock final.
// @Tags         movements
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RecordMovementRequest  true  "product_id, kind, quantity, note"
// @Success      201   {object}  dto.RecordMovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/movements [post]
func (h *InventoryHandler) RecordMovement(c *fiber.Ctx) error {
	var in dto.RecordMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return errInvalidBody
	}
	res, err := h.recorder.RecordMovement(c.UserContext(), inventory.RecordMovementInput{
		ProductID: in.ProductID,
		Kind:      entity.MovementKind(in.Kind),
		Quantity:  in.Quantity,
		UserID:    GetUserID(c),
		Note:      in.Note,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(dto.RecordMovementResponse{
		Movement: dto.NewMovementResponse(res.Movement),
		Product:  dto.NewProductResponse(res.Product),
	})
}

// ListMovements godoc
// @Summary      Consultar el libro de movimientos
// @Tags         movements
// @Security     Bearer
// @Produce      json
// @Param        product_id  query  int     false  "Producto"
// @Param        kind        query  string  false  "entry | exit | adjustment"
// @Param        from        query  string  false  "Desde (YYYY-MM-DD)"
// @Param        to          query  string  false  "Hasta (YYYY-MM-DD, inclusive)"
// @Param        limit       query  int     false  "Límite"  default(50)
// @Param        offset      query  int     false  "Offset"  default(0)
// @Success      200  {array}   dto.MovementResponse
// @Router       /api/movements [get]
func (h *InventoryHandler) ListMovements(c *fiber.Ctx) error {
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
	list, err := h.query.ListMovements(c.UserContext(), repository.MovementFilter{
		ProductID: productID,
		Kind:      entity.MovementKind(c.Query("kind")),
		From:      from,
		To:        to,
		Page:      queryPage(c),
	})
	if err != nil {
		return err
	}
	out := make([]dto.MovementResponse, 0, len(list))
	for _, v := range list {
		out = append(out, dto.NewMovementViewResponse(v))
	}
	return c.JSON(out)
}

// VerifyLedger godoc
// @Summary      Verificar la cadena del libro
// @Description  Recorre todos los movimientos y reporta filas que no cuadran con el stock.
// @Tags         movements
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.LedgerCheckResponse
// @Router       /api/movements/verify [get]
func (h *InventoryHandler) VerifyLedger(c *fiber.Ctx) error {
	breaks, err := h.query.VerifyLedger(c.UserContext())
	if err != nil {
		return err
	}
	out := dto.LedgerCheckResponse{OK: len(breaks) == 0, Breaks: make([]string, 0, len(breaks))}
	for _, b := range breaks {
		out.Breaks = append(out.Breaks, b.String())
	}
	return c.JSON(out)
}

// GetReplenishmentList godoc
// @Summary      Lista de reposición
// @Description  Productos activos en o bajo el umbral, con la cantidad sugerida para volver a él.
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        threshold  query  int  false  "Umbral de stock"  default(5)
// @Success      200  {array}   dto.ReplenishmentSuggestionDTO
// @Router       /api/inventory/replenishment-list [get]
func (h *InventoryHandler) GetReplenishmentList(c *fiber.Ctx) error {
	list, err := h.replenishment.GenerateReplenishmentList(c.UserContext(), int64(c.QueryInt("threshold", int(appanalytics.DefaultLowStockThreshold))))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"total":          len(list),
		"replenishments": list,
	})
}

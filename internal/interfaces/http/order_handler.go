package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/inventario-pos/internal/application/dto"
	"github.com/jhoicas/inventario-pos/internal/application/inventory"
	"github.com/jhoicas/inventario-pos/internal/domain/entity"
	domaininv "github.com/jhoicas/inventario-pos/internal/domain/inventory"
)

// OrderHandler maneja compras o ventas; kind fija cuál.
type OrderHandler struct {
	kind      entity.OrderKind
	processor *inventory.OrderProcessor
	query     *inventory.OrderQuery
}

// NewPurchaseHandler handler de /api/purchases.
func NewPurchaseHandler(processor *inventory.OrderProcessor, query *inventory.OrderQuery) *OrderHandler {
	return &OrderHandler{kind: entity.OrderPurchase, processor: processor, query: query}
}

// NewSaleHandler handler de /api/sales.
func NewSaleHandler(processor *inventory.OrderProcessor, query *inventory.OrderQuery) *OrderHandler {
	return &OrderHandler{kind: entity.OrderSale, processor: processor, query: query}
}

// Create godoc
// @Summary      Registrar compra o venta
// @Description  Todas las líneas se aplican en una sola transacción. Si una falla, no queda nada
// @Description  registrado y la respuesta indica la línea (1-based) en "line".
// @Tags         purchases,sales
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateSaleRequest  true  "Compra: supplier_id y unit_cost. Venta: customer_id opcional y unit_price."
// @Success      201   {object}  dto.OrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/purchases [post]
// @Router       /api/sales [post]
func (h *OrderHandler) Create(c *fiber.Ctx) error {
	in, err := h.parseOrder(c)
	if err != nil {
		return err
	}
	in.UserID = GetUserID(c)
	res, err := h.processor.ProcessOrder(c.UserContext(), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewOrderResponse(res.Order, res.Lines, res.Movements))
}

func (h *OrderHandler) parseOrder(c *fiber.Ctx) (inventory.ProcessOrderInput, error) {
	out := inventory.ProcessOrderInput{Kind: h.kind}
	if h.kind == entity.OrderPurchase {
		var in dto.CreatePurchaseRequest
		if err := c.BodyParser(&in); err != nil {
			return out, errInvalidBody
		}
		out.CounterpartyID = in.SupplierID
		for _, l := range in.Lines {
			out.Lines = append(out.Lines, domaininv.LineInput{ProductID: l.ProductID, Quantity: l.Quantity, UnitAmount: l.UnitCost})
		}
		return out, nil
	}
	var in dto.CreateSaleRequest
	if err := c.BodyParser(&in); err != nil {
		return out, errInvalidBody
	}
	if in.CustomerID != nil && *in.CustomerID > 0 {
		out.CounterpartyID = in.CustomerID
	}
	for _, l := range in.Lines {
		out.Lines = append(out.Lines, domaininv.LineInput{ProductID: l.ProductID, Quantity: l.Quantity, UnitAmount: l.UnitPrice})
	}
	return out, nil
}

// GetByID godoc
// @Summary      Detalle de compra o venta
// @Tags         purchases,sales
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID de la orden"
// @Success      200  {object}  dto.OrderResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/purchases/{id} [get]
// @Router       /api/sales/{id} [get]
func (h *OrderHandler) GetByID(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	detail, err := h.query.GetOrder(c.UserContext(), h.kind, id)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewOrderDetailResponse(detail.Header, detail.Lines))
}

// List godoc
// @Summary      Listar compras o ventas (más recientes primero)
// @Tags         purchases,sales
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"  default(50)
// @Param        offset  query  int  false  "Offset"  default(0)
// @Success      200  {object}  dto.OrderListResponse
// @Router       /api/purchases [get]
// @Router       /api/sales [get]
func (h *OrderHandler) List(c *fiber.Ctx) error {
	page := queryPage(c)
	list, err := h.query.ListOrders(c.UserContext(), h.kind, page)
	if err != nil {
		return err
	}
	items := make([]dto.OrderResponse, 0, len(list))
	for _, o := range list {
		items = append(items, dto.NewOrderDetailResponse(o, nil))
	}
	pr := dto.PageRequest{Limit: page.Limit, Offset: page.Offset}
	pr.DefaultPage()
	return c.JSON(dto.OrderListResponse{Items: items, Page: dto.PageResponse{Limit: pr.Limit, Offset: pr.Offset}})
}

// Void godoc
// @Summary      Anular compra o venta
// @Description  Revierte el stock de cada línea con un movimiento inverso; la orden queda en estado voided.
// @Tags         purchases,sales
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID de la orden"
// @Success      200  {object}  dto.OrderResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/purchases/{id}/void [patch]
// @Router       /api/sales/{id}/void [patch]
func (h *OrderHandler) Void(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	res, err := h.processor.VoidOrder(c.UserContext(), h.kind, id, GetUserID(c))
	if err != nil {
		return err
	}
	return c.JSON(dto.NewOrderResponse(res.Order, nil, res.Movements))
}

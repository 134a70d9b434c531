package http

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/inventario-pos/internal/application/dto"
	"github.com/jhoicas/inventario-pos/internal/application/usecase"
)

// CategoryHandler maneja las categorías de producto.
type CategoryHandler struct {
	uc *usecase.CategoryUseCase
}

func NewCategoryHandler(uc *usecase.CategoryUseCase) *CategoryHandler {
	return &CategoryHandler{uc: uc}
}

// Create godoc
// @Summary      Crear categoría
// @Tags         categories
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CategoryRequest  true  "Datos de la categoría"
// @Success      201   {object}  dto.CategoryResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/categories [post]
func (h *CategoryHandler) Create(c *fiber.Ctx) error {
	var in dto.CategoryRequest
	if err := c.BodyParser(&in); err != nil {
		return errInvalidBody
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

func (h *CategoryHandler) Update(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var in dto.CategoryRequest
	if err := c.BodyParser(&in); err != nil {
		return errInvalidBody
	}
	out, err := h.uc.Update(c.UserContext(), id, in)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

func (h *CategoryHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// partyService es lo común a proveedores y clientes.
type partyService interface {
	Create(ctx context.Context, in dto.PartyRequest) (*dto.PartyResponse, error)
	Update(ctx context.Context, id int64, in dto.PartyRequest) (*dto.PartyResponse, error)
	SetActive(ctx context.Context, id int64, active bool) error
	List(ctx context.Context, onlyActive bool) ([]dto.PartyResponse, error)
}

// PartyHandler maneja proveedores o clientes según el servicio que reciba.
type PartyHandler struct {
	uc partyService
}

// NewSupplierHandler handler de /api/suppliers.
func NewSupplierHandler(uc *usecase.SupplierUseCase) *PartyHandler {
	return &PartyHandler{uc: uc}
}

// NewCustomerHandler handler de /api/customers.
func NewCustomerHandler(uc *usecase.CustomerUseCase) *PartyHandler {
	return &PartyHandler{uc: uc}
}

// Create godoc
// @Summary      Crear proveedor o cliente
// @Tags         suppliers,customers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.PartyRequest  true  "name, phone, email"
// @Success      201   {object}  dto.PartyResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/suppliers [post]
// @Router       /api/customers [post]
func (h *PartyHandler) Create(c *fiber.Ctx) error {
	var in dto.PartyRequest
	if err := c.BodyParser(&in); err != nil {
		return errInvalidBody
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

func (h *PartyHandler) Update(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var in dto.PartyRequest
	if err := c.BodyParser(&in); err != nil {
		return errInvalidBody
	}
	out, err := h.uc.Update(c.UserContext(), id, in)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// SetStatus activa o desactiva; body {"active": bool}.
func (h *PartyHandler) SetStatus(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	active, err := parseStatus(c)
	if err != nil {
		return err
	}
	if err := h.uc.SetActive(c.UserContext(), id, active); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"id": id, "active": active})
}

// List con ?active=true devuelve solo los activos (selectores de compra y venta).
func (h *PartyHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), c.QueryBool("active", false))
	if err != nil {
		return err
	}
	return c.JSON(out)
}

func parseStatus(c *fiber.Ctx) (bool, error) {
	var in dto.StatusRequest
	if err := c.BodyParser(&in); err != nil {
		return false, errInvalidBody
	}
	if in.Active == nil {
		return false, badRequest("VALIDATION", "active es requerido")
	}
	return *in.Active, nil
}

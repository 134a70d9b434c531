package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/inventario-pos/internal/application/dto"
	"github.com/jhoicas/inventario-pos/internal/domain"
	"github.com/jhoicas/inventario-pos/pkg/logger"
)

// apiError error ya traducido a HTTP por el handler (cuerpo inválido, parámetro faltante).
type apiError struct {
	Status  int
	Code    string
	Message string
}

func (e *apiError) Error() string { return e.Message }

func badRequest(code, message string) error {
	return &apiError{Status: fiber.StatusBadRequest, Code: code, Message: message}
}

var errInvalidBody = badRequest("INVALID_BODY", "cuerpo inválido")

// errorMapping traduce un error de dominio a status y código de respuesta.
type errorMapping struct {
	err    error
	status int
	code   string
}

// Orden relevante: se usa la primera coincidencia con errors.Is.
var errorMappings = []errorMapping{
	{domain.ErrEmptyOrder, fiber.StatusBadRequest, "EMPTY_ORDER"},
	{domain.ErrMissingProduct, fiber.StatusBadRequest, "MISSING_PRODUCT"},
	{domain.ErrInvalidQuantity, fiber.StatusBadRequest, "INVALID_QUANTITY"},
	{domain.ErrInvalidAmount, fiber.StatusBadRequest, "INVALID_AMOUNT"},
	{domain.ErrInvalidMovementKind, fiber.StatusBadRequest, "INVALID_MOVEMENT_KIND"},
	{domain.ErrInvalidOrderKind, fiber.StatusBadRequest, "INVALID_ORDER_KIND"},
	{domain.ErrCounterpartyMissing, fiber.StatusBadRequest, "COUNTERPARTY_REQUIRED"},
	{domain.ErrInvalidInput, fiber.StatusBadRequest, "VALIDATION"},

	{domain.ErrProductNotFound, fiber.StatusNotFound, "PRODUCT_NOT_FOUND"},
	{domain.ErrOrderNotFound, fiber.StatusNotFound, "ORDER_NOT_FOUND"},
	{domain.ErrUserNotFound, fiber.StatusNotFound, "USER_NOT_FOUND"},
	{domain.ErrCounterpartyNotFound, fiber.StatusNotFound, "COUNTERPARTY_NOT_FOUND"},
	{domain.ErrNotFound, fiber.StatusNotFound, "NOT_FOUND"},

	{domain.ErrProductInactive, fiber.StatusConflict, "PRODUCT_INACTIVE"},
	{domain.ErrInsufficientStock, fiber.StatusConflict, "INSUFFICIENT_STOCK"},
	{domain.ErrOrderAlreadyVoided, fiber.StatusConflict, "ALREADY_VOIDED"},
	{domain.ErrEmailAlreadyExists, fiber.StatusConflict, "EMAIL_EXISTS"},
	{domain.ErrDuplicate, fiber.StatusConflict, "DUPLICATE"},
	{domain.ErrConflict, fiber.StatusConflict, "CONFLICT"},

	{domain.ErrForbidden, fiber.StatusForbidden, "FORBIDDEN"},
	{domain.ErrUserInactive, fiber.StatusForbidden, "USER_INACTIVE"},
	{domain.ErrInvalidCredentials, fiber.StatusUnauthorized, "UNAUTHORIZED"},
	{domain.ErrUnauthorized, fiber.StatusUnauthorized, "UNAUTHORIZED"},
}

// ErrorHandler es el fiber.ErrorHandler de la API: los handlers devuelven el error tal cual
// y aquí se decide el status. Lo no reconocido es un 500 opaco que sí queda en el log.
func ErrorHandler(log *logger.Logger) fiber.ErrorHandler {
	log = log.Named("http")
	return func(c *fiber.Ctx, err error) error {
		var apiErr *apiError
		if errors.As(err, &apiErr) {
			return c.Status(apiErr.Status).JSON(dto.ErrorResponse{Code: apiErr.Code, Message: apiErr.Message})
		}
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return c.Status(fe.Code).JSON(dto.ErrorResponse{Code: fiberCode(fe.Code), Message: fe.Message})
		}
		for _, m := range errorMappings {
			if errors.Is(err, m.err) {
				resp := dto.ErrorResponse{Code: m.code, Message: err.Error()}
				var lineErr *domain.LineError
				if errors.As(err, &lineErr) {
					resp.Line = lineErr.Index
				}
				return c.Status(m.status).JSON(resp)
			}
		}
		log.Error().Err(err).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Str("request_id", requestID(c)).
			Msg("error no controlado")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno"})
	}
}

func fiberCode(status int) string {
	switch status {
	case fiber.StatusNotFound:
		return "NOT_FOUND"
	case fiber.StatusMethodNotAllowed:
		return "METHOD_NOT_ALLOWED"
	case fiber.StatusRequestEntityTooLarge:
		return "BODY_TOO_LARGE"
	case fiber.StatusBadRequest:
		return "BAD_REQUEST"
	default:
		return "HTTP_ERROR"
	}
}

package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/hotel-ops-api/internal/application/dto"
	"github.com/jhoicas/hotel-ops-api/internal/domain"
	"github.com/jhoicas/hotel-ops-api/pkg/logger"
)

// Códigos de error expuestos al cliente.
const (
	CodeValidation         = "VALIDATION"
	CodeNoMatchingArea     = "NO_MATCHING_AREA"
	CodeItemNotInCompany   = "ITEM_NOT_IN_COMPANY"
	CodeInvalidCredentials = "AUTH_INVALID_CREDENTIALS"
	CodeUnauthorized       = "AUTH_UNAUTHORIZED"
	CodeForbidden          = "AUTH_FORBIDDEN"
	CodeNotFound           = "NOT_FOUND"
	CodeRateLimitExceeded  = "RATE_LIMIT_EXCEEDED"
	CodeServerError        = "SERVER_ERROR"
)

// writeError responde con el sobre { success: false, error: { code, message } }.
func writeError(c *fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(dto.ErrorEnvelope{
		Success: false,
		Error:   dto.ErrorResponse{Code: code, Message: message},
	})
}

// respondError traduce un error de dominio a su código HTTP. Los errores inesperados se
// registran completos y al cliente solo le llega un mensaje genérico.
func respondError(c *fiber.Ctx, log *logger.Logger, err error) error {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		return writeError(c, fiber.StatusBadRequest, CodeValidation, verr.Reason)
	case errors.Is(err, domain.ErrInvalidInput):
		return writeError(c, fiber.StatusBadRequest, CodeValidation, "entrada inválida")
	case errors.Is(err, domain.ErrNoMatchingArea):
		return writeError(c, fiber.StatusBadRequest, CodeNoMatchingArea, "ninguna de sus áreas corresponde a esta operación")
	case errors.Is(err, domain.ErrItemNotInCompany):
		return writeError(c, fiber.StatusBadRequest, CodeItemNotInCompany, "uno o más ítems no pertenecen a la empresa")
	case errors.Is(err, domain.ErrInvalidCredentials):
		return writeError(c, fiber.StatusUnauthorized, CodeInvalidCredentials, "credenciales inválidas")
	case errors.Is(err, domain.ErrSessionInvalid), errors.Is(err, domain.ErrUnauthorized):
		return writeError(c, fiber.StatusUnauthorized, CodeUnauthorized, "sesión inválida o expirada")
	case errors.Is(err, domain.ErrForbidden):
		return writeError(c, fiber.StatusForbidden, CodeForbidden, "acceso denegado")
	case errors.Is(err, domain.ErrNotFound):
		return writeError(c, fiber.StatusNotFound, CodeNotFound, "recurso no encontrado")
	case errors.Is(err, domain.ErrRateLimited):
		return writeError(c, fiber.StatusTooManyRequests, CodeRateLimitExceeded, "demasiados intentos, espere e intente de nuevo")
	}
	if log != nil {
		log.Error().Err(err).Str("method", c.Method()).Str("path", c.Path()).Msg("error no controlado")
	}
	return writeError(c, fiber.StatusInternalServerError, CodeServerError, "error interno del servidor")
}

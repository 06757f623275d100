package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/hotel-ops-api/internal/domain/repository"
	"github.com/jhoicas/hotel-ops-api/pkg/logger"
)

// RequireActiveCompany bloquea la consola de administración si la empresa del token no está activa.
// Debe montarse después de AuthMiddleware.
func RequireActiveCompany(companies repository.CompanyRepository, log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		companyID := GetCompanyID(c)
		if companyID == "" {
			return writeError(c, fiber.StatusUnauthorized, CodeUnauthorized, "company_id no encontrado en el token")
		}
		company, err := companies.GetByID(c.UserContext(), companyID)
		if err != nil {
			log.Error().Err(err).Str("company_id", companyID).Msg("no se pudo verificar la empresa")
			return writeError(c, fiber.StatusServiceUnavailable, CodeServerError, "no se pudo verificar la empresa")
		}
		if company == nil || !company.IsActive() {
			return writeError(c, fiber.StatusForbidden, CodeForbidden, "la empresa no está activa")
		}
		return c.Next()
	}
}

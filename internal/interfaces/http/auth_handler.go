package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/hotel-ops-api/internal/application/auth"
	"github.com/jhoicas/hotel-ops-api/internal/application/dto"
	"github.com/jhoicas/hotel-ops-api/internal/domain"
	"github.com/jhoicas/hotel-ops-api/internal/infrastructure/metrics"
	"github.com/jhoicas/hotel-ops-api/pkg/logger"
)

// AuthHandler maneja el login por PIN de las terminales, la sesión y el login de consola.
type AuthHandler struct {
	pin      *auth.PINAuthUseCase
	sessions *auth.SessionUseCase
	admin    *auth.AdminAuthUseCase
	log      *logger.Logger
	metrics  *metrics.Metrics
}

// NewAuthHandler construye el handler. m puede ser nil.
func NewAuthHandler(pin *auth.PINAuthUseCase, sessions *auth.SessionUseCase, admin *auth.AdminAuthUseCase, log *logger.Logger, m *metrics.Metrics) *AuthHandler {
	return &AuthHandler{pin: pin, sessions: sessions, admin: admin, log: log, metrics: m}
}

// PINLogin autentica por PIN y emite la sesión de la terminal.
// @Summary     Login por PIN
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       body body dto.PINLoginRequest true "PIN (4 a 8 dígitos) y empresa opcional"
// @Success     200 {object} dto.PINLoginResponse
// @Failure     400 {object} dto.ErrorEnvelope
// @Failure     401 {object} dto.ErrorEnvelope
// @Failure     429 {object} dto.ErrorEnvelope
// @Router      /api/auth/pin [post]
func (h *AuthHandler) PINLogin(c *fiber.Ctx) error {
	var req dto.PINLoginRequest
	if err := parseBody(c, &req); err != nil {
		h.metrics.PINLogin(metrics.LoginMalformed)
		return respondError(c, h.log, err)
	}
	out, err := h.pin.Login(c.UserContext(), req)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			h.metrics.PINLogin(metrics.LoginInvalid)
			h.log.Warn().Str("ip", c.IP()).Str("company_id", req.CompanyID).Msg("login por PIN fallido")
		}
		return respondError(c, h.log, err)
	}
	h.metrics.PINLogin(metrics.LoginSuccess)
	h.log.Info().Str("employee_id", out.Employee.ID).Str("company_id", out.Employee.CompanyID).Msg("sesión emitida")
	return c.JSON(out)
}

// Logout invalida la sesión presentada. Repetirlo con el mismo token responde igual.
// @Summary     Cerrar sesión
// @Tags        auth
// @Produce     json
// @Param       X-Session-Token header string true "token de sesión"
// @Success     200 {object} map[string]bool
// @Failure     401 {object} dto.ErrorEnvelope
// @Router      /api/auth/logout [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	token := sessionToken(c)
	if token == "" {
		return writeError(c, fiber.StatusUnauthorized, CodeUnauthorized, HeaderSessionToken+" requerido")
	}
	if err := h.sessions.Logout(c.UserContext(), token); err != nil && !errors.Is(err, domain.ErrSessionInvalid) {
		return respondError(c, h.log, err)
	}
	return c.JSON(fiber.Map{"success": true})
}

// Session devuelve el contexto de la sesión verificada.
// @Summary     Sesión actual
// @Tags        auth
// @Produce     json
// @Param       X-Session-Token header string true "token de sesión"
// @Success     200 {object} dto.SessionResponse
// @Failure     401 {object} dto.ErrorEnvelope
// @Router      /api/auth/session [get]
func (h *AuthHandler) Session(c *fiber.Ctx) error {
	sc := GetSession(c)
	if sc == nil {
		return writeError(c, fiber.StatusUnauthorized, CodeUnauthorized, "sesión inválida o expirada")
	}
	return c.JSON(dto.SessionResponse{
		Success:      true,
		ExpiresAt:    sc.ExpiresAt,
		LastActivity: sc.LastActivity,
		Employee:     sc.Profile(),
	})
}

// AdminLogin autentica a un administrador o supervisor y devuelve un JWT de consola.
// @Summary     Login de consola
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       body body dto.AdminLoginRequest true "credenciales"
// @Success     200 {object} dto.AdminLoginResponse
// @Failure     400 {object} dto.ErrorEnvelope
// @Failure     401 {object} dto.ErrorEnvelope
// @Router      /api/admin/auth/login [post]
func (h *AuthHandler) AdminLogin(c *fiber.Ctx) error {
	var req dto.AdminLoginRequest
	if err := parseBody(c, &req); err != nil {
		return respondError(c, h.log, err)
	}
	out, err := h.admin.Login(c.UserContext(), req)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			h.log.Warn().Str("ip", c.IP()).Msg("login de consola fallido")
		}
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

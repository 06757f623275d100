package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/hotel-ops-api/internal/application/dto"
	appledger "github.com/jhoicas/hotel-ops-api/internal/application/ledger"
	"github.com/jhoicas/hotel-ops-api/internal/infrastructure/metrics"
	"github.com/jhoicas/hotel-ops-api/pkg/logger"
)

// LedgerHandler registra eventos operativos desde las terminales y expone el ledger reciente.
type LedgerHandler struct {
	uc      *appledger.EventUseCase
	log     *logger.Logger
	metrics *metrics.Metrics
}

// NewLedgerHandler construye el handler. m puede ser nil.
func NewLedgerHandler(uc *appledger.EventUseCase, log *logger.Logger, m *metrics.Metrics) *LedgerHandler {
	return &LedgerHandler{uc: uc, log: log, metrics: m}
}

// AppendEvent registra un evento con tipo y área explícitos.
// @Summary     Registrar evento
// @Tags        ledger
// @Accept      json
// @Produce     json
// @Param       X-Session-Token header string true "token de sesión"
// @Param       body body dto.AppendEventRequest true "evento"
// @Success     201 {object} dto.AppendEventResponse
// @Failure     400 {object} dto.ErrorEnvelope
// @Failure     401 {object} dto.ErrorEnvelope
// @Failure     403 {object} dto.ErrorEnvelope
// @Router      /api/ledger/events [post]
func (h *LedgerHandler) AppendEvent(c *fiber.Ctx) error {
	var req dto.AppendEventRequest
	if err := parseBody(c, &req); err != nil {
		return respondError(c, h.log, err)
	}
	out, err := h.uc.Append(c.UserContext(), appledger.AppendInput{
		Session:   GetSession(c),
		AreaID:    req.AreaID,
		EventType: req.EventType,
		Items:     req.Items,
	})
	if err != nil {
		return respondError(c, h.log, err)
	}
	h.metrics.LedgerAppend(out.EventType)
	return c.Status(fiber.StatusCreated).JSON(out)
}

// RecordOperation registra una operación de terminal: collection, demand, wash-cycle o supply.
// @Summary     Registrar operación
// @Tags        ledger
// @Accept      json
// @Produce     json
// @Param       X-Session-Token header string true "token de sesión"
// @Param       operation path string true "collection | demand | wash-cycle | supply"
// @Param       body body dto.OperationRequest true "ítems y área opcional"
// @Success     201 {object} dto.AppendEventResponse
// @Failure     400 {object} dto.ErrorEnvelope
// @Failure     401 {object} dto.ErrorEnvelope
// @Failure     403 {object} dto.ErrorEnvelope
// @Failure     404 {object} dto.ErrorEnvelope
// @Router      /api/operations/{operation} [post]
func (h *LedgerHandler) RecordOperation(c *fiber.Ctx) error {
	operation := c.Params("operation")
	if _, ok := appledger.OperationEventType(operation); !ok {
		return writeError(c, fiber.StatusNotFound, CodeNotFound, "operación desconocida: "+operation)
	}
	var req dto.OperationRequest
	if err := parseBody(c, &req); err != nil {
		return respondError(c, h.log, err)
	}
	out, err := h.uc.RecordOperation(c.UserContext(), GetSession(c), operation, req)
	if err != nil {
		return respondError(c, h.log, err)
	}
	h.metrics.LedgerAppend(out.EventType)
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListRecent devuelve los eventos de la empresa del token, más recientes primero.
// @Summary     Ledger reciente
// @Tags        dashboard
// @Produce     json
// @Security    BearerAuth
// @Param       limit  query int false "máximo 100, por defecto 20"
// @Param       offset query int false "desplazamiento"
// @Success     200 {object} dto.EventListResponse
// @Failure     400 {object} dto.ErrorEnvelope
// @Router      /api/dashboard/events [get]
func (h *LedgerHandler) ListRecent(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return writeError(c, fiber.StatusBadRequest, CodeValidation, "parámetros de paginación inválidos")
	}
	if err := validateStruct(&page); err != nil {
		return respondError(c, h.log, err)
	}
	out, err := h.uc.ListRecent(c.UserContext(), GetCompanyID(c), page)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

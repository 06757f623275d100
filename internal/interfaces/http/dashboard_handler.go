package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/hotel-ops-api/internal/application/analytics"
	"github.com/jhoicas/hotel-ops-api/internal/domain"
	"github.com/jhoicas/hotel-ops-api/pkg/logger"
)

// DashboardHandler maneja el resumen de cuellos de botella y su reporte PDF.
type DashboardHandler struct {
	bottleneck *appanalytics.BottleneckUseCase
	report     *appanalytics.ReportUseCase
	log        *logger.Logger
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(bottleneck *appanalytics.BottleneckUseCase, report *appanalytics.ReportUseCase, log *logger.Logger) *DashboardHandler {
	return &DashboardHandler{bottleneck: bottleneck, report: report, log: log}
}

// GetBottleneck devuelve demanda, suministro y pendientes de hoy con tendencia contra ayer.
// GET /api/dashboard/bottleneck?as_of=2025-03-10T15:00:00-05:00
//
// Sin as_of se calcula al instante actual. Los límites de "hoy" y "ayer" usan APP_TIMEZONE.
// @Summary     Resumen de cuellos de botella
// @Tags        dashboard
// @Produce     json
// @Security    BearerAuth
// @Param       as_of query string false "instante RFC3339"
// @Success     200 {object} dto.BottleneckSummary
// @Failure     400 {object} dto.ErrorEnvelope
// @Router      /api/dashboard/bottleneck [get]
func (h *DashboardHandler) GetBottleneck(c *fiber.Ctx) error {
	asOf, err := parseAsOf(c)
	if err != nil {
		return respondError(c, h.log, err)
	}
	summary, err := h.bottleneck.Compute(c.UserContext(), GetCompanyID(c), asOf)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(summary)
}

// GetBottleneckReport renderiza el mismo resumen como PDF.
// @Summary     Reporte PDF de cuellos de botella
// @Tags        dashboard
// @Produce     application/pdf
// @Security    BearerAuth
// @Param       as_of query string false "instante RFC3339"
// @Success     200 {file} binary
// @Failure     400 {object} dto.ErrorEnvelope
// @Failure     404 {object} dto.ErrorEnvelope
// @Router      /api/dashboard/bottleneck/report.pdf [get]
func (h *DashboardHandler) GetBottleneckReport(c *fiber.Ctx) error {
	asOf, err := parseAsOf(c)
	if err != nil {
		return respondError(c, h.log, err)
	}
	pdf, err := h.report.BottleneckPDF(c.UserContext(), GetCompanyID(c), asOf)
	if err != nil {
		return respondError(c, h.log, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="cuellos-de-botella.pdf"`)
	return c.Send(pdf)
}

// parseAsOf lee as_of (RFC3339). Ausente devuelve el instante cero, que el caso de uso toma como "ahora".
func parseAsOf(c *fiber.Ctx) (time.Time, error) {
	raw := c.Query("as_of")
	if raw == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, domain.Invalid("as_of debe ser una fecha RFC3339")
	}
	return t, nil
}

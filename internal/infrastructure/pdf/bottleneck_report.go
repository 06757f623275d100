// Package pdf implementa el reporte PDF del cuello de botella demanda/oferta.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Empresa              │  Título + fecha de corte     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  GLOBAL: Demanda / Oferta / Pendiente / Ratio / Estado       │
//	│  TENDENCIA: hoy vs ayer                                      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Área | Tipo | Demanda | Oferta | Pendiente | Estado  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  ALERTAS                                                     │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/jhoicas/hotel-ops-api/internal/application/analytics"
	"github.com/jhoicas/hotel-ops-api/internal/application/dto"
	"github.com/jhoicas/hotel-ops-api/internal/domain/entity"
	"github.com/jhoicas/hotel-ops-api/internal/domain/ledger"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary  = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray     = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWarning  = &props.Color{Red: 204, Green: 122, Blue: 0}
	colorCritical = &props.Color{Red: 178, Green: 34, Blue: 34}
	colorOK       = &props.Color{Red: 34, Green: 120, Blue: 60}
)

// ── Generator ─────────────────────────────────────────────────────────────────

var _ analytics.BottleneckReportGenerator = (*MarotoPDFGenerator)(nil)

// MarotoPDFGenerator implementa analytics.BottleneckReportGenerator usando Maroto v2.
type MarotoPDFGenerator struct {
	printer *message.Printer
}

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator() *MarotoPDFGenerator {
	return &MarotoPDFGenerator{printer: message.NewPrinter(language.Spanish)}
}

// GenerateBottleneckPDF genera el PDF y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateBottleneckPDF(
	_ context.Context,
	company *entity.Company,
	summary *dto.BottleneckSummary,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Cuello de botella operativo", true).
		WithAuthor(company.Name, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(company, summary))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(g.globalRow(summary.Global))
	m.AddRows(g.trendRow(summary.Trend))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	for _, r := range g.areaRows(summary.Areas) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	for _, r := range alertRows(summary.Alerts) {
		m.AddRows(r)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: empresa (izq) y título + fecha de corte (der).
func headerRow(company *entity.Company, s *dto.BottleneckSummary) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(company.Name, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
		),
		col.New(5).Add(
			text.New("CUELLO DE BOTELLA OPERATIVO", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New("Corte: "+s.AsOf.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 8, Color: colorGray,
			}),
		),
	)
}

func (g *MarotoPDFGenerator) globalRow(t dto.BottleneckTotals) core.Row {
	cell := func(label, value string, c *props.Color) core.Col {
		return col.New(2).Add(
			text.New(label, props.Text{Size: 7, Color: colorGray, Top: 1, Align: align.Center}),
			text.New(value, props.Text{Style: fontstyle.Bold, Size: 11, Color: c, Top: 6, Align: align.Center}),
		)
	}
	return row.New(16).Add(
		col.New(2).Add(text.New("GLOBAL", props.Text{Style: fontstyle.Bold, Size: 9, Color: colorPrimary, Top: 5})),
		cell("Demanda", g.count(t.TotalDemand), nil),
		cell("Oferta", g.count(t.TotalSupply), nil),
		cell("Pendiente", g.count(t.Pending), nil),
		cell("Ratio", g.printer.Sprintf("%.1f%%", t.PendingRatio*100), nil),
		cell("Estado", t.Status, statusColor(t.Status)),
	)
}

func (g *MarotoPDFGenerator) trendRow(tr dto.BottleneckTrend) core.Row {
	entry := func(label string, today, yesterday int64, pct float64, top float64) core.Component {
		return text.New(
			g.printer.Sprintf("%s: hoy %d, ayer %d (%+.1f%%)", label, today, yesterday, pct),
			props.Text{Size: 8, Left: 2, Top: top},
		)
	}
	return row.New(16).Add(
		col.New(2).Add(text.New("TENDENCIA", props.Text{Style: fontstyle.Bold, Size: 9, Color: colorPrimary, Top: 5})),
		col.New(10).Add(
			entry("Demanda", tr.Today.Demand, tr.Yesterday.Demand, tr.DemandTrend, 1),
			entry("Oferta", tr.Today.Supply, tr.Yesterday.Supply, tr.SupplyTrend, 6),
			entry("Pendiente", tr.Today.Pending, tr.Yesterday.Pending, tr.PendingTrend, 11),
		),
	)
}

// tableHeaderRow: cabecera de la tabla de áreas.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Área", 4, align.Left),
		h("Tipo", 2, align.Center),
		h("Demanda", 2, align.Right),
		h("Oferta", 1, align.Right),
		h("Pendiente", 2, align.Right),
		h("Estado", 1, align.Center),
	)
}

// areaRows: una fila por área activa.
func (g *MarotoPDFGenerator) areaRows(areas []dto.AreaBottleneck) []core.Row {
	result := make([]core.Row, 0, len(areas))
	for _, a := range areas {
		result = append(result, row.New(7).Add(
			col.New(4).Add(text.New(a.AreaName, props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1})),
			col.New(2).Add(text.New(a.AreaType, props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(2).Add(text.New(g.count(a.TotalDemand), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(1).Add(text.New(g.count(a.TotalSupply), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(2).Add(text.New(g.count(a.Pending), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(1).Add(text.New(a.Status, props.Text{
				Style: fontstyle.Bold, Size: 7, Align: align.Center, Top: 1, Color: statusColor(a.Status),
			})),
		))
	}
	return result
}

// alertRows: alertas de áreas en WARNING o CRITICAL.
func alertRows(alerts []dto.BottleneckAlert) []core.Row {
	rows := []core.Row{
		row.New(6).Add(col.New(12).Add(
			text.New("ALERTAS", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
		)),
	}
	if len(alerts) == 0 {
		return append(rows, row.New(5).Add(col.New(12).Add(
			text.New("Sin alertas: todas las áreas en estado OK.", props.Text{Size: 8, Color: colorGray, Top: 1}),
		)))
	}
	for _, a := range alerts {
		rows = append(rows, row.New(5).Add(
			col.New(2).Add(text.New(a.Severity, props.Text{
				Style: fontstyle.Bold, Size: 8, Color: statusColor(a.Severity), Top: 1,
			})),
			col.New(10).Add(text.New(a.AreaName+": "+a.Message, props.Text{Size: 8, Top: 1})),
		))
	}
	return rows
}

// ── helpers ───────────────────────────────────────────────────────────────────

// count cantidad con separador de miles local.
func (g *MarotoPDFGenerator) count(n int64) string {
	return g.printer.Sprintf("%d", n)
}

func statusColor(status string) *props.Color {
	switch status {
	case ledger.StatusCritical:
		return colorCritical
	case ledger.StatusWarning:
		return colorWarning
	default:
		return colorOK
	}
}

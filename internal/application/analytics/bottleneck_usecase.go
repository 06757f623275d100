// Package analytics contiene los casos de uso de lectura del dashboard:
// cuello de botella demanda/oferta y su reporte PDF.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/jhoicas/hotel-ops-api/internal/application/dto"
	"github.com/jhoicas/hotel-ops-api/internal/domain/entity"
	"github.com/jhoicas/hotel-ops-api/internal/domain/ledger"
	"github.com/jhoicas/hotel-ops-api/internal/domain/repository"
)

// maxParallelSums consultas de suma simultáneas por cálculo.
const maxParallelSums = 8

// BottleneckUseCase calcula demanda, oferta y pendiente global, por día y por área.
//
// Fuente de datos: BottleneckRepository (sumas read-only) y AreaRepository.
// No toma locks: cada suma es consistente por sí sola, el resumen es una foto aproximada.
type BottleneckUseCase struct {
	sums    repository.BottleneckRepository
	areas   repository.AreaRepository
	loc     *time.Location
	now     func() time.Time
	printer *message.Printer
}

// BottleneckOption configura BottleneckUseCase.
type BottleneckOption func(*BottleneckUseCase)

// WithClock reemplaza el reloj (tests).
func WithClock(now func() time.Time) BottleneckOption {
	return func(uc *BottleneckUseCase) {
		if now != nil {
			uc.now = now
		}
	}
}

// WithLocation zona horaria en la que se cortan "hoy" y "ayer".
func WithLocation(loc *time.Location) BottleneckOption {
	return func(uc *BottleneckUseCase) {
		if loc != nil {
			uc.loc = loc
		}
	}
}

// NewBottleneckUseCase construye el caso de uso.
func NewBottleneckUseCase(sums repository.BottleneckRepository, areas repository.AreaRepository, opts ...BottleneckOption) *BottleneckUseCase {
	uc := &BottleneckUseCase{
		sums:    sums,
		areas:   areas,
		loc:     time.Local,
		now:     time.Now,
		printer: message.NewPrinter(language.Spanish),
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// Compute construye el resumen para la empresa con corte en asOf (cero = ahora).
//
// Sumas en paralelo:
//  1. demanda y oferta acumuladas hasta asOf          → Global
//  2. demanda y oferta de hoy y de ayer               → Trend
//  3. oferta de cada área activa hasta asOf           → Areas (contra la demanda global)
func (uc *BottleneckUseCase) Compute(ctx context.Context, companyID string, asOf time.Time) (*dto.BottleneckSummary, error) {
	if asOf.IsZero() {
		asOf = uc.now()
	}
	asOf = asOf.In(uc.loc)

	// ── Rangos de fecha ────────────────────────────────────────────────────────
	// Hoy: medianoche local – asOf. Ayer: día completo anterior, 00:00:00 – 23:59:59.999.
	todayStart := time.Date(asOf.Year(), asOf.Month(), asOf.Day(), 0, 0, 0, 0, uc.loc)
	yesterdayStart := todayStart.AddDate(0, 0, -1)
	yesterdayEnd := todayStart.Add(-time.Nanosecond)

	areas, err := uc.areas.ListActiveByCompany(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("bottleneck: listar áreas: %w", err)
	}

	demand, supply := ledger.DemandTypes(), ledger.SupplyTypes()
	var (
		totalDemand, totalSupply int64
		todayDemand, todaySupply int64
		prevDemand, prevSupply   int64
	)
	areaSupply := make([]int64, len(areas))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxParallelSums)
	sum := func(dst *int64, f repository.QuantityFilter) {
		f.CompanyID = companyID
		g.Go(func() error {
			v, err := uc.sums.SumQuantities(gctx, f)
			if err != nil {
				return err
			}
			*dst = v
			return nil
		})
	}

	sum(&totalDemand, repository.QuantityFilter{EventTypes: demand, To: asOf})
	sum(&totalSupply, repository.QuantityFilter{EventTypes: supply, To: asOf})
	sum(&todayDemand, repository.QuantityFilter{EventTypes: demand, From: &todayStart, To: asOf})
	sum(&todaySupply, repository.QuantityFilter{EventTypes: supply, From: &todayStart, To: asOf})
	sum(&prevDemand, repository.QuantityFilter{EventTypes: demand, From: &yesterdayStart, To: yesterdayEnd})
	sum(&prevSupply, repository.QuantityFilter{EventTypes: supply, From: &yesterdayStart, To: yesterdayEnd})
	for i, a := range areas {
		sum(&areaSupply[i], repository.QuantityFilter{EventTypes: supply, AreaID: a.ID, To: asOf})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("bottleneck: sumar cantidades: %w", err)
	}

	out := &dto.BottleneckSummary{
		CompanyID: companyID,
		AsOf:      asOf,
		Global:    totals(totalDemand, totalSupply, totalDemand-totalSupply),
		Trend:     trend(todayDemand, todaySupply, prevDemand, prevSupply),
		Areas:     make([]dto.AreaBottleneck, 0, len(areas)),
		Alerts:    []dto.BottleneckAlert{},
	}

	// La demanda no se reparte por área: cualquier área de proceso puede absorber
	// la demanda de cualquier origen, así que cada área se mide contra el total.
	for i, a := range areas {
		ab := dto.AreaBottleneck{
			AreaID:           a.ID,
			AreaName:         a.Name,
			AreaType:         a.Type,
			BottleneckTotals: totals(totalDemand, areaSupply[i], ledger.ClampPending(totalDemand, areaSupply[i])),
		}
		out.Areas = append(out.Areas, ab)
		if ab.Status != ledger.StatusOK {
			out.Alerts = append(out.Alerts, uc.alert(a, ab))
		}
	}
	return out, nil
}

func (uc *BottleneckUseCase) alert(a *entity.Area, ab dto.AreaBottleneck) dto.BottleneckAlert {
	return dto.BottleneckAlert{
		AreaID:   a.ID,
		AreaName: a.Name,
		Severity: ab.Status,
		Pending:  ab.Pending,
		Message:  uc.PendingText(ab.Pending),
	}
}

// PendingText cantidad pendiente legible con separador de miles local.
func (uc *BottleneckUseCase) PendingText(pending int64) string {
	if pending == 1 {
		return "1 pieza pendiente"
	}
	return uc.printer.Sprintf("%d piezas pendientes", pending)
}

func totals(demand, supply, pending int64) dto.BottleneckTotals {
	ratio := ledger.PendingRatio(pending, demand)
	return dto.BottleneckTotals{
		TotalDemand:  demand,
		TotalSupply:  supply,
		Pending:      pending,
		PendingRatio: ratio.Round(4).InexactFloat64(),
		Status:       ledger.ClassifyStatus(ratio),
	}
}

func trend(todayDemand, todaySupply, prevDemand, prevSupply int64) dto.BottleneckTrend {
	todayPending := todayDemand - todaySupply
	prevPending := prevDemand - prevSupply
	return dto.BottleneckTrend{
		Today:        dto.DayTotals{Demand: todayDemand, Supply: todaySupply, Pending: todayPending},
		Yesterday:    dto.DayTotals{Demand: prevDemand, Supply: prevSupply, Pending: prevPending},
		DemandTrend:  percent(ledger.TrendPercent(todayDemand, prevDemand)),
		SupplyTrend:  percent(ledger.TrendPercent(todaySupply, prevSupply)),
		PendingTrend: percent(ledger.TrendPercent(todayPending, prevPending)),
	}
}

func percent(d decimal.Decimal) float64 {
	return d.Round(1).InexactFloat64()
}

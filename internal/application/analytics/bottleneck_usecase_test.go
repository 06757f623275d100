package analytics_test

import (
	"context"
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/hotel-ops-api/internal/application/analytics"
	"github.com/jhoicas/hotel-ops-api/internal/application/dto"
	"github.com/jhoicas/hotel-ops-api/internal/domain"
	"github.com/jhoicas/hotel-ops-api/internal/domain/entity"
	"github.com/jhoicas/hotel-ops-api/internal/domain/ledger"
	"github.com/jhoicas/hotel-ops-api/internal/domain/repository"
	"github.com/jhoicas/hotel-ops-api/internal/infrastructure/memory"
)

const (
	companyA  = "11111111-1111-1111-1111-111111111111"
	companyB  = "22222222-2222-2222-2222-222222222222"
	areaPiso  = "aaaaaaaa-0000-0000-0000-000000000001"
	areaNorte = "aaaaaaaa-0000-0000-0000-000000000002"
	areaSur   = "aaaaaaaa-0000-0000-0000-000000000003"
	areaBaja  = "aaaaaaaa-0000-0000-0000-000000000004"
)

var (
	bogota = time.FixedZone("COT", -5*60*60)
	// 2025-03-10 15:00 hora local
	asOf = time.Date(2025, 3, 10, 15, 0, 0, 0, bogota)
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

type fixture struct {
	store *memory.Store
	uc    *analytics.BottleneckUseCase
	seq   int
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.NewStore()
	store.AddCompany(entity.Company{ID: companyA, Name: "Hotel Central", Status: "active"})
	store.AddArea(entity.Area{ID: areaPiso, CompanyID: companyA, Name: "Piso 3", Type: entity.AreaTypeSource, IsActive: true})
	store.AddArea(entity.Area{ID: areaNorte, CompanyID: companyA, Name: "Lavandería Norte", Type: entity.AreaTypeProcessor, IsActive: true})
	store.AddArea(entity.Area{ID: areaSur, CompanyID: companyA, Name: "Lavandería Sur", Type: entity.AreaTypeProcessor, IsActive: true})
	store.AddArea(entity.Area{ID: areaBaja, CompanyID: companyA, Name: "Lavandería Vieja", Type: entity.AreaTypeProcessor, IsActive: false})

	uc := analytics.NewBottleneckUseCase(
		memory.NewBottleneckRepo(store),
		memory.NewAreaRepo(store),
		analytics.WithLocation(bogota),
		analytics.WithClock(func() time.Time { return asOf }),
	)
	return &fixture{store: store, uc: uc}
}

func (f *fixture) record(t *testing.T, companyID, areaID, eventType string, qty int64, at time.Time) {
	t.Helper()
	f.seq++
	id := strconv.Itoa(f.seq)
	err := memory.NewEventRepo(f.store).Append(context.Background(), &entity.OperationalEvent{
		ID:         "ev-" + id,
		CompanyID:  companyID,
		EmployeeID: "emp-ana",
		AreaID:     areaID,
		EventType:  eventType,
		CreatedAt:  at,
		Details:    []entity.EventDetail{{ID: "det-" + id, Quantity: qty}},
	})
	require.NoError(t, err)
}

func areaByID(t *testing.T, s *dto.BottleneckSummary, id string) dto.AreaBottleneck {
	t.Helper()
	for _, a := range s.Areas {
		if a.AreaID == id {
			return a
		}
	}
	t.Fatalf("área %s no está en el resumen", id)
	return dto.AreaBottleneck{}
}

// ──────────────────────────────────────────────────────────────────────────────
// Totales globales y por área
// ──────────────────────────────────────────────────────────────────────────────

func TestCompute_GlobalYPorArea(t *testing.T) {
	f := newFixture(t)
	earlier := asOf.Add(-72 * time.Hour)
	f.record(t, companyA, areaPiso, entity.EventTypeCollection, 6, earlier)
	f.record(t, companyA, areaPiso, entity.EventTypeDemand, 4, earlier)
	f.record(t, companyA, areaNorte, entity.EventTypeWashCycle, 4, earlier)
	f.record(t, companyA, areaSur, entity.EventTypeSupply, 9, earlier)
	f.record(t, companyA, areaNorte, entity.EventTypeCleaning, 50, earlier) // no afecta el balance
	f.record(t, companyB, areaPiso, entity.EventTypeDemand, 100, earlier)   // otra empresa

	s, err := f.uc.Compute(context.Background(), companyA, time.Time{})
	require.NoError(t, err)

	assert.Equal(t, asOf, s.AsOf)
	assert.Equal(t, int64(10), s.Global.TotalDemand)
	assert.Equal(t, int64(13), s.Global.TotalSupply)
	assert.Equal(t, int64(-3), s.Global.Pending, "el pendiente global no se recorta")
	assert.Equal(t, ledger.StatusOK, s.Global.Status)

	require.Len(t, s.Areas, 3, "las áreas inactivas no aparecen")

	norte := areaByID(t, s, areaNorte)
	assert.Equal(t, int64(10), norte.TotalDemand, "cada área se mide contra la demanda de toda la empresa")
	assert.Equal(t, int64(4), norte.TotalSupply)
	assert.Equal(t, int64(6), norte.Pending)
	assert.InDelta(t, 0.6, norte.PendingRatio, 1e-9)
	assert.Equal(t, ledger.StatusCritical, norte.Status)

	sur := areaByID(t, s, areaSur)
	assert.Equal(t, int64(1), sur.Pending)
	assert.InDelta(t, 0.1, sur.PendingRatio, 1e-9)
	assert.Equal(t, ledger.StatusOK, sur.Status)

	piso := areaByID(t, s, areaPiso)
	assert.Equal(t, entity.AreaTypeSource, piso.AreaType)
	assert.Equal(t, int64(10), piso.Pending)
	assert.Equal(t, ledger.StatusCritical, piso.Status)

	require.Len(t, s.Alerts, 2)
	assert.Equal(t, "Lavandería Norte", s.Alerts[0].AreaName)
	assert.Equal(t, ledger.StatusCritical, s.Alerts[0].Severity)
	assert.Equal(t, "6 piezas pendientes", s.Alerts[0].Message)
	assert.Equal(t, "Piso 3", s.Alerts[1].AreaName)
}

func TestCompute_PendienteDeAreaNuncaNegativo(t *testing.T) {
	f := newFixture(t)
	at := asOf.Add(-time.Hour)
	f.record(t, companyA, areaPiso, entity.EventTypeDemand, 2, at)
	f.record(t, companyA, areaNorte, entity.EventTypeSupply, 8, at)

	s, err := f.uc.Compute(context.Background(), companyA, asOf)
	require.NoError(t, err)

	norte := areaByID(t, s, areaNorte)
	assert.Equal(t, int64(0), norte.Pending)
	assert.Equal(t, ledger.StatusOK, norte.Status)
}

func TestCompute_StatusWarning(t *testing.T) {
	f := newFixture(t)
	at := asOf.Add(-time.Hour)
	f.record(t, companyA, areaPiso, entity.EventTypeDemand, 10, at)
	f.record(t, companyA, areaNorte, entity.EventTypeSupply, 7, at)

	s, err := f.uc.Compute(context.Background(), companyA, asOf)
	require.NoError(t, err)
	assert.Equal(t, ledger.StatusWarning, s.Global.Status)
	assert.Equal(t, ledger.StatusWarning, areaByID(t, s, areaNorte).Status)
}

func TestCompute_SinDemandaRatioCero(t *testing.T) {
	f := newFixture(t)

	s, err := f.uc.Compute(context.Background(), companyA, asOf)
	require.NoError(t, err)
	assert.Zero(t, s.Global.PendingRatio)
	assert.Equal(t, ledger.StatusOK, s.Global.Status)
	assert.Empty(t, s.Alerts)
	assert.NotNil(t, s.Alerts)
}

func TestCompute_EventosPosterioresAAsOfNoCuentan(t *testing.T) {
	f := newFixture(t)
	f.record(t, companyA, areaPiso, entity.EventTypeDemand, 5, asOf)
	f.record(t, companyA, areaPiso, entity.EventTypeDemand, 7, asOf.Add(time.Second))

	s, err := f.uc.Compute(context.Background(), companyA, asOf)
	require.NoError(t, err)
	assert.Equal(t, int64(5), s.Global.TotalDemand)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tendencia hoy vs ayer
// ──────────────────────────────────────────────────────────────────────────────

func TestCompute_TendenciaHoyVsAyer(t *testing.T) {
	f := newFixture(t)
	midnight := time.Date(2025, 3, 10, 0, 0, 0, 0, bogota)

	// ayer
	f.record(t, companyA, areaPiso, entity.EventTypeCollection, 10, midnight.Add(-12*time.Hour))
	f.record(t, companyA, areaPiso, entity.EventTypeCollection, 1, midnight.Add(-49*time.Hour)) // anteayer
	// hoy
	f.record(t, companyA, areaPiso, entity.EventTypeCollection, 5, midnight)
	f.record(t, companyA, areaNorte, entity.EventTypeWashCycle, 5, midnight.Add(2*time.Hour))

	s, err := f.uc.Compute(context.Background(), companyA, asOf)
	require.NoError(t, err)

	assert.Equal(t, dto.DayTotals{Demand: 5, Supply: 5, Pending: 0}, s.Trend.Today)
	assert.Equal(t, dto.DayTotals{Demand: 10, Supply: 0, Pending: 10}, s.Trend.Yesterday)
	assert.Equal(t, -50.0, s.Trend.DemandTrend)
	assert.Equal(t, 100.0, s.Trend.SupplyTrend)
	assert.Equal(t, -100.0, s.Trend.PendingTrend)
	assert.Equal(t, int64(16), s.Global.TotalDemand)
}

func TestCompute_UltimoInstanteDeAyerCuentaComoAyer(t *testing.T) {
	f := newFixture(t)
	midnight := time.Date(2025, 3, 10, 0, 0, 0, 0, bogota)
	f.record(t, companyA, areaPiso, entity.EventTypeDemand, 10, midnight.Add(-time.Nanosecond))
	f.record(t, companyA, areaPiso, entity.EventTypeDemand, 10, midnight)

	s, err := f.uc.Compute(context.Background(), companyA, asOf)
	require.NoError(t, err)
	assert.Equal(t, int64(10), s.Trend.Yesterday.Demand)
	assert.Equal(t, int64(10), s.Trend.Today.Demand)
	assert.Equal(t, 0.0, s.Trend.DemandTrend)
}

// ──────────────────────────────────────────────────────────────────────────────
// Errores
// ──────────────────────────────────────────────────────────────────────────────

type failingSums struct{}

func (failingSums) SumQuantities(context.Context, repository.QuantityFilter) (int64, error) {
	return 0, errors.New("conexión perdida")
}

func TestCompute_ErrorDeSumaSePropaga(t *testing.T) {
	store := memory.NewStore()
	uc := analytics.NewBottleneckUseCase(failingSums{}, memory.NewAreaRepo(store))

	_, err := uc.Compute(context.Background(), companyA, asOf)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "conexión perdida")
}

// ──────────────────────────────────────────────────────────────────────────────
// Reporte PDF
// ──────────────────────────────────────────────────────────────────────────────

type captureGenerator struct {
	company *entity.Company
	summary *dto.BottleneckSummary
}

func (g *captureGenerator) GenerateBottleneckPDF(_ context.Context, c *entity.Company, s *dto.BottleneckSummary) ([]byte, error) {
	g.company, g.summary = c, s
	return []byte("%PDF-1.3"), nil
}

func TestReport_GeneraConElResumen(t *testing.T) {
	f := newFixture(t)
	f.record(t, companyA, areaPiso, entity.EventTypeDemand, 3, asOf.Add(-time.Minute))
	gen := &captureGenerator{}
	uc := analytics.NewReportUseCase(memory.NewCompanyRepo(f.store), f.uc, gen)

	out, err := uc.BottleneckPDF(context.Background(), companyA, asOf)
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-1.3"), out)
	assert.Equal(t, "Hotel Central", gen.company.Name)
	assert.Equal(t, int64(3), gen.summary.Global.TotalDemand)
}

func TestReport_EmpresaInexistente(t *testing.T) {
	f := newFixture(t)
	uc := analytics.NewReportUseCase(memory.NewCompanyRepo(f.store), f.uc, &captureGenerator{})

	_, err := uc.BottleneckPDF(context.Background(), companyB, asOf)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

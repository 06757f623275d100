package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/hotel-ops-api/internal/application/analytics"
	"github.com/jhoicas/hotel-ops-api/internal/application/auth"
	"github.com/jhoicas/hotel-ops-api/internal/application/ledger"
	"github.com/jhoicas/hotel-ops-api/internal/domain/entity"
	"github.com/jhoicas/hotel-ops-api/internal/infrastructure/memory"
	"github.com/jhoicas/hotel-ops-api/internal/infrastructure/metrics"
	"github.com/jhoicas/hotel-ops-api/internal/infrastructure/pdf"
	apphttp "github.com/jhoicas/hotel-ops-api/internal/interfaces/http"
	"github.com/jhoicas/hotel-ops-api/pkg/logger"
	pkgjwt "github.com/jhoicas/hotel-ops-api/pkg/jwt"
	"github.com/jhoicas/hotel-ops-api/pkg/ratelimit"
)

const (
	hotelA     = "11111111-1111-1111-1111-111111111111"
	hotelCerr  = "33333333-3333-3333-3333-333333333333"
	areaA1     = "aaaaaaaa-0000-0000-0000-000000000001"
	areaLav    = "aaaaaaaa-0000-0000-0000-000000000002"
	areaAjena  = "aaaaaaaa-0000-0000-0000-000000000003"
	itemSabana = "cccccccc-0000-0000-0000-000000000001"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

type apiFixture struct {
	app     *fiber.App
	store   *memory.Store
	metrics *metrics.Metrics
}

func hashFor(t *testing.T, secret string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.MinCost)
	require.NoError(t, err)
	return string(h)
}

// apiOptions ajustes opcionales del fixture.
type apiOptions struct {
	pinLimit     int
	limiterStore ratelimit.Store // nil: contador en memoria
	fiberConfig  fiber.Config
}

// newAPI arma la API completa sobre el almacenamiento en memoria.
// pinLimit es el número de intentos por minuto permitidos por IP.
func newAPI(t *testing.T, pinLimit int) *apiFixture {
	return newAPIWith(t, apiOptions{pinLimit: pinLimit})
}

func newAPIWith(t *testing.T, opts apiOptions) *apiFixture {
	t.Helper()
	if opts.limiterStore == nil {
		opts.limiterStore = ratelimit.NewMemoryStore()
	}
	store := memory.NewStore()
	created := time.Now().Add(-24 * time.Hour)

	store.AddCompany(entity.Company{ID: hotelA, Name: "Hotel Central", Status: entity.CompanyStatusActive})
	store.AddCompany(entity.Company{ID: hotelCerr, Name: "Hotel Cerrado", Status: "suspended"})
	store.AddArea(entity.Area{ID: areaA1, CompanyID: hotelA, Name: "Piso 1", Type: entity.AreaTypeSource, IsActive: true})
	store.AddArea(entity.Area{ID: areaLav, CompanyID: hotelA, Name: "Lavandería", Type: entity.AreaTypeProcessor, IsActive: true})
	store.AddArea(entity.Area{ID: areaAjena, CompanyID: hotelA, Name: "Piso 9", Type: entity.AreaTypeSource, IsActive: true})
	store.AddCatalogItem(entity.CatalogItem{ID: itemSabana, CompanyID: hotelA, Name: "Sábana King", Unit: "pieza", IsActive: true})

	store.AddEmployee(entity.Employee{
		ID: "emp-ana", CompanyID: hotelA, FullName: "Ana Torres", PINHash: hashFor(t, "1234"),
		Role: entity.RoleEmployee, IsActive: true, CreatedAt: created,
	})
	store.AddMembership("emp-ana", areaA1)
	store.AddMembership("emp-ana", areaLav)

	store.AddEmployee(entity.Employee{
		ID: "emp-solo", CompanyID: hotelA, FullName: "Rosa Piso", PINHash: hashFor(t, "2468"),
		Role: entity.RoleEmployee, IsActive: true, CreatedAt: created.Add(time.Minute),
	})
	store.AddMembership("emp-solo", areaA1)

	store.AddEmployee(entity.Employee{
		ID: "emp-admin", CompanyID: hotelA, FullName: "Marta Ruiz", Email: "marta@hotel.test",
		PINHash: hashFor(t, "4321"), PasswordHash: hashFor(t, "s3creta"),
		Role: entity.RoleAdmin, IsActive: true, CreatedAt: created.Add(2 * time.Minute),
	})

	log := logger.NewNop()
	m := metrics.New()
	employees := memory.NewEmployeeRepo(store)
	areas := memory.NewAreaRepo(store)
	companies := memory.NewCompanyRepo(store)

	sessions := auth.NewSessionUseCase(memory.NewTxRunner(store), memory.NewSessionRepo(store), employees, areas)
	bottleneck := analytics.NewBottleneckUseCase(memory.NewBottleneckRepo(store), areas, analytics.WithLocation(time.UTC))

	app := fiber.New(opts.fiberConfig)
	app.Get("/metrics", m.Handler())
	apphttp.Router(app, apphttp.RouterDeps{
		PINAuth:    auth.NewPINAuthUseCase(employees, sessions),
		Sessions:   sessions,
		AdminAuth:  auth.NewAdminAuthUseCase(employees, testJWTSecret, testIssuer, testExpMin),
		Events:     ledger.NewEventUseCase(memory.NewTxRunner(store), memory.NewCatalogItemRepo(store), memory.NewEventRepo(store), log),
		Bottleneck: bottleneck,
		Report:     analytics.NewReportUseCase(companies, bottleneck, pdf.NewMarotoPDFGenerator()),
		Companies:  companies,
		PINLimiter: ratelimit.New(opts.limiterStore, ratelimit.Policy{Limit: opts.pinLimit, Window: time.Minute}),
		Metrics:    m,
		Logger:     log,
		JWTSecret:  testJWTSecret,
	})
	return &apiFixture{app: app, store: store, metrics: m}
}

// call lanza la petición y decodifica el cuerpo JSON (nil si no es JSON).
func (f *apiFixture) call(t *testing.T, method, path string, body any, headers map[string]string) (int, map[string]any) {
	t.Helper()
	var r io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	resp, err := f.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var out map[string]any
	_ = json.NewDecoder(resp.Body).Decode(&out)
	return resp.StatusCode, out
}

func (f *apiFixture) loginPIN(t *testing.T, pin string) string {
	t.Helper()
	status, body := f.call(t, http.MethodPost, "/api/auth/pin", map[string]any{"pin": pin}, nil)
	require.Equal(t, http.StatusOK, status, "login por PIN: %v", body)
	token, _ := body["sessionToken"].(string)
	require.NotEmpty(t, token)
	return token
}

func (f *apiFixture) loginAdmin(t *testing.T) string {
	t.Helper()
	status, body := f.call(t, http.MethodPost, "/api/admin/auth/login",
		map[string]any{"email": "marta@hotel.test", "password": "s3creta"}, nil)
	require.Equal(t, http.StatusOK, status, "login de consola: %v", body)
	token, _ := body["token"].(string)
	require.NotEmpty(t, token)
	return "Bearer " + token
}

func session(token string) map[string]string {
	return map[string]string{apphttp.HeaderSessionToken: token}
}

func bearer(token string) map[string]string {
	return map[string]string{"Authorization": token}
}

func errorCode(body map[string]any) string {
	e, _ := body["error"].(map[string]any)
	code, _ := e["code"].(string)
	return code
}

func items(qty int) []map[string]any {
	return []map[string]any{{"quantity": qty}}
}

// ──────────────────────────────────────────────────────────────────────────────
// Login por PIN
// ──────────────────────────────────────────────────────────────────────────────

func TestPINLogin_EmiteSesionConAreas(t *testing.T) {
	f := newAPI(t, 10)
	status, body := f.call(t, http.MethodPost, "/api/auth/pin", map[string]any{"pin": "1234"}, nil)

	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, body["success"])
	assert.NotEmpty(t, body["sessionToken"])
	emp, _ := body["employee"].(map[string]any)
	assert.Equal(t, "emp-ana", emp["id"])
	assert.Equal(t, hotelA, emp["companyId"])
	assert.Len(t, emp["areas"], 2)
}

func TestPINLogin_PINIncorrecto_Retorna401(t *testing.T) {
	f := newAPI(t, 10)
	status, body := f.call(t, http.MethodPost, "/api/auth/pin", map[string]any{"pin": "0000"}, nil)

	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, apphttp.CodeInvalidCredentials, errorCode(body))
	assert.Equal(t, false, body["success"])
}

func TestPINLogin_PINMalformado_Retorna400(t *testing.T) {
	f := newAPI(t, 10)
	for _, pin := range []string{"12a4", "123", "123456789", "-123", ""} {
		status, body := f.call(t, http.MethodPost, "/api/auth/pin", map[string]any{"pin": pin}, nil)
		assert.Equal(t, http.StatusBadRequest, status, "pin %q", pin)
		assert.Equal(t, apphttp.CodeValidation, errorCode(body), "pin %q", pin)
	}
}

func TestPINLogin_LimiteDeIntentos_Retorna429(t *testing.T) {
	f := newAPI(t, 3)
	for i := 0; i < 3; i++ {
		status, _ := f.call(t, http.MethodPost, "/api/auth/pin", map[string]any{"pin": "0000"}, nil)
		require.Equal(t, http.StatusUnauthorized, status)
	}

	// El cuarto intento se rechaza aunque el PIN sea correcto.
	req := httptest.NewRequest(http.MethodPost, "/api/auth/pin", strings.NewReader(`{"pin":"1234"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := f.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
	assert.Equal(t, "60", resp.Header.Get("Retry-After"))
	raw, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(raw), apphttp.CodeRateLimitExceeded)
	assert.Empty(t, f.store.SessionsOf("emp-ana"), "un intento rechazado no emite sesión")
}

// failingStore simula un Redis caído.
type failingStore struct{}

func (failingStore) Check(context.Context, string, int, time.Duration) (bool, error) {
	return false, errors.New("dial tcp 127.0.0.1:6379: connect: connection refused")
}

func TestPINLogin_ContadorCaidoDejaPasar(t *testing.T) {
	f := newAPIWith(t, apiOptions{pinLimit: 1, limiterStore: failingStore{}})

	// Con el contador caído no se bloquea el login, ni siquiera pasado el límite.
	for i := 0; i < 3; i++ {
		status, body := f.call(t, http.MethodPost, "/api/auth/pin", map[string]any{"pin": "1234"}, nil)
		require.Equal(t, http.StatusOK, status, "intento %d: %v", i+1, body)
	}
}

func TestPINLogin_LimitePorIPDelProxy(t *testing.T) {
	f := newAPIWith(t, apiOptions{pinLimit: 1, fiberConfig: fiber.Config{ProxyHeader: fiber.HeaderXForwardedFor}})
	desde := func(ip string) map[string]string { return map[string]string{fiber.HeaderXForwardedFor: ip} }

	status, _ := f.call(t, http.MethodPost, "/api/auth/pin", map[string]any{"pin": "0000"}, desde("203.0.113.10"))
	require.Equal(t, http.StatusUnauthorized, status)
	status, _ = f.call(t, http.MethodPost, "/api/auth/pin", map[string]any{"pin": "0000"}, desde("203.0.113.10"))
	assert.Equal(t, http.StatusTooManyRequests, status)

	// Otro cliente detrás del mismo proxy conserva su propio cupo.
	status, _ = f.call(t, http.MethodPost, "/api/auth/pin", map[string]any{"pin": "1234"}, desde("203.0.113.20"))
	assert.Equal(t, http.StatusOK, status)
}

func TestPINLogin_CampoDesconocido_Retorna400(t *testing.T) {
	f := newAPI(t, 10)
	status, body := f.call(t, http.MethodPost, "/api/auth/pin", map[string]any{"pin": "1234", "employeeId": "emp-admin"}, nil)

	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, apphttp.CodeValidation, errorCode(body))
	assert.Empty(t, f.store.SessionsOf("emp-ana"))
}

func TestPINLogin_CuentaIntentosEnMetricas(t *testing.T) {
	f := newAPI(t, 10)
	f.loginPIN(t, "1234")
	f.call(t, http.MethodPost, "/api/auth/pin", map[string]any{"pin": "0000"}, nil)

	resp, err := f.app.Test(httptest.NewRequest(http.MethodGet, "/metrics", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, _ := io.ReadAll(resp.Body)

	assert.Contains(t, string(raw), `pin_login_attempts_total{outcome="success"} 1`)
	assert.Contains(t, string(raw), `pin_login_attempts_total{outcome="invalid"} 1`)
}

// ──────────────────────────────────────────────────────────────────────────────
// Sesión y logout
// ──────────────────────────────────────────────────────────────────────────────

func TestSession_SinToken_Retorna401(t *testing.T) {
	f := newAPI(t, 10)
	status, body := f.call(t, http.MethodGet, "/api/auth/session", nil, nil)

	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, apphttp.CodeUnauthorized, errorCode(body))
}

func TestSession_DevuelveEmpleadoYAreas(t *testing.T) {
	f := newAPI(t, 10)
	token := f.loginPIN(t, "1234")

	status, body := f.call(t, http.MethodGet, "/api/auth/session", nil, session(token))
	require.Equal(t, http.StatusOK, status)
	emp, _ := body["employee"].(map[string]any)
	assert.Equal(t, "emp-ana", emp["id"])
	assert.Len(t, emp["areas"], 2)
}

func TestLogout_InvalidaSesionYEsIdempotente(t *testing.T) {
	f := newAPI(t, 10)
	token := f.loginPIN(t, "1234")

	status, _ := f.call(t, http.MethodPost, "/api/auth/logout", nil, session(token))
	require.Equal(t, http.StatusOK, status)

	status, _ = f.call(t, http.MethodGet, "/api/auth/session", nil, session(token))
	assert.Equal(t, http.StatusUnauthorized, status, "la sesión cerrada ya no es válida")

	status, _ = f.call(t, http.MethodPost, "/api/auth/logout", nil, session(token))
	assert.Equal(t, http.StatusOK, status)
}

func TestPINLogin_NuevoLoginInvalidaTokenAnterior(t *testing.T) {
	f := newAPI(t, 10)
	first := f.loginPIN(t, "1234")
	second := f.loginPIN(t, "1234")

	status, _ := f.call(t, http.MethodGet, "/api/auth/session", nil, session(first))
	assert.Equal(t, http.StatusUnauthorized, status)
	status, _ = f.call(t, http.MethodGet, "/api/auth/session", nil, session(second))
	assert.Equal(t, http.StatusOK, status)
}

// ──────────────────────────────────────────────────────────────────────────────
// Ledger
// ──────────────────────────────────────────────────────────────────────────────

// Flujo completo: PIN, recolección de 3 piezas en A1 y el dashboard refleja la demanda.
func TestLedger_RecoleccionSeReflejaEnBottleneck(t *testing.T) {
	f := newAPI(t, 10)
	token := f.loginPIN(t, "1234")

	status, body := f.call(t, http.MethodPost, "/api/ledger/events", map[string]any{
		"areaId":    areaA1,
		"eventType": entity.EventTypeCollection,
		"items":     items(3),
	}, session(token))
	require.Equal(t, http.StatusCreated, status, "%v", body)
	assert.Equal(t, entity.EventTypeCollection, body["eventType"])
	assert.EqualValues(t, 3, body["totalQuantity"])
	assert.Equal(t, 1, f.store.EventCount())

	status, summary := f.call(t, http.MethodGet, "/api/dashboard/bottleneck", nil, bearer(f.loginAdmin(t)))
	require.Equal(t, http.StatusOK, status, "%v", summary)
	global, _ := summary["global"].(map[string]any)
	assert.EqualValues(t, 3, global["totalDemand"])
	assert.EqualValues(t, 0, global["totalSupply"])
	assert.EqualValues(t, 3, global["pending"])
}

func TestLedger_AreaNoAutorizada_Retorna403(t *testing.T) {
	f := newAPI(t, 10)
	token := f.loginPIN(t, "1234")

	status, body := f.call(t, http.MethodPost, "/api/ledger/events", map[string]any{
		"areaId":    areaAjena,
		"eventType": entity.EventTypeCollection,
		"items":     items(3),
	}, session(token))

	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, apphttp.CodeForbidden, errorCode(body))
	assert.Equal(t, 0, f.store.EventCount())
}

func TestLedger_CantidadCero_Retorna400SinPersistir(t *testing.T) {
	f := newAPI(t, 10)
	token := f.loginPIN(t, "1234")

	status, body := f.call(t, http.MethodPost, "/api/ledger/events", map[string]any{
		"areaId":    areaA1,
		"eventType": entity.EventTypeCollection,
		"items":     []map[string]any{{"quantity": 2}, {"quantity": 0}},
	}, session(token))

	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, apphttp.CodeValidation, errorCode(body))
	assert.Equal(t, 0, f.store.EventCount())
}

func TestLedger_CantidadExcesiva_Retorna400SinPersistir(t *testing.T) {
	f := newAPI(t, 10)
	token := f.loginPIN(t, "1234")

	status, body := f.call(t, http.MethodPost, "/api/ledger/events", map[string]any{
		"areaId":    areaA1,
		"eventType": entity.EventTypeCollection,
		"items":     []map[string]any{{"quantity": 1}, {"quantity": int64(9223372036854775807)}},
	}, session(token))

	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, apphttp.CodeValidation, errorCode(body))
	assert.Equal(t, 0, f.store.EventCount())
}

func TestLedger_CampoDesconocido_Retorna400(t *testing.T) {
	f := newAPI(t, 10)
	token := f.loginPIN(t, "1234")

	status, body := f.call(t, http.MethodPost, "/api/ledger/events", map[string]any{
		"areaId":    areaA1,
		"eventType": entity.EventTypeCollection,
		"items":     items(1),
		"companyId": hotelCerr,
	}, session(token))

	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, apphttp.CodeValidation, errorCode(body))
	assert.Equal(t, 0, f.store.EventCount())
}

func TestLedger_ItemDeOtraEmpresa_Retorna400(t *testing.T) {
	f := newAPI(t, 10)
	token := f.loginPIN(t, "1234")
	ajeno := "cccccccc-0000-0000-0000-000000000099"

	status, body := f.call(t, http.MethodPost, "/api/ledger/events", map[string]any{
		"areaId":    areaA1,
		"eventType": entity.EventTypeCollection,
		"items":     []map[string]any{{"itemId": itemSabana, "quantity": 1}, {"itemId": ajeno, "quantity": 1}},
	}, session(token))

	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, apphttp.CodeItemNotInCompany, errorCode(body))
}

func TestLedger_SinSesion_Retorna401(t *testing.T) {
	f := newAPI(t, 10)
	status, body := f.call(t, http.MethodPost, "/api/ledger/events", map[string]any{
		"areaId":    areaA1,
		"eventType": entity.EventTypeCollection,
		"items":     items(1),
	}, session("token-inventado"))

	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, apphttp.CodeUnauthorized, errorCode(body))
}

func TestOperations_SinAreaUsaLaPrimeraDelTipo(t *testing.T) {
	f := newAPI(t, 10)
	token := f.loginPIN(t, "1234")

	status, body := f.call(t, http.MethodPost, "/api/operations/wash-cycle",
		map[string]any{"items": items(5)}, session(token))

	require.Equal(t, http.StatusCreated, status, "%v", body)
	assert.Equal(t, entity.EventTypeWashCycle, body["eventType"])
	assert.Equal(t, areaLav, body["areaId"])
}

func TestOperations_SinAreaDelTipo_RetornaNoMatchingArea(t *testing.T) {
	f := newAPI(t, 10)
	token := f.loginPIN(t, "2468")

	status, body := f.call(t, http.MethodPost, "/api/operations/supply",
		map[string]any{"items": items(5)}, session(token))

	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, apphttp.CodeNoMatchingArea, errorCode(body))
}

func TestOperations_Desconocida_Retorna404(t *testing.T) {
	f := newAPI(t, 10)
	token := f.loginPIN(t, "1234")

	status, body := f.call(t, http.MethodPost, "/api/operations/teleport",
		map[string]any{"items": items(1)}, session(token))

	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, apphttp.CodeNotFound, errorCode(body))
}

// ──────────────────────────────────────────────────────────────────────────────
// Dashboard
// ──────────────────────────────────────────────────────────────────────────────

func TestDashboard_SinToken_Retorna401(t *testing.T) {
	f := newAPI(t, 10)
	status, _ := f.call(t, http.MethodGet, "/api/dashboard/bottleneck", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestDashboard_RolEmployee_Retorna403(t *testing.T) {
	f := newAPI(t, 10)
	tok, _, err := pkgjwt.Generate(testJWTSecret, "emp-ana", hotelA, entity.RoleEmployee, testIssuer, testExpMin)
	require.NoError(t, err)

	status, body := f.call(t, http.MethodGet, "/api/dashboard/bottleneck", nil, bearer("Bearer "+tok))
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, apphttp.CodeForbidden, errorCode(body))
}

func TestDashboard_EmpresaSuspendida_Retorna403(t *testing.T) {
	f := newAPI(t, 10)
	tok, _, err := pkgjwt.Generate(testJWTSecret, "emp-x", hotelCerr, entity.RoleAdmin, testIssuer, testExpMin)
	require.NoError(t, err)

	status, _ := f.call(t, http.MethodGet, "/api/dashboard/bottleneck", nil, bearer("Bearer "+tok))
	assert.Equal(t, http.StatusForbidden, status)
}

func TestDashboard_AsOfInvalido_Retorna400(t *testing.T) {
	f := newAPI(t, 10)
	status, body := f.call(t, http.MethodGet, "/api/dashboard/bottleneck?as_of=ayer", nil, bearer(f.loginAdmin(t)))

	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, apphttp.CodeValidation, errorCode(body))
}

func TestDashboard_AsOfExcluyeEventosPosteriores(t *testing.T) {
	f := newAPI(t, 10)
	token := f.loginPIN(t, "1234")
	status, _ := f.call(t, http.MethodPost, "/api/operations/collection",
		map[string]any{"items": items(4)}, session(token))
	require.Equal(t, http.StatusCreated, status)

	asOf := time.Now().Add(-time.Hour).UTC().Format(time.RFC3339)
	status, summary := f.call(t, http.MethodGet, "/api/dashboard/bottleneck?as_of="+asOf, nil, bearer(f.loginAdmin(t)))
	require.Equal(t, http.StatusOK, status)
	global, _ := summary["global"].(map[string]any)
	assert.EqualValues(t, 0, global["totalDemand"])
}

func TestDashboard_ReportePDF(t *testing.T) {
	f := newAPI(t, 10)
	req := httptest.NewRequest(http.MethodGet, "/api/dashboard/bottleneck/report.pdf", nil)
	req.Header.Set("Authorization", f.loginAdmin(t))
	resp, err := f.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	raw, _ := io.ReadAll(resp.Body)
	assert.True(t, bytes.HasPrefix(raw, []byte("%PDF")))
}

func TestDashboard_EventosRecientesPrimero(t *testing.T) {
	f := newAPI(t, 10)
	token := f.loginPIN(t, "1234")
	for _, op := range []string{"collection", "wash-cycle"} {
		status, _ := f.call(t, http.MethodPost, "/api/operations/"+op, map[string]any{"items": items(1)}, session(token))
		require.Equal(t, http.StatusCreated, status)
		time.Sleep(2 * time.Millisecond)
	}

	status, body := f.call(t, http.MethodGet, "/api/dashboard/events?limit=10", nil, bearer(f.loginAdmin(t)))
	require.Equal(t, http.StatusOK, status)
	list, _ := body["items"].([]any)
	require.Len(t, list, 2)
	first, _ := list[0].(map[string]any)
	assert.Equal(t, entity.EventTypeWashCycle, first["eventType"])
}

func TestAdminLogin_PasswordIncorrecto_Retorna401(t *testing.T) {
	f := newAPI(t, 10)
	status, body := f.call(t, http.MethodPost, "/api/admin/auth/login",
		map[string]any{"email": "marta@hotel.test", "password": "otra"}, nil)

	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, apphttp.CodeInvalidCredentials, errorCode(body))
}

package metrics

import (
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scrape(t *testing.T, m *Metrics) string {
	t.Helper()
	app := fiber.New()
	app.Get("/metrics", m.Handler())
	resp, err := app.Test(httptest.NewRequest("GET", "/metrics", nil), -1)
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(body)
}

func TestInstrument_CuentaPorRutaPlantilla(t *testing.T) {
	m := New()
	app := fiber.New()
	app.Use(m.Instrument())
	app.Get("/items/:id", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusNoContent) })

	for _, id := range []string{"1", "2", "3"} {
		resp, err := app.Test(httptest.NewRequest("GET", "/items/"+id, nil), -1)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)
	}

	body := scrape(t, m)
	assert.Contains(t, body, `http_requests_total{method="GET",path="/items/:id",status="204"} 3`)
	assert.Contains(t, body, "http_in_flight_requests 0")
}

func TestCountersDeDominio(t *testing.T) {
	m := New()
	m.PINLogin(LoginInvalid)
	m.PINLogin(LoginInvalid)
	m.PINLogin(LoginSuccess)
	m.LedgerAppend("SUPPLY")

	body := scrape(t, m)
	assert.Contains(t, body, `pin_login_attempts_total{outcome="invalid"} 2`)
	assert.Contains(t, body, `pin_login_attempts_total{outcome="success"} 1`)
	assert.Contains(t, body, `ledger_events_appended_total{event_type="SUPPLY"} 1`)
}

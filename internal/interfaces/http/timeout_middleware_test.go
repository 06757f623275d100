package http_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apphttp "github.com/jhoicas/hotel-ops-api/internal/interfaces/http"
)

func TestRequestTimeout_ContextoConDeadline(t *testing.T) {
	app := fiber.New()
	app.Use(apphttp.RequestTimeout(2 * time.Second))

	var restante time.Duration
	var conDeadline bool
	app.Get("/ping", func(c *fiber.Ctx) error {
		var deadline time.Time
		deadline, conDeadline = c.UserContext().Deadline()
		restante = time.Until(deadline)
		return c.SendStatus(fiber.StatusOK)
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/ping", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.True(t, conDeadline, "el handler debe recibir un contexto con plazo")
	assert.LessOrEqual(t, restante, 2*time.Second)
	assert.Greater(t, restante, time.Duration(0))
}

func TestRequestTimeout_CancelaAlVencer(t *testing.T) {
	app := fiber.New()
	app.Use(apphttp.RequestTimeout(10 * time.Millisecond))
	app.Get("/lento", func(c *fiber.Ctx) error {
		select {
		case <-c.UserContext().Done():
			return c.SendStatus(fiber.StatusServiceUnavailable)
		case <-time.After(time.Second):
			return c.SendStatus(fiber.StatusOK)
		}
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/lento", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}

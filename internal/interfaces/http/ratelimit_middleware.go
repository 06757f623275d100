package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/hotel-ops-api/pkg/logger"
	"github.com/jhoicas/hotel-ops-api/pkg/ratelimit"
)

// RateLimit limita los intentos por IP de origen con una ventana fija.
// Si el almacenamiento del contador falla, la petición pasa y se registra un warning:
// un Redis caído no debe dejar a las terminales sin poder iniciar sesión.
func RateLimit(limiter *ratelimit.Limiter, keyPrefix string, log *logger.Logger, onReject func()) fiber.Handler {
	retryAfter := strconv.Itoa(int(limiter.Policy().Window.Seconds()))
	return func(c *fiber.Ctx) error {
		key := keyPrefix + ":" + c.IP()
		ok, err := limiter.Allow(c.UserContext(), key)
		if err != nil {
			log.Warn().Err(err).Str("key", key).Msg("limitador no disponible, se permite la petición")
			return c.Next()
		}
		if !ok {
			if onReject != nil {
				onReject()
			}
			log.Warn().Str("ip", c.IP()).Str("path", c.Path()).Msg("límite de intentos excedido")
			c.Set(fiber.HeaderRetryAfter, retryAfter)
			return writeError(c, fiber.StatusTooManyRequests, CodeRateLimitExceeded, "demasiados intentos, espere e intente de nuevo")
		}
		return c.Next()
	}
}

package http

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/hotel-ops-api/internal/application/auth"
	"github.com/jhoicas/hotel-ops-api/pkg/logger"
)

// HeaderSessionToken header con el token opaco de la terminal compartida.
const HeaderSessionToken = "X-Session-Token"

// LocalSession key de c.Locals con el *auth.SessionContext verificado.
const LocalSession = "session"

// SessionVerifier resuelve un token crudo a su contexto de sesión.
type SessionVerifier interface {
	Verify(ctx context.Context, token string) (*auth.SessionContext, error)
}

// SessionMiddleware exige un token de sesión vivo y deja el SessionContext en c.Locals.
func SessionMiddleware(verifier SessionVerifier, log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := sessionToken(c)
		if token == "" {
			return writeError(c, fiber.StatusUnauthorized, CodeUnauthorized, HeaderSessionToken+" requerido")
		}
		sc, err := verifier.Verify(c.UserContext(), token)
		if err != nil {
			return respondError(c, log, err)
		}
		c.Locals(LocalSession, sc)
		return c.Next()
	}
}

// GetSession devuelve la sesión verificada, o nil fuera de SessionMiddleware.
func GetSession(c *fiber.Ctx) *auth.SessionContext {
	sc, _ := c.Locals(LocalSession).(*auth.SessionContext)
	return sc
}

func sessionToken(c *fiber.Ctx) string {
	return strings.TrimSpace(c.Get(HeaderSessionToken))
}

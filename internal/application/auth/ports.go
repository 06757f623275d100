package auth

import (
	"context"

	"github.com/jhoicas/hotel-ops-api/internal/domain/repository"
)

// SessionTxRunner ejecuta fn dentro de una transacción con el repositorio de sesiones atado a ella.
// Garantiza que "invalidar anteriores + crear nueva" sea una sola unidad.
type SessionTxRunner interface {
	RunSessions(ctx context.Context, fn func(sessions repository.SessionRepository) error) error
}

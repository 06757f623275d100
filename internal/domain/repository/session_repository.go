package repository

import (
	"context"
	"time"

	"github.com/jhoicas/hotel-ops-api/internal/domain/entity"
)

// SessionRepository puerto de persistencia de sesiones de terminal.
type SessionRepository interface {
	// LockEmployee serializa emisiones concurrentes para el mismo empleado dentro de la transacción.
	LockEmployee(ctx context.Context, employeeID string) error
	// DeactivateByEmployee marca inactivas todas las sesiones activas del empleado; devuelve cuántas.
	DeactivateByEmployee(ctx context.Context, employeeID string) (int64, error)
	Create(ctx context.Context, session *entity.Session) error
	// FindLiveByTokenHash sesión activa con ese hash y expires_at > now; nil si no existe.
	FindLiveByTokenHash(ctx context.Context, tokenHash string, now time.Time) (*entity.Session, error)
	Touch(ctx context.Context, sessionID string, at time.Time) error
	Deactivate(ctx context.Context, sessionID string) error
}

package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/hotel-ops-api/internal/domain"
	"github.com/jhoicas/hotel-ops-api/internal/domain/entity"
	"github.com/jhoicas/hotel-ops-api/internal/domain/repository"
)

var _ repository.SessionRepository = (*SessionRepo)(nil)

// SessionRepo sesiones de terminal sobre PostgreSQL (usable con pool o tx).
type SessionRepo struct {
	q Querier
}

// NewSessionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSessionRepository(q Querier) *SessionRepo {
	return &SessionRepo{q: q}
}

// LockEmployee bloquea la fila del empleado (SELECT FOR UPDATE) hasta el fin de la tx.
func (r *SessionRepo) LockEmployee(ctx context.Context, employeeID string) error {
	var id string
	err := r.q.QueryRow(ctx, `SELECT id FROM employees WHERE id = $1 FOR UPDATE`, employeeID).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("lock employee: %w", err)
	}
	return nil
}

// DeactivateByEmployee invalida todas las sesiones activas del empleado.
func (r *SessionRepo) DeactivateByEmployee(ctx context.Context, employeeID string) (int64, error) {
	tag, err := r.q.Exec(ctx,
		`UPDATE sessions SET is_active = false WHERE employee_id = $1 AND is_active`, employeeID)
	if err != nil {
		return 0, fmt.Errorf("deactivate sessions: %w", err)
	}
	return tag.RowsAffected(), nil
}

// Create persiste una sesión nueva (solo el hash del token).
func (r *SessionRepo) Create(ctx context.Context, s *entity.Session) error {
	query := `
		INSERT INTO sessions (id, employee_id, token_hash, expires_at, is_active, last_activity, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query,
		s.ID, s.EmployeeID, s.TokenHash, s.ExpiresAt, s.IsActive, s.LastActivity, s.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert session: %w", err)
	}
	return nil
}

// FindLiveByTokenHash sesión activa y no expirada con ese hash.
func (r *SessionRepo) FindLiveByTokenHash(ctx context.Context, tokenHash string, now time.Time) (*entity.Session, error) {
	query := `
		SELECT id, employee_id, token_hash, expires_at, is_active, last_activity, created_at
		FROM sessions
		WHERE token_hash = $1 AND is_active AND expires_at > $2`
	var s entity.Session
	err := r.q.QueryRow(ctx, query, tokenHash, now).Scan(
		&s.ID, &s.EmployeeID, &s.TokenHash, &s.ExpiresAt, &s.IsActive, &s.LastActivity, &s.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find session: %w", err)
	}
	return &s, nil
}

// Touch registra actividad. Nunca retrocede last_activity.
func (r *SessionRepo) Touch(ctx context.Context, sessionID string, at time.Time) error {
	_, err := r.q.Exec(ctx,
		`UPDATE sessions SET last_activity = GREATEST(last_activity, $2) WHERE id = $1`, sessionID, at)
	if err != nil {
		return fmt.Errorf("touch session: %w", err)
	}
	return nil
}

// Deactivate invalida una sesión (logout). No se borra.
func (r *SessionRepo) Deactivate(ctx context.Context, sessionID string) error {
	_, err := r.q.Exec(ctx, `UPDATE sessions SET is_active = false WHERE id = $1`, sessionID)
	if err != nil {
		return fmt.Errorf("deactivate session: %w", err)
	}
	return nil
}

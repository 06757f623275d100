package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/hotel-ops-api/internal/domain"
	"github.com/jhoicas/hotel-ops-api/internal/domain/entity"
	"github.com/jhoicas/hotel-ops-api/internal/domain/repository"
)

// DefaultSessionTTL vida de una sesión cuando no se configura otra.
const DefaultSessionTTL = 12 * time.Hour

// IssuedSession token en claro (única vez que existe fuera del cliente) y el contexto de la sesión.
type IssuedSession struct {
	Token   string
	Context *SessionContext
}

// Option configura SessionUseCase.
type Option func(*SessionUseCase)

// WithClock reemplaza el reloj (tests).
func WithClock(now func() time.Time) Option {
	return func(uc *SessionUseCase) {
		if now != nil {
			uc.now = now
		}
	}
}

// WithTTL fija la vida de las sesiones emitidas.
func WithTTL(ttl time.Duration) Option {
	return func(uc *SessionUseCase) {
		if ttl > 0 {
			uc.ttl = ttl
		}
	}
}

// SessionUseCase emite, verifica y cierra sesiones de terminal.
// Un empleado tiene a lo sumo una sesión activa: emitir una nueva invalida las anteriores.
type SessionUseCase struct {
	tx        SessionTxRunner
	sessions  repository.SessionRepository
	employees repository.EmployeeRepository
	areas     repository.AreaRepository
	ttl       time.Duration
	now       func() time.Time
}

// NewSessionUseCase construye el caso de uso.
func NewSessionUseCase(
	tx SessionTxRunner,
	sessions repository.SessionRepository,
	employees repository.EmployeeRepository,
	areas repository.AreaRepository,
	opts ...Option,
) *SessionUseCase {
	uc := &SessionUseCase{
		tx:        tx,
		sessions:  sessions,
		employees: employees,
		areas:     areas,
		ttl:       DefaultSessionTTL,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// Issue invalida las sesiones activas del empleado y crea una nueva en la misma transacción.
func (uc *SessionUseCase) Issue(ctx context.Context, employeeID string) (*IssuedSession, error) {
	emp, err := uc.employees.GetByID(ctx, employeeID)
	if err != nil {
		return nil, fmt.Errorf("session: cargar empleado: %w", err)
	}
	if emp == nil || !emp.IsActive {
		return nil, domain.ErrInvalidCredentials
	}

	token, err := newSessionToken()
	if err != nil {
		return nil, err
	}
	now := uc.now()
	session := &entity.Session{
		ID:           uuid.New().String(),
		EmployeeID:   emp.ID,
		TokenHash:    HashToken(token),
		ExpiresAt:    now.Add(uc.ttl),
		IsActive:     true,
		LastActivity: now,
		CreatedAt:    now,
	}

	err = uc.tx.RunSessions(ctx, func(sessions repository.SessionRepository) error {
		if err := sessions.LockEmployee(ctx, emp.ID); err != nil {
			return err
		}
		if _, err := sessions.DeactivateByEmployee(ctx, emp.ID); err != nil {
			return err
		}
		return sessions.Create(ctx, session)
	})
	if err != nil {
		return nil, fmt.Errorf("session: emitir: %w", err)
	}

	areas, err := uc.areas.ListActiveByEmployee(ctx, emp.ID)
	if err != nil {
		return nil, fmt.Errorf("session: cargar áreas: %w", err)
	}
	return &IssuedSession{
		Token: token,
		Context: &SessionContext{
			SessionID:    session.ID,
			Employee:     emp,
			Areas:        areas,
			ExpiresAt:    session.ExpiresAt,
			LastActivity: session.LastActivity,
		},
	}, nil
}

// Verify resuelve un token en claro a su sesión viva y registra la actividad.
// Toda falla (vacío, desconocido, inactivo, expirado, empleado desactivado) es ErrSessionInvalid.
func (uc *SessionUseCase) Verify(ctx context.Context, token string) (*SessionContext, error) {
	if token == "" {
		return nil, domain.ErrSessionInvalid
	}
	now := uc.now()
	s, err := uc.sessions.FindLiveByTokenHash(ctx, HashToken(token), now)
	if err != nil {
		return nil, fmt.Errorf("session: buscar: %w", err)
	}
	if s == nil || !s.IsLiveAt(now) {
		return nil, domain.ErrSessionInvalid
	}

	emp, err := uc.employees.GetByID(ctx, s.EmployeeID)
	if err != nil {
		return nil, fmt.Errorf("session: cargar empleado: %w", err)
	}
	if emp == nil || !emp.IsActive {
		return nil, domain.ErrSessionInvalid
	}

	areas, err := uc.areas.ListActiveByEmployee(ctx, emp.ID)
	if err != nil {
		return nil, fmt.Errorf("session: cargar áreas: %w", err)
	}
	if err := uc.sessions.Touch(ctx, s.ID, now); err != nil {
		return nil, fmt.Errorf("session: registrar actividad: %w", err)
	}
	return &SessionContext{
		SessionID:    s.ID,
		Employee:     emp,
		Areas:        areas,
		ExpiresAt:    s.ExpiresAt,
		LastActivity: now,
	}, nil
}

// Logout desactiva la sesión del token. Un token que ya no está vivo es ErrSessionInvalid.
func (uc *SessionUseCase) Logout(ctx context.Context, token string) error {
	if token == "" {
		return domain.ErrSessionInvalid
	}
	s, err := uc.sessions.FindLiveByTokenHash(ctx, HashToken(token), uc.now())
	if err != nil {
		return fmt.Errorf("session: buscar: %w", err)
	}
	if s == nil {
		return domain.ErrSessionInvalid
	}
	if err := uc.sessions.Deactivate(ctx, s.ID); err != nil {
		return fmt.Errorf("session: desactivar: %w", err)
	}
	return nil
}

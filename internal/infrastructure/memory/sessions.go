package memory

import (
	"context"
	"time"

	"github.com/jhoicas/hotel-ops-api/internal/domain"
	"github.com/jhoicas/hotel-ops-api/internal/domain/entity"
	"github.com/jhoicas/hotel-ops-api/internal/domain/repository"
)

var _ repository.SessionRepository = (*SessionRepo)(nil)

// SessionRepo sesiones en memoria. Fuera de transacción cada llamada toma el lock del Store;
// dentro de RunSessions opera sobre una copia que se publica al confirmar.
type SessionRepo struct {
	s      *Store
	staged map[string]entity.Session // no nil solo dentro de una transacción
}

// NewSessionRepo crea el repositorio.
func NewSessionRepo(s *Store) *SessionRepo { return &SessionRepo{s: s} }

func (r *SessionRepo) lock() func() {
	if r.staged != nil {
		return func() {}
	}
	r.s.mu.Lock()
	return r.s.mu.Unlock
}

func (r *SessionRepo) table() map[string]entity.Session {
	if r.staged != nil {
		return r.staged
	}
	return r.s.sessions
}

// LockEmployee dentro de RunSessions el lock global ya serializa; solo verifica existencia.
func (r *SessionRepo) LockEmployee(ctx context.Context, employeeID string) error {
	unlock := r.lock()
	defer unlock()
	if _, ok := r.s.employees[employeeID]; !ok {
		return domain.ErrNotFound
	}
	return nil
}

func (r *SessionRepo) DeactivateByEmployee(ctx context.Context, employeeID string) (int64, error) {
	unlock := r.lock()
	defer unlock()
	t := r.table()
	var n int64
	for id, ss := range t {
		if ss.EmployeeID == employeeID && ss.IsActive {
			ss.IsActive = false
			t[id] = ss
			n++
		}
	}
	return n, nil
}

func (r *SessionRepo) Create(ctx context.Context, session *entity.Session) error {
	unlock := r.lock()
	defer unlock()
	t := r.table()
	if _, ok := t[session.ID]; ok {
		return domain.ErrDuplicate
	}
	for _, ss := range t {
		if ss.TokenHash == session.TokenHash {
			return domain.ErrDuplicate
		}
	}
	t[session.ID] = *session
	return nil
}

func (r *SessionRepo) FindLiveByTokenHash(ctx context.Context, tokenHash string, now time.Time) (*entity.Session, error) {
	unlock := r.lock()
	defer unlock()
	for _, ss := range r.table() {
		if ss.TokenHash == tokenHash && ss.IsLiveAt(now) {
			return &ss, nil
		}
	}
	return nil, nil
}

func (r *SessionRepo) Touch(ctx context.Context, sessionID string, at time.Time) error {
	unlock := r.lock()
	defer unlock()
	t := r.table()
	ss, ok := t[sessionID]
	if !ok {
		return domain.ErrNotFound
	}
	if at.After(ss.LastActivity) {
		ss.LastActivity = at
		t[sessionID] = ss
	}
	return nil
}

func (r *SessionRepo) Deactivate(ctx context.Context, sessionID string) error {
	unlock := r.lock()
	defer unlock()
	t := r.table()
	ss, ok := t[sessionID]
	if !ok {
		return domain.ErrNotFound
	}
	ss.IsActive = false
	t[sessionID] = ss
	return nil
}

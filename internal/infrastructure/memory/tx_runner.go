package memory

import (
	"context"

	"github.com/jhoicas/hotel-ops-api/internal/domain/entity"
	"github.com/jhoicas/hotel-ops-api/internal/domain/repository"
)

// TxRunner transacciones en memoria: los cambios se acumulan y se publican solo si fn no falla.
type TxRunner struct {
	s *Store
}

// NewTxRunner crea el runner.
func NewTxRunner(s *Store) *TxRunner { return &TxRunner{s: s} }

// Run ejecuta fn con un EventRepository que acumula; publica todos los eventos juntos o ninguno.
func (t *TxRunner) Run(ctx context.Context, fn func(events repository.EventRepository) error) error {
	var staged []entity.OperationalEvent
	repo := &EventRepo{s: t.s, staged: &staged}
	if err := fn(repo); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	t.s.events = append(t.s.events, staged...)
	return nil
}

// RunSessions serializa con el lock de escritura del Store y trabaja sobre una copia de la tabla.
func (t *TxRunner) RunSessions(ctx context.Context, fn func(sessions repository.SessionRepository) error) error {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	snapshot := make(map[string]entity.Session, len(t.s.sessions))
	for id, ss := range t.s.sessions {
		snapshot[id] = ss
	}
	repo := &SessionRepo{s: t.s, staged: snapshot}
	if err := fn(repo); err != nil {
		return err
	}
	t.s.sessions = snapshot
	return nil
}

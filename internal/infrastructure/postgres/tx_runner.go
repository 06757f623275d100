package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/hotel-ops-api/internal/application/auth"
	"github.com/jhoicas/hotel-ops-api/internal/application/ledger"
	"github.com/jhoicas/hotel-ops-api/internal/domain/repository"
)

var _ ledger.TxRunner = (*TxRunner)(nil)
var _ auth.SessionTxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con el repositorio del ledger atado a la tx y hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(events repository.EventRepository) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewEventRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunSessions inicia una transacción para "invalidar anteriores + crear nueva".
// LockEmployee toma SELECT ... FOR UPDATE sobre el empleado, serializando logins concurrentes.
func (r *TxRunner) RunSessions(ctx context.Context, fn func(sessions repository.SessionRepository) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewSessionRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

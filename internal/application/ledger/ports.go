package ledger

import (
	"context"

	"github.com/jhoicas/hotel-ops-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando el repositorio del ledger atado a esa tx.
// Encabezado y detalles de un evento se confirman juntos o no se confirman.
type TxRunner interface {
	Run(ctx context.Context, fn func(events repository.EventRepository) error) error
}

package repository

import (
	"context"
	"time"

	"github.com/jhoicas/hotel-ops-api/internal/domain/entity"
)

// EventRepository puerto del ledger operativo. Solo inserción: no hay update ni delete.
type EventRepository interface {
	// Append inserta el encabezado y todos sus detalles. Debe usarse dentro de una transacción.
	Append(ctx context.Context, event *entity.OperationalEvent) error
	// ListRecent eventos de la empresa con sus detalles, más recientes primero.
	ListRecent(ctx context.Context, companyID string, limit, offset int) ([]*entity.OperationalEvent, error)
}

// QuantityFilter alcance de una suma de cantidades del ledger.
// AreaID vacío = toda la empresa; From nil = sin cota inferior. To es cota superior inclusiva.
type QuantityFilter struct {
	CompanyID  string
	EventTypes []string
	AreaID     string
	From       *time.Time
	To         time.Time
}

// BottleneckRepository consultas de solo lectura para el agregador de cuellos de botella.
// Cada suma es una única sentencia: internamente consistente, sin doble conteo.
type BottleneckRepository interface {
	SumQuantities(ctx context.Context, f QuantityFilter) (int64, error)
}

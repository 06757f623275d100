package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/hotel-ops-api/internal/domain/entity"
	"github.com/jhoicas/hotel-ops-api/internal/domain/repository"
)

var (
	_ repository.EventRepository      = (*EventRepo)(nil)
	_ repository.BottleneckRepository = (*BottleneckRepo)(nil)
)

// EventRepo ledger operativo sobre PostgreSQL. Solo INSERT y SELECT.
type EventRepo struct {
	q Querier
}

// NewEventRepository construye el adaptador. Append debe recibir una tx (ver TxRunner.Run).
func NewEventRepository(q Querier) *EventRepo {
	return &EventRepo{q: q}
}

// Append inserta el encabezado y envía los detalles en un solo batch.
func (r *EventRepo) Append(ctx context.Context, e *entity.OperationalEvent) error {
	headerQuery := `
		INSERT INTO operational_events (id, company_id, employee_id, area_id, session_id, event_type, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, headerQuery,
		e.ID, e.CompanyID, e.EmployeeID, e.AreaID, nullableUUID(e.SessionID), e.EventType, e.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert event: %w", err)
	}

	detailQuery := `
		INSERT INTO event_details (id, event_id, catalog_item_id, quantity, metadata)
		VALUES ($1, $2, $3, $4, $5)`
	batch := &pgx.Batch{}
	for _, d := range e.Details {
		var metadata any
		if len(d.Metadata) > 0 {
			metadata = d.Metadata
		}
		batch.Queue(detailQuery, d.ID, e.ID, d.CatalogItemID, d.Quantity, metadata)
	}
	br := r.q.SendBatch(ctx, batch)
	for range e.Details {
		if _, err := br.Exec(); err != nil {
			_ = br.Close()
			return fmt.Errorf("insert event detail: %w", err)
		}
	}
	if err := br.Close(); err != nil {
		return fmt.Errorf("insert event details: %w", err)
	}
	return nil
}

// ListRecent eventos de la empresa con sus detalles, más recientes primero.
func (r *EventRepo) ListRecent(ctx context.Context, companyID string, limit, offset int) ([]*entity.OperationalEvent, error) {
	query := `
		SELECT id, company_id, employee_id, area_id, COALESCE(session_id::text, ''), event_type, created_at
		FROM operational_events
		WHERE company_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, companyID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()

	list := make([]*entity.OperationalEvent, 0, limit)
	byID := make(map[string]*entity.OperationalEvent)
	ids := make([]string, 0, limit)
	for rows.Next() {
		var e entity.OperationalEvent
		if err := rows.Scan(&e.ID, &e.CompanyID, &e.EmployeeID, &e.AreaID, &e.SessionID, &e.EventType, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		list = append(list, &e)
		byID[e.ID] = &e
		ids = append(ids, e.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	rows.Close()
	if len(ids) == 0 {
		return list, nil
	}

	detailRows, err := r.q.Query(ctx, `
		SELECT id, event_id, catalog_item_id::text, quantity, metadata
		FROM event_details
		WHERE event_id = ANY($1::uuid[])
		ORDER BY event_id, id`, ids)
	if err != nil {
		return nil, fmt.Errorf("list event details: %w", err)
	}
	defer detailRows.Close()
	for detailRows.Next() {
		var d entity.EventDetail
		if err := detailRows.Scan(&d.ID, &d.EventID, &d.CatalogItemID, &d.Quantity, &d.Metadata); err != nil {
			return nil, fmt.Errorf("scan event detail: %w", err)
		}
		if e, ok := byID[d.EventID]; ok {
			e.Details = append(e.Details, d)
		}
	}
	return list, detailRows.Err()
}

// BottleneckRepo sumas de cantidades del ledger para el agregador.
type BottleneckRepo struct {
	q Querier
}

// NewBottleneckRepository construye el adaptador de sumas.
func NewBottleneckRepository(q Querier) *BottleneckRepo {
	return &BottleneckRepo{q: q}
}

// SumQuantities suma las cantidades de los detalles en una sola sentencia (snapshot MVCC propio).
// SUM(bigint) es NUMERIC en PostgreSQL; se escanea a decimal con el codec registrado en el pool.
func (r *BottleneckRepo) SumQuantities(ctx context.Context, f repository.QuantityFilter) (int64, error) {
	const query = `
	SELECT COALESCE(SUM(d.quantity), 0)
	FROM operational_events e
	JOIN event_details      d ON d.event_id = e.id
	WHERE e.company_id = $1
	  AND e.event_type = ANY($2::text[])
	  AND ($3::uuid IS NULL OR e.area_id = $3::uuid)
	  AND ($4::timestamptz IS NULL OR e.created_at >= $4::timestamptz)
	  AND e.created_at <= $5`

	var total decimal.Decimal
	err := r.q.QueryRow(ctx, query, f.CompanyID, f.EventTypes, nullableUUID(f.AreaID), f.From, f.To).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("sum quantities: %w", err)
	}
	return total.IntPart(), nil
}

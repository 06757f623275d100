package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/hotel-ops-api/internal/domain"
	"github.com/jhoicas/hotel-ops-api/internal/domain/entity"
	"github.com/jhoicas/hotel-ops-api/internal/domain/repository"
)

var (
	_ repository.EventRepository      = (*EventRepo)(nil)
	_ repository.BottleneckRepository = (*BottleneckRepo)(nil)
)

// EventRepo ledger en memoria. Append fuera de TxRunner.Run publica de inmediato;
// dentro de Run acumula y el runner publica todo o nada.
type EventRepo struct {
	s      *Store
	staged *[]entity.OperationalEvent
}

// NewEventRepo crea el repositorio.
func NewEventRepo(s *Store) *EventRepo { return &EventRepo{s: s} }

func (r *EventRepo) Append(ctx context.Context, event *entity.OperationalEvent) error {
	if event == nil || len(event.Details) == 0 {
		return domain.ErrInvalidInput
	}
	for _, d := range event.Details {
		if d.Quantity <= 0 {
			return domain.ErrInvalidInput
		}
	}
	cp := *cloneEvent(*event)
	if r.staged != nil {
		*r.staged = append(*r.staged, cp)
		return nil
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.events = append(r.s.events, cp)
	return nil
}

func (r *EventRepo) ListRecent(ctx context.Context, companyID string, limit, offset int) ([]*entity.OperationalEvent, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []*entity.OperationalEvent
	for _, e := range r.s.events {
		if e.CompanyID == companyID {
			out = append(out, cloneEvent(e))
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	if offset >= len(out) {
		return []*entity.OperationalEvent{}, nil
	}
	out = out[offset:]
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

// BottleneckRepo sumas de cantidades sobre el ledger en memoria.
type BottleneckRepo struct{ s *Store }

// NewBottleneckRepo crea el repositorio.
func NewBottleneckRepo(s *Store) *BottleneckRepo { return &BottleneckRepo{s: s} }

// SumQuantities suma bajo un único lock de lectura: la suma es consistente con un instante.
func (r *BottleneckRepo) SumQuantities(ctx context.Context, f repository.QuantityFilter) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	types := make(map[string]struct{}, len(f.EventTypes))
	for _, t := range f.EventTypes {
		types[t] = struct{}{}
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var total int64
	for _, e := range r.s.events {
		if e.CompanyID != f.CompanyID {
			continue
		}
		if _, ok := types[e.EventType]; !ok {
			continue
		}
		if f.AreaID != "" && e.AreaID != f.AreaID {
			continue
		}
		if f.From != nil && e.CreatedAt.Before(*f.From) {
			continue
		}
		if e.CreatedAt.After(f.To) {
			continue
		}
		total += e.TotalQuantity()
	}
	return total, nil
}

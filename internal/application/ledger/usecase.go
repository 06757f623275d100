// Package ledger contiene los casos de uso del ledger operativo: registro de eventos
// desde una sesión de terminal y lectura de los eventos recientes.
package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/hotel-ops-api/internal/application/auth"
	"github.com/jhoicas/hotel-ops-api/internal/application/dto"
	"github.com/jhoicas/hotel-ops-api/internal/domain"
	"github.com/jhoicas/hotel-ops-api/internal/domain/entity"
	"github.com/jhoicas/hotel-ops-api/internal/domain/ledger"
	"github.com/jhoicas/hotel-ops-api/internal/domain/repository"
	"github.com/jhoicas/hotel-ops-api/pkg/logger"
)

// EventUseCase única ruta de escritura del ledger. No existe actualización ni borrado de eventos.
type EventUseCase struct {
	txRunner    TxRunner
	catalogRepo repository.CatalogItemRepository
	eventRepo   repository.EventRepository
	log         *logger.Logger
	now         func() time.Time
}

// Option configura EventUseCase.
type Option func(*EventUseCase)

// WithClock reemplaza el reloj (tests).
func WithClock(now func() time.Time) Option {
	return func(uc *EventUseCase) {
		if now != nil {
			uc.now = now
		}
	}
}

// NewEventUseCase construye el caso de uso.
func NewEventUseCase(
	txRunner TxRunner,
	catalogRepo repository.CatalogItemRepository,
	eventRepo repository.EventRepository,
	log *logger.Logger,
	opts ...Option,
) *EventUseCase {
	if log == nil {
		log = logger.NewNop()
	}
	uc := &EventUseCase{
		txRunner:    txRunner,
		catalogRepo: catalogRepo,
		eventRepo:   eventRepo,
		log:         log,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// AppendInput entrada del registro de un evento.
type AppendInput struct {
	Session   *auth.SessionContext
	AreaID    string
	EventType string
	Items     []dto.EventItemRequest
}

// Append valida las precondiciones en orden (área autorizada, tipo de área, cantidades, ítems)
// antes de tocar el almacenamiento, y luego inserta encabezado y detalles en una transacción.
// Un lote con cualquier línea inválida se rechaza completo.
func (uc *EventUseCase) Append(ctx context.Context, in AppendInput) (*dto.AppendEventResponse, error) {
	if in.Session == nil || in.Session.Employee == nil {
		return nil, domain.ErrSessionInvalid
	}
	if !ledger.KnownEventType(in.EventType) {
		return nil, domain.Invalid("tipo de evento desconocido: %q", in.EventType)
	}

	companyID := in.Session.CompanyID()
	area, ok := in.Session.AuthorizedArea(in.AreaID)
	if !ok || area.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	if required, ok := ledger.RequiredAreaType(in.EventType); ok && area.Type != required {
		return nil, domain.ErrNoMatchingArea
	}

	if len(in.Items) == 0 {
		return nil, domain.Invalid("el evento debe tener al menos un ítem")
	}
	if len(in.Items) > ledger.MaxEventLines {
		return nil, domain.Invalid("el evento admite como máximo %d ítems", ledger.MaxEventLines)
	}
	for i, it := range in.Items {
		if it.Quantity <= 0 {
			return nil, domain.Invalid("ítem %d: la cantidad debe ser mayor que cero", i+1)
		}
		if !ledger.ValidQuantity(it.Quantity) {
			return nil, domain.Invalid("ítem %d: la cantidad excede el máximo de %d", i+1, ledger.MaxLineQuantity)
		}
	}

	if err := uc.checkCatalogItems(ctx, companyID, in.Items); err != nil {
		return nil, err
	}

	now := uc.now()
	event := &entity.OperationalEvent{
		ID:         uuid.New().String(),
		CompanyID:  companyID,
		EmployeeID: in.Session.Employee.ID,
		AreaID:     area.ID,
		SessionID:  in.Session.SessionID,
		EventType:  in.EventType,
		CreatedAt:  now,
		Details:    make([]entity.EventDetail, 0, len(in.Items)),
	}
	for _, it := range in.Items {
		event.Details = append(event.Details, entity.EventDetail{
			ID:            uuid.New().String(),
			EventID:       event.ID,
			CatalogItemID: canonicalItemID(it.ItemID),
			Quantity:      it.Quantity,
			Metadata:      it.Metadata,
		})
	}

	err := uc.txRunner.Run(ctx, func(events repository.EventRepository) error {
		return events.Append(ctx, event)
	})
	if err != nil {
		uc.log.Error().Err(err).Str("event_type", event.EventType).Str("area_id", area.ID).Msg("ledger: error registrando evento")
		return nil, fmt.Errorf("ledger: registrar evento: %w", err)
	}

	uc.log.Info().
		Str("event_id", event.ID).
		Str("event_type", event.EventType).
		Str("area_id", area.ID).
		Str("employee_id", event.EmployeeID).
		Int("items", len(event.Details)).
		Msg("ledger: evento registrado")

	return &dto.AppendEventResponse{
		Success:   true,
		EventID:   event.ID,
		EventType: event.EventType,
		AreaID:    area.ID,
		ItemCount: len(event.Details),
		Total:     event.TotalQuantity(),
		CreatedAt: now,
	}, nil
}

// checkCatalogItems exige que cada itemId presente sea un uuid y pertenezca a la empresa.
func (uc *EventUseCase) checkCatalogItems(ctx context.Context, companyID string, items []dto.EventItemRequest) error {
	ids := make([]string, 0, len(items))
	seen := make(map[string]struct{}, len(items))
	for i, it := range items {
		id := normalizeItemID(it.ItemID)
		if id == nil {
			continue
		}
		parsed, err := uuid.Parse(*id)
		if err != nil {
			return domain.Invalid("ítem %d: itemId %q no es un identificador válido", i+1, *id)
		}
		canonical := parsed.String()
		if _, dup := seen[canonical]; dup {
			continue
		}
		seen[canonical] = struct{}{}
		ids = append(ids, canonical)
	}
	if len(ids) == 0 {
		return nil
	}
	found, err := uc.catalogRepo.ListByIDs(ctx, companyID, ids)
	if err != nil {
		return fmt.Errorf("ledger: validar catálogo: %w", err)
	}
	if len(found) != len(ids) {
		return domain.ErrItemNotInCompany
	}
	return nil
}

// normalizeItemID trata "" como ausencia de ítem de catálogo.
func normalizeItemID(id *string) *string {
	if id == nil || *id == "" {
		return nil
	}
	v := *id
	return &v
}

// canonicalItemID forma canónica del uuid ya validado.
func canonicalItemID(id *string) *string {
	v := normalizeItemID(id)
	if v == nil {
		return nil
	}
	if parsed, err := uuid.Parse(*v); err == nil {
		c := parsed.String()
		return &c
	}
	return v
}

// ListRecent eventos de la empresa, más recientes primero, con sus detalles.
func (uc *EventUseCase) ListRecent(ctx context.Context, companyID string, page dto.PageRequest) (*dto.EventListResponse, error) {
	page.DefaultPage()
	events, err := uc.eventRepo.ListRecent(ctx, companyID, page.Limit, page.Offset)
	if err != nil {
		return nil, fmt.Errorf("ledger: listar eventos: %w", err)
	}
	out := &dto.EventListResponse{
		Items: make([]dto.EventResponse, 0, len(events)),
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}
	for _, e := range events {
		out.Items = append(out.Items, toEventResponse(e))
	}
	return out, nil
}

func toEventResponse(e *entity.OperationalEvent) dto.EventResponse {
	r := dto.EventResponse{
		ID:         e.ID,
		EmployeeID: e.EmployeeID,
		AreaID:     e.AreaID,
		SessionID:  e.SessionID,
		EventType:  e.EventType,
		CreatedAt:  e.CreatedAt,
		Details:    make([]dto.EventDetailResponse, 0, len(e.Details)),
	}
	for _, d := range e.Details {
		r.Details = append(r.Details, dto.EventDetailResponse{
			ID:       d.ID,
			ItemID:   d.CatalogItemID,
			Quantity: d.Quantity,
			Metadata: d.Metadata,
		})
	}
	return r
}

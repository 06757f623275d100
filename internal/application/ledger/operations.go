package ledger

import (
	"context"

	"github.com/jhoicas/hotel-ops-api/internal/application/auth"
	"github.com/jhoicas/hotel-ops-api/internal/application/dto"
	"github.com/jhoicas/hotel-ops-api/internal/domain"
	"github.com/jhoicas/hotel-ops-api/internal/domain/entity"
	"github.com/jhoicas/hotel-ops-api/internal/domain/ledger"
)

// Operaciones de terminal expuestas en /api/operations/{operación}.
var operationEventTypes = map[string]string{
	"collection": entity.EventTypeCollection,
	"demand":     entity.EventTypeDemand,
	"wash-cycle": entity.EventTypeWashCycle,
	"supply":     entity.EventTypeSupply,
}

// OperationEventType tipo de evento que registra la operación.
func OperationEventType(operation string) (string, bool) {
	t, ok := operationEventTypes[operation]
	return t, ok
}

// RecordOperation registra una operación de terminal. Sin areaId usa la primera área autorizada
// del tipo que exige la operación; si no hay ninguna falla con ErrNoMatchingArea.
func (uc *EventUseCase) RecordOperation(ctx context.Context, session *auth.SessionContext, operation string, in dto.OperationRequest) (*dto.AppendEventResponse, error) {
	eventType, ok := OperationEventType(operation)
	if !ok {
		return nil, domain.ErrNotFound
	}
	if session == nil || session.Employee == nil {
		return nil, domain.ErrSessionInvalid
	}
	areaID := in.AreaID
	if areaID == "" {
		required, _ := ledger.RequiredAreaType(eventType)
		area, found := session.FirstAreaOfType(required)
		if !found {
			return nil, domain.ErrNoMatchingArea
		}
		areaID = area.ID
	}
	return uc.Append(ctx, AppendInput{
		Session:   session,
		AreaID:    areaID,
		EventType: eventType,
		Items:     in.Items,
	})
}

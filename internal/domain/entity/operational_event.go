package entity

import "time"

// Vocabulario de tipos de evento operativo.
const (
	EventTypeDemand       = "DEMAND"
	EventTypeCollection   = "COLLECTION"
	EventTypeSupply       = "SUPPLY"
	EventTypeWashCycle    = "WASH_CYCLE"
	EventTypeLimpieza     = "LIMPIEZA"
	EventTypeCleaning     = "CLEANING"
	EventTypeCorrection   = "CORRECTION"
	EventTypeInProgress   = "IN_PROGRESS"
	EventTypeCompleted    = "COMPLETED"
	EventTypeRoomCleaning = "ROOM_CLEANING"
)

// OperationalEvent entrada inmutable del ledger. No existe ruta de actualización ni borrado.
type OperationalEvent struct {
	ID         string
	CompanyID  string
	EmployeeID string
	AreaID     string
	SessionID  string // vacío si el evento no nació de una sesión de terminal
	EventType  string
	CreatedAt  time.Time
	Details    []EventDetail
}

// EventDetail línea de un evento. Quantity > 0 siempre.
type EventDetail struct {
	ID            string
	EventID       string
	CatalogItemID *string // nil: el ítem no corresponde a ninguna entrada del catálogo
	Quantity      int64
	Metadata      map[string]any
}

// TotalQuantity suma las cantidades de los detalles.
func (e *OperationalEvent) TotalQuantity() int64 {
	var total int64
	for _, d := range e.Details {
		total += d.Quantity
	}
	return total
}

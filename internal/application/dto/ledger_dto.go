package dto

import "time"

// EventItemRequest línea de un evento. ItemID opcional (uuid de CatalogItem).
type EventItemRequest struct {
	ItemID   *string        `json:"itemId,omitempty"`
	Quantity int64          `json:"quantity"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

// AppendEventRequest body de POST /api/ledger/events.
type AppendEventRequest struct {
	AreaID    string             `json:"areaId" validate:"required"`
	EventType string             `json:"eventType" validate:"required"`
	Items     []EventItemRequest `json:"items" validate:"required,min=1,max=200"`
}

// OperationRequest body de POST /api/operations/{operación}; AreaID opcional.
type OperationRequest struct {
	AreaID string             `json:"areaId,omitempty"`
	Items  []EventItemRequest `json:"items" validate:"required,min=1,max=200"`
}

// AppendEventResponse salida de un registro exitoso.
type AppendEventResponse struct {
	Success   bool      `json:"success"`
	EventID   string    `json:"eventId"`
	EventType string    `json:"eventType"`
	AreaID    string    `json:"areaId"`
	ItemCount int       `json:"itemCount"`
	Total     int64     `json:"totalQuantity"`
	CreatedAt time.Time `json:"createdAt"`
}

// EventDetailResponse línea de un evento en lecturas.
type EventDetailResponse struct {
	ID       string         `json:"id"`
	ItemID   *string        `json:"itemId,omitempty"`
	Quantity int64          `json:"quantity"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

// EventResponse evento del ledger en lecturas.
type EventResponse struct {
	ID         string                `json:"id"`
	EmployeeID string                `json:"employeeId"`
	AreaID     string                `json:"areaId"`
	SessionID  string                `json:"sessionId,omitempty"`
	EventType  string                `json:"eventType"`
	CreatedAt  time.Time             `json:"createdAt"`
	Details    []EventDetailResponse `json:"details"`
}

// EventListResponse lista paginada de eventos.
type EventListResponse struct {
	Items []EventResponse `json:"items"`
	Page  PageResponse    `json:"page"`
}

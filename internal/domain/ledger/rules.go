// Package ledger contiene las reglas puras del ledger operativo: partición semántica de los
// tipos de evento, tipo de área exigido por cada operación y métricas de cuello de botella.
package ledger

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/hotel-ops-api/internal/domain/entity"
)

// Topes de un evento. Con ambos, la suma de cualquier rango de eventos cabe holgadamente en int64.
const (
	MaxLineQuantity int64 = 100000
	MaxEventLines         = 200
)

// ValidQuantity cantidad de una línea de detalle: entera, positiva y dentro del tope.
func ValidQuantity(q int64) bool {
	return q > 0 && q <= MaxLineQuantity
}

// Role papel de un tipo de evento en el balance demanda/oferta.
type Role int

const (
	RoleOther  Role = iota // no afecta el balance
	RoleDemand             // genera demanda (pendiente de procesar)
	RoleSupply             // cubre demanda
)

// Estados de un cuello de botella.
const (
	StatusOK       = "OK"
	StatusWarning  = "WARNING"
	StatusCritical = "CRITICAL"
)

var (
	criticalThreshold = decimal.NewFromFloat(0.5)
	warningThreshold  = decimal.NewFromFloat(0.2)
	hundred           = decimal.NewFromInt(100)
)

var eventRoles = map[string]Role{
	entity.EventTypeDemand:       RoleDemand,
	entity.EventTypeCollection:   RoleDemand,
	entity.EventTypeSupply:       RoleSupply,
	entity.EventTypeWashCycle:    RoleSupply,
	entity.EventTypeLimpieza:     RoleOther,
	entity.EventTypeCleaning:     RoleOther,
	entity.EventTypeCorrection:   RoleOther,
	entity.EventTypeInProgress:   RoleOther,
	entity.EventTypeCompleted:    RoleOther,
	entity.EventTypeRoomCleaning: RoleOther,
}

// KnownEventType informa si t pertenece al vocabulario.
func KnownEventType(t string) bool {
	_, ok := eventRoles[t]
	return ok
}

// RoleOf devuelve el papel del tipo de evento; los tipos desconocidos son RoleOther.
func RoleOf(eventType string) Role {
	return eventRoles[eventType]
}

// DemandTypes tipos que generan demanda.
func DemandTypes() []string {
	return []string{entity.EventTypeDemand, entity.EventTypeCollection}
}

// SupplyTypes tipos que generan oferta.
func SupplyTypes() []string {
	return []string{entity.EventTypeSupply, entity.EventTypeWashCycle}
}

// RequiredAreaType tipo de área exigido por el evento: SOURCE para demanda, PROCESSOR para oferta.
// ok=false cuando el evento acepta cualquier área autorizada.
func RequiredAreaType(eventType string) (areaType string, ok bool) {
	switch RoleOf(eventType) {
	case RoleDemand:
		return entity.AreaTypeSource, true
	case RoleSupply:
		return entity.AreaTypeProcessor, true
	}
	return "", false
}

// PendingRatio pending / demand; cero si no hay demanda.
func PendingRatio(pending, demand int64) decimal.Decimal {
	if demand == 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(pending).Div(decimal.NewFromInt(demand))
}

// ClassifyStatus > 0.5 CRITICAL, > 0.2 WARNING, resto OK.
func ClassifyStatus(ratio decimal.Decimal) string {
	switch {
	case ratio.GreaterThan(criticalThreshold):
		return StatusCritical
	case ratio.GreaterThan(warningThreshold):
		return StatusWarning
	default:
		return StatusOK
	}
}

// TrendPercent (current - previous) / previous * 100 redondeado a un decimal.
// Con previous == 0 devuelve 100 si hubo actividad (current > 0) y 0 en otro caso.
func TrendPercent(current, previous int64) decimal.Decimal {
	if previous == 0 {
		if current > 0 {
			return hundred
		}
		return decimal.Zero
	}
	return decimal.NewFromInt(current - previous).
		Div(decimal.NewFromInt(previous)).
		Mul(hundred).
		Round(1)
}

// ClampPending max(0, demand - supply).
func ClampPending(demand, supply int64) int64 {
	if p := demand - supply; p > 0 {
		return p
	}
	return 0
}

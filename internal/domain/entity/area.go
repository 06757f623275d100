package entity

import "time"

// Tipos de área operativa. El tipo es inmutable tras la creación: la semántica de los eventos depende de él.
const (
	AreaTypeSource    = "SOURCE"    // genera demanda (ej. piso de housekeeping)
	AreaTypeProcessor = "PROCESSOR" // genera oferta (ej. lavandería)
)

// Area zona operativa de una Company.
type Area struct {
	ID        string
	CompanyID string
	Name      string
	Type      string
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ValidAreaType informa si t pertenece al vocabulario de tipos de área.
func ValidAreaType(t string) bool {
	return t == AreaTypeSource || t == AreaTypeProcessor
}

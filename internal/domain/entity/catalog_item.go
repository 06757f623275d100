package entity

import "time"

// CatalogItem ítem del catálogo de una Company (ej. "Sábana King", "Toalla de baño").
type CatalogItem struct {
	ID        string
	CompanyID string
	Name      string
	Unit      string // pieza, kg, juego
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

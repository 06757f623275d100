package entity

import "time"

// Company representa un hotel/operador (tenant). Todo registro operativo pertenece a una Company.
type Company struct {
	ID        string
	Name      string
	Status    string // active, suspended, inactive
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CompanyStatusActive estado de una empresa operando normalmente.
const CompanyStatusActive = "active"

// IsActive indica si la empresa puede usar la consola.
func (c *Company) IsActive() bool {
	return c.Status == CompanyStatusActive
}

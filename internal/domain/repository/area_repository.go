package repository

import (
	"context"

	"github.com/jhoicas/hotel-ops-api/internal/domain/entity"
)

// AreaRepository puerto de persistencia para Area y su membresía con empleados.
type AreaRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Area, error)
	// ListActiveByEmployee áreas activas de las que el empleado es miembro, ordenadas por nombre.
	ListActiveByEmployee(ctx context.Context, employeeID string) ([]*entity.Area, error)
	// ListActiveByCompany áreas activas de la empresa, ordenadas por nombre.
	ListActiveByCompany(ctx context.Context, companyID string) ([]*entity.Area, error)
}

package repository

import (
	"context"

	"github.com/jhoicas/hotel-ops-api/internal/domain/entity"
)

// EmployeeRepository puerto de persistencia para Employee (DIP).
type EmployeeRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Employee, error)
	// ListActiveWithPIN devuelve los empleados activos con PIN en orden estable (created_at, id).
	// companyID vacío = todas las empresas (la afiliación se conoce solo tras el match).
	ListActiveWithPIN(ctx context.Context, companyID string) ([]*entity.Employee, error)
	// FindActiveByEmail busca un empleado activo por email (login de consola).
	FindActiveByEmail(ctx context.Context, email string) (*entity.Employee, error)
}

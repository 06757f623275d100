package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/hotel-ops-api/internal/domain/entity"
	"github.com/jhoicas/hotel-ops-api/internal/domain/repository"
)

var _ repository.AreaRepository = (*AreaRepo)(nil)

// AreaRepo implementación de AreaRepository sobre PostgreSQL.
type AreaRepo struct {
	q Querier
}

// NewAreaRepository construye el adaptador de áreas.
func NewAreaRepository(q Querier) *AreaRepo {
	return &AreaRepo{q: q}
}

// GetByID obtiene un área por ID.
func (r *AreaRepo) GetByID(ctx context.Context, id string) (*entity.Area, error) {
	query := `
		SELECT id, company_id, name, type, is_active, created_at, updated_at
		FROM areas WHERE id = $1`
	var a entity.Area
	err := r.q.QueryRow(ctx, query, id).Scan(
		&a.ID, &a.CompanyID, &a.Name, &a.Type, &a.IsActive, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get area: %w", err)
	}
	return &a, nil
}

// ListActiveByEmployee áreas activas de las que el empleado es miembro, solo de su propia empresa.
func (r *AreaRepo) ListActiveByEmployee(ctx context.Context, employeeID string) ([]*entity.Area, error) {
	query := `
		SELECT a.id, a.company_id, a.name, a.type, a.is_active, a.created_at, a.updated_at
		FROM areas a
		JOIN employee_areas ea ON ea.area_id = a.id
		JOIN employees e ON e.id = ea.employee_id
		WHERE ea.employee_id = $1 AND a.is_active AND a.company_id = e.company_id
		ORDER BY a.name, a.id`
	return r.list(ctx, query, employeeID)
}

// ListActiveByCompany áreas activas de la empresa.
func (r *AreaRepo) ListActiveByCompany(ctx context.Context, companyID string) ([]*entity.Area, error) {
	query := `
		SELECT id, company_id, name, type, is_active, created_at, updated_at
		FROM areas
		WHERE company_id = $1 AND is_active
		ORDER BY name, id`
	return r.list(ctx, query, companyID)
}

func (r *AreaRepo) list(ctx context.Context, query string, arg string) ([]*entity.Area, error) {
	rows, err := r.q.Query(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("list areas: %w", err)
	}
	defer rows.Close()
	var list []*entity.Area
	for rows.Next() {
		var a entity.Area
		if err := rows.Scan(&a.ID, &a.CompanyID, &a.Name, &a.Type, &a.IsActive, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan area: %w", err)
		}
		list = append(list, &a)
	}
	return list, rows.Err()
}

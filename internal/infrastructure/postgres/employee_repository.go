package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/hotel-ops-api/internal/domain/entity"
	"github.com/jhoicas/hotel-ops-api/internal/domain/repository"
)

var _ repository.EmployeeRepository = (*EmployeeRepo)(nil)

const employeeColumns = `
	id, company_id, full_name, COALESCE(email, ''), COALESCE(pin_hash, ''), COALESCE(password_hash, ''),
	role, is_active, created_at, updated_at`

// EmployeeRepo implementación del puerto EmployeeRepository sobre PostgreSQL.
type EmployeeRepo struct {
	q Querier
}

// NewEmployeeRepository construye el adaptador de persistencia para empleados.
func NewEmployeeRepository(q Querier) *EmployeeRepo {
	return &EmployeeRepo{q: q}
}

// GetByID obtiene un empleado por ID (activo o no).
func (r *EmployeeRepo) GetByID(ctx context.Context, id string) (*entity.Employee, error) {
	query := `SELECT` + employeeColumns + ` FROM employees WHERE id = $1`
	e, err := scanEmployee(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get employee by id: %w", err)
	}
	return e, nil
}

// ListActiveWithPIN candidatos del login por PIN en orden estable.
func (r *EmployeeRepo) ListActiveWithPIN(ctx context.Context, companyID string) ([]*entity.Employee, error) {
	query := `SELECT` + employeeColumns + `
		FROM employees
		WHERE is_active
		  AND pin_hash IS NOT NULL AND pin_hash <> ''
		  AND ($1::uuid IS NULL OR company_id = $1::uuid)
		ORDER BY created_at, id`
	rows, err := r.q.Query(ctx, query, nullableUUID(companyID))
	if err != nil {
		return nil, fmt.Errorf("list active employees: %w", err)
	}
	defer rows.Close()
	var list []*entity.Employee
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("scan employee: %w", err)
		}
		list = append(list, e)
	}
	return list, rows.Err()
}

// FindActiveByEmail busca un empleado activo por email, sin distinguir mayúsculas.
func (r *EmployeeRepo) FindActiveByEmail(ctx context.Context, email string) (*entity.Employee, error) {
	query := `SELECT` + employeeColumns + `
		FROM employees WHERE lower(email) = lower($1) AND is_active
		ORDER BY created_at LIMIT 1`
	e, err := scanEmployee(r.q.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get employee by email: %w", err)
	}
	return e, nil
}

func scanEmployee(row pgx.Row) (*entity.Employee, error) {
	var e entity.Employee
	err := row.Scan(
		&e.ID, &e.CompanyID, &e.FullName, &e.Email, &e.PINHash, &e.PasswordHash,
		&e.Role, &e.IsActive, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

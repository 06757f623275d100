package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/hotel-ops-api/internal/domain/entity"
	"github.com/jhoicas/hotel-ops-api/internal/domain/repository"
)

var (
	_ repository.CompanyRepository     = (*CompanyRepo)(nil)
	_ repository.EmployeeRepository    = (*EmployeeRepo)(nil)
	_ repository.AreaRepository        = (*AreaRepo)(nil)
	_ repository.CatalogItemRepository = (*CatalogItemRepo)(nil)
)

// CompanyRepo empresas en memoria.
type CompanyRepo struct{ s *Store }

// NewCompanyRepo crea el repositorio.
func NewCompanyRepo(s *Store) *CompanyRepo { return &CompanyRepo{s: s} }

func (r *CompanyRepo) GetByID(ctx context.Context, id string) (*entity.Company, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	c, ok := r.s.companies[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

// EmployeeRepo empleados en memoria.
type EmployeeRepo struct{ s *Store }

// NewEmployeeRepo crea el repositorio.
func NewEmployeeRepo(s *Store) *EmployeeRepo { return &EmployeeRepo{s: s} }

func (r *EmployeeRepo) GetByID(ctx context.Context, id string) (*entity.Employee, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	e, ok := r.s.employees[id]
	if !ok {
		return nil, nil
	}
	return &e, nil
}

func (r *EmployeeRepo) ListActiveWithPIN(ctx context.Context, companyID string) ([]*entity.Employee, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []*entity.Employee
	for _, e := range r.s.employees {
		if !e.IsActive || e.PINHash == "" {
			continue
		}
		if companyID != "" && e.CompanyID != companyID {
			continue
		}
		out = append(out, &e)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *EmployeeRepo) FindActiveByEmail(ctx context.Context, email string) (*entity.Employee, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, e := range r.s.employees {
		if e.IsActive && e.Email != "" && sameEmail(e.Email, email) {
			return &e, nil
		}
	}
	return nil, nil
}

// AreaRepo áreas y membresías en memoria.
type AreaRepo struct{ s *Store }

// NewAreaRepo crea el repositorio.
func NewAreaRepo(s *Store) *AreaRepo { return &AreaRepo{s: s} }

func (r *AreaRepo) GetByID(ctx context.Context, id string) (*entity.Area, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	a, ok := r.s.areas[id]
	if !ok {
		return nil, nil
	}
	return &a, nil
}

func (r *AreaRepo) ListActiveByEmployee(ctx context.Context, employeeID string) ([]*entity.Area, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	emp, known := r.s.employees[employeeID]
	if !known {
		return nil, nil
	}
	var out []*entity.Area
	for areaID := range r.s.memberships[employeeID] {
		a, ok := r.s.areas[areaID]
		if !ok || !a.IsActive || a.CompanyID != emp.CompanyID {
			continue
		}
		out = append(out, &a)
	}
	sortAreas(out)
	return out, nil
}

func (r *AreaRepo) ListActiveByCompany(ctx context.Context, companyID string) ([]*entity.Area, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []*entity.Area
	for _, a := range r.s.areas {
		if a.CompanyID != companyID || !a.IsActive {
			continue
		}
		out = append(out, &a)
	}
	sortAreas(out)
	return out, nil
}

func sortAreas(areas []*entity.Area) {
	sort.Slice(areas, func(i, j int) bool {
		if areas[i].Name != areas[j].Name {
			return areas[i].Name < areas[j].Name
		}
		return areas[i].ID < areas[j].ID
	})
}

// CatalogItemRepo catálogo en memoria.
type CatalogItemRepo struct{ s *Store }

// NewCatalogItemRepo crea el repositorio.
func NewCatalogItemRepo(s *Store) *CatalogItemRepo { return &CatalogItemRepo{s: s} }

func (r *CatalogItemRepo) ListByIDs(ctx context.Context, companyID string, ids []string) ([]*entity.CatalogItem, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	seen := make(map[string]struct{}, len(ids))
	var out []*entity.CatalogItem
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		it, ok := r.s.items[id]
		if !ok || it.CompanyID != companyID {
			continue
		}
		out = append(out, &it)
	}
	return out, nil
}

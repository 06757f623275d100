package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/hotel-ops-api/internal/domain/entity"
	"github.com/jhoicas/hotel-ops-api/internal/domain/repository"
)

var _ repository.CatalogItemRepository = (*CatalogItemRepo)(nil)

// CatalogItemRepo lectura del catálogo sobre PostgreSQL.
type CatalogItemRepo struct {
	q Querier
}

// NewCatalogItemRepository construye el adaptador del catálogo.
func NewCatalogItemRepository(q Querier) *CatalogItemRepo {
	return &CatalogItemRepo{q: q}
}

// ListByIDs devuelve los ítems de ids que pertenecen a la empresa.
func (r *CatalogItemRepo) ListByIDs(ctx context.Context, companyID string, ids []string) ([]*entity.CatalogItem, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	query := `
		SELECT id, company_id, name, unit, is_active, created_at, updated_at
		FROM catalog_items
		WHERE company_id = $1 AND id = ANY($2::uuid[])`
	rows, err := r.q.Query(ctx, query, companyID, ids)
	if err != nil {
		return nil, fmt.Errorf("list catalog items: %w", err)
	}
	defer rows.Close()
	var list []*entity.CatalogItem
	for rows.Next() {
		var it entity.CatalogItem
		if err := rows.Scan(&it.ID, &it.CompanyID, &it.Name, &it.Unit, &it.IsActive, &it.CreatedAt, &it.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan catalog item: %w", err)
		}
		list = append(list, &it)
	}
	return list, rows.Err()
}

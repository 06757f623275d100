package repository

import (
	"context"

	"github.com/jhoicas/hotel-ops-api/internal/domain/entity"
)

// CatalogItemRepository puerto de lectura del catálogo.
type CatalogItemRepository interface {
	// ListByIDs devuelve los ítems existentes entre ids que pertenecen a companyID.
	ListByIDs(ctx context.Context, companyID string, ids []string) ([]*entity.CatalogItem, error)
}

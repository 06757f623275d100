package repository

import (
	"context"

	"github.com/jhoicas/hotel-ops-api/internal/domain/entity"
)

// CompanyRepository puerto de persistencia para Company.
type CompanyRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Company, error)
}

package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/hotel-ops-api/internal/application/dto"
	"github.com/jhoicas/hotel-ops-api/internal/domain"
	"github.com/jhoicas/hotel-ops-api/internal/domain/entity"
	"github.com/jhoicas/hotel-ops-api/internal/domain/repository"
)

// BottleneckReportGenerator puerto de salida: renderiza el resumen como PDF.
type BottleneckReportGenerator interface {
	GenerateBottleneckPDF(ctx context.Context, company *entity.Company, summary *dto.BottleneckSummary) ([]byte, error)
}

// ReportUseCase genera el reporte PDF del cuello de botella de una empresa.
type ReportUseCase struct {
	companyRepo repository.CompanyRepository
	bottleneck  *BottleneckUseCase
	generator   BottleneckReportGenerator
}

// NewReportUseCase construye el caso de uso.
func NewReportUseCase(
	companyRepo repository.CompanyRepository,
	bottleneck *BottleneckUseCase,
	generator BottleneckReportGenerator,
) *ReportUseCase {
	return &ReportUseCase{
		companyRepo: companyRepo,
		bottleneck:  bottleneck,
		generator:   generator,
	}
}

// BottleneckPDF calcula el resumen con corte en asOf y lo renderiza.
func (uc *ReportUseCase) BottleneckPDF(ctx context.Context, companyID string, asOf time.Time) ([]byte, error) {
	company, err := uc.companyRepo.GetByID(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("report: cargar empresa: %w", err)
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}
	summary, err := uc.bottleneck.Compute(ctx, companyID, asOf)
	if err != nil {
		return nil, err
	}
	pdfBytes, err := uc.generator.GenerateBottleneckPDF(ctx, company, summary)
	if err != nil {
		return nil, fmt.Errorf("report: generar pdf: %w", err)
	}
	return pdfBytes, nil
}

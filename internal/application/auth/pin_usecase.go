package auth

import (
	"context"
	"fmt"

	"github.com/jhoicas/hotel-ops-api/internal/application/dto"
	"github.com/jhoicas/hotel-ops-api/internal/domain"
	"github.com/jhoicas/hotel-ops-api/internal/domain/repository"
)

// PINAuthUseCase identifica a un empleado solo por su PIN y le emite una sesión.
type PINAuthUseCase struct {
	employees repository.EmployeeRepository
	sessions  *SessionUseCase
}

// NewPINAuthUseCase construye el caso de uso.
func NewPINAuthUseCase(employees repository.EmployeeRepository, sessions *SessionUseCase) *PINAuthUseCase {
	return &PINAuthUseCase{employees: employees, sessions: sessions}
}

// Authenticate recorre los empleados activos en orden estable y devuelve el primero cuyo hash
// coincide con el PIN. Los hashes llevan sal, por eso la búsqueda no puede hacerse por igualdad.
// Si dos empleados comparten PIN gana el de menor (created_at, id).
func (uc *PINAuthUseCase) Authenticate(ctx context.Context, pin, companyID string) (string, error) {
	if pin == "" {
		return "", domain.ErrInvalidCredentials
	}
	candidates, err := uc.employees.ListActiveWithPIN(ctx, companyID)
	if err != nil {
		return "", fmt.Errorf("auth: listar empleados: %w", err)
	}
	for _, e := range candidates {
		if !e.IsActive || e.PINHash == "" {
			continue
		}
		if MatchSecret(e.PINHash, pin) {
			return e.ID, nil
		}
	}
	return "", domain.ErrInvalidCredentials
}

// Login autentica el PIN y emite la sesión con el perfil del empleado.
func (uc *PINAuthUseCase) Login(ctx context.Context, in dto.PINLoginRequest) (*dto.PINLoginResponse, error) {
	employeeID, err := uc.Authenticate(ctx, in.PIN, in.CompanyID)
	if err != nil {
		return nil, err
	}
	issued, err := uc.sessions.Issue(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	return &dto.PINLoginResponse{
		Success:      true,
		SessionToken: issued.Token,
		ExpiresAt:    issued.Context.ExpiresAt,
		Employee:     issued.Context.Profile(),
	}, nil
}

package auth

import (
	"context"
	"strings"

	"github.com/jhoicas/hotel-ops-api/internal/application/dto"
	"github.com/jhoicas/hotel-ops-api/internal/domain"
	"github.com/jhoicas/hotel-ops-api/internal/domain/repository"
	"github.com/jhoicas/hotel-ops-api/pkg/jwt"
)

// AdminAuthUseCase login de consola (email + contraseña) para roles admin y manager.
type AdminAuthUseCase struct {
	employees  repository.EmployeeRepository
	jwtSecret  string
	jwtIssuer  string
	expMinutes int
}

// NewAdminAuthUseCase construye el caso de uso.
func NewAdminAuthUseCase(employees repository.EmployeeRepository, jwtSecret, jwtIssuer string, expMinutes int) *AdminAuthUseCase {
	return &AdminAuthUseCase{
		employees:  employees,
		jwtSecret:  jwtSecret,
		jwtIssuer:  jwtIssuer,
		expMinutes: expMinutes,
	}
}

// Login valida credenciales y devuelve un JWT. Cualquier falla es ErrInvalidCredentials.
func (uc *AdminAuthUseCase) Login(ctx context.Context, in dto.AdminLoginRequest) (*dto.AdminLoginResponse, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	emp, err := uc.employees.FindActiveByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if emp == nil || !emp.IsElevated() || !MatchSecret(emp.PasswordHash, in.Password) {
		return nil, domain.ErrInvalidCredentials
	}
	token, exp, err := jwt.Generate(uc.jwtSecret, emp.ID, emp.CompanyID, emp.Role, uc.jwtIssuer, uc.expMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.AdminLoginResponse{
		Success:   true,
		Token:     token,
		ExpiresAt: exp,
		Role:      emp.Role,
		CompanyID: emp.CompanyID,
	}, nil
}

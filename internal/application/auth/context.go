package auth

import (
	"time"

	"github.com/jhoicas/hotel-ops-api/internal/application/dto"
	"github.com/jhoicas/hotel-ops-api/internal/domain/entity"
)

// SessionContext resultado de verificar un token: la sesión viva, su empleado y sus áreas activas.
// Es el objeto a través del cual se decide en qué áreas puede escribir el empleado.
type SessionContext struct {
	SessionID    string
	Employee     *entity.Employee
	Areas        []*entity.Area
	ExpiresAt    time.Time
	LastActivity time.Time
}

// CompanyID empresa del empleado de la sesión.
func (s *SessionContext) CompanyID() string {
	return s.Employee.CompanyID
}

// AuthorizedArea devuelve el área si el empleado es miembro de ella.
func (s *SessionContext) AuthorizedArea(areaID string) (*entity.Area, bool) {
	for _, a := range s.Areas {
		if a.ID == areaID {
			return a, true
		}
	}
	return nil, false
}

// FirstAreaOfType primera área autorizada del tipo indicado.
func (s *SessionContext) FirstAreaOfType(areaType string) (*entity.Area, bool) {
	for _, a := range s.Areas {
		if a.Type == areaType {
			return a, true
		}
	}
	return nil, false
}

// Profile perfil público del empleado con sus áreas.
func (s *SessionContext) Profile() dto.EmployeeProfile {
	return toEmployeeProfile(s.Employee, s.Areas)
}

func toEmployeeProfile(e *entity.Employee, areas []*entity.Area) dto.EmployeeProfile {
	out := dto.EmployeeProfile{
		ID:        e.ID,
		FullName:  e.FullName,
		CompanyID: e.CompanyID,
		Areas:     make([]dto.AreaResponse, 0, len(areas)),
	}
	for _, a := range areas {
		out.Areas = append(out.Areas, dto.AreaResponse{ID: a.ID, Name: a.Name, Type: a.Type})
	}
	return out
}

package entity

import "time"

// Roles válidos para Employee.
const (
	RoleEmployee = "employee"
	RoleManager  = "manager"
	RoleAdmin    = "admin"
)

// Employee representa un colaborador que se identifica con PIN en una terminal compartida.
// Nunca se borra en operación normal: desactivar (IsActive=false) es su estado terminal.
type Employee struct {
	ID           string
	CompanyID    string
	FullName     string
	Email        string // solo para acceso a consola (admin/manager)
	PINHash      string // bcrypt del PIN numérico
	PasswordHash string // bcrypt de la contraseña de consola; vacío si no tiene acceso
	Role         string
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsElevated informa si el rol puede entrar a la consola de administración.
func (e *Employee) IsElevated() bool {
	return e.Role == RoleAdmin || e.Role == RoleManager
}

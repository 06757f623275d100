package dto

import "time"

// PINLoginRequest body de POST /api/auth/pin.
// CompanyID es un prefiltro opcional: restringe la búsqueda del PIN a una empresa.
type PINLoginRequest struct {
	PIN       string `json:"pin" validate:"required,number,min=4,max=8"`
	CompanyID string `json:"companyId,omitempty" validate:"omitempty,uuid"`
}

// AreaResponse área autorizada de un empleado.
type AreaResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"`
}

// EmployeeProfile perfil devuelto al iniciar o verificar sesión.
type EmployeeProfile struct {
	ID        string         `json:"id"`
	FullName  string         `json:"fullName"`
	CompanyID string         `json:"companyId"`
	Areas     []AreaResponse `json:"areas"`
}

// PINLoginResponse salida del login por PIN. El token solo se entrega aquí.
type PINLoginResponse struct {
	Success      bool            `json:"success"`
	SessionToken string          `json:"sessionToken"`
	ExpiresAt    time.Time       `json:"expiresAt"`
	Employee     EmployeeProfile `json:"employee"`
}

// SessionResponse salida de GET /api/auth/session.
type SessionResponse struct {
	Success      bool            `json:"success"`
	ExpiresAt    time.Time       `json:"expiresAt"`
	LastActivity time.Time       `json:"lastActivity"`
	Employee     EmployeeProfile `json:"employee"`
}

// AdminLoginRequest body de POST /api/admin/auth/login.
type AdminLoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AdminLoginResponse token JWT de consola.
type AdminLoginResponse struct {
	Success   bool      `json:"success"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
	Role      string    `json:"role"`
	CompanyID string    `json:"companyId"`
}

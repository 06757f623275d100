package entity

import "time"

// Session autorización acotada en el tiempo de un Employee en una terminal.
// Solo se guarda el hash del token; el token en claro se entrega una única vez al emitirla.
type Session struct {
	ID           string
	EmployeeID   string
	TokenHash    string
	ExpiresAt    time.Time
	IsActive     bool
	LastActivity time.Time
	CreatedAt    time.Time
}

// IsLiveAt informa si la sesión está activa y no expirada en t. Expirada exactamente en ExpiresAt.
func (s *Session) IsLiveAt(t time.Time) bool {
	return s.IsActive && s.ExpiresAt.After(t)
}

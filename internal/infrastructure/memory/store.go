// Package memory implementa los puertos de repositorio en memoria de proceso.
// Sirve al driver STORAGE_DRIVER=memory (demo, desarrollo local) y como doble de pruebas.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/jhoicas/hotel-ops-api/internal/domain"
	"github.com/jhoicas/hotel-ops-api/internal/domain/entity"
)

// Store estado compartido de todos los repositorios en memoria.
type Store struct {
	mu          sync.RWMutex
	companies   map[string]entity.Company
	employees   map[string]entity.Employee
	areas       map[string]entity.Area
	memberships map[string]map[string]struct{} // employeeID -> areaIDs
	items       map[string]entity.CatalogItem
	sessions    map[string]entity.Session
	events      []entity.OperationalEvent
}

// NewStore crea un almacén vacío.
func NewStore() *Store {
	return &Store{
		companies:   make(map[string]entity.Company),
		employees:   make(map[string]entity.Employee),
		areas:       make(map[string]entity.Area),
		memberships: make(map[string]map[string]struct{}),
		items:       make(map[string]entity.CatalogItem),
		sessions:    make(map[string]entity.Session),
	}
}

// AddCompany registra una empresa.
func (s *Store) AddCompany(c entity.Company) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.companies[c.ID] = c
}

// AddEmployee registra o reemplaza un empleado.
func (s *Store) AddEmployee(e entity.Employee) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.employees[e.ID] = e
}

// AddArea registra o reemplaza un área.
func (s *Store) AddArea(a entity.Area) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.areas[a.ID] = a
}

// AddMembership vincula un empleado con un área.
func (s *Store) AddMembership(employeeID, areaID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	set, ok := s.memberships[employeeID]
	if !ok {
		set = make(map[string]struct{})
		s.memberships[employeeID] = set
	}
	set[areaID] = struct{}{}
}

// AddCatalogItem registra un ítem de catálogo.
func (s *Store) AddCatalogItem(it entity.CatalogItem) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[it.ID] = it
}

// SetEmployeeActive activa o desactiva un empleado.
func (s *Store) SetEmployeeActive(employeeID string, active bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.employees[employeeID]
	if !ok {
		return domain.ErrNotFound
	}
	e.IsActive = active
	s.employees[employeeID] = e
	return nil
}

// SetAreaActive activa o desactiva un área.
func (s *Store) SetAreaActive(areaID string, active bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.areas[areaID]
	if !ok {
		return domain.ErrNotFound
	}
	a.IsActive = active
	s.areas[areaID] = a
	return nil
}

// SessionsOf copia de todas las sesiones de un empleado (inspección en pruebas).
func (s *Store) SessionsOf(employeeID string) []entity.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []entity.Session
	for _, ss := range s.sessions {
		if ss.EmployeeID == employeeID {
			out = append(out, ss)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out
}

// EventCount número de eventos del ledger.
func (s *Store) EventCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.events)
}

// Ping siempre disponible; mantiene la firma del health check de Postgres.
func (s *Store) Ping(ctx context.Context) error {
	return ctx.Err()
}

func cloneEvent(e entity.OperationalEvent) *entity.OperationalEvent {
	out := e
	out.Details = make([]entity.EventDetail, len(e.Details))
	for i, d := range e.Details {
		out.Details[i] = d
		if d.CatalogItemID != nil {
			id := *d.CatalogItemID
			out.Details[i].CatalogItemID = &id
		}
		if d.Metadata != nil {
			md := make(map[string]any, len(d.Metadata))
			for k, v := range d.Metadata {
				md[k] = v
			}
			out.Details[i].Metadata = md
		}
	}
	return &out
}

func sameEmail(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}

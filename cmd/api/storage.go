package main

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/hotel-ops-api/internal/application/auth"
	"github.com/jhoicas/hotel-ops-api/internal/domain/entity"
	"github.com/jhoicas/hotel-ops-api/internal/domain/repository"
	"github.com/jhoicas/hotel-ops-api/internal/infrastructure/memory"
	"github.com/jhoicas/hotel-ops-api/internal/infrastructure/postgres"
	"github.com/jhoicas/hotel-ops-api/pkg/config"
	"github.com/jhoicas/hotel-ops-api/pkg/logger"
)

// txRunner une las dos transacciones que necesitan los casos de uso.
type txRunner interface {
	Run(ctx context.Context, fn func(events repository.EventRepository) error) error
	RunSessions(ctx context.Context, fn func(sessions repository.SessionRepository) error) error
}

// storage repositorios del driver elegido por STORAGE_DRIVER.
type storage struct {
	tx        txRunner
	companies repository.CompanyRepository
	employees repository.EmployeeRepository
	areas     repository.AreaRepository
	catalog   repository.CatalogItemRepository
	sessions  repository.SessionRepository
	events    repository.EventRepository
	sums      repository.BottleneckRepository
	ping      func(ctx context.Context) error
	close     func()
}

func openStorage(ctx context.Context, cfg *config.Config, log *logger.Logger) (*storage, error) {
	if cfg.App.Storage == config.StorageMemory {
		store := memory.NewStore()
		if err := seedDemo(store, time.Now()); err != nil {
			return nil, fmt.Errorf("datos demo: %w", err)
		}
		log.Warn().Msg("STORAGE_DRIVER=memory: los datos se pierden al reiniciar")
		return &storage{
			tx:        memory.NewTxRunner(store),
			companies: memory.NewCompanyRepo(store),
			employees: memory.NewEmployeeRepo(store),
			areas:     memory.NewAreaRepo(store),
			catalog:   memory.NewCatalogItemRepo(store),
			sessions:  memory.NewSessionRepo(store),
			events:    memory.NewEventRepo(store),
			sums:      memory.NewBottleneckRepo(store),
			ping:      store.Ping,
			close:     func() {},
		}, nil
	}

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, fmt.Errorf("conexión a PostgreSQL: %w", err)
	}
	return &storage{
		tx:        postgres.NewTxRunner(pool),
		companies: postgres.NewCompanyRepository(pool),
		employees: postgres.NewEmployeeRepository(pool),
		areas:     postgres.NewAreaRepository(pool),
		catalog:   postgres.NewCatalogItemRepository(pool),
		sessions:  postgres.NewSessionRepository(pool),
		events:    postgres.NewEventRepository(pool),
		sums:      postgres.NewBottleneckRepository(pool),
		ping:      pool.Ping,
		close:     pool.Close,
	}, nil
}

// seedDemo carga un hotel de ejemplo para el driver en memoria.
// PINs: 1234 (piso), 5678 (lavandería); consola: admin@demo.local / admin123.
func seedDemo(store *memory.Store, now time.Time) error {
	companyID := uuid.NewString()
	piso := uuid.NewString()
	lavanderia := uuid.NewString()

	store.AddCompany(entity.Company{ID: companyID, Name: "Hotel Demo", Status: entity.CompanyStatusActive, CreatedAt: now})
	store.AddArea(entity.Area{ID: piso, CompanyID: companyID, Name: "Piso 1", Type: entity.AreaTypeSource, IsActive: true, CreatedAt: now})
	store.AddArea(entity.Area{ID: lavanderia, CompanyID: companyID, Name: "Lavandería", Type: entity.AreaTypeProcessor, IsActive: true, CreatedAt: now})
	for _, name := range []string{"Sábana King", "Toalla de baño", "Funda de almohada"} {
		store.AddCatalogItem(entity.CatalogItem{ID: uuid.NewString(), CompanyID: companyID, Name: name, Unit: "pieza", IsActive: true, CreatedAt: now})
	}

	people := []struct {
		name, pin, email, password, role string
		areas                            []string
	}{
		{name: "Camarera Piso 1", pin: "1234", role: entity.RoleEmployee, areas: []string{piso}},
		{name: "Operador Lavandería", pin: "5678", role: entity.RoleEmployee, areas: []string{lavanderia}},
		{name: "Administrador Demo", pin: "9012", email: "admin@demo.local", password: "admin123", role: entity.RoleAdmin, areas: []string{piso, lavanderia}},
	}
	for i, p := range people {
		pinHash, err := auth.HashSecret(p.pin)
		if err != nil {
			return err
		}
		var passwordHash string
		if p.password != "" {
			if passwordHash, err = auth.HashSecret(p.password); err != nil {
				return err
			}
		}
		id := uuid.NewString()
		store.AddEmployee(entity.Employee{
			ID: id, CompanyID: companyID, FullName: p.name, Email: p.email,
			PINHash: pinHash, PasswordHash: passwordHash, Role: p.role, IsActive: true,
			CreatedAt: now.Add(time.Duration(i) * time.Second),
		})
		for _, areaID := range p.areas {
			store.AddMembership(id, areaID)
		}
	}
	return nil
}

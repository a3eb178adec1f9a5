package postgresql

import (
	"context"
	"fmt"

	"github.com/praxisapp/praxis/internal/domain/repositories"
	"github.com/praxisapp/praxis/internal/infrastructure/database"
)

// Repositories holds all repository implementations.
type Repositories struct {
	Users     repositories.UserRepository
	Clients   repositories.ClientRepository
	Documents repositories.DocumentRepository
	Contracts repositories.ContractRepository
	Projects  repositories.ProjectRepository
	Tasks     repositories.TaskRepository
	Dashboard repositories.DashboardRepository

	db *database.DB
}

// NewRepositories creates the repositories container around one shared
// connection pool.
func NewRepositories(db *database.DB) *Repositories {
	return &Repositories{
		Users:     NewUserRepository(db),
		Clients:   NewClientRepository(db),
		Documents: NewDocumentRepository(db),
		Contracts: NewContractRepository(db),
		Projects:  NewProjectRepository(db),
		Tasks:     NewTaskRepository(db),
		Dashboard: NewDashboardRepository(db),
		db:        db,
	}
}

// HealthCheck verifies database connectivity.
func (r *Repositories) HealthCheck(ctx context.Context) error {
	sqlDB, err := r.db.DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}
	return nil
}

package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/praxisapp/praxis/internal/domain/query"
	"github.com/praxisapp/praxis/internal/infrastructure/database/models"
)

// ErrNotFound is returned when an entity id has no matching row.
var ErrNotFound = errors.New("not found")

// Per-entity filter sets. A nil field is an inactive filter; handlers build
// these through the query package so that empty and missing parameters are
// indistinguishable. Search fields expand to a case-insensitive contains
// match over a fixed set of text columns, OR-combined; everything else is
// AND-combined. List and Count always share one filter set: every List
// returns the unpaginated total alongside the page of rows.

type UserFilters struct {
	Search *string // name, email
	Role   *string
}

type ClientFilters struct {
	Search *string // name, email, tax_id, contact_person
	Status *string
}

type DocumentFilters struct {
	Search   *string // title, description
	Category *string
	Status   *string
	ClientID *uint
}

type ContractFilters struct {
	Search        *string // title, contract_number
	Status        *string
	ClientID      *uint
	ResponsibleID *uint
}

type ProjectFilters struct {
	Search    *string // name, description
	Status    *string
	ClientID  *uint
	ManagerID *uint
}

type TaskFilters struct {
	Status     *string
	Priority   *string
	AssignedTo *uint
}

// ProjectDetails carries the specific-detail payload for a project. At most
// one variant is consulted, selected by the project's TypeRequirement tag.
type ProjectDetails struct {
	Maternity  *models.ProjectMaternityDetail  `json:"maternity,omitempty"`
	BPC        *models.ProjectBPCDetail        `json:"bpc,omitempty"`
	Retirement *models.ProjectRetirementDetail `json:"retirement,omitempty"`
}

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	List(ctx context.Context, filters UserFilters, page query.Page) ([]models.User, int64, error)
	Update(ctx context.Context, user *models.User) error
	UpdatePassword(ctx context.Context, id uint, passwordHash string) error
	Delete(ctx context.Context, id uint) error
}

type ClientRepository interface {
	Create(ctx context.Context, client *models.Client) error
	GetByID(ctx context.Context, id uint) (*models.Client, error)
	List(ctx context.Context, filters ClientFilters, page query.Page) ([]models.Client, int64, error)
	Update(ctx context.Context, client *models.Client) error
	Delete(ctx context.Context, id uint) error

	// Sub-resource listings, unpaginated.
	Documents(ctx context.Context, clientID uint) ([]models.Document, error)
	Contracts(ctx context.Context, clientID uint) ([]models.Contract, error)
	Projects(ctx context.Context, clientID uint) ([]models.Project, error)
}

type DocumentRepository interface {
	Create(ctx context.Context, document *models.Document) error
	GetByID(ctx context.Context, id uint) (*models.Document, error)
	List(ctx context.Context, filters DocumentFilters, page query.Page) ([]models.Document, int64, error)
	Update(ctx context.Context, document *models.Document) error
	Delete(ctx context.Context, id uint) error
}

type ContractRepository interface {
	Create(ctx context.Context, contract *models.Contract) error
	GetByID(ctx context.Context, id uint) (*models.Contract, error)
	List(ctx context.Context, filters ContractFilters, page query.Page) ([]models.Contract, int64, error)
	Update(ctx context.Context, contract *models.Contract) error
	Delete(ctx context.Context, id uint) error

	// ExpiringWithin returns active contracts whose end date falls inside the
	// next d days.
	ExpiringWithin(ctx context.Context, d time.Duration) ([]models.Contract, error)
}

type ProjectRepository interface {
	Create(ctx context.Context, project *models.Project) error
	GetByID(ctx context.Context, id uint) (*models.Project, error)
	List(ctx context.Context, filters ProjectFilters, page query.Page) ([]models.Project, int64, error)
	Update(ctx context.Context, project *models.Project) error
	Delete(ctx context.Context, id uint) error

	// ReplaceDetails reconciles the specific-detail child row: the row
	// matching req is created or updated, rows of the other categories are
	// deleted. A nil req removes all detail rows.
	ReplaceDetails(ctx context.Context, projectID uint, req *models.RequirementType, details ProjectDetails) error
	GetDetails(ctx context.Context, projectID uint) (ProjectDetails, error)
	UpdateProgress(ctx context.Context, projectID uint, progress int) error
}

type TaskRepository interface {
	Create(ctx context.Context, task *models.ProjectTask) error
	GetByID(ctx context.Context, id uint) (*models.ProjectTask, error)
	ListByProject(ctx context.Context, projectID uint, filters TaskFilters) ([]models.ProjectTask, error)
	Update(ctx context.Context, task *models.ProjectTask) error
	Delete(ctx context.Context, id uint) error

	// CountByProject returns total and completed task counts for a project.
	CountByProject(ctx context.Context, projectID uint) (total, completed int64, err error)
	// Overdue returns incomplete tasks whose due date has passed.
	Overdue(ctx context.Context) ([]models.ProjectTask, error)
}

// DashboardStats aggregates the read-only counters shown on the dashboard.
type DashboardStats struct {
	ActiveClients       int64                             `json:"clients"`
	ActiveDocuments     int64                             `json:"documents"`
	OpenContracts       int64                             `json:"contracts"`
	OpenProjects        int64                             `json:"projects"`
	ExpiringContracts   int64                             `json:"expiring_contracts"`
	OverdueTasks        int64                             `json:"overdue_tasks"`
	ProjectsByStatus    map[models.ProjectStatus]int64    `json:"projects_by_status"`
	DocumentsByCategory map[models.DocumentCategory]int64 `json:"documents_by_category"`
	RecentDocuments     []models.Document                 `json:"recent_documents"`
}

// DashboardActivity lists the most recent records across the firm, newest
// first within each collection.
type DashboardActivity struct {
	Documents []models.Document    `json:"documents"`
	Contracts []models.Contract    `json:"contracts"`
	Tasks     []models.ProjectTask `json:"tasks"`
}

type DashboardRepository interface {
	Stats(ctx context.Context) (*DashboardStats, error)
	RecentActivity(ctx context.Context) (*DashboardActivity, error)
}

package models

import (
	"time"
)

// Closed enum types. Unknown values are rejected at the request-binding
// boundary; repositories assume members of these sets.
type UserRole string
type ClientStatus string
type DocumentCategory string
type DocumentStatus string
type ContractStatus string
type ProjectStatus string
type TaskStatus string
type TaskPriority string
type RequirementType string

const (
	// User roles
	UserRoleAdmin UserRole = "admin"
	UserRoleUser  UserRole = "user"

	// Client status
	ClientActive   ClientStatus = "active"
	ClientInactive ClientStatus = "inactive"

	// Document categories
	DocCategoryContract DocumentCategory = "contract"
	DocCategoryProposal DocumentCategory = "proposal"
	DocCategoryInvoice  DocumentCategory = "invoice"
	DocCategoryReport   DocumentCategory = "report"
	DocCategoryOther    DocumentCategory = "other"

	// Document status
	DocStatusDraft    DocumentStatus = "draft"
	DocStatusActive   DocumentStatus = "active"
	DocStatusArchived DocumentStatus = "archived"

	// Contract status
	ContractDraft     ContractStatus = "draft"
	ContractPending   ContractStatus = "pending"
	ContractActive    ContractStatus = "active"
	ContractCompleted ContractStatus = "completed"
	ContractCancelled ContractStatus = "cancelled"

	// Project status
	ProjectPlanning   ProjectStatus = "planning"
	ProjectInProgress ProjectStatus = "in_progress"
	ProjectOnHold     ProjectStatus = "on_hold"
	ProjectCompleted  ProjectStatus = "completed"
	ProjectCancelled  ProjectStatus = "cancelled"

	// Task status
	TaskToDo       TaskStatus = "to_do"
	TaskInProgress TaskStatus = "in_progress"
	TaskReview     TaskStatus = "review"
	TaskCompleted  TaskStatus = "completed"

	// Task priority
	PriorityLow    TaskPriority = "low"
	PriorityMedium TaskPriority = "medium"
	PriorityHigh   TaskPriority = "high"
	PriorityUrgent TaskPriority = "urgent"

	// Project requirement types, each selecting one specific-detail child table
	RequirementMaternity  RequirementType = "salario_maternidade"
	RequirementBPC        RequirementType = "bpc_loas"
	RequirementRetirement RequirementType = "aposentadoria"
)

type User struct {
	ID           uint     `json:"id" gorm:"primaryKey"`
	Name         string   `json:"name" gorm:"type:varchar(255);not null"`
	Email        string   `json:"email" gorm:"type:varchar(320);uniqueIndex;not null"`
	PasswordHash string   `json:"-" gorm:"type:varchar(255);not null"`
	Role         UserRole `json:"role" gorm:"type:varchar(20);not null;default:'user'"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Client struct {
	ID            uint         `json:"id" gorm:"primaryKey"`
	Name          string       `json:"name" gorm:"type:varchar(255);not null;index"`
	Email         string       `json:"email" gorm:"type:varchar(320)"`
	Phone         string       `json:"phone" gorm:"type:varchar(30)"`
	TaxID         string       `json:"tax_id" gorm:"column:tax_id;type:varchar(20)"`
	Address       string       `json:"address" gorm:"type:text"`
	ContactPerson string       `json:"contact_person" gorm:"type:varchar(255)"`
	Status        ClientStatus `json:"status" gorm:"type:varchar(20);not null;default:'active';index"`
	Notes         string       `json:"notes" gorm:"type:text"`
	CreatedBy     *uint        `json:"created_by" gorm:"index"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Creator *User `json:"creator,omitempty" gorm:"foreignKey:CreatedBy"`
}

type Document struct {
	ID          uint             `json:"id" gorm:"primaryKey"`
	Title       string           `json:"title" gorm:"type:varchar(255);not null"`
	Description string           `json:"description" gorm:"type:text"`
	FilePath    string           `json:"file_path" gorm:"type:varchar(500);not null"`
	FileType    string           `json:"file_type" gorm:"type:varchar(100);not null"`
	FileSize    int64            `json:"file_size" gorm:"not null"`
	Category    DocumentCategory `json:"category" gorm:"type:varchar(20);not null;index"`
	Status      DocumentStatus   `json:"status" gorm:"type:varchar(20);not null;default:'active';index"`
	ClientID    *uint            `json:"client_id" gorm:"index"`
	UploadedBy  *uint            `json:"uploaded_by" gorm:"index"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Client   *Client `json:"client,omitempty" gorm:"foreignKey:ClientID"`
	Uploader *User   `json:"uploader,omitempty" gorm:"foreignKey:UploadedBy"`
}

type Contract struct {
	ID             uint           `json:"id" gorm:"primaryKey"`
	Title          string         `json:"title" gorm:"type:varchar(255);not null"`
	ContractNumber string         `json:"contract_number" gorm:"type:varchar(30);uniqueIndex;not null"`
	Description    string         `json:"description" gorm:"type:text"`
	ClientID       uint           `json:"client_id" gorm:"not null;index"`
	StartDate      *time.Time     `json:"start_date" gorm:"index"`
	EndDate        *time.Time     `json:"end_date" gorm:"index"`
	Value          float64        `json:"value" gorm:"type:decimal(15,2)"`
	Status         ContractStatus `json:"status" gorm:"type:varchar(20);not null;default:'draft';index"`
	DocumentID     *uint          `json:"document_id" gorm:"index"`
	ResponsibleID  *uint          `json:"responsible_id" gorm:"index"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Client      *Client   `json:"client,omitempty" gorm:"foreignKey:ClientID"`
	Document    *Document `json:"document,omitempty" gorm:"foreignKey:DocumentID"`
	Responsible *User     `json:"responsible,omitempty" gorm:"foreignKey:ResponsibleID"`
}

type Project struct {
	ID              uint             `json:"id" gorm:"primaryKey"`
	Name            string           `json:"name" gorm:"type:varchar(255);not null"`
	Description     string           `json:"description" gorm:"type:text"`
	ClientID        uint             `json:"client_id" gorm:"not null;index"`
	ContractID      *uint            `json:"contract_id" gorm:"index"`
	StartDate       *time.Time       `json:"start_date"`
	Deadline        *time.Time       `json:"deadline" gorm:"index"`
	Status          ProjectStatus    `json:"status" gorm:"type:varchar(20);not null;default:'planning';index"`
	Progress        int              `json:"progress" gorm:"not null;default:0"`
	ManagerID       *uint            `json:"manager_id" gorm:"index"`
	TypeRequirement *RequirementType `json:"type_requirement" gorm:"type:varchar(30)"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Client   *Client       `json:"client,omitempty" gorm:"foreignKey:ClientID"`
	Contract *Contract     `json:"contract,omitempty" gorm:"foreignKey:ContractID"`
	Manager  *User         `json:"manager,omitempty" gorm:"foreignKey:ManagerID"`
	Tasks    []ProjectTask `json:"tasks,omitempty" gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE"`
}

type ProjectTask struct {
	ID          uint         `json:"id" gorm:"primaryKey"`
	ProjectID   uint         `json:"project_id" gorm:"not null;index"`
	Title       string       `json:"title" gorm:"type:varchar(255);not null"`
	Description string       `json:"description" gorm:"type:text"`
	Status      TaskStatus   `json:"status" gorm:"type:varchar(20);not null;default:'to_do';index"`
	Priority    TaskPriority `json:"priority" gorm:"type:varchar(10);not null;default:'medium'"`
	AssignedTo  *uint        `json:"assigned_to" gorm:"index"`
	StartDate   *time.Time   `json:"start_date"`
	DueDate     *time.Time   `json:"due_date" gorm:"index"`
	CompletedAt *time.Time   `json:"completed_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Project  *Project `json:"project,omitempty" gorm:"foreignKey:ProjectID"`
	Assignee *User    `json:"assignee,omitempty" gorm:"foreignKey:AssignedTo"`
}

// Specific-detail child records. A project carries at most one, selected by
// its TypeRequirement tag; one row per project.

type ProjectMaternityDetail struct {
	ID         uint   `json:"id" gorm:"primaryKey"`
	ProjectID  uint   `json:"project_id" gorm:"uniqueIndex;not null"`
	Occupation string `json:"occupation" gorm:"type:varchar(255)"`
	ChildYear  *int   `json:"child_year"`
	Fees       string `json:"fees" gorm:"type:varchar(100)"`
	Court      string `json:"court" gorm:"type:varchar(255)"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type ProjectBPCDetail struct {
	ID                   uint       `json:"id" gorm:"primaryKey"`
	ProjectID            uint       `json:"project_id" gorm:"uniqueIndex;not null"`
	DisabilityType       string     `json:"disability_type" gorm:"type:varchar(255)"`
	AssessmentDate       *time.Time `json:"assessment_date"`
	SocialAssessmentDate *time.Time `json:"social_assessment_date"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type ProjectRetirementDetail struct {
	ID             uint   `json:"id" gorm:"primaryKey"`
	ProjectID      uint   `json:"project_id" gorm:"uniqueIndex;not null"`
	RetirementType string `json:"retirement_type" gorm:"type:varchar(100)"`
	CaseNumber     string `json:"case_number" gorm:"type:varchar(100)"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// GetAllModels returns every model for migration.
func GetAllModels() []interface{} {
	return []interface{}{
		&User{},
		&Client{},
		&Document{},
		&Contract{},
		&Project{},
		&ProjectTask{},
		&ProjectMaternityDetail{},
		&ProjectBPCDetail{},
		&ProjectRetirementDetail{},
	}
}

package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/praxisapp/praxis/internal/domain/query"
	"github.com/praxisapp/praxis/internal/domain/repositories"
	"github.com/praxisapp/praxis/internal/domain/services"
	"github.com/praxisapp/praxis/internal/infrastructure/database/models"
	"github.com/praxisapp/praxis/pkg/logger"
)

// ProjectHandler serves projects, their specific-detail payload and the
// nested task endpoints. Progress is recomputed after every task mutation.
type ProjectHandler struct {
	projectService *services.ProjectService
	projectRepo    repositories.ProjectRepository
	taskRepo       repositories.TaskRepository
	dashboard      *services.DashboardService
	logger         *logger.Logger
}

func NewProjectHandler(
	projectService *services.ProjectService,
	projectRepo repositories.ProjectRepository,
	taskRepo repositories.TaskRepository,
	dashboard *services.DashboardService,
	logger *logger.Logger,
) *ProjectHandler {
	return &ProjectHandler{
		projectService: projectService,
		projectRepo:    projectRepo,
		taskRepo:       taskRepo,
		dashboard:      dashboard,
		logger:         logger,
	}
}

type maternityDetailPayload struct {
	Occupation string `json:"occupation"`
	ChildYear  *int   `json:"child_year"`
	Fees       string `json:"fees"`
	Court      string `json:"court"`
}

type bpcDetailPayload struct {
	DisabilityType       string     `json:"disability_type"`
	AssessmentDate       *time.Time `json:"assessment_date"`
	SocialAssessmentDate *time.Time `json:"social_assessment_date"`
}

type retirementDetailPayload struct {
	RetirementType string `json:"retirement_type"`
	CaseNumber     string `json:"case_number"`
}

type projectDetailsPayload struct {
	Maternity  *maternityDetailPayload  `json:"maternity"`
	BPC        *bpcDetailPayload        `json:"bpc"`
	Retirement *retirementDetailPayload `json:"retirement"`
}

type projectRequest struct {
	Name            string                  `json:"name" binding:"required"`
	Description     string                  `json:"description"`
	ClientID        uint                    `json:"client_id" binding:"required"`
	ContractID      *uint                   `json:"contract_id"`
	StartDate       *time.Time              `json:"start_date"`
	Deadline        *time.Time              `json:"deadline"`
	Status          models.ProjectStatus    `json:"status" binding:"omitempty,oneof=planning in_progress on_hold completed cancelled"`
	ManagerID       *uint                   `json:"manager_id"`
	TypeRequirement *models.RequirementType `json:"type_requirement" binding:"omitempty,oneof=salario_maternidade bpc_loas aposentadoria"`
	Details         *projectDetailsPayload  `json:"details"`
}

func (p *projectRequest) domainDetails(projectID uint) repositories.ProjectDetails {
	var details repositories.ProjectDetails
	if p.Details == nil {
		return details
	}
	if m := p.Details.Maternity; m != nil {
		details.Maternity = &models.ProjectMaternityDetail{
			ProjectID:  projectID,
			Occupation: m.Occupation,
			ChildYear:  m.ChildYear,
			Fees:       m.Fees,
			Court:      m.Court,
		}
	}
	if b := p.Details.BPC; b != nil {
		details.BPC = &models.ProjectBPCDetail{
			ProjectID:            projectID,
			DisabilityType:       b.DisabilityType,
			AssessmentDate:       b.AssessmentDate,
			SocialAssessmentDate: b.SocialAssessmentDate,
		}
	}
	if r := p.Details.Retirement; r != nil {
		details.Retirement = &models.ProjectRetirementDetail{
			ProjectID:      projectID,
			RetirementType: r.RetirementType,
			CaseNumber:     r.CaseNumber,
		}
	}
	return details
}

func (h *ProjectHandler) List(c *gin.Context) {
	filters := repositories.ProjectFilters{
		Search:    query.String(c.Query("search")),
		Status:    query.String(c.Query("status")),
		ClientID:  query.ID(c.Query("client_id")),
		ManagerID: query.ID(c.Query("manager_id")),
	}
	page := parsePage(c)

	projects, total, err := h.projectRepo.List(c.Request.Context(), filters, page)
	if err != nil {
		respondRepoError(c, h.logger, err, "Project not found")
		return
	}
	respondList(c, "projects", projects, NewPagination(page, total))
}

func (h *ProjectHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	project, err := h.projectRepo.GetByID(c.Request.Context(), id)
	if err != nil {
		respondRepoError(c, h.logger, err, "Project not found")
		return
	}

	details, err := h.projectRepo.GetDetails(c.Request.Context(), id)
	if err != nil {
		respondRepoError(c, h.logger, err, "Project not found")
		return
	}

	respondOK(c, gin.H{"project": project, "details": details})
}

func (h *ProjectHandler) Create(c *gin.Context) {
	var req projectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	status := req.Status
	if status == "" {
		status = models.ProjectPlanning
	}

	project := &models.Project{
		Name:            req.Name,
		Description:     req.Description,
		ClientID:        req.ClientID,
		ContractID:      req.ContractID,
		StartDate:       req.StartDate,
		Deadline:        req.Deadline,
		Status:          status,
		ManagerID:       req.ManagerID,
		TypeRequirement: req.TypeRequirement,
	}

	if err := h.projectRepo.Create(c.Request.Context(), project); err != nil {
		respondRepoError(c, h.logger, err, "Project not found")
		return
	}

	if req.TypeRequirement != nil && req.Details != nil {
		err := h.projectService.SaveDetails(c.Request.Context(), project.ID, req.TypeRequirement, req.domainDetails(project.ID))
		if err != nil {
			if errors.Is(err, services.ErrDetailMismatch) {
				respondError(c, http.StatusBadRequest, "Details do not match the requirement type")
				return
			}
			respondRepoError(c, h.logger, err, "Project not found")
			return
		}
	}

	h.dashboard.Invalidate(c.Request.Context())
	respondCreated(c, "Project created", gin.H{"project": project})
}

func (h *ProjectHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	project, err := h.projectRepo.GetByID(c.Request.Context(), id)
	if err != nil {
		respondRepoError(c, h.logger, err, "Project not found")
		return
	}

	var req projectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	project.Name = req.Name
	project.Description = req.Description
	project.ClientID = req.ClientID
	project.ContractID = req.ContractID
	project.StartDate = req.StartDate
	project.Deadline = req.Deadline
	if req.Status != "" {
		project.Status = req.Status
	}
	project.ManagerID = req.ManagerID
	project.TypeRequirement = req.TypeRequirement

	if err := h.projectRepo.Update(c.Request.Context(), project); err != nil {
		respondRepoError(c, h.logger, err, "Project not found")
		return
	}

	// Switching the requirement type drops the old category's detail row.
	err = h.projectService.SaveDetails(c.Request.Context(), project.ID, req.TypeRequirement, req.domainDetails(project.ID))
	if err != nil {
		if errors.Is(err, services.ErrDetailMismatch) {
			respondError(c, http.StatusBadRequest, "Details do not match the requirement type")
			return
		}
		respondRepoError(c, h.logger, err, "Project not found")
		return
	}

	h.dashboard.Invalidate(c.Request.Context())
	respondOK(c, gin.H{"project": project})
}

func (h *ProjectHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.projectRepo.Delete(c.Request.Context(), id); err != nil {
		respondRepoError(c, h.logger, err, "Project not found")
		return
	}
	h.dashboard.Invalidate(c.Request.Context())
	respondMessage(c, "Project deleted")
}

type taskRequest struct {
	Title       string              `json:"title" binding:"required"`
	Description string              `json:"description"`
	Status      models.TaskStatus   `json:"status" binding:"omitempty,oneof=to_do in_progress review completed"`
	Priority    models.TaskPriority `json:"priority" binding:"omitempty,oneof=low medium high urgent"`
	AssignedTo  *uint               `json:"assigned_to"`
	StartDate   *time.Time          `json:"start_date"`
	DueDate     *time.Time          `json:"due_date"`
}

func (h *ProjectHandler) ListTasks(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if _, err := h.projectRepo.GetByID(c.Request.Context(), id); err != nil {
		respondRepoError(c, h.logger, err, "Project not found")
		return
	}

	filters := repositories.TaskFilters{
		Status:     query.String(c.Query("status")),
		Priority:   query.String(c.Query("priority")),
		AssignedTo: query.ID(c.Query("assigned_to")),
	}

	tasks, err := h.taskRepo.ListByProject(c.Request.Context(), id, filters)
	if err != nil {
		respondRepoError(c, h.logger, err, "Project not found")
		return
	}
	respondOK(c, gin.H{"tasks": tasks})
}

func (h *ProjectHandler) CreateTask(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req taskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	status := req.Status
	if status == "" {
		status = models.TaskToDo
	}
	priority := req.Priority
	if priority == "" {
		priority = models.PriorityMedium
	}

	task := &models.ProjectTask{
		ProjectID:   id,
		Title:       req.Title,
		Description: req.Description,
		Status:      status,
		Priority:    priority,
		AssignedTo:  req.AssignedTo,
		StartDate:   req.StartDate,
		DueDate:     req.DueDate,
	}

	if err := h.projectService.CreateTask(c.Request.Context(), task); err != nil {
		respondRepoError(c, h.logger, err, "Project not found")
		return
	}
	h.dashboard.Invalidate(c.Request.Context())
	respondCreated(c, "Task created", gin.H{"task": task})
}

func (h *ProjectHandler) UpdateTask(c *gin.Context) {
	taskID, ok := parseIDParam(c, "taskId")
	if !ok {
		return
	}

	task, err := h.taskRepo.GetByID(c.Request.Context(), taskID)
	if err != nil {
		respondRepoError(c, h.logger, err, "Task not found")
		return
	}

	var req taskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	task.Title = req.Title
	task.Description = req.Description
	if req.Status != "" {
		task.Status = req.Status
	}
	if req.Priority != "" {
		task.Priority = req.Priority
	}
	task.AssignedTo = req.AssignedTo
	task.StartDate = req.StartDate
	task.DueDate = req.DueDate

	if err := h.projectService.UpdateTask(c.Request.Context(), task); err != nil {
		respondRepoError(c, h.logger, err, "Task not found")
		return
	}
	h.dashboard.Invalidate(c.Request.Context())
	respondOK(c, gin.H{"task": task})
}

func (h *ProjectHandler) DeleteTask(c *gin.Context) {
	taskID, ok := parseIDParam(c, "taskId")
	if !ok {
		return
	}

	if err := h.projectService.DeleteTask(c.Request.Context(), taskID); err != nil {
		respondRepoError(c, h.logger, err, "Task not found")
		return
	}
	h.dashboard.Invalidate(c.Request.Context())
	respondMessage(c, "Task deleted")
}

func (h *ProjectHandler) RegisterRoutes(rg *gin.RouterGroup) {
	projects := rg.Group("/projects")
	{
		projects.GET("", h.List)
		projects.POST("", h.Create)
		projects.GET("/:id", h.Get)
		projects.PUT("/:id", h.Update)
		projects.DELETE("/:id", h.Delete)
		projects.GET("/:id/tasks", h.ListTasks)
		projects.POST("/:id/tasks", h.CreateTask)
		projects.PUT("/tasks/:taskId", h.UpdateTask)
		projects.DELETE("/tasks/:taskId", h.DeleteTask)
	}
}

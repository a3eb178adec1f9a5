package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/praxisapp/praxis/internal/domain/query"
	"github.com/praxisapp/praxis/internal/domain/repositories"
	"github.com/praxisapp/praxis/internal/domain/services"
	"github.com/praxisapp/praxis/internal/infrastructure/database/models"
	"github.com/praxisapp/praxis/pkg/logger"
)

// ContractHandler serves the contract CRUD. Numbers are generated on
// create when the request leaves them out.
type ContractHandler struct {
	contractService *services.ContractService
	contractRepo    repositories.ContractRepository
	dashboard       *services.DashboardService
	logger          *logger.Logger
}

func NewContractHandler(contractService *services.ContractService, contractRepo repositories.ContractRepository, dashboard *services.DashboardService, logger *logger.Logger) *ContractHandler {
	return &ContractHandler{
		contractService: contractService,
		contractRepo:    contractRepo,
		dashboard:       dashboard,
		logger:          logger,
	}
}

type contractRequest struct {
	Title         string                `json:"title" binding:"required"`
	Description   string                `json:"description"`
	ClientID      uint                  `json:"client_id" binding:"required"`
	StartDate     *time.Time            `json:"start_date"`
	EndDate       *time.Time            `json:"end_date"`
	Value         float64               `json:"value"`
	Status        models.ContractStatus `json:"status" binding:"omitempty,oneof=draft pending active completed cancelled"`
	DocumentID    *uint                 `json:"document_id"`
	ResponsibleID *uint                 `json:"responsible_id"`
}

func (h *ContractHandler) List(c *gin.Context) {
	filters := repositories.ContractFilters{
		Search:        query.String(c.Query("search")),
		Status:        query.String(c.Query("status")),
		ClientID:      query.ID(c.Query("client_id")),
		ResponsibleID: query.ID(c.Query("responsible_id")),
	}
	page := parsePage(c)

	contracts, total, err := h.contractRepo.List(c.Request.Context(), filters, page)
	if err != nil {
		respondRepoError(c, h.logger, err, "Contract not found")
		return
	}
	respondList(c, "contracts", contracts, NewPagination(page, total))
}

func (h *ContractHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	contract, err := h.contractRepo.GetByID(c.Request.Context(), id)
	if err != nil {
		respondRepoError(c, h.logger, err, "Contract not found")
		return
	}
	respondOK(c, gin.H{"contract": contract})
}

func (h *ContractHandler) Create(c *gin.Context) {
	var req contractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	status := req.Status
	if status == "" {
		status = models.ContractDraft
	}

	contract := &models.Contract{
		Title:         req.Title,
		Description:   req.Description,
		ClientID:      req.ClientID,
		StartDate:     req.StartDate,
		EndDate:       req.EndDate,
		Value:         req.Value,
		Status:        status,
		DocumentID:    req.DocumentID,
		ResponsibleID: req.ResponsibleID,
	}

	if err := h.contractService.Create(c.Request.Context(), contract); err != nil {
		respondRepoError(c, h.logger, err, "Contract not found")
		return
	}
	h.dashboard.Invalidate(c.Request.Context())
	respondCreated(c, "Contract created", gin.H{"contract": contract})
}

func (h *ContractHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	contract, err := h.contractRepo.GetByID(c.Request.Context(), id)
	if err != nil {
		respondRepoError(c, h.logger, err, "Contract not found")
		return
	}

	var req contractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	contract.Title = req.Title
	contract.Description = req.Description
	contract.ClientID = req.ClientID
	contract.StartDate = req.StartDate
	contract.EndDate = req.EndDate
	contract.Value = req.Value
	if req.Status != "" {
		contract.Status = req.Status
	}
	contract.DocumentID = req.DocumentID
	contract.ResponsibleID = req.ResponsibleID

	if err := h.contractRepo.Update(c.Request.Context(), contract); err != nil {
		respondRepoError(c, h.logger, err, "Contract not found")
		return
	}
	h.dashboard.Invalidate(c.Request.Context())
	respondOK(c, gin.H{"contract": contract})
}

func (h *ContractHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.contractRepo.Delete(c.Request.Context(), id); err != nil {
		respondRepoError(c, h.logger, err, "Contract not found")
		return
	}
	h.dashboard.Invalidate(c.Request.Context())
	respondMessage(c, "Contract deleted")
}

func (h *ContractHandler) RegisterRoutes(rg *gin.RouterGroup) {
	contracts := rg.Group("/contracts")
	{
		contracts.GET("", h.List)
		contracts.POST("", h.Create)
		contracts.GET("/:id", h.Get)
		contracts.PUT("/:id", h.Update)
		contracts.DELETE("/:id", h.Delete)
	}
}

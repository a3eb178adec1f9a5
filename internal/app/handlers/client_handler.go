package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/praxisapp/praxis/internal/app/middleware"
	"github.com/praxisapp/praxis/internal/domain/query"
	"github.com/praxisapp/praxis/internal/domain/repositories"
	"github.com/praxisapp/praxis/internal/domain/services"
	"github.com/praxisapp/praxis/internal/infrastructure/database/models"
	"github.com/praxisapp/praxis/pkg/logger"
)

// ClientHandler serves the client CRUD and its sub-resource listings.
type ClientHandler struct {
	clientRepo repositories.ClientRepository
	dashboard  *services.DashboardService
	logger     *logger.Logger
}

func NewClientHandler(clientRepo repositories.ClientRepository, dashboard *services.DashboardService, logger *logger.Logger) *ClientHandler {
	return &ClientHandler{
		clientRepo: clientRepo,
		dashboard:  dashboard,
		logger:     logger,
	}
}

type clientRequest struct {
	Name          string              `json:"name" binding:"required"`
	Email         string              `json:"email" binding:"omitempty,email"`
	Phone         string              `json:"phone"`
	TaxID         string              `json:"tax_id"`
	Address       string              `json:"address"`
	ContactPerson string              `json:"contact_person"`
	Status        models.ClientStatus `json:"status" binding:"omitempty,oneof=active inactive"`
	Notes         string              `json:"notes"`
}

func (h *ClientHandler) List(c *gin.Context) {
	filters := repositories.ClientFilters{
		Search: query.String(c.Query("search")),
		Status: query.String(c.Query("status")),
	}
	page := parsePage(c)

	clients, total, err := h.clientRepo.List(c.Request.Context(), filters, page)
	if err != nil {
		respondRepoError(c, h.logger, err, "Client not found")
		return
	}
	respondList(c, "clients", clients, NewPagination(page, total))
}

func (h *ClientHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	client, err := h.clientRepo.GetByID(c.Request.Context(), id)
	if err != nil {
		respondRepoError(c, h.logger, err, "Client not found")
		return
	}
	respondOK(c, gin.H{"client": client})
}

func (h *ClientHandler) Create(c *gin.Context) {
	var req clientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	status := req.Status
	if status == "" {
		status = models.ClientActive
	}

	client := &models.Client{
		Name:          req.Name,
		Email:         req.Email,
		Phone:         req.Phone,
		TaxID:         req.TaxID,
		Address:       req.Address,
		ContactPerson: req.ContactPerson,
		Status:        status,
		Notes:         req.Notes,
	}
	if user := middleware.CurrentUser(c); user != nil {
		client.CreatedBy = &user.ID
	}

	if err := h.clientRepo.Create(c.Request.Context(), client); err != nil {
		respondRepoError(c, h.logger, err, "Client not found")
		return
	}
	h.dashboard.Invalidate(c.Request.Context())
	respondCreated(c, "Client created", gin.H{"client": client})
}

func (h *ClientHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	client, err := h.clientRepo.GetByID(c.Request.Context(), id)
	if err != nil {
		respondRepoError(c, h.logger, err, "Client not found")
		return
	}

	var req clientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	client.Name = req.Name
	client.Email = req.Email
	client.Phone = req.Phone
	client.TaxID = req.TaxID
	client.Address = req.Address
	client.ContactPerson = req.ContactPerson
	if req.Status != "" {
		client.Status = req.Status
	}
	client.Notes = req.Notes

	if err := h.clientRepo.Update(c.Request.Context(), client); err != nil {
		respondRepoError(c, h.logger, err, "Client not found")
		return
	}
	h.dashboard.Invalidate(c.Request.Context())
	respondOK(c, gin.H{"client": client})
}

func (h *ClientHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.clientRepo.Delete(c.Request.Context(), id); err != nil {
		respondRepoError(c, h.logger, err, "Client not found")
		return
	}
	h.dashboard.Invalidate(c.Request.Context())
	respondMessage(c, "Client deleted")
}

func (h *ClientHandler) Documents(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if _, err := h.clientRepo.GetByID(c.Request.Context(), id); err != nil {
		respondRepoError(c, h.logger, err, "Client not found")
		return
	}

	documents, err := h.clientRepo.Documents(c.Request.Context(), id)
	if err != nil {
		respondRepoError(c, h.logger, err, "Client not found")
		return
	}
	respondOK(c, gin.H{"documents": documents})
}

func (h *ClientHandler) Contracts(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if _, err := h.clientRepo.GetByID(c.Request.Context(), id); err != nil {
		respondRepoError(c, h.logger, err, "Client not found")
		return
	}

	contracts, err := h.clientRepo.Contracts(c.Request.Context(), id)
	if err != nil {
		respondRepoError(c, h.logger, err, "Client not found")
		return
	}
	respondOK(c, gin.H{"contracts": contracts})
}

func (h *ClientHandler) Projects(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if _, err := h.clientRepo.GetByID(c.Request.Context(), id); err != nil {
		respondRepoError(c, h.logger, err, "Client not found")
		return
	}

	projects, err := h.clientRepo.Projects(c.Request.Context(), id)
	if err != nil {
		respondRepoError(c, h.logger, err, "Client not found")
		return
	}
	respondOK(c, gin.H{"projects": projects})
}

func (h *ClientHandler) RegisterRoutes(rg *gin.RouterGroup) {
	clients := rg.Group("/clients")
	{
		clients.GET("", h.List)
		clients.POST("", h.Create)
		clients.GET("/:id", h.Get)
		clients.PUT("/:id", h.Update)
		clients.DELETE("/:id", h.Delete)
		clients.GET("/:id/documents", h.Documents)
		clients.GET("/:id/contracts", h.Contracts)
		clients.GET("/:id/projects", h.Projects)
	}
}

package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/praxisapp/praxis/internal/app/middleware"
	"github.com/praxisapp/praxis/internal/domain/query"
	"github.com/praxisapp/praxis/internal/domain/repositories"
	"github.com/praxisapp/praxis/internal/domain/services"
	"github.com/praxisapp/praxis/internal/infrastructure/database/models"
	"github.com/praxisapp/praxis/pkg/logger"
)

// DocumentHandler serves document metadata CRUD plus the file upload and
// download endpoints.
type DocumentHandler struct {
	docService *services.DocumentService
	docRepo    repositories.DocumentRepository
	dashboard  *services.DashboardService
	logger     *logger.Logger
}

func NewDocumentHandler(docService *services.DocumentService, docRepo repositories.DocumentRepository, dashboard *services.DashboardService, logger *logger.Logger) *DocumentHandler {
	return &DocumentHandler{
		docService: docService,
		docRepo:    docRepo,
		dashboard:  dashboard,
		logger:     logger,
	}
}

func (h *DocumentHandler) List(c *gin.Context) {
	filters := repositories.DocumentFilters{
		Search:   query.String(c.Query("search")),
		Category: query.String(c.Query("category")),
		Status:   query.String(c.Query("status")),
		ClientID: query.ID(c.Query("client_id")),
	}
	page := parsePage(c)

	documents, total, err := h.docRepo.List(c.Request.Context(), filters, page)
	if err != nil {
		respondRepoError(c, h.logger, err, "Document not found")
		return
	}
	respondList(c, "documents", documents, NewPagination(page, total))
}

func (h *DocumentHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	document, err := h.docRepo.GetByID(c.Request.Context(), id)
	if err != nil {
		respondRepoError(c, h.logger, err, "Document not found")
		return
	}
	respondOK(c, gin.H{"document": document})
}

// Upload accepts a multipart form with the file plus metadata fields.
func (h *DocumentHandler) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		respondError(c, http.StatusBadRequest, "A file is required")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respondError(c, http.StatusBadRequest, "Unable to read uploaded file")
		return
	}
	defer file.Close()

	params := services.UploadDocumentParams{
		File:        fileHeader,
		FileReader:  file,
		Title:       c.PostForm("title"),
		Description: c.PostForm("description"),
		Category:    models.DocumentCategory(c.PostForm("category")),
		Status:      models.DocumentStatus(c.PostForm("status")),
		ClientID:    query.ID(c.PostForm("client_id")),
	}
	if user := middleware.CurrentUser(c); user != nil {
		params.UploadedBy = &user.ID
	}

	document, err := h.docService.Upload(c.Request.Context(), params)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrDocumentTooLarge):
			respondError(c, http.StatusBadRequest, "File exceeds the maximum allowed size")
		case errors.Is(err, services.ErrUnsupportedFormat):
			respondError(c, http.StatusBadRequest, "File type is not allowed")
		default:
			respondRepoError(c, h.logger, err, "Document not found")
		}
		return
	}
	h.dashboard.Invalidate(c.Request.Context())
	respondCreated(c, "Document uploaded", gin.H{"document": document})
}

type documentUpdateRequest struct {
	Title       string                  `json:"title" binding:"required"`
	Description string                  `json:"description"`
	Category    models.DocumentCategory `json:"category" binding:"omitempty,oneof=contract proposal invoice report other"`
	Status      models.DocumentStatus   `json:"status" binding:"omitempty,oneof=draft active archived"`
	ClientID    *uint                   `json:"client_id"`
}

func (h *DocumentHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	document, err := h.docRepo.GetByID(c.Request.Context(), id)
	if err != nil {
		respondRepoError(c, h.logger, err, "Document not found")
		return
	}

	var req documentUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	document.Title = req.Title
	document.Description = req.Description
	if req.Category != "" {
		document.Category = req.Category
	}
	if req.Status != "" {
		document.Status = req.Status
	}
	document.ClientID = req.ClientID

	if err := h.docRepo.Update(c.Request.Context(), document); err != nil {
		respondRepoError(c, h.logger, err, "Document not found")
		return
	}
	h.dashboard.Invalidate(c.Request.Context())
	respondOK(c, gin.H{"document": document})
}

func (h *DocumentHandler) Download(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	document, reader, err := h.docService.Download(c.Request.Context(), id)
	if err != nil {
		respondRepoError(c, h.logger, err, "Document not found")
		return
	}
	defer reader.Close()

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", document.Title))
	c.Header("Content-Type", document.FileType)
	if _, err := io.Copy(c.Writer, reader); err != nil {
		h.logger.Error("failed to stream document", "document_id", id, "error", err)
	}
}

func (h *DocumentHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	err := h.docService.Delete(c.Request.Context(), id)
	// The row can already be gone when the error reports a failed blob
	// removal, so the cache is stale either way.
	h.dashboard.Invalidate(c.Request.Context())
	if err != nil {
		respondRepoError(c, h.logger, err, "Document not found")
		return
	}
	respondMessage(c, "Document deleted")
}

func (h *DocumentHandler) RegisterRoutes(rg *gin.RouterGroup) {
	documents := rg.Group("/documents")
	{
		documents.GET("", h.List)
		documents.POST("/upload", h.Upload)
		documents.GET("/:id", h.Get)
		documents.PUT("/:id", h.Update)
		documents.GET("/:id/download", h.Download)
		documents.DELETE("/:id", h.Delete)
	}
}

package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/praxisapp/praxis/internal/app/middleware"
	"github.com/praxisapp/praxis/internal/domain/query"
	"github.com/praxisapp/praxis/internal/domain/repositories"
	"github.com/praxisapp/praxis/internal/domain/services"
	"github.com/praxisapp/praxis/internal/infrastructure/database/models"
	"github.com/praxisapp/praxis/pkg/logger"
)

// UserHandler serves the admin-only user management endpoints.
type UserHandler struct {
	authService *services.AuthService
	userRepo    repositories.UserRepository
	logger      *logger.Logger
}

func NewUserHandler(authService *services.AuthService, userRepo repositories.UserRepository, logger *logger.Logger) *UserHandler {
	return &UserHandler{
		authService: authService,
		userRepo:    userRepo,
		logger:      logger,
	}
}

func (h *UserHandler) List(c *gin.Context) {
	filters := repositories.UserFilters{
		Search: query.String(c.Query("search")),
		Role:   query.String(c.Query("role")),
	}
	page := parsePage(c)

	users, total, err := h.userRepo.List(c.Request.Context(), filters, page)
	if err != nil {
		respondRepoError(c, h.logger, err, "User not found")
		return
	}
	respondList(c, "users", users, NewPagination(page, total))
}

func (h *UserHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	user, err := h.userRepo.GetByID(c.Request.Context(), id)
	if err != nil {
		respondRepoError(c, h.logger, err, "User not found")
		return
	}
	respondOK(c, gin.H{"user": user})
}

type createUserRequest struct {
	Name     string          `json:"name" binding:"required"`
	Email    string          `json:"email" binding:"required,email"`
	Password string          `json:"password" binding:"required,min=8"`
	Role     models.UserRole `json:"role" binding:"omitempty,oneof=admin user"`
}

func (h *UserHandler) Create(c *gin.Context) {
	var req createUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	user, err := h.authService.Register(c.Request.Context(), services.RegisterParams{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		if errors.Is(err, services.ErrEmailTaken) {
			respondError(c, http.StatusConflict, "Email is already registered")
			return
		}
		respondRepoError(c, h.logger, err, "User not found")
		return
	}
	respondCreated(c, "User created", gin.H{"user": user})
}

type updateUserRequest struct {
	Name  string          `json:"name" binding:"required"`
	Email string          `json:"email" binding:"required,email"`
	Role  models.UserRole `json:"role" binding:"omitempty,oneof=admin user"`
}

func (h *UserHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	user, err := h.userRepo.GetByID(c.Request.Context(), id)
	if err != nil {
		respondRepoError(c, h.logger, err, "User not found")
		return
	}

	var req updateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	user.Name = req.Name
	user.Email = req.Email
	if req.Role != "" {
		user.Role = req.Role
	}

	if err := h.userRepo.Update(c.Request.Context(), user); err != nil {
		respondRepoError(c, h.logger, err, "User not found")
		return
	}
	respondOK(c, gin.H{"user": user})
}

type setPasswordRequest struct {
	NewPassword string `json:"new_password" binding:"required,min=8"`
}

// SetPassword lets an administrator reset another user's password without
// knowing the current one.
func (h *UserHandler) SetPassword(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req setPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	if err := h.authService.SetPassword(c.Request.Context(), id, req.NewPassword); err != nil {
		respondRepoError(c, h.logger, err, "User not found")
		return
	}
	respondMessage(c, "Password updated")
}

func (h *UserHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	// Administrators cannot remove their own account.
	if current := middleware.CurrentUser(c); current != nil && current.ID == id {
		respondError(c, http.StatusBadRequest, "You cannot delete your own account")
		return
	}

	if err := h.userRepo.Delete(c.Request.Context(), id); err != nil {
		respondRepoError(c, h.logger, err, "User not found")
		return
	}
	respondMessage(c, "User deleted")
}

func (h *UserHandler) RegisterRoutes(rg *gin.RouterGroup) {
	users := rg.Group("/users", middleware.RequireRole(models.UserRoleAdmin))
	{
		users.GET("", h.List)
		users.POST("", h.Create)
		users.GET("/:id", h.Get)
		users.PUT("/:id", h.Update)
		users.PUT("/:id/change-password", h.SetPassword)
		users.DELETE("/:id", h.Delete)
	}
}

package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/praxisapp/praxis/internal/app/config"
	"github.com/praxisapp/praxis/internal/app/handlers"
	"github.com/praxisapp/praxis/internal/app/middleware"
	"github.com/praxisapp/praxis/internal/domain/services"
	"github.com/praxisapp/praxis/internal/infrastructure/cache"
	"github.com/praxisapp/praxis/internal/infrastructure/database"
	"github.com/praxisapp/praxis/internal/infrastructure/repositories/postgresql"
	"github.com/praxisapp/praxis/internal/infrastructure/storage/local"
	"github.com/praxisapp/praxis/internal/infrastructure/storage/supabase"
	"github.com/praxisapp/praxis/pkg/logger"
)

type Server struct {
	config *config.Config
	logger *logger.Logger
	router *gin.Engine
	server *http.Server
	db     *database.DB
	cache  services.CacheService
}

// New wires the database, repositories, services and routes.
func New(cfg *config.Config, log *logger.Logger) (*Server, error) {
	db, err := database.New(cfg.GetDatabaseURL())
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	repos := postgresql.NewRepositories(db)

	// The dashboard cache is an optimization; the server runs without Redis.
	var cacheService services.CacheService
	if cfg.Redis.URL != "" {
		cacheService, err = cache.CreateCacheService(cfg.Redis.URL)
		if err != nil {
			log.Warn("Redis unavailable, dashboard caching disabled", "error", err)
			cacheService = nil
		}
	}

	storageService, err := newStorageService(cfg)
	if err != nil {
		return nil, err
	}

	authService := services.NewAuthService(repos.Users, cfg.JWT.Secret, cfg.JWT.Expiry)
	documentService := services.NewDocumentService(repos.Documents, storageService, services.DocumentServiceConfig{
		MaxFileSize:      cfg.Uploads.MaxFileSize,
		AllowedMimeTypes: cfg.Uploads.AllowedMimeTypes,
	}, log)
	contractService := services.NewContractService(repos.Contracts)
	projectService := services.NewProjectService(repos.Projects, repos.Tasks)
	dashboardService := services.NewDashboardService(repos.Dashboard, cacheService, log)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(corsMiddleware(cfg))
	router.Use(loggingMiddleware(log))

	s := &Server{
		config: cfg,
		logger: log,
		router: router,
		db:     db,
		cache:  cacheService,
	}

	s.setupRoutes(authService, handlerSet{
		auth:      handlers.NewAuthHandler(authService, log),
		users:     handlers.NewUserHandler(authService, repos.Users, log),
		clients:   handlers.NewClientHandler(repos.Clients, dashboardService, log),
		documents: handlers.NewDocumentHandler(documentService, repos.Documents, dashboardService, log),
		contracts: handlers.NewContractHandler(contractService, repos.Contracts, dashboardService, log),
		projects:  handlers.NewProjectHandler(projectService, repos.Projects, repos.Tasks, dashboardService, log),
		dashboard: handlers.NewDashboardHandler(dashboardService, log),
	})

	return s, nil
}

type handlerSet struct {
	auth      *handlers.AuthHandler
	users     *handlers.UserHandler
	clients   *handlers.ClientHandler
	documents *handlers.DocumentHandler
	contracts *handlers.ContractHandler
	projects  *handlers.ProjectHandler
	dashboard *handlers.DashboardHandler
}

func newStorageService(cfg *config.Config) (services.StorageService, error) {
	if cfg.Storage.Type == "supabase" {
		return supabase.NewStorageService(supabase.Config{
			URL:    cfg.Storage.SupabaseURL,
			APIKey: cfg.Storage.SupabaseAPIKey,
			Bucket: cfg.Storage.SupabaseBucket,
		})
	}
	return local.NewStorageService(cfg.Storage.Path), nil
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	s.server = &http.Server{
		Addr:         ":" + s.config.Server.Port,
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down server...")

	if s.cache != nil {
		if err := s.cache.Close(); err != nil {
			s.logger.Error("Error closing cache connection", "error", err)
		}
	}
	if err := s.db.Close(); err != nil {
		s.logger.Error("Error closing database connection", "error", err)
	}

	return s.server.Shutdown(ctx)
}

func (s *Server) setupRoutes(authService *services.AuthService, h handlerSet) {
	s.router.GET("/health", s.healthCheck)

	v1 := s.router.Group("/api/v1")

	public := v1.Group("")
	protected := v1.Group("")
	protected.Use(middleware.Auth(authService))

	h.auth.RegisterRoutes(public, protected)
	h.users.RegisterRoutes(protected)
	h.clients.RegisterRoutes(protected)
	h.documents.RegisterRoutes(protected)
	h.contracts.RegisterRoutes(protected)
	h.projects.RegisterRoutes(protected)
	h.dashboard.RegisterRoutes(protected)
}

func (s *Server) healthCheck(c *gin.Context) {
	dbStatus := "healthy"
	if err := s.db.Ping(); err != nil {
		dbStatus = "unhealthy"
	}

	c.JSON(http.StatusOK, gin.H{
		"status":      "healthy",
		"database":    dbStatus,
		"timestamp":   time.Now().UTC(),
		"environment": s.config.Environment,
	})
}

func corsMiddleware(cfg *config.Config) gin.HandlerFunc {
	corsConfig := cors.Config{
		AllowOrigins:     cfg.Server.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}

	return cors.New(corsConfig)
}

func loggingMiddleware(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		log.Info("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration_ms", time.Since(start).Milliseconds(),
			"client_ip", c.ClientIP(),
		)
	}
}

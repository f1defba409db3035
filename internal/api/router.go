package api

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	"github.com/RazanRezq/munjiz/internal/app"
	iauth "github.com/RazanRezq/munjiz/internal/auth"
	"github.com/RazanRezq/munjiz/internal/handlers"
	"github.com/RazanRezq/munjiz/internal/middleware"
	"github.com/RazanRezq/munjiz/internal/services"
)

// Services bundles the domain services the router mounts handlers for.
type Services struct {
	Registrations *services.RegistrationService
	Authenticator *services.Authenticator
	Workspaces    *services.WorkspaceService
	Projects      *services.ProjectService
	Tasks         *services.TaskService
}

// NewRouter builds the Gin engine, wires middleware and registers routes.
func NewRouter(db *gorm.DB, jwt *iauth.JWTService, cfg *app.Config, svc Services) (*gin.Engine, error) {
	if db == nil {
		return nil, fmt.Errorf("database handle must be provided")
	}
	if jwt == nil {
		return nil, fmt.Errorf("jwt service must be provided")
	}
	if cfg == nil {
		return nil, fmt.Errorf("config must be provided")
	}
	if svc.Registrations == nil || svc.Authenticator == nil {
		return nil, fmt.Errorf("auth services must be provided")
	}
	if svc.Workspaces == nil || svc.Projects == nil || svc.Tasks == nil {
		return nil, fmt.Errorf("domain services must be provided")
	}

	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.Logger())
	r.Use(middleware.Metrics())
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS())
	// Basic rate limiting: 100 requests/minute per IP+path
	r.Use(middleware.RateLimit(100, time.Minute))

	// Health endpoint (public)
	healthHandler := handlers.NewHealthHandler(db)
	r.GET("/health", healthHandler.Check)

	if cfg.Monitoring.Prometheus.Enabled {
		endpoint := cfg.Monitoring.Prometheus.Endpoint
		if endpoint == "" {
			endpoint = "/metrics"
		}
		r.GET(endpoint, gin.WrapH(promhttp.Handler()))
	}

	authHandler := handlers.NewAuthHandler(svc.Registrations, svc.Authenticator, jwt)

	// Public routes
	r.POST("/api/register", authHandler.Register)
	auth := r.Group("/api/auth")
	{
		auth.POST("/login", authHandler.Login)
		auth.POST("/verify-email", authHandler.VerifyEmail)
		auth.POST("/resend-verification", authHandler.ResendVerification)
	}

	// Protected routes
	requireAuth := middleware.Auth(jwt)

	api := r.Group("/api")
	api.Use(requireAuth)

	workspaceHandler := handlers.NewWorkspaceHandler(svc.Workspaces)
	projectHandler := handlers.NewProjectHandler(svc.Projects)
	taskHandler := handlers.NewTaskHandler(svc.Tasks)

	workspaces := api.Group("/workspaces")
	{
		workspaces.POST("", workspaceHandler.Create)
		workspaces.GET("", workspaceHandler.List)
		workspaces.GET("/:id", workspaceHandler.Get)
		workspaces.POST("/:id/invitations", workspaceHandler.Invite)
		workspaces.POST("/:id/projects", projectHandler.Create)
		workspaces.GET("/:id/projects", projectHandler.List)
	}

	api.POST("/invitations/accept", workspaceHandler.AcceptInvitation)

	projects := api.Group("/projects")
	{
		projects.GET("/:id", projectHandler.Get)
		projects.POST("/:id/tasks", taskHandler.Create)
		projects.GET("/:id/tasks", taskHandler.List)
	}

	tasks := api.Group("/tasks")
	{
		tasks.GET("/:id", taskHandler.Get)
		tasks.PATCH("/:id/status", taskHandler.UpdateStatus)
		tasks.POST("/:id/comments", taskHandler.AddComment)
	}

	r.NoRoute(middleware.NotFoundHandler)

	return r, nil
}

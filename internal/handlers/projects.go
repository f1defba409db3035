package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/RazanRezq/munjiz/internal/services"
	"github.com/RazanRezq/munjiz/pkg/response"
)

// ProjectHandler exposes project endpoints scoped to a workspace.
type ProjectHandler struct {
	projects *services.ProjectService
}

// NewProjectHandler constructs a ProjectHandler.
func NewProjectHandler(projects *services.ProjectService) *ProjectHandler {
	return &ProjectHandler{projects: projects}
}

// POST /api/workspaces/:id/projects
func (h *ProjectHandler) Create(c *gin.Context) {
	var req services.CreateProjectInput
	if !bindAndValidate(c, &req) {
		return
	}

	project, err := h.projects.Create(c.Request.Context(), c.Param("id"), currentUserID(c), req)
	if err != nil {
		fail(c, err)
		return
	}

	response.Success(c, http.StatusCreated, project)
}

// GET /api/workspaces/:id/projects
func (h *ProjectHandler) List(c *gin.Context) {
	projects, err := h.projects.List(c.Request.Context(), c.Param("id"), currentUserID(c))
	if err != nil {
		fail(c, err)
		return
	}

	response.Success(c, http.StatusOK, projects)
}

// GET /api/projects/:id
func (h *ProjectHandler) Get(c *gin.Context) {
	project, err := h.projects.Get(c.Request.Context(), c.Param("id"), currentUserID(c))
	if err != nil {
		fail(c, err)
		return
	}

	response.Success(c, http.StatusOK, project)
}

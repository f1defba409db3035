package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/RazanRezq/munjiz/internal/services"
	"github.com/RazanRezq/munjiz/pkg/response"
)

// TaskHandler exposes task, comment, and status-transition endpoints.
type TaskHandler struct {
	tasks *services.TaskService
}

// NewTaskHandler constructs a TaskHandler.
func NewTaskHandler(tasks *services.TaskService) *TaskHandler {
	return &TaskHandler{tasks: tasks}
}

// POST /api/projects/:id/tasks
func (h *TaskHandler) Create(c *gin.Context) {
	var req services.CreateTaskInput
	if !bindAndValidate(c, &req) {
		return
	}

	task, err := h.tasks.Create(c.Request.Context(), c.Param("id"), currentUserID(c), req)
	if err != nil {
		fail(c, err)
		return
	}

	response.Success(c, http.StatusCreated, task)
}

// GET /api/projects/:id/tasks
func (h *TaskHandler) List(c *gin.Context) {
	tasks, err := h.tasks.List(c.Request.Context(), c.Param("id"), currentUserID(c))
	if err != nil {
		fail(c, err)
		return
	}

	response.Success(c, http.StatusOK, tasks)
}

// GET /api/tasks/:id
func (h *TaskHandler) Get(c *gin.Context) {
	task, err := h.tasks.Get(c.Request.Context(), c.Param("id"), currentUserID(c))
	if err != nil {
		fail(c, err)
		return
	}

	response.Success(c, http.StatusOK, task)
}

type updateStatusRequest struct {
	StatusID string `json:"status_id" validate:"required"`
}

// PATCH /api/tasks/:id/status
func (h *TaskHandler) UpdateStatus(c *gin.Context) {
	var req updateStatusRequest
	if !bindAndValidate(c, &req) {
		return
	}

	task, err := h.tasks.UpdateStatus(c.Request.Context(), c.Param("id"), req.StatusID, currentUserID(c))
	if err != nil {
		fail(c, err)
		return
	}

	response.Success(c, http.StatusOK, task)
}

type addCommentRequest struct {
	Body string `json:"body" validate:"required"`
}

// POST /api/tasks/:id/comments
func (h *TaskHandler) AddComment(c *gin.Context) {
	var req addCommentRequest
	if !bindAndValidate(c, &req) {
		return
	}

	comment, err := h.tasks.AddComment(c.Request.Context(), c.Param("id"), currentUserID(c), req.Body)
	if err != nil {
		fail(c, err)
		return
	}

	response.Success(c, http.StatusCreated, comment)
}

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/RazanRezq/munjiz/internal/services"
	"github.com/RazanRezq/munjiz/pkg/response"
)

// WorkspaceHandler exposes workspace CRUD and invitation endpoints.
type WorkspaceHandler struct {
	workspaces *services.WorkspaceService
}

// NewWorkspaceHandler constructs a WorkspaceHandler.
func NewWorkspaceHandler(workspaces *services.WorkspaceService) *WorkspaceHandler {
	return &WorkspaceHandler{workspaces: workspaces}
}

// POST /api/workspaces
func (h *WorkspaceHandler) Create(c *gin.Context) {
	var req services.CreateWorkspaceInput
	if !bindAndValidate(c, &req) {
		return
	}

	workspace, err := h.workspaces.Create(c.Request.Context(), currentUserID(c), req)
	if err != nil {
		fail(c, err)
		return
	}

	response.Success(c, http.StatusCreated, workspace)
}

// GET /api/workspaces
func (h *WorkspaceHandler) List(c *gin.Context) {
	workspaces, err := h.workspaces.ListForUser(c.Request.Context(), currentUserID(c))
	if err != nil {
		fail(c, err)
		return
	}

	response.Success(c, http.StatusOK, workspaces)
}

// GET /api/workspaces/:id
func (h *WorkspaceHandler) Get(c *gin.Context) {
	workspace, err := h.workspaces.Get(c.Request.Context(), c.Param("id"), currentUserID(c))
	if err != nil {
		fail(c, err)
		return
	}

	response.Success(c, http.StatusOK, workspace)
}

// POST /api/workspaces/:id/invitations
func (h *WorkspaceHandler) Invite(c *gin.Context) {
	var req services.InviteInput
	if !bindAndValidate(c, &req) {
		return
	}

	invitation, err := h.workspaces.Invite(c.Request.Context(), c.Param("id"), currentUserID(c), req)
	if err != nil {
		fail(c, err)
		return
	}

	response.Success(c, http.StatusCreated, invitation)
}

type acceptInvitationRequest struct {
	Token string `json:"token" validate:"required"`
}

// POST /api/invitations/accept
func (h *WorkspaceHandler) AcceptInvitation(c *gin.Context) {
	var req acceptInvitationRequest
	if !bindAndValidate(c, &req) {
		return
	}

	member, err := h.workspaces.AcceptInvitation(c.Request.Context(), req.Token, currentUserID(c), currentUserEmail(c))
	if err != nil {
		fail(c, err)
		return
	}

	response.Success(c, http.StatusOK, member)
}

package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/RazanRezq/munjiz/internal/models"
	"github.com/RazanRezq/munjiz/internal/validation"
	"github.com/RazanRezq/munjiz/pkg/crypto"
	apperrors "github.com/RazanRezq/munjiz/pkg/errors"
)

var (
	// ErrWorkspaceNotFound covers missing workspaces and workspaces the
	// caller is not a member of.
	ErrWorkspaceNotFound = apperrors.New("WORKSPACE_NOT_FOUND", "Workspace not found", http.StatusNotFound)
	// ErrInvitationInvalid covers unknown, expired, and already-accepted invitations.
	ErrInvitationInvalid = apperrors.New("INVITATION_INVALID", "Invalid or expired invitation", http.StatusBadRequest)
)

const invitationExpiry = 7 * 24 * time.Hour

// WorkspaceService manages workspaces, membership, and invitations.
type WorkspaceService struct {
	db  *gorm.DB
	now func() time.Time
}

// NewWorkspaceService constructs a WorkspaceService.
func NewWorkspaceService(db *gorm.DB) (*WorkspaceService, error) {
	if db == nil {
		return nil, errors.New("workspace service: db is required")
	}
	return &WorkspaceService{db: db, now: time.Now}, nil
}

// CreateWorkspaceInput describes a new workspace.
type CreateWorkspaceInput struct {
	Name        string `json:"name" validate:"required,min=2,max=80"`
	Description string `json:"description" validate:"max=500"`
}

// Create provisions a workspace and enrols the creator as its owner.
func (s *WorkspaceService) Create(ctx context.Context, ownerID string, in CreateWorkspaceInput) (*models.Workspace, error) {
	workspace := models.Workspace{
		Name:        strings.TrimSpace(in.Name),
		Description: strings.TrimSpace(in.Description),
		OwnerID:     ownerID,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&workspace).Error; err != nil {
			return err
		}
		member := models.WorkspaceMember{
			WorkspaceID: workspace.ID,
			UserID:      ownerID,
			Role:        models.WorkspaceRoleOwner,
			JoinedAt:    s.now(),
		}
		return tx.Create(&member).Error
	})
	if err != nil {
		return nil, fmt.Errorf("workspace service: create: %w", err)
	}

	return &workspace, nil
}

// ListForUser returns the workspaces the user is a member of.
func (s *WorkspaceService) ListForUser(ctx context.Context, userID string) ([]models.Workspace, error) {
	var workspaces []models.Workspace
	err := s.db.WithContext(ctx).
		Joins("JOIN workspace_members ON workspace_members.workspace_id = workspaces.id").
		Where("workspace_members.user_id = ?", userID).
		Find(&workspaces).Error
	if err != nil {
		return nil, fmt.Errorf("workspace service: list: %w", err)
	}
	return workspaces, nil
}

// Get returns a workspace the user belongs to, with members preloaded.
func (s *WorkspaceService) Get(ctx context.Context, workspaceID, userID string) (*models.Workspace, error) {
	if _, err := s.RequireMember(ctx, workspaceID, userID); err != nil {
		return nil, err
	}

	var workspace models.Workspace
	if err := s.db.WithContext(ctx).
		Preload("Members").
		Preload("Members.User").
		Take(&workspace, "id = ?", workspaceID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWorkspaceNotFound
		}
		return nil, fmt.Errorf("workspace service: get: %w", err)
	}

	return &workspace, nil
}

// RequireMember returns the caller's membership record, or
// ErrWorkspaceNotFound when the user does not belong to the workspace.
// Not-found is deliberate over 403: non-members learn nothing about existence.
func (s *WorkspaceService) RequireMember(ctx context.Context, workspaceID, userID string) (*models.WorkspaceMember, error) {
	var member models.WorkspaceMember
	err := s.db.WithContext(ctx).
		Where("workspace_id = ? AND user_id = ?", workspaceID, userID).
		Take(&member).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrWorkspaceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("workspace service: membership lookup: %w", err)
	}
	return &member, nil
}

// InviteInput describes a workspace invitation.
type InviteInput struct {
	Email string `json:"email" validate:"required"`
	Role  string `json:"role"`
}

// Invite issues a tokenised invitation for an email address. Only owners
// and admins may invite.
func (s *WorkspaceService) Invite(ctx context.Context, workspaceID, inviterID string, in InviteInput) (*models.Invitation, error) {
	member, err := s.RequireMember(ctx, workspaceID, inviterID)
	if err != nil {
		return nil, err
	}
	if member.Role != models.WorkspaceRoleOwner && member.Role != models.WorkspaceRoleAdmin {
		return nil, apperrors.ErrForbidden
	}

	email, fieldErrs := validation.ValidateEmail(in.Email)
	if len(fieldErrs) > 0 {
		return nil, apperrors.NewValidation(fieldErrs)
	}

	role := strings.TrimSpace(in.Role)
	if role == "" {
		role = models.WorkspaceRoleMember
	}

	token, err := crypto.RandomToken(defaultTokenBytes)
	if err != nil {
		return nil, fmt.Errorf("workspace service: generate invitation token: %w", err)
	}

	invitation := models.Invitation{
		WorkspaceID: workspaceID,
		Email:       email,
		Role:        role,
		Token:       token,
		ExpiresAt:   s.now().Add(invitationExpiry),
		InvitedByID: inviterID,
	}

	if err := s.db.WithContext(ctx).Create(&invitation).Error; err != nil {
		return nil, fmt.Errorf("workspace service: create invitation: %w", err)
	}

	return &invitation, nil
}

// AcceptInvitation redeems an invitation token for the authenticated user.
// The invited email must match the account email.
func (s *WorkspaceService) AcceptInvitation(ctx context.Context, token, userID, userEmail string) (*models.WorkspaceMember, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, ErrInvitationInvalid
	}

	var invitation models.Invitation
	if err := s.db.WithContext(ctx).Where("token = ?", token).Take(&invitation).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvitationInvalid
		}
		return nil, fmt.Errorf("workspace service: find invitation: %w", err)
	}

	now := s.now()
	if invitation.AcceptedAt != nil || !invitation.ExpiresAt.After(now) {
		return nil, ErrInvitationInvalid
	}
	if !strings.EqualFold(invitation.Email, validation.NormalizeEmail(userEmail)) {
		return nil, ErrInvitationInvalid
	}

	member := models.WorkspaceMember{
		WorkspaceID: invitation.WorkspaceID,
		UserID:      userID,
		Role:        invitation.Role,
		JoinedAt:    now,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&member).Error; err != nil {
			if isUniqueConstraintError(err) {
				// already a member; still consume the invitation
				member = models.WorkspaceMember{}
			} else {
				return err
			}
		}
		return tx.Model(&invitation).Update("accepted_at", now).Error
	})
	if err != nil {
		return nil, fmt.Errorf("workspace service: accept invitation: %w", err)
	}

	return &member, nil
}

package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"strings"

	"gorm.io/gorm"

	"github.com/RazanRezq/munjiz/internal/models"
	apperrors "github.com/RazanRezq/munjiz/pkg/errors"
)

var (
	// ErrProjectNotFound indicates the project is missing or outside the caller's workspaces.
	ErrProjectNotFound = apperrors.New("PROJECT_NOT_FOUND", "Project not found", http.StatusNotFound)
	// ErrProjectKeyTaken signals the human-facing key is already used in the workspace.
	ErrProjectKeyTaken = apperrors.New("PROJECT_KEY_TAKEN", "Project key is already in use in this workspace", http.StatusBadRequest)
)

var projectKeyPattern = regexp.MustCompile(`^[A-Z][A-Z0-9]{1,9}$`)

// defaultStatuses seed every new project's workflow columns.
var defaultStatuses = []models.TaskStatus{
	{Name: "Backlog", Category: models.StatusCategoryTodo, SortOrder: 0},
	{Name: "To Do", Category: models.StatusCategoryTodo, SortOrder: 1},
	{Name: "In Progress", Category: models.StatusCategoryInProgress, SortOrder: 2},
	{Name: "Done", Category: models.StatusCategoryDone, SortOrder: 3},
}

// defaultPriorities seed every new project's priority taxonomy.
var defaultPriorities = []models.TaskPriority{
	{Name: "Low", SortOrder: 0},
	{Name: "Medium", SortOrder: 1},
	{Name: "High", SortOrder: 2},
	{Name: "Urgent", SortOrder: 3},
}

// ProjectService manages projects and their status/priority taxonomies.
type ProjectService struct {
	db         *gorm.DB
	workspaces *WorkspaceService
}

// NewProjectService constructs a ProjectService.
func NewProjectService(db *gorm.DB, workspaces *WorkspaceService) (*ProjectService, error) {
	if db == nil {
		return nil, errors.New("project service: db is required")
	}
	if workspaces == nil {
		return nil, errors.New("project service: workspace service is required")
	}
	return &ProjectService{db: db, workspaces: workspaces}, nil
}

// CreateProjectInput describes a new project.
type CreateProjectInput struct {
	Name        string  `json:"name" validate:"required,min=2,max=80"`
	Key         string  `json:"key" validate:"required"`
	Description string  `json:"description" validate:"max=500"`
	LeadID      *string `json:"lead_id"`
}

// Create provisions a project with the default status and priority
// taxonomy. The key is uppercased and must be unique within the workspace.
func (s *ProjectService) Create(ctx context.Context, workspaceID, userID string, in CreateProjectInput) (*models.Project, error) {
	if _, err := s.workspaces.RequireMember(ctx, workspaceID, userID); err != nil {
		return nil, err
	}

	key := strings.ToUpper(strings.TrimSpace(in.Key))
	if !projectKeyPattern.MatchString(key) {
		return nil, apperrors.NewValidation([]apperrors.FieldError{{
			Field:   "key",
			Message: "key must be 2-10 characters, uppercase letters and digits, starting with a letter",
		}})
	}

	project := models.Project{
		WorkspaceID: workspaceID,
		Name:        strings.TrimSpace(in.Name),
		Key:         key,
		Description: strings.TrimSpace(in.Description),
		LeadID:      in.LeadID,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&project).Error; err != nil {
			return err
		}
		for i := range defaultStatuses {
			status := defaultStatuses[i]
			status.ProjectID = project.ID
			if err := tx.Create(&status).Error; err != nil {
				return err
			}
		}
		for i := range defaultPriorities {
			priority := defaultPriorities[i]
			priority.ProjectID = project.ID
			if err := tx.Create(&priority).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if isUniqueConstraintError(err) {
			return nil, ErrProjectKeyTaken
		}
		return nil, fmt.Errorf("project service: create: %w", err)
	}

	return s.Get(ctx, project.ID, userID)
}

// List returns the projects of a workspace the caller belongs to.
func (s *ProjectService) List(ctx context.Context, workspaceID, userID string) ([]models.Project, error) {
	if _, err := s.workspaces.RequireMember(ctx, workspaceID, userID); err != nil {
		return nil, err
	}

	var projects []models.Project
	if err := s.db.WithContext(ctx).
		Where("workspace_id = ?", workspaceID).
		Order("created_at ASC").
		Find(&projects).Error; err != nil {
		return nil, fmt.Errorf("project service: list: %w", err)
	}
	return projects, nil
}

// Get loads a project with its taxonomy, enforcing workspace membership.
func (s *ProjectService) Get(ctx context.Context, projectID, userID string) (*models.Project, error) {
	var project models.Project
	if err := s.db.WithContext(ctx).
		Preload("Statuses", func(db *gorm.DB) *gorm.DB { return db.Order("sort_order ASC") }).
		Preload("Priorities", func(db *gorm.DB) *gorm.DB { return db.Order("sort_order ASC") }).
		Take(&project, "id = ?", projectID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("project service: get: %w", err)
	}

	if _, err := s.workspaces.RequireMember(ctx, project.WorkspaceID, userID); err != nil {
		return nil, ErrProjectNotFound
	}

	return &project, nil
}

package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/RazanRezq/munjiz/internal/models"
	apperrors "github.com/RazanRezq/munjiz/pkg/errors"
)

// ErrTaskNotFound indicates the task is missing or outside the caller's workspaces.
var ErrTaskNotFound = apperrors.New("TASK_NOT_FOUND", "Task not found", http.StatusNotFound)

// TaskService manages tasks, comments, and the per-project number sequence.
type TaskService struct {
	db       *gorm.DB
	projects *ProjectService
}

// NewTaskService constructs a TaskService.
func NewTaskService(db *gorm.DB, projects *ProjectService) (*TaskService, error) {
	if db == nil {
		return nil, errors.New("task service: db is required")
	}
	if projects == nil {
		return nil, errors.New("task service: project service is required")
	}
	return &TaskService{db: db, projects: projects}, nil
}

// CreateTaskInput describes a new task.
type CreateTaskInput struct {
	Title       string     `json:"title" validate:"required,min=1,max=200"`
	Description string     `json:"description"`
	StatusID    *string    `json:"status_id"`
	PriorityID  *string    `json:"priority_id"`
	AssigneeID  *string    `json:"assignee_id"`
	DueDate     *time.Time `json:"due_date"`
}

// Create inserts a task with the next project-scoped number. The counter
// row is locked for the duration of the transaction so concurrent creates
// never share a number; the composite unique index backstops drivers that
// ignore row locks.
func (s *TaskService) Create(ctx context.Context, projectID, reporterID string, in CreateTaskInput) (*models.Task, error) {
	if _, err := s.projects.Get(ctx, projectID, reporterID); err != nil {
		return nil, err
	}

	task := models.Task{
		ProjectID:   projectID,
		Title:       strings.TrimSpace(in.Title),
		Description: in.Description,
		StatusID:    in.StatusID,
		PriorityID:  in.PriorityID,
		AssigneeID:  in.AssigneeID,
		ReporterID:  reporterID,
		DueDate:     in.DueDate,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var project models.Project
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Take(&project, "id = ?", projectID).Error; err != nil {
			return err
		}

		task.Number = project.NextTaskNumber

		if task.StatusID == nil {
			var status models.TaskStatus
			if err := tx.Where("project_id = ?", projectID).
				Order("sort_order ASC").
				First(&status).Error; err == nil {
				task.StatusID = &status.ID
			}
		}

		if err := tx.Create(&task).Error; err != nil {
			return err
		}

		if err := tx.Model(&project).
			Update("next_task_number", project.NextTaskNumber+1).Error; err != nil {
			return err
		}

		activity := models.Activity{
			TaskID:  task.ID,
			ActorID: reporterID,
			Action:  "created",
		}
		return tx.Create(&activity).Error
	})
	if err != nil {
		return nil, fmt.Errorf("task service: create: %w", err)
	}

	return &task, nil
}

// List returns the tasks of a project the caller can access.
func (s *TaskService) List(ctx context.Context, projectID, userID string) ([]models.Task, error) {
	if _, err := s.projects.Get(ctx, projectID, userID); err != nil {
		return nil, err
	}

	var tasks []models.Task
	if err := s.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("number ASC").
		Find(&tasks).Error; err != nil {
		return nil, fmt.Errorf("task service: list: %w", err)
	}
	return tasks, nil
}

// Get loads a task with comments and activity, enforcing access through
// the owning project.
func (s *TaskService) Get(ctx context.Context, taskID, userID string) (*models.Task, error) {
	var task models.Task
	if err := s.db.WithContext(ctx).
		Preload("Comments", func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC") }).
		Preload("Activities", func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC") }).
		Preload("Attachments").
		Take(&task, "id = ?", taskID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("task service: get: %w", err)
	}

	if _, err := s.projects.Get(ctx, task.ProjectID, userID); err != nil {
		return nil, ErrTaskNotFound
	}

	return &task, nil
}

// UpdateStatus moves a task to another status and records the transition.
func (s *TaskService) UpdateStatus(ctx context.Context, taskID, statusID, actorID string) (*models.Task, error) {
	task, err := s.Get(ctx, taskID, actorID)
	if err != nil {
		return nil, err
	}

	var status models.TaskStatus
	if err := s.db.WithContext(ctx).
		Where("id = ? AND project_id = ?", statusID, task.ProjectID).
		Take(&status).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewBadRequest("status does not belong to this project")
		}
		return nil, fmt.Errorf("task service: find status: %w", err)
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(task).Update("status_id", status.ID).Error; err != nil {
			return err
		}
		activity := models.Activity{
			TaskID:  task.ID,
			ActorID: actorID,
			Action:  "status_changed",
			Detail:  status.Name,
		}
		return tx.Create(&activity).Error
	})
	if err != nil {
		return nil, fmt.Errorf("task service: update status: %w", err)
	}

	task.StatusID = &status.ID
	return task, nil
}

// AddComment appends a comment to a task.
func (s *TaskService) AddComment(ctx context.Context, taskID, authorID, body string) (*models.Comment, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return nil, apperrors.NewBadRequest("comment body is required")
	}

	if _, err := s.Get(ctx, taskID, authorID); err != nil {
		return nil, err
	}

	comment := models.Comment{
		TaskID:   taskID,
		AuthorID: authorID,
		Body:     body,
	}
	if err := s.db.WithContext(ctx).Create(&comment).Error; err != nil {
		return nil, fmt.Errorf("task service: add comment: %w", err)
	}

	return &comment, nil
}

package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/RazanRezq/munjiz/internal/database/testutil"
	"github.com/RazanRezq/munjiz/internal/models"
	apperrors "github.com/RazanRezq/munjiz/pkg/errors"
)

func newTaskFixture(t *testing.T) (*gorm.DB, *TaskService, *models.User, *models.Project) {
	t.Helper()

	db := testutil.MustOpenTestDB(t)
	workspaces, err := NewWorkspaceService(db)
	require.NoError(t, err)
	projects, err := NewProjectService(db, workspaces)
	require.NoError(t, err)
	svc, err := NewTaskService(db, projects)
	require.NoError(t, err)

	owner := seedUser(t, db, "owner@example.com", "Str0ng!pass", true)
	workspace, err := workspaces.Create(context.Background(), owner.ID, CreateWorkspaceInput{Name: "Engineering"})
	require.NoError(t, err)
	project, err := projects.Create(context.Background(), workspace.ID, owner.ID, CreateProjectInput{Name: "Core", Key: "CORE"})
	require.NoError(t, err)

	return db, svc, owner, project
}

func TestTaskNumbersAreSequentialPerProject(t *testing.T) {
	db, svc, owner, project := newTaskFixture(t)

	for i := 1; i <= 3; i++ {
		task, err := svc.Create(context.Background(), project.ID, owner.ID, CreateTaskInput{Title: "Task"})
		require.NoError(t, err)
		require.EqualValues(t, i, task.Number)
	}

	var fresh models.Project
	require.NoError(t, db.Take(&fresh, "id = ?", project.ID).Error)
	require.EqualValues(t, 4, fresh.NextTaskNumber)
}

func TestTaskCreateDefaultsAndActivity(t *testing.T) {
	db, svc, owner, project := newTaskFixture(t)

	task, err := svc.Create(context.Background(), project.ID, owner.ID, CreateTaskInput{Title: "  Ship it  "})
	require.NoError(t, err)
	require.Equal(t, "Ship it", task.Title)
	require.Equal(t, owner.ID, task.ReporterID)

	// Defaulted to the lowest sort-order status (Backlog).
	require.NotNil(t, task.StatusID)
	var status models.TaskStatus
	require.NoError(t, db.Take(&status, "id = ?", *task.StatusID).Error)
	require.Equal(t, "Backlog", status.Name)

	var activities []models.Activity
	require.NoError(t, db.Where("task_id = ?", task.ID).Find(&activities).Error)
	require.Len(t, activities, 1)
	require.Equal(t, "created", activities[0].Action)
}

func TestTaskStatusTransition(t *testing.T) {
	db, svc, owner, project := newTaskFixture(t)

	task, err := svc.Create(context.Background(), project.ID, owner.ID, CreateTaskInput{Title: "Move me"})
	require.NoError(t, err)

	var inProgress models.TaskStatus
	require.NoError(t, db.Where("project_id = ? AND name = ?", project.ID, "In Progress").
		Take(&inProgress).Error)

	updated, err := svc.UpdateStatus(context.Background(), task.ID, inProgress.ID, owner.ID)
	require.NoError(t, err)
	require.Equal(t, inProgress.ID, *updated.StatusID)

	var activities []models.Activity
	require.NoError(t, db.Where("task_id = ? AND action = ?", task.ID, "status_changed").
		Find(&activities).Error)
	require.Len(t, activities, 1)
	require.Equal(t, "In Progress", activities[0].Detail)
}

func TestTaskStatusMustBelongToProject(t *testing.T) {
	db, svc, owner, project := newTaskFixture(t)

	task, err := svc.Create(context.Background(), project.ID, owner.ID, CreateTaskInput{Title: "Task"})
	require.NoError(t, err)

	other, err := svc.projects.Create(context.Background(), project.WorkspaceID, owner.ID,
		CreateProjectInput{Name: "Other", Key: "OTHER"})
	require.NoError(t, err)

	// A status from another project is rejected.
	var foreign models.TaskStatus
	require.NoError(t, db.Where("project_id = ?", other.ID).
		Order("sort_order ASC").First(&foreign).Error)

	_, err = svc.UpdateStatus(context.Background(), task.ID, foreign.ID, owner.ID)
	appErr := apperrors.FromError(err)
	require.Equal(t, 400, appErr.StatusCode)
}

func TestTaskCommentsAndAccess(t *testing.T) {
	db, svc, owner, project := newTaskFixture(t)
	outsider := seedUser(t, db, "outsider@example.com", "Str0ng!pass", true)

	task, err := svc.Create(context.Background(), project.ID, owner.ID, CreateTaskInput{Title: "Discuss"})
	require.NoError(t, err)

	_, err = svc.AddComment(context.Background(), task.ID, owner.ID, "   ")
	appErr := apperrors.FromError(err)
	require.Equal(t, 400, appErr.StatusCode)

	comment, err := svc.AddComment(context.Background(), task.ID, owner.ID, " Looks good ")
	require.NoError(t, err)
	require.Equal(t, "Looks good", comment.Body)

	// Outsiders see neither the task nor its comments.
	_, err = svc.Get(context.Background(), task.ID, outsider.ID)
	require.ErrorIs(t, err, ErrTaskNotFound)
	_, err = svc.AddComment(context.Background(), task.ID, outsider.ID, "hi")
	require.ErrorIs(t, err, ErrTaskNotFound)

	loaded, err := svc.Get(context.Background(), task.ID, owner.ID)
	require.NoError(t, err)
	require.Len(t, loaded.Comments, 1)
}

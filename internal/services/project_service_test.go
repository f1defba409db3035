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

func newProjectFixture(t *testing.T) (*gorm.DB, *ProjectService, *models.User, *models.Workspace) {
	t.Helper()

	db := testutil.MustOpenTestDB(t)
	workspaces, err := NewWorkspaceService(db)
	require.NoError(t, err)
	svc, err := NewProjectService(db, workspaces)
	require.NoError(t, err)

	owner := seedUser(t, db, "owner@example.com", "Str0ng!pass", true)
	workspace, err := workspaces.Create(context.Background(), owner.ID, CreateWorkspaceInput{Name: "Engineering"})
	require.NoError(t, err)

	return db, svc, owner, workspace
}

func TestProjectCreateSeedsTaxonomy(t *testing.T) {
	_, svc, owner, workspace := newProjectFixture(t)

	project, err := svc.Create(context.Background(), workspace.ID, owner.ID, CreateProjectInput{
		Name: "Core Platform",
		Key:  "core",
	})
	require.NoError(t, err)
	require.Equal(t, "CORE", project.Key)
	require.EqualValues(t, 1, project.NextTaskNumber)

	require.Len(t, project.Statuses, 4)
	require.Equal(t, "Backlog", project.Statuses[0].Name)
	require.Equal(t, models.StatusCategoryDone, project.Statuses[3].Category)

	require.Len(t, project.Priorities, 4)
	require.Equal(t, "Low", project.Priorities[0].Name)
	require.Equal(t, "Urgent", project.Priorities[3].Name)
}

func TestProjectKeyRules(t *testing.T) {
	_, svc, owner, workspace := newProjectFixture(t)

	for _, bad := range []string{"", "A", "1AB", "toolongkey123", "AB-C"} {
		_, err := svc.Create(context.Background(), workspace.ID, owner.ID, CreateProjectInput{
			Name: "Bad Key",
			Key:  bad,
		})
		appErr := apperrors.FromError(err)
		require.Equal(t, "VALIDATION_FAILED", appErr.Code, "key %q", bad)
	}

	_, err := svc.Create(context.Background(), workspace.ID, owner.ID, CreateProjectInput{Name: "First", Key: "CORE"})
	require.NoError(t, err)

	// The same key cannot be reused within a workspace.
	_, err = svc.Create(context.Background(), workspace.ID, owner.ID, CreateProjectInput{Name: "Second", Key: "core"})
	require.ErrorIs(t, err, ErrProjectKeyTaken)
}

func TestProjectAccessScopedToWorkspaceMembers(t *testing.T) {
	db, svc, owner, workspace := newProjectFixture(t)
	outsider := seedUser(t, db, "outsider@example.com", "Str0ng!pass", true)

	project, err := svc.Create(context.Background(), workspace.ID, owner.ID, CreateProjectInput{Name: "Core", Key: "CORE"})
	require.NoError(t, err)

	_, err = svc.Get(context.Background(), project.ID, outsider.ID)
	require.ErrorIs(t, err, ErrProjectNotFound)

	_, err = svc.List(context.Background(), workspace.ID, outsider.ID)
	require.ErrorIs(t, err, ErrWorkspaceNotFound)

	projects, err := svc.List(context.Background(), workspace.ID, owner.ID)
	require.NoError(t, err)
	require.Len(t, projects, 1)
}

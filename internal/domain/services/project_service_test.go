package services

import (
	"context"
	"testing"

	"github.com/praxisapp/praxis/internal/domain/repositories"
	"github.com/praxisapp/praxis/internal/infrastructure/database/models"
	"github.com/praxisapp/praxis/internal/infrastructure/repositories/postgresql"
	"github.com/praxisapp/praxis/internal/infrastructure/repositories/postgresql/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProjectService(t *testing.T) (*ProjectService, repositories.ProjectRepository, *testutil.TestDB, *models.Project) {
	t.Helper()
	db := testutil.NewTestDB(t)
	projectRepo := postgresql.NewProjectRepository(db.DB)
	taskRepo := postgresql.NewTaskRepository(db.DB)
	svc := NewProjectService(projectRepo, taskRepo)

	owner := db.CreateTestUser(t, models.UserRoleUser)
	client := db.CreateTestClient(t, owner)
	project := db.CreateTestProject(t, client, owner)
	return svc, projectRepo, db, project
}

func TestProjectService_RecomputeProgress_NoTasks(t *testing.T) {
	svc, _, db, project := newProjectService(t)
	defer db.Cleanup(t)

	progress, err := svc.RecomputeProgress(context.Background(), project.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, progress)
}

func TestProjectService_TaskMutationsSyncProgress(t *testing.T) {
	svc, projectRepo, db, project := newProjectService(t)
	defer db.Cleanup(t)
	ctx := context.Background()

	first := &models.ProjectTask{ProjectID: project.ID, Title: "Gather documents", Status: models.TaskCompleted}
	second := &models.ProjectTask{ProjectID: project.ID, Title: "File claim", Status: models.TaskToDo}
	third := &models.ProjectTask{ProjectID: project.ID, Title: "Await decision", Status: models.TaskToDo}
	for _, task := range []*models.ProjectTask{first, second, third} {
		require.NoError(t, svc.CreateTask(ctx, task))
	}

	// 1 of 3 completed rounds to 33.
	stored, err := projectRepo.GetByID(ctx, project.ID)
	require.NoError(t, err)
	assert.Equal(t, 33, stored.Progress)

	second.Status = models.TaskCompleted
	require.NoError(t, svc.UpdateTask(ctx, second))

	// 2 of 3 completed rounds to 67.
	stored, err = projectRepo.GetByID(ctx, project.ID)
	require.NoError(t, err)
	assert.Equal(t, 67, stored.Progress)

	require.NoError(t, svc.DeleteTask(ctx, third.ID))

	stored, err = projectRepo.GetByID(ctx, project.ID)
	require.NoError(t, err)
	assert.Equal(t, 100, stored.Progress)

	require.NoError(t, svc.DeleteTask(ctx, first.ID))
	require.NoError(t, svc.DeleteTask(ctx, second.ID))

	stored, err = projectRepo.GetByID(ctx, project.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, stored.Progress)
}

func TestProjectService_RecomputeProgress_Idempotent(t *testing.T) {
	svc, projectRepo, db, project := newProjectService(t)
	defer db.Cleanup(t)
	ctx := context.Background()

	task := &models.ProjectTask{ProjectID: project.ID, Title: "Only task", Status: models.TaskCompleted}
	require.NoError(t, svc.CreateTask(ctx, task))

	for i := 0; i < 3; i++ {
		progress, err := svc.RecomputeProgress(ctx, project.ID)
		require.NoError(t, err)
		assert.Equal(t, 100, progress)
	}

	stored, err := projectRepo.GetByID(ctx, project.ID)
	require.NoError(t, err)
	assert.Equal(t, 100, stored.Progress)
}

func TestProjectService_CreateTask_MissingProject(t *testing.T) {
	svc, _, db, _ := newProjectService(t)
	defer db.Cleanup(t)

	task := &models.ProjectTask{ProjectID: 999999, Title: "Orphan"}
	err := svc.CreateTask(context.Background(), task)
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestProjectService_SaveDetails_RejectsMismatchedVariant(t *testing.T) {
	svc, _, db, project := newProjectService(t)
	defer db.Cleanup(t)
	ctx := context.Background()

	req := models.RequirementBPC
	err := svc.SaveDetails(ctx, project.ID, &req, repositories.ProjectDetails{
		Retirement: &models.ProjectRetirementDetail{RetirementType: "by age"},
	})
	assert.ErrorIs(t, err, ErrDetailMismatch)
}

func TestProjectService_SaveDetails_SwitchesVariant(t *testing.T) {
	svc, projectRepo, db, project := newProjectService(t)
	defer db.Cleanup(t)
	ctx := context.Background()

	bpc := models.RequirementBPC
	require.NoError(t, svc.SaveDetails(ctx, project.ID, &bpc, repositories.ProjectDetails{
		BPC: &models.ProjectBPCDetail{DisabilityType: "motor"},
	}))

	retirement := models.RequirementRetirement
	require.NoError(t, svc.SaveDetails(ctx, project.ID, &retirement, repositories.ProjectDetails{
		Retirement: &models.ProjectRetirementDetail{CaseNumber: "2026-0099"},
	}))

	details, err := projectRepo.GetDetails(ctx, project.ID)
	require.NoError(t, err)
	assert.Nil(t, details.BPC)
	require.NotNil(t, details.Retirement)
	assert.Equal(t, "2026-0099", details.Retirement.CaseNumber)
}

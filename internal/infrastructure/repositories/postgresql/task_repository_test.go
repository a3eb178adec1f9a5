package postgresql

import (
	"context"
	"testing"
	"time"

	"github.com/praxisapp/praxis/internal/domain/repositories"
	"github.com/praxisapp/praxis/internal/infrastructure/database/models"
	"github.com/praxisapp/praxis/internal/infrastructure/repositories/postgresql/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTaskRepository_Create_SetsCompletedAt(t *testing.T) {
	db := testutil.NewTestDB(t)
	defer db.Cleanup(t)

	repo := NewTaskRepository(db.DB)
	ctx := context.Background()

	owner := db.CreateTestUser(t, models.UserRoleUser)
	client := db.CreateTestClient(t, owner)
	project := db.CreateTestProject(t, client, owner)

	task := &models.ProjectTask{
		ProjectID: project.ID,
		Title:     "Review case file",
		Status:    models.TaskCompleted,
	}
	require.NoError(t, repo.Create(ctx, task))
	assert.NotNil(t, task.CompletedAt)

	open := &models.ProjectTask{
		ProjectID: project.ID,
		Title:     "Schedule hearing",
		Status:    models.TaskToDo,
	}
	require.NoError(t, repo.Create(ctx, open))
	assert.Nil(t, open.CompletedAt)
}

func TestTaskRepository_Update_ClearsCompletedAtOnReopen(t *testing.T) {
	db := testutil.NewTestDB(t)
	defer db.Cleanup(t)

	repo := NewTaskRepository(db.DB)
	ctx := context.Background()

	owner := db.CreateTestUser(t, models.UserRoleUser)
	client := db.CreateTestClient(t, owner)
	project := db.CreateTestProject(t, client, owner)

	task := &models.ProjectTask{
		ProjectID: project.ID,
		Title:     "Draft petition",
		Status:    models.TaskCompleted,
	}
	require.NoError(t, repo.Create(ctx, task))
	require.NotNil(t, task.CompletedAt)

	task.Status = models.TaskInProgress
	require.NoError(t, repo.Update(ctx, task))

	reloaded, err := repo.GetByID(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, models.TaskInProgress, reloaded.Status)
	assert.Nil(t, reloaded.CompletedAt)
}

func TestTaskRepository_ListByProject_OrderAndFilters(t *testing.T) {
	db := testutil.NewTestDB(t)
	defer db.Cleanup(t)

	repo := NewTaskRepository(db.DB)
	ctx := context.Background()

	owner := db.CreateTestUser(t, models.UserRoleUser)
	client := db.CreateTestClient(t, owner)
	project := db.CreateTestProject(t, client, owner)

	soon := time.Now().UTC().Add(24 * time.Hour)
	later := time.Now().UTC().Add(72 * time.Hour)

	low := &models.ProjectTask{ProjectID: project.ID, Title: "Low", Priority: models.PriorityLow, DueDate: &soon}
	urgent := &models.ProjectTask{ProjectID: project.ID, Title: "Urgent", Priority: models.PriorityUrgent, DueDate: &later}
	high := &models.ProjectTask{ProjectID: project.ID, Title: "High", Priority: models.PriorityHigh, DueDate: &soon}
	for _, task := range []*models.ProjectTask{low, urgent, high} {
		require.NoError(t, repo.Create(ctx, task))
	}

	tasks, err := repo.ListByProject(ctx, project.ID, repositories.TaskFilters{})
	require.NoError(t, err)
	require.Len(t, tasks, 3)
	assert.Equal(t, "Urgent", tasks[0].Title)
	assert.Equal(t, "High", tasks[1].Title)
	assert.Equal(t, "Low", tasks[2].Title)

	priority := string(models.PriorityHigh)
	tasks, err = repo.ListByProject(ctx, project.ID, repositories.TaskFilters{Priority: &priority})
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, "High", tasks[0].Title)
}

func TestTaskRepository_CountByProject(t *testing.T) {
	db := testutil.NewTestDB(t)
	defer db.Cleanup(t)

	repo := NewTaskRepository(db.DB)
	ctx := context.Background()

	owner := db.CreateTestUser(t, models.UserRoleUser)
	client := db.CreateTestClient(t, owner)
	project := db.CreateTestProject(t, client, owner)

	total, completed, err := repo.CountByProject(ctx, project.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), total)
	assert.Equal(t, int64(0), completed)

	statuses := []models.TaskStatus{models.TaskCompleted, models.TaskCompleted, models.TaskInProgress}
	for _, status := range statuses {
		task := &models.ProjectTask{ProjectID: project.ID, Title: "Task", Status: status}
		require.NoError(t, repo.Create(ctx, task))
	}

	total, completed, err = repo.CountByProject(ctx, project.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Equal(t, int64(2), completed)
}

func TestTaskRepository_Overdue(t *testing.T) {
	db := testutil.NewTestDB(t)
	defer db.Cleanup(t)

	repo := NewTaskRepository(db.DB)
	ctx := context.Background()

	owner := db.CreateTestUser(t, models.UserRoleUser)
	client := db.CreateTestClient(t, owner)
	project := db.CreateTestProject(t, client, owner)

	past := time.Now().UTC().Add(-48 * time.Hour)
	future := time.Now().UTC().Add(48 * time.Hour)

	overdue := &models.ProjectTask{ProjectID: project.ID, Title: "Missed deadline", DueDate: &past}
	doneLate := &models.ProjectTask{ProjectID: project.ID, Title: "Done late", Status: models.TaskCompleted, DueDate: &past}
	upcoming := &models.ProjectTask{ProjectID: project.ID, Title: "Upcoming", DueDate: &future}
	noDue := &models.ProjectTask{ProjectID: project.ID, Title: "No due date"}
	for _, task := range []*models.ProjectTask{overdue, doneLate, upcoming, noDue} {
		require.NoError(t, repo.Create(ctx, task))
	}

	tasks, err := repo.Overdue(ctx)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, "Missed deadline", tasks[0].Title)
}

func TestTaskRepository_Delete(t *testing.T) {
	db := testutil.NewTestDB(t)
	defer db.Cleanup(t)

	repo := NewTaskRepository(db.DB)
	ctx := context.Background()

	owner := db.CreateTestUser(t, models.UserRoleUser)
	client := db.CreateTestClient(t, owner)
	project := db.CreateTestProject(t, client, owner)

	task := &models.ProjectTask{ProjectID: project.ID, Title: "Temporary"}
	require.NoError(t, repo.Create(ctx, task))
	require.NoError(t, repo.Delete(ctx, task.ID))

	_, err := repo.GetByID(ctx, task.ID)
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

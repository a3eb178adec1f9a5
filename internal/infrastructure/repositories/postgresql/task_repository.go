package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/praxisapp/praxis/internal/domain/repositories"
	"github.com/praxisapp/praxis/internal/infrastructure/database"
	"github.com/praxisapp/praxis/internal/infrastructure/database/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Fixed task ordering: priority rank, then due date, id breaking ties.
const taskOrder = `CASE priority
	WHEN 'urgent' THEN 1
	WHEN 'high' THEN 2
	WHEN 'medium' THEN 3
	ELSE 4
END, due_date, id`

type TaskRepository struct {
	db *database.DB
}

func NewTaskRepository(db *database.DB) repositories.TaskRepository {
	return &TaskRepository{db: db}
}

func (r *TaskRepository) Create(ctx context.Context, task *models.ProjectTask) error {
	applyCompletedAt(task)
	if err := r.db.WithContext(ctx).Create(task).Error; err != nil {
		return fmt.Errorf("failed to create task: %w", err)
	}
	return nil
}

func (r *TaskRepository) GetByID(ctx context.Context, id uint) (*models.ProjectTask, error) {
	var task models.ProjectTask
	err := r.db.WithContext(ctx).
		Preload("Assignee").
		Preload("Project").
		Where("id = ?", id).First(&task).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repositories.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get task: %w", err)
	}
	return &task, nil
}

func taskFilterScope(f repositories.TaskFilters) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if f.Status != nil {
			db = db.Where("status = ?", *f.Status)
		}
		if f.Priority != nil {
			db = db.Where("priority = ?", *f.Priority)
		}
		if f.AssignedTo != nil {
			db = db.Where("assigned_to = ?", *f.AssignedTo)
		}
		return db
	}
}

func (r *TaskRepository) ListByProject(ctx context.Context, projectID uint, f repositories.TaskFilters) ([]models.ProjectTask, error) {
	var tasks []models.ProjectTask
	err := r.db.WithContext(ctx).
		Preload("Assignee").
		Where("project_id = ?", projectID).
		Scopes(taskFilterScope(f)).
		Order(taskOrder).Find(&tasks).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

func (r *TaskRepository) Update(ctx context.Context, task *models.ProjectTask) error {
	applyCompletedAt(task)
	// Save with Select("*") so a cleared completed_at is written back as NULL.
	result := r.db.WithContext(ctx).Model(task).Select("*").
		Omit("created_at", clause.Associations).Updates(task)
	if result.Error != nil {
		return fmt.Errorf("failed to update task: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return repositories.ErrNotFound
	}
	return nil
}

func (r *TaskRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.ProjectTask{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete task: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return repositories.ErrNotFound
	}
	return nil
}

func (r *TaskRepository) CountByProject(ctx context.Context, projectID uint) (total, completed int64, err error) {
	db := r.db.WithContext(ctx).Model(&models.ProjectTask{})

	if err = db.Where("project_id = ?", projectID).Count(&total).Error; err != nil {
		return 0, 0, fmt.Errorf("failed to count tasks: %w", err)
	}
	err = r.db.WithContext(ctx).Model(&models.ProjectTask{}).
		Where("project_id = ? AND status = ?", projectID, models.TaskCompleted).
		Count(&completed).Error
	if err != nil {
		return 0, 0, fmt.Errorf("failed to count completed tasks: %w", err)
	}
	return total, completed, nil
}

func (r *TaskRepository) Overdue(ctx context.Context) ([]models.ProjectTask, error) {
	var tasks []models.ProjectTask
	err := r.db.WithContext(ctx).
		Preload("Assignee").
		Preload("Project").
		Where("due_date IS NOT NULL AND due_date < ? AND status <> ?",
			time.Now().UTC(), models.TaskCompleted).
		Order("due_date, id").Find(&tasks).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list overdue tasks: %w", err)
	}
	return tasks, nil
}

// applyCompletedAt keeps the completion timestamp in lockstep with status:
// set exactly when the task is completed, cleared otherwise.
func applyCompletedAt(task *models.ProjectTask) {
	if task.Status == models.TaskCompleted {
		if task.CompletedAt == nil {
			now := time.Now().UTC()
			task.CompletedAt = &now
		}
		return
	}
	task.CompletedAt = nil
}

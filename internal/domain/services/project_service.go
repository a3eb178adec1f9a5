package services

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/praxisapp/praxis/internal/domain/repositories"
	"github.com/praxisapp/praxis/internal/infrastructure/database/models"
)

var ErrDetailMismatch = errors.New("detail payload does not match requirement type")

// ProjectService coordinates projects, their specific-detail child row and
// the task list that feeds the progress counter.
type ProjectService struct {
	projectRepo repositories.ProjectRepository
	taskRepo    repositories.TaskRepository
}

func NewProjectService(projectRepo repositories.ProjectRepository, taskRepo repositories.TaskRepository) *ProjectService {
	return &ProjectService{
		projectRepo: projectRepo,
		taskRepo:    taskRepo,
	}
}

// SaveDetails validates that the payload variant matches the project's
// requirement type and reconciles the child row.
func (s *ProjectService) SaveDetails(ctx context.Context, projectID uint, req *models.RequirementType, details repositories.ProjectDetails) error {
	if req != nil {
		switch *req {
		case models.RequirementMaternity:
			if details.BPC != nil || details.Retirement != nil {
				return ErrDetailMismatch
			}
		case models.RequirementBPC:
			if details.Maternity != nil || details.Retirement != nil {
				return ErrDetailMismatch
			}
		case models.RequirementRetirement:
			if details.Maternity != nil || details.BPC != nil {
				return ErrDetailMismatch
			}
		default:
			return fmt.Errorf("unknown requirement type %q", *req)
		}
	}
	return s.projectRepo.ReplaceDetails(ctx, projectID, req, details)
}

// RecomputeProgress derives the progress percentage from the project's
// tasks and stores it. No tasks means zero progress. Safe to call again
// with unchanged counts.
func (s *ProjectService) RecomputeProgress(ctx context.Context, projectID uint) (int, error) {
	total, completed, err := s.taskRepo.CountByProject(ctx, projectID)
	if err != nil {
		return 0, err
	}

	progress := 0
	if total > 0 {
		progress = int(math.Round(100 * float64(completed) / float64(total)))
	}
	if err := s.projectRepo.UpdateProgress(ctx, projectID, progress); err != nil {
		return 0, err
	}
	return progress, nil
}

// CreateTask adds a task and brings the project progress up to date.
func (s *ProjectService) CreateTask(ctx context.Context, task *models.ProjectTask) error {
	if _, err := s.projectRepo.GetByID(ctx, task.ProjectID); err != nil {
		return err
	}
	if err := s.taskRepo.Create(ctx, task); err != nil {
		return err
	}
	_, err := s.RecomputeProgress(ctx, task.ProjectID)
	return err
}

// UpdateTask saves a task and brings the project progress up to date.
func (s *ProjectService) UpdateTask(ctx context.Context, task *models.ProjectTask) error {
	if err := s.taskRepo.Update(ctx, task); err != nil {
		return err
	}
	_, err := s.RecomputeProgress(ctx, task.ProjectID)
	return err
}

// DeleteTask removes a task and brings the project progress up to date.
func (s *ProjectService) DeleteTask(ctx context.Context, taskID uint) error {
	task, err := s.taskRepo.GetByID(ctx, taskID)
	if err != nil {
		return err
	}
	if err := s.taskRepo.Delete(ctx, taskID); err != nil {
		return err
	}
	_, err = s.RecomputeProgress(ctx, task.ProjectID)
	return err
}

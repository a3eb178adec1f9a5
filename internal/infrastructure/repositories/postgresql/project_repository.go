package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/praxisapp/praxis/internal/domain/query"
	"github.com/praxisapp/praxis/internal/domain/repositories"
	"github.com/praxisapp/praxis/internal/infrastructure/database"
	"github.com/praxisapp/praxis/internal/infrastructure/database/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProjectRepository struct {
	db *database.DB
}

func NewProjectRepository(db *database.DB) repositories.ProjectRepository {
	return &ProjectRepository{db: db}
}

func (r *ProjectRepository) Create(ctx context.Context, project *models.Project) error {
	if err := r.db.WithContext(ctx).Create(project).Error; err != nil {
		return fmt.Errorf("failed to create project: %w", err)
	}
	return nil
}

func (r *ProjectRepository) GetByID(ctx context.Context, id uint) (*models.Project, error) {
	var project models.Project
	err := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Contract").
		Preload("Manager").
		Where("id = ?", id).First(&project).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repositories.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get project: %w", err)
	}
	return &project, nil
}

func projectFilterScope(f repositories.ProjectFilters) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if f.Status != nil {
			db = db.Where("status = ?", *f.Status)
		}
		if f.ClientID != nil {
			db = db.Where("client_id = ?", *f.ClientID)
		}
		if f.ManagerID != nil {
			db = db.Where("manager_id = ?", *f.ManagerID)
		}
		if f.Search != nil {
			db = db.Scopes(searchScope(*f.Search, "name", "description"))
		}
		return db
	}
}

func (r *ProjectRepository) List(ctx context.Context, f repositories.ProjectFilters, page query.Page) ([]models.Project, int64, error) {
	q := r.db.WithContext(ctx).Model(&models.Project{}).Scopes(projectFilterScope(f))

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count projects: %w", err)
	}

	var projects []models.Project
	err := q.Preload("Client").Preload("Contract").Preload("Manager").
		Order("created_at DESC, id").Offset(page.Offset()).Limit(page.Limit).Find(&projects).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list projects: %w", err)
	}
	return projects, total, nil
}

func (r *ProjectRepository) Update(ctx context.Context, project *models.Project) error {
	result := r.db.WithContext(ctx).Save(project)
	if result.Error != nil {
		return fmt.Errorf("failed to update project: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return repositories.ErrNotFound
	}
	return nil
}

func (r *ProjectRepository) Delete(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := deleteDetails(tx, id, nil); err != nil {
			return err
		}
		if err := tx.Where("project_id = ?", id).Delete(&models.ProjectTask{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.Project{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return repositories.ErrNotFound
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return err
		}
		return fmt.Errorf("failed to delete project: %w", err)
	}
	return nil
}

// ReplaceDetails reconciles the specific-detail child row inside one
// transaction: exactly the row matching req survives, rows of the other
// categories are removed.
func (r *ProjectRepository) ReplaceDetails(ctx context.Context, projectID uint, req *models.RequirementType, details repositories.ProjectDetails) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := deleteDetails(tx, projectID, req); err != nil {
			return err
		}
		if req == nil {
			return nil
		}

		switch *req {
		case models.RequirementMaternity:
			if details.Maternity == nil {
				return nil
			}
			details.Maternity.ProjectID = projectID
			return upsertDetail(tx, details.Maternity)
		case models.RequirementBPC:
			if details.BPC == nil {
				return nil
			}
			details.BPC.ProjectID = projectID
			return upsertDetail(tx, details.BPC)
		case models.RequirementRetirement:
			if details.Retirement == nil {
				return nil
			}
			details.Retirement.ProjectID = projectID
			return upsertDetail(tx, details.Retirement)
		default:
			return fmt.Errorf("unknown requirement type %q", *req)
		}
	})
	if err != nil {
		return fmt.Errorf("failed to replace project details: %w", err)
	}
	return nil
}

// deleteDetails removes detail rows of every category except keep; a nil
// keep removes all of them.
func deleteDetails(tx *gorm.DB, projectID uint, keep *models.RequirementType) error {
	if keep == nil || *keep != models.RequirementMaternity {
		if err := tx.Where("project_id = ?", projectID).Delete(&models.ProjectMaternityDetail{}).Error; err != nil {
			return err
		}
	}
	if keep == nil || *keep != models.RequirementBPC {
		if err := tx.Where("project_id = ?", projectID).Delete(&models.ProjectBPCDetail{}).Error; err != nil {
			return err
		}
	}
	if keep == nil || *keep != models.RequirementRetirement {
		if err := tx.Where("project_id = ?", projectID).Delete(&models.ProjectRetirementDetail{}).Error; err != nil {
			return err
		}
	}
	return nil
}

// upsertDetail writes the single detail row for a project, updating in place
// when one already exists. One row per project is enforced by the unique
// index on project_id.
func upsertDetail(tx *gorm.DB, detail interface{}) error {
	return tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "project_id"}},
		UpdateAll: true,
	}).Create(detail).Error
}

func (r *ProjectRepository) GetDetails(ctx context.Context, projectID uint) (repositories.ProjectDetails, error) {
	var details repositories.ProjectDetails
	db := r.db.WithContext(ctx)

	var maternity models.ProjectMaternityDetail
	err := db.Where("project_id = ?", projectID).First(&maternity).Error
	if err == nil {
		details.Maternity = &maternity
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return details, fmt.Errorf("failed to get maternity details: %w", err)
	}

	var bpc models.ProjectBPCDetail
	err = db.Where("project_id = ?", projectID).First(&bpc).Error
	if err == nil {
		details.BPC = &bpc
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return details, fmt.Errorf("failed to get bpc details: %w", err)
	}

	var retirement models.ProjectRetirementDetail
	err = db.Where("project_id = ?", projectID).First(&retirement).Error
	if err == nil {
		details.Retirement = &retirement
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return details, fmt.Errorf("failed to get retirement details: %w", err)
	}

	return details, nil
}

func (r *ProjectRepository) UpdateProgress(ctx context.Context, projectID uint, progress int) error {
	result := r.db.WithContext(ctx).Model(&models.Project{}).
		Where("id = ?", projectID).Update("progress", progress)
	if result.Error != nil {
		return fmt.Errorf("failed to update project progress: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return repositories.ErrNotFound
	}
	return nil
}

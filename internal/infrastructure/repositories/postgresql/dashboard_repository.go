package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/praxisapp/praxis/internal/domain/repositories"
	"github.com/praxisapp/praxis/internal/infrastructure/database"
	"github.com/praxisapp/praxis/internal/infrastructure/database/models"
)

type DashboardRepository struct {
	db *database.DB
}

func NewDashboardRepository(db *database.DB) repositories.DashboardRepository {
	return &DashboardRepository{db: db}
}

// Stats runs the read-only dashboard scans. Each counter is an independent
// statement; there is no cross-statement consistency requirement.
func (r *DashboardRepository) Stats(ctx context.Context) (*repositories.DashboardStats, error) {
	db := r.db.WithContext(ctx)
	stats := &repositories.DashboardStats{
		ProjectsByStatus:    make(map[models.ProjectStatus]int64),
		DocumentsByCategory: make(map[models.DocumentCategory]int64),
	}

	if err := db.Model(&models.Client{}).
		Where("status = ?", models.ClientActive).
		Count(&stats.ActiveClients).Error; err != nil {
		return nil, fmt.Errorf("failed to count active clients: %w", err)
	}

	if err := db.Model(&models.Document{}).
		Where("status = ?", models.DocStatusActive).
		Count(&stats.ActiveDocuments).Error; err != nil {
		return nil, fmt.Errorf("failed to count active documents: %w", err)
	}

	if err := db.Model(&models.Contract{}).
		Where("status IN ?", []models.ContractStatus{models.ContractActive, models.ContractPending}).
		Count(&stats.OpenContracts).Error; err != nil {
		return nil, fmt.Errorf("failed to count open contracts: %w", err)
	}

	if err := db.Model(&models.Project{}).
		Where("status IN ?", []models.ProjectStatus{models.ProjectPlanning, models.ProjectInProgress}).
		Count(&stats.OpenProjects).Error; err != nil {
		return nil, fmt.Errorf("failed to count open projects: %w", err)
	}

	now := time.Now().UTC()
	if err := db.Model(&models.Contract{}).
		Where("status = ? AND end_date IS NOT NULL AND end_date BETWEEN ? AND ?",
			models.ContractActive, now, now.Add(30*24*time.Hour)).
		Count(&stats.ExpiringContracts).Error; err != nil {
		return nil, fmt.Errorf("failed to count expiring contracts: %w", err)
	}

	if err := db.Model(&models.ProjectTask{}).
		Where("due_date IS NOT NULL AND due_date < ? AND status <> ?", now, models.TaskCompleted).
		Count(&stats.OverdueTasks).Error; err != nil {
		return nil, fmt.Errorf("failed to count overdue tasks: %w", err)
	}

	var projectRows []struct {
		Status models.ProjectStatus
		Count  int64
	}
	if err := db.Model(&models.Project{}).
		Select("status, count(*) as count").
		Group("status").Scan(&projectRows).Error; err != nil {
		return nil, fmt.Errorf("failed to group projects by status: %w", err)
	}
	for _, row := range projectRows {
		stats.ProjectsByStatus[row.Status] = row.Count
	}

	var documentRows []struct {
		Category models.DocumentCategory
		Count    int64
	}
	if err := db.Model(&models.Document{}).
		Select("category, count(*) as count").
		Where("status = ?", models.DocStatusActive).
		Group("category").Scan(&documentRows).Error; err != nil {
		return nil, fmt.Errorf("failed to group documents by category: %w", err)
	}
	for _, row := range documentRows {
		stats.DocumentsByCategory[row.Category] = row.Count
	}

	if err := db.Model(&models.Document{}).
		Preload("Client").Preload("Uploader").
		Order("created_at DESC, id DESC").Limit(10).
		Find(&stats.RecentDocuments).Error; err != nil {
		return nil, fmt.Errorf("failed to list recent documents: %w", err)
	}

	return stats, nil
}

// RecentActivity returns the latest records per collection, five each.
func (r *DashboardRepository) RecentActivity(ctx context.Context) (*repositories.DashboardActivity, error) {
	db := r.db.WithContext(ctx)
	activity := &repositories.DashboardActivity{}

	if err := db.Model(&models.Document{}).
		Preload("Client").Preload("Uploader").
		Order("created_at DESC, id DESC").Limit(5).
		Find(&activity.Documents).Error; err != nil {
		return nil, fmt.Errorf("failed to list recent documents: %w", err)
	}

	if err := db.Model(&models.Contract{}).
		Preload("Client").
		Order("created_at DESC, id DESC").Limit(5).
		Find(&activity.Contracts).Error; err != nil {
		return nil, fmt.Errorf("failed to list recent contracts: %w", err)
	}

	if err := db.Model(&models.ProjectTask{}).
		Preload("Project").
		Order("updated_at DESC, id DESC").Limit(5).
		Find(&activity.Tasks).Error; err != nil {
		return nil, fmt.Errorf("failed to list recent tasks: %w", err)
	}

	return activity, nil
}

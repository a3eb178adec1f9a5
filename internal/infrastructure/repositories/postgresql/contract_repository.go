package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/praxisapp/praxis/internal/domain/query"
	"github.com/praxisapp/praxis/internal/domain/repositories"
	"github.com/praxisapp/praxis/internal/infrastructure/database"
	"github.com/praxisapp/praxis/internal/infrastructure/database/models"
	"gorm.io/gorm"
)

type ContractRepository struct {
	db *database.DB
}

func NewContractRepository(db *database.DB) repositories.ContractRepository {
	return &ContractRepository{db: db}
}

func (r *ContractRepository) Create(ctx context.Context, contract *models.Contract) error {
	if err := r.db.WithContext(ctx).Create(contract).Error; err != nil {
		return fmt.Errorf("failed to create contract: %w", err)
	}
	return nil
}

func (r *ContractRepository) GetByID(ctx context.Context, id uint) (*models.Contract, error) {
	var contract models.Contract
	err := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Document").
		Preload("Responsible").
		Where("id = ?", id).First(&contract).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repositories.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get contract: %w", err)
	}
	return &contract, nil
}

func contractFilterScope(f repositories.ContractFilters) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if f.Status != nil {
			db = db.Where("status = ?", *f.Status)
		}
		if f.ClientID != nil {
			db = db.Where("client_id = ?", *f.ClientID)
		}
		if f.ResponsibleID != nil {
			db = db.Where("responsible_id = ?", *f.ResponsibleID)
		}
		if f.Search != nil {
			db = db.Scopes(searchScope(*f.Search, "title", "contract_number"))
		}
		return db
	}
}

func (r *ContractRepository) List(ctx context.Context, f repositories.ContractFilters, page query.Page) ([]models.Contract, int64, error) {
	q := r.db.WithContext(ctx).Model(&models.Contract{}).Scopes(contractFilterScope(f))

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count contracts: %w", err)
	}

	var contracts []models.Contract
	err := q.Preload("Client").Preload("Document").Preload("Responsible").
		Order("start_date DESC, id").Offset(page.Offset()).Limit(page.Limit).Find(&contracts).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list contracts: %w", err)
	}
	return contracts, total, nil
}

func (r *ContractRepository) Update(ctx context.Context, contract *models.Contract) error {
	result := r.db.WithContext(ctx).Save(contract)
	if result.Error != nil {
		return fmt.Errorf("failed to update contract: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return repositories.ErrNotFound
	}
	return nil
}

func (r *ContractRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Contract{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete contract: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return repositories.ErrNotFound
	}
	return nil
}

func (r *ContractRepository) ExpiringWithin(ctx context.Context, d time.Duration) ([]models.Contract, error) {
	now := time.Now().UTC()
	var contracts []models.Contract
	err := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Responsible").
		Where("status = ? AND end_date IS NOT NULL AND end_date BETWEEN ? AND ?",
			models.ContractActive, now, now.Add(d)).
		Order("end_date, id").Find(&contracts).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list expiring contracts: %w", err)
	}
	return contracts, nil
}

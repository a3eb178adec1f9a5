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
)

type ClientRepository struct {
	db *database.DB
}

func NewClientRepository(db *database.DB) repositories.ClientRepository {
	return &ClientRepository{db: db}
}

func (r *ClientRepository) Create(ctx context.Context, client *models.Client) error {
	if err := r.db.WithContext(ctx).Create(client).Error; err != nil {
		return fmt.Errorf("failed to create client: %w", err)
	}
	return nil
}

func (r *ClientRepository) GetByID(ctx context.Context, id uint) (*models.Client, error) {
	var client models.Client
	err := r.db.WithContext(ctx).
		Preload("Creator").
		Where("id = ?", id).First(&client).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repositories.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get client: %w", err)
	}
	return &client, nil
}

func clientFilterScope(f repositories.ClientFilters) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if f.Status != nil {
			db = db.Where("status = ?", *f.Status)
		}
		if f.Search != nil {
			db = db.Scopes(searchScope(*f.Search, "name", "email", "tax_id", "contact_person"))
		}
		return db
	}
}

func (r *ClientRepository) List(ctx context.Context, f repositories.ClientFilters, page query.Page) ([]models.Client, int64, error) {
	q := r.db.WithContext(ctx).Model(&models.Client{}).Scopes(clientFilterScope(f))

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count clients: %w", err)
	}

	var clients []models.Client
	err := q.Preload("Creator").
		Order("name, id").Offset(page.Offset()).Limit(page.Limit).Find(&clients).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list clients: %w", err)
	}
	return clients, total, nil
}

func (r *ClientRepository) Update(ctx context.Context, client *models.Client) error {
	result := r.db.WithContext(ctx).Save(client)
	if result.Error != nil {
		return fmt.Errorf("failed to update client: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return repositories.ErrNotFound
	}
	return nil
}

func (r *ClientRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Client{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete client: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return repositories.ErrNotFound
	}
	return nil
}

func (r *ClientRepository) Documents(ctx context.Context, clientID uint) ([]models.Document, error) {
	var documents []models.Document
	err := r.db.WithContext(ctx).
		Preload("Uploader").
		Where("client_id = ?", clientID).
		Order("created_at DESC, id").Find(&documents).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list client documents: %w", err)
	}
	return documents, nil
}

func (r *ClientRepository) Contracts(ctx context.Context, clientID uint) ([]models.Contract, error) {
	var contracts []models.Contract
	err := r.db.WithContext(ctx).
		Preload("Responsible").
		Where("client_id = ?", clientID).
		Order("start_date DESC, id").Find(&contracts).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list client contracts: %w", err)
	}
	return contracts, nil
}

func (r *ClientRepository) Projects(ctx context.Context, clientID uint) ([]models.Project, error) {
	var projects []models.Project
	err := r.db.WithContext(ctx).
		Preload("Manager").
		Where("client_id = ?", clientID).
		Order("created_at DESC, id").Find(&projects).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list client projects: %w", err)
	}
	return projects, nil
}

package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"voucherhub/internal/model"
)

type BranchRepository interface {
	Create(ctx context.Context, branch *model.Branch) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Branch, error)
	List(ctx context.Context) ([]model.Branch, error)
}

type gormBranchRepository struct {
	db *gorm.DB
}

func NewGormBranchRepository(db *gorm.DB) BranchRepository {
	return &gormBranchRepository{db: db}
}

func (r *gormBranchRepository) Create(ctx context.Context, branch *model.Branch) error {
	return r.db.WithContext(ctx).Create(branch).Error
}

func (r *gormBranchRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Branch, error) {
	var branch model.Branch
	if err := r.db.WithContext(ctx).First(&branch, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &branch, nil
}

func (r *gormBranchRepository) List(ctx context.Context) ([]model.Branch, error) {
	var branches []model.Branch
	if err := r.db.WithContext(ctx).Order("name").Find(&branches).Error; err != nil {
		return nil, err
	}
	return branches, nil
}

package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"voucherhub/internal/model"
)

type CompanyRepository interface {
	Create(ctx context.Context, company *model.Company) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Company, error)
	GetByAcronym(ctx context.Context, acronym string) (*model.Company, error)
	List(ctx context.Context) ([]model.Company, error)
	Update(ctx context.Context, company *model.Company) error
}

type gormCompanyRepository struct {
	db *gorm.DB
}

func NewGormCompanyRepository(db *gorm.DB) CompanyRepository {
	return &gormCompanyRepository{db: db}
}

func (r *gormCompanyRepository) Create(ctx context.Context, company *model.Company) error {
	return r.db.WithContext(ctx).Create(company).Error
}

func (r *gormCompanyRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Company, error) {
	var company model.Company
	if err := r.db.WithContext(ctx).First(&company, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &company, nil
}

func (r *gormCompanyRepository) GetByAcronym(ctx context.Context, acronym string) (*model.Company, error) {
	var company model.Company
	if err := r.db.WithContext(ctx).Where("acronym = ?", acronym).First(&company).Error; err != nil {
		return nil, err
	}
	return &company, nil
}

func (r *gormCompanyRepository) List(ctx context.Context) ([]model.Company, error) {
	var companies []model.Company
	if err := r.db.WithContext(ctx).Order("name").Find(&companies).Error; err != nil {
		return nil, err
	}
	return companies, nil
}

func (r *gormCompanyRepository) Update(ctx context.Context, company *model.Company) error {
	return r.db.WithContext(ctx).Save(company).Error
}

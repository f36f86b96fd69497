package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"voucherhub/internal/model"
)

type AttendantRepository interface {
	Create(ctx context.Context, attendant *model.Attendant) error
	// GetByID preloads the attendant's branch.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Attendant, error)
	GetByEmail(ctx context.Context, email string) (*model.Attendant, error)
	List(ctx context.Context, branchID *uuid.UUID) ([]model.Attendant, error)
}

type gormAttendantRepository struct {
	db *gorm.DB
}

func NewGormAttendantRepository(db *gorm.DB) AttendantRepository {
	return &gormAttendantRepository{db: db}
}

func (r *gormAttendantRepository) Create(ctx context.Context, attendant *model.Attendant) error {
	return r.db.WithContext(ctx).Omit("Branch").Create(attendant).Error
}

func (r *gormAttendantRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Attendant, error) {
	var attendant model.Attendant
	if err := r.db.WithContext(ctx).Preload("Branch").First(&attendant, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &attendant, nil
}

func (r *gormAttendantRepository) GetByEmail(ctx context.Context, email string) (*model.Attendant, error) {
	var attendant model.Attendant
	if err := r.db.WithContext(ctx).Preload("Branch").Where("email = ?", email).First(&attendant).Error; err != nil {
		return nil, err
	}
	return &attendant, nil
}

func (r *gormAttendantRepository) List(ctx context.Context, branchID *uuid.UUID) ([]model.Attendant, error) {
	q := r.db.WithContext(ctx).Preload("Branch").Order("email")
	if branchID != nil {
		q = q.Where("branch_id = ?", *branchID)
	}
	var attendants []model.Attendant
	if err := q.Find(&attendants).Error; err != nil {
		return nil, err
	}
	return attendants, nil
}

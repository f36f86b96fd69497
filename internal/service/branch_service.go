package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"voucherhub/internal/model"
	"voucherhub/internal/repository"
)

type BranchService interface {
	CreateBranch(ctx context.Context, name, location string) (*model.Branch, error)
	GetBranch(ctx context.Context, id uuid.UUID) (*model.Branch, error)
	ListBranches(ctx context.Context) ([]model.Branch, error)
}

type branchService struct {
	branchRepo repository.BranchRepository
}

func NewBranchService(branchRepo repository.BranchRepository) BranchService {
	return &branchService{branchRepo: branchRepo}
}

func (s *branchService) CreateBranch(ctx context.Context, name, location string) (*model.Branch, error) {
	name, location = strings.TrimSpace(name), strings.TrimSpace(location)
	if name == "" || location == "" {
		return nil, fmt.Errorf("%w: name and location required", ErrInvalidInput)
	}

	branch := &model.Branch{Name: name, Location: location}
	if err := s.branchRepo.Create(ctx, branch); err != nil {
		return nil, storageFailure("create branch", err)
	}
	return branch, nil
}

func (s *branchService) GetBranch(ctx context.Context, id uuid.UUID) (*model.Branch, error) {
	branch, err := s.branchRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrBranchNotFound, id)
		}
		return nil, storageFailure("load branch", err)
	}
	return branch, nil
}

func (s *branchService) ListBranches(ctx context.Context) ([]model.Branch, error) {
	branches, err := s.branchRepo.List(ctx)
	if err != nil {
		return nil, storageFailure("list branches", err)
	}
	return branches, nil
}

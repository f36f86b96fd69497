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

type CompanyService interface {
	CreateCompany(ctx context.Context, name, acronym string) (*model.Company, error)
	GetCompany(ctx context.Context, id uuid.UUID) (*model.Company, error)
	ListCompanies(ctx context.Context) ([]model.Company, error)
	// UpdateCompany changes name and/or acronym; empty values are left as is.
	// Codes already issued keep their old acronym.
	UpdateCompany(ctx context.Context, id uuid.UUID, name, acronym string) (*model.Company, error)
}

type companyService struct {
	companyRepo repository.CompanyRepository
}

func NewCompanyService(companyRepo repository.CompanyRepository) CompanyService {
	return &companyService{companyRepo: companyRepo}
}

func (s *companyService) CreateCompany(ctx context.Context, name, acronym string) (*model.Company, error) {
	name = strings.TrimSpace(name)
	acronym, err := normalizeAcronym(acronym)
	if err != nil {
		return nil, err
	}
	if name == "" {
		return nil, fmt.Errorf("%w: name and acronym required", ErrInvalidInput)
	}
	if err := s.ensureAcronymFree(ctx, acronym, uuid.Nil); err != nil {
		return nil, err
	}

	company := &model.Company{Name: name, Acronym: acronym}
	if err := s.companyRepo.Create(ctx, company); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: %s", ErrAcronymTaken, acronym)
		}
		return nil, storageFailure("create company", err)
	}
	return company, nil
}

func (s *companyService) GetCompany(ctx context.Context, id uuid.UUID) (*model.Company, error) {
	company, err := s.companyRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrCompanyNotFound, id)
		}
		return nil, storageFailure("load company", err)
	}
	return company, nil
}

func (s *companyService) ListCompanies(ctx context.Context) ([]model.Company, error) {
	companies, err := s.companyRepo.List(ctx)
	if err != nil {
		return nil, storageFailure("list companies", err)
	}
	return companies, nil
}

func (s *companyService) UpdateCompany(ctx context.Context, id uuid.UUID, name, acronym string) (*model.Company, error) {
	company, err := s.GetCompany(ctx, id)
	if err != nil {
		return nil, err
	}

	if name = strings.TrimSpace(name); name != "" {
		company.Name = name
	}
	if strings.TrimSpace(acronym) != "" {
		normalized, err := normalizeAcronym(acronym)
		if err != nil {
			return nil, err
		}
		if normalized != company.Acronym {
			if err := s.ensureAcronymFree(ctx, normalized, company.ID); err != nil {
				return nil, err
			}
			company.Acronym = normalized
		}
	}

	if err := s.companyRepo.Update(ctx, company); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: %s", ErrAcronymTaken, company.Acronym)
		}
		return nil, storageFailure("update company", err)
	}
	return company, nil
}

func (s *companyService) ensureAcronymFree(ctx context.Context, acronym string, self uuid.UUID) error {
	existing, err := s.companyRepo.GetByAcronym(ctx, acronym)
	if err == nil && existing.ID != self {
		return fmt.Errorf("%w: %s", ErrAcronymTaken, acronym)
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return storageFailure("check acronym", err)
	}
	return nil
}

// normalizeAcronym uppercases and checks the acronym is usable as a code
// prefix: 1-10 characters of [A-Z0-9].
func normalizeAcronym(acronym string) (string, error) {
	acronym = strings.ToUpper(strings.TrimSpace(acronym))
	if acronym == "" || len(acronym) > 10 {
		return "", fmt.Errorf("%w: acronym must be 1-10 characters", ErrInvalidInput)
	}
	for _, r := range acronym {
		if !strings.ContainsRune(codeAlphabet, r) {
			return "", fmt.Errorf("%w: acronym %q may only contain letters and digits", ErrInvalidInput, acronym)
		}
	}
	return acronym, nil
}

package handler

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"voucherhub/internal/model"
	"voucherhub/internal/repository"
	"voucherhub/internal/service"
)

// MockVoucherService is a mock implementation of service.VoucherService.
type MockVoucherService struct {
	mock.Mock
}

func (m *MockVoucherService) Issue(ctx context.Context, companyID, adminID uuid.UUID) (*model.Voucher, error) {
	args := m.Called(ctx, companyID, adminID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Voucher), args.Error(1)
}

func (m *MockVoucherService) IssueBatch(ctx context.Context, companyID uuid.UUID, count int, adminID uuid.UUID) ([]*model.Voucher, error) {
	args := m.Called(ctx, companyID, count, adminID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Voucher), args.Error(1)
}

func (m *MockVoucherService) Verify(ctx context.Context, code string) (*service.VerifyResult, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.VerifyResult), args.Error(1)
}

func (m *MockVoucherService) Use(ctx context.Context, code string, attendantID uuid.UUID) (*service.UseResult, error) {
	args := m.Called(ctx, code, attendantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.UseResult), args.Error(1)
}

func (m *MockVoucherService) Invalidate(ctx context.Context, code string, adminID uuid.UUID) error {
	args := m.Called(ctx, code, adminID)
	return args.Error(0)
}

func (m *MockVoucherService) Revert(ctx context.Context, code string, adminID uuid.UUID) error {
	args := m.Called(ctx, code, adminID)
	return args.Error(0)
}

func (m *MockVoucherService) Get(ctx context.Context, id uuid.UUID) (*model.Voucher, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Voucher), args.Error(1)
}

func (m *MockVoucherService) List(ctx context.Context, filter repository.VoucherFilter) ([]model.Voucher, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Voucher), args.Error(1)
}

func (m *MockVoucherService) Stats(ctx context.Context, companyID *uuid.UUID) (*service.VoucherStats, error) {
	args := m.Called(ctx, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.VoucherStats), args.Error(1)
}

// MockCompanyService is a mock implementation of service.CompanyService.
type MockCompanyService struct {
	mock.Mock
}

func (m *MockCompanyService) CreateCompany(ctx context.Context, name, acronym string) (*model.Company, error) {
	args := m.Called(ctx, name, acronym)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Company), args.Error(1)
}

func (m *MockCompanyService) GetCompany(ctx context.Context, id uuid.UUID) (*model.Company, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Company), args.Error(1)
}

func (m *MockCompanyService) ListCompanies(ctx context.Context) ([]model.Company, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Company), args.Error(1)
}

func (m *MockCompanyService) UpdateCompany(ctx context.Context, id uuid.UUID, name, acronym string) (*model.Company, error) {
	args := m.Called(ctx, id, name, acronym)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Company), args.Error(1)
}

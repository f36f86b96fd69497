package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"voucherhub/internal/model"
	"voucherhub/internal/repository"
	"voucherhub/pkg/crypto"
)

type AdminService interface {
	CreateAdmin(ctx context.Context, email, passcode string) (*model.Admin, error)
	ListAdmins(ctx context.Context) ([]model.Admin, error)
	// EnsureBootstrapAdmin creates the configured admin when no admin exists.
	EnsureBootstrapAdmin(ctx context.Context, email, passcode string) error
}

type adminService struct {
	adminRepo repository.AdminRepository
	logger    *zap.Logger
}

func NewAdminService(adminRepo repository.AdminRepository, logger *zap.Logger) AdminService {
	return &adminService{adminRepo: adminRepo, logger: logger}
}

func (s *adminService) CreateAdmin(ctx context.Context, email, passcode string) (*model.Admin, error) {
	email, err := validateCredentials(email, passcode)
	if err != nil {
		return nil, err
	}
	hash, err := crypto.HashPasscode(passcode)
	if err != nil {
		return nil, fmt.Errorf("hash passcode: %w", err)
	}

	admin := &model.Admin{Email: email, PasscodeHash: hash}
	if err := s.adminRepo.Create(ctx, admin); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: %s", ErrEmailTaken, email)
		}
		return nil, storageFailure("create admin", err)
	}
	return admin, nil
}

func (s *adminService) ListAdmins(ctx context.Context) ([]model.Admin, error) {
	admins, err := s.adminRepo.List(ctx)
	if err != nil {
		return nil, storageFailure("list admins", err)
	}
	return admins, nil
}

func (s *adminService) EnsureBootstrapAdmin(ctx context.Context, email, passcode string) error {
	if email == "" {
		return nil
	}
	count, err := s.adminRepo.Count(ctx)
	if err != nil {
		return storageFailure("count admins", err)
	}
	if count > 0 {
		return nil
	}

	admin, err := s.CreateAdmin(ctx, email, passcode)
	if err != nil {
		return err
	}
	s.logger.Info("bootstrap admin created", zap.String("admin_id", admin.ID.String()), zap.String("email", admin.Email))
	return nil
}

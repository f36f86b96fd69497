package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"voucherhub/internal/model"
	"voucherhub/internal/repository"
	"voucherhub/pkg/crypto"
)

const minPasscodeLength = 6

type AttendantService interface {
	CreateAttendant(ctx context.Context, email, passcode string, branchID, createdBy uuid.UUID) (*model.Attendant, error)
	GetAttendant(ctx context.Context, id uuid.UUID) (*model.Attendant, error)
	ListAttendants(ctx context.Context, branchID *uuid.UUID) ([]model.Attendant, error)
}

type attendantService struct {
	attendantRepo repository.AttendantRepository
	branchRepo    repository.BranchRepository
}

func NewAttendantService(attendantRepo repository.AttendantRepository, branchRepo repository.BranchRepository) AttendantService {
	return &attendantService{
		attendantRepo: attendantRepo,
		branchRepo:    branchRepo,
	}
}

func (s *attendantService) CreateAttendant(ctx context.Context, email, passcode string, branchID, createdBy uuid.UUID) (*model.Attendant, error) {
	email, err := validateCredentials(email, passcode)
	if err != nil {
		return nil, err
	}

	branch, err := s.branchRepo.GetByID(ctx, branchID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrBranchNotFound, branchID)
		}
		return nil, storageFailure("load branch", err)
	}

	hash, err := crypto.HashPasscode(passcode)
	if err != nil {
		return nil, fmt.Errorf("hash passcode: %w", err)
	}

	attendant := &model.Attendant{
		Email:        email,
		PasscodeHash: hash,
		BranchID:     branch.ID,
		CreatedBy:    createdBy,
	}
	if err := s.attendantRepo.Create(ctx, attendant); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: %s", ErrEmailTaken, email)
		}
		return nil, storageFailure("create attendant", err)
	}
	attendant.Branch = branch
	return attendant, nil
}

func (s *attendantService) GetAttendant(ctx context.Context, id uuid.UUID) (*model.Attendant, error) {
	attendant, err := s.attendantRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrAttendantNotFound, id)
		}
		return nil, storageFailure("load attendant", err)
	}
	return attendant, nil
}

func (s *attendantService) ListAttendants(ctx context.Context, branchID *uuid.UUID) ([]model.Attendant, error) {
	attendants, err := s.attendantRepo.List(ctx, branchID)
	if err != nil {
		return nil, storageFailure("list attendants", err)
	}
	return attendants, nil
}

// validateCredentials returns the normalized email.
func validateCredentials(email, passcode string) (string, error) {
	email = normalizeEmail(email)
	if _, err := mail.ParseAddress(email); err != nil {
		return "", fmt.Errorf("%w: invalid email %q", ErrInvalidInput, email)
	}
	if len(passcode) < minPasscodeLength {
		return "", fmt.Errorf("%w: passcode must be at least %d characters", ErrInvalidInput, minPasscodeLength)
	}
	return email, nil
}

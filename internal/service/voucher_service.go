package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"voucherhub/internal/config"
	"voucherhub/internal/model"
	"voucherhub/internal/repository"
)

// VerifyResult is the public view of a voucher's status.
type VerifyResult struct {
	Code        string              `json:"code"`
	Status      model.VoucherStatus `json:"status"`
	CompanyName string              `json:"company"`
	CreatedAt   time.Time           `json:"created_at"`
	UsedAt      *time.Time          `json:"used_at"`
}

// UseResult is the receipt handed back to the redeeming attendant.
type UseResult struct {
	VoucherCode string    `json:"voucher_code"`
	AttendantID uuid.UUID `json:"attendant_id"`
	UsedBy      string    `json:"used_by"`
	BranchID    uuid.UUID `json:"branch_id"`
	BranchName  string    `json:"branch"`
	UsedAt      time.Time `json:"used_at"`
}

type VoucherStats struct {
	CompanyID       *uuid.UUID `json:"company_id,omitempty"`
	CompanyName     string     `json:"company_name,omitempty"`
	Total           int64      `json:"total_vouchers"`
	Active          int64      `json:"active_vouchers"`
	Used            int64      `json:"used_vouchers"`
	Invalid         int64      `json:"invalid_vouchers"`
	UsagePercentage float64    `json:"usage_percentage"`
}

type VoucherService interface {
	Issue(ctx context.Context, companyID, adminID uuid.UUID) (*model.Voucher, error)
	IssueBatch(ctx context.Context, companyID uuid.UUID, count int, adminID uuid.UUID) ([]*model.Voucher, error)
	Verify(ctx context.Context, code string) (*VerifyResult, error)
	Use(ctx context.Context, code string, attendantID uuid.UUID) (*UseResult, error)
	Invalidate(ctx context.Context, code string, adminID uuid.UUID) error
	Revert(ctx context.Context, code string, adminID uuid.UUID) error
	Get(ctx context.Context, id uuid.UUID) (*model.Voucher, error)
	List(ctx context.Context, filter repository.VoucherFilter) ([]model.Voucher, error)
	Stats(ctx context.Context, companyID *uuid.UUID) (*VoucherStats, error)
}

type voucherService struct {
	cfg           config.VoucherConfig
	voucherRepo   repository.VoucherRepository
	companyRepo   repository.CompanyRepository
	attendantRepo repository.AttendantRepository
	resolver      *CodeResolver
	logger        *zap.Logger
	now           func() time.Time
}

func NewVoucherService(
	cfg config.VoucherConfig,
	voucherRepo repository.VoucherRepository,
	companyRepo repository.CompanyRepository,
	attendantRepo repository.AttendantRepository,
	generator *CodeGenerator,
	logger *zap.Logger,
) VoucherService {
	cfg = withVoucherDefaults(cfg)
	return &voucherService{
		cfg:           cfg,
		voucherRepo:   voucherRepo,
		companyRepo:   companyRepo,
		attendantRepo: attendantRepo,
		resolver:      NewCodeResolver(generator, voucherRepo, cfg.CodeLength, cfg.MaxGenerationAttempts, logger),
		logger:        logger,
		now:           func() time.Time { return time.Now().UTC() },
	}
}

func (s *voucherService) Issue(ctx context.Context, companyID, adminID uuid.UUID) (*model.Voucher, error) {
	company, err := s.lookupCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}
	acronym, err := companyAcronym(company)
	if err != nil {
		return nil, err
	}

	// A duplicate key here means another issuer stored the same candidate
	// between our lookup and insert; draw again.
	for attempt := 1; attempt <= s.cfg.DuplicateRetryLimit; attempt++ {
		code, err := s.resolver.Resolve(ctx, acronym, nil)
		if err != nil {
			return nil, err
		}

		voucher := newVoucher(code, company.ID, adminID)
		err = s.voucherRepo.Create(ctx, voucher)
		if err == nil {
			s.logger.Info("voucher issued",
				zap.String("code", voucher.Code),
				zap.String("company_id", company.ID.String()),
				zap.String("admin_id", adminID.String()))
			return voucher, nil
		}
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, storageFailure("create voucher", err)
		}
		s.logger.Warn("voucher code taken concurrently, retrying",
			zap.String("code", code), zap.Int("attempt", attempt))
	}
	return nil, fmt.Errorf("%w: code kept colliding on insert for %s", ErrGenerationExhausted, acronym)
}

func (s *voucherService) IssueBatch(ctx context.Context, companyID uuid.UUID, count int, adminID uuid.UUID) ([]*model.Voucher, error) {
	if count < 1 || count > s.cfg.BatchMax {
		return nil, fmt.Errorf("%w: %d is outside 1..%d", ErrInvalidCount, count, s.cfg.BatchMax)
	}
	company, err := s.lookupCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}
	acronym, err := companyAcronym(company)
	if err != nil {
		return nil, err
	}

	for attempt := 1; attempt <= s.cfg.DuplicateRetryLimit; attempt++ {
		reserved := make(map[string]struct{}, count)
		vouchers := make([]*model.Voucher, 0, count)
		for i := 0; i < count; i++ {
			code, err := s.resolver.Resolve(ctx, acronym, reserved)
			if err != nil {
				return nil, err
			}
			reserved[code] = struct{}{}
			vouchers = append(vouchers, newVoucher(code, company.ID, adminID))
		}

		err := s.voucherRepo.CreateBatch(ctx, vouchers)
		if err == nil {
			s.logger.Info("voucher batch issued",
				zap.String("company_id", company.ID.String()),
				zap.String("admin_id", adminID.String()),
				zap.Int("count", count))
			return vouchers, nil
		}
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			s.logger.Error("voucher batch rolled back", zap.Int("count", count), zap.Error(err))
			return nil, storageFailure("create voucher batch", err)
		}
		s.logger.Warn("voucher batch hit a concurrent code, regenerating",
			zap.Int("count", count), zap.Int("attempt", attempt))
	}
	return nil, fmt.Errorf("%w: batch of %d kept colliding on insert for %s", ErrGenerationExhausted, count, acronym)
}

func (s *voucherService) Verify(ctx context.Context, code string) (*VerifyResult, error) {
	code, err := normalizeCode(code)
	if err != nil {
		return nil, err
	}

	voucher, err := s.voucherRepo.GetByCode(ctx, code)
	if err != nil {
		return nil, s.voucherLookupError(code, err)
	}
	company, err := s.companyRepo.GetByID(ctx, voucher.CompanyID)
	if err != nil {
		return nil, storageFailure("load voucher company", err)
	}

	return &VerifyResult{
		Code:        voucher.Code,
		Status:      voucher.Status,
		CompanyName: company.Name,
		CreatedAt:   voucher.CreatedAt,
		UsedAt:      voucher.UsedAt,
	}, nil
}

func (s *voucherService) Use(ctx context.Context, code string, attendantID uuid.UUID) (*UseResult, error) {
	code, err := normalizeCode(code)
	if err != nil {
		return nil, err
	}

	attendant, err := s.attendantRepo.GetByID(ctx, attendantID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrAttendantNotFound, attendantID)
		}
		return nil, storageFailure("load attendant", err)
	}

	usedAt := s.now()
	voucher, err := s.voucherRepo.Transition(ctx, code, repository.StatusChange{
		From:   []model.VoucherStatus{model.VoucherStatusActive},
		To:     model.VoucherStatusUsed,
		UsedBy: &attendant.ID,
		UsedAt: &usedAt,
	})
	if err != nil {
		return nil, s.transitionError(code, "use", voucher, err)
	}

	result := &UseResult{
		VoucherCode: voucher.Code,
		AttendantID: attendant.ID,
		UsedBy:      attendant.Email,
		BranchID:    attendant.BranchID,
		UsedAt:      usedAt,
	}
	if attendant.Branch != nil {
		result.BranchName = attendant.Branch.Name
	}

	s.logger.Info("voucher used",
		zap.String("code", voucher.Code),
		zap.String("attendant_id", attendant.ID.String()),
		zap.String("branch_id", attendant.BranchID.String()))
	return result, nil
}

func (s *voucherService) Invalidate(ctx context.Context, code string, adminID uuid.UUID) error {
	code, err := normalizeCode(code)
	if err != nil {
		return err
	}

	voucher, err := s.voucherRepo.Transition(ctx, code, repository.StatusChange{
		From: []model.VoucherStatus{model.VoucherStatusActive, model.VoucherStatusUsed},
		To:   model.VoucherStatusInvalid,
	})
	if err != nil {
		return s.transitionError(code, "invalidate", voucher, err)
	}

	s.logger.Info("voucher invalidated",
		zap.String("code", voucher.Code), zap.String("admin_id", adminID.String()))
	return nil
}

func (s *voucherService) Revert(ctx context.Context, code string, adminID uuid.UUID) error {
	code, err := normalizeCode(code)
	if err != nil {
		return err
	}

	voucher, err := s.voucherRepo.Transition(ctx, code, repository.StatusChange{
		From: []model.VoucherStatus{model.VoucherStatusUsed},
		To:   model.VoucherStatusActive,
	})
	if err != nil {
		return s.transitionError(code, "revert", voucher, err)
	}

	s.logger.Info("voucher usage reverted",
		zap.String("code", voucher.Code), zap.String("admin_id", adminID.String()))
	return nil
}

func (s *voucherService) Get(ctx context.Context, id uuid.UUID) (*model.Voucher, error) {
	voucher, err := s.voucherRepo.GetByID(ctx, id)
	if err != nil {
		return nil, s.voucherLookupError(id.String(), err)
	}
	return voucher, nil
}

func (s *voucherService) List(ctx context.Context, filter repository.VoucherFilter) ([]model.Voucher, error) {
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, filter.Status)
	}
	if filter.Limit < 0 || filter.Offset < 0 {
		return nil, fmt.Errorf("%w: negative limit or offset", ErrInvalidInput)
	}
	if filter.CompanyID != nil {
		if _, err := s.lookupCompany(ctx, *filter.CompanyID); err != nil {
			return nil, err
		}
	}

	vouchers, err := s.voucherRepo.List(ctx, filter)
	if err != nil {
		return nil, storageFailure("list vouchers", err)
	}
	return vouchers, nil
}

func (s *voucherService) Stats(ctx context.Context, companyID *uuid.UUID) (*VoucherStats, error) {
	stats := &VoucherStats{CompanyID: companyID}
	if companyID != nil {
		company, err := s.lookupCompany(ctx, *companyID)
		if err != nil {
			return nil, err
		}
		stats.CompanyName = company.Name
	}

	counts, err := s.voucherRepo.CountByStatus(ctx, companyID)
	if err != nil {
		return nil, storageFailure("count vouchers", err)
	}
	stats.Active = counts[model.VoucherStatusActive]
	stats.Used = counts[model.VoucherStatusUsed]
	stats.Invalid = counts[model.VoucherStatusInvalid]
	stats.Total = stats.Active + stats.Used + stats.Invalid
	stats.UsagePercentage = usagePercentage(stats.Used, stats.Total)
	return stats, nil
}

func (s *voucherService) lookupCompany(ctx context.Context, id uuid.UUID) (*model.Company, error) {
	company, err := s.companyRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrCompanyNotFound, id)
		}
		return nil, storageFailure("load company", err)
	}
	return company, nil
}

func (s *voucherService) voucherLookupError(key string, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: %s", ErrVoucherNotFound, key)
	}
	return storageFailure("load voucher", err)
}

// transitionError maps a failed Transition to the service error taxonomy.
// current is the voucher as stored when err is ErrStatusConflict.
func (s *voucherService) transitionError(code, action string, current *model.Voucher, err error) error {
	switch {
	case errors.Is(err, repository.ErrStatusConflict) && current != nil:
		s.logger.Info("voucher transition rejected",
			zap.String("code", code),
			zap.String("action", action),
			zap.String("status", string(current.Status)))
		return &TransitionError{Code: code, Action: action, Status: current.Status}
	case errors.Is(err, gorm.ErrRecordNotFound):
		return fmt.Errorf("%w: %s", ErrVoucherNotFound, code)
	default:
		return storageFailure(action+" voucher", err)
	}
}

func withVoucherDefaults(cfg config.VoucherConfig) config.VoucherConfig {
	d := config.DefaultVoucherConfig()
	if cfg.CodeLength <= 0 {
		cfg.CodeLength = d.CodeLength
	}
	if cfg.MaxGenerationAttempts <= 0 {
		cfg.MaxGenerationAttempts = d.MaxGenerationAttempts
	}
	if cfg.BatchMax <= 0 {
		cfg.BatchMax = d.BatchMax
	}
	if cfg.DuplicateRetryLimit <= 0 {
		cfg.DuplicateRetryLimit = d.DuplicateRetryLimit
	}
	return cfg
}

func newVoucher(code string, companyID, adminID uuid.UUID) *model.Voucher {
	return &model.Voucher{
		ID:        uuid.New(),
		Code:      code,
		CompanyID: companyID,
		Status:    model.VoucherStatusActive,
		CreatedBy: adminID,
	}
}

func companyAcronym(company *model.Company) (string, error) {
	acronym := strings.ToUpper(strings.TrimSpace(company.Acronym))
	if acronym == "" {
		return "", fmt.Errorf("%w: company %s has no acronym", ErrInvalidInput, company.ID)
	}
	return acronym, nil
}

func normalizeCode(code string) (string, error) {
	code = model.NormalizeCode(code)
	if code == "" {
		return "", fmt.Errorf("%w: empty voucher code", ErrInvalidInput)
	}
	return code, nil
}

func usagePercentage(used, total int64) float64 {
	if total == 0 {
		return 0
	}
	return float64(used) / float64(total) * 100
}

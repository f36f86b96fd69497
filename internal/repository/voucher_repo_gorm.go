package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"voucherhub/internal/model"
)

// batchInsertSize bounds the number of rows per INSERT statement.
const batchInsertSize = 500

type gormVoucherRepository struct {
	db *gorm.DB
}

// NewGormVoucherRepository works on both the postgres and sqlite dialects.
// The *gorm.DB must be opened with TranslateError enabled.
func NewGormVoucherRepository(db *gorm.DB) VoucherRepository {
	return &gormVoucherRepository{db: db}
}

func (r *gormVoucherRepository) Create(ctx context.Context, voucher *model.Voucher) error {
	return r.db.WithContext(ctx).Create(voucher).Error
}

func (r *gormVoucherRepository) CreateBatch(ctx context.Context, vouchers []*model.Voucher) error {
	if len(vouchers) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.CreateInBatches(vouchers, batchInsertSize).Error
	})
}

func (r *gormVoucherRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Voucher, error) {
	var voucher model.Voucher
	if err := r.db.WithContext(ctx).First(&voucher, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &voucher, nil
}

func (r *gormVoucherRepository) GetByCode(ctx context.Context, code string) (*model.Voucher, error) {
	return getByCode(r.db.WithContext(ctx), model.NormalizeCode(code))
}

func (r *gormVoucherRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Voucher{}).
		Where("code = ?", model.NormalizeCode(code)).
		Limit(1).
		Count(&count).Error
	return count > 0, err
}

// Transition updates the row only if its status is still one of change.From,
// so two racing transitions on the same code cannot both succeed.
func (r *gormVoucherRepository) Transition(ctx context.Context, code string, change StatusChange) (*model.Voucher, error) {
	code = model.NormalizeCode(code)
	updates := map[string]interface{}{
		"status":  change.To,
		"used_by": nil,
		"used_at": nil,
	}
	if change.UsedBy != nil {
		updates["used_by"] = *change.UsedBy
	}
	if change.UsedAt != nil {
		updates["used_at"] = *change.UsedAt
	}

	var (
		result   *model.Voucher
		conflict bool
	)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.Voucher{}).
			Where("code = ? AND status IN ?", code, change.From).
			Updates(updates)
		if res.Error != nil {
			return res.Error
		}
		v, err := getByCode(tx, code)
		if err != nil {
			return err
		}
		result = v
		conflict = res.RowsAffected == 0
		return nil
	})
	if err != nil {
		return nil, err
	}
	if conflict {
		return result, ErrStatusConflict
	}
	return result, nil
}

func (r *gormVoucherRepository) List(ctx context.Context, filter VoucherFilter) ([]model.Voucher, error) {
	q := r.db.WithContext(ctx).Model(&model.Voucher{})
	if filter.CompanyID != nil {
		q = q.Where("company_id = ?", *filter.CompanyID)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		q = q.Offset(filter.Offset)
	}

	var vouchers []model.Voucher
	if err := q.Order("created_at DESC").Order("code").Find(&vouchers).Error; err != nil {
		return nil, err
	}
	return vouchers, nil
}

func (r *gormVoucherRepository) CountByStatus(ctx context.Context, companyID *uuid.UUID) (map[model.VoucherStatus]int64, error) {
	var rows []struct {
		Status model.VoucherStatus
		Count  int64
	}
	q := r.db.WithContext(ctx).Model(&model.Voucher{}).Select("status, COUNT(*) AS count")
	if companyID != nil {
		q = q.Where("company_id = ?", *companyID)
	}
	if err := q.Group("status").Scan(&rows).Error; err != nil {
		return nil, err
	}

	counts := make(map[model.VoucherStatus]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}

func getByCode(db *gorm.DB, code string) (*model.Voucher, error) {
	var voucher model.Voucher
	if err := db.Where("code = ?", code).First(&voucher).Error; err != nil {
		return nil, err
	}
	return &voucher, nil
}

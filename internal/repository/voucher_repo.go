package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"voucherhub/internal/model"
)

// ErrStatusConflict is returned by Transition when the voucher exists but its
// status is not one of the allowed source states.
var ErrStatusConflict = errors.New("voucher status conflict")

// VoucherFilter narrows List. Zero values mean "any".
type VoucherFilter struct {
	CompanyID *uuid.UUID
	Status    model.VoucherStatus
	Limit     int
	Offset    int
}

// StatusChange describes a compare-and-swap on a voucher's status.
// UsedBy and UsedAt are written as given, so nil clears them.
type StatusChange struct {
	From   []model.VoucherStatus
	To     model.VoucherStatus
	UsedBy *uuid.UUID
	UsedAt *time.Time
}

func (c StatusChange) allows(s model.VoucherStatus) bool {
	for _, from := range c.From {
		if from == s {
			return true
		}
	}
	return false
}

// VoucherRepository persists vouchers.
//
// Create and CreateBatch return gorm.ErrDuplicatedKey when a code is already
// taken; CreateBatch persists all vouchers or none. Lookups return
// gorm.ErrRecordNotFound when nothing matches. Transition returns the updated
// voucher, or the current voucher together with ErrStatusConflict.
type VoucherRepository interface {
	Create(ctx context.Context, voucher *model.Voucher) error
	CreateBatch(ctx context.Context, vouchers []*model.Voucher) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Voucher, error)
	GetByCode(ctx context.Context, code string) (*model.Voucher, error)
	ExistsByCode(ctx context.Context, code string) (bool, error)
	Transition(ctx context.Context, code string, change StatusChange) (*model.Voucher, error)
	List(ctx context.Context, filter VoucherFilter) ([]model.Voucher, error)
	CountByStatus(ctx context.Context, companyID *uuid.UUID) (map[model.VoucherStatus]int64, error)
}

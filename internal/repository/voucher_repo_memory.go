package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"voucherhub/internal/model"
)

// memoryVoucherRepository mirrors the gorm repository's semantics in process.
// A single mutex serializes writes, which makes CreateBatch and Transition
// trivially atomic.
type memoryVoucherRepository struct {
	mu     sync.RWMutex
	byCode map[string]*model.Voucher
	byID   map[uuid.UUID]*model.Voucher
	now    func() time.Time
}

func NewMemoryVoucherRepository() VoucherRepository {
	return &memoryVoucherRepository{
		byCode: make(map[string]*model.Voucher),
		byID:   make(map[uuid.UUID]*model.Voucher),
		now:    time.Now,
	}
}

func (r *memoryVoucherRepository) Create(_ context.Context, voucher *model.Voucher) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.prepare(voucher)
	if r.taken(voucher) {
		return gorm.ErrDuplicatedKey
	}
	r.insert(voucher)
	return nil
}

func (r *memoryVoucherRepository) CreateBatch(_ context.Context, vouchers []*model.Voucher) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	seen := make(map[string]struct{}, len(vouchers))
	for _, v := range vouchers {
		r.prepare(v)
		if _, dup := seen[v.Code]; dup || r.taken(v) {
			return gorm.ErrDuplicatedKey
		}
		seen[v.Code] = struct{}{}
	}
	for _, v := range vouchers {
		r.insert(v)
	}
	return nil
}

func (r *memoryVoucherRepository) GetByID(_ context.Context, id uuid.UUID) (*model.Voucher, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	v, ok := r.byID[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *v
	return &cp, nil
}

func (r *memoryVoucherRepository) GetByCode(_ context.Context, code string) (*model.Voucher, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	v, ok := r.byCode[model.NormalizeCode(code)]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *v
	return &cp, nil
}

func (r *memoryVoucherRepository) ExistsByCode(_ context.Context, code string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.byCode[model.NormalizeCode(code)]
	return ok, nil
}

func (r *memoryVoucherRepository) Transition(_ context.Context, code string, change StatusChange) (*model.Voucher, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	v, ok := r.byCode[model.NormalizeCode(code)]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	if !change.allows(v.Status) {
		cp := *v
		return &cp, ErrStatusConflict
	}

	v.Status = change.To
	v.UsedBy = copyUUID(change.UsedBy)
	v.UsedAt = copyTime(change.UsedAt)
	v.UpdatedAt = r.now()
	cp := *v
	return &cp, nil
}

func (r *memoryVoucherRepository) List(_ context.Context, filter VoucherFilter) ([]model.Voucher, error) {
	r.mu.RLock()
	matched := make([]model.Voucher, 0, len(r.byID))
	for _, v := range r.byID {
		if filter.CompanyID != nil && v.CompanyID != *filter.CompanyID {
			continue
		}
		if filter.Status != "" && v.Status != filter.Status {
			continue
		}
		matched = append(matched, *v)
	}
	r.mu.RUnlock()

	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].CreatedAt.After(matched[j].CreatedAt)
		}
		return matched[i].Code < matched[j].Code
	})

	if filter.Offset > 0 {
		if filter.Offset >= len(matched) {
			return []model.Voucher{}, nil
		}
		matched = matched[filter.Offset:]
	}
	if filter.Limit > 0 && filter.Limit < len(matched) {
		matched = matched[:filter.Limit]
	}
	return matched, nil
}

func (r *memoryVoucherRepository) CountByStatus(_ context.Context, companyID *uuid.UUID) (map[model.VoucherStatus]int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	counts := make(map[model.VoucherStatus]int64)
	for _, v := range r.byID {
		if companyID != nil && v.CompanyID != *companyID {
			continue
		}
		counts[v.Status]++
	}
	return counts, nil
}

func (r *memoryVoucherRepository) prepare(v *model.Voucher) {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	v.Code = model.NormalizeCode(v.Code)
	if v.Status == "" {
		v.Status = model.VoucherStatusActive
	}
	now := r.now()
	if v.CreatedAt.IsZero() {
		v.CreatedAt = now
	}
	v.UpdatedAt = now
}

func (r *memoryVoucherRepository) taken(v *model.Voucher) bool {
	_, codeTaken := r.byCode[v.Code]
	_, idTaken := r.byID[v.ID]
	return codeTaken || idTaken
}

func (r *memoryVoucherRepository) insert(v *model.Voucher) {
	cp := *v
	r.byCode[cp.Code] = &cp
	r.byID[cp.ID] = &cp
}

func copyUUID(id *uuid.UUID) *uuid.UUID {
	if id == nil {
		return nil
	}
	cp := *id
	return &cp
}

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	cp := *t
	return &cp
}

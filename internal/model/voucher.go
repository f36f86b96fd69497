package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type VoucherStatus string

const (
	VoucherStatusActive  VoucherStatus = "active"
	VoucherStatusUsed    VoucherStatus = "used"
	VoucherStatusInvalid VoucherStatus = "invalid"
)

// Valid reports whether s is one of the known voucher statuses.
func (s VoucherStatus) Valid() bool {
	switch s {
	case VoucherStatusActive, VoucherStatusUsed, VoucherStatusInvalid:
		return true
	}
	return false
}

// Voucher is a single-use code issued by an admin on behalf of a company.
// UsedBy and UsedAt are set together, and only while Status is used.
type Voucher struct {
	ID        uuid.UUID     `gorm:"type:uuid;primaryKey" json:"id"`
	Code      string        `gorm:"type:varchar(32);uniqueIndex;not null" json:"code"`
	CompanyID uuid.UUID     `gorm:"type:uuid;not null;index" json:"company_id"`
	Status    VoucherStatus `gorm:"type:varchar(16);not null;default:'active';index" json:"status"`
	UsedBy    *uuid.UUID    `gorm:"type:uuid" json:"used_by"`
	UsedAt    *time.Time    `json:"used_at"`
	CreatedBy uuid.UUID     `gorm:"type:uuid;not null" json:"created_by"`
	CreatedAt time.Time     `gorm:"index" json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

func (Voucher) TableName() string { return "vouchers" }

func (v *Voucher) BeforeCreate(tx *gorm.DB) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	v.Code = NormalizeCode(v.Code)
	if v.Status == "" {
		v.Status = VoucherStatusActive
	}
	return nil
}

// NormalizeCode is applied to every code before it is stored or looked up.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

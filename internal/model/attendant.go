package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Attendant is a branch-scoped actor that may only redeem vouchers.
type Attendant struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Email        string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	PasscodeHash string    `gorm:"type:varchar(255);not null" json:"-"`
	BranchID     uuid.UUID `gorm:"type:uuid;not null;index" json:"branch_id"`
	CreatedBy    uuid.UUID `gorm:"type:uuid;not null" json:"created_by"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	Branch *Branch `gorm:"foreignKey:BranchID" json:"branch,omitempty"`
}

func (Attendant) TableName() string { return "attendants" }

func (a *Attendant) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

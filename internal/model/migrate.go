package model

import "gorm.io/gorm"

// AutoMigrate runs GORM auto-migration for all models.
// The unique index on vouchers.code is what keeps concurrent issuers from
// persisting the same code twice.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&Admin{},
		&Company{},
		&Branch{},
		&Attendant{},
		&Voucher{},
	); err != nil {
		return err
	}

	// Status counts are always grouped per company.
	return db.Exec(
		"CREATE INDEX IF NOT EXISTS idx_vouchers_company_status ON vouchers (company_id, status)",
	).Error
}

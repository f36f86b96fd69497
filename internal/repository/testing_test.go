package repository

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"voucherhub/internal/config"
	"voucherhub/internal/model"
)

// newTestDB opens a private in-memory SQLite database with the full schema.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := config.NewSQLiteDB(config.SQLiteConfig{
		Path: "file:" + name + "?mode=memory&cache=shared",
	})
	require.NoError(t, err)
	require.NoError(t, model.AutoMigrate(db))

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func testVoucher(code string, companyID uuid.UUID) *model.Voucher {
	return &model.Voucher{
		Code:      code,
		CompanyID: companyID,
		CreatedBy: uuid.New(),
	}
}

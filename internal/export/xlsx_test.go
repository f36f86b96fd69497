package export

import (
	"bytes"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"voucherhub/internal/model"
)

func TestWriteVouchers(t *testing.T) {
	companyID := uuid.New()
	created := time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)
	used := created.Add(2 * time.Hour)
	attendant := uuid.New()

	vouchers := []model.Voucher{
		{Code: "FB-AAAAAA", CompanyID: companyID, Status: model.VoucherStatusActive, CreatedAt: created},
		{Code: "FB-BBBBBB", CompanyID: companyID, Status: model.VoucherStatusUsed, CreatedAt: created, UsedAt: &used, UsedBy: &attendant},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteVouchers(&buf, vouchers, map[string]string{companyID.String(): "Fatima Bakes"}))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(sheetName)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Code", "Status", "Company", "Created At", "Used At"}, rows[0])

	cells := map[string]string{
		"A2": "FB-AAAAAA",
		"B2": "active",
		"C2": "Fatima Bakes",
		"D2": "2026-03-01 09:30:00",
		"E2": "",
		"A3": "FB-BBBBBB",
		"B3": "used",
		"E3": "2026-03-01 11:30:00",
	}
	for cell, want := range cells {
		got, err := f.GetCellValue(sheetName, cell)
		require.NoError(t, err)
		assert.Equal(t, want, got, cell)
	}
}

func TestWriteVouchers_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteVouchers(&buf, nil, nil))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(sheetName)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

package export

import (
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"

	"voucherhub/internal/model"
)

const (
	sheetName   = "Vouchers"
	timeLayout  = "2006-01-02 15:04:05"
	ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

var header = []interface{}{"Code", "Status", "Company", "Created At", "Used At"}

// WriteVouchers renders vouchers as a single-sheet workbook, one row per
// voucher, for printing or handing to the issuing company. companyNames maps
// company ids to display names; unknown ids are left blank.
func WriteVouchers(w io.Writer, vouchers []model.Voucher, companyNames map[string]string) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	if err := f.SetSheetRow(sheetName, "A1", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for i, v := range vouchers {
		usedAt := ""
		if v.UsedAt != nil {
			usedAt = formatTime(*v.UsedAt)
		}
		row := []interface{}{
			v.Code,
			string(v.Status),
			companyNames[v.CompanyID.String()],
			formatTime(v.CreatedAt),
			usedAt,
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			return fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	if err := f.SetColWidth(sheetName, "A", "A", 18); err != nil {
		return err
	}
	if err := f.SetColWidth(sheetName, "C", "E", 22); err != nil {
		return err
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

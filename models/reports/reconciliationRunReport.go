package reports

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"bitbucket.org/mmdatafocus/recon_backend/config"
	"bitbucket.org/mmdatafocus/recon_backend/models"
)

// GetRecentRuns returns the latest reconciliation runs, newest first.
func GetRecentRuns(ctx context.Context, limit int) ([]models.ReconciliationRun, error) {
	if limit <= 0 {
		limit = 30
	}
	var runs []models.ReconciliationRun
	db := config.GetDB()
	if err := db.WithContext(ctx).Order("id desc").Limit(limit).Find(&runs).Error; err != nil {
		return nil, err
	}
	return runs, nil
}

// ExportRunsExcel renders recent runs into a workbook finance can open
// directly; how the file is delivered (HTTP attachment, local path) is up to
// the caller.
func ExportRunsExcel(ctx context.Context, limit int) (*excelize.File, error) {
	runs, err := GetRecentRuns(ctx, limit)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	sheet := "Reconciliation"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, err
	}

	headers := []string{
		"RunId", "Status", "StartedAt",
		"TotalOrders", "TotalInternalSalesUSD", "TotalSettlements", "TotalBankSettledUSD",
		"OrphanCount", "OrphanTotalUSD", "DiscrepancyGapUSD",
	}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}

	for i, run := range runs {
		row := i + 2
		f.SetCellValue(sheet, "A"+fmt.Sprint(row), run.ID)
		f.SetCellValue(sheet, "B"+fmt.Sprint(row), string(run.Status))
		f.SetCellValue(sheet, "C"+fmt.Sprint(row), run.StartedAt.Format("2006-01-02 15:04:05"))
		f.SetCellValue(sheet, "D"+fmt.Sprint(row), run.TotalOrders)
		f.SetCellValue(sheet, "E"+fmt.Sprint(row), run.TotalInternalSales.String())
		f.SetCellValue(sheet, "F"+fmt.Sprint(row), run.TotalSettlements)
		f.SetCellValue(sheet, "G"+fmt.Sprint(row), run.TotalBankSettled.String())
		f.SetCellValue(sheet, "H"+fmt.Sprint(row), run.OrphanCount)
		f.SetCellValue(sheet, "I"+fmt.Sprint(row), run.OrphanTotal.String())
		f.SetCellValue(sheet, "J"+fmt.Sprint(row), run.DiscrepancyGap.String())
	}

	return f, nil
}

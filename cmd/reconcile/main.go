package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/uuid"

	"bitbucket.org/mmdatafocus/recon_backend/config"
	"bitbucket.org/mmdatafocus/recon_backend/models"
	"bitbucket.org/mmdatafocus/recon_backend/models/reports"
	"bitbucket.org/mmdatafocus/recon_backend/utils"
	"bitbucket.org/mmdatafocus/recon_backend/workflow"
)

func main() {
	exportPath := flag.String("export", "", "Optional: write recent runs to this xlsx path after reconciling.")
	exportLimit := flag.Int("export-limit", 30, "How many recent runs to include in the export.")
	flag.Parse()

	ctx := utils.SetCorrelationIdInContext(context.Background(), uuid.NewString())

	// Explicit DB connect (config does not connect DB in init()).
	config.ConnectDatabaseWithRetry()
	db := config.GetDB()
	if db == nil {
		fmt.Fprintln(os.Stderr, "database not initialized (config.GetDB returned nil)")
		os.Exit(1)
	}

	// Ensure schema is up-to-date (creates reconciliation_runs if missing).
	models.MigrateTable()

	run, err := workflow.ProcessReconciliationWorkflow(ctx, db, config.GetLogger())
	if err != nil {
		fmt.Fprintf(os.Stderr, "reconciliation failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Reconciliation run %d (%s)\n", run.ID, run.CorrelationId)
	fmt.Printf("  total_orders:             %d\n", run.TotalOrders)
	fmt.Printf("  total_internal_sales_usd: %s\n", run.TotalInternalSales)
	fmt.Printf("  total_settlements:        %d\n", run.TotalSettlements)
	fmt.Printf("  total_bank_settled_usd:   %s\n", run.TotalBankSettled)
	fmt.Printf("  orphan_count:             %d\n", run.OrphanCount)
	fmt.Printf("  orphan_total_usd:         %s\n", run.OrphanTotal)
	fmt.Printf("  discrepancy_gap_usd:      %s\n", run.DiscrepancyGap)

	if *exportPath != "" {
		f, err := reports.ExportRunsExcel(ctx, *exportLimit)
		if err != nil {
			fmt.Fprintf(os.Stderr, "export failed: %v\n", err)
			os.Exit(1)
		}
		if err := f.SaveAs(*exportPath); err != nil {
			fmt.Fprintf(os.Stderr, "export write failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Exported %s\n", *exportPath)
	}
}

package main

import (
	"fmt"
	"log/slog"
	"time"

	portssvc "github.com/SscSPs/bizledger/internal/core/ports/services"
	"github.com/spf13/cobra"
)

var billsCmd = &cobra.Command{
	Use:   "bills",
	Short: "Bill maintenance",
}

var sweepOverdueCmd = &cobra.Command{
	Use:   "sweep-overdue",
	Short: "Mark approved and partially paid bills past their due date as overdue",
	Example: `  # Sweep as of today
  bizledgerctl bills sweep-overdue

  # Sweep as of a specific date
  bizledgerctl bills sweep-overdue --as-of 2026-06-30`,
	RunE: runSweepOverdue,
}

func init() {
	rootCmd.AddCommand(billsCmd)
	billsCmd.AddCommand(sweepOverdueCmd)

	sweepOverdueCmd.Flags().String("as-of", "", "Cutoff date (format: YYYY-MM-DD, default: today UTC)")
}

func runSweepOverdue(cmd *cobra.Command, args []string) error {
	asOfStr, _ := cmd.Flags().GetString("as-of")

	y, m, d := time.Now().UTC().Date()
	asOf := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	if asOfStr != "" {
		parsed, err := time.Parse("2006-01-02", asOfStr)
		if err != nil {
			return fmt.Errorf("invalid as-of date format. Use YYYY-MM-DD: %w", err)
		}
		asOf = parsed
	}

	return withServices(cmd.Context(), func(sc *portssvc.ServiceContainer) error {
		n, err := sc.Bill.MarkOverdueBills(cmd.Context(), asOf)
		if err != nil {
			return fmt.Errorf("overdue sweep: %w", err)
		}
		logger.Info("Overdue sweep finished", slog.String("as_of", asOf.Format("2006-01-02")), slog.Int64("marked", n))
		fmt.Fprintf(cmd.OutOrStdout(), "marked=%d\n", n)
		return nil
	})
}

package main

import (
	"fmt"
	"log/slog"

	portssvc "github.com/SscSPs/bizledger/internal/core/ports/services"
	"github.com/spf13/cobra"
)

var inventoryCmd = &cobra.Command{
	Use:   "inventory",
	Short: "Inventory maintenance",
}

var reprocessCmd = &cobra.Command{
	Use:   "reprocess <workplace-id> <bill-id>",
	Short: "Receive an approved bill's stock that was skipped under the lenient failure policy",
	Long: `Runs inventory processing for an approved, partial, paid or overdue bill that has
no receipt movements yet. Processing is idempotent: a bill whose stock was already
received is reported as such and left unchanged.`,
	Example: `  bizledgerctl inventory reprocess 6f1c... 0b9e... --user ops-admin`,
	Args:    cobra.ExactArgs(2),
	RunE:    runReprocess,
}

func init() {
	rootCmd.AddCommand(inventoryCmd)
	inventoryCmd.AddCommand(reprocessCmd)

	reprocessCmd.Flags().String("user", "system", "User ID recorded on the movements and journal entry")
}

func runReprocess(cmd *cobra.Command, args []string) error {
	workplaceID, billID := args[0], args[1]
	userID, _ := cmd.Flags().GetString("user")

	return withServices(cmd.Context(), func(sc *portssvc.ServiceContainer) error {
		result, err := sc.Bill.ReprocessInventory(cmd.Context(), workplaceID, billID, userID)
		if err != nil {
			return fmt.Errorf("reprocess bill %s: %w", billID, err)
		}

		if result.AlreadyProcessed {
			logger.Info("Bill inventory already received", slog.String("bill_id", billID))
			fmt.Fprintln(cmd.OutOrStdout(), "already processed")
			return nil
		}

		journalID := ""
		if result.JournalEntryID != nil {
			journalID = *result.JournalEntryID
		}
		logger.Info("Bill inventory reprocessed",
			slog.String("bill_id", billID),
			slog.Int("movements", len(result.Movements)),
			slog.String("journal_entry_id", journalID))
		fmt.Fprintf(cmd.OutOrStdout(), "movements=%d journal=%s\n", len(result.Movements), journalID)
		return nil
	})
}

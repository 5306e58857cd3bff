package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/mmynk/paydown/internal/storage/jsonfile"
)

func init() {
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
}

var exportCmd = &cobra.Command{
	Use:   "export [FILE]",
	Short: "Write the ledger as a JSON snapshot",
	Long:  `Write the configured store's ledger as a JSON snapshot to FILE, or to stdout.`,
	Args:  cobra.MaximumNArgs(1),
	RunE:  runExport,
}

func runExport(cmd *cobra.Command, args []string) error {
	svc, store, err := openService()
	if err != nil {
		return err
	}
	defer store.Close()

	snap, err := svc.Snapshot(cmd.Context())
	if err != nil {
		return err
	}
	data, err := jsonfile.Encode(snap)
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}

	if len(args) == 0 {
		_, err := cmd.OutOrStdout().Write(append(data, '\n'))
		return err
	}
	if err := os.WriteFile(args[0], data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", args[0], err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Exported %d bets, %d payments, %d cards to %s\n",
		len(snap.Bets), len(snap.Payments), len(snap.Cards), args[0])
	return nil
}

var importCmd = &cobra.Command{
	Use:   "import FILE",
	Short: "Replace the ledger with a JSON snapshot",
	Long: `Replace the configured store's ledger with the JSON snapshot in FILE.
Malformed fields fall back to defaults. The milestone counter never
decreases, and any milestone the imported ledger has crossed fires.`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func runImport(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", args[0], err)
	}
	snap := jsonfile.Decode(data, slog.Default().With("file", args[0]))

	svc, store, err := openService()
	if err != nil {
		return err
	}
	defer store.Close()

	dash, err := svc.Import(cmd.Context(), snap)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Imported %d bets, %d payments, %d cards (milestones reached: %d)\n",
		len(snap.Bets), len(snap.Payments), len(snap.Cards), dash.MilestoneCounter)
	return nil
}

package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/mmynk/paydown/internal/service"
)

var summaryJSON bool

func init() {
	rootCmd.AddCommand(summaryCmd)
	rootCmd.AddCommand(bankCmd)

	summaryCmd.Flags().BoolVar(&summaryJSON, "json", false, "Print the summary as JSON")
}

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Print betting, debt and milestone progress",
	Args:  cobra.NoArgs,
	RunE:  runSummary,
}

func runSummary(cmd *cobra.Command, args []string) error {
	svc, store, err := openService()
	if err != nil {
		return err
	}
	defer store.Close()

	dash, err := svc.Summary(cmd.Context())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if summaryJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(dash)
	}
	printDashboard(out, dash)
	return nil
}

func printDashboard(w io.Writer, dash *service.Dashboard) {
	b := dash.Bets
	fmt.Fprintln(w, "Betting")
	fmt.Fprintf(w, "  Settled:     %d (%d won, %d%% hit rate)\n", b.SettledCount, b.WonCount, b.HitRatePct)
	fmt.Fprintf(w, "  Pending:     %d (%s staked)\n", b.PendingCount, b.PendingStake.StringFixed(2))
	fmt.Fprintf(w, "  Staked:      %s\n", b.TotalStaked.StringFixed(2))
	fmt.Fprintf(w, "  Returns:     %s\n", b.TotalReturns.StringFixed(2))
	fmt.Fprintf(w, "  Profit:      %s (%d%% of target)\n", b.Profit.StringFixed(2), b.ProgressPct)
	fmt.Fprintf(w, "  Bankroll:    %s (challenge %d%%)\n", dash.Bankroll.StringFixed(2), dash.ChallengePct)
	fmt.Fprintln(w)

	debt := dash.Debt
	fmt.Fprintln(w, "Debt")
	fmt.Fprintf(w, "  Total:       %s\n", debt.Total.StringFixed(2))
	fmt.Fprintf(w, "  Paid:        %s (%d%%)\n", debt.Paid.StringFixed(2), debt.ProgressPct)
	fmt.Fprintf(w, "  Remaining:   %s\n", debt.Remaining.StringFixed(2))
	for _, c := range debt.Cards {
		fmt.Fprintf(w, "    %-12s %s of %s left (%d%%)\n", c.Card.Name, c.Remaining.StringFixed(2), c.Card.Balance.StringFixed(2), c.ProgressPct)
	}
	fmt.Fprintln(w)

	src := dash.Sources
	fmt.Fprintln(w, "Payments")
	fmt.Fprintf(w, "  Betting:     %s\n", src.Betting.StringFixed(2))
	fmt.Fprintf(w, "  Trading:     %s\n", src.Trading.StringFixed(2))
	fmt.Fprintf(w, "  Savings:     %s\n", src.Savings.StringFixed(2))
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Milestones")
	fmt.Fprintf(w, "  Available:   %s\n", dash.AvailableProfit.StringFixed(2))
	fmt.Fprintf(w, "  Reached:     %d\n", dash.MilestoneCounter)
	if dash.NextMilestoneAt.IsPositive() {
		fmt.Fprintf(w, "  Next at:     %s (banks %s)\n", dash.NextMilestoneAt.StringFixed(2), dash.AmountPerMilestone.StringFixed(2))
	}
}

var bankCmd = &cobra.Command{
	Use:   "bank",
	Short: "Bank one milestone of available profit now",
	Long: `Move one milestone's worth of available betting profit into the payoff
pool immediately. The auto-bank milestone counter is not advanced.`,
	Args: cobra.NoArgs,
	RunE: runBank,
}

func runBank(cmd *cobra.Command, args []string) error {
	svc, store, err := openService()
	if err != nil {
		return err
	}
	defer store.Close()

	payment, err := svc.BankNow(cmd.Context())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if payment.CardID != "" {
		fmt.Fprintf(out, "Banked %s to card %s\n", payment.Amount.StringFixed(2), payment.CardID)
	} else {
		fmt.Fprintf(out, "Banked %s\n", payment.Amount.StringFixed(2))
	}
	return nil
}

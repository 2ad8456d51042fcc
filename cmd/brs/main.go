package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"bourse/internal/config"
	"bourse/internal/feed"
	"bourse/internal/sim"
)

var (
	accent  = color.New(color.FgCyan, color.Bold)
	success = color.New(color.FgGreen, color.Bold)
	danger  = color.New(color.FgRed, color.Bold)
	neutral = color.New(color.FgHiWhite)
)

func main() {
	root := &cobra.Command{
		Use:          "brs",
		Short:        "Bourse market game client",
		SilenceUsage: true,
	}

	root.AddCommand(
		newPlayCmd(),
		newSimCmd(),
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newPlayCmd() *cobra.Command {
	var seed int64
	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play the market game in an interactive terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.LoadCLIFromEnv().SimConfig
			if seed != 0 {
				cfg.Seed = seed
			}
			// The TUI owns the terminal; keep log noise out of it.
			logger := slog.New(slog.NewTextHandler(io.Discard, nil))
			session := sim.New(cfg, logger, feed.New())

			program := tea.NewProgram(newModel(session), tea.WithAltScreen())
			if _, err := program.Run(); err != nil {
				return err
			}
			printSummary(session)
			return nil
		},
	}
	cmd.Flags().Int64Var(&seed, "seed", 0, "world seed (0 picks one from the clock)")
	return cmd
}

func newSimCmd() *cobra.Command {
	var days int
	var seed int64
	cmd := &cobra.Command{
		Use:   "sim",
		Short: "Fast-forward a fresh market and print the result",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.LoadCLIFromEnv().SimConfig
			if seed != 0 {
				cfg.Seed = seed
			}
			logger := slog.New(slog.NewTextHandler(io.Discard, nil))
			session := sim.New(cfg, logger, feed.New())
			session.RunDays(days)
			printSummary(session)
			return nil
		},
	}
	cmd.Flags().IntVar(&days, "days", 30, "game days to simulate")
	cmd.Flags().Int64Var(&seed, "seed", 0, "world seed (0 picks one from the clock)")
	return cmd
}

func printSummary(session *sim.Session) {
	now := session.Clock.Now()
	accent.Printf("\n== MARKET DAY %d ==\n", now.Day)
	if session.Clock.Ended() {
		danger.Println("The game has ended.")
	}
	fmt.Printf("Cash:      $%.2f\n", session.Ledger.LiquidBalance())
	fmt.Printf("Net worth: $%.2f\n", session.Ledger.NetWorth())

	stocks := session.Store.GetStocks()
	sort.Slice(stocks, func(i, j int) bool { return stocks[i].Trend > stocks[j].Trend })

	fmt.Println()
	accent.Println("Stocks")
	fmt.Printf("%-6s %-24s %10s %8s\n", "SYM", "SECTOR", "PRICE", "TREND")
	for _, s := range stocks {
		fmt.Printf("%-6s %-24s %10.2f %8s\n", s.Name, truncate(s.Field, 24), s.Price, colorizePercent(s.Trend))
	}

	fmt.Println()
	accent.Println("Index Funds")
	fmt.Printf("%-28s %10s %10s %8s\n", "NAME", "HOLDINGS", "PRICE", "TREND")
	for _, f := range session.Store.GetIndexFunds() {
		fmt.Printf("%-28s %10d %10.2f %8s\n", truncate(f.Name, 28), len(f.StocksHeld), f.Price, colorizePercent(f.Trend))
	}

	events := session.Events.ActiveEvents()
	if len(events) > 0 {
		fmt.Println()
		accent.Println("Active Events")
		for _, e := range events {
			left := fmt.Sprintf("%d days left", e.DurationDays)
			if e.Persistent {
				left = "persistent"
			}
			fmt.Printf("- %s (%s)\n", e.Title, left)
		}
	}
	fmt.Println()
}

func colorizePercent(v float64) string {
	text := fmt.Sprintf("%+.2f%%", v)
	switch {
	case v > 0:
		return success.Sprint(text)
	case v < 0:
		return danger.Sprint(text)
	default:
		return neutral.Sprint(text)
	}
}

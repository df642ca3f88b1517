package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/trademind/journal/internal/config"
	"github.com/trademind/journal/internal/domain"
	"github.com/trademind/journal/internal/journal"
	"github.com/trademind/journal/internal/service"
	"github.com/trademind/journal/internal/storage/cache"
	"github.com/trademind/journal/internal/storage/postgres"
)

func main() {
	_ = godotenv.Load()

	var rootCmd = &cobra.Command{
		Use:   "journal-cli",
		Short: "Trade Journal maintenance CLI",
		Long: `Maintenance and reporting CLI for the trade journal.
Talks directly to the database; reports are scoped by user email.`,
	}

	var statsCmd = &cobra.Command{
		Use:   "stats",
		Short: "Print performance statistics for a user",
		RunE: func(cmd *cobra.Command, args []string) error {
			email, _ := cmd.Flags().GetString("email")
			start, _ := cmd.Flags().GetString("start-date")
			end, _ := cmd.Flags().GetString("end-date")
			return printStats(email, start, end)
		},
	}
	statsCmd.Flags().StringP("email", "e", "", "User email (required)")
	statsCmd.Flags().StringP("start-date", "s", "", "Start date (YYYY-MM-DD)")
	statsCmd.Flags().StringP("end-date", "E", "", "End date (YYYY-MM-DD)")
	_ = statsCmd.MarkFlagRequired("email")

	var listCmd = &cobra.Command{
		Use:   "list",
		Short: "List a user's journal entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			email, _ := cmd.Flags().GetString("email")
			start, _ := cmd.Flags().GetString("start-date")
			end, _ := cmd.Flags().GetString("end-date")
			outcome, _ := cmd.Flags().GetString("outcome")
			return listTrades(email, start, end, outcome)
		},
	}
	listCmd.Flags().StringP("email", "e", "", "User email (required)")
	listCmd.Flags().StringP("start-date", "s", "", "Start date (YYYY-MM-DD)")
	listCmd.Flags().StringP("end-date", "E", "", "End date (YYYY-MM-DD)")
	listCmd.Flags().StringP("outcome", "o", "ALL", "Outcome filter (ALL, WIN, LOSS, BREAK_EVEN)")
	_ = listCmd.MarkFlagRequired("email")

	var exportCmd = &cobra.Command{
		Use:   "export",
		Short: "Export a user's journal to CSV",
		RunE: func(cmd *cobra.Command, args []string) error {
			email, _ := cmd.Flags().GetString("email")
			output, _ := cmd.Flags().GetString("output")
			return exportTrades(email, output)
		},
	}
	exportCmd.Flags().StringP("email", "e", "", "User email (required)")
	exportCmd.Flags().StringP("output", "O", "journal.csv", "Output file")
	_ = exportCmd.MarkFlagRequired("email")

	var healthCmd = &cobra.Command{
		Use:   "health",
		Short: "Check database and cache connectivity",
		RunE: func(cmd *cobra.Command, args []string) error {
			return checkHealth()
		},
	}

	rootCmd.AddCommand(statsCmd, listCmd, exportCmd, healthCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func connect() (*config.Config, *postgres.DB, error) {
	cfg := config.Load()
	db, err := postgres.NewDB(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return cfg, db, nil
}

func resolveUser(ctx context.Context, db *postgres.DB, cfg *config.Config, email string) (*domain.User, error) {
	auth := service.NewAuthService(db.Pool(), cfg.JWTSecret, cfg.TokenTTL, cfg.BcryptCost)
	return auth.GetUserByEmail(ctx, email)
}

func printStats(email, start, end string) error {
	cfg, db, err := connect()
	if err != nil {
		return err
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	user, err := resolveUser(ctx, db, cfg, email)
	if err != nil {
		return err
	}

	trades := service.NewTradeService(db.Pool())
	all, err := trades.List(ctx, user.ID, domain.TradeFilter{StartDate: start, EndDate: end})
	if err != nil {
		return err
	}

	stats := journal.Compute(all)
	if stats == nil {
		fmt.Printf("No trades recorded for %s\n", email)
		return nil
	}

	fmt.Printf("Performance for %s (%d trades)\n\n", email, stats.TotalTrades)
	fmt.Printf("  Net PnL:        %s\n", stats.TotalPnL.StringFixed(2))
	fmt.Printf("  Win rate:       %.1f%% (%d W / %d L)\n", stats.WinRate, stats.Wins, stats.Losses)
	fmt.Printf("  Avg win:        %s\n", stats.AvgWin.StringFixed(2))
	fmt.Printf("  Avg loss:       %s\n", stats.AvgLoss.StringFixed(2))
	fmt.Printf("  Profit factor:  %.2f\n", stats.ProfitFactor)
	fmt.Printf("  Best win:       %s\n", stats.BestWin.StringFixed(2))
	fmt.Printf("  Worst loss:     %s\n", stats.WorstLoss.StringFixed(2))

	curve := journal.EquityCurve(all)
	if len(curve) > 0 {
		last := curve[len(curve)-1]
		fmt.Printf("\n  Equity after trade #%d: %s\n", last.Seq, last.CumulativePnL.StringFixed(2))
	}

	return nil
}

func listTrades(email, start, end, outcome string) error {
	cfg, db, err := connect()
	if err != nil {
		return err
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	user, err := resolveUser(ctx, db, cfg, email)
	if err != nil {
		return err
	}

	filter := domain.TradeFilter{StartDate: start, EndDate: end, Outcome: outcome}
	if err := filter.Validate(); err != nil {
		return err
	}

	trades := service.NewTradeService(db.Pool())
	all, err := trades.List(ctx, user.ID, domain.TradeFilter{StartDate: start, EndDate: end})
	if err != nil {
		return err
	}
	all = journal.Filter(all, domain.TradeFilter{Outcome: outcome})

	if len(all) == 0 {
		fmt.Println("No trades found matching this filter.")
		return nil
	}

	fmt.Printf("%-12s %-10s %-6s %-11s %10s  %s\n", "DATE", "INSTRUMENT", "DIR", "OUTCOME", "PNL", "SETUP")
	for _, t := range all {
		fmt.Printf("%-12s %-10s %-6s %-11s %10s  %s\n",
			t.Date, t.Instrument, t.Direction, t.Outcome, t.PnL.StringFixed(2), t.Setup)
	}
	fmt.Printf("\n%d trades\n", len(all))

	return nil
}

func exportTrades(email, output string) error {
	cfg, db, err := connect()
	if err != nil {
		return err
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	user, err := resolveUser(ctx, db, cfg, email)
	if err != nil {
		return err
	}

	trades := service.NewTradeService(db.Pool())
	all, err := trades.List(ctx, user.ID, domain.TradeFilter{})
	if err != nil {
		return err
	}

	f, err := os.Create(output)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write(exportHeader()); err != nil {
		return err
	}
	for _, t := range all {
		if err := w.Write(exportRow(t)); err != nil {
			return err
		}
	}

	fmt.Printf("Exported %d trades to %s\n", len(all), output)
	return nil
}

// exportHeader is the CSV column layout used by the export command.
func exportHeader() []string {
	return []string{"date", "instrument", "direction", "outcome", "pnl", "setup", "notes", "created_at"}
}

// exportRow renders one trade in the export layout.
func exportRow(t domain.Trade) []string {
	return []string{
		t.Date,
		t.Instrument,
		string(t.Direction),
		string(t.Outcome),
		t.PnL.String(),
		t.Setup,
		t.Notes,
		t.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func checkHealth() error {
	cfg, db, err := connect()
	if err != nil {
		return err
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.HealthCheck(ctx); err != nil {
		fmt.Printf("database: unhealthy (%v)\n", err)
	} else {
		fmt.Println("database: healthy")
	}

	redisCache, err := cache.NewRedisCache(cfg)
	if err != nil {
		fmt.Printf("redis: unavailable (%v)\n", err)
		return nil
	}
	defer redisCache.Close()

	if err := redisCache.HealthCheck(ctx); err != nil {
		fmt.Printf("redis: unhealthy (%v)\n", err)
	} else {
		fmt.Println("redis: healthy")
	}

	return nil
}


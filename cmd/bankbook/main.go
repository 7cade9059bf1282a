package main

import (
	"fmt"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"bankbook/internal/adapter/repository/csvfile"
	"bankbook/internal/domain"
	"bankbook/internal/infrastructure/config"
	"bankbook/internal/infrastructure/logger"
	"bankbook/internal/infrastructure/metrics"
	"bankbook/internal/usecase"
)

var (
	kindFlag    string
	nameFlag    string
	openingFlag string
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "bankbook",
		Short:         "Bankbook account ledger",
		Long:          `Track Main and Savings account balances backed by a durable append-only statement file.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	sessionCmd := &cobra.Command{
		Use:   "session",
		Short: "Run an interactive account session",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSessionCommand(cmd)
		},
	}
	sessionCmd.Flags().StringVar(&kindFlag, "kind", "main", "Account kind: main or savings")
	sessionCmd.Flags().StringVar(&nameFlag, "name", "", "Account holder name")
	sessionCmd.Flags().StringVar(&openingFlag, "opening", "0", "Opening balance (main accounts only)")
	if err := sessionCmd.MarkFlagRequired("name"); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	totalsCmd := &cobra.Command{
		Use:   "totals",
		Short: "Report aggregate Main and Savings totals across the whole statement",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTotalsCommand(cmd)
		},
	}

	auditCmd := &cobra.Command{
		Use:   "audit",
		Short: "Check per-account balance continuity across the statement",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAuditCommand(cmd)
		},
	}

	rootCmd.AddCommand(sessionCmd, totalsCmd, auditCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// setup wires config, logging, metrics and the statement store, shared by
// every subcommand.
func setup() (zerolog.Logger, *metrics.Metrics, *csvfile.StatementRepository, error) {
	cfg, err := config.Load()
	if err != nil {
		return zerolog.Nop(), nil, nil, fmt.Errorf("loading configuration: %w", err)
	}

	log := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	m := metrics.New(prometheus.DefaultRegisterer)

	repo, err := csvfile.Open(cfg.StatementFile, m, log)
	if err != nil {
		return log, nil, nil, err
	}

	return log, m, repo, nil
}

func runSessionCommand(cmd *cobra.Command) error {
	log, m, repo, err := setup()
	if err != nil {
		return err
	}
	defer repo.Close()

	idGen := csvfile.NewULIDGenerator()

	var account *domain.Account
	switch kindFlag {
	case "main":
		opening, err := decimal.NewFromString(openingFlag)
		if err != nil {
			return fmt.Errorf("invalid opening balance %q", openingFlag)
		}
		account, err = domain.NewMainAccount(idGen.Generate(), nameFlag, opening)
		if err != nil {
			return err
		}
	case "savings":
		// Savings accounts always open at the fixed balance.
		if cmd.Flags().Changed("opening") {
			log.Warn().Str("opening", openingFlag).Msg("savings accounts ignore --opening")
		}
		account, err = domain.NewSavingsAccount(idGen.Generate(), nameFlag)
		if err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown account kind %q: use main or savings", kindFlag)
	}

	engine := usecase.NewAccountEngine(account, repo, idGen, m, log)
	audit := usecase.NewAuditUseCase(repo)

	return runSession(cmd.InOrStdin(), cmd.OutOrStdout(), engine, audit)
}

func runTotalsCommand(cmd *cobra.Command) error {
	_, _, repo, err := setup()
	if err != nil {
		return err
	}
	defer repo.Close()

	totals, err := usecase.NewAuditUseCase(repo).Totals(cmd.Context())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Main Account total:    $%s\n", totals.Main.StringFixed(2))
	fmt.Fprintf(out, "Savings Account total: $%s\n", totals.Savings.StringFixed(2))
	return nil
}

func runAuditCommand(cmd *cobra.Command) error {
	_, _, repo, err := setup()
	if err != nil {
		return err
	}
	defer repo.Close()

	breaks, err := usecase.NewAuditUseCase(repo).CheckContinuity(cmd.Context())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(breaks) == 0 {
		fmt.Fprintln(out, "Statement continuity OK")
		return nil
	}

	for _, b := range breaks {
		fmt.Fprintf(out, "%s: entry %d opens at $%s, prior entry closed at $%s\n",
			b.Kind, b.Index, b.Got.StringFixed(2), b.Expected.StringFixed(2))
	}
	return fmt.Errorf("statement has %d continuity break(s)", len(breaks))
}

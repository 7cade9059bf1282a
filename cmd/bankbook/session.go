package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"bankbook/internal/domain"
	"bankbook/internal/usecase"
)

// runSession drives the interactive prompt loop for one account. Commands:
// deposit <amount>, withdraw <amount>, balance, totals, quit.
func runSession(in io.Reader, out io.Writer, engine *usecase.AccountEngine, audit *usecase.AuditUseCase) error {
	ctx := context.Background()

	fmt.Fprintf(out, "%s session for %s\n", engine.Kind(), engine.HolderName())
	fmt.Fprintf(out, "Balance: $%s\n", engine.Balance().StringFixed(2))

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			break
		}

		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		verb := strings.ToLower(fields[0])
		switch verb {
		case "deposit", "withdraw":
			if len(fields) != 2 {
				fmt.Fprintf(out, "usage: %s <amount>\n", verb)
				continue
			}
			amount, err := domain.ParseAmount(fields[1])
			if err != nil {
				fmt.Fprintln(out, "Please enter a positive number.")
				continue
			}

			var ok bool
			if verb == "deposit" {
				ok, err = engine.Deposit(ctx, amount)
			} else {
				ok, err = engine.Withdraw(ctx, amount)
			}
			if err != nil {
				return err
			}
			if !ok {
				fmt.Fprintln(out, "Transaction rejected.")
				continue
			}
			fmt.Fprintf(out, "Balance: $%s\n", engine.Balance().StringFixed(2))

		case "balance":
			fmt.Fprintf(out, "Balance: $%s\n", engine.Balance().StringFixed(2))

		case "totals":
			totals, err := audit.Totals(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Main Account total:    $%s\n", totals.Main.StringFixed(2))
			fmt.Fprintf(out, "Savings Account total: $%s\n", totals.Savings.StringFixed(2))

		case "quit", "exit":
			return scanner.Err()

		default:
			fmt.Fprintln(out, "Commands: deposit <amount>, withdraw <amount>, balance, totals, quit")
		}
	}

	return scanner.Err()
}

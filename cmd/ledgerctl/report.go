package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/light-bringer/ledger-service/internal/app/ledger/contracts"
	"github.com/light-bringer/ledger-service/internal/services"
)

type filterFlags struct {
	account string
	from    string
	to      string
}

func (f *filterFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.account, "account", "a", "", "Gateway account id")
	cmd.Flags().StringVar(&f.from, "from", "", "Inclusive lower bound on created date (RFC3339)")
	cmd.Flags().StringVar(&f.to, "to", "", "Exclusive upper bound on created date (RFC3339)")
}

func (f *filterFlags) filter() (contracts.ReportFilter, error) {
	filter := contracts.ReportFilter{AccountID: strings.TrimSpace(f.account)}
	var err error
	if filter.FromDate, err = parseFlagDate("from", f.from); err != nil {
		return filter, err
	}
	if filter.ToDate, err = parseFlagDate("to", f.to); err != nil {
		return filter, err
	}
	if !filter.FromDate.IsZero() && !filter.ToDate.IsZero() && !filter.FromDate.Before(filter.ToDate) {
		return filter, fmt.Errorf("--from must be before --to")
	}
	return filter, nil
}

func parseFlagDate(name, raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("--%s must be RFC3339: %w", name, err)
	}
	return t.UTC(), nil
}

func reportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Aggregate reports over stored transactions",
	}
	cmd.AddCommand(byStateCmd())
	cmd.AddCommand(summaryCmd())
	return cmd
}

func byStateCmd() *cobra.Command {
	var flags filterFlags

	cmd := &cobra.Command{
		Use:   "by-state",
		Short: "Count payments per status",
		RunE: func(cmd *cobra.Command, args []string) error {
			filter, err := flags.filter()
			if err != nil {
				return err
			}
			return withServices(cmd.Context(), cmd, func(opts *services.ServiceOptions) error {
				counts, err := opts.PaymentCounts.Execute(cmd.Context(), filter)
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), counts)
			})
		},
	}
	flags.register(cmd)
	return cmd
}

func summaryCmd() *cobra.Command {
	var flags filterFlags

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Total successful payments and refunds",
		RunE: func(cmd *cobra.Command, args []string) error {
			filter, err := flags.filter()
			if err != nil {
				return err
			}
			return withServices(cmd.Context(), cmd, func(opts *services.ServiceOptions) error {
				summary, err := opts.TransactionsSummary.Execute(cmd.Context(), filter)
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), summary)
			})
		},
	}
	flags.register(cmd)
	return cmd
}

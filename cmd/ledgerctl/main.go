// Command ledgerctl inspects and repairs the ledger read model.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/light-bringer/ledger-service/internal/config"
	"github.com/light-bringer/ledger-service/internal/services"
)

var Version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "ledgerctl",
		Short:         "Inspect, replay and report on ledger transactions",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(replayCmd())
	rootCmd.AddCommand(getCmd())
	rootCmd.AddCommand(reportCmd())

	return rootCmd
}

// withServices loads configuration from the environment, wires the
// configured backend and runs fn against it.
func withServices(ctx context.Context, cmd *cobra.Command, fn func(*services.ServiceOptions) error) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger := cfg.NewLogger(cmd.ErrOrStderr())

	opts, err := services.NewServiceOptions(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer opts.Close()
	return fn(opts)
}

func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

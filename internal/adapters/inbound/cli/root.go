package cli

import (
	"github.com/spf13/cobra"

	"github.com/abdidvp/minimart/internal/adapters/outbound/config"
)

var (
	version = "dev"
	commit  = "none"
)

// rootOptions holds the persistent flags every session command reads.
type rootOptions struct {
	configPath string
	seed       int
	randSeed   uint64
	logLevel   string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "minimart",
		Short:         "In-memory product catalog with combo pricing and checkout",
		Long:          "minimart keeps a product catalog in memory, enumerates product combinations with their total price, and checks out carts against live stock.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&opts.configPath, "config", config.FileName, "Path to the session config file")
	cmd.PersistentFlags().IntVar(&opts.seed, "seed", 0, "Generate N sample products at start-up")
	cmd.PersistentFlags().Uint64Var(&opts.randSeed, "rand-seed", 0, "Seed for sample data (0 picks a random seed)")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "Override log.level (debug, info, warn, error)")

	cmd.AddCommand(newVersionCmd())
	cmd.AddCommand(newInitCmd())
	cmd.AddCommand(newListCmd(opts))
	cmd.AddCommand(newFindCmd(opts))
	cmd.AddCommand(newSearchCmd(opts))
	cmd.AddCommand(newComboCmd(opts))
	cmd.AddCommand(newCheckoutCmd(opts))
	cmd.AddCommand(newShellCmd(opts))
	cmd.AddCommand(newMCPCmd(opts))
	return cmd
}

// NewRootCmdForTest returns the root command for testing.
func NewRootCmdForTest() *cobra.Command {
	return newRootCmd()
}

func Execute() error {
	return newRootCmd().Execute()
}

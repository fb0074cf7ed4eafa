package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abdidvp/minimart/internal/adapters/inbound/input"
	"github.com/abdidvp/minimart/internal/adapters/outbound/tui"
)

func newCheckoutCmd(opts *rootOptions) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "checkout CODE=QTY...",
		Short: "Buy products in one cart and print the receipt",
		Long: "Put every CODE=QTY line in one cart and commit it. Stock is checked as each line is added " +
			"and again at commit; nothing is decremented unless every line can be fulfilled.",
		Example: "  minimart --seed 20 checkout 1=2 MH00000003=1",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lines := make([]input.Line, 0, len(args))
			for _, arg := range args {
				l, err := input.ParseLine(arg)
				if err != nil {
					return err
				}
				lines = append(lines, l)
			}

			s, err := openSession(opts)
			if err != nil {
				return err
			}
			defer s.close()

			s.checkout.Begin()
			for _, l := range lines {
				if err := s.checkout.Add(l.Token, l.Quantity); err != nil {
					s.checkout.Cancel()
					return fmt.Errorf("line %s=%d: %w", l.Token, l.Quantity, err)
				}
			}

			receipt, err := s.checkout.Finish()
			if err != nil {
				s.checkout.Cancel()
				return err
			}

			if jsonOutput {
				return renderJSON(cmd, receipt)
			}
			fmt.Fprint(cmd.OutOrStdout(), tui.RenderReceipt(receipt))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output the receipt as JSON")

	return cmd
}

package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abdidvp/minimart/internal/adapters/outbound/tui"
)

func newListCmd(opts *rootOptions) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print every product in code order",
		Long:  "Print the catalog. Without --seed the catalog starts empty.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(opts)
			if err != nil {
				return err
			}
			defer s.close()

			products := s.catalog.List()
			if jsonOutput {
				return renderJSON(cmd, products)
			}
			fmt.Fprint(cmd.OutOrStdout(), tui.RenderProducts("All products", products))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")

	return cmd
}

func newFindCmd(opts *rootOptions) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "find CODE",
		Short: "Look up a product by code",
		Long:  "Look up a product by code. Short forms resolve through the code normalizer, so 1, 00001 and mh00000001 all find MH00000001.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(opts)
			if err != nil {
				return err
			}
			defer s.close()

			p, err := s.catalog.Find(args[0])
			if err != nil {
				return err
			}
			if jsonOutput {
				return renderJSON(cmd, p)
			}
			fmt.Fprint(cmd.OutOrStdout(), tui.RenderProductCard(p))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")

	return cmd
}

func newSearchCmd(opts *rootOptions) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "search TEXT",
		Short: "Find products whose name contains TEXT",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(opts)
			if err != nil {
				return err
			}
			defer s.close()

			products := s.catalog.Search(args[0])
			if jsonOutput {
				return renderJSON(cmd, products)
			}
			fmt.Fprint(cmd.OutOrStdout(), tui.RenderProducts(fmt.Sprintf("Names containing %q", args[0]), products))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")

	return cmd
}

func renderJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

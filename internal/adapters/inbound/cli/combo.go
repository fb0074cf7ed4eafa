package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/abdidvp/minimart/internal/adapters/outbound/tui"
	"github.com/abdidvp/minimart/internal/application"
)

func newComboCmd(opts *rootOptions) *cobra.Command {
	var (
		take       int
		size       int
		limit      int
		yes        bool
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "combo",
		Short: "Enumerate combinations of the first n products",
		Long: "Take the first --take products of the catalog and list every combination of --size of them " +
			"with its total price, numbered from #1 in a fixed order.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if limit < 0 {
				return fmt.Errorf("--limit must not be negative")
			}

			s, err := openSession(opts)
			if err != nil {
				return err
			}
			defer s.close()

			plan, err := s.combos.Plan(take, size)
			if err != nil {
				return err
			}
			if plan.NeedsConfirm && !yes {
				return fmt.Errorf("C(%d, %d) = %s combinations may take a long time; rerun with --yes to continue",
					plan.Take, plan.Size, plan.Count)
			}

			_, err = streamCombos(cmd.OutOrStdout(), s.combos, plan, limit, jsonOutput)
			return err
		},
	}

	cmd.Flags().IntVarP(&take, "take", "n", 0, "Products to take from the start of the catalog")
	cmd.Flags().IntVarP(&size, "size", "m", 0, "Products per combination")
	cmd.Flags().IntVar(&limit, "limit", 0, "Stop after this many combinations (0 = all)")
	cmd.Flags().BoolVar(&yes, "yes", false, "Skip the large-selection confirmation")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output one JSON object per line")
	_ = cmd.MarkFlagRequired("take")
	_ = cmd.MarkFlagRequired("size")

	return cmd
}

// comboLine is the JSON-lines form of one combination.
type comboLine struct {
	Seq   int             `json:"seq"`
	Codes []string        `json:"codes"`
	Total decimal.Decimal `json:"total"`
}

// streamCombos writes combinations as they are produced and returns how many
// were written. limit <= 0 means no limit.
func streamCombos(w io.Writer, svc *application.ComboService, plan application.ComboPlan, limit int, jsonOutput bool) (int, error) {
	seq, err := svc.Enumerate(plan)
	if err != nil {
		return 0, err
	}

	var enc *json.Encoder
	if jsonOutput {
		enc = json.NewEncoder(w)
	} else {
		fmt.Fprint(w, tui.RenderComboHeader(plan.Take, plan.Size, plan.Count))
	}

	emitted := 0
	for c := range seq {
		if limit > 0 && emitted == limit {
			break
		}
		if enc != nil {
			if err := enc.Encode(comboLine{Seq: c.Seq, Codes: c.Codes(), Total: c.Total}); err != nil {
				return emitted, err
			}
		} else {
			fmt.Fprint(w, tui.RenderCombination(c))
		}
		emitted++
	}

	if enc == nil {
		fmt.Fprint(w, tui.RenderComboSummary(emitted, plan.Count))
	}
	return emitted, nil
}

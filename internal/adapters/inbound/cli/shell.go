package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abdidvp/minimart/internal/adapters/inbound/input"
	"github.com/abdidvp/minimart/internal/adapters/outbound/tui"
	"github.com/abdidvp/minimart/internal/domain"
)

var menu = []tui.MenuItem{
	{Key: "1", Label: "Add product"},
	{Key: "2", Label: "Find product by code"},
	{Key: "3", Label: "Find products by name"},
	{Key: "4", Label: "Update product"},
	{Key: "5", Label: "Delete product"},
	{Key: "6", Label: "Build combos"},
	{Key: "7", Label: "List all products"},
	{Key: "8", Label: "Generate sample products (replaces catalog)"},
	{Key: "9", Label: "Checkout"},
	{Key: "0", Label: "Exit"},
}

// errInputClosed ends the shell when stdin runs out.
var errInputClosed = errors.New("input closed")

func newShellCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Run the interactive menu",
		Long:  "Run the numbered menu over one in-memory session: add, find, update and delete products, build combos, regenerate sample data and check out.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(opts)
			if err != nil {
				return err
			}
			defer s.close()

			sh := &shell{
				s:   s,
				in:  bufio.NewScanner(cmd.InOrStdin()),
				out: cmd.OutOrStdout(),
			}
			return sh.run()
		},
	}
}

type shell struct {
	s   *session
	in  *bufio.Scanner
	out io.Writer
}

func (sh *shell) run() error {
	if sh.s.catalog.Count() == 0 {
		fmt.Fprint(sh.out, tui.Warning("The catalog is empty. Use option 8 to generate products."))
	}

	actions := map[string]func() error{
		"1": sh.add,
		"2": sh.findByCode,
		"3": sh.findByName,
		"4": sh.update,
		"5": sh.remove,
		"6": sh.combos,
		"7": sh.list,
		"8": sh.generate,
		"9": sh.checkout,
	}

	for {
		fmt.Fprint(sh.out, tui.RenderMenu(sh.s.catalog.Count(), menu))
		choice, err := sh.ask("Choose an option: ")
		if err != nil {
			return nil
		}
		if choice == "0" {
			fmt.Fprint(sh.out, tui.Success("Goodbye."))
			return nil
		}

		action, ok := actions[choice]
		if !ok {
			fmt.Fprint(sh.out, tui.Failure("Unknown option, choose again."))
			continue
		}
		if err := action(); err != nil {
			if errors.Is(err, errInputClosed) {
				return nil
			}
			sh.s.logger.Debug("shell action failed", zap.String("option", choice), zap.Error(err))
			fmt.Fprint(sh.out, tui.Failure("Error: "+err.Error()))
		}
	}
}

func (sh *shell) ask(prompt string) (string, error) {
	fmt.Fprint(sh.out, "  "+prompt)
	if !sh.in.Scan() {
		fmt.Fprintln(sh.out)
		return "", errInputClosed
	}
	return strings.TrimSpace(sh.in.Text()), nil
}

func (sh *shell) add() error {
	var (
		in  domain.ProductInput
		err error
	)
	if in.Code, err = sh.ask("Code (unique): "); err != nil {
		return err
	}
	if in.Name, err = sh.ask("Name: "); err != nil {
		return err
	}
	if in.Unit, err = sh.ask("Unit: "); err != nil {
		return err
	}
	raw, err := sh.ask("Unit price: ")
	if err != nil {
		return err
	}
	if in.UnitPrice, err = input.Price(raw); err != nil {
		return err
	}
	if raw, err = sh.ask("Stock: "); err != nil {
		return err
	}
	if in.Stock, err = input.Quantity(raw); err != nil {
		return err
	}
	if raw, err = sh.ask("Expiry date (e.g. 2026-12-31): "); err != nil {
		return err
	}
	if in.Expiry, err = input.Expiry(raw); err != nil {
		return err
	}

	p, err := sh.s.catalog.Add(in)
	if err != nil {
		return err
	}
	fmt.Fprint(sh.out, tui.Success("Added "+p.Code+"."))
	return nil
}

func (sh *shell) findByCode() error {
	token, err := sh.ask("Code to find: ")
	if err != nil {
		return err
	}
	p, err := sh.s.catalog.Find(token)
	if err != nil {
		return err
	}
	fmt.Fprint(sh.out, tui.RenderProductCard(p))
	return nil
}

func (sh *shell) findByName() error {
	text, err := sh.ask("Name contains: ")
	if err != nil {
		return err
	}
	found := sh.s.catalog.Search(text)
	if len(found) == 0 {
		fmt.Fprint(sh.out, tui.Warning(fmt.Sprintf("No product name contains %q.", text)))
		return nil
	}
	fmt.Fprint(sh.out, tui.RenderProducts(fmt.Sprintf("Found %d", len(found)), found))
	return nil
}

func (sh *shell) update() error {
	token, err := sh.ask("Code to update: ")
	if err != nil {
		return err
	}
	current, err := sh.s.catalog.Find(token)
	if err != nil {
		return err
	}
	fmt.Fprint(sh.out, tui.RenderProductCard(current))
	fmt.Fprintln(sh.out, "  Enter new values, or leave blank to keep the current one.")

	var patch domain.ProductPatch
	name, err := sh.ask(fmt.Sprintf("Name (%s): ", current.Name))
	if err != nil {
		return err
	}
	if name != "" {
		patch.Name = &name
	}
	unit, err := sh.ask(fmt.Sprintf("Unit (%s): ", current.Unit))
	if err != nil {
		return err
	}
	if unit != "" {
		patch.Unit = &unit
	}
	raw, err := sh.ask(fmt.Sprintf("Unit price (%s): ", tui.Money(current.UnitPrice)))
	if err != nil {
		return err
	}
	if raw != "" {
		price, err := input.Price(raw)
		if err != nil {
			return err
		}
		patch.UnitPrice = &price
	}
	if raw, err = sh.ask(fmt.Sprintf("Stock (%d): ", current.Stock)); err != nil {
		return err
	}
	if raw != "" {
		stock, err := input.Quantity(raw)
		if err != nil {
			return err
		}
		patch.Stock = &stock
	}
	if raw, err = sh.ask(fmt.Sprintf("Expiry (%s): ", current.Expiry.Format(time.DateOnly))); err != nil {
		return err
	}
	if raw != "" {
		expiry, err := input.Expiry(raw)
		if err != nil {
			return err
		}
		patch.Expiry = &expiry
	}

	if patch.IsEmpty() {
		fmt.Fprint(sh.out, tui.Warning("Nothing changed."))
		return nil
	}
	updated, err := sh.s.catalog.Edit(current.Code, patch)
	if err != nil {
		return err
	}
	fmt.Fprint(sh.out, tui.Success("Updated."))
	fmt.Fprint(sh.out, tui.RenderProductCard(updated))
	return nil
}

func (sh *shell) remove() error {
	token, err := sh.ask("Code to DELETE: ")
	if err != nil {
		return err
	}
	p, err := sh.s.catalog.Find(token)
	if err != nil {
		return err
	}
	fmt.Fprint(sh.out, tui.RenderProductCard(p))
	answer, err := sh.ask("Type YES to delete this product: ")
	if err != nil {
		return err
	}
	if !input.IsYes(answer) {
		fmt.Fprint(sh.out, tui.Warning("Delete cancelled."))
		return nil
	}
	if err := sh.s.catalog.Remove(p.Code); err != nil {
		return err
	}
	fmt.Fprint(sh.out, tui.Success("Deleted "+p.Code+"."))
	return nil
}

func (sh *shell) combos() error {
	count := sh.s.catalog.Count()
	if count == 0 {
		fmt.Fprint(sh.out, tui.Warning("The catalog is empty. Use option 8 to generate products first."))
		return nil
	}

	raw, err := sh.ask(fmt.Sprintf("How many products (n) to take from the catalog? (n <= %d): ", count))
	if err != nil {
		return err
	}
	take, err := input.Quantity(raw)
	if err != nil {
		return err
	}
	if raw, err = sh.ask(fmt.Sprintf("Products per combo (m)? (m <= %d): ", take)); err != nil {
		return err
	}
	size, err := input.Quantity(raw)
	if err != nil {
		return err
	}

	plan, err := sh.s.combos.Plan(take, size)
	if err != nil {
		return err
	}
	if plan.NeedsConfirm {
		fmt.Fprint(sh.out, tui.Warning(fmt.Sprintf("n = %d is large. Listing C(%d, %d) = %s combinations may take a long time.",
			take, take, size, plan.Count)))
		answer, err := sh.ask("Continue? (YES/NO): ")
		if err != nil {
			return err
		}
		if !input.IsYes(answer) {
			fmt.Fprint(sh.out, tui.Warning("Cancelled."))
			return nil
		}
	}

	_, err = streamCombos(sh.out, sh.s.combos, plan, 0, false)
	return err
}

func (sh *shell) list() error {
	fmt.Fprint(sh.out, tui.RenderProducts("All products", sh.s.catalog.List()))
	return nil
}

func (sh *shell) generate() error {
	raw, err := sh.ask(fmt.Sprintf("How many products (1-%d)? The current catalog will be discarded: ", sh.s.cfg.MaxGenerate))
	if err != nil {
		return err
	}
	n, err := input.Quantity(raw)
	if err != nil {
		return err
	}
	created, err := sh.s.catalog.Regenerate(n)
	if err != nil {
		return err
	}
	fmt.Fprint(sh.out, tui.Success(fmt.Sprintf("Generated %d products.", created)))
	return nil
}

func (sh *shell) checkout() error {
	svc := sh.s.checkout
	svc.Begin()
	fmt.Fprintln(sh.out, "  Add lines as CODE=QTY. Use -CODE to remove a line, a blank line to finish, or 'cancel'.")

	for {
		line, err := sh.ask("Cart> ")
		if err != nil {
			svc.Cancel()
			return err
		}

		switch {
		case line == "":
			return sh.commitCart()
		case strings.EqualFold(line, "cancel"):
			svc.Cancel()
			fmt.Fprint(sh.out, tui.Warning("Cart abandoned."))
			return nil
		case strings.HasPrefix(line, "-"):
			if err := svc.Remove(strings.TrimPrefix(line, "-")); err != nil {
				fmt.Fprint(sh.out, tui.Failure("Error: "+err.Error()))
				continue
			}
		default:
			l, err := input.ParseLine(line)
			if err != nil {
				fmt.Fprint(sh.out, tui.Failure("Error: "+err.Error()))
				continue
			}
			if err := svc.Add(l.Token, l.Quantity); err != nil {
				fmt.Fprint(sh.out, tui.Failure("Error: "+err.Error()))
				continue
			}
		}
		if cart := svc.Cart(); cart != nil {
			fmt.Fprint(sh.out, tui.RenderCart(cart))
		}
	}
}

func (sh *shell) commitCart() error {
	svc := sh.s.checkout
	cart := svc.Cart()
	if cart != nil && cart.Len() > 0 {
		answer, err := sh.ask(fmt.Sprintf("Commit %d lines for %s? (YES/NO): ", cart.Len(), tui.Money(cart.Total())))
		if err != nil {
			svc.Cancel()
			return err
		}
		if !input.IsYes(answer) {
			svc.Cancel()
			fmt.Fprint(sh.out, tui.Warning("Cart abandoned."))
			return nil
		}
	}

	receipt, err := svc.Finish()
	if errors.Is(err, domain.ErrEmptyCart) {
		fmt.Fprint(sh.out, tui.Warning("The cart is empty, nothing to commit."))
		return nil
	}
	if err != nil {
		svc.Cancel()
		return err
	}
	fmt.Fprint(sh.out, tui.RenderReceipt(receipt))
	return nil
}

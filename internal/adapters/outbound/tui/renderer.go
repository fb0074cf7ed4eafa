package tui

import (
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/abdidvp/minimart/internal/domain"
	"github.com/abdidvp/minimart/internal/domain/checkout"
	"github.com/abdidvp/minimart/internal/domain/combo"
)

// ── Warm palette ──
var (
	accent  = lipgloss.Color("#D97706") // amber
	fg      = lipgloss.Color("#E8E6E3") // warm light gray
	dim     = lipgloss.Color("#6B7280") // muted gray
	faint   = lipgloss.Color("#3F3F46") // very dim
	success = lipgloss.Color("#22C55E") // green
	danger  = lipgloss.Color("#EF4444") // red
	warning = lipgloss.Color("#F59E0B") // amber-yellow
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accent).
			Align(lipgloss.Center)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(0, 2).
			Width(68)

	dimStyle      = lipgloss.NewStyle().Foreground(dim)
	faintStyle    = lipgloss.NewStyle().Foreground(faint)
	passStyle     = lipgloss.NewStyle().Foreground(success)
	failStyle     = lipgloss.NewStyle().Foreground(danger)
	warnStyle     = lipgloss.NewStyle().Foreground(warning)
	codeStyle     = lipgloss.NewStyle().Foreground(accent)
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(fg)
	moneyStyle    = lipgloss.NewStyle().Bold(true).Foreground(success)
	separatorLine = faintStyle.Render(strings.Repeat("─", 64))
)

// Money formats an amount with two decimals.
func Money(d decimal.Decimal) string { return d.StringFixed(2) }

// RenderProduct formats one product on a single line.
func RenderProduct(p domain.Product) string {
	return fmt.Sprintf("%s %s %s %s %s %s",
		codeStyle.Render(padRight(p.Code, 11)),
		titleStyle.Render(padRight(p.Name, 28)),
		dimStyle.Render(padRight(p.Unit, 7)),
		padLeft(Money(p.UnitPrice), 12),
		padLeft(fmt.Sprintf("x%d", p.Stock), 6),
		dimStyle.Render(p.Expiry.Format(time.DateOnly)),
	)
}

// RenderProducts formats a titled listing.
func RenderProducts(title string, products []domain.Product) string {
	var b strings.Builder
	b.WriteString("\n")
	fmt.Fprintf(&b, "  %s %s\n", titleStyle.Render(title), dimStyle.Render(fmt.Sprintf("(%d)", len(products))))
	b.WriteString("  " + separatorLine + "\n")
	if len(products) == 0 {
		b.WriteString("  " + dimStyle.Render("(empty)") + "\n")
		return b.String()
	}
	for _, p := range products {
		b.WriteString("  " + RenderProduct(p) + "\n")
	}
	return b.String()
}

// RenderProductCard formats a single product in a box.
func RenderProductCard(p domain.Product) string {
	lines := []string{
		headerStyle.Render(p.Name),
		"",
		fmt.Sprintf("%s %s", dimStyle.Render(padRight("code", 8)), codeStyle.Render(p.Code)),
		fmt.Sprintf("%s %s", dimStyle.Render(padRight("unit", 8)), p.Unit),
		fmt.Sprintf("%s %s", dimStyle.Render(padRight("price", 8)), moneyStyle.Render(Money(p.UnitPrice))),
		fmt.Sprintf("%s %d", dimStyle.Render(padRight("stock", 8)), p.Stock),
		fmt.Sprintf("%s %s", dimStyle.Render(padRight("expiry", 8)), p.Expiry.Format(time.DateOnly)),
	}
	return boxStyle.Render(strings.Join(lines, "\n")) + "\n"
}

// RenderComboHeader announces an enumeration of C(n, m).
func RenderComboHeader(n, m int, count *big.Int) string {
	return fmt.Sprintf("  %s %s\n",
		titleStyle.Render(fmt.Sprintf("C(%d, %d)", n, m)),
		dimStyle.Render(fmt.Sprintf("= %s combinations", count.String())))
}

// RenderCombination formats "Combo #k: [code - name] + ... | total".
func RenderCombination(c combo.Combination) string {
	parts := make([]string, len(c.Items))
	for i, p := range c.Items {
		parts[i] = fmt.Sprintf("[%s - %s]", codeStyle.Render(p.Code), p.Name)
	}
	return fmt.Sprintf("  %s %s %s %s\n",
		dimStyle.Render(fmt.Sprintf("Combo #%d:", c.Seq)),
		strings.Join(parts, " + "),
		faintStyle.Render("|"),
		moneyStyle.Render(Money(c.Total)))
}

// RenderComboSummary closes an enumeration. emitted < total means the
// caller stopped early.
func RenderComboSummary(emitted int, total *big.Int) string {
	if big.NewInt(int64(emitted)).Cmp(total) < 0 {
		return "  " + warnStyle.Render(fmt.Sprintf("Stopped after %d of %s combinations.", emitted, total.String())) + "\n"
	}
	return "  " + passStyle.Render(fmt.Sprintf("Done. Found %d combinations.", emitted)) + "\n"
}

// RenderCart formats the lines of an open cart.
func RenderCart(cart *checkout.Cart) string {
	var b strings.Builder
	fmt.Fprintf(&b, "\n  %s %s\n", titleStyle.Render("Cart"), dimStyle.Render(fmt.Sprintf("(%d lines)", cart.Len())))
	b.WriteString("  " + separatorLine + "\n")
	for _, l := range cart.Lines() {
		fmt.Fprintf(&b, "  %s %s %s %s\n",
			codeStyle.Render(padRight(l.Product.Code, 11)),
			padRight(l.Product.Name, 28),
			padLeft(fmt.Sprintf("%d x %s", l.Quantity, Money(l.Product.UnitPrice)), 18),
			padLeft(Money(l.LineTotal()), 14))
	}
	fmt.Fprintf(&b, "  %s %s\n", padRight("", 58), moneyStyle.Render(padLeft(Money(cart.Total()), 14)))
	return b.String()
}

// RenderReceipt formats a committed receipt.
func RenderReceipt(r checkout.Receipt) string {
	var rows []string
	rows = append(rows, headerStyle.Render("RECEIPT"))
	rows = append(rows, dimStyle.Render(fmt.Sprintf("%s  %s", r.ID.String()[:8], r.CommittedAt.Format(time.DateTime))))
	rows = append(rows, "")
	for _, l := range r.Lines {
		rows = append(rows, fmt.Sprintf("%s %s %s",
			padRight(l.Name, 26),
			padLeft(fmt.Sprintf("%d %s x %s", l.Quantity, l.Unit, Money(l.UnitPrice)), 22),
			padLeft(Money(l.LineTotal), 12)))
	}
	rows = append(rows, "")
	rows = append(rows, fmt.Sprintf("%s %s", padRight("TOTAL", 49), moneyStyle.Render(padLeft(Money(r.Total), 12))))
	return boxStyle.Render(strings.Join(rows, "\n")) + "\n"
}

// MenuItem is one numbered entry of the interactive menu.
type MenuItem struct {
	Key   string
	Label string
}

// RenderMenu formats the interactive shell menu.
func RenderMenu(count int, items []MenuItem) string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(boxStyle.Render(headerStyle.Render("minimart") + "\n" +
		dimStyle.Render(fmt.Sprintf("%d products in catalog", count))))
	b.WriteString("\n")
	for _, it := range items {
		fmt.Fprintf(&b, "  %s %s\n", codeStyle.Render(it.Key+"."), it.Label)
	}
	return b.String()
}

// Success, Failure and Warning format one-line status messages.
func Success(msg string) string { return "  " + passStyle.Render(msg) + "\n" }

func Failure(msg string) string { return "  " + failStyle.Render(msg) + "\n" }

func Warning(msg string) string { return "  " + warnStyle.Render(msg) + "\n" }

func padRight(s string, width int) string {
	w := lipgloss.Width(s)
	if w >= width {
		return s
	}
	return s + strings.Repeat(" ", width-w)
}

func padLeft(s string, width int) string {
	w := lipgloss.Width(s)
	if w >= width {
		return s
	}
	return strings.Repeat(" ", width-w) + s
}

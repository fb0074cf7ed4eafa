package cli_test

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abdidvp/minimart/internal/adapters/inbound/cli"
)

func runShell(t *testing.T, script ...string) string {
	t.Helper()
	cmd := cli.NewRootCmdForTest()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetIn(strings.NewReader(strings.Join(script, "\n") + "\n"))
	cmd.SetArgs([]string{"--config", filepath.Join(t.TempDir(), "none.yaml"), "--rand-seed", "3", "shell"})
	require.NoError(t, cmd.Execute())
	return buf.String()
}

func TestShell_EmptyCatalogHint(t *testing.T) {
	out := runShell(t, "6", "0")
	assert.Contains(t, out, "0 products in catalog")
	assert.Contains(t, out, "Use option 8")
	assert.Contains(t, out, "Goodbye.")
}

func TestShell_GenerateListFind(t *testing.T) {
	out := runShell(t,
		"8", "5",
		"7",
		"2", "3",
		"3", "#4",
		"0",
	)
	assert.Contains(t, out, "Generated 5 products.")
	assert.Contains(t, out, "5 products in catalog")
	assert.Contains(t, out, "All products")
	assert.Contains(t, out, "MH00000003")
	assert.Contains(t, out, "Found 1")
	assert.Contains(t, out, "MH00000004")
}

func TestShell_GenerateRejectsOutOfRange(t *testing.T) {
	out := runShell(t, "8", "10000", "8", "0", "0")
	assert.Contains(t, out, "between 1 and 9999")
	assert.Contains(t, out, "0 products in catalog")
}

func TestShell_AddUpdateDelete(t *testing.T) {
	out := runShell(t,
		"1", "1", "Milk", "Box", "20000", "50", "2026-01-01",
		"1", "MH00000001", "Milk", "Box", "1", "1", "2026-01-01",
		"4", "00001", "", "", "21000", "", "",
		"2", "1",
		"5", "1", "no",
		"5", "1", "YES",
		"2", "1",
		"0",
	)
	assert.Contains(t, out, "Added MH00000001.")
	assert.Contains(t, out, "already exists")
	assert.Contains(t, out, "Updated.")
	assert.Contains(t, out, "21000.00")
	assert.Contains(t, out, "Delete cancelled.")
	assert.Contains(t, out, "Deleted MH00000001.")
	assert.Contains(t, out, "product not found: MH00000001")
}

func TestShell_AddRejectsBadInput(t *testing.T) {
	out := runShell(t,
		"1", "5", "Tea", "Box", "cheap",
		"1", "5", "Tea", "Box", "10", "3", "1999-01-01",
		"7",
		"0",
	)
	assert.Contains(t, out, `price "cheap" is not a number`)
	assert.Contains(t, out, "expiry")
	assert.Contains(t, out, "(empty)")
}

func TestShell_Combos(t *testing.T) {
	out := runShell(t, "8", "4", "6", "3", "2", "0")
	assert.Contains(t, out, "C(3, 2)")
	assert.Contains(t, out, "Combo #3:")
	assert.Contains(t, out, "Done. Found 3 combinations.")
}

func TestShell_CombosConfirmGate(t *testing.T) {
	out := runShell(t, "8", "30", "6", "25", "1", "NO", "6", "21", "1", "YES", "0")
	assert.Contains(t, out, "may take a long time")
	assert.Contains(t, out, "Cancelled.")
	assert.Contains(t, out, "Done. Found 21 combinations.")
}

func TestShell_Checkout(t *testing.T) {
	out := runShell(t,
		"8", "5",
		"9", "1=2", "2=1", "1=1", "99=1", "-2", "3=1", "", "YES",
		"0",
	)
	assert.Contains(t, out, "Cart")
	assert.Contains(t, out, "product already in cart")
	assert.Contains(t, out, "product not found")
	assert.Contains(t, out, "RECEIPT")
	assert.Contains(t, out, "TOTAL")
}

func TestShell_CheckoutEmptyAndCancel(t *testing.T) {
	out := runShell(t,
		"8", "3",
		"9", "",
		"9", "1=1", "cancel",
		"9", "1=1", "", "no",
		"0",
	)
	assert.Contains(t, out, "The cart is empty, nothing to commit.")
	assert.Contains(t, out, "Cart abandoned.")
	assert.NotContains(t, out, "RECEIPT")
}

func TestShell_UnknownOptionAndEOF(t *testing.T) {
	out := runShell(t, "x")
	assert.Contains(t, out, "Unknown option, choose again.")
	assert.NotContains(t, out, "Goodbye.")
}

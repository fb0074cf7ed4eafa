package cli_test

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/abdidvp/minimart/internal/adapters/inbound/cli"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitCmd_CreatesConfigFile(t *testing.T) {
	tmpDir := t.TempDir()

	root := cli.NewRootCmdForTest()
	root.SetArgs([]string{"init", tmpDir})
	require.NoError(t, root.Execute())

	data, err := os.ReadFile(filepath.Join(tmpDir, ".minimart.yaml"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "min_combo_size: 1")
	assert.Contains(t, string(data), "confirm_above: 20")
	assert.Contains(t, string(data), "max_generate: 9999")
}

func TestInitCmd_FailsIfExists(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, ".minimart.yaml"), []byte("existing"), 0644))

	root := cli.NewRootCmdForTest()
	root.SetArgs([]string{"init", tmpDir})
	err := root.Execute()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}

func TestInitCmd_ForceOverwrites(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, ".minimart.yaml"), []byte("old"), 0644))

	root := cli.NewRootCmdForTest()
	root.SetArgs([]string{"init", tmpDir, "--force"})
	require.NoError(t, root.Execute())

	data, err := os.ReadFile(filepath.Join(tmpDir, ".minimart.yaml"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "min_combo_size:")
	assert.NotEqual(t, "old", string(data))
}

func TestInitCmd_OutputLoadsBack(t *testing.T) {
	tmpDir := t.TempDir()

	root := cli.NewRootCmdForTest()
	root.SetArgs([]string{"init", tmpDir})
	require.NoError(t, root.Execute())

	root = cli.NewRootCmdForTest()
	root.SetOut(io.Discard)
	root.SetArgs([]string{"--config", filepath.Join(tmpDir, ".minimart.yaml"), "list"})
	assert.NoError(t, root.Execute())
}

package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, dir string) string {
	t.Helper()
	content := fmt.Sprintf(`output:
  root: %s
generation:
  max_chain: 10
  max_graph: 0
store:
  kind: sqlite
  path: %s
log:
  level: warn
`, filepath.Join(dir, "output"), filepath.Join(dir, "snpgen.db"))
	path := filepath.Join(dir, "snpgen.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := rootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestGenerateThenListFixtures(t *testing.T) {
	dir := t.TempDir()
	cfgPath := writeConfig(t, dir)

	_, err := execute(t, "generate", "--config", cfgPath)
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(dir, "output", "one-spike-chain", "v3", "one-chain_20.json"))
	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(dir, "output", "benchmark-complete", "v2", "benchmark-complete_10.xmp"))
	require.NoError(t, err)

	runs, err := execute(t, "runs", "--config", cfgPath)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(runs), "\n")
	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], "completed")
	assert.Contains(t, lines[0], "fixtures=12")

	fixtures, err := execute(t, "fixtures", "--config", cfgPath)
	require.NoError(t, err)
	lines = strings.Split(strings.TrimSpace(fixtures), "\n")
	require.Len(t, lines, 12)
	assert.Contains(t, lines[0], "one-chain_10.json")
	assert.Contains(t, lines[11], "benchmark-complete_10.xmp")

	runID := strings.SplitN(runs, "\t", 2)[0]
	byID, err := execute(t, "fixtures", runID, "--config", cfgPath)
	require.NoError(t, err)
	assert.Equal(t, fixtures, byID)
}

func TestFixturesWithoutRuns(t *testing.T) {
	dir := t.TempDir()
	cfgPath := writeConfig(t, dir)

	_, err := execute(t, "fixtures", "--config", cfgPath)
	assert.ErrorContains(t, err, "no runs recorded")
}

func TestMissingConfigFile(t *testing.T) {
	_, err := execute(t, "generate", "--config", filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

package integration

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rpgo/financial-planner/internal/cli"
)

func TestCLI_RunExampleAsCSV(t *testing.T) {
	t.Setenv("PLANNER_DB_PATH", "")

	var out, errOut bytes.Buffer
	err := cli.Execute("test", []string{"run", examplePath, "--format", "csv"}, &out, &errOut)
	require.NoError(t, err, errOut.String())

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, len(expectedRows)+1)
	for i, want := range expectedRows {
		assert.True(t, strings.HasPrefix(lines[i+1], strings.Join(want[:], ",")+","), lines[i+1])
	}
}

func TestCLI_ExampleRoundTrip(t *testing.T) {
	t.Setenv("PLANNER_DB_PATH", "")
	dir := t.TempDir()
	scenario := filepath.Join(dir, "example.yaml")
	report := filepath.Join(dir, "example.xlsx")

	var out, errOut bytes.Buffer
	require.NoError(t, cli.Execute("test", []string{"example", "-o", scenario}, &out, &errOut))
	require.NoError(t, cli.Execute("test", []string{"run", scenario, "-f", "excel", "-o", report}, &out, &errOut), errOut.String())

	info, err := os.Stat(report)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}

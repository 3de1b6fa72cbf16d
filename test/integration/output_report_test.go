package integration

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rpgo/financial-planner/internal/output"
)

func TestEveryFormatterRendersExample(t *testing.T) {
	engine, _ := runExample(t)
	results := engine.Results()

	for _, name := range output.AvailableFormatterNames() {
		t.Run(name, func(t *testing.T) {
			f, err := output.GetFormatterByName(name)
			require.NoError(t, err)
			data, err := f.Format(results)
			require.NoError(t, err)
			assert.NotEmpty(t, data)
		})
	}
}

func TestGenerateReport_MatchesSimulation(t *testing.T) {
	engine, _ := runExample(t)

	path := filepath.Join(t.TempDir(), "report.csv")
	written, err := output.GenerateReport(engine.Results(), path)
	require.NoError(t, err)
	assert.Equal(t, path, written)

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)

	require.Len(t, rows, len(expectedRows)+1)
	assert.Equal(t, output.SummaryHeader, rows[0])
	for i, want := range expectedRows {
		row := rows[i+1]
		assert.Equal(t, want[:], row[:5])
		assert.Equal(t, row[4], row[5], "naive discretionary equals leftover")
	}
}

func TestWriteFormatted_DefaultName(t *testing.T) {
	engine, _ := runExample(t)

	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	f, err := output.GetFormatterByName("json")
	require.NoError(t, err)
	path, err := output.WriteFormatted(f, engine.Results(), "")
	require.NoError(t, err)
	assert.Regexp(t, `^simulation_report_.+\.json$`, path)
	assert.FileExists(t, filepath.Join(dir, path))
}

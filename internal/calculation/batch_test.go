package calculation

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rpgo/financial-planner/internal/domain"
)

func TestRunBatch_PreservesOrder(t *testing.T) {
	var scenarios []BatchScenario
	for i := 0; i < 10; i++ {
		cfg := sampleConfig()
		cfg["end_year"] = 2024 + i
		scenarios = append(scenarios, BatchScenario{Name: fmt.Sprintf("s%d", i), Config: cfg})
	}

	out, err := RunBatch(context.Background(), scenarios, 3, nil)
	require.NoError(t, err)
	require.Len(t, out, 10)
	for i, r := range out {
		assert.Equal(t, fmt.Sprintf("s%d", i), r.Name)
		assert.Len(t, r.Results, i+1)
		assert.Equal(t, "140000.00", r.Results[0].TotalIncome.StringFixed(2))
	}
}

func TestRunBatch_ScenariosAreIndependent(t *testing.T) {
	shared := sampleConfig()
	scenarios := []BatchScenario{{Name: "a", Config: shared}, {Name: "b", Config: shared}}

	out, err := RunBatch(context.Background(), scenarios, 0, NopLogger{})
	require.NoError(t, err)
	assert.Equal(t, fixed(out[0].Results[2]), fixed(out[1].Results[2]))
}

func TestRunBatch_NameFallsBackToScenarioName(t *testing.T) {
	cfg := sampleConfig()
	cfg["name"] = "baseline"
	out, err := RunBatch(context.Background(), []BatchScenario{{Config: cfg}}, 1, nil)
	require.NoError(t, err)
	assert.Equal(t, "baseline", out[0].Name)
}

func TestRunBatch_FailureNamesScenario(t *testing.T) {
	bad := sampleConfig()
	delete(bad, "start_year")
	scenarios := []BatchScenario{{Name: "good", Config: sampleConfig()}, {Name: "broken", Config: bad}}

	out, err := RunBatch(context.Background(), scenarios, 2, nil)
	require.Error(t, err)
	assert.Nil(t, out)
	assert.Contains(t, err.Error(), "broken")
	assert.ErrorIs(t, err, domain.ErrConfiguration)
}

func TestRunBatch_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := RunBatch(ctx, []BatchScenario{{Name: "a", Config: sampleConfig()}}, 1, nil)
	assert.ErrorIs(t, err, context.Canceled)
}

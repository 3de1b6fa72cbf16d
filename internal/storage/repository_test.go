package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rpgo/financial-planner/internal/domain"
)

func newTestRepo(t *testing.T) *SQLiteRepository {
	t.Helper()
	repo, err := NewSQLiteRepository(filepath.Join(t.TempDir(), "nested", "planner.db"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })
	return repo
}

func amount(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func testRun() *Run {
	return &Run{
		Name:          "baseline",
		StartYear:     2024,
		EndYear:       2025,
		InflationRate: amount("0.02"),
		Scenario:      domain.RawConfig{"start_year": 2024, "end_year": 2025},
		Results: []domain.PeriodResult{
			{
				Year: 2024, TotalIncome: amount("140000"), TotalTaxes: amount("32000"),
				TotalMandatoryExpenses: amount("70000"), Leftover: amount("38000"), NaiveDiscretionary: amount("38000"),
				LivingCosts: amount("50000"), HousingCosts: amount("20000"),
			},
			{
				Year: 2025, TotalIncome: amount("144200"), TotalTaxes: amount("32960"),
				TotalMandatoryExpenses: amount("71400"), Leftover: amount("39840"), NaiveDiscretionary: amount("39840"),
				LivingCosts: amount("51000"), HousingCosts: amount("20400"),
			},
		},
		Warnings: []domain.Warning{{
			Year: 2024, Event: domain.EventJobChange, Code: domain.WarningMemberNotFound,
			Message: "member 'Charlie' not found in household",
		}},
	}
}

func TestSaveAndLoadRun(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	id, err := repo.SaveRun(ctx, testRun())
	require.NoError(t, err)
	require.NotEmpty(t, id)

	run, err := repo.LoadRun(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "baseline", run.Name)
	assert.Equal(t, 2024, run.StartYear)
	assert.Equal(t, 2025, run.EndYear)
	assert.Equal(t, "0.02", run.InflationRate.String())
	assert.EqualValues(t, 2024, run.Scenario["start_year"])

	require.Len(t, run.Results, 2)
	assert.Equal(t, 2025, run.Results[1].Year)
	assert.Equal(t, "39840.00", run.Results[1].Leftover.StringFixed(2))
	assert.Equal(t, "20400.00", run.Results[1].HousingCosts.StringFixed(2))

	require.Len(t, run.Warnings, 1)
	assert.Equal(t, domain.EventJobChange, run.Warnings[0].Event)
	assert.ErrorIs(t, run.Warnings[0], domain.ErrMemberNotFound)
}

func TestSaveRun_KeepsGivenID(t *testing.T) {
	repo := newTestRepo(t)
	run := testRun()
	run.ID = "fixed-id"
	id, err := repo.SaveRun(context.Background(), run)
	require.NoError(t, err)
	assert.Equal(t, "fixed-id", id)

	_, err = repo.SaveRun(context.Background(), run)
	assert.Error(t, err, "duplicate id must fail")
}

func TestListRuns_NewestFirst(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	base := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	for i, name := range []string{"first", "second", "third"} {
		run := testRun()
		run.Name = name
		run.CreatedAt = base.Add(time.Duration(i) * time.Hour)
		_, err := repo.SaveRun(ctx, run)
		require.NoError(t, err)
	}

	runs, err := repo.ListRuns(ctx, 0)
	require.NoError(t, err)
	require.Len(t, runs, 3)
	assert.Equal(t, "third", runs[0].Name)
	assert.Equal(t, "first", runs[2].Name)
	assert.Equal(t, 2, runs[0].Years)
	assert.True(t, runs[2].CreatedAt.Equal(base))

	limited, err := repo.ListRuns(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, limited, 2)
}

func TestLoadRun_NotFound(t *testing.T) {
	repo := newTestRepo(t)
	_, err := repo.LoadRun(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrRunNotFound)
}

func TestDeleteRun(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	id, err := repo.SaveRun(ctx, testRun())
	require.NoError(t, err)

	require.NoError(t, repo.DeleteRun(ctx, id))
	_, err = repo.LoadRun(ctx, id)
	assert.ErrorIs(t, err, ErrRunNotFound)
	assert.ErrorIs(t, repo.DeleteRun(ctx, id), ErrRunNotFound)
}

func TestRunMigrations_Idempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "planner.db")
	require.NoError(t, RunMigrations(path))
	require.NoError(t, RunMigrations(path))
}

func TestSaveRun_NilScenario(t *testing.T) {
	repo := newTestRepo(t)
	run := testRun()
	run.Scenario = nil
	id, err := repo.SaveRun(context.Background(), run)
	require.NoError(t, err)

	loaded, err := repo.LoadRun(context.Background(), id)
	require.NoError(t, err)
	assert.Nil(t, loaded.Scenario)
}

package calculation

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/rpgo/financial-planner/internal/domain"
)

// DefaultBatchConcurrency bounds RunBatch when no limit is given.
const DefaultBatchConcurrency = 4

// BatchScenario is one named scenario document in a batch.
type BatchScenario struct {
	Name   string
	Config domain.RawConfig
}

// BatchResult holds the outcome of one batch scenario.
type BatchResult struct {
	Name     string
	Results  []domain.PeriodResult
	Warnings []domain.Warning
}

// RunBatch simulates every scenario on its own engine, at most limit at a
// time. Results keep the input order. The first failure cancels the rest.
func RunBatch(ctx context.Context, scenarios []BatchScenario, limit int, logger Logger) ([]BatchResult, error) {
	if limit <= 0 {
		limit = DefaultBatchConcurrency
	}
	if logger == nil {
		logger = NopLogger{}
	}

	out := make([]BatchResult, len(scenarios))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for i, sc := range scenarios {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			engine := NewSimulationEngine()
			engine.SetLogger(logger)
			if err := engine.LoadScenario(sc.Config); err != nil {
				return fmt.Errorf("scenario %s: %w", sc.Name, err)
			}
			if err := engine.RunSimulation(); err != nil {
				return fmt.Errorf("scenario %s: %w", sc.Name, err)
			}
			name := sc.Name
			if name == "" {
				name = engine.Name()
			}
			out[i] = BatchResult{Name: name, Results: engine.Results(), Warnings: engine.Warnings()}
			logger.Infof("scenario %s simulated %d period(s)", name, len(out[i].Results))
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

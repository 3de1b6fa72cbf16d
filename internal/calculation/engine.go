package calculation

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/rpgo/financial-planner/internal/domain"
	"github.com/rpgo/financial-planner/pkg/money"
)

// SimulationEngine owns one household and steps it forward year by year.
// It is not safe for concurrent use; independent scenarios need independent
// engines (see RunBatch).
type SimulationEngine struct {
	Logger Logger

	scenario *scenario
	results  []domain.PeriodResult
	warnings []domain.Warning
}

// NewSimulationEngine creates an engine in the unloaded state.
func NewSimulationEngine() *SimulationEngine {
	return &SimulationEngine{Logger: NopLogger{}}
}

// SetLogger sets the logger for the engine. If nil is provided, a no-op logger is used.
func (se *SimulationEngine) SetLogger(l Logger) {
	if l == nil {
		se.Logger = NopLogger{}
		return
	}
	se.Logger = l
}

// LoadScenario coerces and validates raw, then replaces the engine's
// household and parameters with it. On error nothing is replaced.
func (se *SimulationEngine) LoadScenario(raw domain.RawConfig) error {
	sc, err := parseScenario(raw)
	if err != nil {
		return err
	}
	se.scenario = sc
	se.results = nil
	se.warnings = nil
	se.Logger.Debugf("scenario loaded: %d-%d, %d member(s), %d event(s)",
		sc.startYear, sc.endYear, len(sc.household.Members), len(sc.events))
	return nil
}

// RunSimulation records one result per year from start_year through
// end_year inclusive. The first result is the untouched initial state.
// Results from any previous run are discarded, but the household is not
// rebuilt: running twice continues from the already advanced household.
func (se *SimulationEngine) RunSimulation() error {
	if se.scenario == nil {
		return domain.ErrUninitialized
	}
	sc := se.scenario

	se.results = make([]domain.PeriodResult, 0, periodCount(sc.startYear, sc.endYear))
	se.warnings = nil

	current := sc.startYear
	se.Logger.Debugf("period is currently %d", current)
	if _, err := se.CalculateAndStoreResults(current); err != nil {
		return err
	}

	for current < sc.endYear {
		if err := se.UpdatePeriod(current); err != nil {
			return err
		}
		current++
		se.Logger.Debugf("period is currently %d", current)
		if _, err := se.CalculateAndStoreResults(current); err != nil {
			return err
		}
	}
	return nil
}

func periodCount(start, end int) int {
	if end < start {
		return 1
	}
	return end - start + 1
}

// UpdatePeriod moves the household out of period: inflation, fixed income
// growth, then every event dated period. An event dated Y is therefore
// first visible in the snapshot for Y+1.
func (se *SimulationEngine) UpdatePeriod(period int) error {
	if se.scenario == nil {
		return domain.ErrUninitialized
	}
	sc := se.scenario
	hh := sc.household

	if sc.inflationRate.IsPositive() {
		hh.ApplyInflation(sc.inflationRate)
		se.Logger.Debugf("applied inflation rate of %s to living and housing costs", sc.inflationRate)
	}

	for _, member := range hh.Members {
		member.UpdateIncome()
		se.Logger.Debugf("%s's income updated to %s for year %d", member.Name, money.String(member.Income), period+1)
	}

	for _, ev := range sc.events {
		if ev.EventYear() != period {
			continue
		}
		if err := se.ApplyEvent(ev); err != nil {
			return fmt.Errorf("apply %s event for %d: %w", ev.Type(), period, err)
		}
	}
	return nil
}

// ApplyEvent mutates the household according to ev. A job change naming an
// unknown member is not an error: it is logged, recorded as a warning and
// skipped.
func (se *SimulationEngine) ApplyEvent(ev domain.Event) error {
	if se.scenario == nil {
		return domain.ErrUninitialized
	}
	hh := se.scenario.household
	se.Logger.Debugf("applying event '%s' for year %d", ev.Type(), ev.EventYear())

	switch e := ev.(type) {
	case domain.HousePurchase:
		mortgage, err := domain.NewMortgage(e.Principal, e.InterestRate, domain.DefaultMortgageTermYears)
		if err != nil {
			return err
		}
		hh.AddMortgage(mortgage)
		se.Logger.Debugf("mortgage added: principal=%s rate=%s payment=%s",
			money.String(mortgage.Principal), mortgage.InterestRate, money.String(mortgage.AnnualPayment))

	case domain.NewChild:
		hh.IncreaseLivingCosts(domain.ChildLivingCostIncrease)
		se.Logger.Debugf("living costs increased by %s due to new child", money.String(domain.ChildLivingCostIncrease))

	case domain.JobChange:
		member, ok := hh.MemberByName(e.MemberName)
		if !ok {
			w := domain.Warning{
				Year:    e.Year,
				Event:   e.Type(),
				Code:    domain.WarningMemberNotFound,
				Message: fmt.Sprintf("member '%s' not found in household", e.MemberName),
				Err:     domain.ErrMemberNotFound,
			}
			se.warnings = append(se.warnings, w)
			se.Logger.Warnf("%s", w.Message)
			return nil
		}
		if err := member.UpdateIncomeSpecific(e.NewIncome); err != nil {
			return err
		}
		se.Logger.Debugf("%s's income explicitly set to %s", member.Name, money.String(member.Income))

	case domain.Windfall:
		hh.AddWindfall(e.Amount)
		se.Logger.Debugf("windfall of %s added to cash reserves", money.String(e.Amount))

	default:
		return fmt.Errorf("unsupported event type %q", ev.Type())
	}
	return nil
}

// CalculateAndStoreResults snapshots the household for period and appends
// the result. Aggregating income realizes any pending windfall.
func (se *SimulationEngine) CalculateAndStoreResults(period int) (domain.PeriodResult, error) {
	if se.scenario == nil {
		return domain.PeriodResult{}, domain.ErrUninitialized
	}
	hh := se.scenario.household

	income := hh.AggregateIncome()
	taxes := hh.AggregateTaxes()
	expenses := hh.TotalMandatoryExpenses()
	leftover := money.Cents(income.Sub(taxes).Sub(expenses))

	result := domain.PeriodResult{
		Year:                   period,
		TotalIncome:            income,
		TotalTaxes:             taxes,
		TotalMandatoryExpenses: expenses,
		Leftover:               leftover,
		NaiveDiscretionary:     leftover,
		LivingCosts:            hh.LivingCosts,
		HousingCosts:           hh.HousingCosts,
	}
	se.results = append(se.results, result)
	return result, nil
}

// IsLoaded reports whether a scenario has been loaded successfully.
func (se *SimulationEngine) IsLoaded() bool { return se.scenario != nil }

// Results returns the results of the last run, ordered by year.
func (se *SimulationEngine) Results() []domain.PeriodResult {
	return append([]domain.PeriodResult(nil), se.results...)
}

// Warnings returns the non-fatal conditions raised during the last run.
func (se *SimulationEngine) Warnings() []domain.Warning {
	return append([]domain.Warning(nil), se.warnings...)
}

// Household returns the engine's household, or nil before a load.
func (se *SimulationEngine) Household() *domain.Household {
	if se.scenario == nil {
		return nil
	}
	return se.scenario.household
}

// Name returns the optional scenario name.
func (se *SimulationEngine) Name() string {
	if se.scenario == nil {
		return ""
	}
	return se.scenario.name
}

// Years returns the inclusive simulation bounds.
func (se *SimulationEngine) Years() (start, end int) {
	if se.scenario == nil {
		return 0, 0
	}
	return se.scenario.startYear, se.scenario.endYear
}

// InflationRate returns the loaded inflation rate, rounded to four places.
func (se *SimulationEngine) InflationRate() decimal.Decimal {
	if se.scenario == nil {
		return money.Zero
	}
	return se.scenario.inflationRate
}

// TimeFrequency returns the loaded period granularity.
func (se *SimulationEngine) TimeFrequency() domain.TimeFrequency {
	if se.scenario == nil {
		return ""
	}
	return se.scenario.timeFrequency
}

// Events returns the loaded events in configuration order.
func (se *SimulationEngine) Events() []domain.Event {
	if se.scenario == nil {
		return nil
	}
	return append([]domain.Event(nil), se.scenario.events...)
}

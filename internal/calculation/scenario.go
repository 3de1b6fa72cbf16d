package calculation

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/rpgo/financial-planner/internal/domain"
	"github.com/rpgo/financial-planner/pkg/money"
)

// scenario is the fully coerced form of a RawConfig. It is built completely
// before an engine adopts it, so a failed load never leaves partial state.
type scenario struct {
	name          string
	startYear     int
	endYear       int
	inflationRate decimal.Decimal
	timeFrequency domain.TimeFrequency
	household     *domain.Household
	events        []domain.Event
}

func parseScenario(raw domain.RawConfig) (*scenario, error) {
	if raw == nil {
		return nil, domain.InvalidField("scenario", nil, errors.New("configuration is empty"))
	}
	m := map[string]any(raw)
	sc := &scenario{}
	var err error

	if sc.name, err = domain.OptionalString(m, "", "name", ""); err != nil {
		return nil, err
	}
	if sc.startYear, err = domain.RequireInt(m, "", "start_year"); err != nil {
		return nil, err
	}
	if sc.endYear, err = domain.RequireInt(m, "", "end_year"); err != nil {
		return nil, err
	}
	rate, err := domain.OptionalDecimal(m, "", "inflation_rate", money.Zero)
	if err != nil {
		return nil, err
	}
	sc.inflationRate = money.Rate(rate)

	freq, err := domain.OptionalString(m, "", "time_frequency", string(domain.FrequencyYear))
	if err != nil {
		return nil, err
	}
	if sc.timeFrequency, err = domain.ParseTimeFrequency(freq); err != nil {
		return nil, domain.InvalidField("time_frequency", freq, err)
	}

	if sc.household, err = parseHousehold(m); err != nil {
		return nil, err
	}

	rawEvents, err := domain.OptionalList(m, "", "events")
	if err != nil {
		return nil, err
	}
	if sc.events, err = domain.ParseEvents(rawEvents); err != nil {
		return nil, err
	}
	return sc, nil
}

func parseHousehold(m map[string]any) (*domain.Household, error) {
	hh, err := domain.RequireMap(m, "", "household")
	if err != nil {
		return nil, err
	}
	living, err := domain.RequireDecimal(hh, "household", "living_costs")
	if err != nil {
		return nil, err
	}
	housing, err := domain.RequireDecimal(hh, "household", "housing_costs")
	if err != nil {
		return nil, err
	}
	rawMembers, err := domain.RequireList(hh, "household", "members")
	if err != nil {
		return nil, err
	}

	members := make([]*domain.Person, 0, len(rawMembers))
	for i, rm := range rawMembers {
		path := fmt.Sprintf("household.members[%d]", i)
		p, err := parseMember(rm, path)
		if err != nil {
			return nil, err
		}
		members = append(members, p)
	}
	return domain.NewHousehold(members, living, housing), nil
}

func parseMember(raw any, path string) (*domain.Person, error) {
	mm, ok := domain.AsMap(raw)
	if !ok {
		return nil, domain.InvalidField(path, raw, errors.New("member must be a mapping"))
	}
	name, err := domain.RequireString(mm, path, "name")
	if err != nil {
		return nil, err
	}
	income, err := domain.RequireDecimal(mm, path, "income")
	if err != nil {
		return nil, err
	}
	taxRate, err := domain.RequireDecimal(mm, path, "tax_rate")
	if err != nil {
		return nil, err
	}
	savings, err := domain.OptionalDecimal(mm, path, "savings", money.Zero)
	if err != nil {
		return nil, err
	}
	return domain.NewPerson(name, income, taxRate, savings), nil
}

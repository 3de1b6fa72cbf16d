package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/rpgo/financial-planner/pkg/money"
)

// EventType tags the closed set of life events.
type EventType string

const (
	EventHousePurchase EventType = "house_purchase"
	EventNewChild      EventType = "new_child"
	EventJobChange     EventType = "job_change"
	EventWindfall      EventType = "windfall"
)

// Event is a dated instruction that mutates a household. The set of
// implementations is closed: HousePurchase, NewChild, JobChange, Windfall.
type Event interface {
	EventYear() int
	Type() EventType
	// ToRaw renders the event back into its configuration form.
	ToRaw() map[string]any
	sealed()
}

// HousePurchase takes out a default-term mortgage.
type HousePurchase struct {
	Year         int
	Principal    decimal.Decimal
	InterestRate decimal.Decimal
}

// NewChild raises living costs by ChildLivingCostIncrease.
type NewChild struct {
	Year int
}

// JobChange overrides a member's income.
type JobChange struct {
	Year       int
	MemberName string
	NewIncome  decimal.Decimal
}

// Windfall adds a one-time amount to cash reserves.
type Windfall struct {
	Year   int
	Amount decimal.Decimal
}

func (e HousePurchase) EventYear() int { return e.Year }
func (e NewChild) EventYear() int      { return e.Year }
func (e JobChange) EventYear() int     { return e.Year }
func (e Windfall) EventYear() int      { return e.Year }

func (HousePurchase) Type() EventType { return EventHousePurchase }
func (NewChild) Type() EventType      { return EventNewChild }
func (JobChange) Type() EventType     { return EventJobChange }
func (Windfall) Type() EventType      { return EventWindfall }

func (HousePurchase) sealed() {}
func (NewChild) sealed()      {}
func (JobChange) sealed()     {}
func (Windfall) sealed()      {}

func (e HousePurchase) ToRaw() map[string]any {
	return map[string]any{
		"year":          e.Year,
		"type":          string(EventHousePurchase),
		"principal":     e.Principal.InexactFloat64(),
		"interest_rate": e.InterestRate.InexactFloat64(),
	}
}

func (e NewChild) ToRaw() map[string]any {
	return map[string]any{"year": e.Year, "type": string(EventNewChild)}
}

func (e JobChange) ToRaw() map[string]any {
	return map[string]any{
		"year":        e.Year,
		"type":        string(EventJobChange),
		"member_name": e.MemberName,
		"new_income":  e.NewIncome.InexactFloat64(),
	}
}

func (e Windfall) ToRaw() map[string]any {
	return map[string]any{
		"year":   e.Year,
		"type":   string(EventWindfall),
		"amount": e.Amount.InexactFloat64(),
	}
}

// ParseEvent validates one raw event and converts it to its variant.
// path names the event in errors, e.g. "events[2]".
func ParseEvent(raw any, path string) (Event, error) {
	m, ok := AsMap(raw)
	if !ok {
		return nil, InvalidField(path, raw, errors.New("event must be a mapping"))
	}
	year, err := RequireInt(m, path, "year")
	if err != nil {
		return nil, err
	}
	typ, err := RequireString(m, path, "type")
	if err != nil {
		return nil, err
	}

	switch EventType(typ) {
	case EventHousePurchase:
		principal, err := requirePositive(m, path, "principal")
		if err != nil {
			return nil, err
		}
		rate, err := requirePositive(m, path, "interest_rate")
		if err != nil {
			return nil, err
		}
		return HousePurchase{Year: year, Principal: principal, InterestRate: rate}, nil

	case EventNewChild:
		return NewChild{Year: year}, nil

	case EventJobChange:
		name, err := RequireString(m, path, "member_name")
		if err != nil {
			return nil, err
		}
		if name == "" {
			return nil, InvalidField(joinPath(path, "member_name"), name, errors.New("member name is required"))
		}
		income, err := requireNonNegative(m, path, "new_income")
		if err != nil {
			return nil, err
		}
		return JobChange{Year: year, MemberName: name, NewIncome: income}, nil

	case EventWindfall:
		amount, err := requireNonNegative(m, path, "amount")
		if err != nil {
			return nil, err
		}
		return Windfall{Year: year, Amount: amount}, nil
	}

	return nil, InvalidField(joinPath(path, "type"), typ,
		fmt.Errorf("unknown event type; must be one of %s, %s, %s, %s",
			EventHousePurchase, EventNewChild, EventJobChange, EventWindfall))
}

// ParseEvents validates an ordered event list.
func ParseEvents(raw []any) ([]Event, error) {
	events := make([]Event, 0, len(raw))
	for i, r := range raw {
		ev, err := ParseEvent(r, fmt.Sprintf("events[%d]", i))
		if err != nil {
			return nil, err
		}
		events = append(events, ev)
	}
	return events, nil
}

func requirePositive(m map[string]any, path, key string) (decimal.Decimal, error) {
	d, err := RequireDecimal(m, path, key)
	if err != nil {
		return money.Zero, err
	}
	if !d.IsPositive() {
		return money.Zero, InvalidField(joinPath(path, key), m[key], errors.New("must be positive"))
	}
	return d, nil
}

func requireNonNegative(m map[string]any, path, key string) (decimal.Decimal, error) {
	d, err := RequireDecimal(m, path, key)
	if err != nil {
		return money.Zero, err
	}
	if d.IsNegative() {
		return money.Zero, InvalidField(joinPath(path, key), m[key], errors.New("cannot be negative"))
	}
	return d, nil
}

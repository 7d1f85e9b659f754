// Package stats computes the summaries the dashboard charts are drawn from.
// Every method is a pure read of an immutable table and can be called
// concurrently.
package stats

import (
	"errors"
	"fmt"
	"math"

	"github.com/samber/lo"

	"retrospectiva/internal/core"
	"retrospectiva/internal/dataset"
)

var ErrEmptyTable = errors.New("empty table")

type (
	MonthCount struct {
		Month core.Month `json:"-"`
		Label string     `json:"month"`
		Count int        `json:"count"`
	}

	CategoryCount struct {
		Value string `json:"value"`
		Count int    `json:"count"`
	}

	// Filter restricts counting to rows whose Field equals Value.
	Filter struct {
		Field core.Field `json:"field"`
		Value string     `json:"value"`
	}

	// AgeSummary holds the five-number summary plus the raw points for a box plot.
	AgeSummary struct {
		Min    float64 `json:"min"`
		Q1     float64 `json:"q1"`
		Median float64 `json:"median"`
		Q3     float64 `json:"q3"`
		Max    float64 `json:"max"`
		Mean   float64 `json:"mean"`
		Points []int   `json:"points"`
	}
)

type Aggregator struct {
	table *dataset.Table
}

func New(table *dataset.Table) *Aggregator {
	return &Aggregator{table: table}
}

// Table exposes the underlying read-only table.
func (a *Aggregator) Table() *dataset.Table {
	return a.table
}

// Total returns the number of events.
func (a *Aggregator) Total() int {
	return a.table.Len()
}

// CountByMonth returns one entry per calendar month, January first,
// including months without events.
func (a *Aggregator) CountByMonth() []MonthCount {
	byMonth := lo.GroupBy(a.table.Events(), func(e core.Event) core.Month { return e.Month })
	return lo.Map(core.Months(), func(m core.Month, _ int) MonthCount {
		return MonthCount{Month: m, Label: m.String(), Count: len(byMonth[m])}
	})
}

// CountByCategory returns the frequency of every observed value of field in
// order of first occurrence. Sentinel values such as the "N/A" venue are
// counted as their own bucket.
func (a *Aggregator) CountByCategory(field core.Field) ([]CategoryCount, error) {
	if !field.Categorical() {
		return nil, fmt.Errorf("%w: %q is not categorical", core.ErrUnknownField, string(field))
	}
	values, err := a.table.Column(field)
	if err != nil {
		return nil, err
	}
	return countInOrder(values), nil
}

// CountByCategoryWhere counts field over the rows matching where.
func (a *Aggregator) CountByCategoryWhere(field core.Field, where Filter) ([]CategoryCount, error) {
	if !field.Categorical() {
		return nil, fmt.Errorf("%w: %q is not categorical", core.ErrUnknownField, string(field))
	}
	if _, err := core.ParseField(string(field)); err != nil {
		return nil, err
	}
	if _, err := core.ParseField(string(where.Field)); err != nil || !where.Field.Categorical() {
		return nil, fmt.Errorf("%w: filter on %q", core.ErrUnknownField, string(where.Field))
	}
	var values []string
	for _, e := range a.table.Events() {
		got, err := where.Field.Value(e)
		if err != nil {
			return nil, err
		}
		if got != where.Value {
			continue
		}
		v, err := field.Value(e)
		if err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	return countInOrder(values), nil
}

// AgeSummary describes the age distribution.
func (a *Aggregator) AgeSummary() (AgeSummary, error) {
	if a.table.Len() == 0 {
		return AgeSummary{}, ErrEmptyTable
	}
	ages := a.table.Frame().Col(string(core.FieldAge))
	if ages.Err != nil {
		return AgeSummary{}, fmt.Errorf("age column: %w", ages.Err)
	}
	s := AgeSummary{
		Min:    ages.Min(),
		Q1:     ages.Quantile(0.25),
		Median: ages.Median(),
		Q3:     ages.Quantile(0.75),
		Max:    ages.Max(),
		Mean:   ages.Mean(),
		Points: a.table.Ages(),
	}
	for _, v := range []float64{s.Min, s.Q1, s.Median, s.Q3, s.Max, s.Mean} {
		if math.IsNaN(v) {
			return AgeSummary{}, fmt.Errorf("age column is not numeric")
		}
	}
	return s, nil
}

// Count returns how many rows have field equal to value.
func (a *Aggregator) Count(field core.Field, value string) (int, error) {
	counts, err := a.CountByCategory(field)
	if err != nil {
		return 0, err
	}
	for _, c := range counts {
		if c.Value == value {
			return c.Count, nil
		}
	}
	return 0, nil
}

func countInOrder(values []string) []CategoryCount {
	return lo.Map(lo.Uniq(values), func(v string, _ int) CategoryCount {
		return CategoryCount{Value: v, Count: lo.Count(values, v)}
	})
}

// Sum adds up the counts.
func Sum(counts []CategoryCount) int {
	return lo.SumBy(counts, func(c CategoryCount) int { return c.Count })
}

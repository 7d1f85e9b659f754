// Package dataset builds the immutable event table the dashboard is rendered from.
package dataset

import (
	"cmp"
	"fmt"
	"io"
	"slices"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/samber/lo"

	"retrospectiva/internal/core"
)

// Table is the enriched, month-ordered event table. It is never mutated
// after Build returns, so it can be shared between goroutines.
type Table struct {
	events []core.Event
	frame  dataframe.DataFrame
}

type Option func(*builder)

type builder struct {
	records    []Record
	classifier core.Classifier
}

// WithRecords replaces the embedded sample rows.
func WithRecords(records []Record) Option {
	return func(b *builder) {
		b.records = append([]Record(nil), records...)
	}
}

// WithClassifier replaces the default profession lookup.
func WithClassifier(c core.Classifier) Option {
	return func(b *builder) {
		b.classifier = c
	}
}

// Build parses every record, derives its area and sorts the result by
// calendar month. Records sharing a month keep their input order. Any
// record that cannot be parsed or classified aborts the build.
func Build(opts ...Option) (*Table, error) {
	b := builder{
		records:    SampleRecords(),
		classifier: core.DefaultClassifier(),
	}
	for _, opt := range opts {
		opt(&b)
	}

	events := make([]core.Event, 0, len(b.records))
	for i, r := range b.records {
		e, err := parseRecord(r, b.classifier)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		events = append(events, e)
	}

	slices.SortStableFunc(events, func(a, b core.Event) int {
		return cmp.Compare(a.Month, b.Month)
	})

	frame, err := newFrame(events)
	if err != nil {
		return nil, fmt.Errorf("build frame: %w", err)
	}

	return &Table{events: events, frame: frame}, nil
}

func parseRecord(r Record, classifier core.Classifier) (core.Event, error) {
	month, err := core.ParseMonth(r.Month)
	if err != nil {
		return core.Event{}, err
	}
	source, err := core.ParseSourceType(r.Source)
	if err != nil {
		return core.Event{}, err
	}
	kissed, err := core.ParseAnswer(r.Kissed)
	if err != nil {
		return core.Event{}, err
	}
	outcome, err := core.ParseOutcome(r.Outcome)
	if err != nil {
		return core.Event{}, err
	}
	area, err := classifier.Classify(r.Profession)
	if err != nil {
		return core.Event{}, err
	}

	venue := r.Venue
	if venue == "" {
		venue = core.VenueNotApplicable
	}

	e := core.Event{
		Month:      month,
		Country:    r.Country,
		Profession: r.Profession,
		Age:        r.Age,
		HairColor:  r.HairColor,
		Source:     source,
		Venue:      venue,
		Kissed:     kissed,
		Outcome:    outcome,
		Area:       area,
	}
	if err := e.Validate(); err != nil {
		return core.Event{}, err
	}
	return e, nil
}

// newFrame lays the events out column by column in core.Fields order.
func newFrame(events []core.Event) (dataframe.DataFrame, error) {
	cols := make([]series.Series, 0, len(core.Fields()))
	for _, f := range core.Fields() {
		if f == core.FieldAge {
			ages := lo.Map(events, func(e core.Event, _ int) int { return e.Age })
			cols = append(cols, series.New(ages, series.Int, string(f)))
			continue
		}
		values := make([]string, len(events))
		for i, e := range events {
			v, err := f.Value(e)
			if err != nil {
				return dataframe.DataFrame{}, err
			}
			values[i] = v
		}
		cols = append(cols, series.New(values, series.String, string(f)))
	}

	df := dataframe.New(cols...)
	if df.Err != nil {
		return dataframe.DataFrame{}, df.Err
	}
	return df, nil
}

// Len returns the number of events.
func (t *Table) Len() int {
	return len(t.events)
}

// Events returns a copy of the ordered events.
func (t *Table) Events() []core.Event {
	return append([]core.Event(nil), t.events...)
}

// Ages returns the age column in table order.
func (t *Table) Ages() []int {
	return lo.Map(t.events, func(e core.Event, _ int) int { return e.Age })
}

// Column returns the string rendering of one column in table order.
func (t *Table) Column(field core.Field) ([]string, error) {
	if _, err := core.ParseField(string(field)); err != nil {
		return nil, err
	}
	col := t.frame.Col(string(field))
	if col.Err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrUnknownField, col.Err)
	}
	return col.Records(), nil
}

// Frame returns a copy of the tabular view so callers cannot alter the table.
func (t *Table) Frame() dataframe.DataFrame {
	return t.frame.Copy()
}

// WriteCSV writes the table with a header row.
func (t *Table) WriteCSV(w io.Writer) error {
	if err := t.frame.WriteCSV(w); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}
	return nil
}

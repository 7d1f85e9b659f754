// Package report describes the dashboard page: headline cards, the chart
// sections and the copy around them. It holds no rendering code.
package report

import (
	"fmt"

	"retrospectiva/internal/core"
	"retrospectiva/internal/stats"
)

const (
	StatusSuccess Status = "success"
	StatusWarning Status = "warning"
	StatusAlert   Status = "alert"
	StatusNeutral Status = "neutral"

	KindDonut ChartKind = "donut"
	KindBar   ChartKind = "bar"
	KindBox   ChartKind = "box"

	NoteInfo    NoteKind = "info"
	NoteSuccess NoteKind = "success"
)

type (
	Status    string
	ChartKind string
	NoteKind  string

	// KPI is one headline card.
	KPI struct {
		Label  string
		Value  string
		Sub    string
		Status Status
	}

	// ChartSpec describes what a chart shows and how it is coloured.
	ChartSpec struct {
		ID         string
		Title      string
		Kind       ChartKind
		Field      core.Field
		Where      *stats.Filter
		Palette    []string
		ColorMap   map[string]string
		Annotation []string // centre text lines for donuts
	}

	Note struct {
		Kind  NoteKind
		Title string
		Body  string
	}

	Section struct {
		Title  string
		Charts []ChartSpec
		Note   *Note
	}

	Report struct {
		Title      string
		Caption    string
		KPIs       []KPI
		KPINote    string
		Sections   []Section
		Conclusion Note
		Credits    string
	}
)

// Chart finds a chart by id.
func (r Report) Chart(id string) (ChartSpec, bool) {
	for _, s := range r.Sections {
		for _, c := range s.Charts {
			if c.ID == id {
				return c, true
			}
		}
	}
	return ChartSpec{}, false
}

// Charts lists every chart in page order.
func (r Report) Charts() []ChartSpec {
	var out []ChartSpec
	for _, s := range r.Sections {
		out = append(out, s.Charts...)
	}
	return out
}

// Color returns the colour for the i-th value of a chart: the colour map
// wins, then the palette cycles.
func (c ChartSpec) Color(i int, value string) string {
	if col, ok := c.ColorMap[value]; ok {
		return col
	}
	if len(c.Palette) == 0 {
		return ColorSage
	}
	return c.Palette[i%len(c.Palette)]
}

// Validate checks the chart can be drawn.
func (c ChartSpec) Validate() error {
	if c.ID == "" {
		return fmt.Errorf("chart without id")
	}
	switch c.Kind {
	case KindDonut:
		if !c.Field.Categorical() {
			return fmt.Errorf("chart %s: donut needs a categorical field, got %q", c.ID, c.Field)
		}
	case KindBar:
		if c.Field != core.FieldMonth {
			return fmt.Errorf("chart %s: bar charts are drawn per month", c.ID)
		}
	case KindBox:
		if c.Field != core.FieldAge {
			return fmt.Errorf("chart %s: box charts are drawn for age", c.ID)
		}
	default:
		return fmt.Errorf("chart %s: unknown kind %q", c.ID, c.Kind)
	}
	return nil
}

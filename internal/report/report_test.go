package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"retrospectiva/internal/core"
	"retrospectiva/internal/dataset"
	"retrospectiva/internal/stats"
)

func TestDefaultReport(t *testing.T) {
	table, err := dataset.Build()
	require.NoError(t, err)

	r, err := Default(stats.New(table))
	require.NoError(t, err)

	assert.Equal(t, "Retrospectiva '25", r.Title)
	assert.Len(t, r.KPIs, 6)
	require.Len(t, r.Sections, 3)
	assert.Len(t, r.Charts(), 9)

	ids := map[string]bool{}
	for _, c := range r.Charts() {
		assert.False(t, ids[c.ID], "duplicate chart id %s", c.ID)
		ids[c.ID] = true
	}

	out, ok := r.Chart("outcome")
	require.True(t, ok)
	assert.Equal(t, []string{"⚠️", "Failed Situationships", "01"}, out.Annotation)

	onboarding, ok := r.Chart("onboarding")
	require.True(t, ok)
	require.NotNil(t, onboarding.Where)
	assert.Equal(t, core.FieldSource, onboarding.Where.Field)

	_, ok = r.Chart("missing")
	assert.False(t, ok)
}

func TestChartColor(t *testing.T) {
	c := ChartSpec{Palette: []string{"#111111", "#222222"}, ColorMap: map[string]string{"x": "#ABCDEF"}}
	assert.Equal(t, "#111111", c.Color(0, "a"))
	assert.Equal(t, "#222222", c.Color(1, "b"))
	assert.Equal(t, "#111111", c.Color(2, "c"))
	assert.Equal(t, "#ABCDEF", c.Color(3, "x"))

	assert.Equal(t, ColorSage, ChartSpec{}.Color(0, "a"))
}

func TestChartValidate(t *testing.T) {
	cases := []struct {
		name string
		spec ChartSpec
		ok   bool
	}{
		{"donut on category", ChartSpec{ID: "a", Kind: KindDonut, Field: core.FieldCountry}, true},
		{"donut on age", ChartSpec{ID: "a", Kind: KindDonut, Field: core.FieldAge}, false},
		{"bar on month", ChartSpec{ID: "a", Kind: KindBar, Field: core.FieldMonth}, true},
		{"bar on country", ChartSpec{ID: "a", Kind: KindBar, Field: core.FieldCountry}, false},
		{"box on age", ChartSpec{ID: "a", Kind: KindBox, Field: core.FieldAge}, true},
		{"no id", ChartSpec{Kind: KindBox, Field: core.FieldAge}, false},
		{"unknown kind", ChartSpec{ID: "a", Kind: "radar", Field: core.FieldAge}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.spec.Validate()
			if tc.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

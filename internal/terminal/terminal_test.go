package terminal

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"retrospectiva/internal/core"
	"retrospectiva/internal/dataset"
	"retrospectiva/internal/report"
	"retrospectiva/internal/stats"
)

func setup(t *testing.T) (report.Report, *stats.Aggregator) {
	t.Helper()
	table, err := dataset.Build()
	require.NoError(t, err)
	agg := stats.New(table)
	rep, err := report.Default(agg)
	require.NoError(t, err)
	return rep, agg
}

func TestSummary(t *testing.T) {
	rep, agg := setup(t)

	out, err := Summary(nil, rep, agg, core.FieldArea, core.FieldCountry)
	require.NoError(t, err)

	for _, want := range []string{
		"Retrospectiva '25",
		"DISAPPOINTMENTS RECEIVED",
		"Error 500",
		"Dates per month (8 total)",
		"By area",
		"Technical",
		"By country",
		"Brazil",
	} {
		assert.Contains(t, out, want)
	}
}

func TestSummaryRejectsNumericField(t *testing.T) {
	rep, agg := setup(t)

	_, err := Summary(NewTheme(), rep, agg, core.FieldAge)
	assert.ErrorIs(t, err, core.ErrUnknownField)
}

func TestMonthsListsEveryMonth(t *testing.T) {
	_, agg := setup(t)

	lines := strings.Split(strings.TrimSpace(Months(NewTheme(), agg.CountByMonth())), "\n")
	require.Len(t, lines, 12)
	assert.True(t, strings.HasPrefix(lines[0], "Jan"))
	assert.True(t, strings.HasPrefix(lines[11], "Dec"))
	assert.Contains(t, lines[3], "·", "empty months get a placeholder bar")
	assert.True(t, strings.HasSuffix(lines[3], " 0"))
}

func TestCategoriesShares(t *testing.T) {
	out := Categories(NewTheme(), []stats.CategoryCount{
		{Value: "Yes", Count: 3},
		{Value: "No", Count: 1},
	})

	assert.Contains(t, out, "3 (75%)")
	assert.Contains(t, out, "1 (25%)")
	assert.Empty(t, Categories(NewTheme(), nil))
}

func TestBar(t *testing.T) {
	assert.Equal(t, "·", bar(0, 5))
	assert.Equal(t, strings.Repeat("█", barWidth), bar(5, 5))
	assert.Equal(t, "█", bar(1, 1000))
}

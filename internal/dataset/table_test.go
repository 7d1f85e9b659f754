package dataset

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"retrospectiva/internal/core"
)

func TestBuildSample(t *testing.T) {
	table, err := Build()
	require.NoError(t, err)
	require.Equal(t, 8, table.Len())

	events := table.Events()
	for i := 1; i < len(events); i++ {
		assert.LessOrEqual(t, events[i-1].Month, events[i].Month, "row %d out of calendar order", i)
	}
	assert.Equal(t, "Turkey", events[0].Country)
	assert.Equal(t, "Germany", events[1].Country)
	assert.Equal(t, "December", events[7].Month.String())
}

func TestBuildSortsStablyByCalendarMonth(t *testing.T) {
	recs := []Record{
		row("December", "Lawyer", "first-dec"),
		row("March", "Engineer", "first-mar"),
		row("December", "Nutrition", "second-dec"),
		row("January", "Architect", "jan"),
		row("March", "Journalist", "second-mar"),
	}
	table, err := Build(WithRecords(recs))
	require.NoError(t, err)

	countries, err := table.Column(core.FieldCountry)
	require.NoError(t, err)
	assert.Equal(t, []string{"jan", "first-mar", "second-mar", "first-dec", "second-dec"}, countries)
}

func TestAreaIsDerivedFromProfession(t *testing.T) {
	table, err := Build()
	require.NoError(t, err)

	seen := map[string]core.Area{}
	for _, e := range table.Events() {
		if prev, ok := seen[e.Profession]; ok {
			assert.Equal(t, prev, e.Area, e.Profession)
		}
		seen[e.Profession] = e.Area

		want, err := core.DefaultClassifier().Classify(e.Profession)
		require.NoError(t, err)
		assert.Equal(t, want, e.Area)
	}
}

func TestBuildFailsOnUnmappedProfession(t *testing.T) {
	strict := core.NewClassifier([]core.Rule{
		{Area: core.Technical, Professions: []string{"Engineer", "Architect"}},
		{Area: core.Health, Professions: []string{"Nutrition", "Physiotherapy"}},
	})
	_, err := Build(WithClassifier(strict))
	assert.ErrorIs(t, err, core.ErrUnmappedCategory)
}

func TestBuildRejectsInvalidRows(t *testing.T) {
	badMonth := row("Smarch", "Engineer", "x")
	_, err := Build(WithRecords([]Record{badMonth}))
	assert.ErrorIs(t, err, core.ErrInvalidMonth)

	badOutcome := row("May", "Engineer", "x")
	badOutcome.Outcome = "Married"
	_, err = Build(WithRecords([]Record{badOutcome}))
	assert.ErrorIs(t, err, core.ErrInvalidValue)

	badAge := row("May", "Engineer", "x")
	badAge.Age = 0
	_, err = Build(WithRecords([]Record{badAge}))
	assert.ErrorIs(t, err, core.ErrInvalidAge)
}

func TestEmptyVenueBecomesSentinel(t *testing.T) {
	r := row("May", "Engineer", "x")
	r.Venue = ""
	table, err := Build(WithRecords([]Record{r}))
	require.NoError(t, err)

	venues, err := table.Column(core.FieldVenue)
	require.NoError(t, err)
	assert.Equal(t, []string{core.VenueNotApplicable}, venues)
}

func TestTableIsNotAliased(t *testing.T) {
	table, err := Build()
	require.NoError(t, err)

	events := table.Events()
	events[0].Country = "Mars"
	assert.Equal(t, "Turkey", table.Events()[0].Country)

	frame := table.Frame()
	assert.Equal(t, 8, frame.Nrow())
	assert.Equal(t, len(core.Fields()), frame.Ncol())
}

func TestColumnAndAges(t *testing.T) {
	table, err := Build()
	require.NoError(t, err)

	areas, err := table.Column(core.FieldArea)
	require.NoError(t, err)
	assert.Equal(t, "Technical", areas[0])

	assert.Equal(t, []int{25, 22, 27, 22, 24, 25, 24, 20}, table.Ages())

	_, err = table.Column(core.Field("zodiac"))
	assert.ErrorIs(t, err, core.ErrUnknownField)
}

func TestWriteCSV(t *testing.T) {
	table, err := Build()
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, table.WriteCSV(&buf))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 9)
	assert.Equal(t, "month", rows[0][0])
	assert.Equal(t, "area", rows[0][len(rows[0])-1])
	assert.Equal(t, "January", rows[1][0])
}

func row(month, profession, country string) Record {
	return Record{
		Month: month, Country: country, Profession: profession, Age: 30,
		HairColor: "Brown", Source: "New", Venue: "Park", Kissed: "No", Outcome: "Friends",
	}
}

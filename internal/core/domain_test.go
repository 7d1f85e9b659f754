package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMonthsCalendarOrder(t *testing.T) {
	months := Months()
	require.Len(t, months, 12)
	assert.Equal(t, "January", months[0].String())
	assert.Equal(t, "December", months[11].String())
	for i := 1; i < len(months); i++ {
		assert.Less(t, months[i-1], months[i])
	}
}

func TestParseMonth(t *testing.T) {
	m, err := ParseMonth(" March ")
	require.NoError(t, err)
	assert.Equal(t, "March", m.String())
	assert.Equal(t, "Mar", m.Short())

	for _, bad := range []string{"", "march", "Janeiro", "13"} {
		_, err := ParseMonth(bad)
		assert.ErrorIs(t, err, ErrInvalidMonth, bad)
	}
}

func TestClosedSets(t *testing.T) {
	_, err := ParseSourceType("New")
	assert.NoError(t, err)
	_, err = ParseSourceType("Fresh")
	assert.ErrorIs(t, err, ErrInvalidValue)

	_, err = ParseAnswer("No")
	assert.NoError(t, err)
	_, err = ParseAnswer("Maybe")
	assert.ErrorIs(t, err, ErrInvalidValue)

	_, err = ParseOutcome("Ghosting")
	assert.NoError(t, err)
	_, err = ParseOutcome("Married")
	assert.ErrorIs(t, err, ErrInvalidValue)
}

func TestEventValidate(t *testing.T) {
	good := Event{
		Month: Month(1), Country: "Brazil", Profession: "Engineer", Age: 25,
		HairColor: "Brown", Source: New, Venue: "Park", Kissed: Yes, Outcome: Friends,
	}
	require.NoError(t, good.Validate())

	bads := []Event{
		func() Event { e := good; e.Month = 0; return e }(),
		func() Event { e := good; e.Age = 0; return e }(),
		func() Event { e := good; e.Profession = " "; return e }(),
		func() Event { e := good; e.Source = "x"; return e }(),
		func() Event { e := good; e.Kissed = "x"; return e }(),
		func() Event { e := good; e.Outcome = "x"; return e }(),
	}
	for i, e := range bads {
		assert.Error(t, e.Validate(), "case %d", i)
	}
}

func TestFieldValue(t *testing.T) {
	e := Event{Month: Month(8), Age: 24, Venue: VenueNotApplicable, Area: Health}

	v, err := FieldMonth.Value(e)
	require.NoError(t, err)
	assert.Equal(t, "August", v)

	v, err = FieldAge.Value(e)
	require.NoError(t, err)
	assert.Equal(t, "24", v)

	v, err = FieldVenue.Value(e)
	require.NoError(t, err)
	assert.Equal(t, "N/A", v)

	_, err = Field("shoe_size").Value(e)
	assert.ErrorIs(t, err, ErrUnknownField)
}

func TestParseField(t *testing.T) {
	f, err := ParseField("Hair_Color")
	require.NoError(t, err)
	assert.Equal(t, FieldHairColor, f)
	assert.True(t, f.Categorical())
	assert.False(t, FieldAge.Categorical())

	_, err = ParseField("zodiac")
	assert.ErrorIs(t, err, ErrUnknownField)
}

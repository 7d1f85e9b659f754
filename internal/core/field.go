package core

import (
	"fmt"
	"strconv"
	"strings"
)

// Field names a column of the event table.
type Field string

const (
	FieldMonth      Field = "month"
	FieldCountry    Field = "country"
	FieldProfession Field = "profession"
	FieldAge        Field = "age"
	FieldHairColor  Field = "hair_color"
	FieldSource     Field = "source"
	FieldVenue      Field = "venue"
	FieldKissed     Field = "kissed"
	FieldOutcome    Field = "outcome"
	FieldArea       Field = "area"
)

// Fields returns every column in table order.
func Fields() []Field {
	return []Field{
		FieldMonth, FieldCountry, FieldProfession, FieldAge, FieldHairColor,
		FieldSource, FieldVenue, FieldKissed, FieldOutcome, FieldArea,
	}
}

func ParseField(s string) (Field, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, f := range Fields() {
		if string(f) == s {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownField, s)
}

// Categorical reports whether the field holds a closed or free-form label
// rather than a number.
func (f Field) Categorical() bool {
	return f != FieldAge && f != ""
}

// Value returns the field of e rendered as a string.
func (f Field) Value(e Event) (string, error) {
	switch f {
	case FieldMonth:
		return e.Month.String(), nil
	case FieldCountry:
		return e.Country, nil
	case FieldProfession:
		return e.Profession, nil
	case FieldAge:
		return strconv.Itoa(e.Age), nil
	case FieldHairColor:
		return e.HairColor, nil
	case FieldSource:
		return string(e.Source), nil
	case FieldVenue:
		return e.Venue, nil
	case FieldKissed:
		return string(e.Kissed), nil
	case FieldOutcome:
		return string(e.Outcome), nil
	case FieldArea:
		return string(e.Area), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownField, string(f))
	}
}

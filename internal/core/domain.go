package core

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	Recycled SourceType = "Recycled"
	New      SourceType = "New"

	Yes Answer = "Yes"
	No  Answer = "No"

	Acquaintances Outcome = "Acquaintances"
	Friends       Outcome = "Friends"
	Ghosting      Outcome = "Ghosting"

	// VenueNotApplicable marks events where the venue is not relevant
	// (recycled contacts have no first-date venue).
	VenueNotApplicable = "N/A"
)

type (
	// Month is a calendar month label with calendar ordering (January < ... < December).
	Month time.Month

	SourceType string
	Answer     string
	Outcome    string

	Event struct {
		Month      Month
		Country    string
		Profession string
		Age        int
		HairColor  string
		Source     SourceType
		Venue      string
		Kissed     Answer
		Outcome    Outcome
		Area       Area // derived from Profession, never read from input
	}
)

var (
	ErrInvalidMonth     = errors.New("invalid month")
	ErrInvalidValue     = errors.New("invalid value")
	ErrInvalidAge       = errors.New("invalid age")
	ErrUnmappedCategory = errors.New("unmapped category")
	ErrUnknownField     = errors.New("unknown field")
)

// Months returns the twelve canonical months in calendar order.
func Months() []Month {
	out := make([]Month, 0, 12)
	for m := time.January; m <= time.December; m++ {
		out = append(out, Month(m))
	}
	return out
}

// ParseMonth accepts only the twelve canonical English labels.
func ParseMonth(label string) (Month, error) {
	label = strings.TrimSpace(label)
	for _, m := range Months() {
		if m.String() == label {
			return m, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidMonth, label)
}

func (m Month) String() string {
	return time.Month(m).String()
}

// Short returns the three letter label used on chart axes.
func (m Month) Short() string {
	return m.String()[:3]
}

// Valid reports whether m is one of the twelve calendar months.
func (m Month) Valid() bool {
	return m >= Month(time.January) && m <= Month(time.December)
}

// ParseSourceType accepts Recycled or New.
func ParseSourceType(s string) (SourceType, error) {
	switch v := SourceType(strings.TrimSpace(s)); v {
	case Recycled, New:
		return v, nil
	default:
		return "", fmt.Errorf("%w: source %q", ErrInvalidValue, s)
	}
}

// ParseAnswer accepts Yes or No.
func ParseAnswer(s string) (Answer, error) {
	switch v := Answer(strings.TrimSpace(s)); v {
	case Yes, No:
		return v, nil
	default:
		return "", fmt.Errorf("%w: answer %q", ErrInvalidValue, s)
	}
}

// ParseOutcome accepts Acquaintances, Friends or Ghosting.
func ParseOutcome(s string) (Outcome, error) {
	switch v := Outcome(strings.TrimSpace(s)); v {
	case Acquaintances, Friends, Ghosting:
		return v, nil
	default:
		return "", fmt.Errorf("%w: outcome %q", ErrInvalidValue, s)
	}
}

// Validate reports the first rule the event breaks.
func (e Event) Validate() error {
	if !e.Month.Valid() {
		return fmt.Errorf("%w: %d", ErrInvalidMonth, int(e.Month))
	}
	if e.Age <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidAge, e.Age)
	}
	if strings.TrimSpace(e.Profession) == "" {
		return fmt.Errorf("%w: empty profession", ErrInvalidValue)
	}
	if _, err := ParseSourceType(string(e.Source)); err != nil {
		return err
	}
	if _, err := ParseAnswer(string(e.Kissed)); err != nil {
		return err
	}
	if _, err := ParseOutcome(string(e.Outcome)); err != nil {
		return err
	}
	return nil
}

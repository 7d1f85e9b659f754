package core

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
)

// Area is the professional bucket derived from a profession.
type Area string

const (
	Technical        Area = "Technical"
	Health           Area = "Health"
	HumanitiesSocial Area = "Humanities/Social"
)

// Rule maps a closed set of professions onto one area.
type Rule struct {
	Area        Area
	Professions []string
}

// Classifier maps professions to areas. Rules are checked in order; without a
// fallback an unmatched profession is an ErrUnmappedCategory.
type Classifier struct {
	rules       []Rule
	fallback    Area
	hasFallback bool
}

type ClassifierOption func(*Classifier)

// WithFallback makes the classifier total: unmatched professions land in area.
func WithFallback(area Area) ClassifierOption {
	return func(c *Classifier) {
		c.fallback = area
		c.hasFallback = true
	}
}

// NewClassifier builds a lookup from rules. Without WithFallback it has no
// catch-all and unmatched professions fail with ErrUnmappedCategory.
func NewClassifier(rules []Rule, opts ...ClassifierOption) Classifier {
	c := Classifier{rules: append([]Rule(nil), rules...)}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// DefaultClassifier is the lookup used for the dashboard data.
func DefaultClassifier() Classifier {
	return NewClassifier([]Rule{
		{Area: Technical, Professions: []string{"Engineer", "Architect"}},
		{Area: Health, Professions: []string{"Nutrition", "Physiotherapy"}},
	}, WithFallback(HumanitiesSocial))
}

// Classify returns the area for profession. It has no hidden state: the same
// profession always yields the same result.
func (c Classifier) Classify(profession string) (Area, error) {
	p := strings.TrimSpace(profession)
	for _, r := range c.rules {
		if lo.Contains(r.Professions, p) {
			return r.Area, nil
		}
	}
	if c.hasFallback {
		return c.fallback, nil
	}
	return "", fmt.Errorf("%w: profession %q", ErrUnmappedCategory, profession)
}

// Total reports whether every profession maps to some area.
func (c Classifier) Total() bool {
	return c.hasFallback
}

package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultClassifier(t *testing.T) {
	c := DefaultClassifier()
	require.True(t, c.Total())

	cases := map[string]Area{
		"Engineer":      Technical,
		"Architect":     Technical,
		"Nutrition":     Health,
		"Physiotherapy": Health,
		"Lawyer":        HumanitiesSocial,
		"Journalist":    HumanitiesSocial,
		"Astronaut":     HumanitiesSocial,
	}
	for prof, want := range cases {
		got, err := c.Classify(prof)
		require.NoError(t, err, prof)
		assert.Equal(t, want, got, prof)
	}
}

func TestClassifyIsPure(t *testing.T) {
	c := DefaultClassifier()
	first, err := c.Classify("Architect")
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		again, err := c.Classify("Architect")
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestClassifierWithoutFallback(t *testing.T) {
	c := NewClassifier([]Rule{
		{Area: Technical, Professions: []string{"Engineer"}},
	})
	assert.False(t, c.Total())

	got, err := c.Classify("Engineer")
	require.NoError(t, err)
	assert.Equal(t, Technical, got)

	_, err = c.Classify("Lawyer")
	assert.ErrorIs(t, err, ErrUnmappedCategory)
}

func TestClassifierRulesAreCopied(t *testing.T) {
	rules := []Rule{{Area: Health, Professions: []string{"Nutrition"}}}
	c := NewClassifier(rules)
	rules[0].Area = Technical

	got, err := c.Classify("Nutrition")
	require.NoError(t, err)
	assert.Equal(t, Health, got)
}

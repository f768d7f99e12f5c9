package router

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	r := New(DefaultFallback, DefaultRules()...)

	testCases := []struct {
		name     string
		text     string
		expected AgentID
	}{
		{"refund keyword", "I want a refund for my order", "refund"},
		{"billing keyword", "there is a problem with my invoice", "billing"},
		{"case insensitive", "REFUND please", "refund"},
		{"punctuation around keyword", "Refund!", "refund"},
		{"no match falls back", "how do I change my password", "triage"},
		{"empty text falls back", "", "triage"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, r.Classify(tc.text))
		})
	}
}

func TestClassifyFirstMatchWins(t *testing.T) {
	r := New(DefaultFallback, DefaultRules()...)

	// Mentions both refund and billing; refund rule is evaluated first
	assert.Equal(t, AgentID("refund"), r.Classify("refund the billing charge"))
}

func TestClassifyCustomRules(t *testing.T) {
	r := New("human",
		Rule{Agent: "orders", Keywords: []string{"order", "shipping"}},
		Rule{Agent: "accounts", Keywords: []string{"login", "password"}},
	)

	assert.Equal(t, AgentID("orders"), r.Classify("where is my order?"))
	assert.Equal(t, AgentID("accounts"), r.Classify("I forgot my password"))
	assert.Equal(t, AgentID("human"), r.Classify("something else entirely"))
}

func TestClassifyNoSubstringMatches(t *testing.T) {
	r := New(DefaultFallback, DefaultRules()...)

	// "returning" contains "return" as a substring but is a different token
	assert.Equal(t, DefaultFallback, r.Classify("returning to the home page"))
}

func TestRulesReturnsCopy(t *testing.T) {
	r := New(DefaultFallback, DefaultRules()...)

	rules := r.Rules()
	rules[0].Agent = "mutated"

	assert.Equal(t, AgentID("refund"), r.Rules()[0].Agent)
}

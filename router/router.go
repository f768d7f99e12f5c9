// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


// Package router classifies free text onto named agents by keyword rules.
//
// Rules are evaluated in order and the first rule with a matching keyword
// wins, so more specific rules belong earlier in the table. Text that
// matches no rule routes to the fallback agent.
package router

import "github.com/poiesic/corpus/core"

// AgentID names a destination agent.
type AgentID string

// Rule routes text containing any of its keywords to an agent.
type Rule struct {
	// Agent is the destination for matching text.
	Agent AgentID

	// Keywords trigger the rule. Matching is token-based and
	// case-insensitive.
	Keywords []string
}

// Router classifies text onto agents using an ordered rule table.
type Router struct {
	fallback AgentID
	rules    []Rule
}

// New creates a Router with the given fallback agent and rule table.
// Rules are evaluated in the order given.
func New(fallback AgentID, rules ...Rule) *Router {
	return &Router{
		fallback: fallback,
		rules:    rules,
	}
}

// Classify returns the agent for the first rule whose keywords appear in
// the text, or the fallback agent when no rule matches.
func (r *Router) Classify(text string) AgentID {
	for _, rule := range r.rules {
		if core.ContainsAnyToken(text, rule.Keywords) {
			return rule.Agent
		}
	}
	return r.fallback
}

// Rules returns a copy of the rule table in evaluation order.
func (r *Router) Rules() []Rule {
	out := make([]Rule, len(r.rules))
	copy(out, r.rules)
	return out
}

// DefaultRules returns the standard support routing table: refunds before
// billing, since refund requests usually mention billing terms too.
func DefaultRules() []Rule {
	return []Rule{
		{Agent: "refund", Keywords: []string{"refund", "return", "money-back", "chargeback"}},
		{Agent: "billing", Keywords: []string{"billing", "invoice", "payment", "charge", "subscription"}},
	}
}

// DefaultFallback is the agent that receives unclassified text.
const DefaultFallback AgentID = "triage"

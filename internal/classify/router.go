package classify

import (
	"context"
	"fmt"
	"strings"
)

// ExistenceChecker probes the store for already-recorded events. The
// degrade/success guard checks by (label, dt) only; the creature name is
// not part of that probe.
type ExistenceChecker interface {
	// CreatureExists reports whether a creature event with this exact
	// natural key is already stored. Name matching happens after spelling
	// correction, which the store applies on both reads and writes.
	CreatureExists(ctx context.Context, dt int64, eventType, creature string, level int) (bool, error)

	// UpgradeExists reports whether any upgrade event with this label was
	// recorded at this timestamp.
	UpgradeExists(ctx context.Context, label string, dt int64) (bool, error)
}

// Rule pairs a trigger predicate with a handler. The Router tries rules in
// order and the first matching trigger wins, which makes the dispatch
// policy explicit rather than an accident of control flow.
type Rule struct {
	Name   string
	Match  func(body string) bool
	Handle func(ctx context.Context, dt int64, body string) (Outcome, error)
}

// Router dispatches a normalized entry body to the first rule whose
// trigger matches. Ignore rules are listed before grammar rules; a body
// matching no trigger at all is Failed.
type Router struct {
	rules []Rule
}

// NewRouter builds the default creature-log rule set over the given
// existence checker.
func NewRouter(checker ExistenceChecker) *Router {
	if checker == nil {
		panic("classify: nil existence checker")
	}

	grant := GrantClassifier{MaxLevel: 10}
	degrade := NewDegradeClassifier()
	success := NewSuccessClassifier()

	ignored := func(context.Context, int64, string) (Outcome, error) {
		return Outcome{Kind: Ignored}, nil
	}
	contains := func(trigger string) func(string) bool {
		return func(body string) bool { return strings.Contains(body, trigger) }
	}

	rules := []Rule{
		{
			Name:   "blank",
			Match:  func(body string) bool { return body == "" },
			Handle: ignored,
		},
		{
			Name:   "breakthrough-cost",
			Match:  contains(TriggerBreakthrough),
			Handle: ignored,
		},
		{
			Name:   "quick-upgrade-cost",
			Match:  contains(TriggerQuickUpgrade),
			Handle: ignored,
		},
		{
			Name:  "grant",
			Match: contains(TriggerGrant),
			Handle: func(ctx context.Context, dt int64, body string) (Outcome, error) {
				ev := grant.Classify(body)
				if ev == nil {
					return Outcome{Kind: Failed}, nil
				}
				exists, err := checker.CreatureExists(ctx, dt, ev.Type, ev.Creature, ev.CreatureLevel)
				if err != nil {
					return Outcome{}, fmt.Errorf("classify: grant existence check: %w", err)
				}
				if exists {
					return Outcome{Kind: Skipped, Reason: "grant already recorded"}, nil
				}
				return Outcome{Kind: Parsed, Event: ev}, nil
			},
		},
		{
			Name:  "degrade",
			Match: contains(TriggerDegrade),
			Handle: func(ctx context.Context, dt int64, body string) (Outcome, error) {
				return classifyUpgrade(ctx, checker, degrade, TriggerDegrade, dt, body)
			},
		},
		{
			Name:  "success",
			Match: contains(TriggerSuccess),
			Handle: func(ctx context.Context, dt int64, body string) (Outcome, error) {
				return classifyUpgrade(ctx, checker, success, TriggerSuccess, dt, body)
			},
		},
	}

	return &Router{rules: rules}
}

// classifyUpgrade applies the shared upgrade flow: the (label, dt)
// pre-existence guard first, then the grammar.
func classifyUpgrade(ctx context.Context, checker ExistenceChecker, c UpgradeClassifier, label string, dt int64, body string) (Outcome, error) {
	exists, err := checker.UpgradeExists(ctx, label, dt)
	if err != nil {
		return Outcome{}, fmt.Errorf("classify: upgrade existence check: %w", err)
	}
	if exists {
		return Outcome{Kind: Skipped, Reason: "upgrade already recorded at this timestamp"}, nil
	}
	ev := c.Classify(body)
	if ev == nil {
		return Outcome{Kind: Failed}, nil
	}
	return Outcome{Kind: Parsed, Event: ev}, nil
}

// RuleNames returns the rule names in dispatch order.
func (r *Router) RuleNames() []string {
	names := make([]string, len(r.rules))
	for i, rule := range r.rules {
		names[i] = rule.Name
	}
	return names
}

// Route dispatches one normalized entry body. The first rule whose trigger
// matches decides the outcome; no matching trigger means Failed.
func (r *Router) Route(ctx context.Context, dt int64, body string) (Outcome, error) {
	for _, rule := range r.rules {
		if rule.Match(body) {
			return rule.Handle(ctx, dt, body)
		}
	}
	return Outcome{Kind: Failed}, nil
}

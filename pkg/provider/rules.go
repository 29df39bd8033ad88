package provider

import "maps"

// Rename moves a config field to a new key.
type Rename struct {
	From string
	To   string
}

// InjectContext is what an inject rule computes its value from.
type InjectContext struct {
	BaseURL  string
	Settings Settings
}

// InjectFunc computes a synthetic config field.
type InjectFunc func(ctx InjectContext) any

// Rule lists the special cases of a single provider.
// Renames run first, then injections, then the static merge.
type Rule struct {
	Inject      map[string]InjectFunc
	StaticMerge map[string]any
	Rename      []Rename
}

// IsZero reports whether the rule changes nothing.
func (r Rule) IsZero() bool {
	return len(r.Rename) == 0 && len(r.Inject) == 0 && len(r.StaticMerge) == 0
}

// RuleSet is an immutable table of per-provider rules.
type RuleSet struct {
	rules map[ID]Rule
}

// NewRuleSet builds a rule set. Rules are copied on construction.
func NewRuleSet(rules map[ID]Rule) *RuleSet {
	rs := &RuleSet{rules: make(map[ID]Rule, len(rules))}
	for id, r := range rules {
		rs.rules[id] = Rule{
			Rename:      append([]Rename(nil), r.Rename...),
			Inject:      maps.Clone(r.Inject),
			StaticMerge: maps.Clone(r.StaticMerge),
		}
	}
	return rs
}

// For returns the rule of a provider; the zero Rule when there is none.
func (rs *RuleSet) For(id ID) Rule {
	if rs == nil {
		return Rule{}
	}
	return rs.rules[id]
}

// Copyright 2026 Quaesit Systems
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


package classify

import (
	"regexp"

	"github.com/quaesit/quaesit/core"
)

// Source identifies which mechanism produced a classification decision.
type Source int

const (
	// SourcePattern means a rule table produced the label.
	SourcePattern Source = iota
	// SourceFallback means the external fallback classifier produced the label.
	SourceFallback
)

// String returns the lowercase source name.
func (s Source) String() string {
	if s == SourceFallback {
		return "fallback"
	}
	return "pattern"
}

// Rule pairs a compiled pattern with the label it indicates.
// Rules are plain values; a classifier is just two ordered rule tables.
type Rule struct {
	Pattern *regexp.Regexp
	Label   core.QueryLabel
}

// Result is a classification decision with its provenance.
type Result struct {
	Label  core.QueryLabel
	Source Source
}

// Classifier routes queries by matching them against ordered rule tables.
// Simple-indicative rules are evaluated before complex-indicative rules;
// the first match wins. Classification is deterministic and has no side
// effects. When no rule matches, the label is LabelUnknown and the caller
// is expected to consult a fallback classifier.
type Classifier struct {
	simpleRules  []Rule
	complexRules []Rule
}

// Option configures a Classifier.
type Option func(*Classifier)

// WithSimpleRules replaces the simple-indicative rule table.
func WithSimpleRules(rules []Rule) Option {
	return func(c *Classifier) {
		c.simpleRules = rules
	}
}

// WithComplexRules replaces the complex-indicative rule table.
func WithComplexRules(rules []Rule) Option {
	return func(c *Classifier) {
		c.complexRules = rules
	}
}

// NewClassifier creates a classifier with the default rule tables.
func NewClassifier(opts ...Option) *Classifier {
	c := &Classifier{
		simpleRules:  defaultSimpleRules,
		complexRules: defaultComplexRules,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Classify matches the query against the rule tables.
// Matching is performed on the normalized form of the query so rule authors
// only deal with lowercase text.
func (c *Classifier) Classify(query string) Result {
	normalized := core.NormalizeQuery(query)

	for _, rule := range c.simpleRules {
		if rule.Pattern.MatchString(normalized) {
			return Result{Label: rule.Label, Source: SourcePattern}
		}
	}
	for _, rule := range c.complexRules {
		if rule.Pattern.MatchString(normalized) {
			return Result{Label: rule.Label, Source: SourcePattern}
		}
	}

	return Result{Label: core.LabelUnknown, Source: SourcePattern}
}

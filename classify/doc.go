// Package classify implements the rule-table pattern classifier that routes
// queries between the structured simple path and the retrieval/validation
// complex path. The rules are data, not code: ordered tables of
// (pattern, label) values, extensible without touching the evaluation loop.
package classify

package mock

import (
	"context"
	"strings"
	"sync/atomic"

	"github.com/quaesit/quaesit/core"
)

// MockQueryClassifier is a test double for ai.QueryClassifier.
// It allows custom behavior injection via function fields.
type MockQueryClassifier struct {
	// ClassifyQueryFunc is called by ClassifyQuery if set.
	// If nil, uses a simple heuristic default.
	ClassifyQueryFunc func(ctx context.Context, query string) (core.QueryLabel, error)

	callCount atomic.Int64
}

// NewMockQueryClassifier creates a mock classifier with default behavior.
func NewMockQueryClassifier() *MockQueryClassifier {
	return &MockQueryClassifier{}
}

// ClassifyQuery classifies the query.
// Default behavior: short queries are simple, anything else is complex,
// mirroring the "when in doubt, complex" convention of real classifiers.
func (m *MockQueryClassifier) ClassifyQuery(ctx context.Context, query string) (core.QueryLabel, error) {
	m.callCount.Add(1)

	if m.ClassifyQueryFunc != nil {
		return m.ClassifyQueryFunc(ctx, query)
	}

	if len(strings.Fields(query)) <= 3 {
		return core.LabelSimple, nil
	}
	return core.LabelComplex, nil
}

// CallCount returns the number of times ClassifyQuery was called.
func (m *MockQueryClassifier) CallCount() int {
	return int(m.callCount.Load())
}

// Reset clears the call count and custom functions.
func (m *MockQueryClassifier) Reset() {
	m.callCount.Store(0)
	m.ClassifyQueryFunc = nil
}

package mock

import (
	"context"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/quaesit/quaesit/ai"
)

// MockCandidateValidator is a test double for ai.CandidateValidator.
// It allows custom behavior injection via function fields and tracks the
// number of calls observably in flight at once, which lets tests assert
// worker-pool bounds.
type MockCandidateValidator struct {
	// ValidateCandidateFunc is called by ValidateCandidate if set.
	// If nil, accepts any candidate whose text shares a word with the query.
	ValidateCandidateFunc func(ctx context.Context, query, text string) (ai.Verdict, error)

	callCount   atomic.Int64
	inFlight    atomic.Int64
	maxInFlight atomic.Int64
	mu          sync.Mutex
}

// NewMockCandidateValidator creates a mock validator with default behavior.
func NewMockCandidateValidator() *MockCandidateValidator {
	return &MockCandidateValidator{}
}

// ValidateCandidate evaluates a candidate.
// Default behavior: accept when any query word of length > 3 appears in the
// text, case-insensitively.
func (m *MockCandidateValidator) ValidateCandidate(ctx context.Context, query, text string) (ai.Verdict, error) {
	m.callCount.Add(1)

	cur := m.inFlight.Add(1)
	defer m.inFlight.Add(-1)
	m.mu.Lock()
	if cur > m.maxInFlight.Load() {
		m.maxInFlight.Store(cur)
	}
	m.mu.Unlock()

	if m.ValidateCandidateFunc != nil {
		return m.ValidateCandidateFunc(ctx, query, text)
	}

	lowered := strings.ToLower(text)
	for _, word := range strings.Fields(strings.ToLower(query)) {
		if len(word) > 3 && strings.Contains(lowered, word) {
			return ai.Verdict{Accepted: true, Rationale: "mock: query term present"}, nil
		}
	}
	return ai.Verdict{Accepted: false, Rationale: "mock: no query term present"}, nil
}

// CallCount returns the number of times ValidateCandidate was called.
func (m *MockCandidateValidator) CallCount() int {
	return int(m.callCount.Load())
}

// MaxInFlight returns the highest number of concurrent calls observed.
func (m *MockCandidateValidator) MaxInFlight() int {
	return int(m.maxInFlight.Load())
}

// Reset clears counters and custom functions.
func (m *MockCandidateValidator) Reset() {
	m.callCount.Store(0)
	m.inFlight.Store(0)
	m.maxInFlight.Store(0)
	m.ValidateCandidateFunc = nil
}

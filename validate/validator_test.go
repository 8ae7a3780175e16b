package validate

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quaesit/quaesit/ai"
	"github.com/quaesit/quaesit/ai/mock"
	"github.com/quaesit/quaesit/core"
)

type mapTextSource struct {
	texts map[core.ID]string
	errs  map[core.ID]error
}

func (m *mapTextSource) FetchText(_ context.Context, id core.ID) (string, error) {
	if err, ok := m.errs[id]; ok {
		return "", err
	}
	return m.texts[id], nil
}

func candidates(ids ...core.ID) []core.CandidateRecord {
	out := make([]core.CandidateRecord, 0, len(ids))
	for i, id := range ids {
		out = append(out, core.CandidateRecord{ProfileId: id, Score: float32(len(ids)-i) * 0.1})
	}
	return out
}

func newTestValidator(t *testing.T, checker ai.CandidateValidator, opts ...Option) *Validator {
	t.Helper()
	v, err := NewValidator(checker, opts...)
	require.NoError(t, err)
	t.Cleanup(v.Release)
	return v
}

func TestValidate_OutcomePerCandidateInOrder(t *testing.T) {
	checker := mock.NewMockCandidateValidator()
	v := newTestValidator(t, checker)

	source := &mapTextSource{texts: map[core.ID]string{
		1: "advised a television network on retransmission disputes",
		2: "tax partner for real estate funds",
		3: "litigation for a cable television broadcaster",
	}}

	in := candidates(3, 1, 2)
	outcomes, err := v.Validate(context.Background(), "television work", in, source)
	require.NoError(t, err)
	require.Len(t, outcomes, len(in))

	for i, o := range outcomes {
		assert.Equal(t, in[i].ProfileId, o.ProfileId)
		assert.Equal(t, in[i].Score, o.Score)
	}
	assert.True(t, outcomes[0].Accepted)
	assert.True(t, outcomes[1].Accepted)
	assert.False(t, outcomes[2].Accepted)
	assert.Equal(t, 3, checker.CallCount())
}

func TestValidate_ConcurrencyBound(t *testing.T) {
	checker := mock.NewMockCandidateValidator()
	checker.ValidateCandidateFunc = func(ctx context.Context, query, text string) (ai.Verdict, error) {
		time.Sleep(20 * time.Millisecond)
		return ai.Verdict{Accepted: true}, nil
	}

	const workers = 4
	v := newTestValidator(t, checker,
		WithMaxWorkers(workers),
		WithBatchSize(20),
		WithBatchDelay(0),
	)

	in := make([]core.CandidateRecord, 20)
	texts := map[core.ID]string{}
	for i := range in {
		id := core.ID(i + 1)
		in[i] = core.CandidateRecord{ProfileId: id}
		texts[id] = "text"
	}

	_, err := v.Validate(context.Background(), "q", in, &mapTextSource{texts: texts})
	require.NoError(t, err)

	assert.Equal(t, len(in), checker.CallCount())
	assert.LessOrEqual(t, checker.MaxInFlight(), workers)
}

func TestValidate_PartialFailureIsolation(t *testing.T) {
	boom := errors.New("model unavailable")
	checker := mock.NewMockCandidateValidator()
	checker.ValidateCandidateFunc = func(ctx context.Context, query, text string) (ai.Verdict, error) {
		if text == "poison" {
			return ai.Verdict{}, boom
		}
		return ai.Verdict{Accepted: true, Rationale: "fine"}, nil
	}

	v := newTestValidator(t, checker, WithBatchDelay(0))

	source := &mapTextSource{texts: map[core.ID]string{
		1: "good",
		2: "poison",
		3: "good",
	}}

	outcomes, err := v.Validate(context.Background(), "q", candidates(1, 2, 3), source)
	require.NoError(t, err)
	require.Len(t, outcomes, 3)

	assert.NoError(t, outcomes[0].Err)
	assert.True(t, outcomes[0].Accepted)
	assert.ErrorIs(t, outcomes[1].Err, boom)
	assert.False(t, outcomes[1].Accepted)
	assert.NoError(t, outcomes[2].Err)
	assert.True(t, outcomes[2].Accepted)
}

func TestValidate_TextFetchErrorRecorded(t *testing.T) {
	notFound := errors.New("key not found")
	checker := mock.NewMockCandidateValidator()
	v := newTestValidator(t, checker, WithBatchDelay(0))

	source := &mapTextSource{
		texts: map[core.ID]string{1: "something"},
		errs:  map[core.ID]error{2: notFound},
	}

	outcomes, err := v.Validate(context.Background(), "q", candidates(1, 2), source)
	require.NoError(t, err)
	assert.NoError(t, outcomes[0].Err)
	assert.ErrorIs(t, outcomes[1].Err, notFound)
}

func TestValidate_ContextDeadline(t *testing.T) {
	checker := mock.NewMockCandidateValidator()
	checker.ValidateCandidateFunc = func(ctx context.Context, query, text string) (ai.Verdict, error) {
		select {
		case <-ctx.Done():
			return ai.Verdict{}, ctx.Err()
		case <-time.After(50 * time.Millisecond):
			return ai.Verdict{Accepted: true}, nil
		}
	}

	v := newTestValidator(t, checker,
		WithMaxWorkers(1),
		WithBatchSize(1),
		WithBatchDelay(0),
	)

	in := make([]core.CandidateRecord, 10)
	texts := map[core.ID]string{}
	for i := range in {
		id := core.ID(i + 1)
		in[i] = core.CandidateRecord{ProfileId: id}
		texts[id] = "text"
	}

	ctx, cancel := context.WithTimeout(context.Background(), 80*time.Millisecond)
	defer cancel()

	outcomes, err := v.Validate(ctx, "q", in, &mapTextSource{texts: texts})
	require.NoError(t, err)
	require.Len(t, outcomes, len(in))

	// The tail of the list must carry the deadline error rather than being
	// silently dropped.
	assert.ErrorIs(t, outcomes[len(outcomes)-1].Err, context.DeadlineExceeded)

	errored := 0
	for _, o := range outcomes {
		if o.Err != nil {
			errored++
		}
	}
	assert.Greater(t, errored, 0)
	assert.Less(t, checker.CallCount(), len(in))
}

func TestValidate_EmptyCandidates(t *testing.T) {
	v := newTestValidator(t, mock.NewMockCandidateValidator())

	outcomes, err := v.Validate(context.Background(), "q", nil, &mapTextSource{})
	require.NoError(t, err)
	assert.Empty(t, outcomes)
}

func TestValidate_NilTextSource(t *testing.T) {
	v := newTestValidator(t, mock.NewMockCandidateValidator())

	_, err := v.Validate(context.Background(), "q", candidates(1), nil)
	assert.ErrorIs(t, err, ErrNilTextSource)
}

func TestNewValidator_Validation(t *testing.T) {
	_, err := NewValidator(nil)
	assert.ErrorIs(t, err, ErrNilChecker)

	checker := mock.NewMockCandidateValidator()
	cases := []struct {
		opt  Option
		want error
	}{
		{WithMaxWorkers(0), ErrInvalidWorkers},
		{WithBatchSize(0), ErrInvalidBatchSize},
		{WithBatchDelay(-time.Second), ErrInvalidBatchDelay},
		{WithLogger(nil), ErrNilLogger},
	}
	for i, tc := range cases {
		t.Run(fmt.Sprintf("case_%d", i), func(t *testing.T) {
			_, err := NewValidator(checker, tc.opt)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

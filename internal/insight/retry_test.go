package insight_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"biddashboard/internal/insight"

	"github.com/stretchr/testify/require"
)

// scripted отдает ошибки по очереди, затем успешный ответ
type scripted struct {
	errs  []error
	calls int
}

func (s *scripted) call(context.Context) (string, error) {
	i := s.calls
	s.calls++
	if i < len(s.errs) && s.errs[i] != nil {
		return "", s.errs[i]
	}
	return "ok", nil
}

func testPolicy(slept *[]time.Duration) insight.RetryPolicy {
	p := insight.DefaultRetryPolicy()
	p.Sleep = func(_ context.Context, d time.Duration) error {
		*slept = append(*slept, d)
		return nil
	}
	p.Jitter = func(max time.Duration) time.Duration { return max / 4 }
	return p
}

func TestClassify(t *testing.T) {
	cases := map[string]insight.Class{
		"Error 429 Too Many Requests":                      insight.Transient,
		"RESOURCE_EXHAUSTED: please retry":                 insight.Transient,
		"rate limit hit":                                   insight.Transient,
		"You exceeded your current quota, check your plan": insight.QuotaExhausted,
		"429: daily limit reached":                         insight.QuotaExhausted,
		"500 internal error":                               insight.Permanent,
		"connection reset by peer":                         insight.Permanent,
	}
	for text, want := range cases {
		require.Equal(t, want, insight.Classify(errors.New(text)), text)
	}
	require.Equal(t, insight.QuotaExhausted, insight.Classify(insight.ErrQuotaExhausted))
	require.Equal(t, insight.Permanent, insight.Classify(nil))
}

func TestRetrySucceedsAfterTransient(t *testing.T) {
	var slept []time.Duration
	s := &scripted{errs: []error{errors.New("429"), errors.New("resource_exhausted")}}

	text, err := testPolicy(&slept).Do(context.Background(), s.call)

	require.NoError(t, err)
	require.Equal(t, "ok", text)
	require.Equal(t, 3, s.calls)
	require.Equal(t, []time.Duration{3250 * time.Millisecond, 6250 * time.Millisecond}, slept)
}

func TestRetryGivesUpAfterMaxAttempts(t *testing.T) {
	var slept []time.Duration
	s := &scripted{errs: []error{errors.New("429"), errors.New("429"), errors.New("429"), errors.New("429")}}

	_, err := testPolicy(&slept).Do(context.Background(), s.call)

	require.ErrorIs(t, err, insight.ErrTransient)
	require.Equal(t, 3, s.calls)
	require.Len(t, slept, 2)
}

func TestRetryQuotaShortCircuits(t *testing.T) {
	var slept []time.Duration
	s := &scripted{errs: []error{errors.New("429 quota exceeded for the daily limit")}}

	_, err := testPolicy(&slept).Do(context.Background(), s.call)

	require.ErrorIs(t, err, insight.ErrQuotaExhausted)
	require.Equal(t, 1, s.calls)
	require.Empty(t, slept)
}

func TestRetryPermanentNotRetried(t *testing.T) {
	var slept []time.Duration
	boom := errors.New("invalid argument")
	s := &scripted{errs: []error{boom}}

	_, err := testPolicy(&slept).Do(context.Background(), s.call)

	require.ErrorIs(t, err, boom)
	require.Equal(t, 1, s.calls)
	require.Empty(t, slept)
}

func TestRetryStopsOnCancelledContext(t *testing.T) {
	p := insight.DefaultRetryPolicy()
	p.BaseDelay = time.Hour

	ctx, cancel := context.WithCancel(context.Background())
	s := &scripted{errs: []error{errors.New("429")}}
	go func() {
		time.Sleep(5 * time.Millisecond)
		cancel()
	}()

	_, err := p.Do(ctx, s.call)
	require.ErrorIs(t, err, context.Canceled)
	require.Equal(t, 1, s.calls)
}

func TestDefaultJitterBounded(t *testing.T) {
	var slept []time.Duration
	p := insight.DefaultRetryPolicy()
	p.Sleep = func(_ context.Context, d time.Duration) error {
		slept = append(slept, d)
		return nil
	}
	s := &scripted{errs: []error{errors.New("429"), errors.New("429")}}

	_, err := p.Do(context.Background(), s.call)
	require.NoError(t, err)
	require.Len(t, slept, 2)
	require.GreaterOrEqual(t, slept[0], 3*time.Second)
	require.Less(t, slept[0], 4*time.Second)
	require.GreaterOrEqual(t, slept[1], 6*time.Second)
	require.Less(t, slept[1], 7*time.Second)
}

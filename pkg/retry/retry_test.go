package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fastConfig() *Config {
	return &Config{
		MaxRetries:   2,
		InitialDelay: time.Millisecond,
		MaxDelay:     5 * time.Millisecond,
		Multiplier:   2.0,
	}
}

func TestDoSucceedsAfterRetry(t *testing.T) {
	calls := 0
	err := Do(context.Background(), fastConfig(), func() error {
		calls++
		if calls < 2 {
			return errors.New("connection refused")
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestDoExhaustsRetries(t *testing.T) {
	calls := 0
	wantErr := errors.New("connection reset")
	err := Do(context.Background(), fastConfig(), func() error {
		calls++
		return wantErr
	})
	assert.Equal(t, wantErr, err)
	assert.Equal(t, 3, calls) // initial attempt + 2 retries
}

func TestDoRespectsContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := Do(ctx, &Config{MaxRetries: 5, InitialDelay: time.Minute, MaxDelay: time.Minute, Multiplier: 2},
		func() error { return errors.New("timeout") })
	assert.ErrorIs(t, err, context.Canceled)
}

func TestDoWithResult(t *testing.T) {
	calls := 0
	got, err := DoWithResult(context.Background(), fastConfig(), func() (int, error) {
		calls++
		if calls < 2 {
			return 0, errors.New("broken pipe")
		}
		return 42, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 42, got)
}

func TestDoIfRetryableStopsOnPermanentError(t *testing.T) {
	calls := 0
	wantErr := errors.New("syntax error at or near SELCT")
	err := DoIfRetryable(context.Background(), fastConfig(), func() error {
		calls++
		return wantErr
	})
	assert.Equal(t, wantErr, err)
	assert.Equal(t, 1, calls)
}

type explicitErr struct{ retryable bool }

func (e *explicitErr) Error() string     { return "explicit" }
func (e *explicitErr) IsRetryable() bool { return e.retryable }

func TestIsRetryable(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"connection refused", errors.New("dial tcp: connection refused"), true},
		{"aborted transaction", errors.New("ERROR: current transaction is aborted"), true},
		{"pool closed", errors.New("closed pool"), true},
		{"rate limited", errors.New("HTTP 429 too many requests"), true},
		{"bad sql", errors.New(`relation "mv_missing" does not exist`), false},
		{"explicit retryable", &explicitErr{retryable: true}, true},
		{"explicit permanent", &explicitErr{retryable: false}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsRetryable(tt.err))
		})
	}
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/paper-digest/pkg/types"
)

// fastPolicy keeps test sleeps in the microsecond range.
var fastPolicy = Policy{
	MaxAttempts: 3,
	BaseDelay:   time.Millisecond,
	MaxDelay:    4 * time.Millisecond,
	Multiplier:  2.0,
}

func TestDo_ImmediateSuccess(t *testing.T) {
	calls := 0
	attempts, err := Do(context.Background(), fastPolicy, func(context.Context) error {
		calls++
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, attempts)
	assert.Equal(t, 1, calls)
}

func TestDo_RetriesThenSucceeds(t *testing.T) {
	calls := 0
	attempts, err := Do(context.Background(), fastPolicy, func(context.Context) error {
		calls++
		if calls < 3 {
			return errors.New("transient")
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 3, attempts)
	assert.Equal(t, 3, calls)
}

func TestDo_ExhaustsPolicy(t *testing.T) {
	transient := errors.New("transient")
	calls := 0
	attempts, err := Do(context.Background(), fastPolicy, func(context.Context) error {
		calls++
		return transient
	})
	assert.ErrorIs(t, err, transient)
	assert.Equal(t, fastPolicy.MaxAttempts, attempts)
	assert.Equal(t, fastPolicy.MaxAttempts, calls)
}

func TestDo_PermanentStopsImmediately(t *testing.T) {
	bad := errors.New("bad request")
	calls := 0
	attempts, err := Do(context.Background(), fastPolicy, func(context.Context) error {
		calls++
		return Permanent(bad)
	})
	assert.True(t, IsPermanent(err))
	assert.ErrorIs(t, err, bad)
	assert.Equal(t, 1, attempts)
	assert.Equal(t, 1, calls)
}

func TestDo_ContextCancelledDuringWait(t *testing.T) {
	p := Policy{MaxAttempts: 5, BaseDelay: 500 * time.Millisecond, MaxDelay: time.Second, Multiplier: 2.0}

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	calls := 0
	attempts, err := Do(ctx, p, func(context.Context) error {
		calls++
		return errors.New("transient")
	})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, 1, calls)
	assert.Equal(t, 1, attempts)
}

func TestDo_ZeroPolicyUsesDefaults(t *testing.T) {
	attempts, err := Do(context.Background(), Policy{}, func(context.Context) error {
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, attempts)
}

func TestPermanent_NilStaysNil(t *testing.T) {
	assert.NoError(t, Permanent(nil))
	assert.False(t, IsPermanent(nil))
}

func TestBackoff_GrowsAndCaps(t *testing.T) {
	p := Policy{MaxAttempts: 6, BaseDelay: time.Second, MaxDelay: 5 * time.Second, Multiplier: 2.0}

	assert.Equal(t, time.Duration(0), p.Backoff(1))
	assert.Equal(t, time.Second, p.Backoff(2))
	assert.Equal(t, 2*time.Second, p.Backoff(3))
	assert.Equal(t, 4*time.Second, p.Backoff(4))
	// Capped from here on.
	assert.Equal(t, 5*time.Second, p.Backoff(5))
	assert.Equal(t, 5*time.Second, p.Backoff(6))
}

func TestFromConfig_FillsZeroFields(t *testing.T) {
	p := FromConfig(types.RetryConfig{})

	assert.Equal(t, DefaultPolicy.MaxAttempts, p.MaxAttempts)
	assert.Equal(t, DefaultPolicy.BaseDelay, p.BaseDelay)
	assert.Equal(t, DefaultPolicy.MaxDelay, p.MaxDelay)
	assert.Equal(t, DefaultPolicy.Multiplier, p.Multiplier)
}

func TestFromConfig_KeepsExplicitValues(t *testing.T) {
	p := FromConfig(types.RetryConfig{
		MaxAttempts: 5,
		BaseDelay:   time.Second,
		MaxDelay:    8 * time.Second,
		Multiplier:  3.0,
	})

	assert.Equal(t, 5, p.MaxAttempts)
	assert.Equal(t, time.Second, p.BaseDelay)
	assert.Equal(t, 8*time.Second, p.MaxDelay)
	assert.Equal(t, 3.0, p.Multiplier)
}

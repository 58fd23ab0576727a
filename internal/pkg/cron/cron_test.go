package cron

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterAndList(t *testing.T) {
	s := New()
	s.Register(Job{
		Name:        "noop",
		Description: "does nothing",
		Interval:    time.Hour,
		Fn:          func(ctx context.Context) error { return nil },
	})

	items := s.List()
	require.Len(t, items, 1)
	assert.Equal(t, "noop", items[0].Name)
	assert.Equal(t, StatusIdle, items[0].Status)
	assert.NotNil(t, items[0].NextDate)
}

func TestManualRun(t *testing.T) {
	var calls int32
	s := New()
	s.Register(Job{
		Name:     "counter",
		Interval: time.Hour,
		Fn: func(ctx context.Context) error {
			atomic.AddInt32(&calls, 1)
			return nil
		},
	})

	require.NoError(t, s.Run(context.Background(), "counter"))
	assert.Eventually(t, func() bool {
		return atomic.LoadInt32(&calls) == 1
	}, time.Second, 10*time.Millisecond)

	assert.Eventually(t, func() bool {
		return s.List()[0].Status == StatusFulfill
	}, time.Second, 10*time.Millisecond)
}

func TestRunUnknownJob(t *testing.T) {
	s := New()
	assert.Error(t, s.Run(context.Background(), "missing"))
}

func TestFailedJobReportsReject(t *testing.T) {
	s := New()
	s.Register(Job{
		Name:     "flaky",
		Interval: time.Hour,
		Fn:       func(ctx context.Context) error { return errors.New("boom") },
	})

	require.NoError(t, s.Run(context.Background(), "flaky"))
	assert.Eventually(t, func() bool {
		items := s.List()
		return items[0].Status == StatusReject && items[0].Message == "boom"
	}, time.Second, 10*time.Millisecond)
}

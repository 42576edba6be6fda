package app

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type countingDispatcher struct {
	calls int32
	err   error
}

func (d *countingDispatcher) DispatchDue(context.Context) (int, error) {
	atomic.AddInt32(&d.calls, 1)
	return 1, d.err
}

func TestScheduler_RunsDispatcherOnSchedule(t *testing.T) {
	d := &countingDispatcher{}
	s := NewScheduler(d, "@every 1s", zap.NewNop())

	require.NoError(t, s.Start(context.Background()))
	defer s.Stop()

	assert.Eventually(t, func() bool {
		return atomic.LoadInt32(&d.calls) >= 2
	}, 5*time.Second, 50*time.Millisecond)
}

func TestScheduler_InvalidSpec(t *testing.T) {
	s := NewScheduler(&countingDispatcher{}, "every now and then", zap.NewNop())

	assert.Error(t, s.Start(context.Background()))
}

func TestScheduler_RunOnceSurvivesErrors(t *testing.T) {
	d := &countingDispatcher{err: errors.New("db down")}
	s := NewScheduler(d, "", zap.NewNop())

	s.RunOnce(context.Background())
	s.RunOnce(context.Background())

	assert.Equal(t, int32(2), atomic.LoadInt32(&d.calls))
}

func TestScheduler_RunOnceSkipsCancelledContext(t *testing.T) {
	d := &countingDispatcher{}
	s := NewScheduler(d, "", zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	s.RunOnce(ctx)

	assert.Zero(t, atomic.LoadInt32(&d.calls))
}

type blockingDispatcher struct {
	started  chan struct{}
	release  chan struct{}
	finished atomic.Bool
}

func (d *blockingDispatcher) DispatchDue(context.Context) (int, error) {
	close(d.started)
	<-d.release
	d.finished.Store(true)
	return 0, nil
}

func TestScheduler_StopWaitsForInitialPass(t *testing.T) {
	d := &blockingDispatcher{started: make(chan struct{}), release: make(chan struct{})}
	s := NewScheduler(d, "@every 1h", zap.NewNop())

	require.NoError(t, s.Start(context.Background()))
	<-d.started

	stopped := make(chan struct{})
	go func() {
		s.Stop()
		close(stopped)
	}()

	select {
	case <-stopped:
		t.Fatal("Stop returned while the initial dispatch was still running")
	case <-time.After(100 * time.Millisecond):
	}

	close(d.release)
	select {
	case <-stopped:
	case <-time.After(5 * time.Second):
		t.Fatal("Stop did not return after the initial dispatch finished")
	}
	assert.True(t, d.finished.Load())
}

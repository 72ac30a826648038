package countdown_test

import (
	"testing"
	"time"

	"lazytimer/internal/core/countdown"
	"lazytimer/internal/core/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var epoch = time.UnixMilli(1_700_000_000_000)

func TestSetDurationThenReset(t *testing.T) {
	for _, d := range []time.Duration{time.Millisecond, time.Second, 25 * time.Minute, 3 * time.Hour} {
		timer := countdown.NewTimer(model.DefaultTarget)
		require.True(t, timer.SetDuration(d))
		require.True(t, timer.Reset())
		assert.Equal(t, d, timer.Remaining)
		assert.Equal(t, d, timer.Target)
		assert.Equal(t, countdown.StateIdle, timer.State)
	}
}

func TestSetDurationRejections(t *testing.T) {
	timer := countdown.NewTimer(time.Minute)
	assert.False(t, timer.SetDuration(0))
	assert.False(t, timer.SetDuration(-time.Second))

	require.True(t, timer.Start(epoch))
	assert.False(t, timer.SetDuration(5*time.Minute))
	assert.Equal(t, time.Minute, timer.Target)
}

func TestStartRequiresOneSecond(t *testing.T) {
	timer := countdown.NewTimer(999 * time.Millisecond)
	assert.False(t, timer.Start(epoch))
	assert.Equal(t, countdown.StateIdle, timer.State)

	timer = countdown.NewTimer(time.Second)
	assert.True(t, timer.Start(epoch))
	assert.Equal(t, epoch.Add(time.Second), timer.EndTime)
	assert.False(t, timer.Start(epoch), "already running")
}

func TestTickCountsDownAndFinishes(t *testing.T) {
	timer := countdown.NewTimer(3 * time.Second)
	require.True(t, timer.Start(epoch))

	result := timer.Tick(epoch.Add(time.Second))
	assert.True(t, result.Applied)
	assert.Equal(t, 2*time.Second, timer.Remaining)

	result = timer.Tick(epoch.Add(3 * time.Second))
	assert.True(t, result.Finished)
	assert.Equal(t, time.Duration(0), timer.Remaining)
	assert.Equal(t, countdown.StateFinished, timer.State)

	assert.False(t, timer.Tick(epoch.Add(4*time.Second)).Applied)
	assert.False(t, timer.Start(epoch.Add(4*time.Second)))
}

func TestPauseFreezesAndIsIdempotent(t *testing.T) {
	timer := countdown.NewTimer(time.Minute)
	require.True(t, timer.Start(epoch))
	timer.Tick(epoch.Add(10 * time.Second))

	require.True(t, timer.Pause())
	first := timer
	assert.False(t, timer.Pause())
	assert.Equal(t, first, timer)
	assert.Equal(t, countdown.StatePaused, timer.State)
	assert.Equal(t, 50*time.Second, timer.Remaining)
}

func TestPauseBeforeFirstTickIsIdle(t *testing.T) {
	timer := countdown.NewTimer(time.Minute)
	require.True(t, timer.Start(epoch))
	require.True(t, timer.Pause())
	assert.Equal(t, countdown.StateIdle, timer.State)
	assert.Equal(t, time.Minute, timer.Remaining)
}

func TestResetRejectedWhileRunning(t *testing.T) {
	timer := countdown.NewTimer(time.Minute)
	require.True(t, timer.Start(epoch))
	timer.Tick(epoch.Add(5 * time.Second))
	assert.False(t, timer.Reset())
	assert.Equal(t, 55*time.Second, timer.Remaining)
}

func TestThresholdCrossedOncePerSession(t *testing.T) {
	timer := countdown.NewTimer(62 * time.Second)
	require.True(t, timer.Start(epoch))

	crossings := 0
	for second := 1; second <= 62; second++ {
		if timer.Tick(epoch.Add(time.Duration(second) * time.Second)).Crossed {
			crossings++
			assert.Equal(t, 59*time.Second, timer.Remaining)
		}
	}
	assert.Equal(t, 1, crossings)
	assert.Equal(t, countdown.StateFinished, timer.State)
}

func TestThresholdNotCrossedWhenStartedBelowIt(t *testing.T) {
	timer := countdown.NewTimer(30 * time.Second)
	require.True(t, timer.Start(epoch))
	for second := 1; second <= 30; second++ {
		assert.False(t, timer.Tick(epoch.Add(time.Duration(second)*time.Second)).Crossed)
	}
}

func TestThresholdAgainAfterReset(t *testing.T) {
	timer := countdown.NewTimer(61 * time.Second)
	require.True(t, timer.Start(epoch))
	timer.Tick(epoch.Add(time.Second))
	assert.True(t, timer.Tick(epoch.Add(2*time.Second)).Crossed)
	require.True(t, timer.Pause())
	require.True(t, timer.Reset())

	restart := epoch.Add(time.Hour)
	require.True(t, timer.Start(restart))
	timer.Tick(restart.Add(time.Second))
	assert.True(t, timer.Tick(restart.Add(2*time.Second)).Crossed)
}

func TestSnapshotRoundTrip(t *testing.T) {
	timer := countdown.NewTimer(2 * time.Minute)
	require.True(t, timer.Start(epoch))
	timer.Tick(epoch.Add(30 * time.Second))

	snapshot := timer.Snapshot()
	assert.Equal(t, model.Snapshot{
		TargetMillis:    120000,
		RemainingMillis: 90000,
		Running:         true,
		EndTime:         epoch.Add(2 * time.Minute).UnixMilli(),
	}, snapshot)
}

func TestRestoreRunningBeforeDeadline(t *testing.T) {
	deadline := epoch.Add(time.Minute)
	snapshot := model.Snapshot{TargetMillis: 120000, RemainingMillis: 90000, Running: true, EndTime: deadline.UnixMilli()}

	timer := countdown.Restore(snapshot, deadline.Add(-5*time.Second))
	assert.Equal(t, countdown.StateRunning, timer.State)
	assert.Equal(t, 5*time.Second, timer.Remaining)
	assert.Equal(t, deadline, timer.EndTime)
}

func TestRestoreRunningAfterDeadline(t *testing.T) {
	deadline := epoch.Add(time.Minute)
	snapshot := model.Snapshot{TargetMillis: 120000, RemainingMillis: 90000, Running: true, EndTime: deadline.UnixMilli()}

	timer := countdown.Restore(snapshot, deadline.Add(5*time.Second))
	assert.Equal(t, countdown.StateFinished, timer.State)
	assert.Equal(t, time.Duration(0), timer.Remaining)
}

func TestRestoreClampsToTarget(t *testing.T) {
	snapshot := model.Snapshot{TargetMillis: 60000, RemainingMillis: 60000, Running: true, EndTime: epoch.Add(time.Hour).UnixMilli()}

	timer := countdown.Restore(snapshot, epoch)
	assert.Equal(t, time.Minute, timer.Remaining)
}

func TestRestoreStopped(t *testing.T) {
	cases := []struct {
		name     string
		snapshot model.Snapshot
		state    countdown.State
	}{
		{"defaults", model.DefaultSnapshot(), countdown.StateIdle},
		{"paused", model.Snapshot{TargetMillis: 60000, RemainingMillis: 30000}, countdown.StatePaused},
		{"finished", model.Snapshot{TargetMillis: 60000, RemainingMillis: 0}, countdown.StateFinished},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			timer := countdown.Restore(tc.snapshot, epoch)
			assert.Equal(t, tc.state, timer.State)
			assert.Equal(t, tc.snapshot.Remaining(), timer.Remaining)
		})
	}
}

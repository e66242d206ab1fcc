package platform

import (
	"errors"
	"testing"
	"time"

	"github.com/gopxl/beep"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rudd/internal/clock"
	"rudd/internal/core/model"
	"rudd/internal/core/vibe"
)

func newManualService(maxPending int) (*TimerService, *clock.Manual, *[]vibe.TimerHandle) {
	clk := clock.NewManual(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	service := NewTimerService(clk, model.TimerConfig{MaxPending: maxPending})
	fired := &[]vibe.TimerHandle{}
	service.SetFiredHandler(func(handle vibe.TimerHandle) {
		*fired = append(*fired, handle)
	})
	return service, clk, fired
}

func TestScheduleOneShotFiresOnce(t *testing.T) {
	service, clk, fired := newManualService(1)

	handle, err := service.ScheduleOneShot(2 * time.Minute)
	require.NoError(t, err)
	assert.Equal(t, 1, service.Pending())

	clk.Advance(time.Minute)
	assert.Empty(t, *fired)
	clk.Advance(time.Minute)
	assert.Equal(t, []vibe.TimerHandle{handle}, *fired)
	assert.Zero(t, service.Pending())

	clk.Advance(time.Hour)
	assert.Len(t, *fired, 1)
}

func TestHandlesAreNotReused(t *testing.T) {
	service, _, _ := newManualService(1)
	first, err := service.ScheduleOneShot(time.Minute)
	require.NoError(t, err)
	service.CancelTimer(first)
	second, err := service.ScheduleOneShot(time.Minute)
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
}

func TestCancelIsIdempotent(t *testing.T) {
	service, clk, fired := newManualService(1)

	handle, err := service.ScheduleOneShot(time.Minute)
	require.NoError(t, err)
	assert.True(t, service.CancelTimer(handle))
	assert.False(t, service.CancelTimer(handle))

	clk.Advance(time.Hour)
	assert.Empty(t, *fired)

	handle, err = service.ScheduleOneShot(time.Minute)
	require.NoError(t, err)
	clk.Advance(time.Minute)
	assert.False(t, service.CancelTimer(handle))
	assert.Equal(t, []vibe.TimerHandle{handle}, *fired)
}

func TestCapacityExceeded(t *testing.T) {
	service, _, _ := newManualService(1)
	_, err := service.ScheduleOneShot(time.Minute)
	require.NoError(t, err)

	_, err = service.ScheduleOneShot(time.Minute)
	assert.ErrorIs(t, err, vibe.ErrSchedulingFailure)
}

func TestNonPositiveInterval(t *testing.T) {
	service, _, _ := newManualService(1)
	_, err := service.ScheduleOneShot(0)
	assert.ErrorIs(t, err, vibe.ErrSchedulingFailure)
}

func TestStopAll(t *testing.T) {
	service, clk, fired := newManualService(3)
	for i := 0; i < 3; i++ {
		_, err := service.ScheduleOneShot(time.Minute)
		require.NoError(t, err)
	}
	service.StopAll()
	assert.Zero(t, service.Pending())
	assert.Zero(t, clk.Pending())
	clk.Advance(time.Hour)
	assert.Empty(t, *fired)
}

func TestSystemClockFires(t *testing.T) {
	service := NewTimerService(nil, model.TimerConfig{})
	done := make(chan vibe.TimerHandle, 1)
	service.SetFiredHandler(func(handle vibe.TimerHandle) { done <- handle })

	handle, err := service.ScheduleOneShot(5 * time.Millisecond)
	require.NoError(t, err)
	select {
	case got := <-done:
		assert.Equal(t, handle, got)
	case <-time.After(2 * time.Second):
		t.Fatal("timer never fired")
	}
}

func TestBuzzerPlaysOnePulse(t *testing.T) {
	sampleRate := beep.SampleRate(8000)
	var played []beep.Streamer
	buzzer := newBuzzer(model.BuzzerConfig{PulseDuration: 250 * time.Millisecond, ToneHz: 200}, sampleRate, func(streamers ...beep.Streamer) {
		played = append(played, streamers...)
	})

	require.NoError(t, buzzer.TriggerHapticPulse())
	require.Len(t, played, 1)

	samples := make([][2]float64, 512)
	total := 0
	for {
		n, ok := played[0].Stream(samples)
		total += n
		if !ok {
			break
		}
	}
	assert.Equal(t, sampleRate.N(250*time.Millisecond), total)
}

func TestBuzzerRejectsUnplayableTone(t *testing.T) {
	buzzer := newBuzzer(model.BuzzerConfig{ToneHz: 10000}, beep.SampleRate(8000), func(...beep.Streamer) {})
	assert.Error(t, buzzer.TriggerHapticPulse())
}

func TestInstanceLock(t *testing.T) {
	name := "rudd-test-" + t.Name()
	lock, err := AcquireInstanceLock(name)
	if err != nil {
		t.Skipf("port unavailable: %v", err)
	}
	defer lock.Release()
	assert.Equal(t, LockAddress(name), lock.Address())

	_, err = AcquireInstanceLock(name)
	assert.True(t, errors.Is(err, ErrAlreadyRunning))

	require.NoError(t, lock.Release())
	require.NoError(t, lock.Release())

	again, err := AcquireInstanceLock(name)
	require.NoError(t, err)
	require.NoError(t, again.Release())

	var nilLock *InstanceLock
	assert.NoError(t, nilLock.Release())
	assert.Empty(t, nilLock.Address())
}

package platform

import (
	"fmt"
	"sync"
	"time"

	"rudd/internal/clock"
	"rudd/internal/core/model"
	"rudd/internal/core/vibe"
)

// TimerService registers one-shot timers on a clock and reports fires by handle.
type TimerService struct {
	mu      sync.Mutex
	clock   clock.Clock
	config  model.TimerConfig
	next    vibe.TimerHandle
	pending map[vibe.TimerHandle]clock.Timer
	onFired func(vibe.TimerHandle)
}

var _ vibe.Timers = (*TimerService)(nil)

// NewTimerService creates a TimerService on clk.
func NewTimerService(clk clock.Clock, config model.TimerConfig) *TimerService {
	if clk == nil {
		clk = clock.System
	}
	if config.MaxPending <= 0 {
		config.MaxPending = 1
	}
	return &TimerService{
		clock:   clk,
		config:  config,
		pending: make(map[vibe.TimerHandle]clock.Timer),
	}
}

// SetFiredHandler injects the receiver of fire notifications.
func (service *TimerService) SetFiredHandler(handler func(vibe.TimerHandle)) {
	service.mu.Lock()
	defer service.mu.Unlock()
	service.onFired = handler
}

// ScheduleOneShot arms a timer for d.
func (service *TimerService) ScheduleOneShot(d time.Duration) (vibe.TimerHandle, error) {
	if d <= 0 {
		return 0, fmt.Errorf("%w: non-positive interval %s", vibe.ErrSchedulingFailure, d)
	}

	service.mu.Lock()
	defer service.mu.Unlock()

	if len(service.pending) >= service.config.MaxPending {
		return 0, fmt.Errorf("%w: %d timers already pending", vibe.ErrSchedulingFailure, len(service.pending))
	}

	service.next++
	handle := service.next
	service.pending[handle] = service.clock.AfterFunc(d, func() {
		service.fire(handle)
	})
	return handle, nil
}

// CancelTimer stops handle. Already fired or cancelled handles are a no-op.
func (service *TimerService) CancelTimer(handle vibe.TimerHandle) bool {
	service.mu.Lock()
	defer service.mu.Unlock()

	timer, ok := service.pending[handle]
	if !ok {
		return false
	}
	delete(service.pending, handle)
	timer.Stop()
	return true
}

// Pending returns the number of outstanding timers.
func (service *TimerService) Pending() int {
	service.mu.Lock()
	defer service.mu.Unlock()
	return len(service.pending)
}

// StopAll cancels every outstanding timer.
func (service *TimerService) StopAll() {
	service.mu.Lock()
	defer service.mu.Unlock()
	for handle, timer := range service.pending {
		timer.Stop()
		delete(service.pending, handle)
	}
}

func (service *TimerService) fire(handle vibe.TimerHandle) {
	service.mu.Lock()
	if _, ok := service.pending[handle]; !ok {
		service.mu.Unlock()
		return
	}
	delete(service.pending, handle)
	handler := service.onFired
	service.mu.Unlock()

	if handler != nil {
		handler(handle)
	}
}

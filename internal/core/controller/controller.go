// Package controller owns the interval selector and the vibration scheduler
// and feeds them inbound events one at a time. Every input, including timer
// fires, is processed on the Run goroutine in arrival order, so the core
// state needs no further locking.
package controller

import (
	"context"
	"time"

	"rudd/internal/core/vibe"
	"rudd/internal/logging"
)

// Selector is the interval selection the controller drives.
type Selector interface {
	Increment()
	Decrement()
	CurrentDuration() int
	CurrentLabel() (string, error)
}

// Scheduler is the vibration state machine the controller drives.
type Scheduler interface {
	Toggle() (vibe.State, error)
	HandleTimerFired(handle vibe.TimerHandle) (bool, error)
	Disarm()
}

// Config contains runtime options for the input queue.
type Config struct {
	QueueSize      int
	EnqueueTimeout time.Duration
	// UnitLabel is the secondary line under the interval; Minutes when empty.
	UnitLabel string
}

// Controller dispatches inputs to the core and returns display directives.
type Controller struct {
	selector       Selector
	scheduler      Scheduler
	logger         *logging.Logger
	inputs         chan Input
	fires          chan vibe.TimerHandle
	done           chan struct{}
	enqueueTimeout time.Duration
	unitLabel      string
}

// New creates a Controller.
func New(selector Selector, scheduler Scheduler, logger *logging.Logger, config Config) *Controller {
	if config.QueueSize <= 0 {
		config.QueueSize = 64
	}
	if config.EnqueueTimeout <= 0 {
		config.EnqueueTimeout = 150 * time.Millisecond
	}
	if config.UnitLabel == "" {
		config.UnitLabel = SecondaryUnits
	}
	if logger == nil {
		logger = logging.Discard()
	}
	return &Controller{
		selector:       selector,
		scheduler:      scheduler,
		logger:         logger,
		inputs:         make(chan Input, config.QueueSize),
		fires:          make(chan vibe.TimerHandle),
		done:           make(chan struct{}),
		enqueueTimeout: config.EnqueueTimeout,
		unitLabel:      config.UnitLabel,
	}
}

// Initial returns the directives for the first paint.
func (c *Controller) Initial() []Directive {
	return c.intervalDirectives()
}

// Handle processes one input and returns what changed on screen.
func (c *Controller) Handle(input Input) []Directive {
	switch input.Kind {
	case InputIncrement:
		c.selector.Increment()
		c.logger.Debug("interval set to %d", c.selector.CurrentDuration())
		return c.intervalDirectives()
	case InputDecrement:
		c.selector.Decrement()
		c.logger.Debug("interval set to %d", c.selector.CurrentDuration())
		return c.intervalDirectives()
	case InputToggle:
		return c.toggle()
	case InputTimerFired:
		return c.timerFired(input.Handle)
	}
	c.logger.Error("unknown input %d", int(input.Kind))
	return nil
}

// Post enqueues input for Run. If the queue stays full past the enqueue
// timeout the input is dropped and false is returned.
func (c *Controller) Post(input Input) bool {
	select {
	case c.inputs <- input:
		return true
	default:
	}

	timer := time.NewTimer(c.enqueueTimeout)
	defer timer.Stop()
	select {
	case c.inputs <- input:
		return true
	case <-timer.C:
		c.logger.Error("input queue full: dropping %s", input.Kind)
		return false
	}
}

// TimerFired is the fire handler for the platform timer service. The timer
// has already left the service, so the fire is never dropped: it blocks
// until Run takes it or Run has returned.
func (c *Controller) TimerFired(handle vibe.TimerHandle) {
	select {
	case c.fires <- handle:
	case <-c.done:
		c.logger.Debug("controller stopped: fire for timer %d ignored", handle)
	}
}

// Run paints the initial screen and processes queued inputs and timer fires
// until ctx is done. On exit the vibration cycle is disarmed. Run must be
// called at most once.
func (c *Controller) Run(ctx context.Context, renderer Renderer) {
	defer close(c.done)
	renderer.Render(c.Initial())
	for {
		var input Input
		select {
		case <-ctx.Done():
			c.scheduler.Disarm()
			return
		case handle := <-c.fires:
			input = Input{Kind: InputTimerFired, Handle: handle}
		case input = <-c.inputs:
		}
		if directives := c.Handle(input); len(directives) > 0 {
			renderer.Render(directives)
		}
	}
}

func (c *Controller) toggle() []Directive {
	state, err := c.scheduler.Toggle()
	if err != nil {
		c.logger.Error("arm vibration: %v", err)
		return nil
	}

	status := StatusVibeOff
	if state == vibe.StateArmed {
		status = StatusVibeOn
		c.logger.Verbose("vibration armed every %d (%s)", c.selector.CurrentDuration(), c.unitLabel)
	} else {
		c.logger.Verbose("vibration disarmed")
	}
	return []Directive{
		{Kind: DisplayStatusLine, Text: status},
		{Kind: DisplaySecondaryLabel, Text: ""},
	}
}

func (c *Controller) timerFired(handle vibe.TimerHandle) []Directive {
	accepted, err := c.scheduler.HandleTimerFired(handle)
	if !accepted {
		c.logger.Debug("dropped fire for inactive timer %d", handle)
		return nil
	}
	if err != nil {
		c.logger.Error("re-arm vibration: %v", err)
		return []Directive{
			{Kind: DisplayStatusLine, Text: StatusVibeOff},
			{Kind: DisplaySecondaryLabel, Text: ""},
		}
	}
	c.logger.Verbose("pulse for timer %d, next in %d (%s)", handle, c.selector.CurrentDuration(), c.unitLabel)
	return nil
}

func (c *Controller) intervalDirectives() []Directive {
	label, err := c.selector.CurrentLabel()
	if err != nil {
		c.logger.Error("interval label: %v", err)
		label = ""
	}
	return []Directive{
		{Kind: DisplayIntervalLabel, Text: label},
		{Kind: DisplayStatusLine, Text: ""},
		{Kind: DisplaySecondaryLabel, Text: c.unitLabel},
	}
}

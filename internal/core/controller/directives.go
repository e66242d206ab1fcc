package controller

import "rudd/internal/core/vibe"

// InputKind enumerates the events delivered to the controller.
type InputKind int

const (
	InputIncrement InputKind = iota
	InputDecrement
	InputToggle
	InputTimerFired
)

func (kind InputKind) String() string {
	switch kind {
	case InputIncrement:
		return "increment"
	case InputDecrement:
		return "decrement"
	case InputToggle:
		return "toggle"
	case InputTimerFired:
		return "timer_fired"
	}
	return "unknown"
}

// Input is one inbound event. Handle is set only for InputTimerFired.
type Input struct {
	Kind   InputKind
	Handle vibe.TimerHandle
}

// DirectiveKind names the display slot a Directive paints.
type DirectiveKind int

const (
	DisplayIntervalLabel DirectiveKind = iota
	DisplayStatusLine
	DisplaySecondaryLabel
)

// Display texts.
const (
	StatusVibeOn   = "Vibe On"
	StatusVibeOff  = "Vibe Off"
	SecondaryUnits = "Minutes"
)

// Directive tells the presentation layer what to paint.
type Directive struct {
	Kind DirectiveKind
	Text string
}

// Renderer paints directives.
type Renderer interface {
	Render(directives []Directive)
}

// RendererFunc adapts a function to Renderer.
type RendererFunc func([]Directive)

// Render calls fn(directives).
func (fn RendererFunc) Render(directives []Directive) {
	fn(directives)
}

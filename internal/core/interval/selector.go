// Package interval owns the table of selectable reminder intervals and the
// currently selected entry.
package interval

import (
	"errors"
	"fmt"
	"strconv"

	"rudd/internal/core/model"
)

var (
	// ErrInvalidTable indicates a duration table that cannot back a selector.
	ErrInvalidTable = errors.New("invalid duration table")
	// ErrLabelOutOfRange indicates a table entry that does not fit the two-digit label.
	ErrLabelOutOfRange = errors.New("interval out of label range")
)

const maxLabelValue = 99

// Selector cycles through an ordered duration table.
// It is not safe for concurrent use.
type Selector struct {
	durations []int
	index     int
}

// New creates a selector over durations starting at index.
func New(durations []int, index int) (*Selector, error) {
	if len(durations) < 2 {
		return nil, fmt.Errorf("%w: need at least 2 entries, got %d", ErrInvalidTable, len(durations))
	}
	for i, minutes := range durations {
		if minutes <= 0 {
			return nil, fmt.Errorf("%w: entry %d is %d", ErrInvalidTable, i, minutes)
		}
		if i > 0 && minutes <= durations[i-1] {
			return nil, fmt.Errorf("%w: entry %d (%d) not above %d", ErrInvalidTable, i, minutes, durations[i-1])
		}
	}
	if index < 0 || index >= len(durations) {
		return nil, fmt.Errorf("%w: index %d outside [0,%d]", ErrInvalidTable, index, len(durations)-1)
	}

	return &Selector{
		durations: append([]int(nil), durations...),
		index:     index,
	}, nil
}

// NewDefault creates a selector over the fixed table at the default index.
func NewDefault() *Selector {
	selector, err := New(model.DefaultDurations(), model.DefaultIndex)
	if err != nil {
		panic(err)
	}
	return selector
}

// Increment selects the next entry, wrapping to the first.
func (selector *Selector) Increment() {
	if selector.index < len(selector.durations)-1 {
		selector.index++
		return
	}
	selector.index = 0
}

// Decrement selects the previous entry, wrapping to the last.
func (selector *Selector) Decrement() {
	if selector.index > 0 {
		selector.index--
		return
	}
	selector.index = len(selector.durations) - 1
}

// Index returns the selected position.
func (selector *Selector) Index() int {
	return selector.index
}

// Len returns the table size.
func (selector *Selector) Len() int {
	return len(selector.durations)
}

// CurrentDuration returns the selected interval in minutes.
func (selector *Selector) CurrentDuration() int {
	return selector.durations[selector.index]
}

// CurrentLabel renders the selected interval for display.
func (selector *Selector) CurrentLabel() (string, error) {
	return FormatLabel(selector.CurrentDuration())
}

// FormatLabel renders minutes as one or two decimal digits.
func FormatLabel(minutes int) (string, error) {
	if minutes < 0 || minutes > maxLabelValue {
		return "", fmt.Errorf("%w: %d", ErrLabelOutOfRange, minutes)
	}
	return strconv.Itoa(minutes), nil
}

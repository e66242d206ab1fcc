package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestUnitLabel(t *testing.T) {
	tests := []struct {
		unit time.Duration
		want string
	}{
		{0, "Minutes"},
		{time.Minute, "Minutes"},
		{time.Second, "Seconds"},
		{time.Hour, "Hours"},
		{2 * time.Second, "x 2s"},
	}
	for _, tt := range tests {
		settings := DefaultSettings()
		settings.Unit = tt.unit
		assert.Equal(t, tt.want, settings.UnitLabel(), "unit %s", tt.unit)
	}
}

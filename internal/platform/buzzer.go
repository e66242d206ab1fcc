package platform

import (
	"fmt"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"

	"rudd/internal/core/model"
	"rudd/internal/core/vibe"
)

const buzzerSampleRate = beep.SampleRate(44100)

// Buzzer emulates the wrist motor with a short low tone on the speaker.
type Buzzer struct {
	mu         sync.Mutex
	config     model.BuzzerConfig
	sampleRate beep.SampleRate
	play       func(...beep.Streamer)
}

var _ vibe.Haptics = (*Buzzer)(nil)

// NewBuzzer opens the default audio device.
func NewBuzzer(config model.BuzzerConfig) (*Buzzer, error) {
	if err := speaker.Init(buzzerSampleRate, buzzerSampleRate.N(time.Second/10)); err != nil {
		return nil, fmt.Errorf("init speaker: %w", err)
	}
	return newBuzzer(config, buzzerSampleRate, speaker.Play), nil
}

func newBuzzer(config model.BuzzerConfig, sampleRate beep.SampleRate, play func(...beep.Streamer)) *Buzzer {
	if config.PulseDuration <= 0 {
		config.PulseDuration = 500 * time.Millisecond
	}
	if config.ToneHz <= 0 {
		config.ToneHz = 180
	}
	return &Buzzer{
		config:     config,
		sampleRate: sampleRate,
		play:       play,
	}
}

// TriggerHapticPulse plays one long pulse.
func (buzzer *Buzzer) TriggerHapticPulse() error {
	buzzer.mu.Lock()
	defer buzzer.mu.Unlock()

	tone, err := generators.SineTone(buzzer.sampleRate, buzzer.config.ToneHz)
	if err != nil {
		return fmt.Errorf("build pulse tone: %w", err)
	}
	buzzer.play(beep.Take(buzzer.sampleRate.N(buzzer.config.PulseDuration), tone))
	return nil
}

package tray

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusFollowsState(t *testing.T) {
	manager := New(nil, Callbacks{})
	assert.Equal(t, "Status: vibe off", manager.statusItem.Label)
	assert.Equal(t, "Vibe On", manager.toggleItem.Label)

	manager.SetInterval("15")
	manager.SetArmed(true)
	assert.Equal(t, "Status: vibe on, every 15 min", manager.statusItem.Label)
	assert.Equal(t, "Vibe Off", manager.toggleItem.Label)

	manager.SetArmed(false)
	assert.Equal(t, "Vibe On", manager.toggleItem.Label)
}

func TestStatusUsesUnits(t *testing.T) {
	manager := New(nil, Callbacks{})
	manager.SetInterval("30")
	manager.SetUnits("")
	assert.Equal(t, "Status: vibe off, every 30 min", manager.statusItem.Label)

	manager.SetUnits("seconds")
	assert.Equal(t, "Status: vibe off, every 30 seconds", manager.statusItem.Label)
}

func TestMenuRunsCallbacks(t *testing.T) {
	var calls []string
	manager := New(nil, Callbacks{
		OnShow:      func() { calls = append(calls, "show") },
		OnToggle:    func() { calls = append(calls, "toggle") },
		OnIncrement: func() { calls = append(calls, "inc") },
		OnDecrement: func() { calls = append(calls, "dec") },
		OnQuit:      func() { calls = append(calls, "quit") },
	})

	menu := manager.Menu()
	require.Len(t, menu.Items, 7)
	for _, item := range menu.Items {
		if item.Action != nil {
			item.Action()
		}
	}
	assert.Equal(t, []string{"show", "toggle", "inc", "dec", "quit"}, calls)
}

func TestMissingCallbacksAreIgnored(t *testing.T) {
	manager := New(nil, Callbacks{})
	for _, item := range manager.Menu().Items {
		if item.Action != nil {
			item.Action()
		}
	}
}

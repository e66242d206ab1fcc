package face

import (
	"testing"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"

	"rudd/internal/core/controller"
)

func newTestFace(t *testing.T) (*Window, *[]controller.InputKind) {
	t.Helper()
	app := test.NewApp()
	t.Cleanup(app.Quit)
	inputs := &[]controller.InputKind{}
	face := New(app, func(input controller.Input) {
		*inputs = append(*inputs, input.Kind)
	})
	return face, inputs
}

func TestIntervalScreen(t *testing.T) {
	face, _ := newTestFace(t)
	face.applyUnsafe([]controller.Directive{
		{Kind: controller.DisplayIntervalLabel, Text: "15"},
		{Kind: controller.DisplayStatusLine, Text: ""},
		{Kind: controller.DisplaySecondaryLabel, Text: controller.SecondaryUnits},
	})

	assert.Equal(t, "15", face.primary.Text)
	assert.Equal(t, "Minutes", face.secondary.Text)
	assert.Equal(t, "Set Desired", face.titleTop.Text)
	assert.Equal(t, "Interval", face.titleBottom.Text)
}

func TestStatusReplacesDigits(t *testing.T) {
	face, _ := newTestFace(t)
	face.applyUnsafe([]controller.Directive{{Kind: controller.DisplayIntervalLabel, Text: "2"}})
	face.applyUnsafe([]controller.Directive{
		{Kind: controller.DisplayStatusLine, Text: controller.StatusVibeOn},
		{Kind: controller.DisplaySecondaryLabel, Text: ""},
	})

	assert.Equal(t, "Vibe On", face.primary.Text)
	assert.Empty(t, face.secondary.Text)
}

func TestButtonsSendInputs(t *testing.T) {
	face, inputs := newTestFace(t)
	test.Tap(face.up)
	test.Tap(face.selectBtn)
	test.Tap(face.down)

	assert.Equal(t, []controller.InputKind{
		controller.InputIncrement,
		controller.InputToggle,
		controller.InputDecrement,
	}, *inputs)
}

func TestKeysSendInputs(t *testing.T) {
	face, inputs := newTestFace(t)
	for _, name := range []fyne.KeyName{fyne.KeyUp, fyne.KeyDown, fyne.KeyReturn, fyne.KeySpace, fyne.KeyLeft} {
		face.handleKey(&fyne.KeyEvent{Name: name})
	}

	assert.Equal(t, []controller.InputKind{
		controller.InputIncrement,
		controller.InputDecrement,
		controller.InputToggle,
		controller.InputToggle,
	}, *inputs)
}

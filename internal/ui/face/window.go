package face

import (
	"image/color"

	"rudd/internal/core/controller"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// Watch screen geometry, in points.
const (
	screenWidth     = float32(144)
	screenHeight    = float32(168)
	actionBarWidth  = float32(36)
	titleTopY       = float32(24)
	titleBottomY    = float32(40)
	primaryY        = float32(60)
	secondaryY      = float32(108)
	titleTextSize   = 14
	primaryTextSize = 40
)

// Window renders controller directives on a watch-sized face with an action bar.
type Window struct {
	window      fyne.Window
	titleTop    *canvas.Text
	titleBottom *canvas.Text
	primary     *canvas.Text
	secondary   *canvas.Text
	up          *widget.Button
	selectBtn   *widget.Button
	down        *widget.Button
	onInput     func(controller.Input)
}

var _ controller.Renderer = (*Window)(nil)

// New creates the face window. onInput receives every button and key press.
func New(app fyne.App, onInput func(controller.Input)) *Window {
	window := app.NewWindow("rudd")
	if app.Icon() != nil {
		window.SetIcon(app.Icon())
	}
	window.SetPadded(false)
	window.SetFixedSize(true)

	face := &Window{
		window:      window,
		titleTop:    newText("Set Desired", titleTextSize, false),
		titleBottom: newText("Interval", titleTextSize, false),
		primary:     newText("", primaryTextSize, true),
		secondary:   newText("", titleTextSize, false),
		onInput:     onInput,
	}

	face.up = widget.NewButtonWithIcon("", theme.ContentAddIcon(), func() {
		face.send(controller.InputIncrement)
	})
	face.selectBtn = widget.NewButtonWithIcon("", theme.MediaPlayIcon(), func() {
		face.send(controller.InputToggle)
	})
	face.down = widget.NewButtonWithIcon("", theme.ContentRemoveIcon(), func() {
		face.send(controller.InputDecrement)
	})

	background := canvas.NewRectangle(color.White)
	screen := container.New(&screenLayout{}, face.titleTop, face.titleBottom, face.primary, face.secondary)
	actionBar := container.NewGridWithRows(3, face.up, face.selectBtn, face.down)
	root := container.NewBorder(nil, nil, nil, actionBar, container.NewStack(background, screen))

	window.SetContent(root)
	window.Resize(fyne.NewSize(screenWidth+actionBarWidth, screenHeight))
	window.Canvas().SetOnTypedKey(face.handleKey)

	return face
}

// Show displays the face.
func (face *Window) Show() {
	face.window.Show()
	face.window.RequestFocus()
}

// SetOnClosed registers a handler for the window closing.
func (face *Window) SetOnClosed(handler func()) {
	face.window.SetOnClosed(handler)
}

// Render applies directives on the fyne goroutine.
func (face *Window) Render(directives []controller.Directive) {
	fyne.Do(func() {
		face.applyUnsafe(directives)
	})
}

// The interval digits and the status line share the large text slot, as on
// the watch; an empty status leaves the digits in place.
func (face *Window) applyUnsafe(directives []controller.Directive) {
	for _, directive := range directives {
		switch directive.Kind {
		case controller.DisplayIntervalLabel:
			face.primary.Text = directive.Text
			face.primary.TextSize = primaryTextSize
		case controller.DisplayStatusLine:
			if directive.Text == "" {
				continue
			}
			face.primary.Text = directive.Text
			face.primary.TextSize = primaryTextSize / 2
		case controller.DisplaySecondaryLabel:
			face.secondary.Text = directive.Text
			face.secondary.Refresh()
		}
	}
	face.primary.Refresh()
}

func (face *Window) handleKey(event *fyne.KeyEvent) {
	switch event.Name {
	case fyne.KeyUp, fyne.KeyPlus:
		face.send(controller.InputIncrement)
	case fyne.KeyDown, fyne.KeyMinus:
		face.send(controller.InputDecrement)
	case fyne.KeyReturn, fyne.KeyEnter, fyne.KeySpace:
		face.send(controller.InputToggle)
	}
}

func (face *Window) send(kind controller.InputKind) {
	if face.onInput != nil {
		face.onInput(controller.Input{Kind: kind})
	}
}

func newText(text string, size float32, bold bool) *canvas.Text {
	label := canvas.NewText(text, color.Black)
	label.Alignment = fyne.TextAlignCenter
	label.TextStyle = fyne.TextStyle{Bold: bold}
	label.TextSize = size
	return label
}

// screenLayout places the four text rows at the watch offsets, scaled to the
// available height.
type screenLayout struct{}

func (layout *screenLayout) Layout(objects []fyne.CanvasObject, size fyne.Size) {
	if len(objects) < 4 {
		return
	}
	scale := size.Height / screenHeight
	rows := []float32{titleTopY, titleBottomY, primaryY, secondaryY}
	for i, object := range objects[:4] {
		height := object.MinSize().Height
		object.Move(fyne.NewPos(0, rows[i]*scale))
		object.Resize(fyne.NewSize(size.Width, height))
	}
}

func (layout *screenLayout) MinSize(objects []fyne.CanvasObject) fyne.Size {
	width := float32(0)
	for _, object := range objects {
		if objectWidth := object.MinSize().Width; objectWidth > width {
			width = objectWidth
		}
	}
	if width < screenWidth {
		width = screenWidth
	}
	return fyne.NewSize(width, screenHeight)
}

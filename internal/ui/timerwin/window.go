package timerwin

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"

	"zone25/internal/core/phase"
	"zone25/internal/ui/rings"
)

const windowTitle = "Zone25"

// Window shows one ring per block and the start/stop control.
type Window struct {
	window      fyne.Window
	rings       []*rings.Ring
	statusLabel *canvas.Text
	button      *widget.Button
	onToggle    func()
}

// New creates the timer window. onToggle runs on the fyne goroutine when the
// button is tapped.
func New(app fyne.App, blocks int, onToggle func()) *Window {
	window := app.NewWindow(windowTitle)
	if app.Icon() != nil {
		window.SetIcon(app.Icon())
	}

	timer := &Window{
		window:   window,
		onToggle: onToggle,
	}

	ringObjects := make([]fyne.CanvasObject, 0, blocks)
	for i := 0; i < blocks; i++ {
		ring := rings.NewRing()
		timer.rings = append(timer.rings, ring)
		ringObjects = append(ringObjects, ring)
	}

	timer.statusLabel = canvas.NewText("--:--", color.NRGBA{R: 232, G: 190, B: 66, A: 255})
	timer.statusLabel.Alignment = fyne.TextAlignCenter
	timer.statusLabel.TextStyle = fyne.TextStyle{Bold: true}
	timer.statusLabel.TextSize = 16

	timer.button = widget.NewButton(ButtonLabel(true), func() {
		if timer.onToggle != nil {
			timer.onToggle()
		}
	})

	ringRow := container.NewGridWithColumns(max(blocks, 1), ringObjects...)
	buttons := container.NewHBox(layout.NewSpacer(), timer.button, layout.NewSpacer())
	window.SetContent(container.NewPadded(container.NewVBox(ringRow, timer.statusLabel, buttons)))
	window.Resize(fyne.NewSize(360, 180))

	return timer
}

// Show displays the window.
func (timer *Window) Show() {
	timer.window.Show()
	timer.window.RequestFocus()
}

// HideOnClose keeps the app alive when the window is closed, for use with a tray.
func (timer *Window) HideOnClose() {
	timer.window.SetCloseIntercept(timer.window.Hide)
}

// Update redraws rings, status and button. Must be called on the fyne goroutine.
func (timer *Window) Update(snapshot phase.Snapshot) {
	for i, ring := range timer.rings {
		if i < len(snapshot.Progress) {
			ring.SetPercent(snapshot.Progress[i])
		}
	}

	timer.statusLabel.Text = Describe(snapshot)
	timer.statusLabel.Refresh()

	if label := ButtonLabel(snapshot.Finished); timer.button.Text != label {
		timer.button.SetText(label)
	}
}

package preferences

import (
	"slices"
	"strconv"
	"strings"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"

	"zone25/internal/config"
)

var (
	storageDrivers = []string{"preferences", "yaml", "sqlite", "memory"}
	logLevels      = []string{"debug", "info", "warn", "error"}
)

const restartNote = "Storage and logging changes apply after restart."

// Window handles the settings UI.
type Window struct {
	window        fyne.Window
	settings      config.Settings
	onSave        func(config.Settings)
	notifications *widget.Check
	bell          *widget.Check
	driver        *widget.Select
	path          *widget.Entry
	logLevel      *widget.Select
	refresh       *widget.Entry
}

// form is the raw state of the window's inputs.
type form struct {
	Notifications bool
	TerminalBell  bool
	StorageDriver string
	StoragePath   string
	LogLevel      string
	Refresh       string
}

// New creates a settings window. onSave receives the edited settings.
func New(app fyne.App, settings config.Settings, onSave func(config.Settings)) *Window {
	window := app.NewWindow("Zone25 Settings")

	prefs := &Window{
		window:        window,
		onSave:        onSave,
		notifications: widget.NewCheck("Desktop notifications", nil),
		bell:          widget.NewCheck("Terminal bell in watch mode", nil),
		driver:        widget.NewSelect(storageDrivers, nil),
		path:          widget.NewEntry(),
		logLevel:      widget.NewSelect(logLevels, nil),
		refresh:       widget.NewEntry(),
	}
	prefs.path.SetPlaceHolder("default location")
	prefs.UpdateSettings(settings)

	formBox := container.NewVBox(
		widget.NewLabelWithStyle("Notifications", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		prefs.notifications,
		prefs.bell,
		widget.NewLabelWithStyle("Storage", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		container.NewHBox(widget.NewLabel("Driver"), prefs.driver),
		container.NewBorder(nil, nil, widget.NewLabel("Path"), nil, prefs.path),
		widget.NewLabelWithStyle("Advanced", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		container.NewHBox(widget.NewLabel("Log level"), prefs.logLevel),
		container.NewHBox(widget.NewLabel("Refresh every"), prefs.refresh, widget.NewLabel("sec")),
		widget.NewLabelWithStyle(restartNote, fyne.TextAlignLeading, fyne.TextStyle{Italic: true}),
	)

	saveButton := widget.NewButton("Save", prefs.handleSave)
	cancelButton := widget.NewButton("Cancel", window.Hide)
	buttons := container.NewHBox(saveButton, layout.NewSpacer(), cancelButton)

	window.SetContent(container.NewBorder(nil, buttons, nil, nil, formBox))
	window.SetCloseIntercept(window.Hide)
	window.Resize(fyne.NewSize(420, 380))

	return prefs
}

// Show displays the settings window.
func (prefs *Window) Show() {
	prefs.window.Show()
	prefs.window.RequestFocus()
}

// UpdateSettings replaces window values.
func (prefs *Window) UpdateSettings(settings config.Settings) {
	prefs.settings = settings
	prefs.notifications.SetChecked(settings.Notifications)
	prefs.bell.SetChecked(settings.TerminalBell)
	prefs.driver.SetSelected(settings.StorageDriver)
	prefs.path.SetText(settings.StoragePath)
	prefs.logLevel.SetSelected(settings.LogLevel)
	prefs.refresh.SetText(strconv.Itoa(int(settings.RefreshInterval / time.Second)))
}

func (prefs *Window) handleSave() {
	prefs.settings = applyForm(prefs.settings, form{
		Notifications: prefs.notifications.Checked,
		TerminalBell:  prefs.bell.Checked,
		StorageDriver: prefs.driver.Selected,
		StoragePath:   prefs.path.Text,
		LogLevel:      prefs.logLevel.Selected,
		Refresh:       prefs.refresh.Text,
	})
	if prefs.onSave != nil {
		prefs.onSave(prefs.settings)
	}
	prefs.window.Hide()
}

// applyForm copies valid inputs over settings; invalid ones keep the old value.
func applyForm(settings config.Settings, values form) config.Settings {
	settings.Notifications = values.Notifications
	settings.TerminalBell = values.TerminalBell
	if slices.Contains(storageDrivers, values.StorageDriver) {
		settings.StorageDriver = values.StorageDriver
	}
	settings.StoragePath = strings.TrimSpace(values.StoragePath)
	if slices.Contains(logLevels, values.LogLevel) {
		settings.LogLevel = values.LogLevel
	}
	if seconds, ok := parsePositiveInt(values.Refresh); ok && seconds <= 60 {
		settings.RefreshInterval = time.Duration(seconds) * time.Second
	}
	return settings
}

func parsePositiveInt(value string) (int, bool) {
	parsed, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || parsed <= 0 {
		return 0, false
	}
	return parsed, true
}

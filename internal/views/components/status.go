package components

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// StatusBar displays the image size, the last message and the undo depth
type StatusBar struct {
	container   *fyne.Container
	statusLabel *widget.Label
	imageInfo   *widget.Label
	undoInfo    *widget.Label
	activity    *widget.ProgressBarInfinite
}

// NewStatusBar creates a new status bar component
func NewStatusBar() *StatusBar {
	sb := &StatusBar{}
	sb.createComponents()
	sb.buildLayout()
	return sb
}

func (sb *StatusBar) createComponents() {
	sb.imageInfo = widget.NewLabel("No image loaded")
	sb.statusLabel = widget.NewLabel("Ready")
	sb.undoInfo = widget.NewLabel("Undo: 0")
	sb.activity = widget.NewProgressBarInfinite()
	sb.activity.Stop()
	sb.activity.Hide()
}

func (sb *StatusBar) buildLayout() {
	sb.container = container.NewHBox(
		sb.imageInfo,
		widget.NewSeparator(),
		sb.statusLabel,
		widget.NewSeparator(),
		sb.undoInfo,
		sb.activity,
	)
}

// SetImageInfo sets the image size text, e.g. "Image size: 640x480"
func (sb *StatusBar) SetImageInfo(text string) {
	sb.imageInfo.SetText(text)
}

// GetImageInfo returns the image size text
func (sb *StatusBar) GetImageInfo() string {
	return sb.imageInfo.Text
}

// SetStatus updates the message label
func (sb *StatusBar) SetStatus(status string) {
	sb.statusLabel.SetText(status)
}

// GetStatus returns the current message
func (sb *StatusBar) GetStatus() string {
	return sb.statusLabel.Text
}

// SetUndoDepth shows how many edits can be undone
func (sb *StatusBar) SetUndoDepth(depth int) {
	sb.undoInfo.SetText(fmt.Sprintf("Undo: %d", depth))
}

// GetUndoInfo returns the undo depth text
func (sb *StatusBar) GetUndoInfo() string {
	return sb.undoInfo.Text
}

// SetBusy shows or hides the activity indicator
func (sb *StatusBar) SetBusy(busy bool) {
	if busy {
		sb.activity.Show()
		sb.activity.Start()
	} else {
		sb.activity.Stop()
		sb.activity.Hide()
	}
}

// IsBusy returns true while the activity indicator is shown
func (sb *StatusBar) IsBusy() bool {
	return sb.activity.Visible()
}

// Reset resets the status bar to initial state
func (sb *StatusBar) Reset() {
	sb.imageInfo.SetText("No image loaded")
	sb.statusLabel.SetText("Ready")
	sb.SetUndoDepth(0)
	sb.SetBusy(false)
}

// GetContainer returns the status bar container
func (sb *StatusBar) GetContainer() *fyne.Container {
	return sb.container
}

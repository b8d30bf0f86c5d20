package components

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// Actions are the user commands offered by the toolbar and the menus
type Actions struct {
	Open      func()
	Save      func()
	Resize    func()
	Crop      func()
	Grayscale func()
	Undo      func()
	Quit      func()
}

func (a Actions) call(fn func()) func() {
	return func() {
		if fn != nil {
			fn()
		}
	}
}

// Toolbar represents the main application toolbar
type Toolbar struct {
	container       *fyne.Container
	openButton      *widget.Button
	saveButton      *widget.Button
	resizeButton    *widget.Button
	cropButton      *widget.Button
	grayscaleButton *widget.Button
	undoButton      *widget.Button

	hasImage bool
	canUndo  bool
	busy     bool
}

// NewToolbar creates a new toolbar component
func NewToolbar(actions Actions) *Toolbar {
	toolbar := &Toolbar{}
	toolbar.createComponents(actions)
	toolbar.buildLayout()
	toolbar.updateState()
	return toolbar
}

func (t *Toolbar) createComponents(actions Actions) {
	t.openButton = widget.NewButtonWithIcon("Open", theme.FolderOpenIcon(), actions.call(actions.Open))
	t.openButton.Importance = widget.HighImportance

	t.saveButton = widget.NewButtonWithIcon("Save", theme.DocumentSaveIcon(), actions.call(actions.Save))
	t.resizeButton = widget.NewButtonWithIcon("Resize", theme.ViewFullScreenIcon(), actions.call(actions.Resize))
	t.cropButton = widget.NewButtonWithIcon("Crop", theme.ContentCutIcon(), actions.call(actions.Crop))
	t.grayscaleButton = widget.NewButtonWithIcon("Grayscale", theme.ColorPaletteIcon(), actions.call(actions.Grayscale))
	t.undoButton = widget.NewButtonWithIcon("Undo", theme.ContentUndoIcon(), actions.call(actions.Undo))
}

func (t *Toolbar) buildLayout() {
	t.container = container.NewHBox(
		t.openButton,
		t.saveButton,
		widget.NewSeparator(),
		t.resizeButton,
		t.cropButton,
		t.grayscaleButton,
		widget.NewSeparator(),
		t.undoButton,
	)
}

// SetImageLoaded enables the image-dependent buttons
func (t *Toolbar) SetImageLoaded(loaded bool) {
	t.hasImage = loaded
	t.updateState()
}

// SetCanUndo enables the undo button
func (t *Toolbar) SetCanUndo(canUndo bool) {
	t.canUndo = canUndo
	t.updateState()
}

// SetBusy disables every button while an operation runs
func (t *Toolbar) SetBusy(busy bool) {
	t.busy = busy
	t.updateState()
}

func (t *Toolbar) updateState() {
	setEnabled(t.openButton, !t.busy)
	for _, b := range []*widget.Button{t.saveButton, t.resizeButton, t.cropButton, t.grayscaleButton} {
		setEnabled(b, t.hasImage && !t.busy)
	}
	setEnabled(t.undoButton, t.canUndo && !t.busy)
}

func setEnabled(b *widget.Button, enabled bool) {
	if enabled {
		b.Enable()
	} else {
		b.Disable()
	}
}

// GetContainer returns the toolbar container
func (t *Toolbar) GetContainer() *fyne.Container {
	return t.container
}

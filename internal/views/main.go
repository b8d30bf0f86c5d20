package views

import (
	"image"
	"io"

	"simple-image-editor/internal/codec"
	"simple-image-editor/internal/views/components"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
)

const defaultSaveName = "image.png"

// MainView is the editor window: toolbar, image area and status bar. Its
// update methods may be called from any goroutine.
type MainView struct {
	window        fyne.Window
	mainContainer *fyne.Container
	toolbar       *components.Toolbar
	imageDisplay  *components.ImageDisplay
	statusBar     *components.StatusBar

	// Event handlers - connected to controller
	openHandler      func(io.ReadCloser, string)
	saveHandler      func(io.WriteCloser, string)
	resizeHandler    func(int)
	cropHandler      func(int, int)
	grayscaleHandler func()
	undoHandler      func()
	quitHandler      func()
}

// NewMainView builds the window content and menus. onQuit runs when the
// user picks File > Quit.
func NewMainView(window fyne.Window, previewMaxSize int, onQuit func()) *MainView {
	view := &MainView{
		window:      window,
		quitHandler: onQuit,
	}

	actions := components.Actions{
		Open:      view.showOpenDialog,
		Save:      view.showSaveDialog,
		Resize:    view.showResizeDialog,
		Crop:      view.showCropDialog,
		Grayscale: view.grayscale,
		Undo:      view.undo,
		Quit:      view.quit,
	}

	view.toolbar = components.NewToolbar(actions)
	view.imageDisplay = components.NewImageDisplay(previewMaxSize)
	view.statusBar = components.NewStatusBar()

	view.mainContainer = container.NewBorder(
		view.toolbar.GetContainer(),
		view.statusBar.GetContainer(),
		nil,
		nil,
		view.imageDisplay.GetContainer(),
	)

	window.SetContent(view.mainContainer)
	window.SetMainMenu(components.NewMainMenu(actions))

	return view
}

// Event handler setters - called by controller

func (mv *MainView) SetOpenHandler(handler func(io.ReadCloser, string)) {
	mv.openHandler = handler
}

func (mv *MainView) SetSaveHandler(handler func(io.WriteCloser, string)) {
	mv.saveHandler = handler
}

func (mv *MainView) SetResizeHandler(handler func(int)) {
	mv.resizeHandler = handler
}

func (mv *MainView) SetCropHandler(handler func(int, int)) {
	mv.cropHandler = handler
}

func (mv *MainView) SetGrayscaleHandler(handler func()) {
	mv.grayscaleHandler = handler
}

func (mv *MainView) SetUndoHandler(handler func()) {
	mv.undoHandler = handler
}

// UI update methods - called by controller

// SetImage shows img, or the placeholder when img is nil
func (mv *MainView) SetImage(img *image.NRGBA) {
	fyne.Do(func() {
		mv.imageDisplay.SetImage(img)
		mv.toolbar.SetImageLoaded(img != nil)
	})
}

// UpdateStatus sets the image size text
func (mv *MainView) UpdateStatus(text string) {
	fyne.Do(func() {
		mv.statusBar.SetImageInfo(text)
	})
}

// UpdateMessage sets the message label
func (mv *MainView) UpdateMessage(text string) {
	fyne.Do(func() {
		mv.statusBar.SetStatus(text)
	})
}

// SetUndoDepth updates the undo counter and the undo button
func (mv *MainView) SetUndoDepth(depth int) {
	fyne.Do(func() {
		mv.statusBar.SetUndoDepth(depth)
		mv.toolbar.SetCanUndo(depth > 0)
	})
}

// SetBusy locks the toolbar while an operation runs
func (mv *MainView) SetBusy(busy bool) {
	fyne.Do(func() {
		mv.toolbar.SetBusy(busy)
		mv.statusBar.SetBusy(busy)
	})
}

// ShowError displays an error dialog titled after the failed action
func (mv *MainView) ShowError(title string, err error) {
	fyne.Do(func() {
		components.NewErrorDialog(title, err, mv.window).Show()
	})
}

// Reset returns the window to its empty state
func (mv *MainView) Reset() {
	fyne.Do(func() {
		mv.imageDisplay.SetImage(nil)
		mv.toolbar.SetImageLoaded(false)
		mv.toolbar.SetCanUndo(false)
		mv.statusBar.Reset()
	})
}

// ShowInfo displays an information dialog
func (mv *MainView) ShowInfo(title, message string) {
	fyne.Do(func() {
		dialog.ShowInformation(title, message, mv.window)
	})
}

// User actions, run on the UI goroutine

func (mv *MainView) showOpenDialog() {
	d := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			components.NewErrorDialog("Open failed", err, mv.window).Show()
			return
		}
		if reader == nil {
			return
		}
		if mv.openHandler == nil {
			reader.Close()
			return
		}
		mv.openHandler(reader, reader.URI().Name())
	}, mv.window)
	d.SetFilter(storage.NewExtensionFileFilter(codec.Extensions()))
	d.Show()
}

func (mv *MainView) showSaveDialog() {
	if !mv.imageDisplay.HasImage() {
		dialog.ShowInformation("Save", "No image loaded", mv.window)
		return
	}

	d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil {
			components.NewErrorDialog("Save failed", err, mv.window).Show()
			return
		}
		if writer == nil {
			return
		}
		if mv.saveHandler == nil {
			writer.Close()
			return
		}
		mv.saveHandler(writer, writer.URI().Name())
	}, mv.window)
	d.SetFilter(storage.NewExtensionFileFilter(codec.SaveExtensions()))
	d.SetFileName(defaultSaveName)
	d.Show()
}

func (mv *MainView) showResizeDialog() {
	width, _ := mv.imageDisplay.ImageSize()
	if width == 0 {
		dialog.ShowInformation("Resize", "No image loaded", mv.window)
		return
	}

	components.NewResizeDialog(width, func(w int) {
		if mv.resizeHandler != nil {
			mv.resizeHandler(w)
		}
	}, mv.window).Show()
}

func (mv *MainView) showCropDialog() {
	width, height := mv.imageDisplay.ImageSize()
	if width == 0 {
		dialog.ShowInformation("Crop", "No image loaded", mv.window)
		return
	}

	components.NewCropDialog(width, height, func(w, h int) {
		if mv.cropHandler != nil {
			mv.cropHandler(w, h)
		}
	}, mv.window).Show()
}

func (mv *MainView) grayscale() {
	if mv.grayscaleHandler != nil {
		mv.grayscaleHandler()
	}
}

func (mv *MainView) undo() {
	if mv.undoHandler != nil {
		mv.undoHandler()
	}
}

func (mv *MainView) quit() {
	if mv.quitHandler != nil {
		mv.quitHandler()
	}
}

// Show displays the view
func (mv *MainView) Show() {
	mv.window.Show()
}

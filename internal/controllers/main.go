package controllers

import (
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"simple-image-editor/internal/codec"
	"simple-image-editor/internal/logger"
	"simple-image-editor/internal/models"
	"simple-image-editor/internal/operations"
	"simple-image-editor/internal/services"
)

// ErrBusy is returned when an operation is requested while another one is
// still running. The request is dropped, not queued.
var ErrBusy = errors.New("another operation is still running")

const operationTimeout = 30 * time.Second

// View is the window the controller drives. Implementations must be safe to
// call from any goroutine.
type View interface {
	SetImage(img *image.NRGBA)
	UpdateStatus(text string)
	UpdateMessage(text string)
	SetUndoDepth(depth int)
	SetBusy(busy bool)
	ShowInfo(title, message string)
	ShowError(title string, err error)
	Reset()

	SetOpenHandler(func(reader io.ReadCloser, name string))
	SetSaveHandler(func(writer io.WriteCloser, name string))
	SetResizeHandler(func(width int))
	SetCropHandler(func(width, height int))
	SetGrayscaleHandler(func())
	SetUndoHandler(func())
}

// EventHandler represents a function that handles application events
type EventHandler func(data interface{}) error

// MainController turns user actions into session changes and reports the
// outcome to the view
type MainController struct {
	imageService *services.ImageService
	editService  *services.EditService
	session      *models.EditSession
	logger       logger.Logger

	view View
	busy atomic.Bool

	mu            sync.RWMutex
	lastImageLoad time.Time

	eventHandlers map[string][]EventHandler
	eventMu       sync.RWMutex
}

// NewMainController creates a new main controller
func NewMainController(
	imageService *services.ImageService,
	editService *services.EditService,
	session *models.EditSession,
	log logger.Logger,
) *MainController {
	controller := &MainController{
		imageService:  imageService,
		editService:   editService,
		session:       session,
		logger:        log,
		eventHandlers: make(map[string][]EventHandler),
	}

	controller.initializeEventHandlers()
	return controller
}

// SetMainView associates the main view with this controller and wires its
// actions. Actions run off the UI goroutine.
func (mc *MainController) SetMainView(view View) {
	mc.view = view

	view.SetOpenHandler(func(reader io.ReadCloser, name string) {
		go mc.OpenImage(reader, name)
	})
	view.SetSaveHandler(func(writer io.WriteCloser, name string) {
		go mc.SaveImage(writer, name)
	})
	view.SetResizeHandler(func(width int) {
		go mc.Resize(width)
	})
	view.SetCropHandler(func(width, height int) {
		go mc.CropCenter(width, height)
	})
	view.SetGrayscaleHandler(func() {
		go mc.Grayscale()
	})
	view.SetUndoHandler(func() {
		go mc.Undo()
	})

	mc.refreshView()
}

// OpenImage decodes the file and replaces the current image. The reader is
// always closed.
func (mc *MainController) OpenImage(reader io.ReadCloser, name string) error {
	if !mc.begin() {
		reader.Close()
		mc.handleError("Open failed", ErrBusy)
		return ErrBusy
	}
	defer mc.end()
	defer reader.Close()

	mc.updateMessage(fmt.Sprintf("Loading %s...", name))

	ctx, cancel := context.WithTimeout(context.Background(), operationTimeout)
	defer cancel()

	imageData, err := mc.imageService.LoadImage(ctx, reader, name)
	if err != nil {
		mc.updateMessage("Ready")
		mc.handleError("Open failed", err)
		return err
	}

	mc.mu.Lock()
	mc.lastImageLoad = time.Now()
	mc.mu.Unlock()

	mc.refreshView()
	mc.updateMessage(fmt.Sprintf("Opened %s", name))
	mc.emitEvent("image_loaded", imageData)
	return nil
}

// SaveImage writes the current image in the format named by the file
// extension. The writer is always closed.
func (mc *MainController) SaveImage(writer io.WriteCloser, name string) error {
	if !mc.begin() {
		writer.Close()
		mc.handleError("Save failed", ErrBusy)
		return ErrBusy
	}
	defer mc.end()

	mc.updateMessage(fmt.Sprintf("Saving %s...", name))

	ctx, cancel := context.WithTimeout(context.Background(), operationTimeout)
	defer cancel()

	err := mc.imageService.SaveImage(ctx, writer, name)
	if closeErr := writer.Close(); err == nil && closeErr != nil {
		err = &codec.EncodeError{Err: fmt.Errorf("close %s: %w", name, closeErr)}
	}
	if err != nil {
		mc.updateMessage("Save failed")
		mc.handleError("Save failed", err)
		return err
	}

	mc.updateMessage(fmt.Sprintf("Saved %s", name))
	mc.showInfo("Save", "Image saved successfully!")
	mc.emitEvent("image_saved", name)
	return nil
}

// Resize scales the current image to width pixels, keeping the aspect ratio
func (mc *MainController) Resize(width int) error {
	return mc.Apply(operations.Resize{Width: width}, "")
}

// CropCenter cuts a width x height rectangle from the middle of the image
func (mc *MainController) CropCenter(width, height int) error {
	return mc.Apply(operations.CropCenter{Width: width, Height: height}, "")
}

// Grayscale desaturates the current image
func (mc *MainController) Grayscale() error {
	return mc.Apply(operations.Grayscale{}, "Image converted to grayscale!")
}

// Apply runs op on the current image. A non-empty notice is shown on
// success.
func (mc *MainController) Apply(op models.Operation, notice string) error {
	title := operationTitle(op)

	if !mc.begin() {
		mc.handleError(title+" failed", ErrBusy)
		return ErrBusy
	}
	defer mc.end()

	ctx, cancel := context.WithTimeout(context.Background(), operationTimeout)
	defer cancel()

	result, err := mc.editService.Apply(ctx, op)
	if err != nil {
		mc.handleError(title+" failed", err)
		return err
	}

	mc.refreshView()
	mc.updateMessage(fmt.Sprintf("%s applied", title))
	if notice != "" {
		mc.showInfo(title, notice)
	}
	mc.emitEvent("image_edited", result)
	return nil
}

// Undo restores the image as it was before the last edit. With nothing to
// undo the user is told so and models.ErrEmptyHistory is returned.
func (mc *MainController) Undo() error {
	if !mc.begin() {
		mc.handleError("Undo failed", ErrBusy)
		return ErrBusy
	}
	defer mc.end()

	ctx, cancel := context.WithTimeout(context.Background(), operationTimeout)
	defer cancel()

	_, err := mc.editService.Undo(ctx)
	if errors.Is(err, models.ErrEmptyHistory) {
		mc.showInfo("Undo", "No more operations to undo!")
		return err
	}
	if err != nil {
		mc.handleError("Undo failed", err)
		return err
	}

	mc.refreshView()
	mc.updateMessage("Undo applied")
	mc.showInfo("Undo", "Last operation undone!")
	return nil
}

// StatusText describes the current image for the status bar
func (mc *MainController) StatusText() string {
	width, height, ok := mc.session.Dimensions()
	if !ok {
		return "No image loaded"
	}
	return fmt.Sprintf("Image size: %dx%d", width, height)
}

// IsBusy reports whether an operation is in flight
func (mc *MainController) IsBusy() bool {
	return mc.busy.Load()
}

// GetApplicationState returns the current application state
func (mc *MainController) GetApplicationState() ApplicationState {
	mc.mu.RLock()
	lastLoad := mc.lastImageLoad
	mc.mu.RUnlock()

	stats := mc.session.Stats()
	return ApplicationState{
		HasImage:      stats.HasImage,
		IsBusy:        mc.IsBusy(),
		UndoDepth:     stats.HistorySize,
		MemoryUsage:   stats.MemoryUsage,
		StatusText:    mc.StatusText(),
		LastImageLoad: lastLoad,
	}
}

// ApplicationState represents the current state of the application
type ApplicationState struct {
	HasImage      bool
	IsBusy        bool
	UndoDepth     int
	MemoryUsage   int64
	StatusText    string
	LastImageLoad time.Time
}

func (mc *MainController) begin() bool {
	if !mc.busy.CompareAndSwap(false, true) {
		mc.logger.Warning("MainController", "operation rejected while busy", nil)
		return false
	}
	if mc.view != nil {
		mc.view.SetBusy(true)
	}
	return true
}

func (mc *MainController) end() {
	mc.busy.Store(false)
	if mc.view != nil {
		mc.view.SetBusy(false)
	}
}

// refreshView pushes the current image, status text and undo depth
func (mc *MainController) refreshView() {
	if mc.view == nil {
		return
	}

	var img *image.NRGBA
	if current := mc.session.Current(); current != nil {
		img = current.Image
	}

	mc.view.SetImage(img)
	mc.view.UpdateStatus(mc.StatusText())
	mc.view.SetUndoDepth(mc.editService.HistoryLen())
}

func (mc *MainController) updateMessage(text string) {
	if mc.view != nil {
		mc.view.UpdateMessage(text)
	}
}

func (mc *MainController) showInfo(title, message string) {
	if mc.view != nil {
		mc.view.ShowInfo(title, message)
	}
}

func operationTitle(op models.Operation) string {
	switch op.(type) {
	case operations.Resize:
		return "Resize"
	case operations.CropCenter:
		return "Crop"
	case operations.Grayscale:
		return "Grayscale"
	default:
		return op.Name()
	}
}

// Event system methods

// initializeEventHandlers sets up default event handlers
func (mc *MainController) initializeEventHandlers() {
	mc.addEventListener("image_loaded", mc.onImageLoaded)
	mc.addEventListener("image_edited", mc.onImageEdited)
}

// addEventListener adds an event handler for a specific event type
func (mc *MainController) addEventListener(eventType string, handler EventHandler) {
	mc.eventMu.Lock()
	defer mc.eventMu.Unlock()
	mc.eventHandlers[eventType] = append(mc.eventHandlers[eventType], handler)
}

// emitEvent triggers all handlers for a specific event type
func (mc *MainController) emitEvent(eventType string, data interface{}) {
	mc.eventMu.RLock()
	handlers := mc.eventHandlers[eventType]
	mc.eventMu.RUnlock()

	for _, handler := range handlers {
		if err := handler(data); err != nil {
			mc.logger.Error("MainController", err, map[string]interface{}{
				"event": eventType,
			})
		}
	}
}

// onImageLoaded logs the memory held by a freshly loaded document
func (mc *MainController) onImageLoaded(data interface{}) error {
	imageData, ok := data.(*models.ImageData)
	if !ok {
		return fmt.Errorf("invalid data type for image_loaded event")
	}

	mc.logger.Debug("MainController", "document opened", map[string]interface{}{
		"source":       imageData.Source,
		"memory_bytes": imageData.MemoryUsage(),
	})
	return nil
}

// onImageEdited reports how much memory the undo history pins
func (mc *MainController) onImageEdited(data interface{}) error {
	if _, ok := data.(*models.ImageData); !ok {
		return fmt.Errorf("invalid data type for image_edited event")
	}

	stats := mc.session.Stats()
	mc.logger.Debug("MainController", "session memory", map[string]interface{}{
		"history_size":     stats.HistorySize,
		"history_capacity": stats.HistoryCapacity,
		"memory_bytes":     stats.MemoryUsage,
	})
	return nil
}

// handleError logs a failed action and shows it to the user
func (mc *MainController) handleError(title string, err error) {
	mc.logger.Error("MainController", err, map[string]interface{}{
		"action": title,
	})

	if mc.view != nil {
		mc.view.ShowError(title, err)
	}
}

// Shutdown releases the session and clears the view. Later actions find no
// image.
func (mc *MainController) Shutdown() {
	mc.logger.Info("MainController", "shutting down", map[string]interface{}{
		"busy": mc.IsBusy(),
	})
	mc.imageService.Cleanup()

	if mc.view != nil {
		mc.view.Reset()
	}
}

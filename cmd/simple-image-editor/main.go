package main

import (
	"fmt"
	"log"
	"runtime"

	"simple-image-editor/internal/codec"
	"simple-image-editor/internal/config"
	"simple-image-editor/internal/controllers"
	"simple-image-editor/internal/logger"
	"simple-image-editor/internal/models"
	"simple-image-editor/internal/services"
	"simple-image-editor/internal/shutdown"
	"simple-image-editor/internal/views"

	// WebP encoding and the OpenCV decode fallback
	_ "simple-image-editor/internal/opencv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
)

const (
	AppName    = "Simple Image Editor"
	AppID      = "com.imageediting.simple-image-editor"
	AppVersion = "1.0.0"
)

var _ controllers.View = (*views.MainView)(nil)

// Application owns the window and everything wired behind it
type Application struct {
	fyneApp fyne.App
	window  fyne.Window
	logger  logger.Logger

	controller *controllers.MainController
	view       *views.MainView
	shutdown   *shutdown.Manager
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Configuration invalid: %v", err)
	}

	application := NewApplication(cfg)
	application.Run()
}

// NewApplication wires session, services, controller and view together
func NewApplication(cfg config.Config) *Application {
	appLogger := logger.New(logger.ParseLevel(cfg.LogLevel), cfg.JSONLogs)

	app.SetMetadata(fyne.AppMetadata{
		ID:      AppID,
		Name:    AppName,
		Version: AppVersion,
	})
	fyneApp := app.NewWithID(AppID)

	window := fyneApp.NewWindow(AppName)
	window.Resize(fyne.NewSize(cfg.WindowWidth, cfg.WindowHeight))
	window.CenterOnScreen()

	appLogger.Info("Application", "starting", map[string]interface{}{
		"version":       AppVersion,
		"window_size":   fmt.Sprintf("%.0fx%.0f", cfg.WindowWidth, cfg.WindowHeight),
		"go_version":    runtime.Version(),
		"history_limit": cfg.HistoryLimit,
		"log_level":     cfg.LogLevel,
		"webp_encoder":  codec.HasEncoder(codec.WebP),
	})

	session := models.NewEditSession(cfg.HistoryLimit, appLogger)
	imageService := services.NewImageService(session, codec.Options{JPEGQuality: cfg.JPEGQuality}, appLogger)
	editService := services.NewEditService(session, appLogger)

	controller := controllers.NewMainController(imageService, editService, session, appLogger)
	view := views.NewMainView(window, cfg.PreviewMaxSize, fyneApp.Quit)
	controller.SetMainView(view)

	manager := shutdown.NewManager(appLogger, 0)
	manager.Register("controller", controller)

	application := &Application{
		fyneApp:    fyneApp,
		window:     window,
		logger:     appLogger,
		controller: controller,
		view:       view,
		shutdown:   manager,
	}
	application.setupWindowEvents()

	return application
}

// Run shows the window and blocks until the app quits
func (app *Application) Run() {
	app.shutdown.Listen(func() {
		fyne.Do(app.fyneApp.Quit)
	})

	app.view.Show()
	app.fyneApp.Run()

	app.shutdown.Shutdown()
	app.logger.Info("Application", "terminated", nil)
}

func (app *Application) setupWindowEvents() {
	app.window.SetCloseIntercept(func() {
		app.logger.Info("Application", "window close requested", map[string]interface{}{
			"busy": app.controller.IsBusy(),
		})
		app.fyneApp.Quit()
	})

	app.window.SetOnClosed(func() {
		app.shutdown.Shutdown()
	})
}

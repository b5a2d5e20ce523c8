package main

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"sticker-manager/internal/config"
	"sticker-manager/internal/controllers"
	"sticker-manager/internal/logger"
	"sticker-manager/internal/models"
	"sticker-manager/internal/shutdown"
	"sticker-manager/internal/views"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
)

const databaseInfoInterval = 30 * time.Second

// Application owns the window and the components behind it
type Application struct {
	fyneApp fyne.App
	window  fyne.Window
	logger  logger.Logger

	controller *controllers.MainController
	view       *views.MainView
	confirm    confirmer

	shutdown *shutdown.Manager
}

type confirmer interface {
	ShowConfirm(title, message string, callback func(bool))
}

func runGUI(opts *rootOptions) error {
	application, err := NewApplication(context.Background(), opts.cfg)
	if err != nil {
		return err
	}
	return application.Run()
}

// NewApplication opens the album and builds the window around it
func NewApplication(ctx context.Context, cfg config.Config) (*Application, error) {
	a, err := openAlbum(ctx, cfg)
	if err != nil {
		return nil, err
	}

	app.SetMetadata(fyne.AppMetadata{
		ID:      AppID,
		Name:    AppName,
		Version: AppVersion,
	})
	fyneApp := app.NewWithID(AppID)

	window := fyneApp.NewWindow(AppName)
	window.Resize(fyne.NewSize(cfg.WindowWidth, cfg.WindowHeight))
	window.CenterOnScreen()

	a.log.Info("Application", "application starting", map[string]interface{}{
		"version":     AppVersion,
		"database":    a.store.Path(),
		"window_size": fmt.Sprintf("%.0fx%.0f", cfg.WindowWidth, cfg.WindowHeight),
		"go_version":  runtime.Version(),
		"log_level":   cfg.LogLevel,
	})

	mainView := views.NewMainView(window)
	mainView.SetMinSize(fyne.NewSize(config.MinWindowWidth, config.MinWindowHeight))

	mainController := controllers.NewMainController(a.service, models.NewAlbumState(), a.log, a.store.Path())
	mainController.SetMainView(mainView)

	manager := shutdown.NewManager(a.log, 5*time.Second)
	manager.Register("store", a.store)
	manager.Register("event bus", a.bus)
	manager.Register("controller", mainController)

	application := &Application{
		fyneApp:    fyneApp,
		window:     window,
		logger:     a.log,
		controller: mainController,
		view:       mainView,
		confirm:    mainView,
		shutdown:   manager,
	}
	application.setupWindowEvents()

	if err := mainController.Start(); err != nil {
		manager.Shutdown()
		return nil, err
	}

	return application, nil
}

// Run shows the window and blocks until the application quits
func (app *Application) Run() error {
	app.shutdown.Listen(func() {
		fyne.Do(app.fyneApp.Quit)
	})

	go app.refreshDatabaseInfo()

	app.view.Show()
	app.fyneApp.Run()

	app.shutdown.Shutdown()
	app.logger.Info("Application", "application terminated", nil)
	return nil
}

func (app *Application) setupWindowEvents() {
	app.window.SetCloseIntercept(app.requestClose)
}

// requestClose asks before shutting down and closing the window
func (app *Application) requestClose() {
	app.logger.Info("Application", "window close requested", nil)
	app.confirm.ShowConfirm(
		"Quit",
		"Close Sticker Manager?",
		func(confirmed bool) {
			if !confirmed {
				return
			}
			app.shutdown.Shutdown()
			app.window.Close()
		},
	)
}

// refreshDatabaseInfo keeps the database size in the status bar current
func (app *Application) refreshDatabaseInfo() {
	ticker := time.NewTicker(databaseInfoInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			fyne.Do(app.controller.RefreshDatabaseInfo)
		case <-app.shutdown.Done():
			return
		}
	}
}

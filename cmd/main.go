package main

import (
	"context"
	"errors"
	"time"

	"lazytimer/internal/controller"
	"lazytimer/internal/core/countdown"
	"lazytimer/internal/core/model"
	"lazytimer/internal/core/shake"
	"lazytimer/internal/notify"
	"lazytimer/internal/observability"
	"lazytimer/internal/platform"
	"lazytimer/internal/storage"
	"lazytimer/internal/ui/preferences"
	"lazytimer/internal/ui/timerwindow"
	"lazytimer/internal/ui/tray"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/theme"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const (
	appName = "LazyTimer"
	appID   = "com.lazytimer.app"
)

func main() {
	cobra.CheckErr(newRootCommand().Execute())
}

func newRootCommand() *cobra.Command {
	options := &cliOptions{}
	command := &cobra.Command{
		Use:          "lazytimer",
		Short:        "Countdown timer you can start and pause by shaking",
		SilenceUsage: true,
		RunE: func(command *cobra.Command, _ []string) error {
			return run(command, options)
		},
	}
	options.register(command.Flags())
	return command
}

func run(command *cobra.Command, options *cliOptions) error {
	logger, err := newLogger(options.debug)
	if err != nil {
		return err
	}
	defer func() {
		_ = logger.Sync()
	}()

	configPath := options.configPath
	if configPath == "" {
		configPath, err = storage.SettingsPath(appName)
		if err != nil {
			return err
		}
	}
	settings, err := storage.LoadSettings(configPath)
	if err != nil {
		logger.Warn("settings not loaded, using defaults", zap.String("path", configPath), zap.Error(err))
	}
	settings = options.apply(command.Flags(), settings)

	guard, err := platform.AcquireSingleInstance(appName, logger)
	if errors.Is(err, platform.ErrAlreadyRunning) {
		logger.Info("another instance is running; asked it to show the timer")
		return nil
	}
	if err != nil {
		return err
	}
	defer func() {
		_ = guard.Release()
	}()

	ctx, cancel := context.WithCancel(command.Context())
	defer cancel()

	fyneApp := app.NewWithID(appID)
	fyneApp.SetIcon(theme.HistoryIcon())
	desktopApp, hasTray := fyneApp.(desktop.App)

	keeper := countdown.New(model.DefaultTarget, countdown.RealClock{}, countdown.Config{TickInterval: time.Second, Logger: logger})
	defer keeper.Close()

	var ctrl *controller.Controller
	window := timerwindow.New(fyneApp, timerwindow.Config{Title: appName, HideOnClose: hasTray}, timerwindow.Callbacks{
		OnSubmit: func(input string) error { return ctrl.Submit(input) },
		OnToggle: func() { ctrl.ToggleStartPause(controller.SourceButton) },
		OnReset:  func() { ctrl.Reset() },
	})
	renderers := controller.Renderers{window}

	detector := shake.NewDetector(settings.ShakeConfig(), nil)
	watcher := newSensorWatcher(ctx, detector, func() { ctrl.OnShake() }, logger)
	defer watcher.Stop()

	prefsWindow := preferences.New(fyneApp, settings, func(updated preferences.Settings) {
		previous := settings
		settings = updated
		if err := storage.SaveSettings(configPath, settings); err != nil {
			logger.Error("save settings", zap.Error(err))
		}
		detector.UpdateConfig(settings.ShakeConfig())
		if sensorChanged(previous, settings) {
			watcher.Restart(settings)
		}
	})

	if hasTray {
		trayManager := tray.New(desktopApp, tray.Callbacks{
			OnShow:        window.Show,
			OnToggle:      func() { ctrl.ToggleStartPause(controller.SourceTray) },
			OnReset:       func() { ctrl.Reset() },
			OnPreferences: prefsWindow.Show,
			OnQuit:        fyneApp.Quit,
		})
		desktopApp.SetSystemTrayIcon(theme.HistoryIcon())
		renderers = append(renderers, trayManager)
	}

	store := storage.NewPreferencesStore(fyneApp.Preferences())
	gateway := notify.NewFyneGateway(fyneApp, logger)
	ctrl = controller.New(keeper, store, gateway, renderers, logger)

	guard.OnActivate(func() {
		fyne.Do(window.Show)
	})
	bindLifecycle(fyneApp.Lifecycle(), fyne.CurrentDevice().IsMobile(), ctrl)

	go ctrl.Run(ctx)
	watcher.Restart(settings)
	if addr := settings.MetricsAddr; addr != "" {
		go func() {
			if err := observability.Serve(ctx, addr, logger); err != nil {
				logger.Error("metrics server stopped", zap.Error(err))
			}
		}()
	}

	logger.Info("lazytimer starting", zap.String("config", configPath), zap.String("sensor", settings.SensorSource))
	window.Show()
	fyneApp.Run()
	return nil
}

// bindLifecycle maps app lifecycle hooks onto suspend and resume. Mobile
// devices snapshot on leaving the foreground; desktops keep counting while
// unfocused and only snapshot on start and stop.
func bindLifecycle(lifecycle fyne.Lifecycle, mobile bool, ctrl *controller.Controller) {
	if mobile {
		lifecycle.SetOnEnteredForeground(ctrl.Resume)
		lifecycle.SetOnExitedForeground(ctrl.Suspend)
		return
	}
	lifecycle.SetOnStarted(ctrl.Resume)
	lifecycle.SetOnStopped(ctrl.Suspend)
}

func newLogger(debug bool) (*zap.Logger, error) {
	config := zap.NewProductionConfig()
	if debug {
		config = zap.NewDevelopmentConfig()
	}
	return config.Build()
}

package main

import (
	"context"
	"log"
	"os"
	"strings"
	"time"

	"rudd/internal/clock"
	"rudd/internal/core/controller"
	"rudd/internal/core/interval"
	"rudd/internal/core/model"
	"rudd/internal/core/vibe"
	"rudd/internal/logging"
	"rudd/internal/platform"
	"rudd/internal/storage"
	"rudd/internal/ui/face"
	"rudd/internal/ui/notify"
	"rudd/internal/ui/tray"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/driver/desktop"
)

const appName = "rudd"

func main() {
	settings := loadSettings()

	level, err := logging.ParseLevel(settings.LogLevel)
	if err != nil {
		log.Printf("settings: %v", err)
	}
	logger, err := logging.New(level, settings.LogFile)
	if err != nil {
		log.Printf("log file: %v", err)
		logger = logging.NewWithWriters(level, os.Stdout, os.Stderr)
	}
	defer func() {
		_ = logger.Close()
	}()

	lock, err := platform.AcquireInstanceLock(appName)
	if err != nil {
		logger.Error("single instance: %v", err)
		return
	}
	defer func() {
		_ = lock.Release()
	}()

	fyneApp := app.NewWithID("com.rudd.app")

	var haptics vibe.Haptics
	buzzer, err := platform.NewBuzzer(settings.BuzzerConfig())
	if err != nil {
		logger.Info("buzzer unavailable, alerts use notifications: %v", err)
		haptics = notify.New(fyneApp)
	} else {
		haptics = buzzer
	}

	selector := interval.NewDefault()
	timers := platform.NewTimerService(clock.System, settings.TimerConfig())
	scheduler := vibe.New(selector, timers, haptics, clock.System, settings.SchedulerConfig())
	ctrl := controller.New(selector, scheduler, logger, controller.Config{UnitLabel: settings.UnitLabel()})
	timers.SetFiredHandler(ctrl.TimerFired)

	post := func(kind controller.InputKind) func() {
		return func() {
			ctrl.Post(controller.Input{Kind: kind})
		}
	}

	faceWindow := face.New(fyneApp, func(input controller.Input) {
		ctrl.Post(input)
	})
	faceWindow.SetOnClosed(fyneApp.Quit)

	var trayManager *tray.Manager
	if desktopApp, ok := fyneApp.(desktop.App); ok {
		trayManager = tray.New(desktopApp, tray.Callbacks{
			OnShow:      faceWindow.Show,
			OnToggle:    post(controller.InputToggle),
			OnIncrement: post(controller.InputIncrement),
			OnDecrement: post(controller.InputDecrement),
			OnQuit:      fyneApp.Quit,
		})
		if settings.Unit != time.Minute {
			trayManager.SetUnits(strings.ToLower(settings.UnitLabel()))
		}
	} else {
		logger.Verbose("system tray unsupported on this platform")
	}

	renderer := controller.RendererFunc(func(directives []controller.Directive) {
		faceWindow.Render(directives)
		if trayManager == nil {
			return
		}
		for _, directive := range directives {
			if directive.Kind == controller.DisplayIntervalLabel {
				label := directive.Text
				fyne.Do(func() {
					trayManager.SetInterval(label)
				})
			}
		}
	})

	events := scheduler.Subscribe(8)
	go func() {
		for event := range events {
			handleEvent(event, logger, trayManager)
		}
	}()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		ctrl.Run(ctx, renderer)
		close(done)
	}()

	logger.Verbose("started, settings unit %s", settings.Unit)
	faceWindow.Show()
	fyneApp.Run()

	cancel()
	<-done
	timers.StopAll()
	scheduler.Close()
}

func loadSettings() model.Settings {
	path, err := storage.SettingsPath(appName)
	if err != nil {
		log.Printf("settings: %v", err)
		return model.DefaultSettings()
	}

	settings, found, err := storage.LoadSettings(path)
	if err != nil {
		log.Printf("settings: %v", err)
		return settings
	}
	if !found {
		if err := storage.SaveSettings(path, settings); err != nil {
			log.Printf("settings: %v", err)
		}
	}
	return settings
}

func handleEvent(event vibe.Event, logger *logging.Logger, trayManager *tray.Manager) {
	switch event.Type {
	case vibe.EventStateChange:
		if trayManager != nil {
			armed := event.State == vibe.StateArmed
			fyne.Do(func() {
				trayManager.SetArmed(armed)
			})
		}
	case vibe.EventFired:
		logger.Debug("timer %d fired", event.Handle)
	case vibe.EventHapticError:
		logger.Error("haptic pulse: %s", event.Message)
	case vibe.EventScheduleError:
		logger.Debug("schedule %s: %s", event.Interval, event.Message)
	case vibe.EventStaleFire:
		logger.Debug("stale fire for timer %d", event.Handle)
	}
}

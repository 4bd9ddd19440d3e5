package main

import (
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/idilsaglam/todolists/internal/app"
	"github.com/idilsaglam/todolists/internal/config"
	"github.com/idilsaglam/todolists/internal/logging"
	"github.com/idilsaglam/todolists/internal/model"
	"github.com/idilsaglam/todolists/internal/store/jsonstore"
	"github.com/idilsaglam/todolists/internal/tui"
	"github.com/idilsaglam/todolists/internal/ui"
)

func main() {
	os.Exit(run())
}

func run() int {
	settings, logger, closeLog, settingsErr := setup()
	defer closeLog()

	// Load gates the first frame, so it runs before the program starts.
	saver, lists, status := open(logger)
	state := app.New(lists, initialStatus(status, settingsErr), logger)

	p := tea.NewProgram(
		tui.New(state, saver, ui.NewTheme(settings.Dark()), logger),
		tea.WithAltScreen(),
	)
	final, err := p.Run()
	if err != nil {
		logger.Error("program failed", "err", err)
		fmt.Fprintln(os.Stderr, "todo:", err)
		return 1
	}

	// A save may still be outstanding or may have failed; write what we have.
	if fm, ok := final.(tui.Model); ok && fm.State().Dirty {
		if err := flush(saver, model.CloneLists(fm.State().Lists)); err != nil {
			logger.Error("final save failed", "err", err)
			fmt.Fprintln(os.Stderr, "todo: save:", err)
			return 1
		}
		logger.Info("final save", "items", fm.State().TotalItems())
	}
	return 0
}

// setup reads settings and opens the log file. Both are optional; an
// invalid settings file is returned so it can be shown in the status line.
func setup() (config.Settings, *log.Logger, func(), error) {
	settings := config.Default()
	dir, err := config.Dir()
	if err != nil {
		return settings, logging.Discard(), func() {}, nil
	}

	settings, unknown, settingsErr := config.Load(filepath.Join(dir, config.FileName))

	logger, closeLog := logging.Discard(), func() {}
	if l, closer, err := logging.Open(filepath.Join(dir, logging.FileName), settings.Level()); err == nil {
		logger, closeLog = l, func() { _ = closer.Close() }
	}
	if settingsErr != nil {
		logger.Warn("using default settings", "err", settingsErr)
	}
	for _, k := range unknown {
		logger.Warn("unknown setting", "key", k)
	}
	return settings, logger, closeLog, settingsErr
}

// initialStatus shows a settings error unless loading already failed.
func initialStatus(load app.Status, settingsErr error) app.Status {
	if settingsErr == nil || load.Err != nil {
		return load
	}
	return app.Failed(fmt.Errorf("settings: %w", settingsErr))
}

// open resolves the data file and loads it. Failures leave an empty
// collection and become the initial status.
func open(logger *log.Logger) (tui.Saver, []model.List, app.Status) {
	path, err := jsonstore.ResolvePath()
	if err != nil {
		logger.Error("persistence disabled", "err", err)
		return unavailable{err}, nil, app.Failed(err)
	}

	store := jsonstore.New(path)
	lists, err := store.Load()
	if err != nil {
		logger.Warn("starting empty", "path", path, "err", err)
		return store, nil, app.Failed(err)
	}
	logger.Info("loaded", "path", path, "lists", len(lists), "items", model.TotalItems(lists))
	return store, lists, app.OK("Loaded")
}

func flush(saver tui.Saver, lists []model.List) error {
	if f, ok := saver.(interface{ Flush([]model.List) error }); ok {
		return f.Flush(lists)
	}
	return saver.Save(lists)
}

// unavailable keeps the UI running when there is nowhere to save.
type unavailable struct{ err error }

func (u unavailable) Save([]model.List) error { return u.err }

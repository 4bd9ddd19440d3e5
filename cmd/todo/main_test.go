package main

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idilsaglam/todolists/internal/app"
	"github.com/idilsaglam/todolists/internal/config"
	"github.com/idilsaglam/todolists/internal/logging"
	"github.com/idilsaglam/todolists/internal/store/jsonstore"
)

func TestSetupReturnsInvalidSettings(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, config.FileName), []byte(`theme = "blue"`), 0o644))

	settings, logger, closeLog, err := setup()
	defer closeLog()

	require.Error(t, err)
	assert.NotNil(t, logger)
	assert.Equal(t, config.Default(), settings)
	assert.FileExists(t, filepath.Join(dir, logging.FileName))
}

func TestSetupWithoutLogFile(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, config.FileName), []byte(`log_level = "loud"`), 0o644))
	// a directory where the log file should be
	require.NoError(t, os.Mkdir(filepath.Join(dir, logging.FileName), 0o755))

	_, logger, closeLog, err := setup()
	defer closeLog()

	assert.Error(t, err, "settings error survives a missing log file")
	assert.NotNil(t, logger)
}

func TestInitialStatus(t *testing.T) {
	settingsErr := errors.New(`invalid theme "blue" (want dark or light)`)

	st := initialStatus(app.OK("Loaded"), settingsErr)
	require.Error(t, st.Err)
	assert.ErrorIs(t, st.Err, settingsErr)
	assert.Equal(t, `settings: invalid theme "blue" (want dark or light)`, st.Text())

	loadErr := &jsonstore.PersistError{Op: jsonstore.OpLoad, Kind: jsonstore.ErrRead, Err: os.ErrNotExist}
	st = initialStatus(app.Failed(loadErr), settingsErr)
	assert.Equal(t, "Failed to read config file", st.Text())

	assert.Equal(t, "Loaded", initialStatus(app.OK("Loaded"), nil).Text())
}

func TestDegradedModeKeepsChangesDirty(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "")
	t.Setenv("HOME", "")

	saver, lists, status := open(logging.Discard())
	assert.Empty(t, lists)
	assert.Equal(t, "Could not get config directory", status.Text())

	state := app.New(lists, status, nil)
	state.Apply(app.NewListInput{Text: "Work"})
	req := state.Apply(app.NewListSubmit{})
	require.NotNil(t, req)

	err := saver.Save(req.Lists)
	assert.ErrorIs(t, err, jsonstore.ErrPath)
	assert.Nil(t, state.Apply(app.Saved{Revision: req.Revision, Err: err}))

	assert.True(t, state.Dirty)
	assert.Equal(t, "Could not get config directory", state.Status.Text())
	assert.Equal(t, "Todo*", state.Title())

	// flush on exit reports the same error instead of dropping it
	assert.ErrorIs(t, flush(saver, req.Lists), jsonstore.ErrPath)
}

// Package app wires configuration, commands, keymaps, the editor and the
// dispatcher into one interactive session.
package app

import (
	"io"
	"sync"

	"github.com/dshills/mathmark/internal/command"
	"github.com/dshills/mathmark/internal/config"
	"github.com/dshills/mathmark/internal/config/layer"
	"github.com/dshills/mathmark/internal/config/loader"
	"github.com/dshills/mathmark/internal/dispatcher"
	"github.com/dshills/mathmark/internal/engine"
	"github.com/dshills/mathmark/internal/input/keymap"
	"github.com/dshills/mathmark/internal/logging"
)

// Application is one editing session.
type Application struct {
	mu sync.Mutex

	opts       Options
	config     *config.Config
	layers     *layer.Manager
	logger     *logging.Logger
	commands   *command.Registry
	keymaps    *keymap.Registry
	editor     *engine.Editor
	dispatcher *dispatcher.Dispatcher

	// closers release components in reverse start order.
	closers []io.Closer

	path     string
	modified bool
	message  string
}

// Options configures the application.
type Options struct {
	// ConfigPath is a config file that must exist. When empty the per-user
	// file is read if present.
	ConfigPath string

	// LogLevel overrides the configured level.
	LogLevel string

	// LogOutput receives log lines; nil discards them.
	LogOutput io.Writer

	// FS reads config, keymap and script files. Nil uses the OS.
	FS loader.FileSystem

	// Environ replaces os.Environ for MATHMARK_* overrides.
	Environ func() []string

	// Path is the file to edit. It is created on the first save if it
	// does not exist.
	Path string

	// Content is the initial document when Path is empty.
	Content string
}

// New creates an application with the given options.
func New(opts Options) (*Application, error) {
	app := &Application{opts: opts, logger: logging.Null()}
	if err := newBootstrapper(app).bootstrap(); err != nil {
		return nil, err
	}
	return app, nil
}

// Config returns the effective configuration.
func (app *Application) Config() *config.Config {
	return app.config
}

// ConfigLayers returns the configuration sources, lowest priority first.
func (app *Application) ConfigLayers() *layer.Manager {
	return app.layers
}

// Logger returns the application logger.
func (app *Application) Logger() *logging.Logger {
	return app.logger
}

// Editor returns the editing session.
func (app *Application) Editor() *engine.Editor {
	return app.editor
}

// Dispatcher returns the key dispatcher.
func (app *Application) Dispatcher() *dispatcher.Dispatcher {
	return app.dispatcher
}

// Keymaps returns the keymap registry.
func (app *Application) Keymaps() *keymap.Registry {
	return app.keymaps
}

// Shutdown releases every component. It is safe to call more than once.
func (app *Application) Shutdown() {
	app.mu.Lock()
	closers := app.closers
	app.closers = nil
	app.mu.Unlock()

	for i := len(closers) - 1; i >= 0; i-- {
		if err := closers[i].Close(); err != nil {
			app.logger.Warn("shutdown: %v", err)
		}
	}
}

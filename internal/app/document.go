package app

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
)

// openDocument reads path as the initial content. A missing file starts
// an empty document that Save will create.
func (app *Application) openDocument(path string) (string, error) {
	data, err := app.readFile(path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return "", &FileError{Op: "open", Path: path, Err: err}
	}
	app.path = path
	app.logger.Info("opened %s (%d bytes)", path, len(data))
	return string(data), nil
}

func (app *Application) readFile(path string) ([]byte, error) {
	if app.opts.FS != nil {
		return app.opts.FS.ReadFile(path)
	}
	return os.ReadFile(path)
}

// Save writes the document back to its file.
func (app *Application) Save() error {
	app.mu.Lock()
	path := app.path
	app.mu.Unlock()
	if path == "" {
		return ErrNoFilePath
	}

	content := app.editor.Content()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return &FileError{Op: "save", Path: path, Err: err}
	}
	app.setModified(false)
	app.logger.Info("saved %s (%d bytes)", path, len(content))
	return nil
}

// Path returns the open file, or "".
func (app *Application) Path() string {
	app.mu.Lock()
	defer app.mu.Unlock()
	return app.path
}

// Modified reports whether the document changed since it was opened or
// saved.
func (app *Application) Modified() bool {
	app.mu.Lock()
	defer app.mu.Unlock()
	return app.modified
}

func (app *Application) setModified(m bool) {
	app.mu.Lock()
	app.modified = m
	app.mu.Unlock()
}

func (app *Application) setMessage(msg string) {
	app.mu.Lock()
	app.message = msg
	app.mu.Unlock()
}

// name is the file name shown in the status line.
func (app *Application) name() string {
	if p := app.Path(); p != "" {
		return filepath.Base(p)
	}
	return ""
}

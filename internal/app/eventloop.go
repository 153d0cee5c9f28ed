package app

import (
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/mathmark/internal/dispatcher"
	"github.com/dshills/mathmark/internal/input/key"
	"github.com/dshills/mathmark/internal/renderer"
)

// Keys handled by the host before the dispatcher sees them.
var (
	quitKey = key.NewRuneEvent('q', key.ModCtrl)
	saveKey = key.NewRuneEvent('s', key.ModCtrl)
)

// Run drives screen until the user quits. The screen must not be
// initialized yet; Run initializes and finalizes it.
func (app *Application) Run(screen tcell.Screen) error {
	if err := screen.Init(); err != nil {
		return &InitError{Component: "terminal", Err: err}
	}
	defer screen.Fini()
	screen.EnablePaste()

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(signals)
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-signals:
			_ = screen.PostEvent(tcell.NewEventInterrupt(ErrQuit))
		case <-done:
		}
	}()

	view := renderer.New(screen)
	app.render(view)
	for {
		ev := screen.PollEvent()
		if ev == nil {
			return nil
		}
		if err := app.HandleEvent(ev); err != nil {
			if errors.Is(err, ErrQuit) {
				return nil
			}
			return err
		}
		app.render(view)
	}
}

// HandleEvent processes one terminal event. It returns ErrQuit when the
// session should end.
func (app *Application) HandleEvent(ev tcell.Event) error {
	switch e := ev.(type) {
	case *tcell.EventKey:
		return app.handleKey(e)
	case *tcell.EventInterrupt:
		if err, ok := e.Data().(error); ok {
			return err
		}
	}
	return nil
}

func (app *Application) handleKey(ev *tcell.EventKey) error {
	k, ok := key.FromTcell(ev)
	if !ok {
		return nil
	}
	app.setMessage("")

	switch {
	case k.Equals(quitKey):
		return ErrQuit
	case k.Equals(saveKey):
		if err := app.Save(); err != nil {
			app.setMessage(err.Error())
		} else {
			app.setMessage("saved")
		}
		return nil
	}

	r := app.dispatcher.Handle(k)
	switch {
	case r.Err != nil && !dispatcher.IsNothingToDo(r.Err):
		app.setMessage(r.Action + ": " + r.Err.Error())
	case r.Err != nil:
		app.setMessage(r.Err.Error())
	}
	return nil
}

func (app *Application) render(view *renderer.Renderer) {
	state := app.editor.State()
	app.mu.Lock()
	status := renderer.StatusLine{
		Modified: app.modified,
		Context:  state.Cursor.Context,
		Message:  app.message,
	}
	app.mu.Unlock()
	status.File = app.name()
	view.Render(app.editor.Document(), state.Cursor.Index(), status)
}

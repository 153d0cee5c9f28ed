package app

import (
	"fmt"

	"github.com/dshills/mathmark/internal/command"
	"github.com/dshills/mathmark/internal/config"
	"github.com/dshills/mathmark/internal/config/loader"
	"github.com/dshills/mathmark/internal/dispatcher"
	"github.com/dshills/mathmark/internal/engine"
	"github.com/dshills/mathmark/internal/input/keymap"
	"github.com/dshills/mathmark/internal/logging"
	luaplugin "github.com/dshills/mathmark/internal/plugin/lua"
)

// bootstrapper starts components in dependency order and releases the
// started ones when a later step fails.
type bootstrapper struct {
	app  *Application
	opts Options
	fs   loader.FileSystem
}

func newBootstrapper(app *Application) *bootstrapper {
	fs := app.opts.FS
	if fs == nil {
		fs = loader.DefaultFS()
	}
	return &bootstrapper{app: app, opts: app.opts, fs: fs}
}

func (b *bootstrapper) bootstrap() error {
	steps := []struct {
		name string
		fn   func() error
	}{
		{"config", b.initConfig},
		{"logging", b.initLogging},
		{"commands", b.initCommands},
		{"keymaps", b.initKeymaps},
		{"editor", b.initEditor},
		{"dispatcher", b.initDispatcher},
	}
	for _, step := range steps {
		if err := step.fn(); err != nil {
			b.app.Shutdown()
			return &InitError{Component: step.name, Err: err}
		}
	}
	b.app.logger.Info("session %s started", b.app.editor.ID())
	return nil
}

func (b *bootstrapper) initConfig() error {
	opts := []config.Option{config.WithFS(b.fs)}
	if b.opts.ConfigPath != "" {
		opts = append(opts, config.WithFile(b.opts.ConfigPath))
	} else if path := config.DefaultPath(); path != "" {
		opts = append(opts, config.WithOptionalFile(path))
	}
	if b.opts.Environ != nil {
		opts = append(opts, config.WithEnviron(b.opts.Environ))
	}
	if b.opts.LogLevel != "" {
		opts = append(opts, config.WithOverride("logging.level", b.opts.LogLevel))
	}

	l := config.NewLoader(opts...)
	cfg, err := l.Load()
	if err != nil {
		return err
	}
	b.app.config = cfg
	b.app.layers = l.Layers()
	return nil
}

func (b *bootstrapper) initLogging() error {
	if b.opts.LogOutput == nil {
		return nil
	}
	b.app.logger = logging.New(logging.Config{
		Level:  b.app.config.LogLevel(),
		Output: b.opts.LogOutput,
	})
	return nil
}

func (b *bootstrapper) initCommands() error {
	r, err := command.NewDefaultRegistry(b.app.config.CommandDefaults())
	if err != nil {
		return err
	}
	b.app.commands = r
	return nil
}

func (b *bootstrapper) initKeymaps() error {
	cfg := b.app.config.Keymap
	r := keymap.NewRegistry()

	if cfg.Conditions == config.ConditionsLua {
		ev := luaplugin.NewEvaluator()
		b.app.closers = append(b.app.closers, ev)
		if cfg.Script != "" {
			code, err := b.fs.ReadFile(cfg.Script)
			if err != nil {
				return fmt.Errorf("reading condition script: %w", err)
			}
			if err := ev.LoadScript(string(code)); err != nil {
				return err
			}
		}
		r.SetConditionEvaluator(ev)
	}

	if cfg.Defaults {
		if err := keymap.LoadDefaults(r); err != nil {
			return err
		}
	}
	if err := keymap.NewLoader(b.fs).LoadAndRegister(r, cfg.Files); err != nil {
		return err
	}
	for _, name := range r.Names() {
		if km := r.Get(name); km != nil {
			b.app.logger.Debug("keymap %q: %d bindings from %s", name, len(km.Bindings), km.Source)
		}
	}
	b.app.keymaps = r
	return nil
}

func (b *bootstrapper) initEditor() error {
	content := b.opts.Content
	if b.opts.Path != "" {
		var err error
		if content, err = b.app.openDocument(b.opts.Path); err != nil {
			return err
		}
	}
	opts := append(b.app.config.EngineOptions(),
		engine.WithContent(content),
		engine.WithLogger(b.app.logger),
		engine.WithListener(engine.ListenerFuncs{
			OnContent: func(string, int, int) { b.app.setModified(true) },
		}),
	)
	b.app.editor = engine.NewEditor(b.app.commands, opts...)
	return nil
}

func (b *bootstrapper) initDispatcher() error {
	b.app.dispatcher = dispatcher.New(b.app.editor,
		dispatcher.WithKeymaps(b.app.keymaps),
		dispatcher.WithConfig(dispatcher.DefaultConfig().WithMetrics()),
		dispatcher.WithLogger(b.app.logger),
	)
	return nil
}

package dispatcher

import (
	"errors"
	"fmt"
	"runtime"
	"time"

	"github.com/dshills/mathmark/internal/command"
	"github.com/dshills/mathmark/internal/engine"
	"github.com/dshills/mathmark/internal/input/key"
	"github.com/dshills/mathmark/internal/input/keymap"
	"github.com/dshills/mathmark/internal/logging"
)

// Dispatcher turns key events into editor operations.
//
// A key is offered, in order, to the keymap bindings whose condition holds,
// to the command shortcuts whose guard holds, to the built-in navigation,
// history and editing keys, and finally, if it types a character, inserted
// as text.
type Dispatcher struct {
	editor    *engine.Editor
	keymaps   *keymap.Registry
	shortcuts []shortcut
	config    Config
	logger    *logging.Logger
	metrics   *Metrics
}

type shortcut struct {
	command.BoundShortcut
	event key.Event
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithKeymaps consults r before command shortcuts.
func WithKeymaps(r *keymap.Registry) Option {
	return func(d *Dispatcher) {
		d.keymaps = r
	}
}

// WithConfig sets the configuration.
func WithConfig(c Config) Option {
	return func(d *Dispatcher) {
		d.config = c
	}
}

// WithLogger sets the logger.
func WithLogger(l *logging.Logger) Option {
	return func(d *Dispatcher) {
		if l != nil {
			d.logger = l
		}
	}
}

// New creates a dispatcher driving editor. Command shortcuts come from the
// editor's registry; shortcuts with unparsable keys are logged and
// dropped.
func New(editor *engine.Editor, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		editor: editor,
		config: DefaultConfig(),
		logger: logging.Null(),
	}
	for _, opt := range opts {
		opt(d)
	}
	d.logger = d.logger.WithComponent("dispatcher")
	if d.config.EnableMetrics {
		d.metrics = NewMetrics()
	}

	for _, bs := range editor.Registry().Shortcuts() {
		ev, err := key.Parse(bs.Keys)
		if err != nil {
			d.logger.Warn("dropping shortcut %q of %s: %v", bs.Keys, bs.Command, err)
			continue
		}
		d.shortcuts = append(d.shortcuts, shortcut{BoundShortcut: bs, event: ev})
	}
	return d
}

// Metrics returns the collector, or nil when metrics are disabled.
func (d *Dispatcher) Metrics() *Metrics {
	return d.metrics
}

// HandleKey handles ev and reports whether it was consumed.
func (d *Dispatcher) HandleKey(ev key.Event) bool {
	return d.Handle(ev).Handled()
}

// Handle handles ev and describes what happened.
func (d *Dispatcher) Handle(ev key.Event) Result {
	start := time.Now()
	r := d.handle(ev)
	if r.Handled() {
		if r.Err != nil {
			d.logger.Debug("%s via %s: %v", ev, r.Source, r.Err)
		} else {
			d.logger.Debug("%s -> %s (%s)", ev, r.Action, r.Source)
		}
		if d.metrics != nil {
			d.metrics.Record(r, time.Since(start))
		}
	}
	return r
}

func (d *Dispatcher) handle(ev key.Event) Result {
	ctx := d.editor.CommandContext()

	if r, ok := d.fromKeymaps(ev, ctx); ok {
		return r
	}

	for _, s := range d.shortcuts {
		if !s.event.Equals(ev) || !s.Matches(ctx) {
			continue
		}
		args, opts := s.Arguments(ctx)
		return Result{Source: SourceShortcut, Action: s.Command, Err: d.execute(s.Command, args, opts)}
	}

	if r, ok := d.builtin(ev); ok {
		return r
	}

	if d.config.InsertText && ev.IsText() {
		d.editor.InsertText(string(ev.Rune))
		return Result{Source: SourceText, Action: "insert"}
	}
	return Result{}
}

func (d *Dispatcher) fromKeymaps(ev key.Event, ctx command.Context) (Result, bool) {
	if d.keymaps == nil {
		return Result{}, false
	}
	matches, err := d.keymaps.Lookup(ev, ctx)
	if err != nil {
		d.logger.Warn("evaluating bindings for %s: %v", ev, err)
	}
	for _, m := range matches {
		if !d.editor.Registry().Resolvable(m.Command) {
			d.logger.Warn("skipping binding %s in keymap %q: %v", m.Keys, m.Keymap.Name, fmt.Errorf("%w: %s", ErrUnknownCommand, m.Command))
			continue
		}
		return Result{Source: SourceKeymap, Action: m.Command, Err: d.execute(m.Command, m.Args, m.Options())}, true
	}
	return Result{}, false
}

func (d *Dispatcher) builtin(ev key.Event) (Result, bool) {
	r := Result{Source: SourceBuiltin}
	switch {
	case ev.Equals(key.NewSpecialEvent(key.KeyTab, key.ModNone)):
		r.Action = "tab.next"
		d.editor.NextTabStop(true)
	case ev.Equals(key.NewSpecialEvent(key.KeyTab, key.ModShift)):
		r.Action = "tab.prev"
		d.editor.NextTabStop(false)
	case ev.Equals(key.NewSpecialEvent(key.KeyRight, key.ModNone)):
		r.Action = "cursor.next"
		d.editor.MoveCursor(true)
	case ev.Equals(key.NewSpecialEvent(key.KeyLeft, key.ModNone)):
		r.Action = "cursor.prev"
		d.editor.MoveCursor(false)
	case ev.Equals(key.NewRuneEvent('z', key.ModCtrl)):
		r.Action = "undo"
		r.Err = d.editor.Undo()
	case ev.Equals(key.NewRuneEvent('y', key.ModCtrl)):
		r.Action = "redo"
		r.Err = d.editor.Redo()
	case ev.Equals(key.NewSpecialEvent(key.KeyBackspace, key.ModNone)):
		r.Action = "delete.backward"
		d.editor.DeleteBackward()
	default:
		return Result{}, false
	}
	return r, true
}

// execute runs a command, recovering panics when configured to.
func (d *Dispatcher) execute(name string, args []string, opts command.Options) (err error) {
	if d.config.RecoverFromPanic {
		defer func() {
			if p := recover(); p != nil {
				stack := make([]byte, 4096)
				n := runtime.Stack(stack, false)
				err = fmt.Errorf("%w: %s: %v", ErrPanic, name, p)
				d.logger.Error("%v\n%s", err, stack[:n])
				if d.metrics != nil {
					d.metrics.RecordPanic()
				}
			}
		}()
	}
	d.editor.Execute(name, args, opts)
	return nil
}

// Binding describes one active key binding for help output.
type Binding struct {
	Keys        string
	Command     string
	Description string
	Source      Source
}

// Bindings lists keymap bindings followed by command shortcuts.
func (d *Dispatcher) Bindings() []Binding {
	var out []Binding
	if d.keymaps != nil {
		for _, b := range d.keymaps.Bindings() {
			out = append(out, Binding{Keys: b.Keys, Command: b.Command, Description: b.Description, Source: SourceKeymap})
		}
	}
	for _, s := range d.shortcuts {
		out = append(out, Binding{Keys: s.event.String(), Command: s.Command, Description: s.Description, Source: SourceShortcut})
	}
	return out
}

// IsNothingToDo reports whether err only signals an empty undo or redo
// stack.
func IsNothingToDo(err error) bool {
	return errors.Is(err, engine.ErrNothingToUndo) || errors.Is(err, engine.ErrNothingToRedo)
}

package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/dshills/mathmark/internal/command"
	"github.com/dshills/mathmark/internal/config/layer"
	"github.com/dshills/mathmark/internal/config/loader"
	"github.com/dshills/mathmark/internal/engine"
	"github.com/dshills/mathmark/internal/logging"
)

// EnvPrefix is the prefix of environment overrides.
const EnvPrefix = "MATHMARK_"

// Condition evaluators for keymap "when" clauses.
const (
	ConditionsBuiltin = "builtin"
	ConditionsLua     = "lua"
)

// Config holds all settings.
type Config struct {
	Logging  Logging  `toml:"logging"`
	Editor   Editor   `toml:"editor"`
	Commands Commands `toml:"commands"`
	Keymap   Keymap   `toml:"keymap"`
}

// Logging configures the logger.
type Logging struct {
	Level string `toml:"level"`
}

// Editor configures the editing state machine.
type Editor struct {
	HistoryLimit          int  `toml:"history_limit"`
	NormalizeAdjacentMath bool `toml:"normalize_adjacent_math"`
}

// Commands configures the built-in commands. Zero values use the command
// defaults.
type Commands struct {
	DefaultMatrixRows int    `toml:"default_matrix_rows"`
	DefaultMatrixCols int    `toml:"default_matrix_cols"`
	MatrixEnvironment string `toml:"matrix_environment"`
	DefaultColor      string `toml:"default_color"`
}

// Keymap configures user key bindings.
type Keymap struct {
	// Defaults loads the built-in default keymap.
	Defaults bool `toml:"defaults"`

	// Files are YAML or JSON keymap files.
	Files []string `toml:"files"`

	// Conditions selects the evaluator for "when" clauses.
	Conditions string `toml:"conditions"`

	// Script is a Lua file loaded before evaluating conditions.
	Script string `toml:"script"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Logging: Logging{Level: "info"},
		Editor: Editor{
			HistoryLimit:          engine.DefaultHistoryLimit,
			NormalizeAdjacentMath: true,
		},
		Commands: Commands{
			DefaultMatrixRows: command.DefaultMatrixRows,
			DefaultMatrixCols: command.DefaultMatrixCols,
			MatrixEnvironment: command.DefaultMatrixEnvironment,
			DefaultColor:      command.DefaultColor,
		},
		Keymap: Keymap{
			Defaults:   true,
			Conditions: ConditionsBuiltin,
		},
	}
}

// envMapping maps the documented variables to settings. Other MATHMARK_*
// variables are mapped by name.
var envMapping = map[string]loader.EnvVar{
	"MATHMARK_LOG_LEVEL":               {Path: "logging.level", Kind: loader.KindString},
	"MATHMARK_HISTORY_LIMIT":           {Path: "editor.history_limit", Kind: loader.KindInt},
	"MATHMARK_NORMALIZE_ADJACENT_MATH": {Path: "editor.normalize_adjacent_math", Kind: loader.KindBool},
	"MATHMARK_MATRIX_ROWS":             {Path: "commands.default_matrix_rows", Kind: loader.KindInt},
	"MATHMARK_MATRIX_COLS":             {Path: "commands.default_matrix_cols", Kind: loader.KindInt},
	"MATHMARK_MATRIX_ENVIRONMENT":      {Path: "commands.matrix_environment", Kind: loader.KindString},
	"MATHMARK_COLOR":                   {Path: "commands.default_color", Kind: loader.KindString},
	"MATHMARK_KEYMAPS":                 {Path: "keymap.files", Kind: loader.KindList},
	"MATHMARK_CONDITIONS":              {Path: "keymap.conditions", Kind: loader.KindString},
}

// Loader assembles a Config from defaults, a file, the environment and
// overrides.
type Loader struct {
	fs        loader.FileSystem
	file      string
	required  bool
	environ   func() []string
	overrides map[string]any
	layers    *layer.Manager
}

// Option configures a Loader.
type Option func(*Loader)

// WithFS reads files from fsys.
func WithFS(fsys loader.FileSystem) Option {
	return func(l *Loader) {
		l.fs = fsys
	}
}

// WithFile reads path, which must exist.
func WithFile(path string) Option {
	return func(l *Loader) {
		l.file, l.required = path, true
	}
}

// WithOptionalFile reads path if it exists.
func WithOptionalFile(path string) Option {
	return func(l *Loader) {
		l.file, l.required = path, false
	}
}

// WithEnviron replaces os.Environ. A nil function disables environment
// overrides.
func WithEnviron(environ func() []string) Option {
	return func(l *Loader) {
		l.environ = environ
	}
}

// WithOverride sets path to value above every other source.
func WithOverride(path string, value any) Option {
	return func(l *Loader) {
		if l.overrides == nil {
			l.overrides = make(map[string]any)
		}
		loader.SetByPath(l.overrides, path, value)
	}
}

// NewLoader creates a loader.
func NewLoader(opts ...Option) *Loader {
	l := &Loader{
		fs:      loader.DefaultFS(),
		environ: os.Environ,
		layers:  layer.NewManager(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load is shorthand for NewLoader(opts...).Load().
func Load(opts ...Option) (*Config, error) {
	return NewLoader(opts...).Load()
}

// Layers returns the layers of the last Load.
func (l *Loader) Layers() *layer.Manager {
	return l.layers
}

// Load reads every source, merges them and validates the result.
func (l *Loader) Load() (*Config, error) {
	defaults, err := toMap(Default())
	if err != nil {
		return nil, err
	}
	l.layers.Add(layer.New(layer.SourceBuiltin, defaults))

	if l.file != "" {
		if l.required {
			if _, err := l.fs.Stat(l.file); errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("%w: %s", ErrFileNotFound, l.file)
			}
		}
		data, err := loader.NewTOMLLoaderWithFS(l.fs, l.file).Load()
		if err != nil {
			return nil, err
		}
		if data != nil {
			fl := layer.New(layer.SourceFile, data)
			fl.Path = l.file
			l.layers.Add(fl)
		}
	}

	if l.environ != nil {
		data, err := loader.NewEnvLoader(EnvPrefix, envMapping).WithEnviron(l.environ).Load()
		if err != nil {
			return nil, err
		}
		l.layers.Add(layer.New(layer.SourceEnv, data))
	}

	if len(l.overrides) > 0 {
		l.layers.Add(layer.New(layer.SourceArgs, l.overrides))
	}

	cfg, err := fromMap(l.layers.Merge())
	if err != nil {
		return nil, err
	}
	cfg.resolvePaths(l.baseDir())
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// baseDir is the directory relative keymap paths are resolved against.
func (l *Loader) baseDir() string {
	for _, ly := range l.layers.Layers() {
		if ly.Source == layer.SourceFile {
			return filepath.Dir(ly.Path)
		}
	}
	return ""
}

func (c *Config) resolvePaths(dir string) {
	if dir == "" {
		return
	}
	for i, f := range c.Keymap.Files {
		if !filepath.IsAbs(f) {
			c.Keymap.Files[i] = filepath.Join(dir, f)
		}
	}
	if c.Keymap.Script != "" && !filepath.IsAbs(c.Keymap.Script) {
		c.Keymap.Script = filepath.Join(dir, c.Keymap.Script)
	}
}

// toMap converts a Config to the nested map form used by layers.
func toMap(c *Config) (map[string]any, error) {
	data, err := toml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("encoding defaults: %w", err)
	}
	var m map[string]any
	if err := toml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("decoding defaults: %w", err)
	}
	return m, nil
}

// fromMap decodes merged settings. Unknown settings are rejected.
func fromMap(m map[string]any) (*Config, error) {
	data, err := toml.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	var cfg Config
	dec := toml.NewDecoder(bytes.NewReader(data)).DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return nil, fmt.Errorf("%w: unknown settings:\n%s", ErrInvalidConfig, strict.String())
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return &cfg, nil
}

// Validate reports every invalid setting.
func (c *Config) Validate() error {
	var errs []error
	bad := func(path, msg string, v any) {
		errs = append(errs, &ValidationError{Path: path, Message: msg, Value: v})
	}

	if _, err := logging.ParseLevel(c.Logging.Level); err != nil {
		bad("logging.level", "must be debug, info, warn or error", c.Logging.Level)
	}
	if c.Editor.HistoryLimit <= 0 {
		bad("editor.history_limit", "must be positive", c.Editor.HistoryLimit)
	}
	if n := c.Commands.DefaultMatrixRows; n < 0 || n > command.MaxMatrixSize {
		bad("commands.default_matrix_rows", fmt.Sprintf("must be between 0 and %d", command.MaxMatrixSize), n)
	}
	if n := c.Commands.DefaultMatrixCols; n < 0 || n > command.MaxMatrixSize {
		bad("commands.default_matrix_cols", fmt.Sprintf("must be between 0 and %d", command.MaxMatrixSize), n)
	}
	if c.Commands.DefaultColor != "" {
		if _, err := command.ParseColor(c.Commands.DefaultColor); err != nil {
			bad("commands.default_color", err.Error(), c.Commands.DefaultColor)
		}
	}
	switch c.Keymap.Conditions {
	case ConditionsBuiltin:
		if c.Keymap.Script != "" {
			bad("keymap.script", `requires conditions = "lua"`, c.Keymap.Script)
		}
	case ConditionsLua:
	default:
		bad("keymap.conditions", `must be "builtin" or "lua"`, c.Keymap.Conditions)
	}
	return errors.Join(errs...)
}

// LogLevel returns the parsed logging level.
func (c *Config) LogLevel() logging.Level {
	level, _ := logging.ParseLevel(c.Logging.Level)
	return level
}

// CommandDefaults returns the settings for command.Builtin.
func (c *Config) CommandDefaults() command.Defaults {
	return command.Defaults{
		MatrixRows:        c.Commands.DefaultMatrixRows,
		MatrixCols:        c.Commands.DefaultMatrixCols,
		MatrixEnvironment: c.Commands.MatrixEnvironment,
		Color:             c.Commands.DefaultColor,
	}
}

// EngineOptions returns the editor options for the settings.
func (c *Config) EngineOptions() []engine.Option {
	return []engine.Option{
		engine.WithHistoryLimit(c.Editor.HistoryLimit),
		engine.WithNormalization(c.Editor.NormalizeAdjacentMath),
	}
}

// Encode writes c as TOML.
func (c *Config) Encode() ([]byte, error) {
	var buf bytes.Buffer
	enc := toml.NewEncoder(&buf).SetIndentTables(true)
	if err := enc.Encode(c); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// DefaultPath returns the per-user config file location, or "" when the
// user config directory is unknown.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "mathmark", "config.toml")
}

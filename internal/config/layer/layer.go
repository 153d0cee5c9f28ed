// Package layer stacks configuration maps by priority.
//
// Each source (built-in defaults, the config file, the environment,
// command-line flags) becomes a Layer. The Manager merges layers from the
// lowest priority up, so a flag beats an environment variable, which beats
// the file, which beats the defaults.
package layer

// Layer is one configuration source.
type Layer struct {
	// Name identifies the layer in diagnostics ("defaults", "file").
	Name string

	// Priority determines merge order; higher overrides lower.
	Priority int

	Source Source

	// Path is the file the layer was read from, if any.
	Path string

	// Data holds the settings as a nested map.
	Data map[string]any
}

// New creates a layer for source with the standard name and priority.
func New(source Source, data map[string]any) *Layer {
	if data == nil {
		data = make(map[string]any)
	}
	return &Layer{
		Name:     source.String(),
		Priority: source.Priority(),
		Source:   source,
		Data:     data,
	}
}

// Clone returns a deep copy of the layer.
func (l *Layer) Clone() *Layer {
	c := *l
	c.Data = cloneMap(l.Data)
	return &c
}

// Source tells where a layer came from.
type Source uint8

const (
	// SourceBuiltin holds the compiled-in defaults.
	SourceBuiltin Source = iota
	// SourceFile is a TOML config file.
	SourceFile
	// SourceEnv holds MATHMARK_* environment variables.
	SourceEnv
	// SourceArgs holds command-line flag overrides.
	SourceArgs
)

// Standard priorities.
const (
	PriorityBuiltin = 0
	PriorityFile    = 100
	PriorityEnv     = 500
	PriorityArgs    = 600
)

// String returns the standard layer name.
func (s Source) String() string {
	switch s {
	case SourceBuiltin:
		return "defaults"
	case SourceFile:
		return "file"
	case SourceEnv:
		return "environment"
	case SourceArgs:
		return "arguments"
	default:
		return "unknown"
	}
}

// Priority returns the standard priority of s.
func (s Source) Priority() int {
	switch s {
	case SourceFile:
		return PriorityFile
	case SourceEnv:
		return PriorityEnv
	case SourceArgs:
		return PriorityArgs
	default:
		return PriorityBuiltin
	}
}

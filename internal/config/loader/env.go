package loader

import (
	"os"
	"strconv"
	"strings"
)

// Kind is the type an environment value is converted to.
type Kind uint8

const (
	// KindString keeps the raw value.
	KindString Kind = iota
	// KindInt parses a decimal integer.
	KindInt
	// KindBool accepts true/false, yes/no, on/off and 1/0.
	KindBool
	// KindList splits on commas.
	KindList
)

// EnvVar maps one environment variable to a setting path.
type EnvVar struct {
	Path string
	Kind Kind
}

// EnvLoader loads settings from environment variables.
//
// Mapped variables are converted to their declared kind. Other variables
// carrying the prefix are mapped by name, MATHMARK_EDITOR_HISTORY_LIMIT
// becoming editor.history_limit, and their type is guessed.
type EnvLoader struct {
	prefix  string
	mapping map[string]EnvVar
	lookup  func() []string
}

// NewEnvLoader creates a loader for variables starting with prefix, which
// should include the trailing underscore.
func NewEnvLoader(prefix string, mapping map[string]EnvVar) *EnvLoader {
	return &EnvLoader{prefix: prefix, mapping: mapping, lookup: os.Environ}
}

// WithEnviron replaces os.Environ as the variable source.
func (l *EnvLoader) WithEnviron(environ func() []string) *EnvLoader {
	l.lookup = environ
	return l
}

// Load reads the environment. Unparsable values of mapped variables are
// kept as strings so that validation reports them.
func (l *EnvLoader) Load() (map[string]any, error) {
	out := make(map[string]any)
	for _, kv := range l.lookup() {
		name, value, ok := strings.Cut(kv, "=")
		if !ok || !strings.HasPrefix(name, l.prefix) {
			continue
		}
		if v, mapped := l.mapping[name]; mapped {
			SetByPath(out, v.Path, convert(value, v.Kind))
			continue
		}
		SetByPath(out, l.envToPath(name), guess(value))
	}
	return out, nil
}

// envToPath converts MATHMARK_EDITOR_HISTORY_LIMIT to editor.history_limit.
func (l *EnvLoader) envToPath(name string) string {
	name = strings.ToLower(strings.TrimPrefix(name, l.prefix))
	section, setting, ok := strings.Cut(name, "_")
	if !ok {
		return section
	}
	return section + "." + setting
}

func convert(s string, k Kind) any {
	switch k {
	case KindInt:
		if i, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64); err == nil {
			return i
		}
	case KindBool:
		if b, ok := parseBool(s); ok {
			return b
		}
	case KindList:
		var items []any
		for _, item := range strings.Split(s, ",") {
			if item = strings.TrimSpace(item); item != "" {
				items = append(items, item)
			}
		}
		return items
	}
	return s
}

func guess(s string) any {
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	if b, ok := parseBool(s); ok {
		return b
	}
	return s
}

func parseBool(s string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "yes", "on", "1":
		return true, true
	case "false", "no", "off", "0":
		return false, true
	}
	return false, false
}

// SetByPath sets a value in a nested map using a dot-separated path,
// creating intermediate maps as needed.
func SetByPath(data map[string]any, path string, value any) {
	parts := strings.Split(path, ".")
	current := data
	for _, part := range parts[:len(parts)-1] {
		next, ok := current[part].(map[string]any)
		if !ok {
			next = make(map[string]any)
			current[part] = next
		}
		current = next
	}
	current[parts[len(parts)-1]] = value
}

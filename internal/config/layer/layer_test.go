package layer

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestManagerMerge(t *testing.T) {
	m := NewManager()
	m.Add(New(SourceEnv, map[string]any{
		"editor": map[string]any{"history_limit": 20},
	}))
	m.Add(New(SourceBuiltin, map[string]any{
		"editor":  map[string]any{"history_limit": 50, "normalize": true},
		"logging": map[string]any{"level": "info"},
	}))
	file := New(SourceFile, map[string]any{
		"editor":  map[string]any{"history_limit": 10},
		"logging": map[string]any{"level": "warn"},
		"keymap":  map[string]any{"files": []any{"a.yaml"}},
	})
	file.Path = "/c.toml"
	m.Add(file)

	want := map[string]any{
		"editor":  map[string]any{"history_limit": 20, "normalize": true},
		"logging": map[string]any{"level": "warn"},
		"keymap":  map[string]any{"files": []any{"a.yaml"}},
	}
	got := m.Merge()
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Merge mismatch (-want +got):\n%s", diff)
	}

	// The merge result is a copy.
	got["logging"].(map[string]any)["level"] = "error"
	got["keymap"].(map[string]any)["files"].([]any)[0] = "z.yaml"
	if diff := cmp.Diff(want, m.Merge()); diff != "" {
		t.Errorf("Merge after mutation mismatch (-want +got):\n%s", diff)
	}
	if v, _ := GetByPath(file.Data, "keymap.files"); v.([]any)[0] != "a.yaml" {
		t.Errorf("layer data mutated: %v", v)
	}

	var names []string
	for _, l := range m.Layers() {
		names = append(names, l.Name)
	}
	if diff := cmp.Diff([]string{"defaults", "file", "environment"}, names); diff != "" {
		t.Errorf("layer order mismatch (-want +got):\n%s", diff)
	}
}

func TestManagerGet(t *testing.T) {
	m := NewManager()
	m.Add(New(SourceBuiltin, map[string]any{"logging": map[string]any{"level": "info"}}))
	m.Add(New(SourceArgs, map[string]any{"logging": map[string]any{"level": "debug"}}))

	v, l, ok := m.Get("logging.level")
	if !ok || v != "debug" || l.Source != SourceArgs {
		t.Errorf("Get = %v, %v, %v", v, l, ok)
	}
	if got := m.WhichLayer("logging.level"); got != "arguments" {
		t.Errorf("WhichLayer = %q", got)
	}
	if got := m.WhichLayer("logging.missing"); got != "" {
		t.Errorf("WhichLayer(missing) = %q", got)
	}

	// Adding a layer with an existing name replaces it.
	m.Add(New(SourceArgs, map[string]any{}))
	if got := m.WhichLayer("logging.level"); got != "defaults" {
		t.Errorf("WhichLayer after replace = %q", got)
	}
	if n := len(m.Layers()); n != 2 {
		t.Errorf("%d layers, want 2", n)
	}
}

func TestGetByPath(t *testing.T) {
	data := map[string]any{"a": map[string]any{"b": map[string]any{"c": 1}, "s": "x"}}
	tests := []struct {
		path string
		want any
		ok   bool
	}{
		{"a.b.c", 1, true},
		{"a.s", "x", true},
		{"a.s.t", nil, false},
		{"a.z", nil, false},
		{"", nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, ok := GetByPath(data, tt.path)
			if ok != tt.ok || got != tt.want {
				t.Errorf("GetByPath(%q) = %v, %v; want %v, %v", tt.path, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestPaths(t *testing.T) {
	data := map[string]any{
		"editor":  map[string]any{"history_limit": 1, "normalize": true},
		"logging": map[string]any{"level": "info"},
		"top":     1,
	}
	want := []string{"editor.history_limit", "editor.normalize", "logging.level", "top"}
	if diff := cmp.Diff(want, Paths(data)); diff != "" {
		t.Errorf("Paths mismatch (-want +got):\n%s", diff)
	}
}

package keymap

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// FileReader reads keymap files.
type FileReader interface {
	ReadFile(name string) ([]byte, error)
}

type osReader struct{}

func (osReader) ReadFile(name string) ([]byte, error) {
	return os.ReadFile(name)
}

// Loader reads keymaps from YAML or JSON files.
type Loader struct {
	fs FileReader
}

// NewLoader creates a loader reading through fs. A nil fs reads from the
// operating system.
func NewLoader(fs FileReader) *Loader {
	if fs == nil {
		fs = osReader{}
	}
	return &Loader{fs: fs}
}

// LoadFile loads one keymap. The format follows the extension: .yaml and
// .yml are YAML, .json is JSON. A keymap without a name is named after the
// file.
func (l *Loader) LoadFile(path string) (*Keymap, error) {
	data, err := l.fs.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading keymap: %w", err)
	}
	km, err := Decode(data, filepath.Ext(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if km.Name == "" {
		km.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	if km.Source == "" {
		km.Source = path
	}
	return km, nil
}

// LoadAll loads every path. Files that fail are skipped and their errors
// joined.
func (l *Loader) LoadAll(paths []string) ([]*Keymap, error) {
	var (
		keymaps []*Keymap
		errs    []error
	)
	for _, path := range paths {
		km, err := l.LoadFile(path)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		keymaps = append(keymaps, km)
	}
	return keymaps, errors.Join(errs...)
}

// LoadAndRegister loads every path into r. It registers what it can and
// returns all errors.
func (l *Loader) LoadAndRegister(r *Registry, paths []string) error {
	keymaps, err := l.LoadAll(paths)
	errs := []error{err}
	for _, km := range keymaps {
		if err := r.Register(km); err != nil {
			errs = append(errs, fmt.Errorf("registering keymap %q: %w", km.Name, err))
		}
	}
	return errors.Join(errs...)
}

// Decode parses a keymap document. ext is a file extension selecting the
// format.
func Decode(data []byte, ext string) (*Keymap, error) {
	km := &Keymap{}
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(km); err != nil {
			return nil, fmt.Errorf("decoding keymap: %w", err)
		}
	case ".json":
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(km); err != nil {
			return nil, fmt.Errorf("decoding keymap: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
	return km, nil
}

// Encode renders km as YAML.
func Encode(km *Keymap) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(km); err != nil {
		return nil, fmt.Errorf("encoding keymap: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encoding keymap: %w", err)
	}
	return buf.Bytes(), nil
}

package keymap

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/dshills/mathmark/internal/command"
	"github.com/dshills/mathmark/internal/input/key"
)

// Registry holds the active keymaps and finds the bindings for a key
// event.
type Registry struct {
	mu        sync.RWMutex
	keymaps   map[string]*ParsedKeymap
	order     map[string]int
	next      int
	evaluator ConditionEvaluator
}

// NewRegistry creates an empty registry using the builtin condition
// evaluator.
func NewRegistry() *Registry {
	return &Registry{
		keymaps:   make(map[string]*ParsedKeymap),
		order:     make(map[string]int),
		evaluator: BuiltinEvaluator{},
	}
}

// SetConditionEvaluator replaces the condition evaluator.
func (r *Registry) SetConditionEvaluator(e ConditionEvaluator) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.evaluator = e
}

// Register parses km and adds it, replacing a keymap of the same name.
func (r *Registry) Register(km *Keymap) error {
	if km == nil {
		return ErrNilKeymap
	}
	parsed, err := km.Parse()
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.keymaps[km.Name] = parsed
	r.order[km.Name] = r.next
	r.next++
	return nil
}

// Unregister removes the named keymap.
func (r *Registry) Unregister(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.keymaps, name)
	delete(r.order, name)
}

// Get returns the named keymap, or nil.
func (r *Registry) Get(name string) *ParsedKeymap {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.keymaps[name]
}

// Names returns the registered keymap names in registration order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.keymaps))
	for name := range r.keymaps {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool { return r.order[names[i]] < r.order[names[j]] })
	return names
}

// Lookup returns the bindings for ev whose conditions hold in ctx, best
// first. Bindings whose condition fails to evaluate are left out and their
// errors joined into the returned error.
func (r *Registry) Lookup(ev key.Event, ctx command.Context) ([]Match, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var (
		matches []Match
		errs    []error
	)
	for name, km := range r.keymaps {
		for i := range km.Parsed {
			pb := &km.Parsed[i]
			if !pb.Event.Equals(ev) {
				continue
			}
			ok, err := r.evaluator.Evaluate(pb.When, ctx)
			if err != nil {
				errs = append(errs, fmt.Errorf("keymap %q binding %s: %w", name, pb.Keys, err))
				continue
			}
			if !ok {
				continue
			}
			m := Match{ParsedBinding: pb, Keymap: km.Keymap, keymap: r.order[name], index: i}
			m.calculateScore()
			matches = append(matches, m)
		}
	}
	sort.Slice(matches, func(i, j int) bool { return matches[i].less(matches[j]) })
	return matches, errors.Join(errs...)
}

// Bindings returns every registered binding in registration order.
func (r *Registry) Bindings() []Binding {
	var out []Binding
	for _, name := range r.Names() {
		if km := r.Get(name); km != nil {
			out = append(out, km.Bindings...)
		}
	}
	return out
}

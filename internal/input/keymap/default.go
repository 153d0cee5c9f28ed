package keymap

// Default returns bindings for commands that carry no shortcut of their
// own. Command shortcuts still apply after these.
func Default() *Keymap {
	return &Keymap{
		Name:   "default",
		Source: "default",
		Bindings: []Binding{
			{Keys: "Ctrl+B", Command: "mathbf", Description: "Bold the expression left of the cursor"},
			{Keys: "Alt+V", Command: "vec", When: "inMath", Description: "Vector arrow over the expression left of the cursor"},
			{Keys: "Alt+O", Command: "overline", When: "inMath", Description: "Overline the expression left of the cursor"},
			{Keys: "Alt+H", Command: "hat", When: "inMath", Description: "Hat over the expression left of the cursor"},
			{Keys: "Alt+T", Command: "text", When: "inMath", Description: "Upright text inside math"},
			{Keys: "Alt+P", Command: "pi", When: "inMath", Description: "Insert \\pi"},
			{Keys: "Alt+*", Command: "cdot", When: "inMath", Description: "Insert \\cdot"},
		},
	}
}

// LoadDefaults registers the default keymap into r.
func LoadDefaults(r *Registry) error {
	return r.Register(Default())
}

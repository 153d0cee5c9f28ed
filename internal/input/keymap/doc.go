// Package keymap binds key chords to commands.
//
// A Keymap is a named list of Bindings. Keymaps are loaded from YAML or
// JSON files:
//
//	name: user
//	priority: 1
//	bindings:
//	  - keys: Ctrl+T
//	    command: text
//	    when: "!inMath"
//	  - keys: Alt+2
//	    command: sqrt
//	    args: ["", "3"]
//	    cursor: 0
//
// A Registry holds the active keymaps. Lookup returns the bindings for an
// event whose `when` condition holds, ordered by keymap priority times 100
// plus binding priority, later registrations winning ties.
//
// Conditions are evaluated by BuiltinEvaluator unless the registry is given
// another ConditionEvaluator, such as the Lua one in plugin/lua.
package keymap

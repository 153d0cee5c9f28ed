// Package config loads mathmark settings.
//
// Configuration is organized in layers with higher layers overriding lower:
//
//	┌─────────────────────────────┐
//	│  4. Command Line Arguments  │  ← Highest priority
//	├─────────────────────────────┤
//	│  3. Environment Variables   │  ← MATHMARK_*
//	├─────────────────────────────┤
//	│  2. Config File             │  ← ~/.config/mathmark/config.toml
//	├─────────────────────────────┤
//	│  1. Built-in Defaults       │  ← Lowest priority
//	└─────────────────────────────┘
//
// A config file looks like:
//
//	[logging]
//	level = "debug"
//
//	[editor]
//	history_limit = 100
//	normalize_adjacent_math = true
//
//	[commands]
//	default_matrix_rows = 3
//	matrix_environment = "bmatrix"
//	default_color = "blue"
//
//	[keymap]
//	files = ["keys.yaml"]
//	conditions = "lua"
//	script = "conditions.lua"
//
// Relative keymap and script paths are resolved against the directory of
// the config file.
//
// # Sub-packages
//
//   - loader: TOML and environment variable sources
//   - layer: priority-ordered merging of sources
package config

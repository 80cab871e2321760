// Package config loads and validates transpose settings.
//
// Settings come from three places, later ones winning:
//
//  1. built-in defaults (Default)
//  2. a TOML or YAML file, chosen by extension
//  3. TRANSPOSE_* environment variables
//
// A file looks like:
//
//	[transpose]
//	surrogate_pairs = true
//	swap_lines = true
//
//	[messages]
//	end_of_file = "EOF"
//
//	[keymap]
//	"ctrl+t" = "editor.transpose"
//
//	[log]
//	level = "info"
//
//	[dispatcher]
//	max_repeat_count = 1000
//	read_only = false
//
//	[history]
//	max_entries = 1000
//
// Manager keeps the current Config and, when watching is enabled,
// reloads it whenever the file changes and tells subscribers.
package config

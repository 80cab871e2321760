package config

import (
	"errors"
	"sort"

	"github.com/dshills/transpose/internal/config/loader"
	"github.com/dshills/transpose/internal/dispatcher"
	"github.com/dshills/transpose/internal/engine/history"
	"github.com/dshills/transpose/internal/input/keymap"
	"github.com/dshills/transpose/internal/logging"
	"github.com/dshills/transpose/internal/transpose"
)

// EnvMapping maps environment variables to setting paths.
var EnvMapping = map[string]string{
	"TRANSPOSE_LOG_LEVEL":       "log.level",
	"TRANSPOSE_SURROGATE_PAIRS": "transpose.surrogate_pairs",
	"TRANSPOSE_SWAP_LINES":      "transpose.swap_lines",
	"TRANSPOSE_READ_ONLY":       "dispatcher.read_only",
}

// TransposeSettings controls the editing commands.
type TransposeSettings struct {
	// SurrogatePairs moves a surrogate pair as one character.
	SurrogatePairs bool
	// SwapLines swaps whole lines when transposing at column 0.
	SwapLines bool
}

// LogSettings controls logging.
type LogSettings struct {
	Level string
}

// DispatcherSettings controls command dispatch.
type DispatcherSettings struct {
	// MaxRepeatCount caps the repeat count of one command. Zero disables the cap.
	MaxRepeatCount int
	// ReadOnly refuses every editing command.
	ReadOnly bool
}

// HistorySettings controls undo.
type HistorySettings struct {
	// MaxEntries bounds the undo stack.
	MaxEntries int
}

// Config holds all settings.
type Config struct {
	Transpose  TransposeSettings
	Messages   map[string]string
	Keymap     map[string]string
	Log        LogSettings
	Dispatcher DispatcherSettings
	History    HistorySettings

	// Path is the file the settings were read from, if any.
	Path string
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Transpose: TransposeSettings{
			SurrogatePairs: true,
			SwapLines:      true,
		},
		Messages: map[string]string{},
		Keymap:   keymap.DefaultBindings(),
		Log:      LogSettings{Level: "info"},
		Dispatcher: DispatcherSettings{
			MaxRepeatCount: dispatcher.DefaultRepeatCap,
		},
		History: HistorySettings{MaxEntries: history.DefaultMaxEntries},
	}
}

// Load reads path (if non-empty) and the environment over the defaults
// and validates the result. A missing file is not an error.
func Load(path string) (*Config, error) {
	data := make(map[string]any)
	if path != "" {
		fileData, err := loader.LoadFile(path)
		if err != nil {
			return nil, err
		}
		loader.DeepMerge(data, fileData)
	}
	loader.DeepMerge(data, loader.NewEnvLoader(EnvMapping).Load())

	cfg, err := FromMap(data)
	if err != nil {
		return nil, err
	}
	cfg.Path = path
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// FromMap applies a generic settings map over the defaults.
// Keymap entries are added to the default bindings, replacing
// bindings for the same keys.
func FromMap(data map[string]any) (*Config, error) {
	cfg := Default()
	var errs []error

	setBool := func(path string, dst *bool) {
		v, ok := loader.Lookup(data, path)
		if !ok {
			return
		}
		b, ok := v.(bool)
		if !ok {
			errs = append(errs, &TypeError{Path: path, Want: "bool", Got: v})
			return
		}
		*dst = b
	}
	setString := func(path string, dst *string) {
		v, ok := loader.Lookup(data, path)
		if !ok {
			return
		}
		s, ok := v.(string)
		if !ok {
			errs = append(errs, &TypeError{Path: path, Want: "string", Got: v})
			return
		}
		*dst = s
	}
	setInt := func(path string, dst *int) {
		v, ok := loader.Lookup(data, path)
		if !ok {
			return
		}
		switch n := v.(type) {
		case int:
			*dst = n
		case int64:
			*dst = int(n)
		case uint64:
			*dst = int(n)
		default:
			errs = append(errs, &TypeError{Path: path, Want: "int", Got: v})
		}
	}
	setStrings := func(path string, dst map[string]string) {
		v, ok := loader.Lookup(data, path)
		if !ok {
			return
		}
		m, ok := v.(map[string]any)
		if !ok {
			errs = append(errs, &TypeError{Path: path, Want: "table", Got: v})
			return
		}
		for k, val := range m {
			s, ok := val.(string)
			if !ok {
				errs = append(errs, &TypeError{Path: path + "." + k, Want: "string", Got: val})
				continue
			}
			dst[k] = s
		}
	}

	setBool("transpose.surrogate_pairs", &cfg.Transpose.SurrogatePairs)
	setBool("transpose.swap_lines", &cfg.Transpose.SwapLines)
	setStrings("messages", cfg.Messages)
	user := make(map[string]string)
	setStrings("keymap", user)
	cfg.Keymap = mergeBindings(cfg.Keymap, user)
	setString("log.level", &cfg.Log.Level)
	setInt("dispatcher.max_repeat_count", &cfg.Dispatcher.MaxRepeatCount)
	setBool("dispatcher.read_only", &cfg.Dispatcher.ReadOnly)
	setInt("history.max_entries", &cfg.History.MaxEntries)

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return cfg, nil
}

// Validate checks every setting and reports all problems at once.
func (c *Config) Validate() error {
	var errs []error

	if _, ok := logging.ParseLevel(c.Log.Level); !ok {
		errs = append(errs, &ValidationError{Path: "log.level", Message: "unknown log level", Value: c.Log.Level})
	}
	if c.Dispatcher.MaxRepeatCount < 0 {
		errs = append(errs, &ValidationError{Path: "dispatcher.max_repeat_count", Message: "must not be negative", Value: c.Dispatcher.MaxRepeatCount})
	}
	if c.History.MaxEntries < 1 {
		errs = append(errs, &ValidationError{Path: "history.max_entries", Message: "must be positive", Value: c.History.MaxEntries})
	}
	if _, err := transpose.DefaultMessages().Override(c.Messages); err != nil {
		errs = append(errs, &ValidationError{Path: "messages", Message: err.Error(), Value: c.Messages})
	}
	for _, keys := range sortedKeys(c.Keymap) {
		if _, err := keymap.ParseChord(keys); err != nil {
			errs = append(errs, &ValidationError{Path: "keymap." + keys, Message: err.Error(), Value: c.Keymap[keys]})
		}
	}

	return errors.Join(errs...)
}

// LogLevel returns the parsed log level.
func (c *Config) LogLevel() logging.Level {
	level, _ := logging.ParseLevel(c.Log.Level)
	return level
}

// EngineOptions returns the engine options the settings describe.
func (c *Config) EngineOptions() ([]transpose.Option, error) {
	messages, err := transpose.DefaultMessages().Override(c.Messages)
	if err != nil {
		return nil, err
	}
	return []transpose.Option{
		transpose.WithSurrogatePairs(c.Transpose.SurrogatePairs),
		transpose.WithLineSwap(c.Transpose.SwapLines),
		transpose.WithMessages(messages),
	}, nil
}

// BuildKeymap returns a keymap holding the configured bindings.
func (c *Config) BuildKeymap() (*keymap.Keymap, error) {
	km := keymap.New()
	if err := km.Load(c.Keymap); err != nil {
		return nil, err
	}
	return km, nil
}

// DispatcherConfig returns the dispatcher settings.
func (c *Config) DispatcherConfig() dispatcher.Config {
	return dispatcher.DefaultConfig().
		WithMaxRepeatCount(c.Dispatcher.MaxRepeatCount).
		WithReadOnly(c.Dispatcher.ReadOnly)
}

// mergeBindings adds overrides to base. An override replaces any base
// binding of the same chord, however the chord is spelled.
func mergeBindings(base, overrides map[string]string) map[string]string {
	merged := make(map[string]string, len(base)+len(overrides))
	for k, v := range base {
		merged[k] = v
	}
	for keys, action := range overrides {
		if c, err := keymap.ParseChord(keys); err == nil {
			for existing := range merged {
				if ec, err := keymap.ParseChord(existing); err == nil && ec == c {
					delete(merged, existing)
				}
			}
		}
		merged[keys] = action
	}
	return merged
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

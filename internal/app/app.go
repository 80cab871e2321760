// Package app wires the configuration, logger, document, transpose engine,
// dispatcher and keymap into one editor that the hosts drive.
package app

import (
	"io"
	"os"
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/transpose/internal/config"
	"github.com/dshills/transpose/internal/dispatcher"
	"github.com/dshills/transpose/internal/dispatcher/execctx"
	"github.com/dshills/transpose/internal/dispatcher/handler"
	editorhandler "github.com/dshills/transpose/internal/dispatcher/handlers/editor"
	"github.com/dshills/transpose/internal/engine/buffer"
	"github.com/dshills/transpose/internal/engine/history"
	"github.com/dshills/transpose/internal/input"
	"github.com/dshills/transpose/internal/input/keymap"
	"github.com/dshills/transpose/internal/logging"
	"github.com/dshills/transpose/internal/plugin/lua"
	"github.com/dshills/transpose/internal/transpose"
)

// Options configures the application.
type Options struct {
	// ConfigPath is the path to the configuration file.
	ConfigPath string

	// WatchConfig reloads the configuration when the file changes.
	WatchConfig bool

	// Document is the document to edit. Defaults to an empty scratch document.
	Document *Document

	// LogLevel overrides the configured log level when set.
	LogLevel string

	// LogOutput is where logs are written. Defaults to os.Stderr.
	LogOutput io.Writer

	// ReadOnly refuses every editing command.
	ReadOnly bool

	// Debug enables dispatcher metrics.
	Debug bool
}

// Application is the central coordinator for the editor components.
type Application struct {
	mu sync.RWMutex

	opts     Options
	settings *config.Manager
	logger   *logging.Logger
	doc      *Document
	history  *history.History

	engine     *transpose.Engine
	dispatcher *dispatcher.Dispatcher
	keymap     *keymap.Keymap

	closed bool
}

// New creates an Application with the given options.
func New(opts Options) (*Application, error) {
	if opts.LogOutput == nil {
		opts.LogOutput = os.Stderr
	}
	if opts.Document == nil {
		opts.Document = NewScratchDocument("")
	}

	app := &Application{
		opts: opts,
		doc:  opts.Document,
	}
	if err := app.bootstrap(); err != nil {
		return nil, err
	}
	return app, nil
}

// bootstrap initializes all components in dependency order.
func (app *Application) bootstrap() error {
	// 1. Logger, so config loading can report.
	cfg := logging.DefaultConfig()
	cfg.Output = app.opts.LogOutput
	app.logger = logging.New(cfg)

	// 2. Config
	settings, err := config.NewManager(app.opts.ConfigPath,
		config.WithWatch(app.opts.WatchConfig),
		config.WithLogger(app.logger),
	)
	if err != nil {
		return &InitError{Component: "config", Err: err}
	}
	app.settings = settings
	app.history = history.New(settings.Current().History.MaxEntries)

	// 3. Engine, dispatcher and keymap
	if err := app.apply(settings.Current()); err != nil {
		_ = settings.Close()
		return &InitError{Component: "editor", Err: err}
	}

	settings.Subscribe(func(cfg *config.Config, err error) {
		if err != nil {
			return
		}
		if err := app.apply(cfg); err != nil {
			app.logger.Error("applying reloaded config: %v", err)
		}
	})

	app.logger.Debug("application started (document=%s)", app.doc.Name)
	return nil
}

// apply builds the engine, dispatcher and keymap from cfg and swaps them in.
func (app *Application) apply(cfg *config.Config) error {
	level := cfg.LogLevel()
	if app.opts.LogLevel != "" {
		if l, ok := logging.ParseLevel(app.opts.LogLevel); ok {
			level = l
		}
	}
	app.logger.SetLevel(level)

	engineOpts, err := cfg.EngineOptions()
	if err != nil {
		return err
	}
	engineOpts = append(engineOpts, transpose.WithLogger(app.logger.WithComponent("transpose")))
	engine := transpose.New(app.doc.Buffer(), engineOpts...)

	km, err := cfg.BuildKeymap()
	if err != nil {
		return err
	}

	dcfg := cfg.DispatcherConfig()
	if app.opts.ReadOnly {
		dcfg = dcfg.WithReadOnly(true)
	}
	if app.opts.Debug {
		dcfg = dcfg.WithMetrics()
	}
	d := dispatcher.New(dcfg)
	if prev := app.Dispatcher(); prev != nil && prev.Metrics() != nil && d.Metrics() != nil {
		d.SetMetrics(prev.Metrics())
	}
	d.SetLogger(app.logger)
	d.SetText(app.doc.Buffer())
	d.SetTransposer(engine)
	d.RegisterNamespace("editor", editorhandler.NewTransposeHandler())
	hook := dispatcher.NewLoggingHook(app.logger)
	d.RegisterPreHook(hook)
	d.RegisterPostHook(hook)

	app.mu.Lock()
	app.engine = engine
	app.dispatcher = d
	app.keymap = km
	app.mu.Unlock()
	return nil
}

// Dispatch runs an action against the document.
func (app *Application) Dispatch(action input.Action) handler.Result {
	app.mu.RLock()
	d, closed := app.dispatcher, app.closed
	app.mu.RUnlock()

	if closed {
		return handler.Error(ErrClosed)
	}

	var result handler.Result
	_ = app.history.Record(action.Name, app.doc.Buffer(), func() error {
		result = d.Dispatch(action)
		return nil
	})
	return result
}

// Edit runs fn against the document buffer as one undoable change.
func (app *Application) Edit(name string, fn func(b *buffer.LineBuffer) error) error {
	app.mu.RLock()
	closed := app.closed
	app.mu.RUnlock()

	if closed {
		return ErrClosed
	}
	if app.ReadOnly() {
		return execctx.ErrReadOnly
	}
	buf := app.doc.Buffer()
	return app.history.Record(name, buf, func() error {
		return fn(buf)
	})
}

// Undo reverts the last change and returns its name.
func (app *Application) Undo() (string, error) {
	if app.ReadOnly() {
		return "", execctx.ErrReadOnly
	}
	info, err := app.history.Undo(app.doc.Buffer())
	return info.Name, err
}

// Redo reapplies the last undone change and returns its name.
func (app *Application) Redo() (string, error) {
	if app.ReadOnly() {
		return "", execctx.ErrReadOnly
	}
	info, err := app.history.Redo(app.doc.Buffer())
	return info.Name, err
}

// Execute dispatches the named action count times.
func (app *Application) Execute(name string, count int) handler.Result {
	return app.Dispatch(input.Action{Name: name, Count: count, Source: input.SourceAPI})
}

// HandleKey dispatches the action bound to a key event.
// It reports false when the key is unbound.
func (app *Application) HandleKey(ev *tcell.EventKey) (handler.Result, bool) {
	app.mu.RLock()
	km := app.keymap
	app.mu.RUnlock()

	name, ok := km.LookupEvent(ev)
	if !ok {
		return handler.Result{}, false
	}
	return app.Dispatch(input.Action{Name: name, Count: 1, Source: input.SourceKeyboard}), true
}

// RunScript runs a Lua file against the document. print output goes to out.
func (app *Application) RunScript(path string, out io.Writer) error {
	return app.runLua(out, func(s *lua.State) error {
		return s.DoFile(path)
	}, path)
}

// RunLua runs Lua source against the document. print output goes to out.
func (app *Application) RunLua(code string, out io.Writer) error {
	return app.runLua(out, func(s *lua.State) error {
		return s.DoString(code)
	}, "")
}

func (app *Application) runLua(out io.Writer, run func(*lua.State) error, target string) error {
	state := lua.NewState(lua.WithOutput(out))
	defer state.Close()

	if app.ReadOnly() {
		state.Sandbox().Revoke(lua.CapabilityEdit)
	}
	state.Register(lua.NewEditorModule(app, state.Sandbox()))

	app.history.BeginGroup("script")
	defer app.history.EndGroup()

	if err := run(state); err != nil {
		return NewOperationError("script", target, err)
	}
	return nil
}

// Buffer returns the document buffer. It makes Application a Lua host.
func (app *Application) Buffer() lua.Buffer {
	return app.doc.Buffer()
}

// History returns the undo history of the document.
func (app *Application) History() *history.History {
	return app.history
}

// Document returns the document being edited.
func (app *Application) Document() *Document {
	return app.doc
}

// Keymap returns the active keymap.
func (app *Application) Keymap() *keymap.Keymap {
	app.mu.RLock()
	defer app.mu.RUnlock()
	return app.keymap
}

// Engine returns the active transpose engine.
func (app *Application) Engine() *transpose.Engine {
	app.mu.RLock()
	defer app.mu.RUnlock()
	return app.engine
}

// Dispatcher returns the active dispatcher.
func (app *Application) Dispatcher() *dispatcher.Dispatcher {
	app.mu.RLock()
	defer app.mu.RUnlock()
	return app.dispatcher
}

// Config returns the settings in effect.
func (app *Application) Config() *config.Config {
	return app.settings.Current()
}

// Logger returns the application logger.
func (app *Application) Logger() *logging.Logger {
	return app.logger
}

// ReadOnly reports whether editing is refused, by option or by config.
func (app *Application) ReadOnly() bool {
	return app.opts.ReadOnly || app.settings.Current().Dispatcher.ReadOnly
}

// Reload reads the configuration file again and applies it.
func (app *Application) Reload() error {
	_, err := app.settings.Reload()
	return err
}

// OnReload registers fn to run after each configuration reload,
// successful or not.
func (app *Application) OnReload(fn func(cfg *config.Config, err error)) {
	app.settings.Subscribe(fn)
}

// Shutdown stops watching the configuration. Safe to call more than once.
func (app *Application) Shutdown() error {
	app.mu.Lock()
	if app.closed {
		app.mu.Unlock()
		return nil
	}
	app.closed = true
	d := app.dispatcher
	app.mu.Unlock()

	if m := d.Metrics(); m != nil {
		app.logger.Info("dispatch metrics:\n%s", m.Summary())
	}
	app.logger.Debug("application stopped")
	return app.settings.Close()
}

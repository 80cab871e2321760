package dispatcher

import (
	"fmt"
	"runtime/debug"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dshills/transpose/internal/dispatcher/execctx"
	"github.com/dshills/transpose/internal/dispatcher/handler"
	"github.com/dshills/transpose/internal/engine/buffer"
	"github.com/dshills/transpose/internal/input"
	"github.com/dshills/transpose/internal/logging"
)

// Dispatcher runs actions against one document: it routes each action
// to a handler, runs the hooks around it and records metrics.
type Dispatcher struct {
	config  Config
	router  *Router
	metrics *Metrics
	newID   func() string

	mu         sync.RWMutex
	text       buffer.TextService
	transposer execctx.Transposer
	logger     *logging.Logger
	preHooks   []PreDispatchHook
	postHooks  []PostDispatchHook
}

// New creates a dispatcher with no handlers.
func New(config Config) *Dispatcher {
	d := &Dispatcher{
		config: config,
		router: NewRouter(),
		newID:  uuid.NewString,
		logger: logging.Null(),
	}
	if config.EnableMetrics {
		d.metrics = NewMetrics()
	}
	if config.MaxRepeatCount > 0 {
		d.preHooks = append(d.preHooks, repeatCap(config.MaxRepeatCount))
	}
	return d
}

// NewWithDefaults is New(DefaultConfig()).
func NewWithDefaults() *Dispatcher {
	return New(DefaultConfig())
}

// SetText sets the text handlers edit.
func (d *Dispatcher) SetText(text buffer.TextService) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.text = text
}

// SetTransposer sets the engine behind the transpose commands.
func (d *Dispatcher) SetTransposer(t execctx.Transposer) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.transposer = t
}

// SetLogger sets the logger handlers receive. Nil silences them.
func (d *Dispatcher) SetLogger(logger *logging.Logger) {
	if logger == nil {
		logger = logging.Null()
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.logger = logger.WithComponent("dispatcher")
}

// Text returns the text service.
func (d *Dispatcher) Text() buffer.TextService {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.text
}

// Transposer returns the transpose engine.
func (d *Dispatcher) Transposer() execctx.Transposer {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.transposer
}

// Dispatch runs action and reports how it went. It never panics on
// behalf of a handler when RecoverFromPanic is set.
func (d *Dispatcher) Dispatch(action input.Action) handler.Result {
	if err := input.ValidateName(action.Name); err != nil {
		return handler.Error(fmt.Errorf("%w: %w", ErrInvalidAction, err))
	}

	start := time.Now()
	ctx, pre, post := d.prepare(action)

	for _, hook := range pre {
		if !hook.PreDispatch(&action, ctx) {
			return handler.Result{Status: handler.StatusCancelled, Error: ErrActionCancelled, Message: "cancelled by hook"}
		}
	}

	h := d.router.Route(action.Name)
	if h == nil {
		ctx.Logger.Warn("no handler for %s", action.Name)
		return handler.Error(fmt.Errorf("%w: %s", ErrNoHandler, action.Name))
	}

	result := d.run(h, action, ctx)
	if result.IsError() {
		ctx.Logger.Error("%s failed: %v", action.Name, result.Error)
	}

	for _, hook := range post {
		hook.PostDispatch(&action, ctx, &result)
	}
	if d.metrics != nil {
		d.metrics.Record(action.Name, time.Since(start), result)
	}
	return result
}

// prepare builds the context for one dispatch and snapshots the hooks.
func (d *Dispatcher) prepare(action input.Action) (*execctx.ExecutionContext, []PreDispatchHook, []PostDispatchHook) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	id := d.newID()
	ctx := execctx.New().
		WithText(d.text).
		WithTransposer(d.transposer).
		WithLogger(d.logger.WithField("dispatch", id)).
		WithCount(action.Count)
	ctx.InvocationID = id
	ctx.Source = action.Source
	ctx.ReadOnly = d.config.ReadOnly

	return ctx, append([]PreDispatchHook(nil), d.preHooks...), append([]PostDispatchHook(nil), d.postHooks...)
}

func (d *Dispatcher) run(h handler.Handler, action input.Action, ctx *execctx.ExecutionContext) (result handler.Result) {
	if !d.config.RecoverFromPanic {
		return h.Handle(action, ctx)
	}
	defer func() {
		if r := recover(); r != nil {
			ctx.Logger.Error("panic in %s: %v\n%s", action.Name, r, debug.Stack())
			result = handler.Error(fmt.Errorf("%w: %s: %v", ErrPanic, action.Name, r))
			if d.metrics != nil {
				d.metrics.RecordPanic(action.Name)
			}
		}
	}()
	return h.Handle(action, ctx)
}

// RegisterHandler serves the exact action name with h.
func (d *Dispatcher) RegisterHandler(actionName string, h handler.Handler) {
	d.router.Handle(actionName, h)
}

// RegisterHandlerFunc serves the exact action name with fn.
func (d *Dispatcher) RegisterHandlerFunc(actionName string, fn handler.Func) {
	d.router.Handle(actionName, fn)
}

// RegisterNamespace serves the actions of namespace with h.
func (d *Dispatcher) RegisterNamespace(namespace string, h handler.NamespaceHandler) {
	d.router.HandleNamespace(namespace, h)
}

// UnregisterHandler removes the exact handlers of actionName.
func (d *Dispatcher) UnregisterHandler(actionName string) {
	d.router.Remove(actionName)
}

// CanDispatch reports whether some handler serves actionName.
func (d *Dispatcher) CanDispatch(actionName string) bool {
	return d.router.Route(actionName) != nil
}

// RegisterPreHook adds a hook run before every handler.
func (d *Dispatcher) RegisterPreHook(hook PreDispatchHook) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.preHooks = append(d.preHooks, hook)
}

// RegisterPostHook adds a hook run after every handler.
func (d *Dispatcher) RegisterPostHook(hook PostDispatchHook) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.postHooks = append(d.postHooks, hook)
}

// Router returns the routing table.
func (d *Dispatcher) Router() *Router {
	return d.router
}

// Metrics returns the collector, or nil when metrics are disabled.
func (d *Dispatcher) Metrics() *Metrics {
	return d.metrics
}

// SetMetrics replaces the collector, so statistics outlive a rebuilt
// dispatcher. Call it before the first Dispatch.
func (d *Dispatcher) SetMetrics(m *Metrics) {
	d.metrics = m
}

// Config returns the configuration the dispatcher was built with.
func (d *Dispatcher) Config() Config {
	return d.config
}

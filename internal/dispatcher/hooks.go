package dispatcher

import (
	"github.com/dshills/transpose/internal/dispatcher/execctx"
	"github.com/dshills/transpose/internal/dispatcher/handler"
	"github.com/dshills/transpose/internal/input"
	"github.com/dshills/transpose/internal/logging"
)

// PreDispatchHook runs before the handler. It may rewrite the action or
// the context, and returns false to cancel the dispatch.
type PreDispatchHook interface {
	PreDispatch(action *input.Action, ctx *execctx.ExecutionContext) bool
}

// PostDispatchHook runs after the handler and may rewrite the result.
type PostDispatchHook interface {
	PostDispatch(action *input.Action, ctx *execctx.ExecutionContext, result *handler.Result)
}

// PreDispatchFunc adapts a function to PreDispatchHook.
type PreDispatchFunc func(action *input.Action, ctx *execctx.ExecutionContext) bool

func (f PreDispatchFunc) PreDispatch(action *input.Action, ctx *execctx.ExecutionContext) bool {
	return f(action, ctx)
}

// PostDispatchFunc adapts a function to PostDispatchHook.
type PostDispatchFunc func(action *input.Action, ctx *execctx.ExecutionContext, result *handler.Result)

func (f PostDispatchFunc) PostDispatch(action *input.Action, ctx *execctx.ExecutionContext, result *handler.Result) {
	f(action, ctx, result)
}

// LoggingHook traces each dispatch at debug level and failures at warn.
// Register it as both a pre and a post hook.
type LoggingHook struct {
	Logger *logging.Logger
}

// NewLoggingHook returns a hook writing to logger.
func NewLoggingHook(logger *logging.Logger) *LoggingHook {
	return &LoggingHook{Logger: logger}
}

func (h *LoggingHook) PreDispatch(action *input.Action, ctx *execctx.ExecutionContext) bool {
	h.loggerFor(ctx).Debug("dispatching %s", action)
	return true
}

func (h *LoggingHook) PostDispatch(action *input.Action, ctx *execctx.ExecutionContext, result *handler.Result) {
	log := h.loggerFor(ctx)
	switch result.Status {
	case handler.StatusError:
		log.Warn("%s -> %s: %v", action.Name, result.Status, result.Error)
	case handler.StatusOK:
		log.Debug("%s -> %s after %d of %d runs %q", action.Name, result.Status, result.Runs, ctx.GetCount(), result.Message)
	default:
		log.Debug("%s -> %s %q", action.Name, result.Status, result.Message)
	}
}

// loggerFor tags the hook's logger with the invocation id, falling back
// to the context logger.
func (h *LoggingHook) loggerFor(ctx *execctx.ExecutionContext) *logging.Logger {
	switch {
	case h.Logger == nil:
		return ctx.Logger
	case ctx.InvocationID != "":
		return h.Logger.WithField("dispatch", ctx.InvocationID)
	default:
		return h.Logger
	}
}

// repeatCap lowers larger context counts to itself.
type repeatCap int

func (limit repeatCap) PreDispatch(_ *input.Action, ctx *execctx.ExecutionContext) bool {
	if ctx.Count > int(limit) {
		ctx.WithCount(int(limit))
	}
	return true
}

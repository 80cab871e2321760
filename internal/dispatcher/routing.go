package dispatcher

import (
	"slices"
	"sort"
	"sync"

	"github.com/dshills/transpose/internal/dispatcher/handler"
	"github.com/dshills/transpose/internal/input"
)

// Router resolves an action name to a handler. Handlers registered for
// the exact name come first, highest priority winning; otherwise the
// namespace handlers of the name's prefix are asked in registration order.
type Router struct {
	mu         sync.RWMutex
	exact      map[string][]handler.Handler
	namespaces map[string][]handler.NamespaceHandler
}

// NewRouter creates an empty router.
func NewRouter() *Router {
	return &Router{
		exact:      make(map[string][]handler.Handler),
		namespaces: make(map[string][]handler.NamespaceHandler),
	}
}

// Handle serves actionName with h.
func (r *Router) Handle(actionName string, h handler.Handler) {
	r.mu.Lock()
	defer r.mu.Unlock()

	hs := append(r.exact[actionName], h)
	sort.SliceStable(hs, func(i, j int) bool { return hs[i].Priority() > hs[j].Priority() })
	r.exact[actionName] = hs
}

// HandleNamespace adds h to the handlers of namespace.
func (r *Router) HandleNamespace(namespace string, h handler.NamespaceHandler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.namespaces[namespace] = append(r.namespaces[namespace], h)
}

// Remove drops every exact handler of actionName.
func (r *Router) Remove(actionName string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.exact, actionName)
}

// RemoveNamespace drops every handler of namespace.
func (r *Router) RemoveNamespace(namespace string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.namespaces, namespace)
}

// Route returns the handler for actionName, or nil.
func (r *Router) Route(actionName string) handler.Handler {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if hs := r.exact[actionName]; len(hs) > 0 {
		return hs[0]
	}
	for _, h := range r.namespaces[Namespace(actionName)] {
		if h.CanHandle(actionName) {
			return handler.FromNamespace(h)
		}
	}
	return nil
}

// Actions lists the names with exact handlers, sorted.
func (r *Router) Actions() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return sortedKeys(r.exact)
}

// Namespaces lists the namespaces with handlers, sorted.
func (r *Router) Namespaces() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return sortedKeys(r.namespaces)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// Namespace returns the part of an action name before the first dot,
// or "" if there is none.
func Namespace(actionName string) string {
	ns, _ := input.SplitName(actionName)
	return ns
}

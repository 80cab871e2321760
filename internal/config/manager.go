package config

import (
	"sync"

	"github.com/dshills/transpose/internal/config/watcher"
	"github.com/dshills/transpose/internal/logging"
)

// Observer is called after a reload with the new settings, or with the
// error that kept the previous settings in place.
type Observer func(cfg *Config, err error)

// Subscription represents an active observer subscription.
type Subscription struct {
	id      uint64
	manager *Manager
}

// Unsubscribe removes this subscription.
func (s *Subscription) Unsubscribe() {
	if s != nil && s.manager != nil {
		s.manager.unsubscribe(s.id)
	}
}

// Manager holds the current settings and reloads them on file changes.
type Manager struct {
	mu        sync.RWMutex
	path      string
	current   *Config
	observers map[uint64]Observer
	nextID    uint64
	watcher   *watcher.Watcher
	logger    *logging.Logger
	closed    bool
}

// ManagerOption configures a Manager.
type ManagerOption func(*managerOptions)

type managerOptions struct {
	watch    bool
	logger   *logging.Logger
	watchOpt []watcher.Option
}

// WithWatch enables reloading when the file changes.
func WithWatch(enable bool, opts ...watcher.Option) ManagerOption {
	return func(o *managerOptions) {
		o.watch = enable
		o.watchOpt = opts
	}
}

// WithLogger sets the logger used for reload messages.
func WithLogger(l *logging.Logger) ManagerOption {
	return func(o *managerOptions) {
		if l != nil {
			o.logger = l
		}
	}
}

// NewManager loads path and, if requested, starts watching it.
func NewManager(path string, opts ...ManagerOption) (*Manager, error) {
	o := managerOptions{logger: logging.Null()}
	for _, opt := range opts {
		opt(&o)
	}

	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}

	m := &Manager{
		path:      path,
		current:   cfg,
		observers: make(map[uint64]Observer),
		logger:    o.logger.WithComponent("config"),
	}

	if o.watch && path != "" {
		w, err := watcher.New(o.watchOpt...)
		if err != nil {
			return nil, err
		}
		if err := w.Add(path); err != nil {
			_ = w.Close()
			return nil, err
		}
		w.OnChange(func(ev watcher.Event) {
			m.logger.Debug("config file %s: %s", ev.Op, ev.Path)
			m.Reload()
		})
		m.watcher = w
	}
	return m, nil
}

// Current returns the settings in effect.
func (m *Manager) Current() *Config {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

// Path returns the watched file path.
func (m *Manager) Path() string {
	return m.path
}

// Reload reads the file again. Invalid settings are reported to
// observers and the previous settings stay current.
func (m *Manager) Reload() (*Config, error) {
	m.mu.RLock()
	closed := m.closed
	m.mu.RUnlock()
	if closed {
		return nil, ErrClosed
	}

	cfg, err := Load(m.path)
	if err != nil {
		m.logger.Warn("reload failed: %v", err)
		m.notify(nil, err)
		return nil, err
	}

	m.mu.Lock()
	m.current = cfg
	m.mu.Unlock()

	m.logger.Info("reloaded %s", m.path)
	m.notify(cfg, nil)
	return cfg, nil
}

// Subscribe registers an observer for reloads.
func (m *Manager) Subscribe(observer Observer) *Subscription {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextID++
	m.observers[m.nextID] = observer
	return &Subscription{id: m.nextID, manager: m}
}

// Close stops watching. Safe to call more than once.
func (m *Manager) Close() error {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return nil
	}
	m.closed = true
	w := m.watcher
	m.watcher = nil
	m.mu.Unlock()

	if w != nil {
		return w.Close()
	}
	return nil
}

func (m *Manager) unsubscribe(id uint64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.observers, id)
}

func (m *Manager) notify(cfg *Config, err error) {
	m.mu.RLock()
	observers := make([]Observer, 0, len(m.observers))
	for _, o := range m.observers {
		observers = append(observers, o)
	}
	m.mu.RUnlock()

	for _, o := range observers {
		o(cfg, err)
	}
}

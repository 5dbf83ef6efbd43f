package config

import (
	"reflect"
	"sort"
	"sync"

	"github.com/knadh/koanf/v2"

	"github.com/dshills/rebind/internal/config/loader"
	"github.com/dshills/rebind/internal/config/notify"
	"github.com/dshills/rebind/internal/config/watcher"
)

// Manager owns the live configuration and reloads it on request or when
// the file changes. Safe for concurrent use.
type Manager struct {
	mu sync.RWMutex

	path string
	env  *loader.EnvProvider
	cfg  *Config
	k    *koanf.Koanf

	notifier *notify.Notifier
	watcher  *watcher.Watcher
	closed   bool

	// onError receives reload failures from the file watcher.
	onError func(error)
}

// NewManager loads the configuration at path (DefaultPath when empty).
func NewManager(path string) (*Manager, error) {
	return newManager(path, loader.NewEnvProvider(EnvPrefix))
}

func newManager(path string, env *loader.EnvProvider) (*Manager, error) {
	if path == "" {
		path = DefaultPath()
	}
	cfg, k, err := load(path, env)
	if err != nil {
		return nil, err
	}
	return &Manager{
		path:     path,
		env:      env,
		cfg:      cfg,
		k:        k,
		notifier: notify.New(),
		onError:  func(error) {},
	}, nil
}

// Path returns the configuration file path.
func (m *Manager) Path() string {
	return m.path
}

// Config returns the current configuration. The returned value must not be
// modified.
func (m *Manager) Config() *Config {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.cfg
}

// Notifier returns the change notifier. Subscribe to a dotted path such as
// "log.level" or a section such as "keymap".
func (m *Manager) Notifier() *notify.Notifier {
	return m.notifier
}

// OnError sets the handler for reload failures triggered by the watcher.
func (m *Manager) OnError(fn func(error)) {
	if fn == nil {
		fn = func(error) {}
	}
	m.mu.Lock()
	m.onError = fn
	m.mu.Unlock()
}

// Reload re-reads the file and environment. On success every changed key
// is announced, followed by a reload event. On failure the previous
// configuration stays in effect.
func (m *Manager) Reload() error {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return ErrManagerClosed
	}

	cfg, k, err := load(m.path, m.env)
	if err != nil {
		m.mu.Unlock()
		return err
	}

	batch := m.notifier.NewBatch()
	diff(batch, m.k.All(), k.All(), m.path)
	m.cfg = cfg
	m.k = k
	m.mu.Unlock()

	batch.Commit()
	m.notifier.NotifyReload(m.path)
	return nil
}

// diff adds one change per flattened key that differs between old and new.
// Keys are visited in sorted order so observers see a stable sequence.
func diff(batch *notify.Batch, old, cur map[string]any, source string) {
	keys := make([]string, 0, len(old)+len(cur))
	for k := range old {
		keys = append(keys, k)
	}
	for k := range cur {
		if _, ok := old[k]; !ok {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	for _, k := range keys {
		ov, hadOld := old[k]
		nv, hasNew := cur[k]
		switch {
		case !hasNew:
			batch.Delete(k, ov, source)
		case !hadOld || !reflect.DeepEqual(ov, nv):
			batch.Set(k, ov, nv, source)
		}
	}
}

// Watch starts reloading whenever the configuration file changes.
// Calling it twice is a no-op.
func (m *Manager) Watch() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrManagerClosed
	}
	if m.watcher != nil {
		return nil
	}

	w, err := watcher.New()
	if err != nil {
		return err
	}
	if err := w.Watch(m.path); err != nil {
		w.Close()
		return err
	}
	w.OnChange(func(watcher.Event) {
		if err := m.Reload(); err != nil {
			m.mu.RLock()
			onError := m.onError
			m.mu.RUnlock()
			onError(err)
		}
	})
	m.watcher = w
	return nil
}

// Close stops watching. The last configuration remains readable.
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

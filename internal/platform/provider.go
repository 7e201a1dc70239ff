package platform

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// NewApplicationFunc creates an application handle for one backend.
type NewApplicationFunc func(opts Options) (Application, error)

var (
	registryMu sync.RWMutex
	registry   = map[string]NewApplicationFunc{}
)

// Register makes a backend available by name. Backends call it from init().
// See internal/platform/sim and internal/platform/web.
func Register(name string, fn NewApplicationFunc) {
	registryMu.Lock()
	defer registryMu.Unlock()
	if fn == nil {
		panic("platform: Register called with nil constructor for " + name)
	}
	if _, dup := registry[name]; dup {
		panic("platform: Register called twice for backend " + name)
	}
	registry[name] = fn
}

// Backends returns the registered backend names, sorted.
func Backends() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NewApplication returns an unlaunched application handle for the named backend.
func NewApplication(backend string, opts Options) (Application, error) {
	registryMu.RLock()
	fn, ok := registry[backend]
	registryMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("unknown backend %q (registered: %s)", backend, strings.Join(Backends(), ", "))
	}
	return fn(opts)
}

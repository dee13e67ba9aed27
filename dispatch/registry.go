package dispatch

import (
	"fmt"
	"net/http"
	"sort"
	"strings"
	"sync"

	"github.com/xy-planning-network/waypoint/auth"
	"github.com/xy-planning-network/waypoint/resource"
)

// MainKey is the last segment of the key a handler answers at
// when it serves a whole namespace.
const MainKey = "main"

// A Scope is what a Factory constructs a handler from.
type Scope struct {
	Request  *http.Request
	Identity auth.Identity
	Bundle   *resource.Bundle
}

// A Factory constructs the handler for one request.
type Factory func(Scope) (any, error)

// A Registry maps namespace keys to the Factory of the handler answering at them.
// It is safe for concurrent use.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

// DefaultRegistry is the Registry used by Register.
var DefaultRegistry = NewRegistry()

// Register adds f to DefaultRegistry under key.
// It panics if key is already registered or f is nil,
// as it is meant to be called from init functions.
func Register(key string, f Factory) {
	if err := DefaultRegistry.Register(key, f); err != nil {
		panic(err)
	}
}

// NewRegistry constructs an empty *Registry.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// Register adds f under key.
//
// key is a slash separated namespace, e.g., "users" or "admin/main".
// Leading and trailing slashes are ignored.
func (reg *Registry) Register(key string, f Factory) error {
	key = normalizeKey(key)
	if key == "" {
		return fmt.Errorf("%w: empty key", ErrMalformedPath)
	}

	if f == nil {
		return fmt.Errorf("%w: nil factory for %q", ErrFactory, key)
	}

	reg.mu.Lock()
	defer reg.mu.Unlock()

	if _, ok := reg.factories[key]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicate, key)
	}

	reg.factories[key] = f
	return nil
}

// Keys lists the registered keys in order.
func (reg *Registry) Keys() []string {
	reg.mu.RLock()
	defer reg.mu.RUnlock()

	keys := make([]string, 0, len(reg.factories))
	for k := range reg.factories {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	return keys
}

// Lookup finds the Factory registered under key or, failing that, under key/main.
// It returns the key the Factory was found under.
func (reg *Registry) Lookup(key string) (Factory, string, error) {
	key = normalizeKey(key)

	reg.mu.RLock()
	defer reg.mu.RUnlock()

	if f, ok := reg.factories[key]; ok {
		return f, key, nil
	}

	main := key + "/" + MainKey
	if f, ok := reg.factories[main]; ok {
		return f, main, nil
	}

	return nil, "", fmt.Errorf("%w: %q or %q", ErrNoHandler, key, main)
}

func normalizeKey(key string) string { return strings.Trim(key, "/") }

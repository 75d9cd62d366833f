package scheme

import (
	"sort"
	"sync"
)

// entry binds a handler to the backend it requires, if any.
type entry struct {
	name    string
	backend Backend
	handler HandlerFunc
}

// invoke runs the handler unless the entry requires a backend other than
// the active one, in which case the standard mismatch page is substituted
// without calling the handler at all. The active backend never changes for
// the lifetime of the process, so a mismatch is permanent.
func (e *entry) invoke(r *Request, active Backend) (*Response, error) {
	if e.backend != BackendAny && e.backend != active {
		return wrongBackendResponse(r), nil
	}
	return e.handler(r)
}

// Registry maps authorities to their handlers. It is populated once at
// startup and read on every dispatch, possibly from several navigation
// contexts at once.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]*entry
}

// NewRegistry returns an empty handler registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]*entry)}
}

// Register binds fn as the handler for name. Registering a name again
// overwrites the previous binding; last write wins, which lets one
// implementation be aliased under several names.
func (r *Registry) Register(name string, fn HandlerFunc) {
	r.RegisterBackend(name, BackendAny, fn)
}

// RegisterBackend is Register for handlers that are only usable with one
// backend. Dispatching the name under any other backend renders the
// standard "not available with this backend" page.
func (r *Registry) RegisterBackend(name string, backend Backend, fn HandlerFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[name] = &entry{name: name, backend: backend, handler: fn}
}

// lookup is a case-sensitive exact-match read.
func (r *Registry) lookup(name string) (*entry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.entries[name]
	return e, ok
}

// Names returns a sorted snapshot of the registered authorities, for
// diagnostics pages.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.entries))
	for name := range r.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

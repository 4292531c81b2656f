// Package content supplies reference ContentLoader factories and a
// registry for looking one up by the manifest's declared content type.
package content

import (
	"context"
	"sync"
)

// Loader decodes fetched tile bytes into renderable content, mirroring
// tile3d.ContentLoader without importing the root package (so content
// stays usable standalone and tile3d depends on it, not the reverse).
type Loader interface {
	Decode(ctx context.Context, contentType string, data []byte) (content any, byteLength int64, err error)
}

// Factory creates a Loader instance, called lazily so a registered
// format only pays its setup cost once actually selected.
type Factory func() Loader

var (
	mu       sync.RWMutex
	loaders  = make(map[string]Factory)
	priority []string
)

// Register associates name (a manifest content type such as "b3dm",
// "pnts", or an image MIME type) with a Factory. Typically called from
// an init() in the package implementing that format.
func Register(name string, factory Factory) {
	mu.Lock()
	defer mu.Unlock()
	if _, exists := loaders[name]; !exists {
		priority = append(priority, name)
	}
	loaders[name] = factory
}

// Unregister removes name, mainly for tests.
func Unregister(name string) {
	mu.Lock()
	defer mu.Unlock()
	delete(loaders, name)
	for i, n := range priority {
		if n == name {
			priority = append(priority[:i], priority[i+1:]...)
			break
		}
	}
}

// Available lists every registered content type name.
func Available() []string {
	mu.RLock()
	defer mu.RUnlock()
	names := make([]string, len(priority))
	copy(names, priority)
	return names
}

// Get returns a new Loader instance for name, or nil if unregistered.
func Get(name string) Loader {
	mu.RLock()
	defer mu.RUnlock()
	factory, ok := loaders[name]
	if !ok {
		return nil
	}
	return factory()
}

// Default returns the first registered loader, in registration order,
// for embedders that only ever handle one content type.
func Default() Loader {
	mu.RLock()
	defer mu.RUnlock()
	for _, name := range priority {
		if l := loaders[name](); l != nil {
			return l
		}
	}
	return nil
}

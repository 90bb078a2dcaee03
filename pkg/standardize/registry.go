package standardize

import (
	"fmt"
	"sort"
	"sync"

	"github.com/AccelByte/game-churn-features/pkg/schema"
)

// Registry manages the available standardizers.
// It provides thread-safe registration and lookup by platform.
type Registry struct {
	standardizers map[schema.Platform]Standardizer
	mu            sync.RWMutex
}

// NewRegistry creates a new empty standardizer registry.
func NewRegistry() *Registry {
	return &Registry{
		standardizers: make(map[schema.Platform]Standardizer),
	}
}

// Register adds a standardizer to the registry.
// Returns an error if one is already registered for the same platform.
func (r *Registry) Register(s Standardizer) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.standardizers[s.Platform()]; exists {
		return fmt.Errorf("standardizer for platform %s already registered", s.Platform())
	}

	r.standardizers[s.Platform()] = s
	return nil
}

// Unregister removes a standardizer from the registry.
// Returns an error if no standardizer exists for the platform.
func (r *Registry) Unregister(platform schema.Platform) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.standardizers[platform]; !exists {
		return fmt.Errorf("standardizer for platform %s not found", platform)
	}

	delete(r.standardizers, platform)
	return nil
}

// Get returns the standardizer for a platform.
// Returns nil if none is registered.
func (r *Registry) Get(platform schema.Platform) Standardizer {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.standardizers[platform]
}

// GetAll returns all registered standardizers sorted by platform, so that
// iteration order is stable across runs.
func (r *Registry) GetAll() []Standardizer {
	r.mu.RLock()
	defer r.mu.RUnlock()

	all := make([]Standardizer, 0, len(r.standardizers))
	for _, s := range r.standardizers {
		all = append(all, s)
	}
	sort.Slice(all, func(i, j int) bool {
		return all[i].Platform() < all[j].Platform()
	})

	return all
}

// SocialPlatforms returns the set of registered platforms whose collectors
// persist a peer graph.
func (r *Registry) SocialPlatforms() map[schema.Platform]bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	capable := make(map[schema.Platform]bool)
	for platform, s := range r.standardizers {
		if s.SocialGraph() {
			capable[platform] = true
		}
	}

	return capable
}

// Count returns the number of registered standardizers.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.standardizers)
}

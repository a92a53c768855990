package index

import "sync"

// Registry holds the published index per document. Publishing swaps the
// whole index atomically: queries either see the previous complete index
// or the new one, never a partial build.
type Registry struct {
	mu      sync.RWMutex
	indexes map[string]*Index
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{
		indexes: make(map[string]*Index),
	}
}

// Get returns the published index for a document
func (r *Registry) Get(documentID string) (*Index, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ix, ok := r.indexes[documentID]
	return ix, ok
}

// Publish makes an index visible to queries, replacing any previous one
func (r *Registry) Publish(ix *Index) {
	if ix == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.indexes[ix.DocumentID()] = ix
}

// Remove drops the published index for a document
func (r *Registry) Remove(documentID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.indexes, documentID)
}

// Len returns the number of published indexes
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.indexes)
}

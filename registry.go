/*
Copyright © 2017 the InMAP authors.
This file is part of InMAP.

InMAP is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

InMAP is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with InMAP.  If not, see <http://www.gnu.org/licenses/>.
*/

package nshmp

import (
	"fmt"
	"sync"

	"github.com/usgs/nshmp-haz-sub005/errs"
)

// cacheEntry holds the lazily-built instance for one (Identifier, IMT)
// pair. once guarantees the factory runs exactly one time even under
// concurrent callers; instance/err are only safe to read after once has
// fired, which Instance() enforces by calling once.Do itself.
type cacheEntry struct {
	once     sync.Once
	instance GroundMotionModel
	err      error
}

// Registry associates each Identifier with display metadata and an
// instantiation factory, and caches one instance per (Identifier, IMT).
// A Registry is safe for concurrent use: multiple goroutines requesting
// the same (Identifier, IMT) receive the same instance, and no partially
// constructed instance escapes, because construction happens inside a
// per-key sync.Once.
type Registry struct {
	mu     sync.Mutex // guards metas and cache map membership only
	metas  map[Identifier]Meta
	groups []Group
	cache  map[cacheKey]*cacheEntry
}

type cacheKey struct {
	id  Identifier
	imt string
}

// NewRegistry returns an empty registry. Use Register to populate it.
func NewRegistry() *Registry {
	return &Registry{
		metas: make(map[Identifier]Meta),
		cache: make(map[cacheKey]*cacheEntry),
	}
}

// Register adds metadata for id. It is a programmer error to register the
// same Identifier twice.
func (r *Registry) Register(m Meta) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.metas[m.ID]; exists {
		return fmt.Errorf("%w: identifier %s already registered", errs.ErrStateError, m.ID)
	}
	r.metas[m.ID] = m
	return nil
}

// RegisterGroup adds a named documentation/UI grouping of Identifiers.
func (r *Registry) RegisterGroup(g Group) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.groups = append(r.groups, g)
}

// Groups returns every registered grouping.
func (r *Registry) Groups() []Group {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Group, len(r.groups))
	copy(out, r.groups)
	return out
}

// Meta returns the registered metadata for id.
func (r *Registry) Meta(id Identifier) (Meta, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.metas[id]
	return m, ok
}

// entryFor returns (creating if necessary) the cache entry for (id, imt).
// Creating the map entry is guarded by r.mu, but running the factory
// itself happens outside the lock, inside the entry's own sync.Once, so
// one slow model's construction never blocks unrelated (id, imt) lookups.
func (r *Registry) entryFor(id Identifier, imt IMT) *cacheEntry {
	key := cacheKey{id: id, imt: imt.String()}
	r.mu.Lock()
	e, ok := r.cache[key]
	if !ok {
		e = &cacheEntry{}
		r.cache[key] = e
	}
	r.mu.Unlock()
	return e
}

// Instance returns the cached GroundMotionModel for (id, imt),
// constructing it on first request. The factory runs at most once per
// (id, imt): an error it returns, such as for an IMT the model's
// coefficient data doesn't cover, is cached with the entry and returned
// unchanged on every later call.
func (r *Registry) Instance(id Identifier, imt IMT) (GroundMotionModel, error) {
	r.mu.Lock()
	meta, ok := r.metas[id]
	r.mu.Unlock()
	if !ok {
		return nil, fmt.Errorf("%w: unknown identifier %s", errs.ErrStateError, id)
	}

	e := r.entryFor(id, imt)
	e.once.Do(func() {
		e.instance, e.err = meta.Factory(imt)
	})
	return e.instance, e.err
}

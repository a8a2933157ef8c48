// Package session issues and tracks storefront session IDs. A session
// identifies one visitor's cart in durable storage.
package session

import (
	"sync"

	"github.com/bits-and-blooms/bloom/v3"
	"github.com/google/uuid"
)

// Registry tracks which session IDs this deployment has issued.
//
// Issued IDs are recorded in a bloom filter so cart lookups for IDs we
// never handed out (stale cookies from an old deployment, fabricated
// values) can skip the storage round trip entirely. A false positive
// only costs one query that finds no cart; a false negative cannot
// happen, so no issued session ever loses its cart.
type Registry struct {
	mu     sync.Mutex
	filter *bloom.BloomFilter
}

// NewRegistry sizes the filter for the expected number of sessions at
// the given false positive rate.
func NewRegistry(expectedSessions uint, fpRate float64) *Registry {
	return &Registry{
		filter: bloom.NewWithEstimates(expectedSessions, fpRate),
	}
}

// Issue creates a new session ID and records it.
func (r *Registry) Issue() string {
	id := uuid.New().String()
	r.mu.Lock()
	r.filter.AddString(id)
	r.mu.Unlock()
	return id
}

// Remember records an externally restored session ID, e.g. one found
// in storage during warmup.
func (r *Registry) Remember(id string) {
	if !validID(id) {
		return
	}
	r.mu.Lock()
	r.filter.AddString(id)
	r.mu.Unlock()
}

// Known reports whether the ID may have been issued by this registry.
// False means definitely not issued; true may be a false positive.
func (r *Registry) Known(id string) bool {
	if !validID(id) {
		return false
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.filter.TestString(id)
}

func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

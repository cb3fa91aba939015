package registry

import (
	"sort"
	"sync"
	"time"
)

type Key = string

// Detail is a point-in-time view of one live connection.
type Detail struct {
	ID          Key
	RemoteAddr  string
	StartedAt   time.Time
	WebRequests uint64
	RpcRequests uint64
	Failures    uint64
}

// Registry tracks live connections and their per-branch request
// counters. It backs the web factory's connection budget and the
// dashboard.
type Registry interface {
	Register(key Key, remoteAddr string) (success bool)
	Remove(key Key)
	RecordWeb(key Key)
	RecordRpc(key Key)
	RecordFailure(key Key)
	Len() int
	Snapshot() []Detail
}

type entry struct {
	remoteAddr string
	startedAt  time.Time
	web        uint64
	rpc        uint64
	failures   uint64
}

type registry struct {
	mu    sync.RWMutex
	conns map[Key]*entry
}

func NewRegistry() Registry {
	return &registry{
		conns: make(map[Key]*entry),
	}
}

func (r *registry) Register(key Key, remoteAddr string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.conns[key]; exists {
		return false
	}
	r.conns[key] = &entry{
		remoteAddr: remoteAddr,
		startedAt:  time.Now(),
	}
	return true
}

func (r *registry) Remove(key Key) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.conns, key)
}

func (r *registry) RecordWeb(key Key) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if e, ok := r.conns[key]; ok {
		e.web++
	}
}

func (r *registry) RecordRpc(key Key) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if e, ok := r.conns[key]; ok {
		e.rpc++
	}
}

func (r *registry) RecordFailure(key Key) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if e, ok := r.conns[key]; ok {
		e.failures++
	}
}

func (r *registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.conns)
}

// Snapshot returns the live connections ordered by start time.
func (r *registry) Snapshot() []Detail {
	r.mu.RLock()
	defer r.mu.RUnlock()

	details := make([]Detail, 0, len(r.conns))
	for key, e := range r.conns {
		details = append(details, Detail{
			ID:          key,
			RemoteAddr:  e.remoteAddr,
			StartedAt:   e.startedAt,
			WebRequests: e.web,
			RpcRequests: e.rpc,
			Failures:    e.failures,
		})
	}
	sort.Slice(details, func(i, j int) bool {
		if details[i].StartedAt.Equal(details[j].StartedAt) {
			return details[i].ID < details[j].ID
		}
		return details[i].StartedAt.Before(details[j].StartedAt)
	})
	return details
}

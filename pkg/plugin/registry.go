package plugin

import (
	"sync"
	"sync/atomic"
)

// Handle is the opaque id a protocol shim hands to the host for an instance.
// Zero is never a valid handle.
type Handle uintptr

// Registry maps handles to live instances. Get is lock-free so the shim may
// resolve a handle from the audio callback.
type Registry struct {
	instances sync.Map // Handle -> *Instance
	next      atomic.Uintptr
	count     atomic.Int64
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Register stores inst and returns its new handle.
func (r *Registry) Register(inst *Instance) Handle {
	h := Handle(r.next.Add(1))
	r.instances.Store(h, inst)
	r.count.Add(1)
	return h
}

// Get returns the instance for h.
func (r *Registry) Get(h Handle) (*Instance, bool) {
	if h == 0 {
		return nil, false
	}
	v, ok := r.instances.Load(h)
	if !ok {
		return nil, false
	}
	return v.(*Instance), true
}

// Release closes and forgets the instance for h. It reports whether h was
// registered.
func (r *Registry) Release(h Handle) bool {
	v, ok := r.instances.LoadAndDelete(h)
	if !ok {
		return false
	}
	r.count.Add(-1)
	v.(*Instance).Close()
	return true
}

// Len returns the number of live instances.
func (r *Registry) Len() int {
	return int(r.count.Load())
}

package coordinator

import "fmt"

// Router maps keywords to storage-node addresses via a Ring. It has no
// mutable state of its own: the ring it wraps is immutable for the
// coordinator's lifetime, so Router needs no locking.
type Router struct {
	ring *Ring
}

// NewRouter builds a Router over storageAddrs, each given virtualNodes
// positions on the ring.
func NewRouter(storageAddrs []string, virtualNodes int) (*Router, error) {
	if len(storageAddrs) == 0 {
		return nil, fmt.Errorf("coordinator: no storage-node addresses configured")
	}
	return &Router{ring: NewRing(storageAddrs, virtualNodes)}, nil
}

// Route returns the storage-node address that owns keyword.
func (r *Router) Route(keyword string) (string, error) {
	addr, ok := r.ring.Successor(keyword)
	if !ok {
		return "", fmt.Errorf("coordinator: empty routing ring")
	}
	return addr, nil
}

// AllNodes returns every storage-node address the router was built with.
func (r *Router) AllNodes() []string {
	return r.ring.AllNodes()
}

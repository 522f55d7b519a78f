// Package storage implements a storage node: a process that holds one
// authenticated data structure instance per keyword and answers
// Add/Query/Delete RPCs against them.
package storage

import (
	"sync"

	"github.com/kazmiller0/distributed-storage-system/ads"
	"github.com/kazmiller0/distributed-storage-system/storage/kv"
)

// keywordInstance pairs one keyword's ADS instance with the lock that
// serializes mutations against it. Queries take the read side of this
// lock, so any number of readers can proceed concurrently with each other
// as long as no writer holds it; Add and Delete take the write side, so
// at most one mutation per keyword is ever in flight.
type keywordInstance struct {
	mu  sync.RWMutex
	ads ads.ADS
}

// Node is a storage node's entire per-process state: which ADS kind it
// runs, an optional durable store backing every keyword's ADS instance,
// and the keyword-to-instance map behind a reader/writer lock. The map
// lock is held only long enough to look up or insert an entry — never
// for the duration of an ADS operation — so unrelated keywords never
// wait on each other.
type Node struct {
	kind      ads.Kind
	store     kv.DB
	mu        sync.RWMutex
	instances map[string]*keywordInstance
}

// NewNode returns an empty, purely in-memory storage node that
// instantiates kind for every new keyword it sees.
func NewNode(kind ads.Kind) *Node {
	return &Node{
		kind:      kind,
		instances: make(map[string]*keywordInstance),
	}
}

// NewNodeWithStore returns a storage node that additionally persists
// every keyword's fid list to store, so state survives a process
// restart: the first Add, Delete or Query touching a keyword after
// restart restores it from store before serving the request.
func NewNodeWithStore(kind ads.Kind, store kv.DB) *Node {
	return &Node{
		kind:      kind,
		store:     store,
		instances: make(map[string]*keywordInstance),
	}
}

// getOrCreate returns the keyword's instance, creating it under a brief
// exclusive map lock if this is the keyword's first mutation in this
// process. Creation restores any state store already holds for keyword.
func (n *Node) getOrCreate(keyword string) (*keywordInstance, error) {
	n.mu.RLock()
	inst, ok := n.instances[keyword]
	n.mu.RUnlock()
	if ok {
		return inst, nil
	}

	n.mu.Lock()
	defer n.mu.Unlock()
	if inst, ok = n.instances[keyword]; ok {
		return inst, nil
	}
	instance, err := ads.NewWithStore(n.kind, n.store, keyword)
	if err != nil {
		return nil, err
	}
	inst = &keywordInstance{ads: instance}
	n.instances[keyword] = inst
	return inst, nil
}

func (n *Node) lookup(keyword string) (*keywordInstance, bool) {
	n.mu.RLock()
	defer n.mu.RUnlock()
	inst, ok := n.instances[keyword]
	return inst, ok
}

// hasPersisted reports whether store holds a fid list for keyword, so
// Query can restore it without allocating state for a genuinely unknown
// keyword.
func (n *Node) hasPersisted(keyword string) (bool, error) {
	if n.store == nil {
		return false, nil
	}
	_, err := n.store.Get([]byte(keyword))
	if err != nil {
		if err == n.store.ErrNotFound() {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// Add delegates to keyword's ADS instance under its exclusive lock,
// creating the instance on first use.
func (n *Node) Add(keyword, fid string) (proof, rootHash []byte, err error) {
	inst, err := n.getOrCreate(keyword)
	if err != nil {
		return nil, nil, err
	}
	inst.mu.Lock()
	defer inst.mu.Unlock()
	return inst.ads.Add(keyword, fid)
}

// Query delegates to keyword's ADS instance under its shared lock. A
// keyword this process has never instantiated and store never persisted
// returns an empty result rather than creating an instance — a query
// must never have the side effect of allocating state for a genuinely
// unknown keyword. A keyword store does hold state for, but that this
// process restarted since last touching, is restored first.
func (n *Node) Query(keyword string) (fids []string, proof []byte, err error) {
	inst, ok := n.lookup(keyword)
	if !ok {
		persisted, err := n.hasPersisted(keyword)
		if err != nil {
			return nil, nil, err
		}
		if !persisted {
			return []string{}, nil, nil
		}
		inst, err = n.getOrCreate(keyword)
		if err != nil {
			return nil, nil, err
		}
	}
	inst.mu.RLock()
	defer inst.mu.RUnlock()
	return inst.ads.Query(keyword)
}

// Delete delegates to keyword's ADS instance under its exclusive lock. A
// keyword with no instance and no state in store is a no-op: there is
// nothing to delete, so nothing is returned and no proof is owed. A
// keyword store does hold state for is restored first, as in Query.
func (n *Node) Delete(keyword, fid string) (proof, rootHash []byte, err error) {
	inst, ok := n.lookup(keyword)
	if !ok {
		persisted, err := n.hasPersisted(keyword)
		if err != nil {
			return nil, nil, err
		}
		if !persisted {
			return nil, nil, nil
		}
		inst, err = n.getOrCreate(keyword)
		if err != nil {
			return nil, nil, err
		}
	}
	inst.mu.Lock()
	defer inst.mu.Unlock()
	return inst.ads.Delete(keyword, fid)
}

package ads

import (
	"sync"

	"github.com/kazmiller0/distributed-storage-system/crypto"
	"github.com/kazmiller0/distributed-storage-system/patricia"
	"github.com/kazmiller0/distributed-storage-system/storage/kv"
)

// mptEntry is one keyword's independent trie: it holds exactly one entry,
// the keyword itself, mapped to its current length-prefixed fid-list
// encoding. fids is kept alongside in plaintext so Query and the next
// mutation don't need to decode the trie's stored value back out.
type mptEntry struct {
	trie *patricia.Trie
	fids []string
}

// MPTADS is the Merkle-Patricia-backed authenticated data structure. A
// storage node instantiates it once per keyword, as it does AccumulatorADS,
// but MPTADS also keys its tries by keyword internally: each keyword gets a
// fresh single-entry trie rather than sharing one trie across keywords, so
// one keyword's root digest never depends on another keyword's history.
// store is nil unless the instance was built with NewMPTADSWithStore, in
// which case every mutation also durably persists the fid list.
type MPTADS struct {
	mu      sync.Mutex
	entries map[string]*mptEntry
	store   kv.DB
}

// NewMPTADS returns an empty, purely in-memory MPT-backed instance.
func NewMPTADS() *MPTADS {
	return &MPTADS{entries: make(map[string]*mptEntry)}
}

// NewMPTADSWithStore returns an MPT-backed instance that persists
// keyword's fid list to store after every mutation, restoring it from
// store first if a prior run already recorded one.
func NewMPTADSWithStore(store kv.DB, keyword string) (*MPTADS, error) {
	m := &MPTADS{entries: make(map[string]*mptEntry), store: store}
	blob, err := store.Get([]byte(keyword))
	if err != nil {
		if err == store.ErrNotFound() {
			return m, nil
		}
		return nil, err
	}
	fids, err := DecodeFids(blob)
	if err != nil {
		return nil, err
	}
	if len(fids) == 0 {
		return m, nil
	}
	trie, err := patricia.NewTrie()
	if err != nil {
		return nil, ErrorInternal.Error()
	}
	if err := trie.Insert(keywordIndex(keyword), keyword, EncodeFids(fids)); err != nil {
		return nil, ErrorInternal.Error()
	}
	trie.Recompute()
	m.entries[keyword] = &mptEntry{trie: trie, fids: fids}
	return m, nil
}

func keywordIndex(keyword string) []byte {
	return crypto.Digest([]byte(keyword))
}

// persist writes keyword's fid list to store, or removes it entirely
// once the list is empty. It is a no-op when store is nil.
func (m *MPTADS) persist(keyword string, fids []string) error {
	if m.store == nil {
		return nil
	}
	key := []byte(keyword)
	if len(fids) == 0 {
		if err := m.store.Delete(key); err != nil && err != m.store.ErrNotFound() {
			return ErrorInternal.Error()
		}
		return nil
	}
	if err := m.store.Put(key, EncodeFids(fids)); err != nil {
		return ErrorInternal.Error()
	}
	return nil
}

// selfVerifyEntry re-derives keyword's authentication path from the trie
// and checks it against value and the trie's current root, catching a
// corrupted insert before a proof built on it ever reaches the
// coordinator.
func selfVerifyEntry(trie *patricia.Trie, keyword string, index, value []byte) bool {
	ap := trie.Get(index)
	return ap.Verify(keyword, value, trie.RootHash())
}

// Add records fid under keyword. Re-adding a (keyword, fid) pair already
// present is a no-op returning the unchanged root digest.
func (m *MPTADS) Add(keyword, fid string) ([]byte, []byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entries[keyword]
	if !ok {
		trie, err := patricia.NewTrie()
		if err != nil {
			return nil, nil, ErrorInternal.Error()
		}
		trie.Recompute()
		e = &mptEntry{trie: trie}
		m.entries[keyword] = e
	}

	if _, ok := appendFid(e.fids, fid); !ok {
		root := e.trie.RootHash()
		return root, root, nil
	}

	e.fids = append(e.fids, fid)
	index := keywordIndex(keyword)
	if err := e.trie.Insert(index, keyword, EncodeFids(e.fids)); err != nil {
		return nil, nil, ErrorInternal.Error()
	}
	e.trie.Recompute()
	if !selfVerifyEntry(e.trie, keyword, index, EncodeFids(e.fids)) {
		return nil, nil, ErrorInternal.Error()
	}
	if err := m.persist(keyword, e.fids); err != nil {
		return nil, nil, err
	}
	root := e.trie.RootHash()
	return root, root, nil
}

// Query returns the fid list recorded under keyword, in insertion order,
// with the keyword's current root digest as proof. An unknown keyword
// returns an empty fid list and an empty proof.
func (m *MPTADS) Query(keyword string) ([]string, []byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entries[keyword]
	if !ok || len(e.fids) == 0 {
		return []string{}, nil, nil
	}
	return append([]string{}, e.fids...), e.trie.RootHash(), nil
}

// Delete removes fid from keyword. It is a no-op, returning the unchanged
// root digest, if fid is absent. If keyword was never seen it is a no-op
// returning an empty proof, matching Query's absence convention. Removing
// the last fid drops the keyword's trie entirely rather than leaving an
// empty one behind.
func (m *MPTADS) Delete(keyword, fid string) ([]byte, []byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entries[keyword]
	if !ok {
		return nil, nil, nil
	}

	remaining, ok := removeFid(e.fids, fid)
	if !ok {
		root := e.trie.RootHash()
		return root, root, nil
	}

	e.fids = remaining
	if len(remaining) == 0 {
		e.trie.Delete(keywordIndex(keyword))
		e.trie.Recompute()
		root := e.trie.RootHash()
		delete(m.entries, keyword)
		if err := m.persist(keyword, nil); err != nil {
			return nil, nil, err
		}
		return root, root, nil
	}

	index := keywordIndex(keyword)
	if err := e.trie.Insert(index, keyword, EncodeFids(remaining)); err != nil {
		return nil, nil, ErrorInternal.Error()
	}
	e.trie.Recompute()
	if !selfVerifyEntry(e.trie, keyword, index, EncodeFids(remaining)) {
		return nil, nil, ErrorInternal.Error()
	}
	if err := m.persist(keyword, remaining); err != nil {
		return nil, nil, err
	}
	root := e.trie.RootHash()
	return root, root, nil
}

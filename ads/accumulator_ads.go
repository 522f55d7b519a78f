package ads

import (
	"sync"

	"github.com/kazmiller0/distributed-storage-system/accumulator"
	"github.com/kazmiller0/distributed-storage-system/storage/kv"
)

// AccumulatorADS is the accumulator-backed authenticated data structure a
// storage node runs one instance of per keyword: a single dynamic
// accumulator committing to the hashed (keyword, fid) pairs added under it,
// plus the plaintext fid list needed to answer queries. store is nil
// unless the instance was built with NewAccumulatorADSWithStore, in which
// case every mutation also durably persists the fid list.
type AccumulatorADS struct {
	mu       sync.Mutex
	acc      *accumulator.Accumulator
	fids     []string
	store    kv.DB
	storeKey []byte
}

// NewAccumulatorADS returns an empty, purely in-memory accumulator-backed
// instance.
func NewAccumulatorADS() *AccumulatorADS {
	return &AccumulatorADS{acc: accumulator.New()}
}

// NewAccumulatorADSWithStore returns an accumulator-backed instance that
// persists keyword's fid list to store after every mutation, restoring it
// from store first if a prior run already recorded one. The restore
// replays each persisted fid through Add so the accumulator itself ends
// up in the same state a live run would have reached.
func NewAccumulatorADSWithStore(store kv.DB, keyword string) (*AccumulatorADS, error) {
	a := &AccumulatorADS{acc: accumulator.New(), store: store, storeKey: []byte(keyword)}
	blob, err := store.Get(a.storeKey)
	if err != nil {
		if err == store.ErrNotFound() {
			return a, nil
		}
		return nil, err
	}
	fids, err := DecodeFids(blob)
	if err != nil {
		return nil, err
	}
	for _, fid := range fids {
		if _, _, err := a.Add(keyword, fid); err != nil {
			return nil, err
		}
	}
	return a, nil
}

// persist writes the current fid list to store under storeKey, or removes
// the key entirely once the fid list is empty. It is a no-op when store
// is nil.
func (a *AccumulatorADS) persist() error {
	if a.store == nil {
		return nil
	}
	if len(a.fids) == 0 {
		if err := a.store.Delete(a.storeKey); err != nil && err != a.store.ErrNotFound() {
			return ErrorInternal.Error()
		}
		return nil
	}
	if err := a.store.Put(a.storeKey, EncodeFids(a.fids)); err != nil {
		return ErrorInternal.Error()
	}
	return nil
}

// Add records fid under keyword. Re-adding a (keyword, fid) pair already
// present is a no-op: it returns a valid proof with an unchanged root
// digest rather than mutating the accumulator, per this system's
// idempotent-add contract.
func (a *AccumulatorADS) Add(keyword, fid string) ([]byte, []byte, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	element := accumulator.Element(keyword, fid)
	if _, ok := appendFid(a.fids, fid); !ok {
		cur := a.acc.Value()
		proof := &accumulator.AddProof{OldValue: cur, NewValue: cur, Element: element}
		return proof.Marshal(), accumulator.MarshalValue(cur), nil
	}

	proof, err := a.acc.Add(element)
	if err != nil {
		return nil, nil, ErrorInternal.Error()
	}
	a.fids = append(a.fids, fid)
	if err := a.persist(); err != nil {
		return nil, nil, err
	}
	return proof.Marshal(), accumulator.MarshalValue(a.acc.Value()), nil
}

// Query returns the fid list recorded under keyword, together with a
// membership proof for one representative fid (the first added). Proving
// membership of the whole returned set would require aggregating many
// witnesses into one, which this accumulator construction does not
// support; the coordinator is trusted to treat the returned list as a
// unit once the representative proof verifies.
func (a *AccumulatorADS) Query(keyword string) ([]string, []byte, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	fids := append([]string{}, a.fids...)
	if len(fids) == 0 {
		return fids, nil, nil
	}

	element := accumulator.Element(keyword, fids[0])
	proof, err := a.acc.Membership(element)
	if err != nil {
		return nil, nil, ErrorInternal.Error()
	}
	return fids, proof.Marshal(a.acc.Value()), nil
}

// Delete removes fid from keyword. It is a no-op, returning a valid proof
// and the unchanged root digest, if keyword or fid is absent.
func (a *AccumulatorADS) Delete(keyword, fid string) ([]byte, []byte, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	element := accumulator.Element(keyword, fid)
	remaining, ok := removeFid(a.fids, fid)
	if !ok {
		cur := a.acc.Value()
		proof := &accumulator.DeleteProof{OldValue: cur, NewValue: cur, Element: element}
		return proof.Marshal(), accumulator.MarshalValue(cur), nil
	}

	proof, err := a.acc.Delete(element)
	if err != nil {
		return nil, nil, ErrorInternal.Error()
	}
	a.fids = remaining
	if err := a.persist(); err != nil {
		return nil, nil, err
	}
	return proof.Marshal(), accumulator.MarshalValue(a.acc.Value()), nil
}

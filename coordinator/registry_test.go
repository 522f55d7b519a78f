package coordinator

import (
	"reflect"
	"testing"
)

func TestRegistryUpdateAndGet(t *testing.T) {
	r := NewRegistry()
	if _, ok := r.Get("node1"); ok {
		t.Error("expected no entry before any update")
	}
	r.Update("node1", []byte{1, 2, 3})
	got, ok := r.Get("node1")
	if !ok {
		t.Fatal("expected entry after update")
	}
	if !reflect.DeepEqual(got, []byte{1, 2, 3}) {
		t.Errorf("got %v", got)
	}

	r.Update("node1", []byte{4, 5})
	got, _ = r.Get("node1")
	if !reflect.DeepEqual(got, []byte{4, 5}) {
		t.Errorf("expected update to overwrite, got %v", got)
	}
}

func TestRegistrySnapshotIsIndependentCopy(t *testing.T) {
	r := NewRegistry()
	r.Update("node1", []byte{9})
	snap := r.Snapshot()
	snap["node1"][0] = 0
	got, _ := r.Get("node1")
	if got[0] != 9 {
		t.Error("mutating a snapshot must not affect the registry")
	}
}

package storage

import (
	"reflect"
	"testing"

	"github.com/kazmiller0/distributed-storage-system/ads"
)

func TestNodeAddQueryDelete(t *testing.T) {
	for _, kind := range []ads.Kind{ads.KindAccumulator, ads.KindMPT} {
		t.Run(string(kind), func(t *testing.T) {
			n := NewNode(kind)
			if _, _, err := n.Add("rust", "file1"); err != nil {
				t.Fatal(err)
			}
			if _, _, err := n.Add("rust", "file2"); err != nil {
				t.Fatal(err)
			}
			fids, _, err := n.Query("rust")
			if err != nil {
				t.Fatal(err)
			}
			if !reflect.DeepEqual(fids, []string{"file1", "file2"}) {
				t.Errorf("got %v", fids)
			}

			if _, _, err := n.Delete("rust", "file1"); err != nil {
				t.Fatal(err)
			}
			fids, _, err = n.Query("rust")
			if err != nil {
				t.Fatal(err)
			}
			if !reflect.DeepEqual(fids, []string{"file2"}) {
				t.Errorf("got %v", fids)
			}
		})
	}
}

func TestNodeQueryUnknownKeywordNoAllocation(t *testing.T) {
	n := NewNode(ads.KindAccumulator)
	fids, proof, err := n.Query("never-seen")
	if err != nil {
		t.Fatal(err)
	}
	if len(fids) != 0 || proof != nil {
		t.Errorf("expected empty result, got fids=%v proof=%v", fids, proof)
	}
	if _, ok := n.lookup("never-seen"); ok {
		t.Error("query must not create an instance for an unknown keyword")
	}
}

func TestNodeDeleteUnknownKeywordIsNoOp(t *testing.T) {
	n := NewNode(ads.KindAccumulator)
	proof, rootHash, err := n.Delete("never-seen", "file1")
	if err != nil {
		t.Fatal(err)
	}
	if proof != nil || rootHash != nil {
		t.Errorf("expected nil proof/root for unknown keyword, got %v %v", proof, rootHash)
	}
}

func TestNodeIndependentKeywords(t *testing.T) {
	n := NewNode(ads.KindMPT)
	if _, _, err := n.Add("rust", "file1"); err != nil {
		t.Fatal(err)
	}
	if _, _, err := n.Add("storage", "file1"); err != nil {
		t.Fatal(err)
	}
	if _, _, err := n.Delete("rust", "file1"); err != nil {
		t.Fatal(err)
	}
	fids, _, err := n.Query("storage")
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(fids, []string{"file1"}) {
		t.Errorf("deleting one keyword must not affect another, got %v", fids)
	}
}

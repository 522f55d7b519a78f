package storage

import (
	"io/ioutil"
	"os"
	"reflect"
	"testing"

	"github.com/syndtr/goleveldb/leveldb"

	"github.com/kazmiller0/distributed-storage-system/ads"
	"github.com/kazmiller0/distributed-storage-system/storage/kv"
	"github.com/kazmiller0/distributed-storage-system/storage/kv/leveldbkv"
)

// copyrighted by the Coname authors
func withDB(f func(kv.DB)) {
	dir, err := ioutil.TempDir("", "storage")
	if err != nil {
		panic(err)
	}
	defer os.RemoveAll(dir)
	db, err := leveldb.OpenFile(dir, nil)
	if err != nil {
		panic(err)
	}
	defer db.Close()
	f(leveldbkv.Wrap(db))
}

func TestNodeQueryRestoresPersistedKeywordAfterRestart(t *testing.T) {
	for _, kind := range []ads.Kind{ads.KindAccumulator, ads.KindMPT} {
		t.Run(string(kind), func(t *testing.T) {
			withDB(func(store kv.DB) {
				n1 := NewNodeWithStore(kind, store)
				if _, _, err := n1.Add("rust", "file1"); err != nil {
					t.Fatal(err)
				}
				if _, _, err := n1.Add("rust", "file2"); err != nil {
					t.Fatal(err)
				}

				// n2 models the same store after a process restart: it has
				// never touched "rust" in its own instances map.
				n2 := NewNodeWithStore(kind, store)
				if _, ok := n2.lookup("rust"); ok {
					t.Fatal("fresh node must not already hold an instance")
				}
				fids, _, err := n2.Query("rust")
				if err != nil {
					t.Fatal(err)
				}
				if !reflect.DeepEqual(fids, []string{"file1", "file2"}) {
					t.Errorf("got %v, want restored insertion order", fids)
				}
			})
		})
	}
}

func TestNodeQueryUnknownKeywordStillNoAllocation(t *testing.T) {
	withDB(func(store kv.DB) {
		n := NewNodeWithStore(ads.KindAccumulator, store)
		fids, proof, err := n.Query("never-seen")
		if err != nil {
			t.Fatal(err)
		}
		if len(fids) != 0 || proof != nil {
			t.Errorf("expected empty result, got fids=%v proof=%v", fids, proof)
		}
		if _, ok := n.lookup("never-seen"); ok {
			t.Error("query must not create an instance for a keyword store never persisted")
		}
	})
}

func TestNodeAddDeleteSurvivesRestart(t *testing.T) {
	withDB(func(store kv.DB) {
		n1 := NewNodeWithStore(ads.KindMPT, store)
		if _, _, err := n1.Add("rust", "file1"); err != nil {
			t.Fatal(err)
		}
		if _, _, err := n1.Add("rust", "file2"); err != nil {
			t.Fatal(err)
		}
		if _, _, err := n1.Delete("rust", "file1"); err != nil {
			t.Fatal(err)
		}

		n2 := NewNodeWithStore(ads.KindMPT, store)
		fids, _, err := n2.Query("rust")
		if err != nil {
			t.Fatal(err)
		}
		if !reflect.DeepEqual(fids, []string{"file2"}) {
			t.Errorf("got %v", fids)
		}
	})
}

// Package coordinator implements the verifying front end clients talk to:
// consistent-hash routing of keywords to storage nodes, independent proof
// verification of every storage-node response, per-node root-digest
// tracking, and boolean-query planning with multi-proof composition.
package coordinator

import (
	"context"
	"fmt"

	"github.com/kazmiller0/distributed-storage-system/ads"
	"github.com/kazmiller0/distributed-storage-system/utils/binutils"
)

// Coordinator ties a Router, a Verifier and a Registry together into the
// Add/Query/Delete/Update operations a client calls.
type Coordinator struct {
	kind     ads.Kind
	router   *Router
	verifier *Verifier
	registry *Registry
	clients  map[string]*StorageClient
	logger   *binutils.Logger
}

// New builds a Coordinator that verifies proofs of kind and routes across
// storageAddrs, each given virtualNodes positions on the ring.
func New(kind ads.Kind, storageAddrs []string, virtualNodes int, logger *binutils.Logger) (*Coordinator, error) {
	router, err := NewRouter(storageAddrs, virtualNodes)
	if err != nil {
		return nil, err
	}
	clients := make(map[string]*StorageClient, len(storageAddrs))
	for _, addr := range storageAddrs {
		clients[addr] = NewStorageClient(addr)
	}
	return &Coordinator{
		kind:     kind,
		router:   router,
		verifier: NewVerifier(kind),
		registry: NewRegistry(),
		clients:  clients,
		logger:   logger,
	}, nil
}

// Registry exposes the coordinator's per-node root-digest tracker for
// read-only inspection (tests, diagnostics).
func (c *Coordinator) Registry() *Registry { return c.registry }

func (c *Coordinator) clientFor(keyword string) (string, *StorageClient, error) {
	addr, err := c.router.Route(keyword)
	if err != nil {
		return "", nil, err
	}
	client, ok := c.clients[addr]
	if !ok {
		return "", nil, fmt.Errorf("coordinator: no client for routed address %s", addr)
	}
	return addr, client, nil
}

// addOne routes, issues storage.Add for one keyword, verifies the proof,
// and updates the registry on success.
func (c *Coordinator) addOne(ctx context.Context, keyword, fid string) error {
	addr, client, err := c.clientFor(keyword)
	if err != nil {
		return fmt.Errorf("keyword %q: %w", keyword, err)
	}
	proof, _, err := client.Add(ctx, keyword, fid)
	if err != nil {
		return fmt.Errorf("keyword %q: %w", keyword, err)
	}
	ok, root, err := c.verifier.VerifyAdd(proof)
	if err != nil {
		return fmt.Errorf("keyword %q: %w", keyword, err)
	}
	if !ok {
		return fmt.Errorf("keyword %q: %s", keyword, ads.ErrorInvalidProof.Error())
	}
	c.registry.Update(addr, root)
	return nil
}

// deleteOne mirrors addOne for storage.Delete.
func (c *Coordinator) deleteOne(ctx context.Context, keyword, fid string) error {
	addr, client, err := c.clientFor(keyword)
	if err != nil {
		return fmt.Errorf("keyword %q: %w", keyword, err)
	}
	proof, _, err := client.Delete(ctx, keyword, fid)
	if err != nil {
		return fmt.Errorf("keyword %q: %w", keyword, err)
	}
	ok, root, err := c.verifier.VerifyDelete(proof)
	if err != nil {
		return fmt.Errorf("keyword %q: %w", keyword, err)
	}
	if !ok {
		return fmt.Errorf("keyword %q: %s", keyword, ads.ErrorInvalidProof.Error())
	}
	c.registry.Update(addr, root)
	return nil
}

// queryOne routes, issues storage.Query for one keyword, and verifies the
// returned membership proof.
func (c *Coordinator) queryOne(ctx context.Context, keyword string) ([]string, error) {
	_, client, err := c.clientFor(keyword)
	if err != nil {
		return nil, err
	}
	fids, proof, err := client.Query(ctx, keyword)
	if err != nil {
		return nil, err
	}
	ok, err := c.verifier.VerifyQuery(proof)
	if err != nil {
		return nil, fmt.Errorf("keyword %q: %w", keyword, err)
	}
	if !ok {
		return nil, fmt.Errorf("keyword %q: %s", keyword, ads.ErrorInvalidProof.Error())
	}
	return fids, nil
}

// Add records fid under every keyword. A verification failure on any
// keyword fails the whole request; keywords already applied before the
// failure are not rolled back, and the caller is told which keyword
// failed first.
func (c *Coordinator) Add(ctx context.Context, fid string, keywords []string) (bool, string) {
	for _, kw := range keywords {
		if err := c.addOne(ctx, kw, fid); err != nil {
			return false, err.Error()
		}
	}
	return true, ""
}

// Delete removes fid from every keyword, with the same all-or-first-
// failure-reported semantics as Add.
func (c *Coordinator) Delete(ctx context.Context, fid string, keywords []string) (bool, string) {
	for _, kw := range keywords {
		if err := c.deleteOne(ctx, kw, fid); err != nil {
			return false, err.Error()
		}
	}
	return true, ""
}

// Update renames fid from oldKeyword to newKeyword: a Delete on
// oldKeyword followed by an Add on newKeyword, each verified
// independently. If the Delete verifies but the Add fails, the operation
// is reported as failed and the Delete is NOT undone.
func (c *Coordinator) Update(ctx context.Context, fid, oldKeyword, newKeyword string) (bool, string) {
	if err := c.deleteOne(ctx, oldKeyword, fid); err != nil {
		return false, err.Error()
	}
	if err := c.addOne(ctx, newKeyword, fid); err != nil {
		return false, fmt.Sprintf("delete of %q succeeded but add of %q failed: %s", oldKeyword, newKeyword, err.Error())
	}
	return true, ""
}

// Query evaluates a boolean query expression: every distinct leaf keyword
// is queried and verified independently (aborting on the first failing
// leaf), then the expression is evaluated bottom-up over the resulting
// fid lists. The composite proof returned concatenates every leaf's proof
// and can be independently re-checked, but it does not itself attest to
// the set algebra — the coordinator is trusted for that step.
func (c *Coordinator) Query(ctx context.Context, expression string) (bool, []string, []byte, string) {
	expr, err := ParseExpression(expression)
	if err != nil {
		return false, nil, nil, err.Error()
	}

	leaves := Keywords(expr)
	results := make(map[string][]string, len(leaves))
	proofs := make([][]byte, 0, len(leaves))

	for _, kw := range leaves {
		_, client, err := c.clientFor(kw)
		if err != nil {
			return false, nil, nil, err.Error()
		}
		fids, proof, err := client.Query(ctx, kw)
		if err != nil {
			return false, nil, nil, fmt.Sprintf("keyword %q: %s", kw, err.Error())
		}
		ok, err := c.verifier.VerifyQuery(proof)
		if err != nil {
			return false, nil, nil, fmt.Sprintf("keyword %q: %s", kw, err.Error())
		}
		if !ok {
			return false, nil, nil, fmt.Sprintf("keyword %q: %s", kw, ads.ErrorInvalidProof.Error())
		}
		results[kw] = fids
		proofs = append(proofs, proof)
	}

	fids, err := Evaluate(expr, results)
	if err != nil {
		return false, nil, nil, err.Error()
	}

	composite, err := MarshalComposite(c.kind, proofs)
	if err != nil {
		return false, nil, nil, err.Error()
	}
	return true, fids, composite, ""
}

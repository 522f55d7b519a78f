package coordinator

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"time"

	"github.com/kazmiller0/distributed-storage-system/wire"
)

// callTimeout bounds a single storage-node round trip. On expiry the
// caller reports a Timeout error and does not retry the mutation, since
// retrying could double-apply it.
const callTimeout = 10 * time.Second

// StorageClient is a thin RPC caller against one storage node's wire
// protocol. The coordinator holds one per routing decision; it dials
// fresh for every call rather than pooling connections, mirroring the
// storage node's own one-request-per-connection handling.
type StorageClient struct {
	addr string
}

// NewStorageClient returns a client that dials addr on every call.
func NewStorageClient(addr string) *StorageClient {
	return &StorageClient{addr: addr}
}

func (c *StorageClient) call(ctx context.Context, method string, body, out interface{}) error {
	dialer := net.Dialer{}
	conn, err := dialer.DialContext(ctx, "tcp", c.addr)
	if err != nil {
		return fmt.Errorf("coordinator: dial %s: %w", c.addr, err)
	}
	defer conn.Close()

	deadline, ok := ctx.Deadline()
	if !ok {
		deadline = time.Now().Add(callTimeout)
	}
	conn.SetDeadline(deadline)

	req, err := wire.NewRequest(method, body)
	if err != nil {
		return err
	}
	if err := wire.WriteJSON(conn, req); err != nil {
		return fmt.Errorf("coordinator: write to %s: %w", c.addr, err)
	}

	var resp wire.Response
	if err := wire.ReadJSON(conn, &resp); err != nil {
		return fmt.Errorf("coordinator: read from %s: %w", c.addr, err)
	}
	if !resp.OK {
		return fmt.Errorf("coordinator: %s reported error %d: %s", c.addr, resp.ErrorCode, resp.ErrorMessage)
	}
	if out != nil {
		return json.Unmarshal(resp.Body, out)
	}
	return nil
}

// Add issues storage.Add for (keyword, fid) and returns the raw proof and
// root-hash bytes the storage node reported.
func (c *StorageClient) Add(ctx context.Context, keyword, fid string) (proof, rootHash []byte, err error) {
	var resp wire.StorageAddResponse
	if err := c.call(ctx, wire.MethodStorageAdd, wire.StorageAddRequest{Keyword: keyword, Fid: fid}, &resp); err != nil {
		return nil, nil, err
	}
	return resp.Proof, resp.RootHash, nil
}

// Query issues storage.Query for keyword and returns the fid list and
// proof the storage node reported.
func (c *StorageClient) Query(ctx context.Context, keyword string) (fids []string, proof []byte, err error) {
	var resp wire.StorageQueryResponse
	if err := c.call(ctx, wire.MethodStorageQuery, wire.StorageQueryRequest{Keyword: keyword}, &resp); err != nil {
		return nil, nil, err
	}
	return resp.Fids, resp.Proof, nil
}

// Delete issues storage.Delete for (keyword, fid) and returns the raw
// proof and root-hash bytes the storage node reported.
func (c *StorageClient) Delete(ctx context.Context, keyword, fid string) (proof, rootHash []byte, err error) {
	var resp wire.StorageDeleteResponse
	if err := c.call(ctx, wire.MethodStorageDelete, wire.StorageDeleteRequest{Keyword: keyword, Fid: fid}, &resp); err != nil {
		return nil, nil, err
	}
	return resp.Proof, resp.RootHash, nil
}

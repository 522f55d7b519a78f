// Package client is a thin RPC caller against a coordinator: it dials the
// coordinator's wire protocol and exposes Add/Query/Delete/Update as plain
// Go methods. It carries no verification logic of its own — trusting the
// coordinator's success flag is the whole point of routing through it.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"time"

	"github.com/kazmiller0/distributed-storage-system/wire"
)

// defaultTimeout bounds a call when the caller's context carries no
// deadline of its own.
const defaultTimeout = 30 * time.Second

// Client is a thin RPC caller against one coordinator address.
type Client struct {
	addr string
}

// New returns a Client that dials addr on every call.
func New(addr string) *Client {
	return &Client{addr: addr}
}

func (c *Client) call(ctx context.Context, method string, body, out interface{}) error {
	dialer := net.Dialer{}
	conn, err := dialer.DialContext(ctx, "tcp", c.addr)
	if err != nil {
		return fmt.Errorf("client: dial %s: %w", c.addr, err)
	}
	defer conn.Close()

	deadline, ok := ctx.Deadline()
	if !ok {
		deadline = time.Now().Add(defaultTimeout)
	}
	conn.SetDeadline(deadline)

	req, err := wire.NewRequest(method, body)
	if err != nil {
		return err
	}
	if err := wire.WriteJSON(conn, req); err != nil {
		return fmt.Errorf("client: write to %s: %w", c.addr, err)
	}

	var resp wire.Response
	if err := wire.ReadJSON(conn, &resp); err != nil {
		return fmt.Errorf("client: read from %s: %w", c.addr, err)
	}
	if !resp.OK {
		return fmt.Errorf("client: %s reported error %d: %s", c.addr, resp.ErrorCode, resp.ErrorMessage)
	}
	return json.Unmarshal(resp.Body, out)
}

// Add associates fid with every keyword in keywords.
func (c *Client) Add(ctx context.Context, fid string, keywords []string) (success bool, message string, err error) {
	var resp wire.CoordinatorAddResponse
	if err := c.call(ctx, wire.MethodCoordinatorAdd, wire.CoordinatorAddRequest{Fid: fid, Keywords: keywords}, &resp); err != nil {
		return false, "", err
	}
	return resp.Success, resp.Message, nil
}

// Query evaluates a boolean query expression (a single keyword, or an
// infix expression over AND/OR/NOT and parentheses) and returns the
// matching fid list.
func (c *Client) Query(ctx context.Context, expression string) (success bool, fids []string, message string, err error) {
	var resp wire.CoordinatorQueryResponse
	if err := c.call(ctx, wire.MethodCoordinatorQuery, wire.CoordinatorQueryRequest{Expression: expression}, &resp); err != nil {
		return false, nil, "", err
	}
	return resp.Success, resp.Fids, resp.Message, nil
}

// Delete removes fid from every keyword in keywords.
func (c *Client) Delete(ctx context.Context, fid string, keywords []string) (success bool, message string, err error) {
	var resp wire.CoordinatorDeleteResponse
	if err := c.call(ctx, wire.MethodCoordinatorDelete, wire.CoordinatorDeleteRequest{Fid: fid, Keywords: keywords}, &resp); err != nil {
		return false, "", err
	}
	return resp.Success, resp.Message, nil
}

// Update renames fid from oldKeyword to newKeyword.
func (c *Client) Update(ctx context.Context, fid, oldKeyword, newKeyword string) (success bool, message string, err error) {
	var resp wire.CoordinatorUpdateResponse
	if err := c.call(ctx, wire.MethodCoordinatorUpdate, wire.CoordinatorUpdateRequest{Fid: fid, OldKeyword: oldKeyword, NewKeyword: newKeyword}, &resp); err != nil {
		return false, "", err
	}
	return resp.Success, resp.Message, nil
}

package storage

import (
	"encoding/json"
	"fmt"

	"github.com/kazmiller0/distributed-storage-system/ads"
	"github.com/kazmiller0/distributed-storage-system/wire"
)

// Service dispatches wire requests to a Node, translating ADS errors into
// wire error responses.
type Service struct {
	Node *Node
}

// Handle dispatches a single decoded request and returns the response to
// send back. It never returns an error itself — any failure is encoded
// into the returned Response so the caller can write it back to the wire
// the same way a success would be written.
func (s *Service) Handle(req *wire.Request) *wire.Response {
	switch req.Method {
	case wire.MethodStorageAdd:
		return s.handleAdd(req.Body)
	case wire.MethodStorageQuery:
		return s.handleQuery(req.Body)
	case wire.MethodStorageDelete:
		return s.handleDelete(req.Body)
	default:
		return wire.ErrResponse(int(ads.ErrorParse), fmt.Sprintf("unknown method %q", req.Method))
	}
}

func (s *Service) handleAdd(body json.RawMessage) *wire.Response {
	var req wire.StorageAddRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return wire.ErrResponse(int(ads.ErrorParse), err.Error())
	}
	proof, rootHash, err := s.Node.Add(req.Keyword, req.Fid)
	if err != nil {
		return wire.ErrResponse(int(ads.ErrorInternal), err.Error())
	}
	resp, err := wire.OKResponse(wire.StorageAddResponse{Proof: proof, RootHash: rootHash})
	if err != nil {
		return wire.ErrResponse(int(ads.ErrorInternal), err.Error())
	}
	return resp
}

func (s *Service) handleQuery(body json.RawMessage) *wire.Response {
	var req wire.StorageQueryRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return wire.ErrResponse(int(ads.ErrorParse), err.Error())
	}
	fids, proof, err := s.Node.Query(req.Keyword)
	if err != nil {
		return wire.ErrResponse(int(ads.ErrorInternal), err.Error())
	}
	resp, err := wire.OKResponse(wire.StorageQueryResponse{Fids: fids, Proof: proof})
	if err != nil {
		return wire.ErrResponse(int(ads.ErrorInternal), err.Error())
	}
	return resp
}

func (s *Service) handleDelete(body json.RawMessage) *wire.Response {
	var req wire.StorageDeleteRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return wire.ErrResponse(int(ads.ErrorParse), err.Error())
	}
	proof, rootHash, err := s.Node.Delete(req.Keyword, req.Fid)
	if err != nil {
		return wire.ErrResponse(int(ads.ErrorInternal), err.Error())
	}
	resp, err := wire.OKResponse(wire.StorageDeleteResponse{Proof: proof, RootHash: rootHash})
	if err != nil {
		return wire.ErrResponse(int(ads.ErrorInternal), err.Error())
	}
	return resp
}

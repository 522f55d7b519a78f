package coordinator

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/kazmiller0/distributed-storage-system/ads"
	"github.com/kazmiller0/distributed-storage-system/wire"
)

// Service dispatches wire requests to a Coordinator, mirroring the
// storage node's Service in shape.
type Service struct {
	Coordinator *Coordinator
}

// Handle dispatches a single decoded request and returns the response to
// send back, never failing itself — any error is encoded into the
// returned Response.
func (s *Service) Handle(ctx context.Context, req *wire.Request) *wire.Response {
	switch req.Method {
	case wire.MethodCoordinatorAdd:
		return s.handleAdd(ctx, req.Body)
	case wire.MethodCoordinatorQuery:
		return s.handleQuery(ctx, req.Body)
	case wire.MethodCoordinatorDelete:
		return s.handleDelete(ctx, req.Body)
	case wire.MethodCoordinatorUpdate:
		return s.handleUpdate(ctx, req.Body)
	default:
		return wire.ErrResponse(int(ads.ErrorParse), fmt.Sprintf("unknown method %q", req.Method))
	}
}

func (s *Service) handleAdd(ctx context.Context, body json.RawMessage) *wire.Response {
	var req wire.CoordinatorAddRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return wire.ErrResponse(int(ads.ErrorParse), err.Error())
	}
	success, message := s.Coordinator.Add(ctx, req.Fid, req.Keywords)
	resp, err := wire.OKResponse(wire.CoordinatorAddResponse{Success: success, Message: message})
	if err != nil {
		return wire.ErrResponse(int(ads.ErrorInternal), err.Error())
	}
	return resp
}

func (s *Service) handleDelete(ctx context.Context, body json.RawMessage) *wire.Response {
	var req wire.CoordinatorDeleteRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return wire.ErrResponse(int(ads.ErrorParse), err.Error())
	}
	success, message := s.Coordinator.Delete(ctx, req.Fid, req.Keywords)
	resp, err := wire.OKResponse(wire.CoordinatorDeleteResponse{Success: success, Message: message})
	if err != nil {
		return wire.ErrResponse(int(ads.ErrorInternal), err.Error())
	}
	return resp
}

func (s *Service) handleUpdate(ctx context.Context, body json.RawMessage) *wire.Response {
	var req wire.CoordinatorUpdateRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return wire.ErrResponse(int(ads.ErrorParse), err.Error())
	}
	success, message := s.Coordinator.Update(ctx, req.Fid, req.OldKeyword, req.NewKeyword)
	resp, err := wire.OKResponse(wire.CoordinatorUpdateResponse{Success: success, Message: message})
	if err != nil {
		return wire.ErrResponse(int(ads.ErrorInternal), err.Error())
	}
	return resp
}

func (s *Service) handleQuery(ctx context.Context, body json.RawMessage) *wire.Response {
	var req wire.CoordinatorQueryRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return wire.ErrResponse(int(ads.ErrorParse), err.Error())
	}
	success, fids, proof, message := s.Coordinator.Query(ctx, req.Expression)
	resp, err := wire.OKResponse(wire.CoordinatorQueryResponse{Success: success, Fids: fids, Proof: proof, Message: message})
	if err != nil {
		return wire.ErrResponse(int(ads.ErrorInternal), err.Error())
	}
	return resp
}

package hybrid

import (
	"context"

	"hybrid_gw/internal/message"
)

type pendingResult struct {
	resp *message.Response
	err  error
}

// PendingResponse is one in-flight request computation, tagged with
// the branch that is handling it. It resolves exactly once: Wait
// after a resolution is a contract violation and panics.
type PendingResponse struct {
	branch   Branch
	done     chan pendingResult
	resolved bool
}

func newPendingResponse(ctx context.Context, branch Branch, handler Handler, req *message.Request) *PendingResponse {
	p := &PendingResponse{
		branch: branch,
		done:   make(chan pendingResult, 1),
	}
	go func() {
		resp, err := handler.Handle(ctx, req)
		p.done <- pendingResult{resp: resp, err: err}
	}()
	return p
}

// Branch reports which subsystem is computing the response.
func (p *PendingResponse) Branch() Branch {
	return p.branch
}

// Wait blocks until the response is computed or ctx is done. A ctx
// expiry returns ctx.Err() and leaves the value pending, so Wait may
// be called again. On completion the response body is re-tagged as
// the matching ResponseBody variant and the envelope passes through
// unchanged; a handler failure is surfaced as a plain error, its
// branch identity erased at this boundary.
func (p *PendingResponse) Wait(ctx context.Context) (*message.Response, error) {
	if p.resolved {
		panic("hybrid: pending response resolved twice")
	}
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case result := <-p.done:
		p.resolved = true
		if result.err != nil {
			return nil, result.err
		}
		result.resp.Body = NewResponseBody(p.branch, result.resp.Body)
		return result.resp, nil
	}
}

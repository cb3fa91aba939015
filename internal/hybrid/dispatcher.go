package hybrid

import (
	"context"

	"hybrid_gw/internal/message"
)

// Dispatcher is the per-connection request handler. It owns the
// connection's web handler and a duplicate handle of the shared rpc
// handler, and routes each request to one of them.
type Dispatcher struct {
	web Handler
	rpc Handler
}

// NewDispatcher pairs an exclusively owned web handler with an rpc
// handler handle. Acceptor.Build is the usual constructor; this one
// exists for callers wiring handlers directly.
func NewDispatcher(web, rpc Handler) *Dispatcher {
	return &Dispatcher{web: web, rpc: rpc}
}

// Ready polls the web handler first and short-circuits on anything
// but (true, nil) without consulting the rpc handler. The ordering is
// part of the contract: it decides whose backpressure is observed
// first, and a call must never be issued while either branch is not
// ready.
func (d *Dispatcher) Ready() (bool, error) {
	ok, err := d.web.Ready()
	if err != nil || !ok {
		return ok, err
	}
	return d.rpc.Ready()
}

// Call routes req to the matching handler and returns immediately;
// the handler runs as the returned PendingResponse is awaited.
func (d *Dispatcher) Call(ctx context.Context, req *message.Request) *PendingResponse {
	branch := Route(req)
	handler := d.web
	if branch == BranchRpc {
		handler = d.rpc
	}
	return newPendingResponse(ctx, branch, handler, req)
}

// Package hybrid multiplexes one listening socket between two
// request subsystems: a per-connection web handler and a shared gRPC
// handler. Each request is routed on its content-type header and the
// two subsystems' responses, bodies and errors are unified behind one
// service surface without losing streaming semantics.
package hybrid

import (
	"context"

	"hybrid_gw/internal/message"
	"hybrid_gw/types"
)

// Branch tags which subsystem a request, response body or error
// belongs to.
type Branch int

const (
	BranchWeb Branch = iota
	BranchRpc
)

func (b Branch) String() string {
	switch b {
	case BranchWeb:
		return "web"
	case BranchRpc:
		return "rpc"
	default:
		return "unknown"
	}
}

// Handler is the per-request service contract both subsystems
// satisfy. Ready reports (true, nil) when a call may be issued,
// (false, nil) when the handler is backpressured, and a non-nil error
// when it has failed.
type Handler interface {
	Ready() (bool, error)
	Handle(ctx context.Context, req *message.Request) (*message.Response, error)
}

// SharedHandler is a handler that is logically shared across all
// connections. Clone returns a cheap duplicate handle; the underlying
// handler must be safe for concurrent calls from many connections.
type SharedHandler interface {
	Handler
	Clone() Handler
}

// Factory builds one web handler per accepted connection.
type Factory interface {
	Ready() (bool, error)
	New(ctx context.Context, conn types.ConnInfo) (Handler, error)
}

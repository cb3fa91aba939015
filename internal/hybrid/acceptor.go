package hybrid

import (
	"context"

	"hybrid_gw/types"
)

// Acceptor turns each accepted connection into a Dispatcher: one
// freshly built web handler for the connection, paired with a
// duplicate handle of the shared rpc handler.
type Acceptor struct {
	web Factory
	rpc SharedHandler
}

func NewAcceptor(web Factory, rpc SharedHandler) *Acceptor {
	return &Acceptor{web: web, rpc: rpc}
}

// Ready reports whether a new connection can be accepted. Only the
// web factory is consulted; the rpc handler is always constructible
// and its readiness is checked per request by the Dispatcher.
func (a *Acceptor) Ready() (bool, error) {
	return a.web.Ready()
}

// Build constructs the Dispatcher for one connection. A failure here
// is scoped to that connection and surfaces the factory's error
// unchanged.
func (a *Acceptor) Build(ctx context.Context, conn types.ConnInfo) (*Dispatcher, error) {
	web, err := a.web.New(ctx, conn)
	if err != nil {
		return nil, err
	}
	return &Dispatcher{web: web, rpc: a.rpc.Clone()}, nil
}

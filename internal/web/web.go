// Package web is the per-connection web handler: a small route table
// served by one handler instance per accepted connection.
package web

import (
	"context"
	"sync"

	"hybrid_gw/internal/hybrid"
	"hybrid_gw/internal/message"
	"hybrid_gw/internal/registry"
	"hybrid_gw/types"
)

type HandlerFunc func(ctx context.Context, req *message.Request) (*message.Response, error)

// Factory builds one Handler per connection. It reports not-ready
// while the connection registry is at the configured budget, which is
// what makes the acceptor push back on new connections.
type Factory struct {
	mu       sync.RWMutex
	routes   map[string]HandlerFunc
	registry registry.Registry
	maxConns int
}

func NewFactory(reg registry.Registry, maxConns int) *Factory {
	return &Factory{
		routes:   make(map[string]HandlerFunc),
		registry: reg,
		maxConns: maxConns,
	}
}

// Handle registers a route by exact path.
func (f *Factory) Handle(path string, fn HandlerFunc) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.routes[path] = fn
}

func (f *Factory) Ready() (bool, error) {
	if f.maxConns > 0 && f.registry != nil && f.registry.Len() >= f.maxConns {
		return false, nil
	}
	return true, nil
}

func (f *Factory) New(ctx context.Context, conn types.ConnInfo) (hybrid.Handler, error) {
	f.mu.RLock()
	routes := make(map[string]HandlerFunc, len(f.routes))
	for path, fn := range f.routes {
		routes[path] = fn
	}
	f.mu.RUnlock()

	return &Handler{routes: routes, conn: conn}, nil
}

// Handler serves the requests of a single connection.
type Handler struct {
	routes map[string]HandlerFunc
	conn   types.ConnInfo
}

func (h *Handler) Ready() (bool, error) {
	return true, nil
}

func (h *Handler) Handle(ctx context.Context, req *message.Request) (*message.Response, error) {
	if fn, ok := h.routes[req.Path()]; ok {
		return fn(ctx, req)
	}
	return Text(404, "Not Found"), nil
}

// Text builds a plain-text response with a one-shot body.
func Text(status int, body string) *message.Response {
	resp := message.NewResponse(status)
	resp.Headers.Set("Content-Type", "text/plain")
	resp.Body = message.NewBytesBody([]byte(body))
	return resp
}

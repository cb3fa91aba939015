// Package rpcgw is the shared gRPC handler: it terminates the gRPC
// wire protocol for registered unary methods and proxies everything
// else to an optional upstream backend. One handler instance serves
// all connections concurrently.
package rpcgw

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"sync"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"hybrid_gw/internal/hybrid"
	"hybrid_gw/internal/message"
)

const contentType = "application/grpc"

// Method is a unary method body over raw protobuf payload bytes.
type Method func(ctx context.Context, payload []byte) ([]byte, error)

type Handler struct {
	mu      sync.RWMutex
	methods map[string]Method
	backend *Backend
}

func New(backend *Backend) *Handler {
	return &Handler{
		methods: make(map[string]Method),
		backend: backend,
	}
}

// Register installs a unary method under its full "/service/method"
// path.
func (h *Handler) Register(fullMethod string, m Method) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.methods[fullMethod] = m
}

// Clone returns a duplicate handle. The handler itself already has
// shared-handle semantics, so the receiver is the duplicate.
func (h *Handler) Clone() hybrid.Handler {
	return h
}

// Ready defers to the backend connection state when one is
// configured; a purely local handler is always ready.
func (h *Handler) Ready() (bool, error) {
	if h.backend == nil {
		return true, nil
	}
	return h.backend.Ready()
}

func (h *Handler) Handle(ctx context.Context, req *message.Request) (*message.Response, error) {
	payload, err := ReadFrame(req.Body())
	if err != nil {
		return statusResponse(status.New(codes.InvalidArgument, fmt.Sprintf("malformed request frame: %v", err))), nil
	}

	h.mu.RLock()
	method, ok := h.methods[req.Path()]
	h.mu.RUnlock()

	var out []byte
	switch {
	case ok:
		out, err = method(ctx, payload)
	case h.backend != nil:
		out, err = h.backend.Invoke(ctx, req.Path(), payload)
	default:
		return statusResponse(status.New(codes.Unimplemented, fmt.Sprintf("unknown method %s", req.Path()))), nil
	}

	if err != nil {
		return statusResponse(status.Convert(err)), nil
	}
	return dataResponse(out), nil
}

func dataResponse(msg []byte) *message.Response {
	resp := message.NewResponse(200)
	resp.Headers.Set("Content-Type", contentType)
	resp.Body = newGrpcBody(AppendFrame(nil, msg), status.New(codes.OK, ""))
	return resp
}

// statusResponse is a gRPC error reply: still HTTP 200, the failure
// lives entirely in the grpc-status trailer.
func statusResponse(st *status.Status) *message.Response {
	resp := message.NewResponse(200)
	resp.Headers.Set("Content-Type", contentType)
	resp.Body = newGrpcBody(nil, st)
	return resp
}

// grpcBody streams one framed payload and then the grpc-status
// trailer section.
type grpcBody struct {
	frame []byte
	sent  bool
	st    *status.Status
}

func newGrpcBody(frame []byte, st *status.Status) *grpcBody {
	return &grpcBody{frame: frame, st: st}
}

func (b *grpcBody) EndOfStream() bool {
	return b.sent || len(b.frame) == 0
}

func (b *grpcBody) Next(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if b.EndOfStream() {
		return nil, io.EOF
	}
	b.sent = true
	return b.frame, nil
}

func (b *grpcBody) Trailers(ctx context.Context) (*message.Headers, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	trailers := message.NewHeaders()
	trailers.Set("grpc-status", strconv.Itoa(int(b.st.Code())))
	if msg := b.st.Message(); msg != "" {
		trailers.Set("grpc-message", msg)
	}
	return trailers, nil
}

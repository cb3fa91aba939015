package hybrid

import (
	"bytes"

	"hybrid_gw/internal/message"
)

var grpcContentType = []byte("application/grpc")

// Route decides which subsystem handles req. A request is gRPC
// traffic if and only if its content-type header is byte-for-byte
// "application/grpc"; every other value, a parameterized variant like
// "application/grpc+proto", or an absent header routes to web. The
// strict equality (no prefix or case folding) is deliberate.
func Route(req *message.Request) Branch {
	value, ok := req.Header("content-type")
	if ok && bytes.Equal(value, grpcContentType) {
		return BranchRpc
	}
	return BranchWeb
}

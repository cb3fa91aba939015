package hybrid

import (
	"context"
	"io"

	"hybrid_gw/internal/message"
)

// ResponseBody wraps the body produced by one branch and forwards the
// streaming contract to it. Chunk and trailer failures surface
// branch-tagged as *HybridError; io.EOF is the end-of-stream sentinel
// and passes through untouched. The wrapper holds no streaming state
// of its own, so chunks and trailers are byte-identical to reading
// the inner body directly.
type ResponseBody struct {
	branch Branch
	inner  message.Body
}

func NewResponseBody(branch Branch, inner message.Body) *ResponseBody {
	return &ResponseBody{branch: branch, inner: inner}
}

// Branch reports which subsystem produced the body.
func (b *ResponseBody) Branch() Branch {
	return b.branch
}

func (b *ResponseBody) EndOfStream() bool {
	return b.inner.EndOfStream()
}

func (b *ResponseBody) Next(ctx context.Context) ([]byte, error) {
	chunk, err := b.inner.Next(ctx)
	if err != nil && err != io.EOF {
		err = newHybridError(b.branch, err)
	}
	return chunk, err
}

func (b *ResponseBody) Trailers(ctx context.Context) (*message.Headers, error) {
	trailers, err := b.inner.Trailers(ctx)
	if err != nil {
		err = newHybridError(b.branch, err)
	}
	return trailers, err
}

// Inner exposes the wrapped body, mostly so transports can keep their
// one-shot fast paths.
func (b *ResponseBody) Inner() message.Body {
	return b.inner
}

package message

import (
	"context"
	"io"
)

// Body is the streaming response body contract both subsystems
// produce: a pure end-of-stream predicate, per-chunk reads that end
// with io.EOF, and an optional trailer section read after the last
// chunk.
type Body interface {
	EndOfStream() bool
	Next(ctx context.Context) ([]byte, error)
	Trailers(ctx context.Context) (*Headers, error)
}

// BytesBody is a one-shot in-memory body with no trailers.
type BytesBody struct {
	data []byte
	done bool
}

func NewBytesBody(data []byte) *BytesBody {
	return &BytesBody{data: data}
}

func (b *BytesBody) EndOfStream() bool {
	return b.done || len(b.data) == 0
}

func (b *BytesBody) Next(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if b.done || len(b.data) == 0 {
		return nil, io.EOF
	}
	b.done = true
	return b.data, nil
}

func (b *BytesBody) Trailers(ctx context.Context) (*Headers, error) {
	return nil, nil
}

// Bytes returns the full payload, letting the transport take the
// Content-Length fast path instead of chunking.
func (b *BytesBody) Bytes() []byte {
	return b.data
}

// ReaderBody streams chunks of up to chunkSize bytes from an
// io.Reader. It has no trailers.
type ReaderBody struct {
	r   io.Reader
	buf []byte
	eof bool
}

func NewReaderBody(r io.Reader, chunkSize int) *ReaderBody {
	if chunkSize <= 0 {
		chunkSize = 4096
	}
	return &ReaderBody{r: r, buf: make([]byte, chunkSize)}
}

func (b *ReaderBody) EndOfStream() bool {
	return b.eof
}

func (b *ReaderBody) Next(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if b.eof {
		return nil, io.EOF
	}

	n, err := b.r.Read(b.buf)
	if n > 0 {
		chunk := make([]byte, n)
		copy(chunk, b.buf[:n])
		if err == io.EOF {
			b.eof = true
		}
		return chunk, nil
	}
	if err == nil {
		err = io.EOF
	}
	if err == io.EOF {
		b.eof = true
	}
	return nil, err
}

func (b *ReaderBody) Trailers(ctx context.Context) (*Headers, error) {
	return nil, nil
}

package transport

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"

	"hybrid_gw/internal/hybrid"
	"hybrid_gw/internal/message"
)

// writeResponse serializes one response as HTTP/1.1. One-shot bodies
// without trailers get a Content-Length; everything else is streamed
// chunked, with body trailers written in the chunked trailer section.
func writeResponse(ctx context.Context, w io.Writer, resp *message.Response, keepAlive bool) error {
	bw := bufio.NewWriter(w)

	if data, ok := oneShotPayload(resp.Body); ok {
		resp.Headers.Set("Content-Length", strconv.Itoa(len(data)))
		writeHead(bw, resp, keepAlive)
		bw.Write(data)
		return bw.Flush()
	}

	resp.Headers.Set("Transfer-Encoding", "chunked")
	writeHead(bw, resp, keepAlive)
	if err := writeChunked(ctx, bw, resp.Body); err != nil {
		return err
	}
	return bw.Flush()
}

func writeHead(bw *bufio.Writer, resp *message.Response, keepAlive bool) {
	fmt.Fprintf(bw, "HTTP/1.1 %d %s\r\n", resp.Status, resp.StatusText())
	resp.Headers.Each(func(name string, value []byte) {
		bw.WriteString(name)
		bw.WriteString(": ")
		bw.Write(value)
		bw.WriteString("\r\n")
	})
	if keepAlive {
		bw.WriteString("Connection: keep-alive\r\n")
	} else {
		bw.WriteString("Connection: close\r\n")
	}
	bw.WriteString("\r\n")
}

func writeChunked(ctx context.Context, bw *bufio.Writer, body message.Body) error {
	for {
		chunk, err := body.Next(ctx)
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
		if len(chunk) == 0 {
			continue
		}
		fmt.Fprintf(bw, "%x\r\n", len(chunk))
		bw.Write(chunk)
		bw.WriteString("\r\n")
		if err := bw.Flush(); err != nil {
			return err
		}
	}

	bw.WriteString("0\r\n")

	trailers, err := body.Trailers(ctx)
	if err != nil {
		return err
	}
	if trailers != nil {
		trailers.Each(func(name string, value []byte) {
			bw.WriteString(name)
			bw.WriteString(": ")
			bw.Write(value)
			bw.WriteString("\r\n")
		})
	}
	bw.WriteString("\r\n")
	return bw.Flush()
}

// oneShotPayload unwraps the branch tag and reports whether the body
// is a single in-memory payload with no trailers.
func oneShotPayload(body message.Body) ([]byte, bool) {
	if body == nil {
		return nil, true
	}
	if hb, ok := body.(*hybrid.ResponseBody); ok {
		body = hb.Inner()
	}
	if bb, ok := body.(*message.BytesBody); ok {
		return bb.Bytes(), true
	}
	return nil, false
}

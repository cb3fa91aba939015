package message

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"net"
	"strconv"
)

var (
	ErrInvalidStartLine = fmt.Errorf("invalid request start line")
)

// Request is a single parsed request. The body reader is bounded by
// Content-Length and must be drained before the next request is read
// from the same connection.
type Request struct {
	method  string
	path    string
	version string

	headers       *Headers
	remoteAddr    net.Addr
	contentLength int64
	body          io.Reader
}

// NewRequest builds a request by hand, mostly for clients and tests.
func NewRequest(method, path string) *Request {
	return &Request{
		method:  method,
		path:    path,
		version: "HTTP/1.1",
		headers: NewHeaders(),
		body:    bytes.NewReader(nil),
	}
}

// ReadRequest parses one request head from br and attaches a bounded
// body reader for the remaining Content-Length bytes.
func ReadRequest(br *bufio.Reader, remoteAddr net.Addr) (*Request, error) {
	req := &Request{
		headers:    NewHeaders(),
		remoteAddr: remoteAddr,
	}

	startLineBytes, err := br.ReadSlice('\n')
	if err != nil {
		return nil, err
	}
	startLineBytes = bytes.TrimRight(startLineBytes, "\r\n")

	req.method, req.path, req.version, err = parseStartLine(startLineBytes)
	if err != nil {
		return nil, err
	}

	for {
		lineBytes, err := br.ReadSlice('\n')
		if err != nil {
			return nil, err
		}

		lineBytes = bytes.TrimRight(lineBytes, "\r\n")
		if len(lineBytes) == 0 {
			break
		}

		colonIdx := bytes.IndexByte(lineBytes, ':')
		if colonIdx == -1 {
			continue
		}

		name := bytes.TrimSpace(lineBytes[:colonIdx])
		value := bytes.TrimSpace(lineBytes[colonIdx+1:])

		valueCopy := make([]byte, len(value))
		copy(valueCopy, value)
		req.headers.SetBytes(string(name), valueCopy)
	}

	if raw, ok := req.headers.Get("Content-Length"); ok {
		n, err := strconv.ParseInt(string(raw), 10, 64)
		if err != nil || n < 0 {
			return nil, fmt.Errorf("invalid Content-Length %q", raw)
		}
		req.contentLength = n
	}
	req.body = io.LimitReader(br, req.contentLength)

	return req, nil
}

func parseStartLine(startLine []byte) (method, path, version string, err error) {
	firstSpace := bytes.IndexByte(startLine, ' ')
	if firstSpace == -1 {
		return "", "", "", ErrInvalidStartLine
	}

	secondSpace := bytes.IndexByte(startLine[firstSpace+1:], ' ')
	if secondSpace == -1 {
		return "", "", "", ErrInvalidStartLine
	}
	secondSpace += firstSpace + 1

	method = string(startLine[:firstSpace])
	path = string(startLine[firstSpace+1 : secondSpace])
	version = string(startLine[secondSpace+1:])

	if method == "" || path == "" || version == "" {
		return "", "", "", ErrInvalidStartLine
	}
	return method, path, version, nil
}

func (req *Request) Method() string    { return req.method }
func (req *Request) Path() string      { return req.path }
func (req *Request) Version() string   { return req.version }
func (req *Request) Headers() *Headers { return req.headers }

// Header is the case-insensitive lookup by name, returning the raw
// value bytes or absence.
func (req *Request) Header(name string) ([]byte, bool) {
	return req.headers.Get(name)
}

func (req *Request) RemoteAddr() net.Addr   { return req.remoteAddr }
func (req *Request) ContentLength() int64   { return req.contentLength }
func (req *Request) Body() io.Reader        { return req.body }
func (req *Request) SetBody(body io.Reader) { req.body = body }

// SetContent attaches an in-memory body and its Content-Length header.
func (req *Request) SetContent(body []byte) {
	req.contentLength = int64(len(body))
	req.headers.Set("Content-Length", strconv.Itoa(len(body)))
	req.body = bytes.NewReader(body)
}

// WriteTo serializes the request head and body, for clients and tests.
func (req *Request) WriteTo(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "%s %s %s\r\n", req.method, req.path, req.version)
	req.headers.Each(func(name string, value []byte) {
		buf.WriteString(name)
		buf.WriteString(": ")
		buf.Write(value)
		buf.WriteString("\r\n")
	})
	buf.WriteString("\r\n")
	if req.body != nil {
		if _, err := io.Copy(&buf, req.body); err != nil {
			return 0, err
		}
	}
	return buf.WriteTo(w)
}

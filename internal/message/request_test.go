package message

import (
	"bufio"
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadRequest(t *testing.T) {
	raw := "POST /echo.Echo/Echo HTTP/1.1\r\n" +
		"Host: localhost:3000\r\n" +
		"Content-Type: application/grpc\r\n" +
		"Content-Length: 5\r\n" +
		"\r\n" +
		"hello"

	req, err := ReadRequest(bufio.NewReader(strings.NewReader(raw)), nil)
	require.NoError(t, err)

	assert.Equal(t, "POST", req.Method())
	assert.Equal(t, "/echo.Echo/Echo", req.Path())
	assert.Equal(t, "HTTP/1.1", req.Version())
	assert.Equal(t, int64(5), req.ContentLength())

	value, ok := req.Header("content-type")
	require.True(t, ok)
	assert.Equal(t, []byte("application/grpc"), value)

	body, err := io.ReadAll(req.Body())
	require.NoError(t, err)
	assert.Equal(t, "hello", string(body))
}

func TestReadRequest_NoBody(t *testing.T) {
	raw := "GET / HTTP/1.1\r\nHost: localhost\r\n\r\n"

	req, err := ReadRequest(bufio.NewReader(strings.NewReader(raw)), nil)
	require.NoError(t, err)

	assert.Equal(t, int64(0), req.ContentLength())
	body, err := io.ReadAll(req.Body())
	require.NoError(t, err)
	assert.Empty(t, body)
}

func TestReadRequest_BodyBoundedByContentLength(t *testing.T) {
	raw := "POST /a HTTP/1.1\r\n" +
		"Content-Length: 4\r\n" +
		"\r\n" +
		"bodyGET /next HTTP/1.1\r\n\r\n"

	br := bufio.NewReader(strings.NewReader(raw))
	first, err := ReadRequest(br, nil)
	require.NoError(t, err)

	body, err := io.ReadAll(first.Body())
	require.NoError(t, err)
	assert.Equal(t, "body", string(body))

	// The next request on the same reader starts right after the body.
	second, err := ReadRequest(br, nil)
	require.NoError(t, err)
	assert.Equal(t, "/next", second.Path())
}

func TestReadRequest_Invalid(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{name: "missing version", raw: "GET /\r\n\r\n"},
		{name: "empty start line", raw: "\r\n\r\n"},
		{name: "bad content length", raw: "GET / HTTP/1.1\r\nContent-Length: nope\r\n\r\n"},
		{name: "negative content length", raw: "GET / HTTP/1.1\r\nContent-Length: -1\r\n\r\n"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ReadRequest(bufio.NewReader(strings.NewReader(tc.raw)), nil)
			assert.Error(t, err)
		})
	}
}

func TestRequest_WriteToRoundTrip(t *testing.T) {
	req := NewRequest("POST", "/svc/Method")
	req.Headers().Set("Host", "localhost")
	req.Headers().Set("Content-Type", "application/grpc")
	req.SetContent([]byte("abc"))

	var buf bytes.Buffer
	_, err := req.WriteTo(&buf)
	require.NoError(t, err)

	parsed, err := ReadRequest(bufio.NewReader(&buf), nil)
	require.NoError(t, err)
	assert.Equal(t, "POST", parsed.Method())
	assert.Equal(t, "/svc/Method", parsed.Path())
	assert.Equal(t, "application/grpc", parsed.Headers().Value("content-type"))

	body, err := io.ReadAll(parsed.Body())
	require.NoError(t, err)
	assert.Equal(t, "abc", string(body))
}

package middleware

import (
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hybrid_gw/internal/message"
)

func TestForwardedFor_HandleRequest(t *testing.T) {
	tests := []struct {
		name         string
		addr         net.Addr
		expectedHost string
		expectError  bool
	}{
		{
			name:         "valid IPv4 address",
			addr:         &net.TCPAddr{IP: net.ParseIP("192.168.1.100"), Port: 8080},
			expectedHost: "192.168.1.100",
			expectError:  false,
		},
		{
			name:         "valid IPv6 address",
			addr:         &net.TCPAddr{IP: net.ParseIP("2001:db8::ff00:42:8329"), Port: 8080},
			expectedHost: "2001:db8::ff00:42:8329",
			expectError:  false,
		},
		{
			name:        "invalid address format",
			addr:        &net.UnixAddr{Name: "/tmp/socket", Net: "unix"},
			expectError: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ff := NewForwardedFor(tc.addr)
			req := message.NewRequest("GET", "/")

			err := ff.HandleRequest(req)

			if tc.expectError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expectedHost, req.Headers().Value("X-Forwarded-For"))
		})
	}
}

func TestGatewayHeader_HandleResponse(t *testing.T) {
	resp := message.NewResponse(200)

	err := NewGatewayHeader().HandleResponse(resp)

	require.NoError(t, err)
	assert.Equal(t, "Hybrid Gateway", resp.Headers.Value("Server"))
}

package types

import "net"

// ConnInfo is the per-connection context handed down by the transport
// layer when a connection is accepted. It is only borrowed while a
// dispatcher is being built for that connection.
type ConnInfo struct {
	RemoteAddr net.Addr
	LocalAddr  net.Addr
}

var BadGatewayResponse = []byte("HTTP/1.1 502 Bad Gateway\r\n" +
	"Content-Length: 11\r\n" +
	"Content-Type: text/plain\r\n\r\n" +
	"Bad Gateway")

var ServiceUnavailableResponse = []byte("HTTP/1.1 503 Service Unavailable\r\n" +
	"Content-Length: 19\r\n" +
	"Content-Type: text/plain\r\n\r\n" +
	"Service Unavailable")

package middleware

import (
	"hybrid_gw/internal/message"
)

// GatewayHeader stamps the Server header on every outgoing response.
type GatewayHeader struct{}

func NewGatewayHeader() *GatewayHeader {
	return &GatewayHeader{}
}

func (h *GatewayHeader) HandleResponse(resp *message.Response) error {
	resp.Headers.Set("Server", "Hybrid Gateway")
	return nil
}

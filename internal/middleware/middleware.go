package middleware

import (
	"hybrid_gw/internal/message"
)

type RequestMiddleware interface {
	HandleRequest(req *message.Request) error
}

type ResponseMiddleware interface {
	HandleResponse(resp *message.Response) error
}

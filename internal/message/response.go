package message

import "net/http"

// Response is the envelope handed back by either subsystem: status,
// headers, and a streaming body.
type Response struct {
	Status  int
	Headers *Headers
	Body    Body
}

func NewResponse(status int) *Response {
	return &Response{
		Status:  status,
		Headers: NewHeaders(),
	}
}

// StatusText returns the reason phrase for the response status.
func (r *Response) StatusText() string {
	text := http.StatusText(r.Status)
	if text == "" {
		text = "Unknown"
	}
	return text
}

package transport

import (
	"bufio"
	"context"
	"errors"
	"io"
	"log"
	"net"
	"strings"
	"time"

	"hybrid_gw/internal/hybrid"
	"hybrid_gw/internal/message"
	"hybrid_gw/internal/middleware"
	"hybrid_gw/internal/random"
	"hybrid_gw/internal/registry"
	"hybrid_gw/types"
)

const (
	readyRetries  = 50
	readyInterval = 20 * time.Millisecond
)

// connHandler serves accepted connections: it builds one dispatcher
// per connection and runs its request loop.
type connHandler struct {
	acceptor   *hybrid.Acceptor
	registry   registry.Registry
	randomizer random.Random
	respMW     []middleware.ResponseMiddleware
	bufferSize int
}

func newConnHandler(acceptor *hybrid.Acceptor, reg registry.Registry, randomizer random.Random, bufferSize int) *connHandler {
	return &connHandler{
		acceptor:   acceptor,
		registry:   reg,
		randomizer: randomizer,
		respMW:     []middleware.ResponseMiddleware{middleware.NewGatewayHeader()},
		bufferSize: bufferSize,
	}
}

func (ch *connHandler) handle(conn net.Conn) {
	defer ch.closeConnection(conn)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if !ch.waitAcceptReady(ctx) {
		_, _ = conn.Write(types.ServiceUnavailableResponse)
		return
	}

	info := types.ConnInfo{
		RemoteAddr: conn.RemoteAddr(),
		LocalAddr:  conn.LocalAddr(),
	}
	dispatcher, err := ch.acceptor.Build(ctx, info)
	if err != nil {
		log.Printf("Failed to build dispatcher for %s: %v", conn.RemoteAddr(), err)
		_, _ = conn.Write(types.ServiceUnavailableResponse)
		return
	}

	id, err := ch.randomizer.String(8)
	if err != nil {
		log.Printf("Failed to generate connection id: %v", err)
		return
	}
	ch.registry.Register(id, conn.RemoteAddr().String())
	defer ch.registry.Remove(id)

	ch.serveRequests(ctx, conn, dispatcher, id)
}

func (ch *connHandler) serveRequests(ctx context.Context, conn net.Conn, dispatcher *hybrid.Dispatcher, id registry.Key) {
	br := bufio.NewReaderSize(conn, ch.bufferSize)
	forwardedFor := middleware.NewForwardedFor(conn.RemoteAddr())

	for {
		req, err := message.ReadRequest(br, conn.RemoteAddr())
		if err != nil {
			if err != io.EOF && !errors.Is(err, net.ErrClosed) {
				log.Printf("Error reading request from %s: %v", conn.RemoteAddr(), err)
			}
			return
		}

		if err = forwardedFor.HandleRequest(req); err != nil {
			log.Printf("Failed to stamp forwarded-for: %v", err)
		}

		if !ch.waitDispatchReady(ctx, dispatcher) {
			ch.registry.RecordFailure(id)
			_, _ = conn.Write(types.ServiceUnavailableResponse)
			return
		}

		pending := dispatcher.Call(ctx, req)
		resp, err := pending.Wait(ctx)
		if err != nil {
			log.Printf("Request on connection %s failed: %v", id, err)
			ch.registry.RecordFailure(id)
			_, _ = conn.Write(types.BadGatewayResponse)
			return
		}

		switch pending.Branch() {
		case hybrid.BranchRpc:
			ch.registry.RecordRpc(id)
		default:
			ch.registry.RecordWeb(id)
		}

		for _, mw := range ch.respMW {
			if err = mw.HandleResponse(resp); err != nil {
				log.Printf("Cannot apply response middleware: %v", err)
			}
		}

		keepAlive := shouldKeepAlive(req)
		if err = writeResponse(ctx, conn, resp, keepAlive); err != nil {
			log.Printf("Error writing response on connection %s: %v", id, err)
			return
		}

		// Leftover request body must be drained before the next
		// request head is parsed off the same reader.
		if _, err = io.Copy(io.Discard, req.Body()); err != nil {
			return
		}

		if !keepAlive {
			return
		}
	}
}

// waitAcceptReady gates building the dispatcher on the web factory.
func (ch *connHandler) waitAcceptReady(ctx context.Context) bool {
	return waitReady(ctx, ch.acceptor.Ready)
}

// waitDispatchReady gates each call: no call may be issued while
// either branch is not ready.
func (ch *connHandler) waitDispatchReady(ctx context.Context, dispatcher *hybrid.Dispatcher) bool {
	return waitReady(ctx, dispatcher.Ready)
}

func waitReady(ctx context.Context, ready func() (bool, error)) bool {
	for attempt := 0; attempt < readyRetries; attempt++ {
		ok, err := ready()
		if err != nil {
			log.Printf("Readiness check failed: %v", err)
			return false
		}
		if ok {
			return true
		}
		select {
		case <-ctx.Done():
			return false
		case <-time.After(readyInterval):
		}
	}
	return false
}

func shouldKeepAlive(req *message.Request) bool {
	connection := strings.ToLower(req.Headers().Value("Connection"))
	if req.Version() == "HTTP/1.0" {
		return connection == "keep-alive"
	}
	return connection != "close"
}

func (ch *connHandler) closeConnection(conn net.Conn) {
	err := conn.Close()
	if err != nil && !errors.Is(err, net.ErrClosed) {
		log.Printf("Error closing connection: %v", err)
	}
}

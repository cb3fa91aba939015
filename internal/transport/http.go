package transport

import (
	"errors"
	"log"
	"net"

	"hybrid_gw/internal/hybrid"
	"hybrid_gw/internal/random"
	"hybrid_gw/internal/registry"
)

type httpServer struct {
	handler *connHandler
	port    string
}

func NewHTTPServer(port string, acceptor *hybrid.Acceptor, reg registry.Registry, randomizer random.Random, bufferSize int) Transport {
	return &httpServer{
		handler: newConnHandler(acceptor, reg, randomizer, bufferSize),
		port:    port,
	}
}

func (ht *httpServer) Listen() (net.Listener, error) {
	return net.Listen("tcp", ":"+ht.port)
}

func (ht *httpServer) Serve(listener net.Listener) error {
	log.Printf("Hybrid server is starting on port %s", ht.port)
	for {
		conn, err := listener.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				return err
			}
			log.Printf("Error accepting connection: %v", err)
			continue
		}

		go ht.handler.handle(conn)
	}
}

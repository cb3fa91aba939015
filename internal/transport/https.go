package transport

import (
	"crypto/tls"
	"errors"
	"log"
	"net"

	"hybrid_gw/internal/hybrid"
	"hybrid_gw/internal/random"
	"hybrid_gw/internal/registry"
)

type httpsServer struct {
	handler   *connHandler
	tlsConfig *tls.Config
	port      string
}

func NewHTTPSServer(port string, acceptor *hybrid.Acceptor, reg registry.Registry, randomizer random.Random, bufferSize int, tlsConfig *tls.Config) Transport {
	return &httpsServer{
		handler:   newConnHandler(acceptor, reg, randomizer, bufferSize),
		tlsConfig: tlsConfig,
		port:      port,
	}
}

func (ht *httpsServer) Listen() (net.Listener, error) {
	return tls.Listen("tcp", ":"+ht.port, ht.tlsConfig)
}

func (ht *httpsServer) Serve(listener net.Listener) error {
	log.Printf("Hybrid TLS server is starting on port %s", ht.port)
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

package bootstrap

import (
	"context"
	"fmt"
	"log"
	"net/http"
	_ "net/http/pprof"
	"os"
	"os/signal"
	"syscall"
	"time"

	"hybrid_gw/internal/config"
	"hybrid_gw/internal/dashboard"
	"hybrid_gw/internal/hybrid"
	"hybrid_gw/internal/message"
	"hybrid_gw/internal/random"
	"hybrid_gw/internal/registry"
	"hybrid_gw/internal/rpcgw"
	"hybrid_gw/internal/transport"
	"hybrid_gw/internal/web"
)

type Bootstrap struct {
	Randomizer   random.Random
	Config       config.Config
	ConnRegistry registry.Registry
	WebFactory   *web.Factory
	RpcHandler   *rpcgw.Handler
	Backend      *rpcgw.Backend
	Acceptor     *hybrid.Acceptor
	ErrChan      chan error
	SignalChan   chan os.Signal
}

func New(conf config.Config) (*Bootstrap, error) {
	randomizer := random.New()
	connRegistry := registry.NewRegistry()

	var backend *rpcgw.Backend
	if conf.GRPCBackend() != "" {
		var err error
		backend, err = rpcgw.DialBackend(&rpcgw.BackendConfig{Address: conf.GRPCBackend()})
		if err != nil {
			return nil, err
		}
	}

	rpcHandler := rpcgw.New(backend)
	rpcHandler.Register(rpcgw.EchoFullMethod, rpcgw.Echo)

	webFactory := web.NewFactory(connRegistry, conf.MaxConns())
	webFactory.Handle("/", func(ctx context.Context, req *message.Request) (*message.Response, error) {
		return web.Text(200, "Hello world!"), nil
	})

	acceptor := hybrid.NewAcceptor(webFactory, rpcHandler)

	errChan := make(chan error, 5)
	signalChan := make(chan os.Signal, 1)

	return &Bootstrap{
		Randomizer:   randomizer,
		Config:       conf,
		ConnRegistry: connRegistry,
		WebFactory:   webFactory,
		RpcHandler:   rpcHandler,
		Backend:      backend,
		Acceptor:     acceptor,
		ErrChan:      errChan,
		SignalChan:   signalChan,
	}, nil
}

func (b *Bootstrap) checkBackend(ctx context.Context) error {
	healthCtx, healthCancel := context.WithTimeout(ctx, 5*time.Second)
	defer healthCancel()
	if err := b.Backend.CheckHealth(healthCtx); err != nil {
		return fmt.Errorf("gRPC backend health check failed: %w", err)
	}
	return nil
}

func startHTTPServer(conf config.Config, acceptor *hybrid.Acceptor, reg registry.Registry, randomizer random.Random, errChan chan<- error) {
	httpserver := transport.NewHTTPServer(conf.ListenPort(), acceptor, reg, randomizer, conf.BufferSize())
	ln, err := httpserver.Listen()
	if err != nil {
		errChan <- fmt.Errorf("failed to start http server: %w", err)
		return
	}
	if err = httpserver.Serve(ln); err != nil {
		errChan <- fmt.Errorf("error when serving http server: %w", err)
	}
}

func startHTTPSServer(conf config.Config, acceptor *hybrid.Acceptor, reg registry.Registry, randomizer random.Random, errChan chan<- error) {
	tlsCfg, err := transport.NewTLSConfig(conf)
	if err != nil {
		errChan <- fmt.Errorf("failed to create TLS config: %w", err)
		return
	}
	httpsServer := transport.NewHTTPSServer(conf.TLSPort(), acceptor, reg, randomizer, conf.BufferSize(), tlsCfg)
	ln, err := httpsServer.Listen()
	if err != nil {
		errChan <- fmt.Errorf("failed to start https server: %w", err)
		return
	}
	if err = httpsServer.Serve(ln); err != nil {
		errChan <- fmt.Errorf("error when serving https server: %w", err)
	}
}

func startPprof(pprofPort string, errChan chan<- error) {
	pprofAddr := fmt.Sprintf("localhost:%s", pprofPort)
	log.Printf("Starting pprof server on http://%s/debug/pprof/", pprofAddr)
	if err := http.ListenAndServe(pprofAddr, nil); err != nil {
		errChan <- fmt.Errorf("pprof server error: %v", err)
	}
}

func (b *Bootstrap) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	signal.Notify(b.SignalChan, os.Interrupt, syscall.SIGTERM)

	if b.Backend != nil {
		if err := b.checkBackend(ctx); err != nil {
			return err
		}
		defer func(backend *rpcgw.Backend) {
			if err := backend.Close(); err != nil {
				log.Printf("failed to close gRPC backend")
			}
		}(b.Backend)
	}

	go startHTTPServer(b.Config, b.Acceptor, b.ConnRegistry, b.Randomizer, b.ErrChan)

	if b.Config.TLSEnabled() {
		go startHTTPSServer(b.Config, b.Acceptor, b.ConnRegistry, b.Randomizer, b.ErrChan)
	}

	if b.Config.PprofEnabled() {
		go startPprof(b.Config.PprofPort(), b.ErrChan)
	}

	var dash dashboard.Dashboard
	if b.Config.DashboardEnabled() {
		dash = dashboard.New(b.ConnRegistry, b.Config.Domain())
		go dash.Start()
		defer dash.Stop()
	}

	log.Println("All services started successfully")

	select {
	case err := <-b.ErrChan:
		return fmt.Errorf("service error: %w", err)
	case sig := <-b.SignalChan:
		log.Printf("Received signal %s, initiating graceful shutdown", sig)
		cancel()
		return nil
	}
}

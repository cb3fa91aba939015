package rpcgw

import (
	"context"
	"fmt"
	"log"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/connectivity"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/keepalive"
)

var ErrBackendClosed = fmt.Errorf("grpc backend connection is shut down")

type BackendConfig struct {
	Address             string
	KeepAliveTime       time.Duration
	KeepAliveTimeout    time.Duration
	PermitWithoutStream bool
}

func DefaultBackendConfig() *BackendConfig {
	return &BackendConfig{
		Address:          "localhost:50051",
		KeepAliveTime:    2 * time.Minute,
		KeepAliveTimeout: 10 * time.Second,
	}
}

// Backend is an upstream grpc server that unknown methods are proxied
// to frame-for-frame.
type Backend struct {
	conn   *grpc.ClientConn
	config *BackendConfig
}

func DialBackend(config *BackendConfig) (*Backend, error) {
	if config == nil {
		config = DefaultBackendConfig()
	} else {
		defaults := DefaultBackendConfig()
		if config.Address == "" {
			config.Address = defaults.Address
		}
		if config.KeepAliveTime == 0 {
			config.KeepAliveTime = defaults.KeepAliveTime
		}
		if config.KeepAliveTimeout == 0 {
			config.KeepAliveTimeout = defaults.KeepAliveTimeout
		}
	}

	opts := []grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithKeepaliveParams(keepalive.ClientParameters{
			Time:                config.KeepAliveTime,
			Timeout:             config.KeepAliveTimeout,
			PermitWithoutStream: config.PermitWithoutStream,
		}),
		grpc.WithDefaultCallOptions(
			grpc.MaxCallRecvMsgSize(maxFrameSize),
			grpc.MaxCallSendMsgSize(maxFrameSize),
		),
	}

	conn, err := grpc.NewClient(config.Address, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to gRPC backend at %s: %w", config.Address, err)
	}

	return &Backend{conn: conn, config: config}, nil
}

// Invoke forwards one unary call with raw payload bytes.
func (b *Backend) Invoke(ctx context.Context, fullMethod string, in []byte) ([]byte, error) {
	var out []byte
	err := b.conn.Invoke(ctx, fullMethod, in, &out, grpc.ForceCodec(rawCodec{}))
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Ready is a non-blocking readiness probe on the connection state.
func (b *Backend) Ready() (bool, error) {
	switch b.conn.GetState() {
	case connectivity.Ready, connectivity.Idle:
		return true, nil
	case connectivity.Shutdown:
		return false, ErrBackendClosed
	default:
		return false, nil
	}
}

func (b *Backend) CheckHealth(ctx context.Context) error {
	healthClient := grpc_health_v1.NewHealthClient(b.conn)
	resp, err := healthClient.Check(ctx, &grpc_health_v1.HealthCheckRequest{Service: ""})
	if err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}
	if resp.Status != grpc_health_v1.HealthCheckResponse_SERVING {
		return fmt.Errorf("backend not serving: %v", resp.Status)
	}
	return nil
}

func (b *Backend) Close() error {
	if b.conn != nil {
		log.Printf("Closing gRPC backend connection to %s", b.config.Address)
		return b.conn.Close()
	}
	return nil
}

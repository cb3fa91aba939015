package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type config struct {
	domain string

	listenPort     string
	tlsEnabled     bool
	tlsPort        string
	tlsStoragePath string

	acmeEmail   string
	cfAPIToken  string
	acmeStaging bool

	grpcBackend string

	maxConns   int
	bufferSize int

	pprofEnabled bool
	pprofPort    string

	dashboardEnabled bool
}

func parse() (*config, error) {
	domain := getenv("DOMAIN", "localhost")

	listenPort := getenv("LISTEN_PORT", "3000")

	tlsEnabled := getenvBool("TLS_ENABLED", false)
	tlsPort := getenv("TLS_PORT", "3443")
	tlsStoragePath := getenv("TLS_STORAGE_PATH", "certs/tls/")

	acmeEmail := getenv("ACME_EMAIL", "admin@"+domain)
	acmeStaging := getenvBool("ACME_STAGING", false)

	cfToken := getenv("CF_API_TOKEN", "")
	if tlsEnabled && cfToken == "" {
		return nil, fmt.Errorf("CF_API_TOKEN is required when TLS is enabled")
	}

	grpcBackend := getenv("GRPC_BACKEND", "")

	maxConns, err := parseMaxConns()
	if err != nil {
		return nil, err
	}

	bufferSize := parseBufferSize()

	pprofEnabled := getenvBool("PPROF_ENABLED", false)
	pprofPort := getenv("PPROF_PORT", "6060")

	dashboardEnabled := getenvBool("DASHBOARD_ENABLED", false)

	return &config{
		domain:           domain,
		listenPort:       listenPort,
		tlsEnabled:       tlsEnabled,
		tlsPort:          tlsPort,
		tlsStoragePath:   tlsStoragePath,
		acmeEmail:        acmeEmail,
		cfAPIToken:       cfToken,
		acmeStaging:      acmeStaging,
		grpcBackend:      grpcBackend,
		maxConns:         maxConns,
		bufferSize:       bufferSize,
		pprofEnabled:     pprofEnabled,
		pprofPort:        pprofPort,
		dashboardEnabled: dashboardEnabled,
	}, nil
}

func loadEnvFile() error {
	if _, err := os.Stat(".env"); err == nil {
		return godotenv.Load(".env")
	}
	return nil
}

func parseMaxConns() (int, error) {
	raw := getenv("MAX_CONNS", "0")
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("invalid MAX_CONNS value %q", raw)
	}
	return n, nil
}

func parseBufferSize() int {
	raw := getenv("BUFFER_SIZE", "32768")
	size, err := strconv.Atoi(raw)
	if err != nil || size < 4096 || size > 1048576 {
		log.Println("Invalid BUFFER_SIZE, falling back to 4096")
		return 4096
	}
	return size
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvBool(key string, def bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return def
	}
	return val == "true"
}

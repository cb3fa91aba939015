package config

type Config interface {
	Domain() string

	ListenPort() string
	TLSEnabled() bool
	TLSPort() string
	TLSStoragePath() string

	ACMEEmail() string
	CFAPIToken() string
	ACMEStaging() bool

	GRPCBackend() string

	MaxConns() int
	BufferSize() int

	PprofEnabled() bool
	PprofPort() string

	DashboardEnabled() bool
}

func MustLoad() (Config, error) {
	if err := loadEnvFile(); err != nil {
		return nil, err
	}

	cfg, err := parse()
	if err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *config) Domain() string         { return c.domain }
func (c *config) ListenPort() string     { return c.listenPort }
func (c *config) TLSEnabled() bool       { return c.tlsEnabled }
func (c *config) TLSPort() string        { return c.tlsPort }
func (c *config) TLSStoragePath() string { return c.tlsStoragePath }
func (c *config) ACMEEmail() string      { return c.acmeEmail }
func (c *config) CFAPIToken() string     { return c.cfAPIToken }
func (c *config) ACMEStaging() bool      { return c.acmeStaging }
func (c *config) GRPCBackend() string    { return c.grpcBackend }
func (c *config) MaxConns() int          { return c.maxConns }
func (c *config) BufferSize() int        { return c.bufferSize }
func (c *config) PprofEnabled() bool     { return c.pprofEnabled }
func (c *config) PprofPort() string      { return c.pprofPort }
func (c *config) DashboardEnabled() bool { return c.dashboardEnabled }

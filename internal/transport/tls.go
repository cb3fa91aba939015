package transport

import (
	"context"
	"crypto/tls"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/caddyserver/certmagic"
	"github.com/libdns/cloudflare"

	"hybrid_gw/internal/config"
)

// NewTLSConfig builds the TLS setup for the gateway's listener:
// user-provided certificates when present under the storage path,
// otherwise CertMagic with Cloudflare DNS-01 for the configured
// domain and its wildcard.
func NewTLSConfig(cfg config.Config) (*tls.Config, error) {
	tm := newTLSManager(cfg)
	if err := tm.initialize(); err != nil {
		return nil, err
	}
	return tm.getTLSConfig(), nil
}

type tlsManager struct {
	config config.Config

	certPath    string
	keyPath     string
	storagePath string

	userCert *tls.Certificate
	magic    *certmagic.Config
}

func newTLSManager(cfg config.Config) *tlsManager {
	cleanBase := filepath.Clean(cfg.TLSStoragePath())
	return &tlsManager{
		config:      cfg,
		certPath:    filepath.Join(cleanBase, "cert.pem"),
		keyPath:     filepath.Join(cleanBase, "privkey.pem"),
		storagePath: filepath.Join(cleanBase, "certmagic"),
	}
}

func (tm *tlsManager) initialize() error {
	if tm.certFilesExist() {
		log.Printf("Using user-provided certificates from %s and %s", tm.certPath, tm.keyPath)
		cert, err := tls.LoadX509KeyPair(tm.certPath, tm.keyPath)
		if err != nil {
			return fmt.Errorf("failed to load user certificates: %w", err)
		}
		tm.userCert = &cert
		return nil
	}

	log.Printf("User certificates missing, using CertMagic for %s and *.%s",
		tm.config.Domain(), tm.config.Domain())
	if err := tm.initCertMagic(); err != nil {
		return fmt.Errorf("failed to initialize CertMagic: %w", err)
	}
	return nil
}

func (tm *tlsManager) certFilesExist() bool {
	if _, err := os.Stat(tm.certPath); os.IsNotExist(err) {
		return false
	}
	if _, err := os.Stat(tm.keyPath); os.IsNotExist(err) {
		return false
	}
	return true
}

func (tm *tlsManager) initCertMagic() error {
	if err := os.MkdirAll(tm.storagePath, 0700); err != nil {
		return fmt.Errorf("failed to create cert storage directory: %w", err)
	}

	if tm.config.CFAPIToken() == "" {
		return fmt.Errorf("CF_API_TOKEN is required for automatic certificate generation")
	}

	cfProvider := &cloudflare.Provider{
		APIToken: tm.config.CFAPIToken(),
	}

	cache := certmagic.NewCache(certmagic.CacheOptions{
		GetConfigForCert: func(cert certmagic.Certificate) (*certmagic.Config, error) {
			return tm.magic, nil
		},
	})

	magic := certmagic.New(cache, certmagic.Config{
		Storage: &certmagic.FileStorage{Path: tm.storagePath},
	})

	acmeIssuer := certmagic.NewACMEIssuer(magic, certmagic.ACMEIssuer{
		Email:  tm.config.ACMEEmail(),
		Agreed: true,
		DNS01Solver: &certmagic.DNS01Solver{
			DNSManager: certmagic.DNSManager{
				DNSProvider: cfProvider,
			},
		},
	})
	if tm.config.ACMEStaging() {
		acmeIssuer.CA = certmagic.LetsEncryptStagingCA
		log.Printf("Using Let's Encrypt staging server")
	} else {
		acmeIssuer.CA = certmagic.LetsEncryptProductionCA
	}
	magic.Issuers = []certmagic.Issuer{acmeIssuer}
	tm.magic = magic

	domains := []string{tm.config.Domain(), "*." + tm.config.Domain()}
	log.Printf("Requesting certificates for: %v", domains)
	if err := magic.ManageSync(context.Background(), domains); err != nil {
		return fmt.Errorf("failed to obtain certificates: %w", err)
	}
	return nil
}

func (tm *tlsManager) getTLSConfig() *tls.Config {
	return &tls.Config{
		GetCertificate: tm.getCertificate,

		MinVersion: tls.VersionTLS13,
		MaxVersion: tls.VersionTLS13,

		CurvePreferences: []tls.CurveID{
			tls.X25519,
		},
	}
}

func (tm *tlsManager) getCertificate(hello *tls.ClientHelloInfo) (*tls.Certificate, error) {
	if tm.userCert != nil {
		return tm.userCert, nil
	}
	if tm.magic != nil {
		return tm.magic.GetCertificate(hello)
	}
	return nil, fmt.Errorf("no certificate available")
}

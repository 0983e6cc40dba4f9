// Package config loads runtime settings from environment variables, with
// an optional .env file picked up from the working directory. Flags on
// individual commands override whatever is loaded here.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds every externally tunable setting of the CLI.
type Config struct {
	// Nameserver is the DNS resolver to query (host or host:port).
	// Empty means the first resolver from /etc/resolv.conf.
	Nameserver string `env:"CERTPLAN_NAMESERVER"`

	// QueryTimeout bounds each DNS lookup.
	QueryTimeout time.Duration `env:"CERTPLAN_QUERY_TIMEOUT" envDefault:"5s"`

	// IPServiceURL is the plain-text public IP echo service.
	IPServiceURL string `env:"CERTPLAN_IP_SERVICE" envDefault:"https://api.ipify.org"`

	// CdnRangesFile optionally replaces the built-in Cloudflare edge
	// ranges with the contents of a CIDR-per-line file.
	CdnRangesFile string `env:"CERTPLAN_CDN_RANGES"`

	// AcmeEmail is the account contact for Let's Encrypt registration.
	AcmeEmail string `env:"CERTPLAN_ACME_EMAIL"`

	// AcmeDirectoryURL overrides the ACME directory (staging etc.).
	// Empty selects Let's Encrypt production.
	AcmeDirectoryURL string `env:"CERTPLAN_ACME_URL"`

	// CertDir is where issued and imported certificates are written.
	CertDir string `env:"CERTPLAN_CERT_DIR" envDefault:"/etc/ssl/certplan"`
}

// Load reads the configuration from the environment. A missing .env file
// is not an error.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	return cfg, nil
}

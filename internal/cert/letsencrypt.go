// =============================================================================
// internal/cert/letsencrypt.go - ACME issuance via Let's Encrypt
// =============================================================================
package cert

import (
	"context"
	"crypto"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"fmt"
	"strings"

	"github.com/go-acme/lego/v4/certcrypto"
	"github.com/go-acme/lego/v4/certificate"
	"github.com/go-acme/lego/v4/challenge"
	"github.com/go-acme/lego/v4/challenge/http01"
	"github.com/go-acme/lego/v4/lego"
	"github.com/go-acme/lego/v4/registration"
)

// Result captures the file paths of the certificate artifacts on disk.
type Result struct {
	CertificatePath       string
	PrivateKeyPath        string
	IssuerCertificatePath string
}

// Issuer obtains certificates from an ACME CA over HTTP-01 and writes
// them to an output directory. Issuance is a blocking operation that
// binds port 80 for the challenge; it can take 30-60 seconds.
type Issuer struct {
	email         string
	outputDir     string
	caDirURL      string
	http01Address string

	clientFactory   clientFactory
	accountKeyMaker func() (crypto.PrivateKey, error)
}

// IssuerConfig holds the settings for an Issuer.
type IssuerConfig struct {
	// Email is the ACME account contact. Required.
	Email string

	// OutputDir is where the certificate and key files land. Required.
	OutputDir string

	// CADirectoryURL overrides the ACME directory; empty means
	// Let's Encrypt production.
	CADirectoryURL string

	// HTTP01Address is the bind address for the challenge listener
	// (host:port). Empty binds all interfaces on port 80.
	HTTP01Address string
}

// NewIssuer creates an issuer from the given configuration.
func NewIssuer(cfg IssuerConfig) (*Issuer, error) {
	if strings.TrimSpace(cfg.Email) == "" {
		return nil, fmt.Errorf("ACME account email is required")
	}
	if strings.TrimSpace(cfg.OutputDir) == "" {
		return nil, fmt.Errorf("certificate output directory is required")
	}

	caDirURL := strings.TrimSpace(cfg.CADirectoryURL)
	if caDirURL == "" {
		caDirURL = lego.LEDirectoryProduction
	}

	return &Issuer{
		email:         strings.TrimSpace(cfg.Email),
		outputDir:     cfg.OutputDir,
		caDirURL:      caDirURL,
		http01Address: strings.TrimSpace(cfg.HTTP01Address),
		clientFactory: defaultClientFactory,
		accountKeyMaker: func() (crypto.PrivateKey, error) {
			return ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
		},
	}, nil
}

// Issue registers a throwaway account, solves HTTP-01 for the domain, and
// writes the obtained certificate and key to the output directory.
func (i *Issuer) Issue(ctx context.Context, domain string) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	accountKey, err := i.accountKeyMaker()
	if err != nil {
		return nil, fmt.Errorf("generate account key: %w", err)
	}

	user := &accountUser{email: i.email, key: accountKey}

	legoCfg := lego.NewConfig(user)
	legoCfg.CADirURL = i.caDirURL
	legoCfg.Certificate.KeyType = certcrypto.RSA2048

	client, err := i.clientFactory(legoCfg)
	if err != nil {
		return nil, fmt.Errorf("create acme client: %w", err)
	}

	host, port := splitHTTP01Address(i.http01Address)
	if err := client.SetHTTP01Provider(http01.NewProviderServer(host, port)); err != nil {
		return nil, fmt.Errorf("configure http-01 provider: %w", err)
	}

	reg, err := client.Register(registration.RegisterOptions{TermsOfServiceAgreed: true})
	if err != nil {
		return nil, fmt.Errorf("register account: %w", err)
	}
	user.registration = reg

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	certRes, err := client.Obtain(certificate.ObtainRequest{
		Domains: []string{domain},
		Bundle:  true,
	})
	if err != nil {
		return nil, fmt.Errorf("obtain certificate for %s: %w", domain, err)
	}

	return writeArtifacts(i.outputDir, domain, certRes.Certificate, certRes.PrivateKey, certRes.IssuerCertificate)
}

func splitHTTP01Address(addr string) (host, port string) {
	if addr == "" {
		return "", "80"
	}
	if idx := strings.LastIndex(addr, ":"); idx != -1 {
		return addr[:idx], addr[idx+1:]
	}
	return addr, "80"
}

type clientFactory func(*lego.Config) (acmeClient, error)

// acmeClient narrows the lego client to what issuance needs, so tests can
// run without an ACME server.
type acmeClient interface {
	Register(options registration.RegisterOptions) (*registration.Resource, error)
	SetHTTP01Provider(provider challenge.Provider) error
	Obtain(request certificate.ObtainRequest) (*certificate.Resource, error)
}

func defaultClientFactory(cfg *lego.Config) (acmeClient, error) {
	client, err := lego.NewClient(cfg)
	if err != nil {
		return nil, err
	}
	return &legoClientAdapter{client: client}, nil
}

type legoClientAdapter struct {
	client *lego.Client
}

func (l *legoClientAdapter) Register(options registration.RegisterOptions) (*registration.Resource, error) {
	return l.client.Registration.Register(options)
}

func (l *legoClientAdapter) SetHTTP01Provider(provider challenge.Provider) error {
	return l.client.Challenge.SetHTTP01Provider(provider)
}

func (l *legoClientAdapter) Obtain(request certificate.ObtainRequest) (*certificate.Resource, error) {
	return l.client.Certificate.Obtain(request)
}

type accountUser struct {
	email        string
	registration *registration.Resource
	key          crypto.PrivateKey
}

func (u *accountUser) GetEmail() string                        { return u.email }
func (u *accountUser) GetRegistration() *registration.Resource { return u.registration }
func (u *accountUser) GetPrivateKey() crypto.PrivateKey        { return u.key }

package ssl

import (
	"crypto/tls"
	"fmt"
	"net"
	"strings"
	"time"
)

// CertInfo contains the details of a served TLS certificate.
type CertInfo struct {
	Domain       string
	Issuer       string
	CommonName   string
	DNSNames     []string
	NotBefore    time.Time
	NotAfter     time.Time
	ExpiresIn    int
	IsValid      bool
	LetsEncrypt  bool
	SerialNumber string
}

// Check dials the domain over TLS and reports what certificate it serves.
// Verification is disabled on the dial so origin certificates, which no
// public root trusts, can still be inspected after installation.
func Check(domain string, port string) (*CertInfo, error) {
	address := net.JoinHostPort(domain, port)
	conn, err := tls.Dial("tcp", address, &tls.Config{
		InsecureSkipVerify: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect: %v", err)
	}
	defer conn.Close()

	state := conn.ConnectionState()
	if len(state.PeerCertificates) == 0 {
		return nil, fmt.Errorf("no certificates presented")
	}

	cert := state.PeerCertificates[0]
	now := time.Now()

	info := &CertInfo{
		Domain:       domain,
		Issuer:       cert.Issuer.String(),
		CommonName:   cert.Subject.CommonName,
		DNSNames:     cert.DNSNames,
		NotBefore:    cert.NotBefore,
		NotAfter:     cert.NotAfter,
		ExpiresIn:    int(cert.NotAfter.Sub(now).Hours() / 24),
		IsValid:      now.After(cert.NotBefore) && now.Before(cert.NotAfter),
		LetsEncrypt:  strings.Contains(cert.Issuer.String(), "Let's Encrypt"),
		SerialNumber: cert.SerialNumber.String(),
	}

	return info, nil
}

// Covers reports whether the certificate's names include domain, either
// exactly or through a single-level wildcard.
func (c *CertInfo) Covers(domain string) bool {
	domain = strings.ToLower(strings.TrimSuffix(domain, "."))

	names := c.DNSNames
	if len(names) == 0 && c.CommonName != "" {
		names = []string{c.CommonName}
	}

	for _, name := range names {
		name = strings.ToLower(strings.TrimSuffix(name, "."))
		if name == domain {
			return true
		}
		if rest, ok := strings.CutPrefix(name, "*."); ok {
			// Wildcards match one label only.
			if idx := strings.Index(domain, "."); idx > 0 && domain[idx+1:] == rest {
				return true
			}
		}
	}

	return false
}

// =============================================================================
// internal/cert/manual.go - Operator-supplied origin certificates
// =============================================================================
package cert

import (
	"crypto/tls"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// WriteOriginPair validates an operator-supplied PEM certificate/key pair
// and writes it under dir for the reverse-proxy configuration to pick up.
// Origin certificates are issued by the CDN for edge-to-origin traffic and
// are not publicly trusted, so the only validation possible here is that
// the pair parses and the key matches the certificate.
func WriteOriginPair(dir, domain string, certPEM, keyPEM []byte) (*Result, error) {
	if len(certPEM) == 0 {
		return nil, fmt.Errorf("certificate PEM is empty")
	}
	if len(keyPEM) == 0 {
		return nil, fmt.Errorf("private key PEM is empty")
	}

	if _, err := tls.X509KeyPair(certPEM, keyPEM); err != nil {
		return nil, fmt.Errorf("certificate and key do not form a valid pair: %w", err)
	}

	return writeArtifacts(dir, domain, certPEM, keyPEM, nil)
}

// writeArtifacts writes cert material under dir using the domain as the
// base filename. The key gets 0600, certificates 0644.
func writeArtifacts(dir, domain string, certPEM, keyPEM, issuerPEM []byte) (*Result, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("ensure output directory: %w", err)
	}

	base := safeFileSegment(domain)
	certPath := filepath.Join(dir, base+".crt")
	keyPath := filepath.Join(dir, base+".key")

	if len(keyPEM) == 0 {
		return nil, fmt.Errorf("empty private key")
	}
	if err := os.WriteFile(keyPath, keyPEM, 0o600); err != nil {
		return nil, fmt.Errorf("write private key: %w", err)
	}

	if len(certPEM) == 0 {
		return nil, fmt.Errorf("empty certificate")
	}
	if err := os.WriteFile(certPath, certPEM, 0o644); err != nil {
		return nil, fmt.Errorf("write certificate: %w", err)
	}

	result := &Result{
		CertificatePath: certPath,
		PrivateKeyPath:  keyPath,
	}

	if len(issuerPEM) > 0 {
		issuerPath := filepath.Join(dir, base+"-issuer.crt")
		if err := os.WriteFile(issuerPath, issuerPEM, 0o644); err != nil {
			return nil, fmt.Errorf("write issuer certificate: %w", err)
		}
		result.IssuerCertificatePath = issuerPath
	}

	return result, nil
}

// safeFileSegment lowercases the domain and replaces anything outside
// [a-z0-9.-_] so it is safe as a filename.
func safeFileSegment(domain string) string {
	domain = strings.TrimSpace(strings.ToLower(domain))
	if domain == "" {
		return "certificate"
	}

	var b strings.Builder
	b.Grow(len(domain))
	for _, r := range domain {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '.', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}

	sanitized := strings.Trim(b.String(), "._-")
	if sanitized == "" {
		return "certificate"
	}
	return sanitized
}

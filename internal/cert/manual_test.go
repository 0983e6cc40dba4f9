package cert

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/pem"
	"math/big"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// selfSignedPair generates a throwaway certificate/key pair for a domain.
func selfSignedPair(t *testing.T, domain string) (certPEM, keyPEM []byte) {
	t.Helper()

	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)

	template := x509.Certificate{
		SerialNumber: big.NewInt(1),
		Subject:      pkix.Name{CommonName: domain},
		DNSNames:     []string{domain},
		NotBefore:    time.Now().Add(-time.Hour),
		NotAfter:     time.Now().Add(24 * time.Hour),
	}

	der, err := x509.CreateCertificate(rand.Reader, &template, &template, &key.PublicKey, key)
	require.NoError(t, err)

	keyDER, err := x509.MarshalECPrivateKey(key)
	require.NoError(t, err)

	certPEM = pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: der})
	keyPEM = pem.EncodeToMemory(&pem.Block{Type: "EC PRIVATE KEY", Bytes: keyDER})
	return certPEM, keyPEM
}

func TestWriteOriginPair(t *testing.T) {
	t.Run("writes a valid pair with tight key permissions", func(t *testing.T) {
		dir := t.TempDir()
		certPEM, keyPEM := selfSignedPair(t, "app.example.org")

		result, err := WriteOriginPair(dir, "app.example.org", certPEM, keyPEM)
		require.NoError(t, err)

		assert.Equal(t, filepath.Join(dir, "app.example.org.crt"), result.CertificatePath)
		assert.Equal(t, filepath.Join(dir, "app.example.org.key"), result.PrivateKeyPath)
		assert.Empty(t, result.IssuerCertificatePath)

		written, err := os.ReadFile(result.CertificatePath)
		require.NoError(t, err)
		assert.Equal(t, certPEM, written)

		info, err := os.Stat(result.PrivateKeyPath)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
	})

	t.Run("rejects a mismatched pair", func(t *testing.T) {
		certPEM, _ := selfSignedPair(t, "app.example.org")
		_, otherKey := selfSignedPair(t, "other.example.org")

		_, err := WriteOriginPair(t.TempDir(), "app.example.org", certPEM, otherKey)
		assert.ErrorContains(t, err, "valid pair")
	})

	t.Run("rejects empty inputs", func(t *testing.T) {
		certPEM, keyPEM := selfSignedPair(t, "app.example.org")

		_, err := WriteOriginPair(t.TempDir(), "app.example.org", nil, keyPEM)
		assert.ErrorContains(t, err, "certificate PEM is empty")

		_, err = WriteOriginPair(t.TempDir(), "app.example.org", certPEM, nil)
		assert.ErrorContains(t, err, "private key PEM is empty")
	})

	t.Run("creates the output directory", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "nested", "certs")
		certPEM, keyPEM := selfSignedPair(t, "app.example.org")

		_, err := WriteOriginPair(dir, "app.example.org", certPEM, keyPEM)
		require.NoError(t, err)
	})
}

func TestSafeFileSegment(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"App.Example.ORG", "app.example.org"},
		{"weird/../name", "weird_.._name"},
		{"", "certificate"},
		{"...", "certificate"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, safeFileSegment(tt.in))
	}
}

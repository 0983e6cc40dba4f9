package cert

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/go-acme/lego/v4/certificate"
	"github.com/go-acme/lego/v4/challenge"
	"github.com/go-acme/lego/v4/lego"
	"github.com/go-acme/lego/v4/registration"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAcmeClient struct {
	registered  bool
	providerSet bool
	obtained    *certificate.ObtainRequest
	resource    *certificate.Resource
}

func (f *fakeAcmeClient) Register(registration.RegisterOptions) (*registration.Resource, error) {
	f.registered = true
	return &registration.Resource{}, nil
}

func (f *fakeAcmeClient) SetHTTP01Provider(challenge.Provider) error {
	f.providerSet = true
	return nil
}

func (f *fakeAcmeClient) Obtain(request certificate.ObtainRequest) (*certificate.Resource, error) {
	f.obtained = &request
	return f.resource, nil
}

func TestNewIssuerValidation(t *testing.T) {
	_, err := NewIssuer(IssuerConfig{OutputDir: "/tmp/certs"})
	assert.ErrorContains(t, err, "email is required")

	_, err = NewIssuer(IssuerConfig{Email: "ops@example.org"})
	assert.ErrorContains(t, err, "output directory is required")

	issuer, err := NewIssuer(IssuerConfig{Email: "ops@example.org", OutputDir: "/tmp/certs"})
	require.NoError(t, err)
	assert.Equal(t, lego.LEDirectoryProduction, issuer.caDirURL)
}

func TestIssueWritesArtifacts(t *testing.T) {
	dir := t.TempDir()
	certPEM, keyPEM := selfSignedPair(t, "app.example.org")

	fake := &fakeAcmeClient{
		resource: &certificate.Resource{
			Certificate:       certPEM,
			PrivateKey:        keyPEM,
			IssuerCertificate: []byte("issuer chain"),
		},
	}

	issuer, err := NewIssuer(IssuerConfig{Email: "ops@example.org", OutputDir: dir})
	require.NoError(t, err)
	issuer.clientFactory = func(*lego.Config) (acmeClient, error) { return fake, nil }

	result, err := issuer.Issue(context.Background(), "app.example.org")
	require.NoError(t, err)

	assert.True(t, fake.registered)
	assert.True(t, fake.providerSet)
	require.NotNil(t, fake.obtained)
	assert.Equal(t, []string{"app.example.org"}, fake.obtained.Domains)
	assert.True(t, fake.obtained.Bundle)

	assert.Equal(t, filepath.Join(dir, "app.example.org.crt"), result.CertificatePath)
	assert.Equal(t, filepath.Join(dir, "app.example.org.key"), result.PrivateKeyPath)
	assert.Equal(t, filepath.Join(dir, "app.example.org-issuer.crt"), result.IssuerCertificatePath)
}

func TestIssueHonorsCancelledContext(t *testing.T) {
	issuer, err := NewIssuer(IssuerConfig{Email: "ops@example.org", OutputDir: t.TempDir()})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = issuer.Issue(ctx, "app.example.org")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSplitHTTP01Address(t *testing.T) {
	tests := []struct {
		in       string
		wantHost string
		wantPort string
	}{
		{"", "", "80"},
		{"127.0.0.1:8080", "127.0.0.1", "8080"},
		{"0.0.0.0", "0.0.0.0", "80"},
	}

	for _, tt := range tests {
		host, port := splitHTTP01Address(tt.in)
		assert.Equal(t, tt.wantHost, host)
		assert.Equal(t, tt.wantPort, port)
	}
}

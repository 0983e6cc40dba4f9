package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 5*time.Second, cfg.QueryTimeout)
	assert.Equal(t, "https://api.ipify.org", cfg.IPServiceURL)
	assert.Equal(t, "/etc/ssl/certplan", cfg.CertDir)
	assert.Empty(t, cfg.Nameserver)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("CERTPLAN_NAMESERVER", "1.1.1.1")
	t.Setenv("CERTPLAN_QUERY_TIMEOUT", "2s")
	t.Setenv("CERTPLAN_IP_SERVICE", "https://ip.example.org")
	t.Setenv("CERTPLAN_ACME_EMAIL", "ops@example.org")
	t.Setenv("CERTPLAN_CERT_DIR", "/srv/certs")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "1.1.1.1", cfg.Nameserver)
	assert.Equal(t, 2*time.Second, cfg.QueryTimeout)
	assert.Equal(t, "https://ip.example.org", cfg.IPServiceURL)
	assert.Equal(t, "ops@example.org", cfg.AcmeEmail)
	assert.Equal(t, "/srv/certs", cfg.CertDir)
}

func TestLoadRejectsBadDuration(t *testing.T) {
	t.Setenv("CERTPLAN_QUERY_TIMEOUT", "soon")

	_, err := Load()
	assert.Error(t, err)
}

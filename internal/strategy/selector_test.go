package strategy

import (
	"testing"

	"github.com/bryanCE/certplan/internal/dns"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelect(t *testing.T) {
	t.Run("direct and reachable selects direct issuance", func(t *testing.T) {
		decision, err := Select(DirectNotProxied, true)
		require.NoError(t, err)
		assert.Equal(t, DirectLetsEncrypt, decision.Strategy)
		assert.False(t, decision.ChoiceRequired)
	})

	t.Run("direct and unreachable yields no strategy", func(t *testing.T) {
		decision, err := Select(DirectNotProxied, false)
		assert.ErrorIs(t, err, ErrDomainUnreachable)
		assert.Empty(t, decision.Strategy)
	})

	t.Run("proxied never raises unreachable regardless of reachability", func(t *testing.T) {
		for _, reachable := range []bool{true, false} {
			decision, err := Select(ProxiedByKnownCdn, reachable)
			require.NoError(t, err)
			assert.True(t, decision.ChoiceRequired)
			assert.Empty(t, decision.Strategy)
		}
	})
}

func TestSelectProxied(t *testing.T) {
	assert.Equal(t, ManualOriginCertificate, SelectProxied(ChooseManualOrigin))
	assert.Equal(t, ProxiedLetsEncryptWithWarning, SelectProxied(ChooseProxiedLetsEncrypt))
	// Unknown choices fall back to the safer manual path.
	assert.Equal(t, ManualOriginCertificate, SelectProxied("whatever"))
}

func TestReachable(t *testing.T) {
	serverIP := "203.0.113.9"

	t.Run("exact member among unrelated records", func(t *testing.T) {
		snap := &dns.Snapshot{ARecords: []string{
			"198.51.100.1", "198.51.100.2", "198.51.100.3", "198.51.100.4",
			"198.51.100.5", "198.51.100.6", "198.51.100.7", "198.51.100.8",
			"198.51.100.9", "198.51.100.10", serverIP,
		}}
		assert.True(t, Reachable(snap, serverIP))
	})

	t.Run("same set without the exact match", func(t *testing.T) {
		snap := &dns.Snapshot{ARecords: []string{
			"198.51.100.1", "198.51.100.2", "198.51.100.3", "198.51.100.4",
			"198.51.100.5", "198.51.100.6", "198.51.100.7", "198.51.100.8",
			"198.51.100.9", "198.51.100.10",
		}}
		assert.False(t, Reachable(snap, serverIP))
	})

	t.Run("no subnet tolerance", func(t *testing.T) {
		snap := &dns.Snapshot{ARecords: []string{"203.0.113.10"}}
		assert.False(t, Reachable(snap, serverIP))
	})

	t.Run("empty record set", func(t *testing.T) {
		assert.False(t, Reachable(&dns.Snapshot{}, serverIP))
	})
}

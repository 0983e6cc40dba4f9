package strategy

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/bryanCE/certplan/internal/dns"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadDomainsFromFile(t *testing.T) {
	dir := t.TempDir()

	t.Run("skips blanks and comments", func(t *testing.T) {
		path := filepath.Join(dir, "domains.txt")
		content := "# fleet\napp.example.org\n\n  api.example.com  \n"
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

		domains, err := ReadDomainsFromFile(path)
		require.NoError(t, err)
		assert.Equal(t, []string{"app.example.org", "api.example.com"}, domains)
	})

	t.Run("rejects invalid domain with line number", func(t *testing.T) {
		path := filepath.Join(dir, "bad.txt")
		require.NoError(t, os.WriteFile(path, []byte("ok.example.org\nbad_domain\n"), 0o644))

		_, err := ReadDomainsFromFile(path)
		assert.ErrorContains(t, err, "line 2")
	})

	t.Run("rejects empty file", func(t *testing.T) {
		path := filepath.Join(dir, "empty.txt")
		require.NoError(t, os.WriteFile(path, []byte("# nothing\n"), 0o644))

		_, err := ReadDomainsFromFile(path)
		assert.ErrorContains(t, err, "no valid domains")
	})
}

func TestPlanAll(t *testing.T) {
	resolver := newTestResolver(t, &fakeInspector{snapshots: map[string]*dns.Snapshot{
		"app.example.org": {
			Domain:      "app.example.org",
			Nameservers: []string{"ns1.myregistrar.com"},
			ARecords:    []string{"203.0.113.9"},
		},
		"api.example.com": {
			Domain:      "api.example.com",
			Nameservers: []string{"ns1.cloudflare.com"},
			ARecords:    []string{"104.21.44.3"},
		},
		"stale.example.org": {
			Domain:      "stale.example.org",
			Nameservers: []string{"ns1.myregistrar.com"},
			ARecords:    []string{"198.51.100.4"},
		},
	}})

	planner := NewPlanner(resolver, 3)

	var progress int
	planner.SetProgressCallback(func(current, total int, domain string, success bool) {
		progress++
		assert.Equal(t, 3, total)
	})

	summary, err := planner.PlanAll(context.Background(),
		[]string{"app.example.org", "api.example.com", "stale.example.org"}, "203.0.113.9")
	require.NoError(t, err)

	assert.Equal(t, 3, summary.TotalDomains)
	assert.Equal(t, 2, summary.Successful)
	assert.Equal(t, 1, summary.Failed)
	assert.Equal(t, 3, progress)
	assert.Len(t, summary.Results, 3)

	byDomain := make(map[string]PlanResult, len(summary.Results))
	for _, r := range summary.Results {
		byDomain[r.Domain] = r
	}

	assert.Equal(t, DirectLetsEncrypt, byDomain["app.example.org"].Resolution.Decision.Strategy)
	assert.True(t, byDomain["api.example.com"].Resolution.Decision.ChoiceRequired)

	var unreachable *UnreachableDomainError
	require.ErrorAs(t, byDomain["stale.example.org"].Error, &unreachable)
}

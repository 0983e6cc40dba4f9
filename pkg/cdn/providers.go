package cdn

import (
	"bufio"
	"fmt"
	"net/netip"
	"os"
	"strings"
)

// Provider describes one CDN/proxy service that can front a domain.
// A domain is attributed to a provider when its nameservers carry one of
// the provider's suffixes, or when one of its A records falls inside one
// of the provider's edge ranges.
type Provider struct {
	Name               string
	NameserverSuffixes []string
	EdgeRanges         []netip.Prefix
}

// MatchRule identifies which classification rule attributed a domain to a provider.
type MatchRule string

const (
	MatchNameserverSuffix MatchRule = "nameserver-suffix"
	MatchEdgeRange        MatchRule = "edge-range"
)

// Match records the provider and rule that classified a domain as proxied.
// It exists for diagnostics only; the verdict does not depend on which
// rule fired.
type Match struct {
	Provider string    `json:"provider"`
	Rule     MatchRule `json:"rule"`
	Value    string    `json:"value"` // the nameserver or address that matched
}

// KnownProviders lists the providers detected out of the box.
// Edge ranges drift over time, so deployments should override or extend
// these from a range file rather than rebuilding (see LoadRangesFile).
var KnownProviders = []Provider{
	{
		Name:               "cloudflare",
		NameserverSuffixes: []string{".ns.cloudflare.com", ".cloudflare.com"},
		EdgeRanges: mustPrefixes(
			"173.245.48.0/20",
			"103.21.244.0/22",
			"103.22.200.0/22",
			"103.31.4.0/22",
			"141.101.64.0/18",
			"108.162.192.0/18",
			"190.93.240.0/20",
			"188.114.96.0/20",
			"197.234.240.0/22",
			"198.41.128.0/17",
			"162.158.0.0/15",
			"104.16.0.0/13",
			"104.24.0.0/14",
			"172.64.0.0/13",
			"131.0.72.0/22",
			"2400:cb00::/32",
			"2606:4700::/32",
			"2803:f800::/32",
			"2405:b500::/32",
			"2405:8100::/32",
			"2a06:98c0::/29",
			"2c0f:f248::/32",
		),
	},
}

// Config is the allow-list consulted by the proxy classifier.
type Config struct {
	Providers []Provider
}

// DefaultConfig returns a config populated with the built-in providers.
func DefaultConfig() Config {
	return Config{Providers: KnownProviders}
}

// Empty reports whether the config carries no usable detection rules.
func (c Config) Empty() bool {
	for _, p := range c.Providers {
		if len(p.NameserverSuffixes) > 0 || len(p.EdgeRanges) > 0 {
			return false
		}
	}
	return true
}

// MatchNameserver returns the first provider whose nameserver suffix
// matches ns, or nil. Matching is case-insensitive and tolerates the
// trailing dot DNS answers carry.
func (c Config) MatchNameserver(ns string) *Match {
	host := strings.ToLower(strings.TrimSuffix(ns, "."))
	for _, p := range c.Providers {
		for _, suffix := range p.NameserverSuffixes {
			if strings.HasSuffix(host, strings.ToLower(suffix)) {
				return &Match{Provider: p.Name, Rule: MatchNameserverSuffix, Value: ns}
			}
		}
	}
	return nil
}

// MatchAddr returns the first provider whose edge ranges contain addr, or nil.
// Unparseable addresses never match.
func (c Config) MatchAddr(addr string) *Match {
	ip, err := netip.ParseAddr(addr)
	if err != nil {
		return nil
	}
	for _, p := range c.Providers {
		for _, pfx := range p.EdgeRanges {
			if pfx.Contains(ip) {
				return &Match{Provider: p.Name, Rule: MatchEdgeRange, Value: addr}
			}
		}
	}
	return nil
}

// LoadRangesFile reads CIDR prefixes from a file, one per line.
// Blank lines and lines starting with # are skipped. The format matches
// the range lists CDN providers publish for download.
func LoadRangesFile(path string) ([]netip.Prefix, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open range file: %w", err)
	}
	defer file.Close()

	var prefixes []netip.Prefix
	scanner := bufio.NewScanner(file)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		pfx, err := netip.ParsePrefix(line)
		if err != nil {
			return nil, fmt.Errorf("invalid CIDR on line %d: %s", lineNum, line)
		}
		prefixes = append(prefixes, pfx)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading range file: %w", err)
	}

	if len(prefixes) == 0 {
		return nil, fmt.Errorf("no CIDR ranges found in %s", path)
	}

	return prefixes, nil
}

// WithRangesFromFile returns a copy of the config where the named
// provider's edge ranges are replaced by the contents of a range file.
// An unknown provider name is appended as a ranges-only provider.
func (c Config) WithRangesFromFile(provider, path string) (Config, error) {
	prefixes, err := LoadRangesFile(path)
	if err != nil {
		return Config{}, err
	}

	out := Config{Providers: make([]Provider, len(c.Providers))}
	copy(out.Providers, c.Providers)

	for i := range out.Providers {
		if out.Providers[i].Name == provider {
			out.Providers[i].EdgeRanges = prefixes
			return out, nil
		}
	}

	out.Providers = append(out.Providers, Provider{Name: provider, EdgeRanges: prefixes})
	return out, nil
}

func mustPrefixes(cidrs ...string) []netip.Prefix {
	prefixes := make([]netip.Prefix, 0, len(cidrs))
	for _, c := range cidrs {
		prefixes = append(prefixes, netip.MustParsePrefix(c))
	}
	return prefixes
}

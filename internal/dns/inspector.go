// =============================================================================
// internal/dns/inspector.go - DNS inspection implementation
// =============================================================================
package dns

import (
	"context"
	"strings"
	"time"

	"github.com/miekg/dns"
)

const defaultTimeout = 5 * time.Second

// Inspector resolves a domain's nameserver and address record sets.
// It performs no retries; retry policy belongs to the caller, who should
// re-run the whole resolution if a lookup fails.
type Inspector struct {
	client     *dns.Client
	nameserver string
}

// NewInspector creates an inspector that queries the system resolver
// from /etc/resolv.conf with a 5 second timeout.
func NewInspector() *Inspector {
	return NewInspectorWithOptions(QueryOptions{})
}

// NewInspectorWithOptions creates an inspector with custom options.
// An empty nameserver falls back to resolv.conf, then to 8.8.8.8.
func NewInspectorWithOptions(opts QueryOptions) *Inspector {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	ns := opts.Nameserver
	if ns == "" {
		ns = systemNameserver()
	}
	if !strings.Contains(ns, ":") {
		ns += ":53"
	}

	return &Inspector{
		client:     &dns.Client{Timeout: timeout},
		nameserver: ns,
	}
}

// Snapshot performs NS, A and AAAA lookups for the domain and returns the
// observed record sets. Empty answer sections produce empty sets, never an
// error: absence of records is data. A *ResolutionError is returned only
// when the resolver itself cannot be reached.
func (i *Inspector) Snapshot(ctx context.Context, domain string) (*Snapshot, error) {
	snap := &Snapshot{
		Domain:  domain,
		TakenAt: time.Now(),
	}

	nameservers, err := i.lookup(ctx, domain, dns.TypeNS)
	if err != nil {
		return nil, &ResolutionError{Op: "ns-lookup", Target: domain, Err: err}
	}
	snap.Nameservers = nameservers

	for _, qtype := range []uint16{dns.TypeA, dns.TypeAAAA} {
		addrs, err := i.lookup(ctx, domain, qtype)
		if err != nil {
			return nil, &ResolutionError{Op: "a-lookup", Target: domain, Err: err}
		}
		snap.ARecords = append(snap.ARecords, addrs...)
	}

	return snap, nil
}

// lookup runs a single query and extracts answer values for the requested
// type. CNAME entries in the answer chain are skipped; only terminal
// values count toward the record sets.
func (i *Inspector) lookup(ctx context.Context, domain string, qtype uint16) ([]string, error) {
	msg := new(dns.Msg)
	msg.SetQuestion(dns.Fqdn(domain), qtype)
	msg.RecursionDesired = true

	response, _, err := i.client.ExchangeContext(ctx, msg, i.nameserver)
	if err != nil {
		return nil, err
	}

	return extractAnswers(response, qtype), nil
}

// extractAnswers pulls values of the requested type out of a response.
// NXDOMAIN and empty answers both yield an empty set.
func extractAnswers(response *dns.Msg, qtype uint16) []string {
	var values []string
	if response == nil {
		return values
	}

	for _, answer := range response.Answer {
		if answer.Header().Rrtype != qtype {
			continue
		}
		switch rr := answer.(type) {
		case *dns.NS:
			values = append(values, strings.TrimSuffix(rr.Ns, "."))
		case *dns.A:
			values = append(values, rr.A.String())
		case *dns.AAAA:
			values = append(values, rr.AAAA.String())
		}
	}

	return values
}

// systemNameserver returns the first resolver from /etc/resolv.conf,
// falling back to a public resolver when the file is unusable.
func systemNameserver() string {
	conf, err := dns.ClientConfigFromFile("/etc/resolv.conf")
	if err == nil && len(conf.Servers) > 0 {
		return conf.Servers[0]
	}
	return "8.8.8.8"
}

// =============================================================================
// internal/strategy/resolver.go - Certificate strategy resolution pipeline
// =============================================================================
package strategy

import (
	"context"
	"fmt"

	"github.com/bryanCE/certplan/internal/dns"
	"github.com/bryanCE/certplan/pkg/cdn"
)

// Inspector is the DNS lookup dependency of the resolver. Satisfied by
// *dns.Inspector; tests inject snapshots directly through a fake.
type Inspector interface {
	Snapshot(ctx context.Context, domain string) (*dns.Snapshot, error)
}

// Resolver runs the full pipeline for one domain: validate, snapshot,
// classify, check reachability (direct domains only), select.
// All entities live within a single Resolve call; nothing is persisted.
type Resolver struct {
	inspector  Inspector
	classifier *Classifier
}

// NewResolver creates a resolver over an inspector and a CDN allow-list.
// An empty allow-list is a configuration error: classification without
// detection rules would silently call every domain direct.
func NewResolver(inspector Inspector, cfg cdn.Config) (*Resolver, error) {
	if inspector == nil {
		return nil, fmt.Errorf("inspector is required")
	}
	if cfg.Empty() {
		return nil, fmt.Errorf("CDN allow-list is empty: provide at least one provider with nameserver suffixes or edge ranges")
	}

	return &Resolver{
		inspector:  inspector,
		classifier: NewClassifier(cfg),
	}, nil
}

// Resolve determines the certificate strategy for domain given the
// server's public IP.
//
// Error kinds: invalid input fails fast before any network call;
// *dns.ResolutionError means the resolver could not be asked;
// *UnreachableDomainError means DNS answered but points elsewhere and no
// CDN fronts the domain. A proxied domain never produces an
// unreachability error — classification runs first, and proxied domains
// skip the reachability gate entirely.
func (r *Resolver) Resolve(ctx context.Context, domain, serverIP string) (*Resolution, error) {
	if err := dns.ValidateDomain(domain); err != nil {
		return nil, fmt.Errorf("invalid domain: %w", err)
	}
	if serverIP == "" {
		return nil, fmt.Errorf("server public IP is required")
	}

	snap, err := r.inspector.Snapshot(ctx, domain)
	if err != nil {
		return nil, err
	}

	verdict, match := r.classifier.Classify(snap)

	res := &Resolution{
		Domain:  domain,
		Verdict: verdict,
		Diagnostics: Diagnostics{
			Snapshot: snap,
			Verdict:  verdict,
			CdnMatch: match,
			ServerIP: serverIP,
		},
	}

	if verdict == DirectNotProxied {
		res.Reachable = Reachable(snap, serverIP)
	}

	decision, err := Select(verdict, res.Reachable)
	if err != nil {
		// An unresolvable domain lands here too: no records means no CDN
		// signal and no matching address, which is the same operator
		// action — fix DNS and re-run.
		return res, &UnreachableDomainError{
			Domain:   domain,
			ServerIP: serverIP,
			Actual:   snap.ARecords,
		}
	}

	res.Decision = decision
	return res, nil
}

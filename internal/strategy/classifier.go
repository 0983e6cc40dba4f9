// =============================================================================
// internal/strategy/classifier.go - CDN/proxy classification
// =============================================================================
package strategy

import (
	"github.com/bryanCE/certplan/internal/dns"
	"github.com/bryanCE/certplan/pkg/cdn"
)

// Classifier decides whether a domain is front-ended by a known CDN.
type Classifier struct {
	cfg cdn.Config
}

// NewClassifier creates a classifier over the given provider allow-list.
func NewClassifier(cfg cdn.Config) *Classifier {
	return &Classifier{cfg: cfg}
}

// Classify returns ProxiedByKnownCdn when any nameserver carries a known
// provider suffix or any A record sits inside a known edge range.
// The nameserver check runs first and short-circuits; which rule fired is
// visible only in the returned Match, never in the verdict — either
// condition alone is sufficient. A pure function of the snapshot: no
// network, no state.
func (c *Classifier) Classify(snap *dns.Snapshot) (ProxyVerdict, *cdn.Match) {
	for _, ns := range snap.Nameservers {
		if m := c.cfg.MatchNameserver(ns); m != nil {
			return ProxiedByKnownCdn, m
		}
	}

	for _, addr := range snap.ARecords {
		if m := c.cfg.MatchAddr(addr); m != nil {
			return ProxiedByKnownCdn, m
		}
	}

	return DirectNotProxied, nil
}

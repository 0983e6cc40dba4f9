// =============================================================================
// internal/strategy/types.go - Verdicts, strategies, and decision types
// =============================================================================
package strategy

import (
	"github.com/bryanCE/certplan/internal/dns"
	"github.com/bryanCE/certplan/pkg/cdn"
)

// ProxyVerdict states whether a domain is front-ended by a known CDN or
// points directly at a server. Derived deterministically from a snapshot.
type ProxyVerdict string

const (
	DirectNotProxied  ProxyVerdict = "direct"
	ProxiedByKnownCdn ProxyVerdict = "proxied-cdn"
)

// CertificateStrategy is the certificate path the issuance collaborator
// should take for a domain.
type CertificateStrategy string

const (
	// DirectLetsEncrypt issues via ACME HTTP-01 straight against the domain.
	DirectLetsEncrypt CertificateStrategy = "direct-letsencrypt"

	// ManualOriginCertificate installs an operator-supplied origin
	// certificate for use between the CDN edge and this server.
	ManualOriginCertificate CertificateStrategy = "manual-origin"

	// ProxiedLetsEncryptWithWarning issues via ACME behind the CDN. The
	// challenge may be answered by the edge, so the operator is warned
	// before this path runs.
	ProxiedLetsEncryptWithWarning CertificateStrategy = "proxied-letsencrypt"
)

// Decision is the outcome of the strategy selector. For proxied domains no
// single strategy applies: the operator chooses between the two proxied
// paths, and ChoiceRequired is set instead of Strategy.
type Decision struct {
	Strategy       CertificateStrategy `json:"strategy,omitempty"`
	ChoiceRequired bool                `json:"choice_required,omitempty"`
}

// Diagnostics carries the raw inputs behind a resolution for
// operator-facing output. It never influences the decision.
type Diagnostics struct {
	Snapshot *dns.Snapshot `json:"snapshot"`
	Verdict  ProxyVerdict  `json:"verdict"`
	CdnMatch *cdn.Match    `json:"cdn_match,omitempty"`
	ServerIP string        `json:"server_ip"`
}

// Resolution is the full result of resolving a certificate strategy for
// one domain.
type Resolution struct {
	Domain      string       `json:"domain"`
	Verdict     ProxyVerdict `json:"verdict"`
	Reachable   bool         `json:"reachable"`
	Decision    Decision     `json:"decision"`
	Diagnostics Diagnostics  `json:"diagnostics"`
}

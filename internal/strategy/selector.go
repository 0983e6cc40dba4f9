// =============================================================================
// internal/strategy/selector.go - Certificate strategy decision table
// =============================================================================
package strategy

import "errors"

// ErrDomainUnreachable signals the direct-but-mismatched row of the
// decision table. The resolver wraps it in an *UnreachableDomainError
// carrying the expected and actual addresses.
var ErrDomainUnreachable = errors.New("domain does not resolve to this server")

// ProxiedChoice is the operator's pick between the two proxied strategies.
type ProxiedChoice string

const (
	ChooseManualOrigin       ProxiedChoice = "manual"
	ChooseProxiedLetsEncrypt ProxiedChoice = "letsencrypt"
)

// Select applies the decision table to a verdict and reachability result.
// One-shot and pure: nothing persists across calls.
//
//	DirectNotProxied  + reachable   -> DirectLetsEncrypt
//	DirectNotProxied  + unreachable -> ErrDomainUnreachable (caller decides retry-or-abort)
//	ProxiedByKnownCdn + anything    -> ChoiceRequired (reachability never gates proxied domains)
func Select(verdict ProxyVerdict, reachable bool) (Decision, error) {
	if verdict == ProxiedByKnownCdn {
		return Decision{ChoiceRequired: true}, nil
	}

	if !reachable {
		return Decision{}, ErrDomainUnreachable
	}

	return Decision{Strategy: DirectLetsEncrypt}, nil
}

// SelectProxied maps the operator's choice for a proxied domain to its
// strategy. Unknown choices fall back to the manual origin path, the
// safer of the two.
func SelectProxied(choice ProxiedChoice) CertificateStrategy {
	if choice == ChooseProxiedLetsEncrypt {
		return ProxiedLetsEncryptWithWarning
	}
	return ManualOriginCertificate
}

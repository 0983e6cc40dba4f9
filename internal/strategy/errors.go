package strategy

import (
	"fmt"
	"strings"
)

// UnreachableDomainError reports a domain that resolves, but not to this
// server, and is not CDN-proxied. That is a misconfiguration, not an
// ambiguous case: it is surfaced with the expected and actual addresses so
// the operator can fix DNS, and it is never downgraded to a proxied
// strategy — guessing wrong here can issue a certificate for a domain the
// server does not control.
type UnreachableDomainError struct {
	Domain   string
	ServerIP string
	Actual   []string
}

func (e *UnreachableDomainError) Error() string {
	actual := "no address records"
	if len(e.Actual) > 0 {
		actual = strings.Join(e.Actual, ", ")
	}
	return fmt.Sprintf("domain %s does not point at this server: expected %s, got %s",
		e.Domain, e.ServerIP, actual)
}

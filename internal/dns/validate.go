package dns

import (
	"fmt"
	"strings"
)

// ValidateDomain checks that domain is a syntactically plausible FQDN
// before any network call is made. Rules: one or more dot-separated
// labels of alphanumerics and hyphens, no label starting or ending with a
// hyphen, and a final label of at least two characters.
func ValidateDomain(domain string) error {
	if domain == "" {
		return fmt.Errorf("domain cannot be empty")
	}
	if len(domain) > 253 {
		return fmt.Errorf("domain %q exceeds 253 characters", domain)
	}

	labels := strings.Split(strings.TrimSuffix(domain, "."), ".")
	for _, label := range labels {
		if label == "" {
			return fmt.Errorf("domain %q contains an empty label", domain)
		}
		if len(label) > 63 {
			return fmt.Errorf("label %q exceeds 63 characters", label)
		}
		if strings.HasPrefix(label, "-") || strings.HasSuffix(label, "-") {
			return fmt.Errorf("label %q starts or ends with a hyphen", label)
		}
		for _, r := range label {
			if !isLabelChar(r) {
				return fmt.Errorf("label %q contains invalid character %q", label, r)
			}
		}
	}

	if tld := labels[len(labels)-1]; len(tld) < 2 {
		return fmt.Errorf("top-level label %q is too short", tld)
	}

	return nil
}

func isLabelChar(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') ||
		(r >= '0' && r <= '9') || r == '-'
}

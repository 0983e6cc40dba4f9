// =============================================================================
// internal/dns/types.go - Core DNS data structures
// =============================================================================
package dns

import (
	"fmt"
	"time"
)

// Query captures a single domain inspection request.
// Immutable once constructed; one Query per invocation.
type Query struct {
	Domain      string    `json:"domain"`
	RequestedAt time.Time `json:"requested_at"`
}

// Snapshot holds the nameserver and address record sets observed for a
// domain at a point in time. Nothing mutates a snapshot after creation;
// callers that want fresher data take a new one, since DNS state is
// external and can change between calls.
type Snapshot struct {
	Domain      string    `json:"domain"`
	Nameservers []string  `json:"nameservers"`
	ARecords    []string  `json:"a_records"`
	TakenAt     time.Time `json:"taken_at"`
}

// Empty reports whether the domain produced no answers at all.
func (s *Snapshot) Empty() bool {
	return len(s.Nameservers) == 0 && len(s.ARecords) == 0
}

// HasARecord reports exact membership of addr in the snapshot's address set.
func (s *Snapshot) HasARecord(addr string) bool {
	for _, a := range s.ARecords {
		if a == addr {
			return true
		}
	}
	return false
}

// QueryOptions represents options for DNS lookups
type QueryOptions struct {
	Nameserver string        `json:"nameserver"` // host or host:port; empty means resolv.conf
	Timeout    time.Duration `json:"timeout"`
}

// ResolutionError reports a transport-level failure reaching the DNS
// system or the public-IP service. The absence of records is data, not an
// error; this type is reserved for "could not ask", never "no answer".
type ResolutionError struct {
	Op     string // "ns-lookup", "a-lookup", "public-ip"
	Target string // domain or service URL
	Err    error
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("%s failed for %s: %v", e.Op, e.Target, e.Err)
}

func (e *ResolutionError) Unwrap() error {
	return e.Err
}

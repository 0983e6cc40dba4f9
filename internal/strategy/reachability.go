package strategy

import "github.com/bryanCE/certplan/internal/dns"

// Reachable reports whether DNS for the domain points at this server:
// true iff serverIP is an exact member of the snapshot's address set.
// No subnet tolerance — extra unrelated records are informational, exact
// membership of the one server IP is the sole criterion.
//
// Only meaningful for DirectNotProxied domains; callers must not consult
// it for proxied domains, which are expected to resolve to third-party
// edge addresses.
func Reachable(snap *dns.Snapshot, serverIP string) bool {
	return snap.HasARecord(serverIP)
}

// Package publicip discovers the public IPv4 address of the host running
// the CLI by asking a plain-text IP echo service.
package publicip

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/netip"
	"strings"
	"time"

	"github.com/bryanCE/certplan/internal/dns"
)

// DefaultServiceURL is the IP echo service queried when none is configured.
const DefaultServiceURL = "https://api.ipify.org"

const defaultTimeout = 5 * time.Second

// Client queries an IP echo service for the caller's own public address.
type Client struct {
	serviceURL string
	httpClient *http.Client
}

// NewClient creates a client for the given echo service URL.
// An empty URL selects the default service.
func NewClient(serviceURL string) *Client {
	if serviceURL == "" {
		serviceURL = DefaultServiceURL
	}
	return &Client{
		serviceURL: serviceURL,
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
}

// Discover returns the host's public IP as reported by the echo service.
// Transport failures, non-200 responses and unparseable bodies all come
// back as *dns.ResolutionError: the strategy resolver treats "cannot
// learn own IP" and "cannot reach DNS" as the same operator problem.
func (c *Client) Discover(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.serviceURL, nil)
	if err != nil {
		return "", &dns.ResolutionError{Op: "public-ip", Target: c.serviceURL, Err: err}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", &dns.ResolutionError{Op: "public-ip", Target: c.serviceURL, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", &dns.ResolutionError{
			Op:     "public-ip",
			Target: c.serviceURL,
			Err:    fmt.Errorf("unexpected status %s", resp.Status),
		}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 64))
	if err != nil {
		return "", &dns.ResolutionError{Op: "public-ip", Target: c.serviceURL, Err: err}
	}

	raw := strings.TrimSpace(string(body))
	addr, err := netip.ParseAddr(raw)
	if err != nil {
		return "", &dns.ResolutionError{
			Op:     "public-ip",
			Target: c.serviceURL,
			Err:    fmt.Errorf("service returned %q, not an IP address", raw),
		}
	}

	return addr.String(), nil
}

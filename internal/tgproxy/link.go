// Package tgproxy builds MTProto proxy join links and renders them as QR
// codes for mobile clients.
package tgproxy

import (
	"fmt"
	"net/url"
	"regexp"

	qrcode "github.com/skip2/go-qrcode"
)

var secretPattern = regexp.MustCompile(`^(?:dd|ee)?[0-9a-fA-F]{32,}$`)

// Link builds a tg://proxy join URL for an MTProto proxy.
// The secret must be hex, optionally with a dd (padded) or ee (fake-TLS)
// prefix as Telegram clients expect.
func Link(host string, port int, secret string) (string, error) {
	if host == "" {
		return "", fmt.Errorf("proxy host is required")
	}
	if port < 1 || port > 65535 {
		return "", fmt.Errorf("invalid proxy port %d", port)
	}
	if !secretPattern.MatchString(secret) {
		return "", fmt.Errorf("secret must be a hex string (optionally dd- or ee-prefixed)")
	}

	q := url.Values{}
	q.Set("server", host)
	q.Set("port", fmt.Sprintf("%d", port))
	q.Set("secret", secret)

	return "tg://proxy?" + q.Encode(), nil
}

// QR renders a join link as a PNG QR code of the given pixel size.
func QR(link string, size int) ([]byte, error) {
	if size <= 0 {
		size = 256
	}
	png, err := qrcode.Encode(link, qrcode.Medium, size)
	if err != nil {
		return nil, fmt.Errorf("failed to encode QR code: %w", err)
	}
	return png, nil
}

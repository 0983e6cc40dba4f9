package tgproxy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLink(t *testing.T) {
	t.Run("builds a join URL", func(t *testing.T) {
		link, err := Link("proxy.example.org", 443, "dd00112233445566778899aabbccddeeff")
		require.NoError(t, err)
		assert.Equal(t, "tg://proxy?port=443&secret=dd00112233445566778899aabbccddeeff&server=proxy.example.org", link)
	})

	t.Run("accepts unprefixed hex secret", func(t *testing.T) {
		_, err := Link("proxy.example.org", 8443, "00112233445566778899aabbccddeeff")
		assert.NoError(t, err)
	})

	tests := []struct {
		name   string
		host   string
		port   int
		secret string
	}{
		{"empty host", "", 443, "dd00112233445566778899aabbccddeeff"},
		{"port too low", "proxy.example.org", 0, "dd00112233445566778899aabbccddeeff"},
		{"port too high", "proxy.example.org", 70000, "dd00112233445566778899aabbccddeeff"},
		{"non-hex secret", "proxy.example.org", 443, "zz00112233445566778899aabbccddeeff"},
		{"short secret", "proxy.example.org", 443, "dd0011"},
		{"empty secret", "proxy.example.org", 443, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Link(tt.host, tt.port, tt.secret)
			assert.Error(t, err)
		})
	}
}

func TestQR(t *testing.T) {
	link, err := Link("proxy.example.org", 443, "dd00112233445566778899aabbccddeeff")
	require.NoError(t, err)

	png, err := QR(link, 256)
	require.NoError(t, err)

	// PNG magic bytes.
	require.Greater(t, len(png), 8)
	assert.Equal(t, []byte{0x89, 'P', 'N', 'G'}, png[:4])

	// Zero size falls back to the default.
	png2, err := QR(link, 0)
	require.NoError(t, err)
	assert.NotEmpty(t, png2)
}

package dns

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateDomain(t *testing.T) {
	tests := []struct {
		domain  string
		wantErr bool
	}{
		{"example.com", false},
		{"api.example.com", false},
		{"example.com.", false},
		{"label-with-hyphen.example.org", false},
		{"xn--bcher-kva.example", false},
		{"localhost", false}, // a single label is allowed
		{"", true},
		{"example..com", true},
		{"-leading.example.com", true},
		{"trailing-.example.com", true},
		{"under_score.example.com", true},
		{"example.c", true},
		{strings.Repeat("a", 64) + ".example.com", true},
		{strings.Repeat("a.", 130) + "com", true},
	}

	for _, tt := range tests {
		t.Run(tt.domain, func(t *testing.T) {
			err := ValidateDomain(tt.domain)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

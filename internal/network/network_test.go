package network

import (
	"net/netip"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsTrusted(t *testing.T) {
	c := NewChecker(netip.MustParsePrefix("192.168.1.0/24"))

	tests := []struct {
		name string
		ip   string
		want bool
	}{
		{"inside", "192.168.1.20", true},
		{"network address", "192.168.1.0", true},
		{"broadcast address", "192.168.1.255", true},
		{"neighbouring subnet", "192.168.2.1", false},
		{"public", "10.0.0.1", false},
		{"ipv4 mapped ipv6", "::ffff:192.168.1.9", true},
		{"ipv6", "2001:db8::1", false},
		{"surrounding whitespace", " 192.168.1.3 ", true},
		{"empty", "", false},
		{"garbage", "not-an-ip", false},
		{"spoofed header list", "192.168.1.4, 10.0.0.1", false},
		{"with port", "192.168.1.4:8080", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.IsTrusted(tt.ip))
		})
	}
}

func TestIsTrustedIdempotent(t *testing.T) {
	c := NewChecker(netip.MustParsePrefix("192.168.1.0/24"))
	for _, ip := range []string{"192.168.1.5", "10.0.0.1", "bogus"} {
		first := c.IsTrusted(ip)
		for range 50 {
			assert.Equal(t, first, c.IsTrusted(ip), ip)
		}
	}
}

func TestParseChecker(t *testing.T) {
	c, err := ParseChecker("192.168.5.9/24")
	require.NoError(t, err)
	assert.Equal(t, "192.168.5.0/24", c.Prefix().String())
	assert.True(t, c.IsTrusted("192.168.5.200"))

	_, err = ParseChecker("192.168.5.9")
	assert.Error(t, err)
}

func TestZeroCheckerTrustsNothing(t *testing.T) {
	var c Checker
	assert.False(t, c.IsTrusted("192.168.1.1"))

	var nilChecker *Checker
	assert.False(t, nilChecker.IsTrusted("192.168.1.1"))
}

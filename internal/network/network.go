// Package network decides whether a caller address belongs to the trusted
// clinical network.
package network

import (
	"net/netip"
	"strings"
)

// Checker answers membership questions against one trusted prefix.
// The zero value trusts nothing.
type Checker struct {
	prefix netip.Prefix
}

// NewChecker returns a Checker for the given prefix. The prefix is masked so
// "192.168.1.7/24" and "192.168.1.0/24" behave the same.
func NewChecker(prefix netip.Prefix) *Checker {
	return &Checker{prefix: prefix.Masked()}
}

// ParseChecker is NewChecker for a CIDR string.
func ParseChecker(cidr string) (*Checker, error) {
	prefix, err := netip.ParsePrefix(strings.TrimSpace(cidr))
	if err != nil {
		return nil, err
	}
	return NewChecker(prefix), nil
}

// Prefix returns the trusted prefix.
func (c *Checker) Prefix() netip.Prefix {
	return c.prefix
}

// IsTrusted reports whether ip lies inside the trusted prefix. Anything that
// does not parse as an IP literal is untrusted. IPv4-mapped IPv6 addresses are
// compared as IPv4.
func (c *Checker) IsTrusted(ip string) bool {
	if c == nil || !c.prefix.IsValid() {
		return false
	}
	addr, err := netip.ParseAddr(strings.TrimSpace(ip))
	if err != nil {
		return false
	}
	return c.prefix.Contains(addr.Unmap())
}

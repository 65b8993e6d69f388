package models

import "strings"

// KeyPrefix namespaces rate limit buckets by the kind of identifier.
type KeyPrefix string

const KeyPrefixIP KeyPrefix = "ip"

// RateLimitKey identifies one sliding window bucket.
type RateLimitKey struct {
	Prefix     KeyPrefix
	Identifier string
	Class      EndpointClass
}

// NewRateLimitKey builds a key with a sanitized identifier.
func NewRateLimitKey(prefix KeyPrefix, identifier string, class EndpointClass) RateLimitKey {
	return RateLimitKey{Prefix: prefix, Identifier: SanitizeKeySegment(identifier), Class: class}
}

func (k RateLimitKey) String() string {
	return "ratelimit:" + string(k.Prefix) + ":" + k.Identifier + ":" + string(k.Class)
}

// SanitizeKeySegment escapes delimiter characters in rate limit key segments
// so a caller-controlled identifier containing ':' cannot land in another
// bucket. IPv6 addresses are the common case here.
func SanitizeKeySegment(s string) string {
	return strings.ReplaceAll(s, ":", "_")
}

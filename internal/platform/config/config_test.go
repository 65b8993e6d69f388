package config

import (
	"net/netip"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

type ConfigSuite struct {
	suite.Suite
}

func TestConfigSuite(t *testing.T) {
	suite.Run(t, new(ConfigSuite))
}

func lookupFrom(vars map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := vars[key]
		return v, ok
	}
}

func (s *ConfigSuite) TestDefaults() {
	cfg, err := fromLookup(lookupFrom(nil))
	s.Require().NoError(err)

	s.Equal(":8080", cfg.Server.Addr)
	s.False(cfg.Server.TrustProxyHeaders)
	s.Equal(netip.MustParsePrefix("192.168.1.0/24"), cfg.Policy.TrustedNetwork)
	s.Equal(40, cfg.Policy.TrustThreshold)
	s.Equal(80, cfg.Policy.DefaultTrustScore)
	s.InDelta(0.55, cfg.Policy.RestrictedMinConfidence, 1e-9)
	s.InDelta(0.70, cfg.Policy.EmergencyMinConfidence, 1e-9)
	s.InDelta(0.6, cfg.Policy.IntentMinConfidence, 1e-9)
	s.Equal(30*time.Minute, cfg.Policy.TemporaryAccessTTL)
	s.Equal("memory", cfg.Stores.TrustBackend)
	s.Equal("memory", cfg.Audit.Sink)
	s.Equal(30, cfg.RateLimit.Normal)
	s.Equal(60, cfg.RateLimit.Precheck)
	s.Equal(100, cfg.RateLimit.Log)
	s.Equal(cfg.Policy, DefaultPolicy())
}

func (s *ConfigSuite) TestOverrides() {
	cfg, err := fromLookup(lookupFrom(map[string]string{
		"TRUSTED_NETWORK":          "192.168.5.7/24",
		"TRUST_THRESHOLD":          "50",
		"EMERGENCY_MIN_CONFIDENCE": "0.8",
		"TRUST_BACKEND":            "Redis",
		"REDIS_URL":                "redis://localhost:6379/0",
		"AUDIT_SINK":               "kafka",
		"KAFKA_BROKERS":            "k1:9092, k2:9092,",
		"AUDIT_SEAL_KEY":           strings.Repeat("ab", 32),
		"RATE_LIMIT_DISABLED":      "true",
		"TEMP_ACCESS_TTL":          "10m",
		"TRUST_PROXY_HEADERS":      "1",
	}))
	s.Require().NoError(err)

	s.Equal(netip.MustParsePrefix("192.168.5.0/24"), cfg.Policy.TrustedNetwork, "prefix is masked")
	s.Equal(50, cfg.Policy.TrustThreshold)
	s.InDelta(0.8, cfg.Policy.EmergencyMinConfidence, 1e-9)
	s.Equal("redis", cfg.Stores.TrustBackend)
	s.Equal([]string{"k1:9092", "k2:9092"}, cfg.Audit.KafkaBrokers)
	s.Len(cfg.Audit.SealKey, 32)
	s.True(cfg.RateLimit.Disabled)
	s.True(cfg.Server.TrustProxyHeaders)
	s.Equal(10*time.Minute, cfg.Policy.TemporaryAccessTTL)
}

func (s *ConfigSuite) TestInvalid() {
	cases := map[string]map[string]string{
		"bad cidr":                 {"TRUSTED_NETWORK": "192.168.1.0"},
		"non numeric threshold":    {"TRUST_THRESHOLD": "forty"},
		"threshold out of range":   {"TRUST_THRESHOLD": "101"},
		"confidence out of range":  {"RESTRICTED_MIN_CONFIDENCE": "1.5"},
		"redis without url":        {"TRUST_BACKEND": "redis"},
		"postgres without url":     {"TRUST_BACKEND": "postgres"},
		"unknown backend":          {"TRUST_BACKEND": "firestore"},
		"kafka without brokers":    {"AUDIT_SINK": "kafka"},
		"short seal key":           {"AUDIT_SEAL_KEY": "abcd"},
		"seal key not hex":         {"AUDIT_SEAL_KEY": "zz"},
		"negative temp access ttl": {"TEMP_ACCESS_TTL": "-1m"},
	}
	for name, vars := range cases {
		s.Run(name, func() {
			_, err := fromLookup(lookupFrom(vars))
			s.Error(err)
		})
	}
}

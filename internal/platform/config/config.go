package config

import (
	"encoding/hex"
	"fmt"
	"net/netip"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config is the full runtime configuration, assembled once in main.
type Config struct {
	Server    Server
	Policy    Policy
	Models    Models
	Stores    Stores
	Audit     Audit
	RateLimit RateLimit
	Auth      Auth
}

// Server captures HTTP server level configuration.
type Server struct {
	Addr      string
	LogLevel  string
	LogFormat string
	// TrustProxyHeaders lets X-Forwarded-For decide the caller address. Only
	// safe behind a proxy that overwrites the header.
	TrustProxyHeaders bool
}

// Policy is the single source of truth for the access-control constants.
// The trusted CIDR and both confidence bars still need product sign-off;
// earlier deployments disagreed on the network (192.168.5.0/24 vs 192.168.1.0/24).
type Policy struct {
	TrustedNetwork          netip.Prefix
	TrustThreshold          int
	DefaultTrustScore       int
	RestrictedMinConfidence float64
	EmergencyMinConfidence  float64
	IntentMinConfidence     float64
	TemporaryAccessTTL      time.Duration
}

// Models locates the justification classifier artifacts.
type Models struct {
	Dir     string
	Version string
}

// Stores selects and configures the trust and patient backends.
type Stores struct {
	TrustBackend string
	DatabaseURL  string
	Redis        RedisConfig
}

// RedisConfig configures the shared Redis client.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// Audit configures where access audit entries go.
type Audit struct {
	Sink         string
	KafkaBrokers []string
	Topic        string
	SealKey      []byte
	Buffer       int
}

// RateLimit holds the per-endpoint hourly limits.
type RateLimit struct {
	Disabled   bool
	Window     time.Duration
	Normal     int
	Restricted int
	Emergency  int
	Temporary  int
	Precheck   int
	Log        int
}

// Auth enables bearer-token identity when a signing key is present.
type Auth struct {
	JWTSigningKey string
	Issuer        string
}

// Default values. Kept as named constants so tests and docs share them.
const (
	DefaultTrustedNetwork          = "192.168.1.0/24"
	DefaultTrustThreshold          = 40
	DefaultTrustScore              = 80
	DefaultRestrictedMinConfidence = 0.55
	DefaultEmergencyMinConfidence  = 0.70
	DefaultIntentMinConfidence     = 0.6
	DefaultTemporaryAccessTTL      = 30 * time.Minute
)

// DefaultPolicy returns the policy used when no overrides are set.
func DefaultPolicy() Policy {
	return Policy{
		TrustedNetwork:          netip.MustParsePrefix(DefaultTrustedNetwork),
		TrustThreshold:          DefaultTrustThreshold,
		DefaultTrustScore:       DefaultTrustScore,
		RestrictedMinConfidence: DefaultRestrictedMinConfidence,
		EmergencyMinConfidence:  DefaultEmergencyMinConfidence,
		IntentMinConfidence:     DefaultIntentMinConfidence,
		TemporaryAccessTTL:      DefaultTemporaryAccessTTL,
	}
}

// FromEnv builds a Config from environment variables so main stays lean.
func FromEnv() (Config, error) {
	return fromLookup(os.LookupEnv)
}

func fromLookup(lookup func(string) (string, bool)) (Config, error) {
	e := env{lookup: lookup}

	cfg := Config{
		Server: Server{
			Addr:              e.str("MEDTRUST_ADDR", ":8080"),
			LogLevel:          e.str("MEDTRUST_LOG_LEVEL", "info"),
			LogFormat:         e.str("MEDTRUST_LOG_FORMAT", "json"),
			TrustProxyHeaders: e.bool("TRUST_PROXY_HEADERS", false),
		},
		Policy: Policy{
			TrustThreshold:          e.int("TRUST_THRESHOLD", DefaultTrustThreshold),
			DefaultTrustScore:       e.int("DEFAULT_TRUST_SCORE", DefaultTrustScore),
			RestrictedMinConfidence: e.float("RESTRICTED_MIN_CONFIDENCE", DefaultRestrictedMinConfidence),
			EmergencyMinConfidence:  e.float("EMERGENCY_MIN_CONFIDENCE", DefaultEmergencyMinConfidence),
			IntentMinConfidence:     e.float("INTENT_MIN_CONFIDENCE", DefaultIntentMinConfidence),
			TemporaryAccessTTL:      e.duration("TEMP_ACCESS_TTL", DefaultTemporaryAccessTTL),
		},
		Models: Models{
			Dir:     e.str("MODEL_DIR", "./ml_model"),
			Version: e.str("MODEL_VERSION", ""),
		},
		Stores: Stores{
			TrustBackend: strings.ToLower(e.str("TRUST_BACKEND", "memory")),
			DatabaseURL:  e.str("DATABASE_URL", ""),
			Redis: RedisConfig{
				URL:          e.str("REDIS_URL", ""),
				PoolSize:     e.int("REDIS_POOL_SIZE", 10),
				MinIdleConns: e.int("REDIS_MIN_IDLE_CONNS", 2),
				DialTimeout:  e.duration("REDIS_DIAL_TIMEOUT", 5*time.Second),
				ReadTimeout:  e.duration("REDIS_READ_TIMEOUT", 3*time.Second),
				WriteTimeout: e.duration("REDIS_WRITE_TIMEOUT", 3*time.Second),
			},
		},
		Audit: Audit{
			Sink:         strings.ToLower(e.str("AUDIT_SINK", "memory")),
			KafkaBrokers: e.list("KAFKA_BROKERS"),
			Topic:        e.str("AUDIT_TOPIC", "medtrust.access-audit"),
			Buffer:       e.int("AUDIT_BUFFER", 256),
		},
		RateLimit: RateLimit{
			Disabled:   e.bool("RATE_LIMIT_DISABLED", false),
			Window:     e.duration("RATE_LIMIT_WINDOW", time.Hour),
			Normal:     e.int("RATE_LIMIT_NORMAL", 30),
			Restricted: e.int("RATE_LIMIT_RESTRICTED", 20),
			Emergency:  e.int("RATE_LIMIT_EMERGENCY", 15),
			Temporary:  e.int("RATE_LIMIT_TEMPORARY", 20),
			Precheck:   e.int("RATE_LIMIT_PRECHECK", 60),
			Log:        e.int("RATE_LIMIT_LOG", 100),
		},
		Auth: Auth{
			JWTSigningKey: e.str("JWT_SIGNING_KEY", ""),
			Issuer:        e.str("JWT_ISSUER", "medtrust"),
		},
	}

	network := e.str("TRUSTED_NETWORK", DefaultTrustedNetwork)
	prefix, err := netip.ParsePrefix(network)
	if err != nil {
		e.fail("TRUSTED_NETWORK", err)
	}
	cfg.Policy.TrustedNetwork = prefix.Masked()

	if key := e.str("AUDIT_SEAL_KEY", ""); key != "" {
		raw, err := hex.DecodeString(key)
		if err != nil {
			e.fail("AUDIT_SEAL_KEY", err)
		}
		cfg.Audit.SealKey = raw
	}

	if e.err != nil {
		return Config{}, e.err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks cross-field invariants.
func (c Config) Validate() error {
	p := c.Policy
	if p.TrustThreshold < 0 || p.TrustThreshold > 100 {
		return fmt.Errorf("TRUST_THRESHOLD must be within [0,100], got %d", p.TrustThreshold)
	}
	if p.DefaultTrustScore < 0 || p.DefaultTrustScore > 100 {
		return fmt.Errorf("DEFAULT_TRUST_SCORE must be within [0,100], got %d", p.DefaultTrustScore)
	}
	for name, v := range map[string]float64{
		"RESTRICTED_MIN_CONFIDENCE": p.RestrictedMinConfidence,
		"EMERGENCY_MIN_CONFIDENCE":  p.EmergencyMinConfidence,
		"INTENT_MIN_CONFIDENCE":     p.IntentMinConfidence,
	} {
		if v < 0 || v > 1 {
			return fmt.Errorf("%s must be within [0,1], got %v", name, v)
		}
	}
	if p.TemporaryAccessTTL <= 0 {
		return fmt.Errorf("TEMP_ACCESS_TTL must be positive")
	}

	switch c.Stores.TrustBackend {
	case "memory":
	case "redis":
		if c.Stores.Redis.URL == "" {
			return fmt.Errorf("TRUST_BACKEND=redis requires REDIS_URL")
		}
	case "postgres":
		if c.Stores.DatabaseURL == "" {
			return fmt.Errorf("TRUST_BACKEND=postgres requires DATABASE_URL")
		}
	default:
		return fmt.Errorf("unknown TRUST_BACKEND %q", c.Stores.TrustBackend)
	}

	switch c.Audit.Sink {
	case "memory":
	case "postgres":
		if c.Stores.DatabaseURL == "" {
			return fmt.Errorf("AUDIT_SINK=postgres requires DATABASE_URL")
		}
	case "kafka":
		if len(c.Audit.KafkaBrokers) == 0 {
			return fmt.Errorf("AUDIT_SINK=kafka requires KAFKA_BROKERS")
		}
	default:
		return fmt.Errorf("unknown AUDIT_SINK %q", c.Audit.Sink)
	}

	if len(c.Audit.SealKey) != 0 && len(c.Audit.SealKey) != 32 {
		return fmt.Errorf("AUDIT_SEAL_KEY must be 32 bytes hex-encoded, got %d bytes", len(c.Audit.SealKey))
	}
	return nil
}

// env reads typed values and remembers the first parse failure.
type env struct {
	lookup func(string) (string, bool)
	err    error
}

func (e *env) fail(key string, err error) {
	if e.err == nil {
		e.err = fmt.Errorf("invalid %s: %w", key, err)
	}
}

func (e *env) str(key, def string) string {
	if v, ok := e.lookup(key); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	return def
}

func (e *env) int(key string, def int) int {
	v := e.str(key, "")
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		e.fail(key, err)
		return def
	}
	return n
}

func (e *env) float(key string, def float64) float64 {
	v := e.str(key, "")
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		e.fail(key, err)
		return def
	}
	return f
}

func (e *env) bool(key string, def bool) bool {
	v := e.str(key, "")
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		e.fail(key, err)
		return def
	}
	return b
}

func (e *env) duration(key string, def time.Duration) time.Duration {
	v := e.str(key, "")
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		e.fail(key, err)
		return def
	}
	return d
}

func (e *env) list(key string) []string {
	v := e.str(key, "")
	if v == "" {
		return nil
	}
	var out []string
	for part := range strings.SplitSeq(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

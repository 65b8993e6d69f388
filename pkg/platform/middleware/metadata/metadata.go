package metadata

import (
	"net"
	"net/http"
	"net/netip"
	"strings"
	"time"

	"medtrust/pkg/requestcontext"
)

// ClientMetadata records the caller address, User-Agent and request time in
// the context. Proxy headers are honored only when trustProxy is set; otherwise
// a client could claim an in-network address by sending X-Forwarded-For.
func ClientMetadata(trustProxy bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			ctx = requestcontext.WithClientIP(ctx, ClientIPFromRequest(r, trustProxy))
			ctx = requestcontext.WithUserAgent(ctx, r.Header.Get("User-Agent"))
			ctx = requestcontext.WithTime(ctx, time.Now())
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ClientIPFromRequest extracts the caller address. The returned value is not
// guaranteed to parse; consumers must treat unparseable input as untrusted.
func ClientIPFromRequest(r *http.Request, trustProxy bool) string {
	if trustProxy {
		// X-Forwarded-For is "client, proxy1, proxy2"; the first hop is the caller.
		if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
			first, _, _ := strings.Cut(xff, ",")
			return strings.TrimSpace(first)
		}
		if xri := r.Header.Get("X-Real-IP"); xri != "" {
			return strings.TrimSpace(xri)
		}
	}

	if r.RemoteAddr == "" {
		return ""
	}
	if ap, err := netip.ParseAddrPort(r.RemoteAddr); err == nil {
		return ap.Addr().Unmap().String()
	}
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}

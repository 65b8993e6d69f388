package testutil

import (
	"net/http"

	"medtrust/pkg/requestcontext"
)

// WithClientMetadata sets what the metadata middleware would put on the
// request context.
func WithClientMetadata(req *http.Request, ip, userAgent string) *http.Request {
	ctx := requestcontext.WithClientIP(req.Context(), ip)
	ctx = requestcontext.WithUserAgent(ctx, userAgent)
	return req.WithContext(ctx)
}

// WithIdentity simulates a request that passed bearer-token authentication.
func WithIdentity(req *http.Request, name, role string) *http.Request {
	ctx := requestcontext.WithVerifiedIdentity(req.Context(), requestcontext.Identity{Name: name, Role: role})
	return req.WithContext(ctx)
}

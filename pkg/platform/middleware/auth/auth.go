package auth

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"medtrust/pkg/platform/privacy"
	"medtrust/pkg/requestcontext"
)

// Validator verifies a bearer token and returns the staff identity it carries.
type Validator interface {
	ValidateToken(tokenString string) (*Claims, error)
}

// Claims is the identity the middleware needs from a token.
type Claims struct {
	Name string
	Role string
}

func writeJSONError(w http.ResponseWriter, status int, errCode, errDesc string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(fmt.Appendf(nil, `{"error":"%s","error_description":"%s"}`, errCode, errDesc))
}

// RequireAuth rejects requests without a valid bearer token and records the
// verified identity in the context. Handlers prefer it over body fields.
func RequireAuth(validator Validator, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
			if !ok || token == "" {
				logger.WarnContext(ctx, "unauthorized access - missing token",
					"ip_prefix", privacy.AnonymizeIP(requestcontext.ClientIP(ctx)),
				)
				writeJSONError(w, http.StatusUnauthorized, "unauthorized", "Missing or invalid Authorization header")
				return
			}

			claims, err := validator.ValidateToken(token)
			if err != nil {
				logger.WarnContext(ctx, "unauthorized access - invalid token",
					"error", err,
					"ip_prefix", privacy.AnonymizeIP(requestcontext.ClientIP(ctx)),
				)
				writeJSONError(w, http.StatusUnauthorized, "unauthorized", "Invalid or expired token")
				return
			}

			ctx = requestcontext.WithVerifiedIdentity(ctx, requestcontext.Identity{
				Name: claims.Name,
				Role: claims.Role,
			})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

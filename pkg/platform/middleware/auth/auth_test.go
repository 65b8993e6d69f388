package auth

import (
	"bytes"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"medtrust/pkg/requestcontext"
)

type stubValidator struct {
	claims *Claims
	err    error
}

func (s stubValidator) ValidateToken(string) (*Claims, error) {
	return s.claims, s.err
}

func TestRequireAuth(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))

	run := func(v Validator, header string) (*httptest.ResponseRecorder, requestcontext.Identity, bool) {
		var got requestcontext.Identity
		var found bool
		h := RequireAuth(v, logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got, found = requestcontext.VerifiedIdentity(r.Context())
		}))
		req := httptest.NewRequest(http.MethodPost, "/normal_access", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec, got, found
	}

	t.Run("missing header is unauthorized", func(t *testing.T) {
		rec, _, found := run(stubValidator{}, "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.False(t, found)
	})

	t.Run("invalid token is unauthorized", func(t *testing.T) {
		rec, _, found := run(stubValidator{err: errors.New("bad signature")}, "Bearer abc")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.False(t, found)
	})

	t.Run("valid token sets identity", func(t *testing.T) {
		rec, id, found := run(stubValidator{claims: &Claims{Name: "Dr. X", Role: "doctor"}}, "Bearer abc")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.True(t, found)
		assert.Equal(t, "Dr. X", id.Name)
		assert.Equal(t, "doctor", id.Role)
	})
}

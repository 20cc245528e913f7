// Port adapts a token parser to the middleware auth seam
package httpkit

import (
	"crypto/subtle"
	"net/http"
	"strings"

	perrs "hssearch/internal/platform/errors"
)

// TokenFunc validates a bearer token and returns an error when it is rejected
type TokenFunc func(token string) error

// Port implements middleware.AuthPort by reading Authorization and delegating to a TokenFunc
type Port struct {
	parse TokenFunc
}

// NewPortFunc builds a Port from a simple parser function
func NewPortFunc(fn TokenFunc) *Port {
	return &Port{parse: fn}
}

// Verify extracts the bearer token and delegates to the parser
// returns unauthorized when the header is missing, malformed, or the parser rejects it
func (p *Port) Verify(r *http.Request) error {
	authz := r.Header.Get("Authorization")
	// normalize whitespace around the whole header
	s := strings.TrimSpace(authz)
	if s == "" {
		return perrs.Unauthorizedf("missing bearer token")
	}
	ls := strings.ToLower(s)
	const prefix = "bearer"
	if !strings.HasPrefix(ls, prefix) {
		return perrs.Unauthorizedf("missing bearer token")
	}
	// slice after "Bearer" (no trailing space required), then trim any spaces before token
	raw := strings.TrimSpace(s[len(prefix):])
	if raw == "" {
		return perrs.Unauthorizedf("missing bearer token")
	}

	if p.parse == nil {
		return perrs.Unauthorizedf("invalid bearer token")
	}

	if err := p.parse(raw); err != nil {
		return perrs.Unauthorizedf("invalid bearer token")
	}
	return nil
}

// BasicPort verifies HTTP basic credentials against a fixed pair
type BasicPort struct {
	user string
	pass string
}

// NewBasicPort builds a BasicPort for the given credentials
func NewBasicPort(user, pass string) *BasicPort {
	return &BasicPort{user: user, pass: pass}
}

// Verify checks the Authorization basic credentials in constant time
func (p *BasicPort) Verify(r *http.Request) error {
	user, pass, ok := r.BasicAuth()
	if !ok {
		return perrs.Unauthorizedf("missing credentials")
	}
	userOK := subtle.ConstantTimeCompare([]byte(user), []byte(p.user)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(pass), []byte(p.pass)) == 1
	if !userOK || !passOK {
		return perrs.Unauthorizedf("invalid credentials")
	}
	return nil
}

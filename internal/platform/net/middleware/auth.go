package middleware

import (
	"net/http"

	pnet "hssearch/internal/platform/net"
)

// AuthPort is a tiny seam for request authentication.
// Deployments that front the API with their own gateway leave it nil
type AuthPort interface {
	// Verify inspects the request and returns an error when it must be rejected
	Verify(r *http.Request) error
}

// Auth is a no-op until wired. It uses the port when provided
func Auth(p AuthPort, write func(w http.ResponseWriter, status int, body any)) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if p == nil {
				next.ServeHTTP(w, r)
				return
			}
			if err := p.Verify(r); err != nil {
				status, body := pnet.Error(err, pnet.RequestID(r.Context()))
				write(w, status, body)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

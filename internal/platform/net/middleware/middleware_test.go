package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	perr "hssearch/internal/platform/errors"
)

func TestAccessLogZerologPassThrough(t *testing.T) {
	h := AccessLogZerolog(AccessLogOptions{Slow: time.Second})(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTeapot)
			_, _ = w.Write([]byte("short and stout"))
		}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/x", nil))

	if rec.Code != http.StatusTeapot {
		t.Fatalf("status = %d", rec.Code)
	}
	if rec.Body.String() != "short and stout" {
		t.Fatalf("body = %q", rec.Body.String())
	}
}

func TestRecoverJSON(t *testing.T) {
	h := RecoverJSON(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/x", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", rec.Code)
	}
	var body panicWire
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("bad json body: %v", err)
	}
	if body.StatusCode != http.StatusInternalServerError {
		t.Fatalf("wire status = %d", body.StatusCode)
	}
}

type denyAll struct{}

func (denyAll) Verify(*http.Request) error { return perr.Unauthorizedf("nope") }

func TestAuth(t *testing.T) {
	write := func(w http.ResponseWriter, status int, body any) {
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(body)
	}
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	// nil port lets everything through
	rec := httptest.NewRecorder()
	Auth(nil, write)(next).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/x", nil))
	if rec.Code != http.StatusNoContent {
		t.Fatalf("nil port status = %d", rec.Code)
	}

	// a rejecting port short-circuits with its mapped status
	rec = httptest.NewRecorder()
	Auth(denyAll{}, write)(next).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/x", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("deny status = %d", rec.Code)
	}
}

func TestDefaultsBundle(t *testing.T) {
	mws := Defaults()
	if len(mws) == 0 {
		t.Fatalf("Defaults should not be empty")
	}
	h := http.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/x", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if rec.Header().Get("X-Request-Id") == "" && rec.Header().Get("X-Request-ID") == "" {
		// chi sets the id on the request context, not the response; just assert no breakage
		t.Log("request id not mirrored on response; context only")
	}
}

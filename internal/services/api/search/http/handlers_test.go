package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"hssearch/internal/modkit/httpkit"
	perr "hssearch/internal/platform/errors"
	phttp "hssearch/internal/platform/net/http"
	"hssearch/internal/services/api/search/domain"
)

type stubSvc struct {
	out domain.SearchResult
	err error
	got domain.SearchInput
}

func (s *stubSvc) Search(_ context.Context, in domain.SearchInput) (domain.SearchResult, error) {
	s.got = in
	return s.out, s.err
}

func newTestServer(s *stubSvc) *httptest.Server {
	r := phttp.AdaptChi(chi.NewMux())
	r.Route("/search", func(rr httpkit.Router) {
		Register(rr, s)
	})
	return httptest.NewServer(r.Mux())
}

func postSearch(t *testing.T, url string, body string) (*http.Response, phttp.Envelope) {
	t.Helper()
	resp, err := http.Post(url+"/search", "application/json", bytes.NewBufferString(body))
	if err != nil {
		t.Fatalf("POST /search: %v", err)
	}
	defer resp.Body.Close()
	var env phttp.Envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	return resp, env
}

func TestSearchEndpointOK(t *testing.T) {
	s := &stubSvc{out: domain.SearchResult{
		Query:      "wool",
		Normalized: "wool",
		BuildID:    "b1",
		Total:      1,
		Rows:       []domain.Row{{HSCode: "510111", TextNorm: "greasy wool"}},
	}}
	ts := newTestServer(s)
	defer ts.Close()

	resp, env := postSearch(t, ts.URL, `{"query":"wool","limit":10}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if s.got.Query != "wool" || s.got.Limit != 10 {
		t.Fatalf("input = %+v", s.got)
	}
	data, ok := env.Data.(map[string]any)
	if !ok {
		t.Fatalf("data = %T", env.Data)
	}
	if data["normalized"] != "wool" || data["build_id"] != "b1" {
		t.Fatalf("data = %v", data)
	}
}

func TestSearchEndpointConversionIs422(t *testing.T) {
	s := &stubSvc{err: perr.Conversionf("umpteen", "cannot convert numeral %q", "umpteen")}
	ts := newTestServer(s)
	defer ts.Close()

	resp, env := postSearch(t, ts.URL, `{"query":"umpteen bales"}`)
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if env.Field != "umpteen" {
		t.Fatalf("field = %q", env.Field)
	}
	if env.Code != perr.ErrorCodeConversion {
		t.Fatalf("code = %v", env.Code)
	}
}

func TestSearchEndpointValidation(t *testing.T) {
	s := &stubSvc{}
	ts := newTestServer(s)
	defer ts.Close()

	resp, env := postSearch(t, ts.URL, `{"limit":10}`)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if env.Field != "query" {
		t.Fatalf("field = %q", env.Field)
	}
}

package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"hssearch/internal/platform/config"
)

func TestServerRouterMounts(t *testing.T) {
	srv := NewServer(config.New())
	r := srv.Router()

	r.Get("/ping", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("pong"))
	})
	r.Route("/api", func(api Router) {
		api.Post("/echo", func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusCreated)
		})
		api.Group(func(g Router) {
			g.Get("/nested", func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusOK)
			})
		})
	})

	ts := httptest.NewServer(r.Mux())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/ping")
	if err != nil {
		t.Fatalf("GET /ping: %v", err)
	}
	_ = resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("GET /ping = %d", resp.StatusCode)
	}

	resp, err = http.Post(ts.URL+"/api/echo", "application/json", nil)
	if err != nil {
		t.Fatalf("POST /api/echo: %v", err)
	}
	_ = resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("POST /api/echo = %d", resp.StatusCode)
	}

	resp, err = http.Get(ts.URL + "/api/nested")
	if err != nil {
		t.Fatalf("GET /api/nested: %v", err)
	}
	_ = resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("GET /api/nested = %d", resp.StatusCode)
	}
}

func TestServerAddrDefault(t *testing.T) {
	srv := NewServer(config.New())
	if srv.Addr() != ":4000" {
		t.Fatalf("Addr = %q", srv.Addr())
	}
}

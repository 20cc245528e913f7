package httpkit

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	perr "hssearch/internal/platform/errors"
)

func TestJSONHandlerRoundTrip(t *testing.T) {
	type in struct {
		Query string `json:"query"`
	}
	h := JSON(func(r *http.Request, body in) (any, error) {
		if body.Query == "" {
			return nil, perr.InvalidArgf("query required")
		}
		return map[string]string{"echo": body.Query}, nil
	})

	rec := httptest.NewRecorder()
	h(rec, httptest.NewRequest(http.MethodPost, "/x", strings.NewReader(`{"query":"wool"}`)))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var env Envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("bad envelope: %v", err)
	}
	if env.Data == nil {
		t.Fatalf("envelope data missing")
	}

	// handler errors map through the envelope
	rec = httptest.NewRecorder()
	h(rec, httptest.NewRequest(http.MethodPost, "/x", strings.NewReader(`{"query":""}`)))
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("error status = %d", rec.Code)
	}
}

func TestCallAdapts(t *testing.T) {
	h := Call(func(r *http.Request) (any, error) { return "pong", nil })
	rec := httptest.NewRecorder()
	h(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	// Response passthrough keeps its own status
	h = Call(func(r *http.Request) (any, error) { return Created("made"), nil })
	rec = httptest.NewRecorder()
	h(rec, httptest.NewRequest(http.MethodPost, "/x", nil))
	if rec.Code != http.StatusCreated {
		t.Fatalf("passthrough status = %d", rec.Code)
	}
}

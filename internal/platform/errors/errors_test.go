package errors

import (
	stderrs "errors"
	"net/http"
	"testing"
)

func TestHTTPStatusCodeMapping(t *testing.T) {
	cases := []struct {
		code ErrorCode
		want int
	}{
		{ErrorCodeNotFound, http.StatusNotFound},
		{ErrorCodeInvalidArgument, http.StatusUnprocessableEntity},
		{ErrorCodeConversion, http.StatusUnprocessableEntity},
		{ErrorCodeDuplicateKey, http.StatusConflict},
		{ErrorCodeConflict, http.StatusConflict},
		{ErrorCodeValidation, http.StatusBadRequest},
		{ErrorCodeJSON, http.StatusBadRequest},
		{ErrorCodeUnauthorized, http.StatusUnauthorized},
		{ErrorCodeUnavailable, http.StatusServiceUnavailable},
		{ErrorCodeDB, http.StatusInternalServerError},
		{ErrorCodePanic, http.StatusInternalServerError},
		{ErrorCodeUnknown, http.StatusInternalServerError},
		{9999, http.StatusInternalServerError}, // default branch
	}
	for _, c := range cases {
		if got := HTTPStatusCode(c.code); got != c.want {
			t.Fatalf("HTTPStatusCode(%v) = %d, want %d", c.code, got, c.want)
		}
	}
}

func TestErrorTypeAndMethods(t *testing.T) {
	// nil *Error should render "<nil>"
	var e *Error
	if e.Error() != "<nil>" {
		t.Fatalf("nil *Error render = %q, want <nil>", e.Error())
	}

	e1 := New(ErrorCodeValidation, "bad stuff")
	if CodeOf(e1) != ErrorCodeValidation {
		t.Fatalf("CodeOf(New) = %v", CodeOf(e1))
	}
	e2 := Newf(ErrorCodeJSON, "bad json %d", 12)
	if got := e2.Error(); got != "bad json 12" {
		t.Fatalf("Newf().Error = %q", got)
	}

	src := stderrs.New("root")
	e3 := Wrap(src, ErrorCodeDB, "db failed")
	if u := stderrs.Unwrap(e3); u == nil || u.Error() != "root" {
		t.Fatalf("Wrap did not keep orig")
	}
	if CodeOf(e3) != ErrorCodeDB {
		t.Fatalf("CodeOf(Wrap) = %v", CodeOf(e3))
	}
	if got := e3.Error(); got != "db failed: root" {
		t.Fatalf("Wrap render = %q", got)
	}
}

func TestRootAndWireFrom(t *testing.T) {
	src := stderrs.New("cause")
	wrapped := Wrap(Wrap(src, ErrorCodeDB, "inner"), ErrorCodeUnavailable, "outer")
	if Root(wrapped) != src {
		t.Fatalf("Root did not reach the deepest cause")
	}

	w := WireFrom(wrapped)
	if w.Code != ErrorCodeUnavailable || w.Message != "outer" {
		t.Fatalf("WireFrom = %+v", w)
	}

	// Foreign error maps to Unknown
	fw := WireFrom(stderrs.New("plain"))
	if fw.Code != ErrorCodeUnknown || fw.Message != "plain" {
		t.Fatalf("WireFrom foreign = %+v", fw)
	}

	if (WireFrom(nil) != Wire{}) {
		t.Fatalf("WireFrom(nil) should be the zero Wire")
	}
}

func TestMutatorsCopyOnWrite(t *testing.T) {
	base := New(ErrorCodeValidation, "bad field")
	withF := WithField(base, "query")

	be, _ := As(base)
	fe, _ := As(withF)
	if be.Field() != "" {
		t.Fatalf("mutator changed the original")
	}
	if fe.Field() != "query" {
		t.Fatalf("WithField = %q", fe.Field())
	}

	withOp := WithOp(base, "search.run")
	oe, _ := As(withOp)
	if oe.Op() != "search.run" {
		t.Fatalf("WithOp = %q", oe.Op())
	}

	// Foreign errors pass through unchanged
	foreign := stderrs.New("plain")
	if WithField(foreign, "x") != foreign {
		t.Fatalf("WithField should not touch foreign errors")
	}
}

func TestConversionf(t *testing.T) {
	err := Conversionf("umpteen", "cannot convert %q to a number", "umpteen")
	if !IsCode(err, ErrorCodeConversion) {
		t.Fatalf("code = %v", CodeOf(err))
	}
	if HTTPStatus(err) != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d", HTTPStatus(err))
	}
	e, ok := As(err)
	if !ok || e.Field() != "umpteen" {
		t.Fatalf("field = %q", e.Field())
	}
}

func TestHTTPBundle(t *testing.T) {
	status, wire := HTTP(nil)
	if status != http.StatusOK || (wire != Wire{}) {
		t.Fatalf("HTTP(nil) = %d %+v", status, wire)
	}

	status, wire = HTTP(NotFoundf("row %d", 3))
	if status != http.StatusNotFound || wire.Code != ErrorCodeNotFound {
		t.Fatalf("HTTP(NotFoundf) = %d %+v", status, wire)
	}
}

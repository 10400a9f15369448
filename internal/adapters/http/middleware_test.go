package httpadapter

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func requestIDThrough(t *testing.T, incoming string) (string, *httptest.ResponseRecorder) {
	t.Helper()
	var got string
	handler := requestIDMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = requestIDFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	if incoming != "" {
		req.Header.Set(requestIDHeader, incoming)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return got, rec
}

func TestRequestIDGenerated(t *testing.T) {
	got, rec := requestIDThrough(t, "")
	if got == "" {
		t.Fatalf("expected a generated request id in context")
	}
	if rec.Header().Get(requestIDHeader) != got {
		t.Fatalf("response header %q does not echo context id %q",
			rec.Header().Get(requestIDHeader), got)
	}
}

func TestRequestIDFromCallerReused(t *testing.T) {
	got, rec := requestIDThrough(t, "caller-supplied-id")
	if got != "caller-supplied-id" {
		t.Fatalf("expected caller id reused, got %q", got)
	}
	if rec.Header().Get(requestIDHeader) != "caller-supplied-id" {
		t.Fatalf("expected caller id echoed, got %q", rec.Header().Get(requestIDHeader))
	}
}

func TestRequestIDOversizedReplaced(t *testing.T) {
	oversized := strings.Repeat("x", maxRequestIDLength+1)
	got, _ := requestIDThrough(t, oversized)
	if got == oversized {
		t.Fatalf("oversized caller id must be replaced")
	}
	if got == "" {
		t.Fatalf("expected a replacement id")
	}
}

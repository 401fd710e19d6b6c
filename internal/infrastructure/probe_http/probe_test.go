package probe_http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func TestFetch_ReturnsHeaders(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Header().Set("Cache-Control", "public, max-age=300")
		_, _ = w.Write([]byte("<html></html>"))
	}))
	defer srv.Close()

	p := New(5 * time.Second)
	res, err := p.Fetch(context.Background(), srv.URL+"/")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if res.Status != http.StatusOK {
		t.Errorf("status: got %d", res.Status)
	}
	if res.ContentType != "text/html; charset=utf-8" {
		t.Errorf("content type: got %q", res.ContentType)
	}
	if res.CacheControl != "public, max-age=300" {
		t.Errorf("cache control: got %q", res.CacheControl)
	}
}

func TestFetch_RetriesServerErrors(t *testing.T) {
	var calls int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt64(&calls, 1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	p := New(5 * time.Second)
	res, err := p.Fetch(context.Background(), srv.URL+"/")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if res.Status != http.StatusOK {
		t.Errorf("status: got %d", res.Status)
	}
	if atomic.LoadInt64(&calls) < 2 {
		t.Errorf("expected a retry, got %d calls", calls)
	}
}

func TestFetch_DoesNotRetryClientErrors(t *testing.T) {
	var calls int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&calls, 1)
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	p := New(5 * time.Second)
	res, err := p.Fetch(context.Background(), srv.URL+"/missing")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if res.Status != http.StatusForbidden {
		t.Errorf("status: got %d", res.Status)
	}
	if atomic.LoadInt64(&calls) != 1 {
		t.Errorf("expected exactly 1 call, got %d", calls)
	}
}

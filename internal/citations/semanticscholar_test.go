// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package citations

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/pdiddy/paper-digest/internal/retry"
)

func fastRetryPolicy() retry.Policy {
	return retry.Policy{MaxAttempts: 3, BaseDelay: time.Millisecond, MaxDelay: time.Millisecond, Multiplier: 1.0}
}

func newSource(ts *httptest.Server) *SemanticScholarSource {
	return &SemanticScholarSource{
		Client:    ts.Client(),
		UserAgent: "test/0.1",
		APIKey:    "test-key",
		Retry:     fastRetryPolicy(),
	}
}

func TestSemanticScholarCount(t *testing.T) {
	var gotPath, gotKey, gotUA string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get("x-api-key")
		gotUA = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"paperId": "abc123", "citationCount": 42}`)
	}))
	defer ts.Close()

	old := semanticAPIBase
	semanticAPIBase = ts.URL
	defer func() { semanticAPIBase = old }()

	count, known, err := newSource(ts).Count(context.Background(), "2301.07041")
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if !known || count != 42 {
		t.Errorf("Count = (%d, %v), want (42, true)", count, known)
	}

	if !strings.Contains(gotPath, "arXiv:2301.07041") {
		t.Errorf("path = %q, want arXiv-prefixed ID", gotPath)
	}
	if gotKey != "test-key" {
		t.Errorf("x-api-key = %q", gotKey)
	}
	if gotUA != "test/0.1" {
		t.Errorf("User-Agent = %q", gotUA)
	}
}

func TestSemanticScholarCountNotIndexed(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer ts.Close()

	old := semanticAPIBase
	semanticAPIBase = ts.URL
	defer func() { semanticAPIBase = old }()

	count, known, err := newSource(ts).Count(context.Background(), "2408.99999")
	if err != nil {
		t.Fatalf("404 should not be an error: %v", err)
	}
	if known || count != 0 {
		t.Errorf("Count = (%d, %v), want (0, false)", count, known)
	}
}

func TestSemanticScholarCountNullCount(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"paperId": "abc123", "citationCount": null}`)
	}))
	defer ts.Close()

	old := semanticAPIBase
	semanticAPIBase = ts.URL
	defer func() { semanticAPIBase = old }()

	count, known, err := newSource(ts).Count(context.Background(), "2301.07041")
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if known || count != 0 {
		t.Errorf("Count = (%d, %v), want (0, false)", count, known)
	}
}

func TestSemanticScholarCountRetriesRateLimit(t *testing.T) {
	var calls int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		fmt.Fprint(w, `{"paperId": "abc123", "citationCount": 7}`)
	}))
	defer ts.Close()

	old := semanticAPIBase
	semanticAPIBase = ts.URL
	defer func() { semanticAPIBase = old }()

	count, known, err := newSource(ts).Count(context.Background(), "2301.07041")
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if !known || count != 7 {
		t.Errorf("Count = (%d, %v), want (7, true)", count, known)
	}
	if atomic.LoadInt32(&calls) != 2 {
		t.Errorf("calls = %d, want 2", atomic.LoadInt32(&calls))
	}
}

func TestSemanticScholarCountServerError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer ts.Close()

	old := semanticAPIBase
	semanticAPIBase = ts.URL
	defer func() { semanticAPIBase = old }()

	_, _, err := newSource(ts).Count(context.Background(), "2301.07041")
	if err == nil {
		t.Fatal("expected error for persistent HTTP 500")
	}
}

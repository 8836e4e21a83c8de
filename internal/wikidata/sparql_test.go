// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package wikidata

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func init() {
	// Keep the malformed-response backoff out of test runtime.
	retryBaseDelay = time.Millisecond
}

func TestBuildQuery(t *testing.T) {
	forward := buildQuery("Q2875", "P57", false)
	if !strings.Contains(forward, "wd:Q2875 wdt:P57 ?answer .") {
		t.Errorf("forward query = %q", forward)
	}
	inverse := buildQuery("Q8877", "P57", true)
	if !strings.Contains(inverse, "?answer wdt:P57 wd:Q8877 .") {
		t.Errorf("inverse query = %q", inverse)
	}
	if !strings.Contains(forward, "SERVICE wikibase:label") {
		t.Errorf("query lacks the label service: %q", forward)
	}
}

func TestSPARQLQuery(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("format"); got != "json" {
			t.Errorf("format = %q", got)
		}
		if q := r.URL.Query().Get("query"); !strings.Contains(q, "wd:Q2875 wdt:P57") {
			t.Errorf("query = %q", q)
		}
		w.Write([]byte(`{"results":{"bindings":[
			{"answerLabel":{"value":"James Cameron","xml:lang":"en"}},
			{"answerLabel":{"value":"1997-12-19T00:00:00Z"}}
		]}}`))
	}))
	defer ts.Close()

	oldBase := sparqlBase
	sparqlBase = ts.URL
	defer func() { sparqlBase = oldBase }()

	client := NewSPARQLClient(testWikidataConfig(), nil, zerolog.Nop())
	bindings, err := client.Query(context.Background(), "Q2875", "P57", false)
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(bindings) != 2 {
		t.Fatalf("got %d bindings, want 2", len(bindings))
	}
	if bindings[0].Value != "James Cameron" || bindings[0].Lang != "en" {
		t.Errorf("bindings[0] = %+v", bindings[0])
	}
	if bindings[1].Lang != "" {
		t.Errorf("bindings[1].Lang = %q, want untagged", bindings[1].Lang)
	}
}

func TestSPARQLQueryRetriesMalformed(t *testing.T) {
	var calls int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if atomic.AddInt32(&calls, 1) <= 2 {
			w.Write([]byte(`{"results": truncated`))
			return
		}
		w.Write([]byte(`{"results":{"bindings":[{"answerLabel":{"value":"ok"}}]}}`))
	}))
	defer ts.Close()

	oldBase := sparqlBase
	sparqlBase = ts.URL
	defer func() { sparqlBase = oldBase }()

	client := NewSPARQLClient(testWikidataConfig(), nil, zerolog.Nop())
	bindings, err := client.Query(context.Background(), "Q1", "P1", false)
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(bindings) != 1 || bindings[0].Value != "ok" {
		t.Errorf("bindings = %+v", bindings)
	}
	if got := atomic.LoadInt32(&calls); got != 3 {
		t.Errorf("calls = %d, want 3", got)
	}
}

func TestSPARQLQueryGivesUpOnMalformed(t *testing.T) {
	var calls int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.Write([]byte(`not json at all`))
	}))
	defer ts.Close()

	oldBase := sparqlBase
	sparqlBase = ts.URL
	defer func() { sparqlBase = oldBase }()

	cfg := testWikidataConfig()
	cfg.MaxRetries = 2
	client := NewSPARQLClient(cfg, nil, zerolog.Nop())
	_, err := client.Query(context.Background(), "Q1", "P1", false)
	if !errors.Is(err, ErrMalformedResponse) {
		t.Fatalf("err = %v, want ErrMalformedResponse", err)
	}
	// 1 initial + 2 retries.
	if got := atomic.LoadInt32(&calls); got != 3 {
		t.Errorf("calls = %d, want 3", got)
	}
}

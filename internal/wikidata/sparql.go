// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package wikidata

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/pdiddy/filmqa/internal/httputil"
	"github.com/pdiddy/filmqa/pkg/types"
)

// sparqlBase is the Wikidata SPARQL endpoint. Declared as a var so tests
// can substitute an httptest server.
var sparqlBase = "https://query.wikidata.org/sparql"

// ErrMalformedResponse marks a SPARQL payload that could not be decoded.
// The endpoint intermittently returns truncated bodies under load, so the
// client retries these with backoff before giving up.
var ErrMalformedResponse = errors.New("malformed SPARQL response")

// retryBaseDelay is the base duration for the malformed-response backoff.
// Tests override this to avoid real sleeps.
var retryBaseDelay = 500 * time.Millisecond

const defaultMaxRetries = 3

// Binding is one answer value, optionally carrying a language tag.
type Binding struct {
	Value string
	Lang  string
}

// SPARQLClient issues the property-path queries against the graph
// endpoint.
type SPARQLClient struct {
	httpClient *http.Client
	userAgent  string
	limiter    *rate.Limiter
	maxRetries int
	log        zerolog.Logger
}

// NewSPARQLClient builds a query client from configuration.
func NewSPARQLClient(cfg types.WikidataConfig, limiter *rate.Limiter, log zerolog.Logger) *SPARQLClient {
	maxRetries := cfg.MaxRetries
	if maxRetries <= 0 {
		maxRetries = defaultMaxRetries
	}
	return &SPARQLClient{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		userAgent:  cfg.UserAgent,
		limiter:    limiter,
		maxRetries: maxRetries,
		log:        log,
	}
}

type sparqlResponse struct {
	Results struct {
		Bindings []map[string]struct {
			Value   string `json:"value"`
			XMLLang string `json:"xml:lang"`
		} `json:"bindings"`
	} `json:"results"`
}

// buildQuery assembles the single-triple answer query. The forward
// direction asks for all values of propertyID on entityID; the inverse
// direction asks for all subjects carrying propertyID = entityID
// (passive questions: "Which movies are directed by X?").
func buildQuery(entityID, propertyID string, inverse bool) string {
	pattern := fmt.Sprintf("wd:%s wdt:%s ?answer .", entityID, propertyID)
	if inverse {
		pattern = fmt.Sprintf("?answer wdt:%s wd:%s .", propertyID, entityID)
	}
	return "SELECT ?answerLabel WHERE { " + pattern +
		` SERVICE wikibase:label { bd:serviceParam wikibase:language "[AUTO_LANGUAGE],en". } }`
}

// Query returns all values of propertyID for entityID (or the inverse
// direction). A malformed payload is retried with exponential backoff up
// to the configured cap, then surfaced as ErrMalformedResponse.
func (c *SPARQLClient) Query(ctx context.Context, entityID, propertyID string, inverse bool) ([]Binding, error) {
	query := buildQuery(entityID, propertyID, inverse)

	for attempt := 0; ; attempt++ {
		bindings, err := c.queryOnce(ctx, query)
		if err == nil {
			return bindings, nil
		}
		if !errors.Is(err, ErrMalformedResponse) || attempt >= c.maxRetries {
			return nil, err
		}

		backoff := time.Duration(math.Pow(2, float64(attempt))) * retryBaseDelay
		c.log.Warn().
			Str("entity", entityID).
			Str("property", propertyID).
			Int("attempt", attempt+1).
			Dur("backoff", backoff).
			Msg("malformed SPARQL response, retrying")

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(backoff):
		}
	}
}

func (c *SPARQLClient) queryOnce(ctx context.Context, query string) ([]Binding, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	params := url.Values{
		"query":  {query},
		"format": {"json"},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, sparqlBase+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating SPARQL request: %w", err)
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := httputil.DoWithRetry(ctx, c.httpClient, req, c.maxRetries)
	if err != nil {
		return nil, fmt.Errorf("SPARQL request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("SPARQL endpoint returned HTTP %d", resp.StatusCode)
	}

	var sr sparqlResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	var out []Binding
	for _, row := range sr.Results.Bindings {
		for _, cell := range row {
			if cell.Value == "" {
				continue
			}
			out = append(out, Binding{Value: cell.Value, Lang: cell.XMLLang})
		}
	}
	return out, nil
}

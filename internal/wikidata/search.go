// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package wikidata holds the HTTP clients for the external knowledge
// services: the Wikidata search and SPARQL endpoints, the Falcon 2.0
// entity/relation extraction API, and the entity-linker sidecar.
package wikidata

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/pdiddy/filmqa/internal/httputil"
	"github.com/pdiddy/filmqa/pkg/types"
)

// searchAPIBase is the Wikidata action API endpoint. Declared as a var so
// tests can substitute an httptest server.
var searchAPIBase = "https://www.wikidata.org/w/api.php"

// Kind selects the wbsearchentities namespace.
type Kind string

const (
	KindEntity   Kind = "item"
	KindProperty Kind = "property"
)

// SearchHit is one ranked result of a label search.
type SearchHit struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// SearchClient resolves free-text labels against wbsearchentities.
type SearchClient struct {
	httpClient *http.Client
	userAgent  string
	limiter    *rate.Limiter
	log        zerolog.Logger
}

// NewSearchClient builds a search client from configuration.
func NewSearchClient(cfg types.WikidataConfig, limiter *rate.Limiter, log zerolog.Logger) *SearchClient {
	return &SearchClient{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		userAgent:  cfg.UserAgent,
		limiter:    limiter,
		log:        log,
	}
}

type searchResponse struct {
	Search []SearchHit `json:"search"`
}

// Search queries wbsearchentities for the phrase in the given namespace
// and returns the ranked hits. Callers interested in the best match use
// only the first element.
func (c *SearchClient) Search(ctx context.Context, phrase string, kind Kind) ([]SearchHit, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	params := url.Values{
		"action":   {"wbsearchentities"},
		"language": {"en"},
		"format":   {"json"},
		"type":     {string(kind)},
		"search":   {phrase},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchAPIBase+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating search request: %w", err)
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := httputil.DoWithRetry(ctx, c.httpClient, req, 0)
	if err != nil {
		return nil, fmt.Errorf("search request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("search endpoint returned HTTP %d", resp.StatusCode)
	}

	var sr searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return nil, fmt.Errorf("parsing search response: %w", err)
	}

	c.log.Debug().Str("phrase", phrase).Str("kind", string(kind)).Int("hits", len(sr.Search)).Msg("label search")
	return sr.Search, nil
}

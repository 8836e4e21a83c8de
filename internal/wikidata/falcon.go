// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package wikidata

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"github.com/pdiddy/filmqa/pkg/types"
)

// falconAPIBase is the Falcon 2.0 joint entity/relation extraction
// endpoint. Declared as a var so tests can substitute an httptest server.
var falconAPIBase = "https://labs.tib.eu/falcon/falcon2/api"

// ErrService marks an extraction request the upstream refused after the
// retry. Reportable and non-fatal: the caller continues with whatever the
// other sources produce.
var ErrService = errors.New("extraction service error")

// FalconClient calls the Falcon 2.0 API, which maps free text to Wikidata
// entity and relation candidates in one shot.
type FalconClient struct {
	httpClient *http.Client
	userAgent  string
	token      string
	log        zerolog.Logger
}

// NewFalconClient builds an extraction client from configuration.
func NewFalconClient(cfg types.FalconConfig, log zerolog.Logger) *FalconClient {
	return &FalconClient{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		userAgent:  cfg.UserAgent,
		token:      cfg.Token,
		log:        log,
	}
}

type falconRequest struct {
	Text string `json:"text"`
}

// Falcon returns each hit as a two-element array: the bracketed concept
// URL and its label.
type falconResponse struct {
	Entities  [][]string `json:"entities_wikidata"`
	Relations [][]string `json:"relations_wikidata"`
}

// Extract maps the question text to Wikidata entity and relation
// candidates. A non-success status is retried once; a second failure
// returns ErrService.
func (c *FalconClient) Extract(ctx context.Context, text string) (entities, relations types.Mapping, err error) {
	// Quotes clash with the payload encoding on the Falcon side.
	text = strings.NewReplacer(`"`, "", "'", "").Replace(text)

	var resp falconResponse
	for attempt := 0; ; attempt++ {
		resp, err = c.extractOnce(ctx, text)
		if err == nil {
			break
		}
		if attempt >= 1 {
			return types.Mapping{}, types.Mapping{}, fmt.Errorf("%w: %v", ErrService, err)
		}
		c.log.Warn().Err(err).Str("text", text).Msg("extraction failed, retrying once")
	}

	return mappingFromHits(resp.Entities), mappingFromHits(resp.Relations), nil
}

func (c *FalconClient) extractOnce(ctx context.Context, text string) (falconResponse, error) {
	body, err := json.Marshal(falconRequest{Text: text})
	if err != nil {
		return falconResponse{}, fmt.Errorf("encoding extraction request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, falconAPIBase+"?mode=long", bytes.NewReader(body))
	if err != nil {
		return falconResponse{}, fmt.Errorf("creating extraction request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept-Charset", "UTF-8")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return falconResponse{}, fmt.Errorf("extraction request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return falconResponse{}, fmt.Errorf("extraction endpoint returned HTTP %d", resp.StatusCode)
	}

	var fr falconResponse
	if err := json.NewDecoder(resp.Body).Decode(&fr); err != nil {
		return falconResponse{}, fmt.Errorf("parsing extraction response: %w", err)
	}
	return fr, nil
}

// mappingFromHits converts Falcon [url, label] pairs into an ID→label
// mapping, preserving response order. URLs arrive angle-bracketed
// ("<http://www.wikidata.org/entity/Q2875>"); the ID is the last path
// segment with the closing bracket dropped.
func mappingFromHits(hits [][]string) types.Mapping {
	var m types.Mapping
	for _, hit := range hits {
		if len(hit) < 2 {
			continue
		}
		id := conceptID(hit[0])
		if id == "" {
			continue
		}
		m.Set(id, hit[1])
	}
	return m
}

func conceptID(rawURL string) string {
	seg := rawURL
	if i := strings.LastIndex(seg, "/"); i >= 0 {
		seg = seg[i+1:]
	}
	return strings.TrimSuffix(strings.TrimSpace(seg), ">")
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package wikidata

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/pdiddy/filmqa/pkg/types"
)

// LinkerClient calls the entity-linker sidecar, a local service that runs
// an end-to-end entity linking model over the question text.
type LinkerClient struct {
	baseURL    string
	httpClient *http.Client
	userAgent  string
	token      string
	log        zerolog.Logger
}

// NewLinkerClient builds a linker client from configuration.
func NewLinkerClient(cfg types.LinkerConfig, log zerolog.Logger) *LinkerClient {
	return &LinkerClient{
		baseURL:    cfg.URL,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		userAgent:  cfg.UserAgent,
		token:      cfg.Token,
		log:        log,
	}
}

type linkRequest struct {
	Text string `json:"text"`
}

type linkResponse struct {
	Entities []struct {
		ID    string `json:"id"`
		Label string `json:"label"`
	} `json:"entities"`
}

// Link returns the entities the sidecar recognizes in the text, in model
// confidence order. The linker is best-effort: a failed request degrades
// to an empty mapping rather than an error, since the other sources can
// still produce candidates.
func (c *LinkerClient) Link(ctx context.Context, text string) (types.Mapping, error) {
	body, err := json.Marshal(linkRequest{Text: text})
	if err != nil {
		return types.Mapping{}, fmt.Errorf("encoding link request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/link", bytes.NewReader(body))
	if err != nil {
		return types.Mapping{}, fmt.Errorf("creating link request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Warn().Err(err).Msg("entity linker unreachable, continuing without it")
		return types.Mapping{}, nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.log.Warn().Int("status", resp.StatusCode).Msg("entity linker refused request, continuing without it")
		return types.Mapping{}, nil
	}

	var lr linkResponse
	if err := json.NewDecoder(resp.Body).Decode(&lr); err != nil {
		return types.Mapping{}, fmt.Errorf("parsing link response: %w", err)
	}

	var m types.Mapping
	for _, e := range lr.Entities {
		if e.ID == "" {
			continue
		}
		m.Set(e.ID, e.Label)
	}
	return m, nil
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package nlp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/pdiddy/filmqa/pkg/types"
)

// parsePath is the parse endpoint on the sidecar.
const parsePath = "/parse"

// Client calls the sentence-parse sidecar over HTTP. The sidecar loads the
// language model once at startup and is reused across all questions.
type Client struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
	token      string
	log        zerolog.Logger
}

// NewClient builds a parser client from configuration.
func NewClient(cfg types.ParserConfig, log zerolog.Logger) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		baseURL:    cfg.URL,
		userAgent:  cfg.UserAgent,
		token:      cfg.Token,
		log:        log,
	}
}

type parseRequest struct {
	Text string `json:"text"`
}

type parseResponse struct {
	Tokens []Token `json:"tokens"`
}

// Analyze sends the question to the sidecar and returns the annotated
// token sequence.
func (c *Client) Analyze(ctx context.Context, text string) (*ParsedQuestion, error) {
	body, err := json.Marshal(parseRequest{Text: text})
	if err != nil {
		return nil, fmt.Errorf("encoding parse request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+parsePath, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("creating parse request: %w", err)
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
		return nil, fmt.Errorf("parse service request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("parse service returned HTTP %d", resp.StatusCode)
	}

	var pr parseResponse
	if err := json.NewDecoder(resp.Body).Decode(&pr); err != nil {
		return nil, fmt.Errorf("parsing parse response: %w", err)
	}

	c.log.Debug().Str("text", text).Int("tokens", len(pr.Tokens)).Msg("parsed question")

	return &ParsedQuestion{Text: text, Tokens: pr.Tokens}, nil
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "filmqa/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// ParserConfig holds settings for the sentence-parse sidecar.
type ParserConfig struct {
	HTTPConfig `yaml:",inline"`

	// URL is the base address of the parse service (e.g. "http://localhost:8090").
	URL string `json:"url" yaml:"url"`

	// Token is a bearer token sent with parse requests. Empty means the
	// service is unauthenticated.
	Token string `json:"token" yaml:"token"`
}

// LinkerConfig holds settings for the entity-linking sidecar.
type LinkerConfig struct {
	HTTPConfig `yaml:",inline"`

	// URL is the base address of the linker service. Empty disables linking.
	URL string `json:"url" yaml:"url"`

	// Token is a bearer token sent with link requests. Empty means the
	// service is unauthenticated.
	Token string `json:"token" yaml:"token"`
}

// FalconConfig holds settings for the Falcon 2.0 joint entity/relation
// extraction API.
type FalconConfig struct {
	HTTPConfig `yaml:",inline"`

	// Enabled controls whether Falcon extraction is called at all.
	Enabled bool `json:"enabled" yaml:"enabled"`

	// Token is a bearer token sent with extraction requests. Empty means
	// the public endpoint is used unauthenticated.
	Token string `json:"token" yaml:"token"`
}

// WikidataConfig holds settings for the Wikidata search and SPARQL endpoints.
type WikidataConfig struct {
	HTTPConfig `yaml:",inline"`

	// MaxRetries caps the retry attempts on a malformed SPARQL response
	// (default 3).
	MaxRetries int `json:"max_retries" yaml:"max_retries"`

	// RequestsPerSecond rate-limits calls against the public endpoints
	// (default 2).
	RequestsPerSecond float64 `json:"requests_per_second" yaml:"requests_per_second"`

	// CacheTTL bounds the lifetime of in-memory resolution cache entries
	// (default 10m). The cache never outlives the process.
	CacheTTL time.Duration `json:"cache_ttl" yaml:"cache_ttl"`
}

// PipelineConfig groups all stage configurations for the answer pipeline.
type PipelineConfig struct {
	Parser   ParserConfig   `json:"parser" yaml:"parser"`
	Linker   LinkerConfig   `json:"linker" yaml:"linker"`
	Falcon   FalconConfig   `json:"falcon" yaml:"falcon"`
	Wikidata WikidataConfig `json:"wikidata" yaml:"wikidata"`

	// StripFilmTokens removes the words "film" and "movie" from the text
	// sent to the linker and Falcon. On a film-question corpus these words
	// dominate entity linking without naming the entity asked about.
	StripFilmTokens bool `json:"strip_film_tokens" yaml:"strip_film_tokens"`
}

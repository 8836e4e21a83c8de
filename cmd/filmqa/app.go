package main

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"
	"golang.org/x/time/rate"

	"github.com/pdiddy/filmqa/internal/answer"
	"github.com/pdiddy/filmqa/internal/nlp"
	"github.com/pdiddy/filmqa/internal/pipeline"
	"github.com/pdiddy/filmqa/internal/resolve"
	"github.com/pdiddy/filmqa/internal/wikidata"
	"github.com/pdiddy/filmqa/pkg/types"
)

const (
	defaultTimeout   = 15 * time.Second
	defaultParserURL = "http://localhost:8090"
)

// newLogger builds the console logger shared by all stages.
func newLogger() zerolog.Logger {
	levelName, _ := rootCmd.PersistentFlags().GetString("log-level")
	level, err := zerolog.ParseLevel(levelName)
	if err != nil {
		level = zerolog.InfoLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().Timestamp().Logger()
}

// loadConfig assembles the pipeline configuration from viper (config file
// and FILMQA_ environment variables) with built-in defaults.
func loadConfig() types.PipelineConfig {
	viper.SetDefault("parser.url", defaultParserURL)
	viper.SetDefault("parser.timeout", defaultTimeout)
	viper.SetDefault("parser.token", "")
	viper.SetDefault("linker.url", "")
	viper.SetDefault("linker.timeout", defaultTimeout)
	viper.SetDefault("linker.token", "")
	viper.SetDefault("falcon.enabled", true)
	viper.SetDefault("falcon.timeout", defaultTimeout)
	viper.SetDefault("falcon.token", "")
	viper.SetDefault("wikidata.timeout", defaultTimeout)
	viper.SetDefault("wikidata.max_retries", 3)
	viper.SetDefault("wikidata.requests_per_second", 2.0)
	viper.SetDefault("wikidata.cache_ttl", 10*time.Minute)
	viper.SetDefault("strip_film_tokens", true)

	userAgent := fmt.Sprintf("filmqa/%s", version)
	if email := secretDefault("contact-email", viper.GetString("contact_email")); email != "" {
		// The Wikimedia user-agent policy asks for a contact address.
		userAgent = fmt.Sprintf("%s (mailto:%s)", userAgent, email)
	}

	httpCfg := func(timeoutKey string) types.HTTPConfig {
		return types.HTTPConfig{
			Timeout:   viper.GetDuration(timeoutKey),
			UserAgent: userAgent,
		}
	}

	return types.PipelineConfig{
		Parser: types.ParserConfig{
			HTTPConfig: httpCfg("parser.timeout"),
			URL:        viper.GetString("parser.url"),
			Token:      secretDefault("parser-token", viper.GetString("parser.token")),
		},
		Linker: types.LinkerConfig{
			HTTPConfig: httpCfg("linker.timeout"),
			URL:        viper.GetString("linker.url"),
			Token:      secretDefault("linker-token", viper.GetString("linker.token")),
		},
		Falcon: types.FalconConfig{
			HTTPConfig: httpCfg("falcon.timeout"),
			Enabled:    viper.GetBool("falcon.enabled"),
			Token:      secretDefault("falcon-token", viper.GetString("falcon.token")),
		},
		Wikidata: types.WikidataConfig{
			HTTPConfig:        httpCfg("wikidata.timeout"),
			MaxRetries:        viper.GetInt("wikidata.max_retries"),
			RequestsPerSecond: viper.GetFloat64("wikidata.requests_per_second"),
			CacheTTL:          viper.GetDuration("wikidata.cache_ttl"),
		},
		StripFilmTokens: viper.GetBool("strip_film_tokens"),
	}
}

// buildPipeline wires the full answer pipeline from configuration.
func buildPipeline(log zerolog.Logger) *pipeline.Pipeline {
	cfg := loadConfig()

	rps := cfg.Wikidata.RequestsPerSecond
	if rps <= 0 {
		rps = 2
	}
	limiter := rate.NewLimiter(rate.Limit(rps), 1)

	searcher := wikidata.NewSearchClient(cfg.Wikidata, limiter, log)
	querier := wikidata.NewSPARQLClient(cfg.Wikidata, limiter, log)
	resolver := resolve.NewResolver(searcher, cfg.Wikidata.CacheTTL, log)
	retriever := answer.NewRetriever(querier, log)

	var falcon pipeline.EntityExtractor
	if cfg.Falcon.Enabled {
		falcon = wikidata.NewFalconClient(cfg.Falcon, log)
	}
	var linker pipeline.EntityLinker
	if cfg.Linker.URL != "" {
		linker = wikidata.NewLinkerClient(cfg.Linker, log)
	}

	analyzer := nlp.NewClient(cfg.Parser, log)
	return pipeline.New(analyzer, falcon, linker, resolver, retriever, cfg.StripFilmTokens, log)
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package resolve turns free-text phrases into Wikidata identifiers and
// merges candidate mappings from the different sources.
package resolve

import (
	"context"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/rs/zerolog"

	"github.com/pdiddy/filmqa/internal/wikidata"
	"github.com/pdiddy/filmqa/pkg/types"
)

// Searcher is the slice of the search client the resolver needs.
type Searcher interface {
	Search(ctx context.Context, phrase string, kind wikidata.Kind) ([]wikidata.SearchHit, error)
}

// Resolver maps phrases to identifiers through label search, memoizing
// results so repeated phrases within a batch cost one request.
type Resolver struct {
	searcher Searcher
	cache    *cache.Cache
	log      zerolog.Logger
}

// NewResolver builds a resolver around the given searcher. Cached results
// expire after ttl; a non-positive ttl keeps them for the process
// lifetime.
func NewResolver(searcher Searcher, ttl time.Duration, log zerolog.Logger) *Resolver {
	if ttl <= 0 {
		ttl = cache.NoExpiration
	}
	return &Resolver{
		searcher: searcher,
		cache:    cache.New(ttl, 10*time.Minute),
		log:      log,
	}
}

// Resolve returns the best match for the phrase as a single-pair mapping.
// An empty phrase, no hits, or a search failure all yield an empty
// mapping: resolution is best-effort and the caller merges whatever the
// sources managed to produce.
func (r *Resolver) Resolve(ctx context.Context, phrase string, kind wikidata.Kind) types.Mapping {
	if phrase == "" {
		return types.Mapping{}
	}

	key := string(kind) + "\x00" + phrase
	if cached, ok := r.cache.Get(key); ok {
		return cached.(types.Mapping)
	}

	hits, err := r.searcher.Search(ctx, phrase, kind)
	if err != nil {
		r.log.Warn().Err(err).Str("phrase", phrase).Str("kind", string(kind)).Msg("label search failed")
		return types.Mapping{}
	}
	if len(hits) == 0 {
		r.cache.SetDefault(key, types.Mapping{})
		return types.Mapping{}
	}

	m := types.NewMapping(types.Pair{ID: hits[0].ID, Label: hits[0].Label})
	r.cache.SetDefault(key, m)
	return m
}

// Merge combines candidate mappings in argument order. On an identifier
// collision the later mapping's label wins while the pair keeps its
// original position.
func Merge(mappings ...types.Mapping) types.Mapping {
	var out types.Mapping
	for _, m := range mappings {
		for _, p := range m.Pairs() {
			out.Set(p.ID, p.Label)
		}
	}
	return out
}

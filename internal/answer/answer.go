// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package answer runs the resolved identifiers against the graph endpoint
// and shapes the raw bindings into a presentable answer.
package answer

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/pdiddy/filmqa/internal/wikidata"
	"github.com/pdiddy/filmqa/pkg/types"
)

// Querier is the slice of the SPARQL client the retriever needs.
type Querier interface {
	Query(ctx context.Context, entityID, propertyID string, inverse bool) ([]wikidata.Binding, error)
}

// Retriever tries each candidate (entity, property) pair in mapping order
// and keeps the first pair that produces results.
type Retriever struct {
	querier Querier
	log     zerolog.Logger
}

// NewRetriever builds a retriever around the given querier.
func NewRetriever(querier Querier, log zerolog.Logger) *Retriever {
	return &Retriever{querier: querier, log: log}
}

// Retrieve queries every entity×property combination until one yields a
// non-empty shaped result, then presents it by question type. Passive
// questions flip the query direction: the entity is the object of the
// property, not its subject. Query errors abort the search; a clean run
// with no results returns an empty answer of the appropriate kind.
func (r *Retriever) Retrieve(ctx context.Context, question string, qt types.QuestionType, entities, properties types.Mapping) (types.Answer, error) {
	inverse := qt == types.TypePassive

	var values []string
	for _, entity := range entities.Pairs() {
		for _, property := range properties.Pairs() {
			bindings, err := r.querier.Query(ctx, entity.ID, property.ID, inverse)
			if err != nil {
				return types.Answer{}, err
			}
			shaped := shapeValues(question, bindings)
			if len(shaped) == 0 {
				continue
			}
			r.log.Debug().
				Str("entity", entity.ID).
				Str("property", property.ID).
				Int("values", len(shaped)).
				Msg("answer pair selected")
			values = shaped
			break
		}
		if values != nil {
			break
		}
	}

	switch qt {
	case types.TypeCount:
		return types.Answer{Kind: types.AnswerCount, Count: len(values)}, nil
	case types.TypeYesNo:
		return types.Answer{Kind: types.AnswerBoolean, Truth: len(values) > 0}, nil
	}
	return types.Answer{Kind: types.AnswerList, Values: values}, nil
}

// rawTimestampLen is the length of an unformatted ISO instant literal
// ("1997-12-19T00:00:00Z") as the query endpoint returns it.
const rawTimestampLen = 20

// shapeValues applies the presentation fixups the raw bindings need,
// keyed off the question wording. Coordinate answers come back once as a
// plain literal and again with language tags, so only untagged values
// survive. When the question asks for a year or a month, only untagged
// raw timestamps qualify as answers at all — the label service echoes
// tagged duplicates of the same instant — and the survivors are cut down
// to the requested field.
func shapeValues(question string, bindings []wikidata.Binding) []string {
	q := strings.ToLower(question)
	coordinate := strings.Contains(q, "coordinate")
	year := strings.Contains(q, "year")
	month := strings.Contains(q, "month")

	var out []string
	for _, b := range bindings {
		v := b.Value
		if coordinate && b.Lang != "" {
			continue
		}
		if year || month {
			if b.Lang != "" || len(v) != rawTimestampLen {
				continue
			}
			if year {
				v = v[:4]
			} else {
				v = v[5:7]
			}
		}
		out = append(out, v)
	}
	return out
}

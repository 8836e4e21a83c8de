// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline orchestrates the per-question stages: parse, classify,
// extract, resolve, retrieve. Every stage failure degrades the single
// question, never the run.
package pipeline

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/pdiddy/filmqa/internal/classify"
	"github.com/pdiddy/filmqa/internal/extract"
	"github.com/pdiddy/filmqa/internal/nlp"
	"github.com/pdiddy/filmqa/internal/resolve"
	"github.com/pdiddy/filmqa/internal/wikidata"
	"github.com/pdiddy/filmqa/pkg/types"
)

// EntityExtractor is the Falcon client surface the pipeline uses.
type EntityExtractor interface {
	Extract(ctx context.Context, text string) (entities, relations types.Mapping, err error)
}

// EntityLinker is the linker sidecar surface the pipeline uses.
type EntityLinker interface {
	Link(ctx context.Context, text string) (types.Mapping, error)
}

// PhraseResolver turns a free-text phrase into identifier candidates.
type PhraseResolver interface {
	Resolve(ctx context.Context, phrase string, kind wikidata.Kind) types.Mapping
}

// AnswerRetriever produces the final answer from resolved candidates.
type AnswerRetriever interface {
	Retrieve(ctx context.Context, question string, qt types.QuestionType, entities, properties types.Mapping) (types.Answer, error)
}

// Result is the full record of one processed question. Serialized as-is
// into run snapshots and API responses.
type Result struct {
	ID         string             `json:"id,omitempty" yaml:"id,omitempty"`
	Question   string             `json:"question" yaml:"question"`
	Type       types.QuestionType `json:"type" yaml:"type"`
	Slots      types.Slots        `json:"slots,omitempty" yaml:"slots,omitempty"`
	Entities   types.Mapping      `json:"entities,omitempty" yaml:"entities,omitempty"`
	Properties types.Mapping      `json:"properties,omitempty" yaml:"properties,omitempty"`
	Answer     types.Answer       `json:"answer" yaml:"answer"`
	Skipped    bool               `json:"skipped,omitempty" yaml:"skipped,omitempty"`
	Notes      []string           `json:"notes,omitempty" yaml:"notes,omitempty"`
}

// Pipeline wires the collaborating services together. All dependencies
// are injected; nil Falcon or Linker simply disables that source.
type Pipeline struct {
	analyzer  nlp.Analyzer
	falcon    EntityExtractor
	linker    EntityLinker
	resolver  PhraseResolver
	retriever AnswerRetriever
	stripFilm bool
	log       zerolog.Logger
}

// New builds a pipeline from its collaborators.
func New(analyzer nlp.Analyzer, falcon EntityExtractor, linker EntityLinker, resolver PhraseResolver, retriever AnswerRetriever, stripFilm bool, log zerolog.Logger) *Pipeline {
	return &Pipeline{
		analyzer:  analyzer,
		falcon:    falcon,
		linker:    linker,
		resolver:  resolver,
		retriever: retriever,
		stripFilm: stripFilm,
		log:       log,
	}
}

// Process answers one question. The returned Result always carries the
// question text; Skipped marks questions no rule could categorize and
// questions the parser rejected.
func (p *Pipeline) Process(ctx context.Context, id, question string) *Result {
	res := &Result{ID: id, Question: question}

	parsed, err := p.analyzer.Analyze(ctx, question)
	if err != nil {
		p.log.Warn().Err(err).Str("id", id).Msg("parse failed, skipping question")
		res.Skipped = true
		res.Notes = append(res.Notes, "parse failed: "+err.Error())
		return res
	}

	res.Type = classify.Classify(parsed)
	if res.Type == types.TypeUnknown {
		p.log.Warn().Str("id", id).Str("question", question).Msg("no category matched, skipping question")
		res.Skipped = true
		return res
	}

	res.Slots = extract.Slots(parsed, res.Type)
	if m, ok := extract.Override(parsed.Text); ok {
		res.Slots.Property = types.MappingProperty(m)
	}

	res.Entities, res.Properties = p.resolveSlots(ctx, parsed, res)

	answer, err := p.retriever.Retrieve(ctx, parsed.Text, res.Type, res.Entities, res.Properties)
	if err != nil {
		p.log.Warn().Err(err).Str("id", id).Msg("answer retrieval failed")
		res.Notes = append(res.Notes, "retrieval failed: "+err.Error())
		res.Answer = types.Answer{Kind: types.AnswerList}
		return res
	}
	res.Answer = answer
	return res
}

// resolveSlots gathers entity and property candidates from all sources.
// Precedence on identifier collision is last-wins: Falcon, then the
// linker, then label search over the extracted slots.
func (p *Pipeline) resolveSlots(ctx context.Context, parsed *nlp.ParsedQuestion, res *Result) (entities, properties types.Mapping) {
	linkText := parsed.Stripped()
	if p.stripFilm {
		linkText = stripFilmTokens(linkText)
	}

	var falconEntities, falconRelations types.Mapping
	if p.falcon != nil {
		var err error
		falconEntities, falconRelations, err = p.falcon.Extract(ctx, linkText)
		if err != nil {
			p.log.Warn().Err(err).Str("id", res.ID).Msg("concept extraction unavailable")
			res.Notes = append(res.Notes, "concept extraction unavailable")
		}
	}

	var linked types.Mapping
	if p.linker != nil {
		var err error
		linked, err = p.linker.Link(ctx, linkText)
		if err != nil {
			p.log.Warn().Err(err).Str("id", res.ID).Msg("entity linking unavailable")
			res.Notes = append(res.Notes, "entity linking unavailable")
		}
	}

	searched := p.resolver.Resolve(ctx, res.Slots.Entity, wikidata.KindEntity)
	entities = resolve.Merge(falconEntities, linked, searched)

	// A pre-resolved property mapping (closed vocabulary or keyword
	// override) stands alone; free-text phrases go through label search
	// and merge behind the extracted relations.
	if res.Slots.Property.Resolved() {
		properties = res.Slots.Property.Mapping
	} else {
		resolved := p.resolver.Resolve(ctx, res.Slots.Property.Phrase, wikidata.KindProperty)
		properties = resolve.Merge(falconRelations, resolved)
	}
	return entities, properties
}

// stripFilmTokens removes the generic film/movie words before entity
// linking. Film titles rarely contain them, and the linker otherwise
// anchors on "film" itself.
func stripFilmTokens(text string) string {
	var kept []string
	for _, w := range strings.Fields(text) {
		switch strings.ToLower(w) {
		case "film", "films", "movie", "movies":
			continue
		}
		kept = append(kept, w)
	}
	return strings.Join(kept, " ")
}

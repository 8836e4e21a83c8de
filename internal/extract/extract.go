// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package extract pulls the entity and property slots out of a parsed
// question. Each question type has its own extraction strategy with its own
// slicing rules and phrase-boundary heuristics; the strategies are pure and
// dispatch through a table keyed by question type.
//
// Positional lookups (first AUX, first ADP, root verb) go through the
// optional-index helpers on nlp.ParsedQuestion. A tag that is absent from
// the sentence yields an empty slot for that side, never a panic: the
// classifier is heuristic and routinely routes sentences here that lack
// the expected structure.
package extract

import (
	"strings"

	"github.com/pdiddy/filmqa/internal/nlp"
	"github.com/pdiddy/filmqa/pkg/types"
)

// Wikidata property IDs bound directly by closed-vocabulary strategies.
const (
	propDuration      = "P2047"
	propHeight        = "P2048"
	propCost          = "P2130"
	propPlaceOfBirth  = "P19"
	propCountryOrigin = "P495"
	propFilmLocation  = "P915"
	propDateOfBirth   = "P569"
	propPubDate       = "P577"
	propDateOfDeath   = "P570"
)

// raw is the pre-join form of the extracted slots: word lists for the open
// phrases, or a pre-resolved mapping for closed-vocabulary types.
type raw struct {
	entity  []string
	prop    []string
	mapping types.Mapping
}

type strategy func(q *nlp.ParsedQuestion) raw

var strategies = map[types.QuestionType]strategy{
	types.TypeXofY:          extractXofY,
	types.TypeVerbProp:      extractVerbProp,
	types.TypeDuration:      extractDuration,
	types.TypePassive:       extractPassive,
	types.TypeLocation:      extractLocation,
	types.TypeTime:          extractTime,
	types.TypeWhatAIsXY:     extractWhatAIsXY,
	types.TypeWhatWhichVerb: extractWhatWhichVerb,
	types.TypeWhatXIsY:      extractWhatXIsY,
	types.TypeAbout:         extractAbout,
	types.TypeWhatIsXsY:     extractWhatIsXsY,
	types.TypeTall:          extractTall,
	types.TypeCount:         extractCount,
	types.TypeCost:          extractCost,
	types.TypeYesNo:         extractYesNo,
}

// Slots extracts the entity phrase and property for the given question
// type. Unknown types produce empty slots; the caller reports and skips.
func Slots(q *nlp.ParsedQuestion, t types.QuestionType) types.Slots {
	s, ok := strategies[t]
	if !ok {
		return types.Slots{}
	}
	r := s(q)

	slots := types.Slots{
		Entity: strings.Join(trimEntity(q, r.entity), " "),
	}
	if !r.mapping.IsEmpty() {
		slots.Property = types.MappingProperty(r.mapping)
	} else {
		slots.Property = types.PhraseProperty(cleanPhrase(strings.Join(r.prop, " ")))
	}
	return slots
}

// trimEntity drops leading words up to the first capitalized word that is
// not an adjective, so "the Dutch movie Soldier of Orange" starts at
// "Soldier", not "Dutch". A phrase without such a word is kept unchanged.
// The operation is idempotent: once the phrase starts at a capitalized
// non-adjective, re-applying it finds the same start.
func trimEntity(q *nlp.ParsedQuestion, words []string) []string {
	for i, w := range words {
		if nlp.IsCapitalized(w) && q.POSOfWord(w) != "ADJ" {
			return words[i:]
		}
	}
	return words
}

// cleanPhrase strips stray quote characters left in a property phrase.
func cleanPhrase(s string) string {
	return strings.NewReplacer(`"`, "", "'", "").Replace(s)
}

// stripWords removes the given stopwords from a word list.
func stripWords(words []string, stops ...string) []string {
	var out []string
	for _, w := range words {
		drop := false
		for _, s := range stops {
			if w == s {
				drop = true
				break
			}
		}
		if !drop {
			out = append(out, w)
		}
	}
	return out
}

// wordsAfterToken returns the surface text of the non-punctuation tokens
// after token index i.
func wordsAfterToken(q *nlp.ParsedQuestion, i int) []string {
	var out []string
	for j := i + 1; j < len(q.Tokens); j++ {
		if q.Tokens[j].POS == "PUNCT" {
			continue
		}
		out = append(out, q.Tokens[j].Text)
	}
	return out
}

// quotedSpan returns the words inside the first single- or double-quoted
// span of the original sentence, or nil.
func quotedSpan(text string) []string {
	for _, quote := range []string{`"`, "'"} {
		start := strings.Index(text, quote)
		if start < 0 {
			continue
		}
		rest := text[start+1:]
		end := strings.Index(rest, quote)
		if end <= 0 {
			continue
		}
		return strings.Fields(rest[:end])
	}
	return nil
}

// capitalizedRun returns the first maximal run of consecutive capitalized
// tokens, skipping the question word at position 0, or nil.
func capitalizedRun(q *nlp.ParsedQuestion) []string {
	var run []string
	for i := 1; i < len(q.Tokens); i++ {
		if nlp.IsCapitalized(q.Tokens[i].Text) && q.Tokens[i].POS != "PUNCT" {
			run = append(run, q.Tokens[i].Text)
			continue
		}
		if len(run) > 0 {
			break
		}
	}
	return run
}

// spanEntity is the shared entity heuristic for the question types where
// the entity is a freestanding name: a quoted span wins, then a run of
// capitalized tokens.
func spanEntity(q *nlp.ParsedQuestion) []string {
	if span := quotedSpan(q.Text); span != nil {
		return span
	}
	return capitalizedRun(q)
}

// xofyIdioms maps multi-adposition idioms to the phrase sent to the
// property search. Matched by substring when the sentence has more than
// one adposition and "of" is therefore likely part of the property itself
// ("cause of death") rather than the X-of-Y boundary.
var xofyIdioms = []struct{ match, phrase string }{
	{"cause of death", "cause of death"},
	{"city of birth", "birth city"},
	{"date of birth", "birth date"},
	{"country of origin", "country of origin"},
	{"country of citizenship", "country of citizenship"},
}

// extractXofY handles "Who is the director of X?". The property lies
// between the auxiliary and the adposition; the entity is everything after
// the adposition.
func extractXofY(q *nlp.ParsedQuestion) raw {
	var r raw

	lemmas := q.Lemmas()
	auxIdx, hasAux := q.FirstPOS("AUX")

	if q.CountPOS("ADP") == 1 {
		if adpIdx, ok := q.FirstPOS("ADP"); ok && hasAux && auxIdx+1 < adpIdx {
			r.prop = stripWords(lemmas[auxIdx+1:adpIdx], "the", "a", "an")
		}
	} else {
		matched := false
		for _, idiom := range xofyIdioms {
			if strings.Contains(q.Text, idiom.match) {
				r.prop = []string{idiom.phrase}
				matched = true
				break
			}
		}
		// No known idiom: the extra "of" probably belongs to the entity,
		// as in "Lord of the Rings". Slice up to the first proper noun
		// instead of the first adposition.
		if !matched && hasAux {
			if propnIdx, ok := q.FirstPOS("PROPN"); ok && auxIdx+1 < propnIdx {
				r.prop = stripWords(lemmas[auxIdx+1:propnIdx], "the", "a", "an", "of")
			}
		}
	}

	if adpIdx, ok := q.FirstPOS("ADP"); ok {
		r.entity = wordsAfterToken(q, adpIdx)
	}
	return r
}

// extractVerbProp handles "Who directed X?": the entity is the full
// direct-object subtree, the property is the lemma of the root verb.
func extractVerbProp(q *nlp.ParsedQuestion) raw {
	var r raw
	if dobjIdx, ok := q.FirstDep("dobj"); ok {
		r.entity = q.SubtreeWords(dobjIdx)
	}
	if rootIdx, ok := q.Root(); ok {
		r.prop = []string{q.Tokens[rootIdx].Lemma}
	}
	return r
}

// extractDuration handles "How long is X?". The property is fixed; the
// entity usually follows the root verb, but an explicit quoted or
// capitalized span is more reliable when present.
func extractDuration(q *nlp.ParsedQuestion) raw {
	r := raw{mapping: types.NewMapping(types.Pair{ID: propDuration, Label: "duration"})}
	if span := spanEntity(q); span != nil {
		r.entity = span
		return r
	}
	if rootIdx, ok := q.Root(); ok {
		r.entity = wordsAfterToken(q, rootIdx)
	}
	return r
}

// extractPassive handles "Which movies are directed by X?": the entity is
// the object-of-preposition subtree, the property is the surface text of
// the root verb.
func extractPassive(q *nlp.ParsedQuestion) raw {
	var r raw
	if pobjIdx, ok := q.FirstDep("pobj"); ok {
		r.entity = q.SubtreeWords(pobjIdx)
	}
	if rootIdx, ok := q.Root(); ok && q.Tokens[rootIdx].POS == "VERB" {
		r.prop = []string{q.Tokens[rootIdx].Text}
	}
	return r
}

// extractLocation binds location properties from secondary lemma cues.
// "Where is X from?" asks for an origin; "Where was X filmed?" asks for a
// filming location; "Where was X born?" a birthplace.
func extractLocation(q *nlp.ParsedQuestion) raw {
	r := raw{entity: spanEntity(q)}
	switch {
	case q.HasLemma("from"):
		r.mapping = types.NewMapping(
			types.Pair{ID: propPlaceOfBirth, Label: "place of birth"},
			types.Pair{ID: propCountryOrigin, Label: "country of origin"},
		)
	case strings.Contains(strings.ToLower(q.Text), "filmed"):
		r.mapping = types.NewMapping(types.Pair{ID: propFilmLocation, Label: "filming location"})
	case q.HasLemma("born"):
		r.mapping = types.NewMapping(types.Pair{ID: propPlaceOfBirth, Label: "place of birth"})
	}
	return r
}

// extractTime binds date properties from lemma and idiom cues.
func extractTime(q *nlp.ParsedQuestion) raw {
	r := raw{entity: spanEntity(q)}
	lower := strings.ToLower(q.Text)
	switch {
	case q.AnyLemma("born", "birthday"):
		r.mapping = types.NewMapping(types.Pair{ID: propDateOfBirth, Label: "date of birth"})
	case q.AnyLemma("release", "premiere", "publish", "publicise") || strings.Contains(lower, "come out"):
		r.mapping = types.NewMapping(types.Pair{ID: propPubDate, Label: "publication date"})
	case q.HasLemma("die") || strings.Contains(lower, "pass away"):
		r.mapping = types.NewMapping(types.Pair{ID: propDateOfDeath, Label: "date of death"})
	}
	return r
}

// extractWhatAIsXY handles "What book is X based on?" and the
// "Which movies earned X an award?" variant. The property is usually the
// trailing participle pair; otherwise it sits between the question noun
// and the auxiliary.
func extractWhatAIsXY(q *nlp.ParsedQuestion) raw {
	r := raw{entity: spanEntity(q)}

	words := q.Words()
	if n := len(words); n >= 2 {
		a, b := strings.ToLower(words[n-2]), strings.ToLower(words[n-1])
		if (a == "influenced" && b == "by") || q.HasLemma("earn") {
			r.prop = words[n-2:]
			return r
		}
	}

	if auxIdx, ok := q.FirstPOS("AUX"); ok {
		for i := 1; i < auxIdx; i++ {
			r.prop = append(r.prop, q.Tokens[i].Text)
		}
	}
	return r
}

// extractWhatWhichVerb handles "What awards did X receive?": the property
// is simply the second lemma.
func extractWhatWhichVerb(q *nlp.ParsedQuestion) raw {
	if len(q.Tokens) < 2 {
		return raw{}
	}
	return raw{prop: []string{q.Tokens[1].Lemma}}
}

// extractWhatXIsY handles "What genre is X?": the property spans from the
// second token to the auxiliary.
func extractWhatXIsY(q *nlp.ParsedQuestion) raw {
	var r raw
	if auxIdx, ok := q.FirstPOS("AUX"); ok {
		for i := 1; i < auxIdx; i++ {
			r.prop = append(r.prop, q.Tokens[i].Text)
		}
	}
	return r
}

// extractAbout handles "What is X about?": the property phrase is fixed
// and resolved like any open phrase.
func extractAbout(q *nlp.ParsedQuestion) raw {
	return raw{entity: spanEntity(q), prop: []string{"main", "subject"}}
}

// extractWhatIsXsY handles "What is Xs hair color?". A possessive marker
// bounds the property when present; otherwise the capitalized tokens
// stand in. Either way the result is then replaced by the last two words
// of the sentence, preserving the behavior this heuristic shipped with.
func extractWhatIsXsY(q *nlp.ParsedQuestion) raw {
	var r raw

	lemmas := q.Lemmas()
	possIdx := -1
	for i, l := range lemmas {
		if l == "'s" || l == "’s" {
			possIdx = i
			break
		}
	}
	if possIdx > 2 {
		r.prop = lemmas[2:possIdx]
	} else {
		for _, t := range q.Tokens {
			if nlp.IsCapitalized(t.Text) {
				r.prop = append(r.prop, t.Text)
			}
		}
	}

	if words := q.Words(); len(words) >= 2 {
		r.prop = words[len(words)-2:]
	}
	return r
}

// extractTall binds height directly. No entity is extracted here; entity
// candidates come from the linker and extraction API alone.
func extractTall(q *nlp.ParsedQuestion) raw {
	return raw{mapping: types.NewMapping(types.Pair{ID: propHeight, Label: "height"})}
}

// extractCount assigns no property at all: counting questions rely on the
// keyword override or the extraction API for the property, and on
// answer-shape post-processing for the count itself.
func extractCount(q *nlp.ParsedQuestion) raw {
	return raw{}
}

// extractCost binds production cost directly.
func extractCost(q *nlp.ParsedQuestion) raw {
	return raw{mapping: types.NewMapping(types.Pair{ID: propCost, Label: "cost"})}
}

// extractYesNo handles "Did Titanic win an Oscar?": the entity sits
// between the auxiliary and the root verb, the property follows the root
// verb with determiners and punctuation dropped.
func extractYesNo(q *nlp.ParsedQuestion) raw {
	var r raw
	rootIdx, ok := q.Root()
	if !ok {
		return r
	}
	lemmas := q.Lemmas()
	if rootIdx > 1 {
		r.entity = lemmas[1:rootIdx]
	}
	for i := rootIdx + 1; i < len(q.Tokens); i++ {
		if q.Tokens[i].POS == "DET" || q.Tokens[i].POS == "PUNCT" {
			continue
		}
		r.prop = append(r.prop, q.Tokens[i].Lemma)
	}
	return r
}

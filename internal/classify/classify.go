// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package classify assigns a question-type category to a parsed question.
// The decision procedure is a cascade of surface heuristics over lemmas,
// POS tags, and dependency labels. Categories overlap, so priority is the
// source of truth: the rules live in an explicit ordered list evaluated
// top to bottom, first match wins.
package classify

import (
	"github.com/pdiddy/filmqa/internal/nlp"
	"github.com/pdiddy/filmqa/pkg/types"
)

// Keyword sets for the lexical rules. "time" doubles as a duration cue
// ("how much time") rather than a time-of-event cue; the duration rule
// therefore outranks the time rule.
var (
	durationLemmas = []string{"long", "duration", "minutes", "time", "length"}
	locationLemmas = []string{"country", "location", "where", "coordinates"}
	timeLemmas     = []string{"century", "year", "when", "month"}
)

// rule is one step of the cascade. apply returns the matched type and
// whether the rule fired.
type rule struct {
	name  string
	apply func(q *nlp.ParsedQuestion) (types.QuestionType, bool)
}

// rules in priority order. Reordering entries changes classification;
// every position is covered by a test.
var rules = []rule{
	{"aux-do", classifyYesNo},
	{"passive-marker", classifyPassive},
	{"duration-keyword", keywordRule(types.TypeDuration, durationLemmas)},
	{"location-keyword", keywordRule(types.TypeLocation, locationLemmas)},
	{"time-keyword", keywordRule(types.TypeTime, timeLemmas)},
	{"what-which", classifyWhatWhich},
	{"tall", lemmaRule(types.TypeTall, "tall")},
	{"how-many", classifyCount},
	{"cost", lemmaRule(types.TypeCost, "cost")},
	{"prep-object", depRule(types.TypeXofY, "pobj")},
	{"direct-object", depRule(types.TypeVerbProp, "dobj")},
}

// Classify returns the question type for q, or TypeUnknown when no rule
// fires. Unknown is a reportable, non-fatal condition: the caller skips
// the question.
func Classify(q *nlp.ParsedQuestion) types.QuestionType {
	if len(q.Tokens) < 2 {
		return types.TypeUnknown
	}
	for _, r := range rules {
		if t, ok := r.apply(q); ok {
			return t
		}
	}
	return types.TypeUnknown
}

// classifyYesNo matches questions opening with an auxiliary do/does/did,
// which all lemmatize to "do".
func classifyYesNo(q *nlp.ParsedQuestion) (types.QuestionType, bool) {
	if q.Tokens[0].Lemma == "do" {
		return types.TypeYesNo, true
	}
	return "", false
}

// classifyPassive matches passive dependency markers (nsubjpass, auxpass,
// agent passes too since the label contains "pass"). A question opening
// with "by" ("By whom was X directed?") carries a passive marker but has
// object-of-preposition structure, so it goes to XofY instead.
func classifyPassive(q *nlp.ParsedQuestion) (types.QuestionType, bool) {
	if !q.AnyDepContains("pass") {
		return "", false
	}
	if q.FirstTokenIs("by") {
		return types.TypeXofY, true
	}
	return types.TypePassive, true
}

func keywordRule(t types.QuestionType, lemmas []string) func(*nlp.ParsedQuestion) (types.QuestionType, bool) {
	return func(q *nlp.ParsedQuestion) (types.QuestionType, bool) {
		if q.AnyLemma(lemmas...) {
			return t, true
		}
		return "", false
	}
}

func lemmaRule(t types.QuestionType, lemma string) func(*nlp.ParsedQuestion) (types.QuestionType, bool) {
	return func(q *nlp.ParsedQuestion) (types.QuestionType, bool) {
		if q.HasLemma(lemma) {
			return t, true
		}
		return "", false
	}
}

func depRule(t types.QuestionType, dep string) func(*nlp.ParsedQuestion) (types.QuestionType, bool) {
	return func(q *nlp.ParsedQuestion) (types.QuestionType, bool) {
		if q.AnyDepContains(dep) {
			return t, true
		}
		return "", false
	}
}

// classifyWhatWhich handles the what/which family. The sub-branches mirror
// the structural distinctions:
//
//	What genre is X?            → whatXisY (noun subject, no full verb)
//	What book is X based on?    → what_A_is_X_Y (copular "be")
//	Which movies earned X ...?  → what_A_is_X_Y ("earn" idiosyncrasy)
//	What awards did X receive?  → what_which_verb
//	What is X about?            → about
//	What is Xs hair color?      → what_is_Xs_Y
func classifyWhatWhich(q *nlp.ParsedQuestion) (types.QuestionType, bool) {
	if !q.FirstTokenIs("what") && !q.FirstTokenIs("which") {
		return "", false
	}

	if q.Tokens[1].POS == "NOUN" {
		verbIdx, hasVerb := q.FirstPOS("VERB")
		if !hasVerb {
			return types.TypeWhatXIsY, true
		}
		if auxIdx, ok := q.FirstPOS("AUX"); ok {
			if q.Tokens[auxIdx].Lemma == "be" {
				return types.TypeWhatAIsXY, true
			}
			if q.Tokens[verbIdx].Lemma == "earn" {
				return types.TypeWhatAIsXY, true
			}
		}
		return types.TypeWhatWhichVerb, true
	}

	if q.HasLemma("about") {
		return types.TypeAbout, true
	}
	return types.TypeWhatIsXsY, true
}

// classifyCount matches how-many/how-much counting questions. "follower"
// and "cost" questions share the surface form but have their own property
// semantics, so their presence blocks this rule.
func classifyCount(q *nlp.ParsedQuestion) (types.QuestionType, bool) {
	if !q.AnyLemma("many", "much") {
		return "", false
	}
	if q.HasLemma("follower") || q.HasLemma("cost") {
		return "", false
	}
	return types.TypeCount, true
}

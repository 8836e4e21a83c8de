// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package nlp wraps the external sentence parser. It exposes the parsed
// question as parallel token annotations (lemma, coarse POS tag, dependency
// label) plus the convenience views the classifier and slot extractor work
// with: stripped sentence text, positional lookups, and subtree extraction.
package nlp

import (
	"context"
	"strings"
	"unicode"
)

// Token is one annotated word of a question. Produced once per question by
// the parser; read-only afterwards.
type Token struct {
	Text  string `json:"text"`
	Lemma string `json:"lemma"`
	POS   string `json:"pos"`
	Dep   string `json:"dep"`
	// Head is the index of the governing token. The root token points at
	// itself.
	Head int `json:"head"`
}

// ParsedQuestion is the ordered token sequence for one question together
// with the original sentence text. Token order matches sentence order;
// indexes are stable for subtree lookups.
type ParsedQuestion struct {
	Text   string
	Tokens []Token
}

// Analyzer produces a ParsedQuestion for a question string. The concrete
// implementation calls the parse sidecar; tests construct ParsedQuestions
// directly.
type Analyzer interface {
	Analyze(ctx context.Context, text string) (*ParsedQuestion, error)
}

// Stripped returns the sentence text with the question mark and quote
// characters removed.
func (q *ParsedQuestion) Stripped() string {
	r := strings.NewReplacer("?", "", `"`, "", "'", "")
	return r.Replace(q.Text)
}

// Words splits the stripped sentence on whitespace.
func (q *ParsedQuestion) Words() []string {
	return strings.Fields(q.Stripped())
}

// Lemmas returns the lemma of every token, in order.
func (q *ParsedQuestion) Lemmas() []string {
	out := make([]string, len(q.Tokens))
	for i, t := range q.Tokens {
		out[i] = t.Lemma
	}
	return out
}

// Deps returns the dependency label of every token, in order.
func (q *ParsedQuestion) Deps() []string {
	out := make([]string, len(q.Tokens))
	for i, t := range q.Tokens {
		out[i] = t.Dep
	}
	return out
}

// FirstTokenIs reports whether the first surface token equals text,
// case-insensitively.
func (q *ParsedQuestion) FirstTokenIs(text string) bool {
	return len(q.Tokens) > 0 && strings.EqualFold(q.Tokens[0].Text, text)
}

// HasLemma reports whether any token has the given lemma.
func (q *ParsedQuestion) HasLemma(lemma string) bool {
	for _, t := range q.Tokens {
		if t.Lemma == lemma {
			return true
		}
	}
	return false
}

// AnyLemma reports whether any token lemma is in the given set.
func (q *ParsedQuestion) AnyLemma(set ...string) bool {
	for _, want := range set {
		if q.HasLemma(want) {
			return true
		}
	}
	return false
}

// FirstPOS returns the index of the first token with the given POS tag.
// The ok result is false when no such token exists; callers must branch on
// it instead of indexing blindly.
func (q *ParsedQuestion) FirstPOS(pos string) (int, bool) {
	for i, t := range q.Tokens {
		if t.POS == pos {
			return i, true
		}
	}
	return 0, false
}

// CountPOS returns how many tokens carry the given POS tag.
func (q *ParsedQuestion) CountPOS(pos string) int {
	n := 0
	for _, t := range q.Tokens {
		if t.POS == pos {
			n++
		}
	}
	return n
}

// FirstDep returns the index of the first token whose dependency label
// equals dep.
func (q *ParsedQuestion) FirstDep(dep string) (int, bool) {
	for i, t := range q.Tokens {
		if t.Dep == dep {
			return i, true
		}
	}
	return 0, false
}

// AnyDepContains reports whether any dependency label contains the given
// substring (e.g. "pass" matches both nsubjpass and auxpass).
func (q *ParsedQuestion) AnyDepContains(sub string) bool {
	for _, t := range q.Tokens {
		if strings.Contains(t.Dep, sub) {
			return true
		}
	}
	return false
}

// Root returns the index of the sentence root.
func (q *ParsedQuestion) Root() (int, bool) {
	return q.FirstDep("ROOT")
}

// Subtree returns the indexes of token i and all its transitive dependents,
// in sentence order.
func (q *ParsedQuestion) Subtree(i int) []int {
	if i < 0 || i >= len(q.Tokens) {
		return nil
	}
	in := make([]bool, len(q.Tokens))
	in[i] = true
	// Head links always point toward the root, so repeated sweeps settle
	// quickly; the loop bounds the worst case.
	for pass := 0; pass < len(q.Tokens); pass++ {
		changed := false
		for j, t := range q.Tokens {
			if !in[j] && j != t.Head && in[t.Head] {
				in[j] = true
				changed = true
			}
		}
		if !changed {
			break
		}
	}
	var out []int
	for j, ok := range in {
		if ok {
			out = append(out, j)
		}
	}
	return out
}

// SubtreeWords returns the surface text of the subtree rooted at token i.
func (q *ParsedQuestion) SubtreeWords(i int) []string {
	idx := q.Subtree(i)
	out := make([]string, len(idx))
	for k, j := range idx {
		out[k] = q.Tokens[j].Text
	}
	return out
}

// POSOfWord returns the POS tag of the first token whose surface text
// equals word, or "" when the word does not correspond to a token (it may
// have been produced by splitting the stripped sentence).
func (q *ParsedQuestion) POSOfWord(word string) string {
	for _, t := range q.Tokens {
		if t.Text == word {
			return t.POS
		}
	}
	return ""
}

// IsCapitalized reports whether the first letter of w is upper case.
func IsCapitalized(w string) bool {
	for _, r := range w {
		if unicode.IsLetter(r) {
			return unicode.IsUpper(r)
		}
		return false
	}
	return false
}

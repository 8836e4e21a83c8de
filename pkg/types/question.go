// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types holds the data model shared across pipeline stages:
// question categories, entity/property mappings, extracted slots,
// answers, and per-stage configuration.
package types

import (
	"encoding/json"
	"fmt"
	"strings"
)

// QuestionType is the syntactic category assigned to a question by the
// classifier. Exactly one value per question; TypeUnknown marks a
// classification failure (the question is skipped, not an error).
type QuestionType string

const (
	TypeYesNo         QuestionType = "yes/no"
	TypePassive       QuestionType = "passive"
	TypeDuration      QuestionType = "duration"
	TypeLocation      QuestionType = "location"
	TypeTime          QuestionType = "time"
	TypeWhatAIsXY     QuestionType = "what_A_is_X_Y"
	TypeWhatWhichVerb QuestionType = "what_which_verb"
	TypeWhatXIsY      QuestionType = "whatXisY"
	TypeAbout         QuestionType = "about"
	TypeWhatIsXsY     QuestionType = "what_is_Xs_Y"
	TypeTall          QuestionType = "tall"
	TypeCount         QuestionType = "count"
	TypeCost          QuestionType = "cost"
	TypeXofY          QuestionType = "XofY"
	TypeVerbProp      QuestionType = "verb_prop"
	TypeUnknown       QuestionType = "unknown"
)

// Pair is one entry of a Mapping.
type Pair struct {
	ID    string `json:"id" yaml:"id"`
	Label string `json:"label" yaml:"label"`
}

// Mapping is an insertion-ordered map from knowledge-base ID (e.g. "Q2875",
// "P577") to human-readable label. Set keeps the first-insertion position of
// a key and overwrites its label on collision, so merge precedence is
// "last write wins" while iteration order stays deterministic.
type Mapping struct {
	pairs []Pair
	index map[string]int
}

// NewMapping builds a Mapping from the given pairs, in order.
func NewMapping(pairs ...Pair) Mapping {
	var m Mapping
	for _, p := range pairs {
		m.Set(p.ID, p.Label)
	}
	return m
}

// Set inserts or updates an entry.
func (m *Mapping) Set(id, label string) {
	if m.index == nil {
		m.index = make(map[string]int)
	}
	if i, ok := m.index[id]; ok {
		m.pairs[i].Label = label
		return
	}
	m.index[id] = len(m.pairs)
	m.pairs = append(m.pairs, Pair{ID: id, Label: label})
}

// Get returns the label for id.
func (m Mapping) Get(id string) (string, bool) {
	i, ok := m.index[id]
	if !ok {
		return "", false
	}
	return m.pairs[i].Label, true
}

// Len returns the number of entries.
func (m Mapping) Len() int { return len(m.pairs) }

// IsEmpty reports whether the mapping has no entries.
func (m Mapping) IsEmpty() bool { return len(m.pairs) == 0 }

// Pairs returns the entries in insertion order. The returned slice is
// shared; callers must not modify it.
func (m Mapping) Pairs() []Pair { return m.pairs }

// IDs returns the keys in insertion order.
func (m Mapping) IDs() []string {
	ids := make([]string, len(m.pairs))
	for i, p := range m.pairs {
		ids[i] = p.ID
	}
	return ids
}

func (m Mapping) String() string {
	var b strings.Builder
	b.WriteString("{")
	for i, p := range m.pairs {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%s: %s", p.ID, p.Label)
	}
	b.WriteString("}")
	return b.String()
}

// MarshalJSON serializes the mapping as an ordered list of id/label pairs.
func (m Mapping) MarshalJSON() ([]byte, error) { return json.Marshal(m.pairs) }

// UnmarshalJSON restores a mapping from a list of id/label pairs.
func (m *Mapping) UnmarshalJSON(data []byte) error {
	var pairs []Pair
	if err := json.Unmarshal(data, &pairs); err != nil {
		return err
	}
	*m = NewMapping(pairs...)
	return nil
}

// MarshalYAML serializes the mapping as an ordered list of id/label pairs.
func (m Mapping) MarshalYAML() (any, error) { return m.pairs, nil }

// UnmarshalYAML restores a mapping from a list of id/label pairs.
func (m *Mapping) UnmarshalYAML(unmarshal func(any) error) error {
	var pairs []Pair
	if err := unmarshal(&pairs); err != nil {
		return err
	}
	*m = NewMapping(pairs...)
	return nil
}

// Property is the extracted property slot. Exactly one side is populated:
// open question types produce a free-text Phrase for later resolution,
// closed-vocabulary types produce a pre-resolved Mapping directly.
type Property struct {
	Phrase  string  `json:"phrase,omitempty" yaml:"phrase,omitempty"`
	Mapping Mapping `json:"mapping,omitempty" yaml:"mapping,omitempty"`
}

// Resolved reports whether the property carries a pre-resolved mapping
// and therefore bypasses the resolver.
func (p Property) Resolved() bool { return !p.Mapping.IsEmpty() }

// IsEmpty reports whether neither side is populated.
func (p Property) IsEmpty() bool { return p.Phrase == "" && p.Mapping.IsEmpty() }

// PhraseProperty returns an unresolved property slot.
func PhraseProperty(phrase string) Property { return Property{Phrase: phrase} }

// MappingProperty returns a pre-resolved property slot.
func MappingProperty(m Mapping) Property { return Property{Mapping: m} }

// Slots holds the two values extracted from a question: the entity phrase
// and the property (phrase or pre-resolved mapping). Never shared across
// questions.
type Slots struct {
	Entity   string   `json:"entity,omitempty" yaml:"entity,omitempty"`
	Property Property `json:"property,omitempty" yaml:"property,omitempty"`
}

// AnswerKind selects the shape of an Answer.
type AnswerKind string

const (
	AnswerList    AnswerKind = "list"
	AnswerCount   AnswerKind = "count"
	AnswerBoolean AnswerKind = "boolean"
)

// Answer is the final result of a question: an ordered value list, an
// integer count, or a yes/no boolean. Computed fresh per question and
// never cached.
type Answer struct {
	Kind   AnswerKind `json:"kind" yaml:"kind"`
	Values []string   `json:"values,omitempty" yaml:"values,omitempty"`
	Count  int        `json:"count,omitempty" yaml:"count,omitempty"`
	Truth  bool       `json:"truth,omitempty" yaml:"truth,omitempty"`
}

// IsEmpty reports whether the answer carries no information. Count and
// boolean answers are never empty: zero and "no" are valid answers.
func (a Answer) IsEmpty() bool {
	return a.Kind == "" || (a.Kind == AnswerList && len(a.Values) == 0)
}

// String formats the answer for a single output line.
func (a Answer) String() string {
	switch a.Kind {
	case AnswerCount:
		return fmt.Sprintf("%d", a.Count)
	case AnswerBoolean:
		if a.Truth {
			return "yes"
		}
		return "no"
	default:
		return strings.Join(a.Values, "; ")
	}
}

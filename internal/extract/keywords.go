// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"strings"

	"github.com/pdiddy/filmqa/pkg/types"
)

// keywordRule associates one fixed question idiom with the property
// mapping it reliably indicates.
type keywordRule struct {
	name    string
	match   func(q string) bool
	mapping types.Mapping
}

func hasSub(sub string) func(string) bool {
	return func(q string) bool { return strings.Contains(q, sub) }
}

func hasAll(subs ...string) func(string) bool {
	return func(q string) bool {
		for _, s := range subs {
			if !strings.Contains(q, s) {
				return false
			}
		}
		return true
	}
}

func hasAny(subs ...string) func(string) bool {
	return func(q string) bool {
		for _, s := range subs {
			if strings.Contains(q, s) {
				return true
			}
		}
		return false
	}
}

func hasWord(word string) func(string) bool {
	return func(q string) bool {
		for _, w := range strings.Fields(q) {
			if w == word {
				return true
			}
		}
		return false
	}
}

func pm(pairs ...types.Pair) types.Mapping { return types.NewMapping(pairs...) }

// keywordRules is the override table, in priority order: the first
// matching rule wins. Keyword evidence for these fixed phrasings beats
// the syntactic heuristics, so a hit replaces the extracted property
// mapping entirely.
var keywordRules = []keywordRule{
	{"cult-church", hasAny("cult-like church", "cult - like church"),
		pm(types.Pair{ID: "P140", Label: "religion"})},
	{"named-after", hasAll("named", "after"),
		pm(types.Pair{ID: "P138", Label: "named after"})},
	{"children", hasSub("how many children"),
		pm(types.Pair{ID: "P1971", Label: "number of children"}, types.Pair{ID: "P40", Label: "child"})},
	{"filming-location", func(q string) bool {
		return hasAll("film", "location")(q) || hasAll("where", "film")(q) ||
			hasAll("film", "country")(q) || hasAll("film", "city")(q) || hasAll("film", "place")(q)
	}, pm(types.Pair{ID: "P915", Label: "filming location"})},
	{"where-watch", hasAll("can", "watch"),
		pm(types.Pair{ID: "P750", Label: "distributed by"})},
	{"production-company", func(q string) bool {
		return hasAll("compan", "direct")(q) || hasAll("compan", "produce")(q)
	}, pm(types.Pair{ID: "P272", Label: "production company"})},
	{"how-long", hasSub("how long"),
		pm(types.Pair{ID: "P2047", Label: "duration"})},
	{"cost", hasSub("cost"),
		pm(types.Pair{ID: "P2130", Label: "cost"})},
	{"box-office", hasSub("box office"),
		pm(types.Pair{ID: "P2142", Label: "box office"})},
	{"tall", hasWord("tall"),
		pm(types.Pair{ID: "P2048", Label: "height"})},
	{"release-date", hasAny("publicised", "released", "come out"),
		pm(types.Pair{ID: "P577", Label: "publication date"})},
	{"birthplace", func(q string) bool {
		return hasAll("born", "country")(q) || hasAll("born", "city")(q) || hasAll("born", "place")(q)
	}, pm(types.Pair{ID: "P19", Label: "place of birth"})},
	{"birthdate", hasAll("when", "born"),
		pm(types.Pair{ID: "P569", Label: "date of birth"})},
	{"genre", hasSub("genre"),
		pm(types.Pair{ID: "P136", Label: "genre"})},
	{"main-subject", hasSub("main subject"),
		pm(types.Pair{ID: "P921", Label: "main subject"})},
	{"language", func(q string) bool {
		return hasSub("original language")(q) || hasAll("language", "spoken")(q)
	}, pm(types.Pair{ID: "P364", Label: "original language of film or TV show"})},
	{"cause-of-death", func(q string) bool {
		return hasAll("cause", "death")(q) || hasAll("how", "die")(q)
	}, pm(types.Pair{ID: "P509", Label: "cause of death"})},
	{"followed-by", hasSub("followed"),
		pm(types.Pair{ID: "P156", Label: "followed by"})},
}

// Override scans the lowercased question text against the idiom table and
// returns the property mapping of the first matching rule. The second
// result is false when no rule matches and the extracted property stands.
func Override(text string) (types.Mapping, bool) {
	q := strings.ToLower(text)
	for _, r := range keywordRules {
		if r.match(q) {
			return r.mapping, true
		}
	}
	return types.Mapping{}, false
}

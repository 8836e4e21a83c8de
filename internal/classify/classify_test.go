// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package classify

import (
	"strings"
	"testing"

	"github.com/pdiddy/filmqa/internal/nlp"
	"github.com/pdiddy/filmqa/pkg/types"
)

// tok builds one annotated token.
func tok(text, lemma, pos, dep string, head int) nlp.Token {
	return nlp.Token{Text: text, Lemma: lemma, POS: pos, Dep: dep, Head: head}
}

func question(tokens ...nlp.Token) *nlp.ParsedQuestion {
	words := make([]string, len(tokens))
	for i, t := range tokens {
		words[i] = t.Text
	}
	return &nlp.ParsedQuestion{Text: strings.Join(words, " ") + "?", Tokens: tokens}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		q    *nlp.ParsedQuestion
		want types.QuestionType
	}{
		{
			name: "did opener is yes/no",
			q: question(
				tok("Did", "do", "AUX", "aux", 3),
				tok("Titanic", "Titanic", "PROPN", "nsubj", 3),
				tok("win", "win", "VERB", "ROOT", 2),
				tok("an", "an", "DET", "det", 4),
				tok("Oscar", "Oscar", "PROPN", "dobj", 2),
			),
			want: types.TypeYesNo,
		},
		{
			name: "does opener is yes/no",
			q: question(
				tok("Does", "do", "AUX", "aux", 2),
				tok("it", "it", "PRON", "nsubj", 2),
				tok("rain", "rain", "VERB", "ROOT", 2),
			),
			want: types.TypeYesNo,
		},
		{
			name: "passive marker is passive",
			q: question(
				tok("Which", "which", "DET", "det", 1),
				tok("movies", "movie", "NOUN", "nsubjpass", 3),
				tok("were", "be", "AUX", "auxpass", 3),
				tok("directed", "direct", "VERB", "ROOT", 3),
				tok("by", "by", "ADP", "agent", 3),
				tok("Spielberg", "Spielberg", "PROPN", "pobj", 4),
			),
			want: types.TypePassive,
		},
		{
			name: "passive opening with by is XofY",
			q: question(
				tok("By", "by", "ADP", "agent", 4),
				tok("whom", "whom", "PRON", "pobj", 0),
				tok("was", "be", "AUX", "auxpass", 4),
				tok("Titanic", "Titanic", "PROPN", "nsubjpass", 4),
				tok("directed", "direct", "VERB", "ROOT", 4),
			),
			want: types.TypeXofY,
		},
		{
			name: "long keyword is duration",
			q: question(
				tok("How", "how", "ADV", "advmod", 1),
				tok("long", "long", "ADJ", "acomp", 2),
				tok("is", "be", "AUX", "ROOT", 2),
				tok("Titanic", "Titanic", "PROPN", "nsubj", 2),
			),
			want: types.TypeDuration,
		},
		{
			name: "time lemma counts as duration not time",
			q: question(
				tok("How", "how", "ADV", "advmod", 2),
				tok("much", "much", "ADJ", "amod", 2),
				tok("time", "time", "NOUN", "dobj", 4),
				tok("does", "do", "AUX", "aux", 4),
				tok("it", "it", "PRON", "nsubj", 4),
				tok("take", "take", "VERB", "ROOT", 5),
			),
			want: types.TypeDuration,
		},
		{
			name: "country keyword is location",
			q: question(
				tok("Which", "which", "DET", "det", 1),
				tok("country", "country", "NOUN", "nsubj", 3),
				tok("is", "be", "AUX", "aux", 3),
				tok("Amelie", "Amelie", "PROPN", "nsubj", 3),
				tok("from", "from", "ADP", "prep", 3),
			),
			want: types.TypeLocation,
		},
		{
			name: "when is time",
			q: question(
				tok("When", "when", "ADV", "advmod", 3),
				tok("did", "do", "AUX", "aux", 3),
				tok("Kubrick", "Kubrick", "PROPN", "nsubj", 3),
				tok("die", "die", "VERB", "ROOT", 3),
			),
			want: types.TypeTime,
		},
		{
			name: "what plus noun without verb is whatXisY",
			q: question(
				tok("What", "what", "DET", "det", 1),
				tok("genre", "genre", "NOUN", "attr", 2),
				tok("is", "be", "AUX", "ROOT", 2),
				tok("Inception", "Inception", "PROPN", "nsubj", 2),
			),
			want: types.TypeWhatXIsY,
		},
		{
			name: "passive marker outranks the what which family",
			q: question(
				tok("What", "what", "DET", "det", 1),
				tok("book", "book", "NOUN", "nsubjpass", 4),
				tok("is", "be", "AUX", "auxpass", 4),
				tok("the", "the", "DET", "det", 4),
				tok("movie", "movie", "NOUN", "nsubj", 4),
				tok("based", "base", "VERB", "ROOT", 5),
				tok("on", "on", "ADP", "prep", 5),
			),
			want: types.TypePassive,
		},
		{
			name: "what plus noun with copular be is what_A_is_X_Y",
			q: question(
				tok("What", "what", "DET", "det", 1),
				tok("city", "city", "NOUN", "nsubj", 3),
				tok("is", "be", "AUX", "aux", 3),
				tok("Amelie", "Amelie", "PROPN", "nsubj", 3),
				tok("set", "set", "VERB", "ROOT", 3),
				tok("in", "in", "ADP", "prep", 4),
			),
			want: types.TypeWhatAIsXY,
		},
		{
			name: "which noun with earn is what_A_is_X_Y",
			q: question(
				tok("Which", "which", "DET", "det", 1),
				tok("movie", "movie", "NOUN", "nsubj", 3),
				tok("has", "have", "AUX", "aux", 3),
				tok("earned", "earn", "VERB", "ROOT", 3),
				tok("more", "more", "ADJ", "dobj", 3),
			),
			want: types.TypeWhatAIsXY,
		},
		{
			name: "what noun with plain verb is what_which_verb",
			q: question(
				tok("What", "what", "DET", "det", 1),
				tok("awards", "award", "NOUN", "dobj", 4),
				tok("did", "do", "AUX", "aux", 4),
				tok("Parasite", "Parasite", "PROPN", "nsubj", 4),
				tok("receive", "receive", "VERB", "ROOT", 4),
			),
			want: types.TypeWhatWhichVerb,
		},
		{
			name: "what is X about",
			q: question(
				tok("What", "what", "PRON", "attr", 1),
				tok("is", "be", "AUX", "ROOT", 1),
				tok("Inception", "Inception", "PROPN", "nsubj", 1),
				tok("about", "about", "ADP", "prep", 1),
			),
			want: types.TypeAbout,
		},
		{
			name: "what is Xs Y",
			q: question(
				tok("What", "what", "PRON", "attr", 1),
				tok("is", "be", "AUX", "ROOT", 1),
				tok("Willis", "Willis", "PROPN", "poss", 4),
				tok("hair", "hair", "NOUN", "compound", 4),
				tok("color", "color", "NOUN", "nsubj", 1),
			),
			want: types.TypeWhatIsXsY,
		},
		{
			name: "tall",
			q: question(
				tok("How", "how", "ADV", "advmod", 1),
				tok("tall", "tall", "ADJ", "acomp", 2),
				tok("is", "be", "AUX", "ROOT", 2),
				tok("Hanks", "Hanks", "PROPN", "nsubj", 2),
			),
			want: types.TypeTall,
		},
		{
			name: "how many is count",
			q: question(
				tok("How", "how", "ADV", "advmod", 1),
				tok("many", "many", "ADJ", "amod", 2),
				tok("children", "child", "NOUN", "dobj", 5),
				tok("does", "do", "AUX", "aux", 5),
				tok("Hanks", "Hanks", "PROPN", "nsubj", 5),
				tok("have", "have", "VERB", "ROOT", 5),
			),
			want: types.TypeCount,
		},
		{
			name: "how much with cost lemma is cost",
			q: question(
				tok("How", "how", "ADV", "advmod", 1),
				tok("much", "much", "ADJ", "advmod", 4),
				tok("did", "do", "AUX", "aux", 4),
				tok("Avatar", "Avatar", "PROPN", "nsubj", 4),
				tok("cost", "cost", "VERB", "ROOT", 4),
			),
			want: types.TypeCost,
		},
		{
			name: "follower blocks count",
			q: question(
				tok("How", "how", "ADV", "advmod", 1),
				tok("many", "many", "ADJ", "amod", 2),
				tok("followers", "follower", "NOUN", "pobj", 4),
				tok("has", "have", "AUX", "aux", 4),
				tok("she", "she", "PRON", "nsubj", 4),
			),
			want: types.TypeXofY,
		},
		{
			name: "prepositional object is XofY",
			q: question(
				tok("Who", "who", "PRON", "nsubj", 1),
				tok("is", "be", "AUX", "ROOT", 1),
				tok("the", "the", "DET", "det", 3),
				tok("director", "director", "NOUN", "attr", 1),
				tok("of", "of", "ADP", "prep", 3),
				tok("Titanic", "Titanic", "PROPN", "pobj", 4),
			),
			want: types.TypeXofY,
		},
		{
			name: "direct object is verb_prop",
			q: question(
				tok("Who", "who", "PRON", "nsubj", 1),
				tok("directed", "direct", "VERB", "ROOT", 1),
				tok("Titanic", "Titanic", "PROPN", "dobj", 1),
			),
			want: types.TypeVerbProp,
		},
		{
			name: "no rule fires",
			q: question(
				tok("Hello", "hello", "INTJ", "ROOT", 0),
				tok("there", "there", "ADV", "advmod", 0),
			),
			want: types.TypeUnknown,
		},
		{
			name: "single token",
			q: question(
				tok("Titanic", "Titanic", "PROPN", "ROOT", 0),
			),
			want: types.TypeUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.q); got != tt.want {
				t.Errorf("Classify() = %q, want %q", got, tt.want)
			}
		})
	}
}

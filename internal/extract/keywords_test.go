// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"reflect"
	"testing"
)

func TestOverride(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		wantIDs []string
	}{
		{"named after", "What is the movie named after?", []string{"P138"}},
		{"children count", "How many children does Tom Hanks have?", []string{"P1971", "P40"}},
		{"filming location", "In which city was Inception filmed at this location?", []string{"P915"}},
		{"where to watch", "Where can I watch Dune?", []string{"P750"}},
		{"production company", "Which company produced Jaws?", []string{"P272"}},
		{"how long", "How long is Titanic?", []string{"P2047"}},
		{"cost", "How much did Avatar cost?", []string{"P2130"}},
		{"box office", "What was the box office of Avatar?", []string{"P2142"}},
		{"tall", "How tall is Tom Hanks?", []string{"P2048"}},
		{"release", "When was Alien released?", []string{"P577"}},
		{"come out", "When did Alien come out?", []string{"P577"}},
		{"birthplace", "In which country was Luc Besson born?", []string{"P19"}},
		{"birthdate", "When was Luc Besson born?", []string{"P569"}},
		{"genre", "What genre is Inception?", []string{"P136"}},
		{"main subject", "What is the main subject of Her?", []string{"P921"}},
		{"original language", "What is the original language of Amelie?", []string{"P364"}},
		{"cause of death", "What was the cause of death of Heath Ledger?", []string{"P509"}},
		{"followed by", "Which movie followed The Matrix?", []string{"P156"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Override(tt.text)
			if !ok {
				t.Fatalf("Override(%q) matched nothing", tt.text)
			}
			if !reflect.DeepEqual(got.IDs(), tt.wantIDs) {
				t.Errorf("Override(%q) = %v, want %v", tt.text, got.IDs(), tt.wantIDs)
			}
		})
	}
}

func TestOverrideNoMatch(t *testing.T) {
	if m, ok := Override("Who directed Titanic?"); ok {
		t.Errorf("Override matched %v, want no match", m)
	}
}

// Earlier rules shadow later ones: a question with both a "born" cue and
// a country cue takes the birthplace rule it reaches first.
func TestOverrideOrder(t *testing.T) {
	got, ok := Override("How long is the movie that followed Alien?")
	if !ok {
		t.Fatal("expected a match")
	}
	// "how long" sits above "followed" in the table.
	if _, hasDuration := got.Get("P2047"); !hasDuration {
		t.Errorf("Override = %v, want the duration rule to win", got)
	}
}

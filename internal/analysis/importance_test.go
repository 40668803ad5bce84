package analysis

import (
	"math"
	"testing"

	"github.com/hoanghuy2403-byte/tool-ai-sub/internal/subtitle"
)

func almost(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestScoreHeuristic(t *testing.T) {
	cues := []subtitle.Cue{{Index: 1, Start: 0, End: 4, Text: "We met Bartholomew at the station."}}
	words := subtitle.Words(cues)
	tags := tagWords(words)
	scores := scoreHeuristic(words, tags, stopwordsFor("en"))

	byText := make(map[string]float64)
	for i, w := range words {
		byText[w.Text] = scores[i]
	}

	if byText["Bartholomew"] <= byText["met"] {
		t.Errorf("proper noun %.3f not above plain noun %.3f", byText["Bartholomew"], byText["met"])
	}
	if byText["the"] != 0 || byText["at"] != 0 {
		t.Errorf("stopwords scored: the=%.3f at=%.3f", byText["the"], byText["at"])
	}
	if byText["."] != 0 {
		t.Errorf("punctuation scored %.3f", byText["."])
	}
	for i, s := range scores {
		if s < 0 || s > 1 {
			t.Errorf("score[%d] (%q) = %v outside [0,1]", i, words[i].Text, s)
		}
	}
}

func TestScoreFrequency(t *testing.T) {
	cues := []subtitle.Cue{
		{Index: 1, Start: 0, End: 2, Text: "the cat sleeps"},
		{Index: 2, Start: 2, End: 4, Text: "the dog barks"},
		{Index: 3, Start: 4, End: 6, Text: "the cat purrs"},
	}
	words := subtitle.Words(cues)
	scores := scoreFrequency(words, cues, stopwordsFor("en"))

	// "sleeps" appears in one cue of three, so it carries the top TF-IDF
	// weight and normalizes to 1; "cat" appears in two, "the" in all three.
	if !almost(scores[2], 1.0) {
		t.Errorf("score(sleeps) = %v, want 1", scores[2])
	}
	wantCat := math.Log(4.0/3.0) / math.Log(2.0)
	if !almost(scores[1], wantCat) {
		t.Errorf("score(cat) = %v, want %v", scores[1], wantCat)
	}
	if scores[0] != 0 {
		t.Errorf("score(the) = %v, want 0", scores[0])
	}
	for i, s := range scores {
		if s < 0 || s > 1 {
			t.Errorf("score[%d] (%q) = %v outside [0,1]", i, words[i].Text, s)
		}
	}
}

func TestScoreFrequencySingleCue(t *testing.T) {
	// One cue means every term is in every document and IDF collapses to
	// zero; scoring falls back to raw term frequency.
	cues := []subtitle.Cue{{Index: 1, Start: 0, End: 2, Text: "ocean ocean waves"}}
	words := subtitle.Words(cues)
	scores := scoreFrequency(words, cues, nil)

	if !almost(scores[0], 1.0) {
		t.Errorf("score(ocean) = %v, want 1", scores[0])
	}
	if !almost(scores[2], 0.5) {
		t.Errorf("score(waves) = %v, want 0.5", scores[2])
	}
}

func TestScoreGraph(t *testing.T) {
	cues := []subtitle.Cue{{Index: 1, Start: 0, End: 3, Text: "red fox jumps over lazy dog."}}
	words := subtitle.Words(cues)
	scores := scoreGraph(words, stopwordsFor("en"))

	byText := make(map[string]float64)
	for i, w := range words {
		byText[w.Text] = scores[i]
	}

	// "jumps" links to red, fox and lazy; "dog" only to lazy. "over" is a
	// stopword and never enters the graph.
	if !almost(byText["jumps"], 1.0) {
		t.Errorf("score(jumps) = %v, want 1", byText["jumps"])
	}
	if !almost(byText["dog"], 1.0/3.0) {
		t.Errorf("score(dog) = %v, want 1/3", byText["dog"])
	}
	if byText["over"] != 0 {
		t.Errorf("score(over) = %v, want 0", byText["over"])
	}
	if byText["."] != 0 {
		t.Errorf("punctuation scored %v", byText["."])
	}
}

func TestScoreGraphStaysInCue(t *testing.T) {
	cues := []subtitle.Cue{
		{Index: 1, Start: 0, End: 1, Text: "alpha beta"},
		{Index: 2, Start: 1, End: 2, Text: "gamma delta"},
	}
	words := subtitle.Words(cues)
	scores := scoreGraph(words, nil)

	// beta and gamma are adjacent in the word stream but belong to
	// different cues, so they never link; every word keeps degree 1.
	for i, s := range scores {
		if !almost(s, 1.0) {
			t.Errorf("score[%d] (%q) = %v, want 1", i, words[i].Text, s)
		}
	}
}

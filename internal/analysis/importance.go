package analysis

import (
	"strings"
	"unicode/utf8"

	"github.com/hoanghuy2403-byte/tool-ai-sub/internal/subtitle"
)

// scoreHeuristic rates each word from its surface form: longer words, rare
// words, and capitalized words away from a sentence start score higher;
// stopwords are pushed down. Raw scores land in [0,1].
func scoreHeuristic(words []subtitle.Word, tags []string, stop map[string]bool) []float64 {
	freq := make(map[string]int)
	maxFreq := 1
	for _, w := range words {
		if isPunct(w.Text) {
			continue
		}
		lower := strings.ToLower(w.Text)
		freq[lower]++
		if freq[lower] > maxFreq {
			maxFreq = freq[lower]
		}
	}

	scores := make([]float64, len(words))
	for i, w := range words {
		if tags[i] == POSPunct {
			continue
		}
		lower := strings.ToLower(w.Text)

		length := float64(utf8.RuneCountInString(w.Text)) / 20.0
		if length > 1 {
			length = 1
		}
		score := length * 0.3

		rarity := 1.0 - float64(freq[lower])/float64(maxFreq)
		score += rarity * 0.3

		if tags[i] == POSProper {
			score += 0.3
		}
		if stop[lower] {
			score -= 0.4
		}
		scores[i] = clip01(score)
	}
	return scores
}

// scoreFrequency rates words by TF-IDF over the cue timeline, each cue being
// one document. Scores are normalized against the strongest term so the
// output lands in [0,1].
func scoreFrequency(words []subtitle.Word, cues []subtitle.Cue, stop map[string]bool) []float64 {
	corpus := NewCorpus()
	prints := make(map[int]*Fingerprint, len(cues))
	for _, cue := range cues {
		fp := NewFingerprint(cue.Text)
		prints[cue.Index] = fp
		corpus.Add(fp)
	}
	idf := corpus.IDF()

	weights := make(map[int]map[string]float64, len(cues))
	maxWeight := 0.0
	fill := func(idf map[string]float64) {
		maxWeight = 0
		for idx, fp := range prints {
			w := fp.Weights(idf)
			weights[idx] = w
			for _, v := range w {
				if v > maxWeight {
					maxWeight = v
				}
			}
		}
	}
	fill(idf)
	if maxWeight == 0 {
		// Degenerate corpus (every term in every cue); fall back to raw TF.
		fill(nil)
	}

	scores := make([]float64, len(words))
	if maxWeight == 0 {
		return scores
	}
	for i, w := range words {
		if isPunct(w.Text) {
			continue
		}
		lower := strings.ToLower(w.Text)
		cueWeights := weights[w.Cue]
		if cueWeights == nil {
			continue
		}
		score := cueWeights[lower] / maxWeight
		if stop[lower] {
			score *= 0.3
		}
		scores[i] = clip01(score)
	}
	return scores
}

const cooccurrenceSpan = 2

// scoreGraph rates words by co-occurrence degree: words that appear next to
// many distinct other words across the file are treated as central. A light
// stand-in for graph ranking that stays deterministic.
func scoreGraph(words []subtitle.Word, stop map[string]bool) []float64 {
	neighbors := make(map[string]map[string]bool)
	link := func(a, b string) {
		if neighbors[a] == nil {
			neighbors[a] = make(map[string]bool)
		}
		neighbors[a][b] = true
	}

	for i, w := range words {
		if isPunct(w.Text) || stop[strings.ToLower(w.Text)] {
			continue
		}
		a := strings.ToLower(w.Text)
		for j := i + 1; j <= i+cooccurrenceSpan && j < len(words); j++ {
			if words[j].Cue != w.Cue {
				break
			}
			if isPunct(words[j].Text) || stop[strings.ToLower(words[j].Text)] {
				continue
			}
			b := strings.ToLower(words[j].Text)
			if a == b {
				continue
			}
			link(a, b)
			link(b, a)
		}
	}

	maxDegree := 1
	for _, set := range neighbors {
		if len(set) > maxDegree {
			maxDegree = len(set)
		}
	}

	scores := make([]float64, len(words))
	for i, w := range words {
		if isPunct(w.Text) {
			continue
		}
		lower := strings.ToLower(w.Text)
		if stop[lower] {
			continue
		}
		scores[i] = float64(len(neighbors[lower])) / float64(maxDegree)
	}
	return scores
}
